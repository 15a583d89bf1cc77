// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package indices

import (
	"encoding/json"
	"fmt"

	"github.com/mchmarny/dsgekit/pkg/errors"
)

// Range is a contiguous, 1-based, inclusive index interval.
type Range struct {
	Start int `json:"start" yaml:"start"`
	Stop  int `json:"stop" yaml:"stop"`
}

// Len returns the number of slots in the range.
func (r Range) Len() int {
	return r.Stop - r.Start + 1
}

// Scalar reports whether the range covers exactly one slot.
func (r Range) Scalar() bool {
	return r.Len() == 1
}

// String renders the range as [start, stop].
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.Stop)
}

type entry struct {
	Name  string `json:"name" yaml:"name"`
	Range Range  `json:"range" yaml:"range"`
}

// Block is an ordered name-to-range collection for one index category:
// a growable slice preserving insertion order plus a hash index for O(1)
// lookup both ways.
type Block struct {
	entries []entry
	index   map[string]int
}

func newBlock() *Block {
	return &Block{index: make(map[string]int)}
}

func (b *Block) add(name string, r Range) error {
	if _, exists := b.index[name]; exists {
		return errors.Newf(errors.ErrCodeDuplicateName, "index entry %q already registered", name)
	}
	b.index[name] = len(b.entries)
	b.entries = append(b.entries, entry{Name: name, Range: r})
	return nil
}

// Range returns the index range registered under name.
func (b *Block) Range(name string) (Range, error) {
	i, ok := b.index[name]
	if !ok {
		return Range{}, errors.Newf(errors.ErrCodeUnknownParameter, "index entry %q not registered", name)
	}
	return b.entries[i].Range, nil
}

// Has reports whether name is registered.
func (b *Block) Has(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Names returns entry names in insertion order.
func (b *Block) Names() []string {
	names := make([]string, len(b.entries))
	for i, e := range b.entries {
		names[i] = e.Name
	}
	return names
}

// NameAt returns the name at ordinal position i.
func (b *Block) NameAt(i int) (string, error) {
	if i < 0 || i >= len(b.entries) {
		return "", errors.Newf(errors.ErrCodeInvalidRange, "index position %d out of bounds [0, %d)", i, len(b.entries))
	}
	return b.entries[i].Name, nil
}

// Len returns the number of entries in the block.
func (b *Block) Len() int {
	return len(b.entries)
}

// Span returns the highest stop index across the block's ranges, or 0 for
// an empty block.
func (b *Block) Span() int {
	span := 0
	for _, e := range b.entries {
		if e.Range.Stop > span {
			span = e.Range.Stop
		}
	}
	return span
}

// Validate checks that the block's ranges are contiguous from 1 with no
// gaps or overlaps, in insertion order.
func (b *Block) Validate() error {
	next := 1
	for _, e := range b.entries {
		if e.Range.Start != next {
			return errors.NewWithContext(errors.ErrCodeInvalidRange,
				"index ranges not contiguous", map[string]any{
					"entry": e.Name,
					"start": e.Range.Start,
					"want":  next,
				})
		}
		if e.Range.Stop < e.Range.Start {
			return errors.Newf(errors.ErrCodeInvalidRange, "index entry %q has inverted range %s", e.Name, e.Range)
		}
		next = e.Range.Stop + 1
	}
	return nil
}

// MarshalJSON renders the block as an ordered list of named ranges.
func (b *Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.entries)
}

// MarshalYAML renders the block as an ordered list of named ranges.
func (b *Block) MarshalYAML() (any, error) {
	return b.entries, nil
}
