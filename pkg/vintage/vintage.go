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

// Package vintage parses and compares data-vintage stamps. A vintage
// identifies the observation date of the dataset a model instance was
// built against and versions every derived artifact, so stale caches are
// never silently reused.
package vintage

import (
	"errors"
	"fmt"
	"strconv"
)

// Error types for vintage parsing failures
var (
	ErrEmptyVintage  = errors.New("vintage string is empty")
	ErrInvalidLength = errors.New("vintage must have 8 digits (YYYYMMDD)")
	ErrNonNumeric    = errors.New("vintage component is not numeric")
	ErrInvalidMonth  = errors.New("vintage month must be between 1 and 12")
	ErrInvalidDay    = errors.New("vintage day must be between 1 and 31")
)

// Vintage represents a data observation date stamp in YYYYMMDD form.
// Stamps are compared chronologically; later vintages supersede earlier
// ones when resolving cached artifacts.
type Vintage struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

// New creates a Vintage from its components. Use Parse for validating
// stamp strings.
func New(year, month, day int) Vintage {
	return Vintage{Year: year, Month: month, Day: day}
}

// String returns the canonical YYYYMMDD representation.
func (v Vintage) String() string {
	return fmt.Sprintf("%04d%02d%02d", v.Year, v.Month, v.Day)
}

// Parse parses a YYYYMMDD stamp into a Vintage. Returns an error for
// empty strings, wrong lengths, non-numeric content, or out-of-range
// month and day components.
func Parse(s string) (Vintage, error) {
	if s == "" {
		return Vintage{}, ErrEmptyVintage
	}
	if len(s) != 8 {
		return Vintage{}, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Vintage{}, fmt.Errorf("%w: %q", ErrNonNumeric, s)
	}

	v := Vintage{
		Year:  n / 10000,
		Month: (n / 100) % 100,
		Day:   n % 100,
	}
	if v.Month < 1 || v.Month > 12 {
		return Vintage{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	if v.Day < 1 || v.Day > 31 {
		return Vintage{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return v, nil
}

// Compare returns -1, 0, or 1 if v is earlier than, equal to, or later
// than other.
func (v Vintage) Compare(other Vintage) int {
	if c := compareInt(v.Year, other.Year); c != 0 {
		return c
	}
	if c := compareInt(v.Month, other.Month); c != 0 {
		return c
	}
	return compareInt(v.Day, other.Day)
}

// Before reports whether v is chronologically earlier than other.
func (v Vintage) Before(other Vintage) bool {
	return v.Compare(other) < 0
}

// After reports whether v is chronologically later than other.
func (v Vintage) After(other Vintage) bool {
	return v.Compare(other) > 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
