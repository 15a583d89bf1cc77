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

package param

import (
	"math"

	"github.com/mchmarny/dsgekit/pkg/errors"
)

// SteadyState is a derived quantity computed from parameter values,
// scalar (one entry) or grid-valued (one entry per grid point). Entries
// start at NaN until a steady-state solve commits.
type SteadyState struct {
	Name        string    `json:"name" yaml:"name"`
	Values      []float64 `json:"values" yaml:"values"`
	Grid        bool      `json:"grid,omitempty" yaml:"grid,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// Scalar returns the value of a scalar steady-state entry.
func (s *SteadyState) Scalar() float64 {
	return s.Values[0]
}

// Registry is the ordered, named collection of parameters and
// steady-state entries owned by one model. Lookup is O(1) by name through
// index maps; iteration follows definition order.
type Registry struct {
	params     []*Parameter
	paramIndex map[string]int

	ss      []*SteadyState
	ssIndex map[string]int
}

// NewRegistry creates an empty parameter registry.
func NewRegistry() *Registry {
	return &Registry{
		paramIndex: make(map[string]int),
		ssIndex:    make(map[string]int),
	}
}

// Define appends a parameter to the ordered list. Re-registering a name
// fails with DUPLICATE_NAME.
func (r *Registry) Define(name string, value float64, opts ...Option) error {
	if _, exists := r.paramIndex[name]; exists {
		return errors.Newf(errors.ErrCodeDuplicateName, "parameter %q already registered", name)
	}

	p := &Parameter{
		Name:      name,
		Value:     value,
		Transform: TransformIdentity,
	}
	for _, opt := range opts {
		opt(p)
	}

	r.paramIndex[name] = len(r.params)
	r.params = append(r.params, p)
	return nil
}

// DefineSteadyState appends a scalar steady-state entry, initialized to
// the NaN sentinel.
func (r *Registry) DefineSteadyState(name, description string) error {
	return r.defineSS(name, 1, false, description)
}

// DefineSteadyStateGrid appends a grid-valued steady-state entry of the
// given size, all entries initialized to the NaN sentinel.
func (r *Registry) DefineSteadyStateGrid(name string, size int, description string) error {
	if size < 1 {
		return errors.Newf(errors.ErrCodeInvalidRange, "steady-state grid %q must have at least 1 entry, got %d", name, size)
	}
	return r.defineSS(name, size, true, description)
}

func (r *Registry) defineSS(name string, size int, grid bool, description string) error {
	if _, exists := r.ssIndex[name]; exists {
		return errors.Newf(errors.ErrCodeDuplicateName, "steady-state entry %q already registered", name)
	}

	values := make([]float64, size)
	for i := range values {
		values[i] = math.NaN()
	}

	r.ssIndex[name] = len(r.ss)
	r.ss = append(r.ss, &SteadyState{
		Name:        name,
		Values:      values,
		Grid:        grid,
		Description: description,
	})
	return nil
}

// Get returns a parameter value by name.
func (r *Registry) Get(name string) (float64, error) {
	i, ok := r.paramIndex[name]
	if !ok {
		return 0, errors.Newf(errors.ErrCodeUnknownParameter, "parameter %q not registered", name)
	}
	return r.params[i].Value, nil
}

// Set updates a parameter value by name. Steady-state entries derived
// from it are stale until the next solve.
func (r *Registry) Set(name string, value float64) error {
	i, ok := r.paramIndex[name]
	if !ok {
		return errors.Newf(errors.ErrCodeUnknownParameter, "parameter %q not registered", name)
	}
	r.params[i].Value = value
	return nil
}

// Param returns the full parameter record by name.
func (r *Registry) Param(name string) (*Parameter, error) {
	i, ok := r.paramIndex[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownParameter, "parameter %q not registered", name)
	}
	return r.params[i], nil
}

// Params returns all parameters in definition order.
func (r *Registry) Params() []*Parameter {
	out := make([]*Parameter, len(r.params))
	copy(out, r.params)
	return out
}

// SteadyStateEntry returns a steady-state record by name.
func (r *Registry) SteadyStateEntry(name string) (*SteadyState, error) {
	i, ok := r.ssIndex[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownParameter, "steady-state entry %q not registered", name)
	}
	return r.ss[i], nil
}

// SteadyStateValues returns a copy of the values of a steady-state entry:
// length 1 for scalars, grid length otherwise.
func (r *Registry) SteadyStateValues(name string) ([]float64, error) {
	s, err := r.SteadyStateEntry(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(s.Values))
	copy(out, s.Values)
	return out, nil
}

// SteadyStates returns all steady-state entries in definition order.
func (r *Registry) SteadyStates() []*SteadyState {
	out := make([]*SteadyState, len(r.ss))
	copy(out, r.ss)
	return out
}

// Solved reports whether every steady-state entry holds computed values
// (no NaN sentinels remain).
func (r *Registry) Solved() bool {
	for _, s := range r.ss {
		for _, v := range s.Values {
			if math.IsNaN(v) {
				return false
			}
		}
	}
	return len(r.ss) > 0
}
