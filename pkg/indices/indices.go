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
	"github.com/mchmarny/dsgekit/pkg/errors"
)

// Category identifies one of the five index blocks.
type Category string

const (
	CategoryStates      Category = "endogenous_states"
	CategoryShocks      Category = "exogenous_shocks"
	CategoryExpected    Category = "expected_shocks"
	CategoryEquations   Category = "equilibrium_conditions"
	CategoryObservables Category = "observables"
)

// Categories is the list of all index categories.
var Categories = []Category{
	CategoryStates,
	CategoryShocks,
	CategoryExpected,
	CategoryEquations,
	CategoryObservables,
}

// Variable and equation names laid out by Build.
const (
	// endogenous states and jumps
	NameDistribution = "mu_prime" // cross-sectional density over cash x skill
	NameTFP          = "z_prime"  // aggregate productivity
	NameLabor        = "l_prime"  // household marginal utility / labor block
	NameRate         = "r_prime"  // gross interest rate

	// equilibrium conditions, mirroring the state layout one-to-one
	NameEqEuler          = "eq_euler"
	NameEqKolmogorov     = "eq_kolmogorov"
	NameEqTFP            = "eq_tfp"
	NameEqMarketClearing = "eq_market_clearing"

	// shocks
	NameShockTFP      = "z_shock"
	NameExpectedError = "eta_l" // expectational error on the Euler block
)

// Map holds the index layout for one model instance: for each category, an
// ordered mapping from name to a contiguous 1-based range.
type Map struct {
	States      *Block `json:"endogenous_states" yaml:"endogenous_states"`
	Shocks      *Block `json:"exogenous_shocks" yaml:"exogenous_shocks"`
	Expected    *Block `json:"expected_shocks" yaml:"expected_shocks"`
	Equations   *Block `json:"equilibrium_conditions" yaml:"equilibrium_conditions"`
	Observables *Block `json:"observables" yaml:"observables"`

	Nx         int  `json:"nx" yaml:"nx"`
	Ns         int  `json:"ns" yaml:"ns"`
	Normalized bool `json:"normalized,omitempty" yaml:"normalized,omitempty"`
}

// Build lays out the index map for grid sizes nx (cash) and ns (skill).
// The state order is fixed: the cross-sectional density (nx*ns slots),
// aggregate productivity (1 slot), the labor/marginal-utility jump
// (nx*ns slots), and the interest rate (1 slot). Equation ranges mirror
// this layout block-for-block. Observable slots follow the iteration
// order of the supplied names, one scalar slot each.
func Build(nx, ns int, observables []string) (*Map, error) {
	if nx < 1 || ns < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidRange, "grid sizes must be at least 1, got nx=%d ns=%d", nx, ns)
	}

	n := nx * ns
	m := &Map{
		States:      newBlock(),
		Shocks:      newBlock(),
		Expected:    newBlock(),
		Equations:   newBlock(),
		Observables: newBlock(),
		Nx:          nx,
		Ns:          ns,
	}

	// endogenous states and jumps, interleaved
	states := []struct {
		name string
		rng  Range
	}{
		{NameDistribution, Range{1, n}},
		{NameTFP, Range{n + 1, n + 1}},
		{NameLabor, Range{n + 2, 2*n + 1}},
		{NameRate, Range{2*n + 2, 2*n + 2}},
	}
	for _, s := range states {
		if err := m.States.add(s.name, s.rng); err != nil {
			return nil, err
		}
	}

	// equilibrium conditions: grid blocks first, scalars after
	equations := []struct {
		name string
		rng  Range
	}{
		{NameEqEuler, Range{1, n}},
		{NameEqKolmogorov, Range{n + 1, 2 * n}},
		{NameEqTFP, Range{2*n + 1, 2*n + 1}},
		{NameEqMarketClearing, Range{2*n + 2, 2*n + 2}},
	}
	for _, e := range equations {
		if err := m.Equations.add(e.name, e.rng); err != nil {
			return nil, err
		}
	}

	if err := m.Shocks.add(NameShockTFP, Range{1, 1}); err != nil {
		return nil, err
	}
	if err := m.Expected.add(NameExpectedError, Range{1, n}); err != nil {
		return nil, err
	}

	for i, name := range observables {
		if err := m.Observables.add(name, Range{i + 1, i + 1}); err != nil {
			return nil, err
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Block returns the block for a category.
func (m *Map) Block(c Category) (*Block, error) {
	switch c {
	case CategoryStates:
		return m.States, nil
	case CategoryShocks:
		return m.Shocks, nil
	case CategoryExpected:
		return m.Expected, nil
	case CategoryEquations:
		return m.Equations, nil
	case CategoryObservables:
		return m.Observables, nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidRange, "unknown index category %q", c)
	}
}

// Range returns the index range for a name within a category.
func (m *Map) Range(c Category, name string) (Range, error) {
	b, err := m.Block(c)
	if err != nil {
		return Range{}, err
	}
	return b.Range(name)
}

// StateSpan returns the total span of the state block.
func (m *Map) StateSpan() int {
	return m.States.Span()
}

// Validate checks every block's ranges for contiguity and verifies the
// model-wide state span invariant: the union of state ranges is exactly
// [1, 2*nx*ns + 2], and the equation block mirrors it. Normalized maps
// skip the span check because normalization removes slots.
func (m *Map) Validate() error {
	for _, c := range Categories {
		b, err := m.Block(c)
		if err != nil {
			return err
		}
		if err := b.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRange, string(c), err)
		}
	}

	if m.Normalized {
		return nil
	}

	want := 2*m.Nx*m.Ns + 2
	if got := m.States.Span(); got != want {
		return errors.NewWithContext(errors.ErrCodeInvalidRange,
			"state span mismatch", map[string]any{"span": got, "want": want})
	}
	if got := m.Equations.Span(); got != want {
		return errors.NewWithContext(errors.ErrCodeInvalidRange,
			"equation span mismatch", map[string]any{"span": got, "want": want})
	}
	return nil
}
