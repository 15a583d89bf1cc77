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

package model

import (
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mchmarny/dsgekit/pkg/errors"
	"github.com/mchmarny/dsgekit/pkg/grid"
	"github.com/mchmarny/dsgekit/pkg/indices"
	"github.com/mchmarny/dsgekit/pkg/param"
	"github.com/mchmarny/dsgekit/pkg/settings"
	"github.com/mchmarny/dsgekit/pkg/vintage"
)

// Setting keys exported for consistency and type safety.
const (
	KeyNX         = "nx"
	KeyNS         = "ns"
	KeyCashLow    = "x_lo"
	KeyCashHigh   = "x_hi"
	KeyCashScale  = "x_scale"
	KeySkillWidth = "s_width"

	KeySolveTol      = "ss_tol"
	KeySolveMaxIter  = "ss_max_iter"
	KeySolveDamping  = "ss_damping"
	KeyBetaLow       = "beta_lo"
	KeyMarketTol     = "market_clearing_tol"
	KeyBisectMaxIter = "bisect_max_iter"

	KeyNStates      = "n_states"
	KeyNJumps       = "n_jumps"
	KeyNModelStates = "n_model_states"

	KeyVintage  = "vintage"
	KeyDataRoot = "dataroot"
)

// Parameter names.
const (
	ParamRate           = "r"
	ParamRiskAversion   = "gamma"
	ParamFrisch         = "nu"
	ParamBorrowLimit    = "a_bar"
	ParamTFPPersistence = "rho_z"
	ParamTFPVol         = "sigma_z"
	ParamSkillMean      = "mu_s"
	ParamSkillVol       = "sigma_s"
)

// Steady-state entry names.
const (
	SSLabor       = "l_star"
	SSConsumption = "c_star"
	SSHours       = "h_star"
	SSDensity     = "mu_star"
	SSDiscount    = "beta_star"
)

const (
	modelName        = "bond_labor"
	modelDescription = "Heterogeneous-agent economy with incomplete markets: " +
		"households face idiosyncratic skill risk, trade a single bond, and " +
		"supply labor; the cross-sectional distribution lives on a cash-on-hand " +
		"by skill grid."

	defaultSeed    = uint64(1)
	defaultVintage = "20250101"
)

// BondLabor is the heterogeneous-agent bond-and-labor model. It owns its
// parameter registry, settings registry, grids, index map, and RNG stream
// exclusively; instances share no mutable state.
type BondLabor struct {
	id      uuid.UUID
	testing bool
	vintage string
	seed    uint64

	src *rand.PCG
	rng *rand.Rand

	params *param.Registry
	sets   *settings.Registry
	idx    *indices.Map

	cashGrid   *grid.Grid
	skillChain *grid.Chain
	product    *grid.Product

	observables  []Observable
	solveOnBuild bool
}

// Option configures model construction.
type Option func(*BondLabor)

// WithTesting selects test-mode setting overrides (smaller grids, looser
// tolerances) for fast runs.
func WithTesting(testing bool) Option {
	return func(m *BondLabor) { m.testing = testing }
}

// WithSeed sets the explicit seed for the model's random number stream.
func WithSeed(seed uint64) Option {
	return func(m *BondLabor) { m.seed = seed }
}

// WithVintage sets the data-vintage string recorded in settings. The
// vintage is always passed in explicitly; construction never reads the
// ambient clock.
func WithVintage(vintage string) Option {
	return func(m *BondLabor) { m.vintage = vintage }
}

// WithObservables replaces the default observable set. Only the name
// ordering matters to the core; it fixes the observable index block.
func WithObservables(obs []Observable) Option {
	return func(m *BondLabor) { m.observables = obs }
}

// WithSteadyState controls whether construction runs the steady-state
// solve as its final stage. Off by default; estimation drivers usually
// solve after setting parameters.
func WithSteadyState(solve bool) Option {
	return func(m *BondLabor) { m.solveOnBuild = solve }
}

// New constructs a BondLabor model. Stages run strictly in order:
// settings, parameters, grids, index map, then the optional steady-state
// solve. The first stage error aborts construction.
func New(opts ...Option) (*BondLabor, error) {
	m := &BondLabor{
		id:          uuid.New(),
		seed:        defaultSeed,
		vintage:     defaultVintage,
		params:      param.NewRegistry(),
		sets:        settings.NewRegistry(),
		observables: DefaultObservables(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.src = rand.NewPCG(m.seed, m.seed)
	m.rng = rand.New(m.src)

	if err := m.initSettings(); err != nil {
		return nil, err
	}
	if err := m.initParameters(); err != nil {
		return nil, err
	}
	if err := m.initGrids(); err != nil {
		return nil, err
	}
	if err := m.initIndices(); err != nil {
		return nil, err
	}

	if m.solveOnBuild {
		if err := m.SolveSteadyState(); err != nil {
			return nil, err
		}
	}

	slog.Debug("model constructed",
		"model", modelName,
		"id", m.id.String(),
		"testing", m.testing,
		"nx", m.cashGrid.Len(),
		"ns", m.skillChain.Len())

	return m, nil
}

func (m *BondLabor) initSettings() error {
	if _, err := vintage.Parse(m.vintage); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRange, "invalid vintage stamp", err)
	}

	type def struct {
		key           string
		value         settings.Value
		modeDependent bool
		desc          string
	}
	defs := []def{
		{KeyNX, settings.Int(50), true, "cash-on-hand grid points"},
		{KeyNS, settings.Int(2), false, "skill states"},
		{KeyCashLow, settings.Float(-1.5), false, "cash grid lower bound"},
		{KeyCashHigh, settings.Float(4.0), false, "cash grid upper bound"},
		{KeyCashScale, settings.Float(5.5), false, "cash grid quadrature scale"},
		{KeySkillWidth, settings.Float(2.0), false, "skill truncation width in std devs"},
		{KeySolveTol, settings.Float(1e-8), true, "steady-state fixed-point tolerance"},
		{KeySolveMaxIter, settings.Int(8000), true, "steady-state fixed-point iteration cap"},
		{KeySolveDamping, settings.Float(0.5), false, "fixed-point damping factor"},
		{KeyBetaLow, settings.Float(0.85), false, "discount factor bisection lower bound"},
		{KeyMarketTol, settings.Float(1e-6), true, "bond market clearing tolerance"},
		{KeyBisectMaxIter, settings.Int(80), false, "discount factor bisection iteration cap"},
		{KeyVintage, settings.Str(m.vintage), false, "data vintage for cache versioning"},
		{KeyDataRoot, settings.Str("save"), false, "output path root"},
	}
	for _, d := range defs {
		if err := m.sets.Define(d.key, d.value, d.modeDependent, d.desc); err != nil {
			return err
		}
	}

	// test-mode overrides: small grid, loose tolerances
	testDefs := []def{
		{KeyNX, settings.Int(10), true, "cash-on-hand grid points"},
		{KeySolveTol, settings.Float(1e-6), true, "steady-state fixed-point tolerance"},
		{KeySolveMaxIter, settings.Int(4000), true, "steady-state fixed-point iteration cap"},
		{KeyMarketTol, settings.Float(1e-4), true, "bond market clearing tolerance"},
	}
	for _, d := range testDefs {
		if err := m.sets.DefineTest(d.key, d.value, d.desc); err != nil {
			return err
		}
	}

	// state counts derive from the grid sizes; the index builder must agree
	gridStates := func(vals ...settings.Value) settings.Value {
		nx, _ := settings.AsInt(vals[0])
		ns, _ := settings.AsInt(vals[1])
		return settings.Int(nx*ns + 1)
	}
	if err := m.sets.DefineDerived(KeyNStates, []string{KeyNX, KeyNS}, gridStates,
		"backward-looking states: distribution plus aggregate TFP"); err != nil {
		return err
	}
	if err := m.sets.DefineDerived(KeyNJumps, []string{KeyNX, KeyNS}, gridStates,
		"forward-looking jumps: marginal utility block plus interest rate"); err != nil {
		return err
	}
	sum := func(vals ...settings.Value) settings.Value {
		a, _ := settings.AsInt(vals[0])
		b, _ := settings.AsInt(vals[1])
		return settings.Int(a + b)
	}
	return m.sets.DefineDerived(KeyNModelStates, []string{KeyNStates, KeyNJumps}, sum,
		"total model states for the linearized solution")
}

func (m *BondLabor) initParameters() error {
	type def struct {
		name  string
		value float64
		opts  []param.Option
	}
	defs := []def{
		{ParamRate, 1.02, []param.Option{
			param.WithBounds(1.0, 1.1),
			param.WithPrior(distuv.Normal{Mu: 1.02, Sigma: 0.01, Src: m.src}),
			param.WithDescription("steady-state gross real interest rate"),
			param.WithLabel("R"),
		}},
		{ParamRiskAversion, 1.0, []param.Option{
			param.WithBounds(0.5, 5.0),
			param.WithPrior(distuv.Gamma{Alpha: 4.0, Beta: 4.0, Src: m.src}),
			param.WithTransform(param.TransformExp),
			param.WithDescription("coefficient of relative risk aversion"),
			param.WithLabel(`\gamma`),
		}},
		{ParamFrisch, 0.5, []param.Option{
			param.WithBounds(0.1, 2.0),
			param.WithPrior(distuv.Gamma{Alpha: 2.0, Beta: 4.0, Src: m.src}),
			param.WithTransform(param.TransformExp),
			param.WithDescription("Frisch elasticity of labor supply"),
			param.WithLabel(`\nu`),
		}},
		// the limit sits below the cash grid floor by more than the worst
		// GHH labor disutility, so hand-to-mouth consumption stays positive
		// at every grid node
		{ParamBorrowLimit, -2.5, []param.Option{
			param.Fixed(),
			param.WithDescription("household borrowing limit"),
			param.WithLabel(`\bar{a}`),
		}},
		{ParamTFPPersistence, 0.95, []param.Option{
			param.WithBounds(0.0, 0.999),
			param.WithPrior(distuv.Beta{Alpha: 19.0, Beta: 1.0, Src: m.src}),
			param.WithTransform(param.TransformLogit),
			param.WithDescription("aggregate TFP persistence"),
			param.WithLabel(`\rho_z`),
		}},
		{ParamTFPVol, 0.007, []param.Option{
			param.WithBounds(0.0001, 0.05),
			param.WithPrior(distuv.Gamma{Alpha: 2.0, Beta: 280.0, Src: m.src}),
			param.WithTransform(param.TransformExp),
			param.WithDescription("aggregate TFP shock volatility"),
			param.WithLabel(`\sigma_z`),
		}},
		{ParamSkillMean, 0.0, []param.Option{
			param.Fixed(),
			param.WithDescription("mean of log skill"),
			param.WithLabel(`\mu_s`),
		}},
		{ParamSkillVol, 0.2, []param.Option{
			param.WithBounds(0.01, 1.0),
			param.WithPrior(distuv.Gamma{Alpha: 2.0, Beta: 10.0, Src: m.src}),
			param.WithTransform(param.TransformExp),
			param.WithDescription("std dev of log skill"),
			param.WithLabel(`\sigma_s`),
		}},
	}
	for _, d := range defs {
		if err := m.params.Define(d.name, d.value, d.opts...); err != nil {
			return err
		}
	}

	nx, err := m.sets.GetInt(KeyNX, m.testing)
	if err != nil {
		return err
	}
	ns, err := m.sets.GetInt(KeyNS, m.testing)
	if err != nil {
		return err
	}
	n := nx * ns

	ssGrids := []struct {
		name string
		desc string
	}{
		{SSLabor, "steady-state marginal utility over the product grid"},
		{SSConsumption, "steady-state consumption over the product grid"},
		{SSHours, "steady-state hours over the product grid"},
		{SSDensity, "stationary cross-sectional density over the product grid"},
	}
	for _, g := range ssGrids {
		if err := m.params.DefineSteadyStateGrid(g.name, n, g.desc); err != nil {
			return err
		}
	}
	return m.params.DefineSteadyState(SSDiscount, "discount factor clearing the bond market")
}

func (m *BondLabor) initGrids() error {
	nx, err := m.sets.GetInt(KeyNX, m.testing)
	if err != nil {
		return err
	}
	ns, err := m.sets.GetInt(KeyNS, m.testing)
	if err != nil {
		return err
	}
	xlo, err := m.sets.GetFloat(KeyCashLow, m.testing)
	if err != nil {
		return err
	}
	xhi, err := m.sets.GetFloat(KeyCashHigh, m.testing)
	if err != nil {
		return err
	}
	xscale, err := m.sets.GetFloat(KeyCashScale, m.testing)
	if err != nil {
		return err
	}
	width, err := m.sets.GetFloat(KeySkillWidth, m.testing)
	if err != nil {
		return err
	}

	muS, err := m.params.Get(ParamSkillMean)
	if err != nil {
		return err
	}
	sigS, err := m.params.Get(ParamSkillVol)
	if err != nil {
		return err
	}

	m.cashGrid, err = grid.NewUniform(xlo, xhi, nx, xscale)
	if err != nil {
		return err
	}
	m.skillChain, err = grid.DiscretizeAR1(muS, sigS, ns, width)
	if err != nil {
		return err
	}

	m.product = grid.TensorProduct(m.cashGrid, m.skillChain.LevelGrid())
	return nil
}

func (m *BondLabor) initIndices() error {
	nx := m.cashGrid.Len()
	ns := m.skillChain.Len()

	idx, err := indices.Build(nx, ns, observableNames(m.observables))
	if err != nil {
		return err
	}

	// the informally asserted state counts in settings must agree with the
	// layout the index builder actually produced
	nStates, err := m.sets.GetInt(KeyNStates, m.testing)
	if err != nil {
		return err
	}
	nJumps, err := m.sets.GetInt(KeyNJumps, m.testing)
	if err != nil {
		return err
	}
	nModelStates, err := m.sets.GetInt(KeyNModelStates, m.testing)
	if err != nil {
		return err
	}

	span := idx.StateSpan()
	if nStates+nJumps != span || nModelStates != span {
		return errors.NewWithContext(errors.ErrCodeInvalidRange,
			"state count settings disagree with index layout", map[string]any{
				"n_states":       nStates,
				"n_jumps":        nJumps,
				"n_model_states": nModelStates,
				"span":           span,
			})
	}

	m.idx = idx
	return nil
}

// Name returns the model identifier.
func (m *BondLabor) Name() string { return modelName }

// Description returns the model summary.
func (m *BondLabor) Description() string { return modelDescription }

// ID returns the unique identifier of this model instance.
func (m *BondLabor) ID() uuid.UUID { return m.id }

// Parameters returns the parameter and steady-state registry.
func (m *BondLabor) Parameters() *param.Registry { return m.params }

// Settings returns the settings registry.
func (m *BondLabor) Settings() *settings.Registry { return m.sets }

// Indices returns the index map.
func (m *BondLabor) Indices() *indices.Map { return m.idx }

// Testing reports whether test-mode overrides are in effect.
func (m *BondLabor) Testing() bool { return m.testing }

// Vintage returns the data-vintage string this instance was built with.
func (m *BondLabor) Vintage() string { return m.vintage }

// Rand returns the model's private random number stream.
func (m *BondLabor) Rand() *rand.Rand { return m.rng }

// CashGrid returns the cash-on-hand quadrature grid.
func (m *BondLabor) CashGrid() *grid.Grid { return m.cashGrid }

// SkillChain returns the discretized skill process.
func (m *BondLabor) SkillChain() *grid.Chain { return m.skillChain }

// ProductGrid returns the flattened cash-by-skill product grid.
func (m *BondLabor) ProductGrid() *grid.Product { return m.product }

// Observables returns the observable set in index order.
func (m *BondLabor) Observables() []Observable {
	out := make([]Observable, len(m.observables))
	copy(out, m.observables)
	return out
}

// SampleFromPriors draws one value from the prior of every free parameter
// using the model's own random stream. Fixed parameters and parameters
// without priors are skipped.
func (m *BondLabor) SampleFromPriors() map[string]float64 {
	draws := make(map[string]float64)
	for _, p := range m.params.Params() {
		if p.Fixed || p.Prior == nil {
			continue
		}
		draws[p.Name] = p.Prior.Rand()
	}
	return draws
}

// Summary is the serializable view of a model instance.
type Summary struct {
	ID          string               `json:"id" yaml:"id"`
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description" yaml:"description"`
	Vintage     string               `json:"vintage" yaml:"vintage"`
	Testing     bool                 `json:"testing" yaml:"testing"`
	Parameters  []*param.Parameter   `json:"parameters" yaml:"parameters"`
	SteadyState []*param.SteadyState `json:"steady_state,omitempty" yaml:"steady_state,omitempty"`
	Settings    []*settings.Setting  `json:"settings" yaml:"settings"`
	Indices     *indices.Map         `json:"indices" yaml:"indices"`
}

// Summarize builds the serializable view of the model. Steady-state
// entries are included only once solved.
func (m *BondLabor) Summarize() *Summary {
	s := &Summary{
		ID:          m.id.String(),
		Name:        m.Name(),
		Description: m.Description(),
		Vintage:     m.vintage,
		Testing:     m.testing,
		Parameters:  m.params.Params(),
		Settings:    m.sets.All(m.testing),
		Indices:     m.idx,
	}
	if m.params.Solved() {
		s.SteadyState = m.params.SteadyStates()
	}
	return s
}
