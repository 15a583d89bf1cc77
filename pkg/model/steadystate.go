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
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/mchmarny/dsgekit/pkg/errors"
	"github.com/mchmarny/dsgekit/pkg/grid"
)

// ssProblem bundles everything the steady-state solver needs so the
// inner loops never touch a registry.
type ssProblem struct {
	cash  *grid.Grid
	skill *grid.Chain

	rate    float64   // gross real interest rate R
	gamma   float64   // risk aversion
	frisch  float64   // Frisch elasticity
	borrow  float64   // borrowing limit on assets
	hours   []float64 // static GHH hours per skill state
	income  []float64 // effective labor income per skill state
	disutil []float64 // GHH labor disutility per skill state

	tol     float64
	maxIter int
	damping float64
}

// minConsumption floors effective consumption so marginal utility stays
// finite at clamped nodes.
const minConsumption = 1e-10

// ssResult holds the converged household block for one discount factor.
type ssResult struct {
	ell     []float64 // marginal utility over the product grid
	cons    []float64 // consumption over the product grid
	saving  []float64 // asset choice over the product grid
	density []float64 // stationary density over the product grid
	assets  float64   // aggregate bond demand
}

// SolveSteadyState computes the stationary equilibrium of the household
// block and commits it to the steady-state registry. The discount factor
// is bisected until the bond market clears; within each candidate the
// household problem is solved by a damped fixed point on marginal
// utility and the cross-sectional density by lottery-weight iteration.
//
// On failure the registry keeps its previous values; partial solves are
// never committed.
func (m *BondLabor) SolveSteadyState() error {
	ssSolveTotal.Inc()
	start := time.Now()

	err := m.solveSteadyState()

	ssSolveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		ssSolveFailures.Inc()
		return err
	}
	return nil
}

func (m *BondLabor) solveSteadyState() error {
	prob, err := m.newSSProblem()
	if err != nil {
		return err
	}

	betaLo, err := m.sets.GetFloat(KeyBetaLow, m.testing)
	if err != nil {
		return err
	}
	marketTol, err := m.sets.GetFloat(KeyMarketTol, m.testing)
	if err != nil {
		return err
	}
	bisectMax, err := m.sets.GetInt(KeyBisectMaxIter, m.testing)
	if err != nil {
		return err
	}

	// beta R < 1 is required for a stationary distribution with a
	// non-degenerate borrowing constraint; the fixed point contracts at
	// rate beta R, so the bracket stays strictly inside the unit circle
	betaHi := 0.99 / prob.rate

	lo, err := prob.solve(betaLo)
	if err != nil {
		return err
	}
	hi, err := prob.solve(betaHi)
	if err != nil {
		return err
	}
	if lo.assets > 0 || hi.assets < 0 {
		return errors.NewWithContext(errors.ErrCodeConvergence,
			"bond market does not change sign on the discount factor bracket",
			map[string]any{
				"beta_lo":   betaLo,
				"beta_hi":   betaHi,
				"assets_lo": lo.assets,
				"assets_hi": hi.assets,
			})
	}

	var (
		beta float64
		res  *ssResult
	)
	cleared := false
	for i := 0; i < bisectMax; i++ {
		beta = 0.5 * (betaLo + betaHi)
		res, err = prob.solve(beta)
		if err != nil {
			return err
		}
		if math.Abs(res.assets) < marketTol {
			cleared = true
			break
		}
		if res.assets > 0 {
			betaHi = beta
		} else {
			betaLo = beta
		}
	}
	if !cleared {
		return errors.NewWithContext(errors.ErrCodeConvergence,
			"discount factor bisection exhausted before the bond market cleared",
			map[string]any{
				"iterations": bisectMax,
				"beta":       beta,
				"assets":     res.assets,
				"tolerance":  marketTol,
			})
	}

	n := m.product.Len()
	hours := make([]float64, n)
	for i := range hours {
		hours[i] = prob.hours[i/prob.cash.Len()]
	}

	stage := m.params.NewStage()
	stage.SetGrid(SSLabor, res.ell)
	stage.SetGrid(SSConsumption, res.cons)
	stage.SetGrid(SSHours, hours)
	stage.SetGrid(SSDensity, res.density)
	stage.SetScalar(SSDiscount, beta)
	if err := m.params.Commit(stage); err != nil {
		return err
	}

	slog.Debug("steady state solved",
		"model", modelName,
		"id", m.id.String(),
		"beta", beta,
		"excess_assets", res.assets)
	return nil
}

func (m *BondLabor) newSSProblem() (*ssProblem, error) {
	get := func(name string) (float64, error) { return m.params.Get(name) }

	rate, err := get(ParamRate)
	if err != nil {
		return nil, err
	}
	gamma, err := get(ParamRiskAversion)
	if err != nil {
		return nil, err
	}
	frisch, err := get(ParamFrisch)
	if err != nil {
		return nil, err
	}
	borrow, err := get(ParamBorrowLimit)
	if err != nil {
		return nil, err
	}

	tol, err := m.sets.GetFloat(KeySolveTol, m.testing)
	if err != nil {
		return nil, err
	}
	maxIter, err := m.sets.GetInt(KeySolveMaxIter, m.testing)
	if err != nil {
		return nil, err
	}
	damping, err := m.sets.GetFloat(KeySolveDamping, m.testing)
	if err != nil {
		return nil, err
	}

	ns := m.skillChain.Len()
	hours := make([]float64, ns)
	income := make([]float64, ns)
	disutil := make([]float64, ns)
	for si := 0; si < ns; si++ {
		s := math.Exp(m.skillChain.Points[si])
		// GHH preferences make hours static: h = s^frisch at a unit wage
		hours[si] = math.Pow(s, frisch)
		income[si] = s * hours[si]
		curv := 1.0 + 1.0/frisch
		disutil[si] = math.Pow(hours[si], curv) / curv
	}

	return &ssProblem{
		cash:    m.cashGrid,
		skill:   m.skillChain,
		rate:    rate,
		gamma:   gamma,
		frisch:  frisch,
		borrow:  borrow,
		hours:   hours,
		income:  income,
		disutil: disutil,
		tol:     tol,
		maxIter: maxIter,
		damping: damping,
	}, nil
}

// solve computes the household fixed point, policy, and stationary
// density for one candidate discount factor.
func (p *ssProblem) solve(beta float64) (*ssResult, error) {
	nx := p.cash.Len()
	ns := p.skill.Len()
	n := nx * ns

	// Nodes where even hand-to-mouth consumption is infeasible (cash below
	// the borrowing limit plus labor disutility) cannot occur along any
	// optimal path. Their marginal utility is held at the clamp value and
	// they stay out of the convergence norm, otherwise interpolation
	// against them keeps the sup-norm from contracting.
	ell := make([]float64, n)
	feasible := make([]bool, n)
	for si := 0; si < ns; si++ {
		for xi := 0; xi < nx; xi++ {
			i := grid.FlatIndex(xi, si, nx)
			c := p.cash.Points[xi] - p.borrow - p.disutil[si]
			feasible[i] = c > minConsumption
			if !feasible[i] {
				c = minConsumption
			}
			ell[i] = math.Pow(c, -p.gamma)
		}
	}

	next := make([]float64, n)
	converged := false
	for it := 0; it < p.maxIter; it++ {
		diff := p.iterate(beta, ell, next, feasible)
		for i := range ell {
			ell[i] = p.damping*next[i] + (1-p.damping)*ell[i]
		}
		if diff < p.tol {
			converged = true
			break
		}
	}
	if !converged {
		return nil, errors.NewWithContext(errors.ErrCodeConvergence,
			"marginal utility fixed point did not converge", map[string]any{
				"beta":       beta,
				"iterations": p.maxIter,
				"tolerance":  p.tol,
			})
	}

	cons := make([]float64, n)
	saving := make([]float64, n)
	for si := 0; si < ns; si++ {
		for xi := 0; xi < nx; xi++ {
			i := grid.FlatIndex(xi, si, nx)
			if !feasible[i] {
				cons[i] = minConsumption
				saving[i] = p.borrow
				continue
			}
			c := math.Pow(ell[i], -1.0/p.gamma) + p.disutil[si]
			a := p.cash.Points[xi] - c
			if a < p.borrow {
				a = p.borrow
				c = p.cash.Points[xi] - p.borrow
			}
			cons[i] = c
			saving[i] = a
		}
	}

	density, assets, err := p.stationaryDensity(saving)
	if err != nil {
		return nil, err
	}

	return &ssResult{
		ell:     ell,
		cons:    cons,
		saving:  saving,
		density: density,
		assets:  assets,
	}, nil
}

// iterate performs one time-iteration sweep, writing the updated
// marginal utility into next and returning the sup-norm change over
// feasible nodes. Infeasible nodes carry their value unchanged.
func (p *ssProblem) iterate(beta float64, ell, next []float64, feasible []bool) float64 {
	nx := p.cash.Len()
	ns := p.skill.Len()

	diff := 0.0
	for si := 0; si < ns; si++ {
		for xi := 0; xi < nx; xi++ {
			i := grid.FlatIndex(xi, si, nx)
			if !feasible[i] {
				next[i] = ell[i]
				continue
			}
			x := p.cash.Points[xi]

			// asset choice implied by the current marginal utility
			c := math.Pow(ell[i], -1.0/p.gamma) + p.disutil[si]
			a := x - c
			if a < p.borrow {
				a = p.borrow
			}

			// skill draws are iid, so the conditional expectation uses
			// the stationary weights for every current state
			expect := 0.0
			for sj := 0; sj < ns; sj++ {
				xNext := p.rate*a + p.income[sj]
				expect += p.skill.Stationary[sj] * p.interpolate(ell, xNext, sj)
			}

			v := beta * p.rate * expect
			constrained := math.Pow(
				math.Max(x-p.borrow-p.disutil[si], minConsumption), -p.gamma)
			if constrained > v {
				v = constrained
			}

			next[i] = v
			if d := math.Abs(v - ell[i]); d > diff {
				diff = d
			}
		}
	}
	return diff
}

// interpolate evaluates the marginal utility function at cash level x
// for skill state si by linear interpolation, clamped at the grid edges.
func (p *ssProblem) interpolate(ell []float64, x float64, si int) float64 {
	nx := p.cash.Len()
	pts := p.cash.Points

	if x <= pts[0] {
		return ell[grid.FlatIndex(0, si, nx)]
	}
	if x >= pts[nx-1] {
		return ell[grid.FlatIndex(nx-1, si, nx)]
	}

	j := int((x - pts[0]) / (pts[1] - pts[0]))
	if j > nx-2 {
		j = nx - 2
	}
	w := (x - pts[j]) / (pts[j+1] - pts[j])
	lo := ell[grid.FlatIndex(j, si, nx)]
	hi := ell[grid.FlatIndex(j+1, si, nx)]
	return (1-w)*lo + w*hi
}

// stationaryDensity iterates the distribution implied by the savings
// policy to its fixed point. Off-grid transitions are split between the
// two bracketing cash nodes with lottery weights that preserve the mean.
// The returned slice holds densities against the product-grid quadrature
// weights, so they integrate to one.
func (p *ssProblem) stationaryDensity(saving []float64) ([]float64, float64, error) {
	nx := p.cash.Len()
	ns := p.skill.Len()
	n := nx * ns
	pts := p.cash.Points

	mass := make([]float64, n)
	for si := 0; si < ns; si++ {
		for xi := 0; xi < nx; xi++ {
			mass[grid.FlatIndex(xi, si, nx)] = p.skill.Stationary[si] / float64(nx)
		}
	}

	next := make([]float64, n)
	converged := false
	for it := 0; it < p.maxIter; it++ {
		for i := range next {
			next[i] = 0
		}
		for si := 0; si < ns; si++ {
			for xi := 0; xi < nx; xi++ {
				i := grid.FlatIndex(xi, si, nx)
				if mass[i] == 0 {
					continue
				}
				for sj := 0; sj < ns; sj++ {
					xNext := p.rate*saving[i] + p.income[sj]
					prob := mass[i] * p.skill.Stationary[sj]

					j, w := lotteryWeight(pts, xNext)
					next[grid.FlatIndex(j, sj, nx)] += prob * (1 - w)
					if j+1 < nx {
						next[grid.FlatIndex(j+1, sj, nx)] += prob * w
					} else {
						next[grid.FlatIndex(j, sj, nx)] += prob * w
					}
				}
			}
		}

		// renormalize every sweep so lottery clipping cannot leak mass
		total := floats.Sum(next)
		if total <= 0 {
			return nil, 0, errors.New(errors.ErrCodeConvergence,
				"stationary density degenerated to zero mass")
		}
		floats.Scale(1/total, next)

		diff := 0.0
		for i := range mass {
			if d := math.Abs(next[i] - mass[i]); d > diff {
				diff = d
			}
		}
		copy(mass, next)
		if diff < p.tol {
			converged = true
			break
		}
	}
	if !converged {
		return nil, 0, errors.NewWithContext(errors.ErrCodeConvergence,
			"stationary density iteration did not converge", map[string]any{
				"iterations": p.maxIter,
				"tolerance":  p.tol,
			})
	}

	assets := 0.0
	for i := range mass {
		assets += mass[i] * saving[i]
	}

	// convert point masses to densities against the quadrature weights
	density := make([]float64, n)
	cashW := p.cash.Scale / float64(nx)
	for si := 0; si < ns; si++ {
		for xi := 0; xi < nx; xi++ {
			i := grid.FlatIndex(xi, si, nx)
			density[i] = mass[i] / (cashW * p.skill.Stationary[si])
		}
	}
	return density, assets, nil
}

// lotteryWeight locates the cash node bracketing x from below and the
// weight on the node above it.
func lotteryWeight(pts []float64, x float64) (int, float64) {
	nx := len(pts)
	if x <= pts[0] {
		return 0, 0
	}
	if x >= pts[nx-1] {
		return nx - 1, 0
	}
	j := int((x - pts[0]) / (pts[1] - pts[0]))
	if j > nx-2 {
		j = nx - 2
	}
	return j, (x - pts[j]) / (pts[j+1] - pts[j])
}
