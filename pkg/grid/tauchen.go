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

package grid

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mchmarny/dsgekit/pkg/errors"
)

// Chain is a finite Markov-chain approximation of a continuous stochastic
// process. Points are in log space; callers exponentiate for levels.
// Stationary holds the chain's invariant distribution, Transition the
// conditional transition probabilities (rows sum to 1), and Scale the raw
// truncated probability mass before renormalization.
type Chain struct {
	Points     []float64 `json:"points" yaml:"points"`
	Stationary []float64 `json:"stationary" yaml:"stationary"`
	Scale      float64   `json:"scale" yaml:"scale"`

	Transition *mat.Dense `json:"-" yaml:"-"`
}

// Len returns the number of chain states.
func (c *Chain) Len() int {
	return len(c.Points)
}

// LevelGrid converts the chain into a quadrature grid over process levels:
// points are exponentiated and the stationary distribution supplies the
// weights.
func (c *Chain) LevelGrid() *Grid {
	points := make([]float64, len(c.Points))
	for i, p := range c.Points {
		points[i] = math.Exp(p)
	}
	weights := make([]float64, len(c.Stationary))
	copy(weights, c.Stationary)
	return &Grid{
		Points:  points,
		Weights: weights,
		Scale:   c.Scale,
	}
}

// DiscretizeAR1 approximates a log-normal stochastic process with an
// n-state Markov chain, Tauchen-style. The log-space points span
// width standard deviations either side of mean; bin probabilities come
// from the Normal CDF evaluated at bin midpoints and are renormalized so
// the stationary distribution sums to 1.
func DiscretizeAR1(mean, stdDev float64, n int, width float64) (*Chain, error) {
	if n < 2 {
		return nil, errors.Newf(errors.ErrCodeInvalidRange, "chain must have at least 2 states, got %d", n)
	}
	if stdDev <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidRange, "standard deviation must be positive, got %g", stdDev)
	}
	if width <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidRange, "width must be positive, got %g", width)
	}

	lo := mean - width*stdDev
	hi := mean + width*stdDev
	step := (hi - lo) / float64(n-1)

	points := make([]float64, n)
	for i := range points {
		points[i] = lo + step*float64(i)
	}
	points[n-1] = hi

	dist := distuv.Normal{Mu: mean, Sigma: stdDev}

	// Bin mass around each point from CDF midpoints. The two tail bins are
	// open-ended only up to the truncation bounds, so the raw mass falls
	// short of 1; that shortfall is the Scale normalizer.
	raw := make([]float64, n)
	for i, p := range points {
		lower := p - step/2
		upper := p + step/2
		raw[i] = dist.CDF(upper) - dist.CDF(lower)
	}

	mass := floats.Sum(raw)
	if mass <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidRange, "degenerate discretization: zero probability mass on [%g, %g]", lo, hi)
	}

	stationary := make([]float64, n)
	for i := range raw {
		stationary[i] = raw[i] / mass
	}

	// Skill draws are independent across periods, so every row of the
	// transition matrix is the stationary distribution.
	transition := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		transition.SetRow(i, stationary)
	}

	return &Chain{
		Points:     points,
		Stationary: stationary,
		Scale:      mass,
		Transition: transition,
	}, nil
}
