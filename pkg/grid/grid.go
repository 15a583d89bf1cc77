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
	"gonum.org/v1/gonum/floats"

	"github.com/mchmarny/dsgekit/pkg/errors"
)

// Grid is an immutable set of quadrature points with associated weights
// and a scale factor. Points are strictly increasing.
type Grid struct {
	Points  []float64 `json:"points" yaml:"points"`
	Weights []float64 `json:"weights" yaml:"weights"`
	Scale   float64   `json:"scale" yaml:"scale"`
}

// Len returns the number of grid points.
func (g *Grid) Len() int {
	return len(g.Points)
}

// WeightSum returns the total quadrature mass of the grid.
func (g *Grid) WeightSum() float64 {
	return floats.Sum(g.Weights)
}

// NewUniform builds a grid of n evenly spaced points on [low, high],
// inclusive of both endpoints, with uniform quadrature weights scale/n.
// A single-point grid collapses to the point low with weight scale.
func NewUniform(low, high float64, n int, scale float64) (*Grid, error) {
	if n < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidRange, "grid size must be at least 1, got %d", n)
	}
	if low >= high {
		return nil, errors.Newf(errors.ErrCodeInvalidRange, "grid bounds must satisfy low < high, got [%g, %g]", low, high)
	}

	points := make([]float64, n)
	if n == 1 {
		points[0] = low
	} else {
		step := (high - low) / float64(n-1)
		for i := range points {
			points[i] = low + step*float64(i)
		}
		// guard against accumulation drift on the last point
		points[n-1] = high
	}

	weights := make([]float64, n)
	w := scale / float64(n)
	for i := range weights {
		weights[i] = w
	}

	return &Grid{
		Points:  points,
		Weights: weights,
		Scale:   scale,
	}, nil
}
