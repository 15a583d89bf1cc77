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

import "gonum.org/v1/gonum/floats"

// Product is the tensor product of two grids, flattened into vectors of
// length Na*Nb. PointsA repeats the first grid fastest, PointsB the second
// grid slowest; Weights multiply pointwise. Flat index i maps to
// (ai, bi) = (i % Na, i / Na).
type Product struct {
	PointsA []float64 `json:"points_a" yaml:"points_a"`
	PointsB []float64 `json:"points_b" yaml:"points_b"`
	Weights []float64 `json:"weights" yaml:"weights"`
	Na      int       `json:"na" yaml:"na"`
	Nb      int       `json:"nb" yaml:"nb"`
}

// Len returns the flattened product length Na*Nb.
func (p *Product) Len() int {
	return p.Na * p.Nb
}

// WeightSum returns the total quadrature mass of the product grid.
func (p *Product) WeightSum() float64 {
	return floats.Sum(p.Weights)
}

// FlatIndex maps grid coordinates to the flat product index. The first
// grid varies fastest.
func FlatIndex(ai, bi, na int) int {
	return ai + bi*na
}

// TensorProduct combines two grids into flattened point and weight vectors.
// The first grid varies fastest: flat index i = ai + bi*len(a). Any
// distributional vector of the same total length must use this ordering.
func TensorProduct(a, b *Grid) *Product {
	na := a.Len()
	nb := b.Len()
	total := na * nb

	p := &Product{
		PointsA: make([]float64, total),
		PointsB: make([]float64, total),
		Weights: make([]float64, total),
		Na:      na,
		Nb:      nb,
	}

	for bi := 0; bi < nb; bi++ {
		for ai := 0; ai < na; ai++ {
			i := FlatIndex(ai, bi, na)
			p.PointsA[i] = a.Points[ai]
			p.PointsB[i] = b.Points[bi]
			p.Weights[i] = a.Weights[ai] * b.Weights[bi]
		}
	}

	return p
}
