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

// Normalize derives a second index map from m. When oneDofRemoved is true,
// every distributional (multi-slot) range in every category is shortened
// by one slot at its end, because cross-sectional densities integrate to 1
// and one point is redundant; scalar ranges after it shift left by the
// cumulative removed count. Relative ordering and contiguity are
// preserved, and the very first range keeps its start anchored at 1.
//
// When oneDofRemoved is false, the result is a plain copy. The transform
// is optional and never applied during model construction; the normalized
// layout is still being validated against the downstream solver, so
// treat it as experimental.
func Normalize(m *Map, oneDofRemoved bool) *Map {
	out := &Map{
		States:      normalizeBlock(m.States, oneDofRemoved),
		Shocks:      normalizeBlock(m.Shocks, oneDofRemoved),
		Expected:    normalizeBlock(m.Expected, oneDofRemoved),
		Equations:   normalizeBlock(m.Equations, oneDofRemoved),
		Observables: normalizeBlock(m.Observables, oneDofRemoved),
		Nx:          m.Nx,
		Ns:          m.Ns,
		Normalized:  oneDofRemoved,
	}
	return out
}

func normalizeBlock(b *Block, oneDofRemoved bool) *Block {
	out := newBlock()
	removed := 0
	for _, e := range b.entries {
		r := Range{
			Start: e.Range.Start - removed,
			Stop:  e.Range.Stop - removed,
		}
		if oneDofRemoved && !e.Range.Scalar() {
			r.Stop--
			removed++
		}
		// duplicate names cannot occur when copying a valid block
		_ = out.add(e.Name, r)
	}
	return out
}
