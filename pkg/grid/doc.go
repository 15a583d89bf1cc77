// Package grid builds the quadrature grids and discretized stochastic
// processes used by heterogeneous-agent models.
//
// The package covers three concerns:
//   - One-dimensional quadrature grids with evenly spaced points and a
//     scale factor (NewUniform).
//   - Tauchen-style discretization of a log-normal skill process into a
//     finite Markov chain (DiscretizeAR1).
//   - Tensor products of two grids into flattened point and weight
//     vectors (TensorProduct).
//
// The tensor product flattening convention is load-bearing: the first
// grid varies fastest, so flat index i corresponds to (ai, bi) via
// i = ai + bi*len(a). Every distributional vector in the toolkit (densities,
// policies, steady-state values) uses this same ordering, and the index
// maps in pkg/indices assume it.
package grid
