// Package indices computes the contiguous index ranges that lay out a
// heterogeneous-agent model's variables for a linearized rational-
// expectations solution (Klein's method).
//
// Five categories are tracked: endogenous states, exogenous shocks,
// expected shocks, equilibrium conditions, and observables. Each category
// is an ordered name-to-range collection; grid-valued (distributional)
// variables occupy contiguous ranges of nx*ns slots, scalar variables a
// single slot. Ranges are 1-based and inclusive.
//
// The state layout interleaves distributional and scalar variables
// (distribution, scalar, distribution, scalar); the equation layout
// mirrors it block-for-block. The flattened ordering inside a
// distributional range follows the tensor-product convention of pkg/grid:
// the cash grid varies fastest.
//
// Normalize derives a second map with one degree of freedom removed per
// distributional variable (densities integrate to 1, so one point is
// redundant). The transform is optional and not applied during model
// construction; its final semantics are still under validation, so callers
// opting in should treat normalized maps as experimental.
package indices
