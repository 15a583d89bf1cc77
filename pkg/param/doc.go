// Package param provides the ordered parameter and steady-state registries
// owned by each model instance.
//
// Parameters are named scalars carrying estimation metadata: optional
// bounds, an optional prior distribution, a fixed/free flag, a transform
// into unconstrained estimation space, and free-text description/label.
// Steady-state entries are derived quantities, scalar or grid-valued,
// recomputed by a steady-state solve whenever upstream parameter values
// change. The registry does not track that dependency; callers re-invoke
// the solver after mutating parameters.
//
// Steady-state updates are atomic: solvers compute into a Stage and commit
// it in one swap, so a failed solve never leaves a mix of old and new
// values.
package param
