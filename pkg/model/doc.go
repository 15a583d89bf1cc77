// Package model aggregates grids, parameters, settings, and index maps
// into complete model instances, and defines the facade that estimation
// and forecasting collaborators program against.
//
// # Construction order
//
// Model construction is strictly ordered: settings first (grid sizes live
// there), then parameters (which may read grid-size settings), then grids
// (which read skill-process parameter values), then the index map, then an
// optional steady-state solve. Any stage failure aborts construction; no
// partial model is returned.
//
// # Ownership
//
// Every model instance exclusively owns its registries and its random
// number stream. Building several models in parallel (multi-start
// estimation) is safe because nothing mutable is shared; each New call
// produces fresh registries seeded explicitly.
//
// # Staleness
//
// Steady-state values are pure functions of parameter values, but the
// registry does not auto-track the dependency. Callers that mutate a
// parameter must re-invoke SolveSteadyState before evaluating equilibrium
// conditions.
package model
