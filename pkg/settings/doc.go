// Package settings provides the named, typed configuration registry owned
// by each model instance.
//
// Every setting carries a typed value, a human-readable description, and a
// flag for whether the value differs between production and test modes.
// Test-mode overrides live in a parallel map; exactly one effective value
// is visible at a time, selected by the model's testing flag.
//
// Settings may derive from other settings (for example
// n_model_states = n_states + n_jumps). Derived settings are evaluated
// eagerly at definition time from already-registered keys, so definition
// order matters and cycles are impossible by construction; referencing an
// unregistered key fails with CIRCULAR_SETTING.
package settings
