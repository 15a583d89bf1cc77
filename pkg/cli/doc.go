// Package cli implements the command-line interface for the dsgekit tool.
//
// # Overview
//
// The dsgekit CLI provides commands for inspecting the index layout of the
// bond-and-labor heterogeneous-agent model, solving its stationary
// equilibrium, and running batches of independently seeded solves. It is
// designed for researchers calibrating and estimating the model.
//
// # Commands
//
// indices - print the index layout:
//
//	dsgekit indices [--testing] [--output FILE] [--format yaml|json|table]
//
// Builds the model and prints the 1-based inclusive index ranges for
// endogenous states, exogenous shocks, expected shocks, equilibrium
// conditions, and observables.
//
// steadystate - solve the stationary equilibrium:
//
//	dsgekit steadystate [--params overrides.yaml] [--seed N] [--vintage STAMP]
//
// Builds the model, applies optional parameter overrides from a JSON or
// YAML file, solves the household block, and prints the model summary
// including the discount factor that clears the bond market.
//
// batch - parallel multi-start solves:
//
//	dsgekit batch --count 16 --workers 8 [--testing]
//
// Constructs count model instances, each with its own registries and
// random stream, draws free parameters from their priors, solves each
// instance concurrently, and reports the per-instance discount factor.
//
// # Global Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//	--log-level    Log verbosity: debug, info, warn, error (default: info)
//
// # Environment Variables
//
//	LOG_LEVEL  Set logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, solve failure)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/model - model construction and steady-state solving
//   - pkg/serializer - output formatting
//   - pkg/logging - structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/mchmarny/dsgekit/pkg/cli.version=1.0.0'"
package cli
