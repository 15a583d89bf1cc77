/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/dsgekit/pkg/logging"
	"github.com/mchmarny/dsgekit/pkg/serializer"
)

const (
	name           = "dsgekit"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage: fmt.Sprintf("Output format (supported values: %s)",
			serializer.SupportedFormats()),
	}
	testingFlag = &cli.BoolFlag{
		Name:  "testing",
		Usage: "Use test-mode settings (small grids, loose tolerances)",
	}
	seedFlag = &cli.UintFlag{
		Name:  "seed",
		Value: 1,
		Usage: "Seed for the model's random number stream",
	}
	vintageFlag = &cli.StringFlag{
		Name:  "vintage",
		Usage: "Data vintage stamp recorded in model settings (e.g., 20250101)",
	}
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Heterogeneous-agent macro model toolkit",
		Description: `Tooling for the bond-and-labor heterogeneous-agent model:

indices     - print the state and equation index layout
steadystate - solve the stationary equilibrium
batch       - solve many independently seeded instances in parallel`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Usage:   "Log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			indicesCmd(),
			steadyStateCmd(),
			batchCmd(),
		},
	}
}

// Execute runs the CLI. It is called by main.main and handles
// SIGINT/SIGTERM for graceful cancellation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newSerializer builds the output writer from shared flags and validates
// the requested format.
func newSerializer(cmd *cli.Command) (serializer.Serializer, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return nil, fmt.Errorf("unknown output format: %q", f)
	}
	return serializer.NewFileWriterOrStdout(f, cmd.String("output")), nil
}

// closeSerializer releases the writer's resources when it holds any.
func closeSerializer(ser serializer.Serializer) {
	if closer, ok := ser.(serializer.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}
}
