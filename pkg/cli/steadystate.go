/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/dsgekit/pkg/model"
	"github.com/mchmarny/dsgekit/pkg/serializer"
)

func steadyStateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "steadystate",
		EnableShellCompletion: true,
		Usage:                 "Solve the stationary equilibrium",
		Description: `Build the model, optionally apply parameter overrides, solve the
stationary equilibrium of the household block, and print the model
summary including the discount factor that clears the bond market.

Parameter overrides come from a JSON or YAML file mapping parameter
names to values, e.g.:

  gamma: 2.0
  sigma_s: 0.25

The summary can be output in JSON, YAML, or table format.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "params",
				Aliases: []string{"p"},
				Usage:   "Path to a JSON/YAML file with parameter overrides",
			},
			testingFlag,
			seedFlag,
			vintageFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := []model.Option{
				model.WithTesting(cmd.Bool("testing")),
				model.WithSeed(uint64(cmd.Uint("seed"))),
			}
			if v := cmd.String("vintage"); v != "" {
				opts = append(opts, model.WithVintage(v))
			}

			m, err := model.New(opts...)
			if err != nil {
				return fmt.Errorf("error building model: %w", err)
			}

			if path := cmd.String("params"); path != "" {
				overrides, err := serializer.FromFile[map[string]float64](path)
				if err != nil {
					return fmt.Errorf("failed to load parameter overrides from %q: %w", path, err)
				}
				for name, value := range *overrides {
					if err := m.Parameters().Set(name, value); err != nil {
						return fmt.Errorf("error applying override %s=%v: %w", name, value, err)
					}
				}
			}

			if err := m.SolveSteadyState(); err != nil {
				return fmt.Errorf("error solving steady state: %w", err)
			}

			ser, err := newSerializer(cmd)
			if err != nil {
				return err
			}
			defer closeSerializer(ser)

			return ser.Serialize(m.Summarize())
		},
	}
}
