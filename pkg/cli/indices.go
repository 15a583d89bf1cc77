/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/dsgekit/pkg/indices"
	"github.com/mchmarny/dsgekit/pkg/model"
)

func indicesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "indices",
		EnableShellCompletion: true,
		Usage:                 "Print the model's state and equation index layout",
		Description: `Build the model and print its index map: endogenous states, exogenous
shocks, expected shocks, equilibrium conditions, and observables, each
with 1-based inclusive ranges.

With --nx and --ns the layout is built directly for the given grid
sizes instead of from the model's settings. --normalized applies the
one-degree-of-freedom reduction to distributional blocks.

The layout can be output in JSON, YAML, or table format.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "nx",
				Usage: "Cash-on-hand grid size (default: from model settings)",
			},
			&cli.IntFlag{
				Name:  "ns",
				Usage: "Skill grid size (default: from model settings)",
			},
			&cli.BoolFlag{
				Name:  "normalized",
				Usage: "Apply the one-degree-of-freedom reduction to distributional blocks",
			},
			testingFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var (
				idx *indices.Map
				err error
			)

			if cmd.Int("nx") > 0 || cmd.Int("ns") > 0 {
				names := make([]string, 0, 2)
				for _, o := range model.DefaultObservables() {
					names = append(names, o.Name)
				}
				idx, err = indices.Build(cmd.Int("nx"), cmd.Int("ns"), names)
				if err != nil {
					return fmt.Errorf("error building index map: %w", err)
				}
			} else {
				m, err := model.New(
					model.WithTesting(cmd.Bool("testing")),
				)
				if err != nil {
					return fmt.Errorf("error building model: %w", err)
				}
				idx = m.Indices()
			}

			if cmd.Bool("normalized") {
				idx = indices.Normalize(idx, true)
			}

			ser, err := newSerializer(cmd)
			if err != nil {
				return err
			}
			defer closeSerializer(ser)

			return ser.Serialize(idx)
		},
	}
}
