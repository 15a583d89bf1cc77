/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIndicesCmd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "indices.json")

	cmd := indicesCmd()
	err := cmd.Run(context.Background(),
		[]string{"indices", "--testing", "--format", "json", "--output", out})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	for _, want := range []string{"mu_prime", "z_prime", "l_prime", "r_prime", "eq_euler"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestIndicesCmd_ExplicitSizes(t *testing.T) {
	out := filepath.Join(t.TempDir(), "indices.json")

	cmd := indicesCmd()
	err := cmd.Run(context.Background(), []string{
		"indices", "--nx", "50", "--ns", "2", "--normalized",
		"--format", "json", "--output", out})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	var decoded struct {
		States []struct {
			Name  string `json:"name"`
			Range struct {
				Start int `json:"start"`
				Stop  int `json:"stop"`
			} `json:"range"`
		} `json:"endogenous_states"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}

	// the distribution block loses one slot under normalization
	found := false
	for _, s := range decoded.States {
		if s.Name == "mu_prime" {
			found = true
			if s.Range.Start != 1 || s.Range.Stop != 99 {
				t.Errorf("mu_prime range = [%d, %d], want [1, 99]",
					s.Range.Start, s.Range.Stop)
			}
		}
	}
	if !found {
		t.Errorf("normalized layout missing mu_prime: %s", data)
	}
}

func TestIndicesCmd_InvalidSizes(t *testing.T) {
	cmd := indicesCmd()
	err := cmd.Run(context.Background(), []string{"indices", "--nx", "1", "--ns", "0"})
	if err == nil {
		t.Fatal("expected error for invalid grid sizes")
	}
}

func TestIndicesCmd_UnknownFormat(t *testing.T) {
	cmd := indicesCmd()
	err := cmd.Run(context.Background(), []string{"indices", "--format", "xml"})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestSteadyStateCmd(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "summary.yaml")
	params := filepath.Join(dir, "overrides.yaml")
	if err := os.WriteFile(params, []byte("gamma: 2.0\n"), 0o600); err != nil {
		t.Fatalf("failed to write overrides: %v", err)
	}

	cmd := steadyStateCmd()
	err := cmd.Run(context.Background(), []string{
		"steadystate", "--testing", "--params", params, "--output", out})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(data), "beta_star") {
		t.Error("summary missing steady-state discount factor")
	}
}

func TestSteadyStateCmd_UnknownOverride(t *testing.T) {
	dir := t.TempDir()
	params := filepath.Join(dir, "overrides.yaml")
	if err := os.WriteFile(params, []byte("not_a_parameter: 1.0\n"), 0o600); err != nil {
		t.Fatalf("failed to write overrides: %v", err)
	}

	cmd := steadyStateCmd()
	err := cmd.Run(context.Background(), []string{
		"steadystate", "--testing", "--params", params})
	if err == nil {
		t.Fatal("expected error for unknown parameter override")
	}
}

func TestBatchCmd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "batch.json")

	cmd := batchCmd()
	err := cmd.Run(context.Background(), []string{
		"batch", "--testing", "--count", "2", "--workers", "2",
		"--format", "json", "--output", out})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(data), "discount") {
		t.Errorf("batch report missing discount column: %s", data)
	}
}

func TestBatchCmd_InvalidCount(t *testing.T) {
	cmd := batchCmd()
	err := cmd.Run(context.Background(), []string{"batch", "--count", "0"})
	if err == nil {
		t.Fatal("expected error for non-positive count")
	}
}
