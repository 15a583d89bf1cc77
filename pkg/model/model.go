// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"github.com/mchmarny/dsgekit/pkg/indices"
	"github.com/mchmarny/dsgekit/pkg/param"
	"github.com/mchmarny/dsgekit/pkg/settings"
)

// Model is the capability interface concrete models implement. It exposes
// the registries a model owns; the package-level facade functions below
// are what external collaborators call.
type Model interface {
	// Name returns the model's identifier (e.g. "bond_labor").
	Name() string
	// Description returns a human-readable summary of the model.
	Description() string
	// Parameters returns the model's parameter and steady-state registry.
	Parameters() *param.Registry
	// Settings returns the model's configuration registry.
	Settings() *settings.Registry
	// Indices returns the model's index map.
	Indices() *indices.Map
	// Testing reports whether test-mode setting overrides are in effect.
	Testing() bool
	// SolveSteadyState recomputes every steady-state entry from current
	// parameter values, atomically.
	SolveSteadyState() error
}

// GetParameter returns a parameter value by name.
func GetParameter(m Model, name string) (float64, error) {
	return m.Parameters().Get(name)
}

// SetParameter updates a parameter value by name. Steady-state values are
// stale afterwards until SolveSteadyState runs again.
func SetParameter(m Model, name string, value float64) error {
	return m.Parameters().Set(name, value)
}

// GetSteadyState returns the values of a steady-state entry: a one-element
// slice for scalars, the full vector for grid-valued entries.
func GetSteadyState(m Model, name string) ([]float64, error) {
	return m.Parameters().SteadyStateValues(name)
}

// GetSetting returns the effective setting value for the model's mode.
func GetSetting(m Model, key string) (settings.Value, error) {
	return m.Settings().Get(key, m.Testing())
}

// GetIndexRange returns the index range for a name within a category.
func GetIndexRange(m Model, category indices.Category, name string) (indices.Range, error) {
	return m.Indices().Range(category, name)
}

// SolveSteadyState recomputes the model's steady state. Estimation
// collaborators must call it after any parameter mutation, before any
// equilibrium-condition evaluation.
func SolveSteadyState(m Model) error {
	return m.SolveSteadyState()
}
