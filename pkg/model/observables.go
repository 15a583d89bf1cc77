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

// Observable maps a model variable to an external data series. The core
// only consumes the name ordering, to populate the observable index
// category; data loading and transforms belong to external collaborators.
type Observable struct {
	Name      string `json:"name" yaml:"name"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty"`
	Transform string `json:"transform,omitempty" yaml:"transform,omitempty"`
}

// DefaultObservables returns the observable set the BondLabor model ships
// with. Callers supply their own set via WithObservables to change the
// observable block of the index map.
func DefaultObservables() []Observable {
	return []Observable{
		{Name: "obs_gdp", Source: "fred/GDPC1", Transform: "log_difference"},
		{Name: "obs_rate", Source: "fred/DFF", Transform: "quarterly_average"},
	}
}

func observableNames(obs []Observable) []string {
	names := make([]string, len(obs))
	for i, o := range obs {
		names[i] = o.Name
	}
	return names
}
