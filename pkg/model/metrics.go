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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Steady-state solve metrics
	ssSolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dsgekit_steadystate_solve_duration_seconds",
			Help:    "Duration of steady-state solves in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	ssSolveTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dsgekit_steadystate_solves_total",
			Help: "Total number of steady-state solves attempted",
		},
	)
	ssSolveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dsgekit_steadystate_solve_failures_total",
			Help: "Total number of steady-state solves that failed to converge",
		},
	)
)
