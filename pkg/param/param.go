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

package param

import "math"

// Transform maps a bounded parameter into unconstrained estimation space.
type Transform string

const (
	// TransformIdentity leaves the parameter untransformed.
	TransformIdentity Transform = "identity"
	// TransformExp estimates the log of a strictly positive parameter.
	TransformExp Transform = "exp"
	// TransformLogit estimates the log-odds of a parameter bounded on (0, 1).
	TransformLogit Transform = "logit"
)

// ToUnconstrained maps a model-space value into estimation space.
func (t Transform) ToUnconstrained(v float64) float64 {
	switch t {
	case TransformExp:
		return math.Log(v)
	case TransformLogit:
		return math.Log(v / (1 - v))
	default:
		return v
	}
}

// FromUnconstrained maps an estimation-space value back into model space.
func (t Transform) FromUnconstrained(v float64) float64 {
	switch t {
	case TransformExp:
		return math.Exp(v)
	case TransformLogit:
		return 1 / (1 + math.Exp(-v))
	default:
		return v
	}
}

// Bounds restrict a parameter's admissible values during estimation.
type Bounds struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// Prior is the distribution interface estimation routines draw from and
// score against. The gonum distuv distributions satisfy it.
type Prior interface {
	LogProb(x float64) float64
	Rand() float64
}

// Parameter is a named scalar with estimation metadata. Identity is the
// name, unique within a model. Values mutate during estimation or
// calibration; parameters are never removed during a session.
type Parameter struct {
	Name        string    `json:"name" yaml:"name"`
	Value       float64   `json:"value" yaml:"value"`
	Bounds      *Bounds   `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Fixed       bool      `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Transform   Transform `json:"transform,omitempty" yaml:"transform,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`

	Prior Prior `json:"-" yaml:"-"`
}

// Option mutates a Parameter at definition time.
type Option func(*Parameter)

// WithBounds sets the estimation bounds.
func WithBounds(lower, upper float64) Option {
	return func(p *Parameter) {
		p.Bounds = &Bounds{Lower: lower, Upper: upper}
	}
}

// WithPrior sets the prior distribution used during estimation.
func WithPrior(prior Prior) Option {
	return func(p *Parameter) {
		p.Prior = prior
	}
}

// Fixed marks the parameter as excluded from estimation.
func Fixed() Option {
	return func(p *Parameter) {
		p.Fixed = true
	}
}

// WithTransform sets the estimation-space transform.
func WithTransform(t Transform) Option {
	return func(p *Parameter) {
		p.Transform = t
	}
}

// WithDescription sets the free-text description.
func WithDescription(d string) Option {
	return func(p *Parameter) {
		p.Description = d
	}
}

// WithLabel sets the display label (typically TeX).
func WithLabel(l string) Option {
	return func(p *Parameter) {
		p.Label = l
	}
}
