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

package settings

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// AllowedScalar is a constraint (compile-time) for what we allow as
// setting values.
type AllowedScalar interface {
	~int | ~float64 | ~bool | ~string
}

// Value is a *runtime* interface (so settings of mixed types can share one
// registry map).
type Value interface {
	isValue()
	Any() any
	String() string

	json.Marshaler
	yaml.Marshaler
}

// Scalar wraps an allowed scalar type.
// This is how we keep compile-time constraints while still using a runtime interface.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isValue() {}

func (s Scalar[T]) Any() any { return s.V }

// String returns the string representation of the underlying scalar value.
func (s Scalar[T]) String() string {
	return fmt.Sprintf("%v", s.V)
}

// MarshalJSON makes the JSON value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}

// MarshalYAML makes the YAML value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalYAML() (any, error) {
	return s.V, nil
}

// Convenience constructors for each allowed scalar type.
func Int(v int) Value       { return Scalar[int]{V: v} }
func Float(v float64) Value { return Scalar[float64]{V: v} }
func Bool(v bool) Value     { return Scalar[bool]{V: v} }
func Str(v string) Value    { return Scalar[string]{V: v} }

// AsInt extracts an int from a Value, returning false if the
// underlying type differs.
func AsInt(v Value) (int, bool) {
	i, ok := v.Any().(int)
	return i, ok
}

// AsFloat extracts a float64 from a Value. Integer-typed values are
// widened, so numeric settings can be consumed uniformly.
func AsFloat(v Value) (float64, bool) {
	switch x := v.Any().(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

// AsBool extracts a bool from a Value, returning false if the
// underlying type differs.
func AsBool(v Value) (bool, bool) {
	b, ok := v.Any().(bool)
	return b, ok
}

// AsString extracts a string from a Value, returning false if the
// underlying type differs.
func AsString(v Value) (string, bool) {
	s, ok := v.Any().(string)
	return s, ok
}
