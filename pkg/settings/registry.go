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
	"github.com/mchmarny/dsgekit/pkg/errors"
)

// Setting is a named, typed configuration entry.
type Setting struct {
	Key           string `json:"key" yaml:"key"`
	Value         Value  `json:"value" yaml:"value"`
	ModeDependent bool   `json:"mode_dependent,omitempty" yaml:"mode_dependent,omitempty"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Registry holds production settings and their test-mode overrides.
// Insertion order of production keys is preserved for reporting.
type Registry struct {
	prod  map[string]*Setting
	test  map[string]*Setting
	order []string
}

// NewRegistry creates an empty settings registry.
func NewRegistry() *Registry {
	return &Registry{
		prod: make(map[string]*Setting),
		test: make(map[string]*Setting),
	}
}

// Define registers a production setting. Re-registering a key fails with
// DUPLICATE_NAME.
func (r *Registry) Define(key string, value Value, modeDependent bool, description string) error {
	if _, exists := r.prod[key]; exists {
		return errors.Newf(errors.ErrCodeDuplicateName, "setting %q already registered", key)
	}
	r.prod[key] = &Setting{
		Key:           key,
		Value:         value,
		ModeDependent: modeDependent,
		Description:   description,
	}
	r.order = append(r.order, key)
	return nil
}

// DefineTest registers a test-mode override for key. The production
// setting need not exist yet, but the same test key cannot be registered
// twice.
func (r *Registry) DefineTest(key string, value Value, description string) error {
	if _, exists := r.test[key]; exists {
		return errors.Newf(errors.ErrCodeDuplicateName, "test setting %q already registered", key)
	}
	r.test[key] = &Setting{
		Key:           key,
		Value:         value,
		ModeDependent: true,
		Description:   description,
	}
	return nil
}

// DefineDerived registers a setting computed eagerly from already-defined
// settings. The production value derives from production deps. When any
// dep carries a test override, a test value is derived as well, so the
// derived setting stays consistent in both modes. A dep that is not yet
// registered fails with CIRCULAR_SETTING: deriving from it would require
// lazy or circular evaluation.
func (r *Registry) DefineDerived(key string, deps []string, derive func(vals ...Value) Value, description string) error {
	prodVals := make([]Value, len(deps))
	testVals := make([]Value, len(deps))
	anyTestDep := false

	for i, dep := range deps {
		s, ok := r.prod[dep]
		if !ok {
			return errors.Newf(errors.ErrCodeCircularSetting,
				"derived setting %q references %q, which is not yet defined", key, dep)
		}
		prodVals[i] = s.Value
		testVals[i] = s.Value
		if ts, ok := r.test[dep]; ok {
			testVals[i] = ts.Value
			anyTestDep = true
		}
	}

	if err := r.Define(key, derive(prodVals...), anyTestDep, description); err != nil {
		return err
	}
	if anyTestDep {
		return r.DefineTest(key, derive(testVals...), description)
	}
	return nil
}

// Get returns the effective value for key. When testing is true and a
// test-mode override exists it wins; otherwise the production value is
// returned. A miss in the selected map fails with UNKNOWN_SETTING.
func (r *Registry) Get(key string, testing bool) (Value, error) {
	if testing {
		if s, ok := r.test[key]; ok {
			return s.Value, nil
		}
	}
	if s, ok := r.prod[key]; ok {
		return s.Value, nil
	}
	return nil, errors.Newf(errors.ErrCodeUnknownSetting, "setting %q not registered", key)
}

// GetInt returns the effective int value for key.
func (r *Registry) GetInt(key string, testing bool) (int, error) {
	v, err := r.Get(key, testing)
	if err != nil {
		return 0, err
	}
	i, ok := AsInt(v)
	if !ok {
		return 0, errors.Newf(errors.ErrCodeUnknownSetting, "setting %q is not an int", key)
	}
	return i, nil
}

// GetFloat returns the effective float64 value for key. Integer settings
// are widened.
func (r *Registry) GetFloat(key string, testing bool) (float64, error) {
	v, err := r.Get(key, testing)
	if err != nil {
		return 0, err
	}
	f, ok := AsFloat(v)
	if !ok {
		return 0, errors.Newf(errors.ErrCodeUnknownSetting, "setting %q is not numeric", key)
	}
	return f, nil
}

// GetBool returns the effective bool value for key.
func (r *Registry) GetBool(key string, testing bool) (bool, error) {
	v, err := r.Get(key, testing)
	if err != nil {
		return false, err
	}
	b, ok := AsBool(v)
	if !ok {
		return false, errors.Newf(errors.ErrCodeUnknownSetting, "setting %q is not a bool", key)
	}
	return b, nil
}

// GetString returns the effective string value for key.
func (r *Registry) GetString(key string, testing bool) (string, error) {
	v, err := r.Get(key, testing)
	if err != nil {
		return "", err
	}
	s, ok := AsString(v)
	if !ok {
		return "", errors.Newf(errors.ErrCodeUnknownSetting, "setting %q is not a string", key)
	}
	return s, nil
}

// Has reports whether key is registered in the production map.
func (r *Registry) Has(key string) bool {
	_, ok := r.prod[key]
	return ok
}

// HasTest reports whether key has a test-mode override.
func (r *Registry) HasTest(key string) bool {
	_, ok := r.test[key]
	return ok
}

// Keys returns production setting keys in insertion order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// All returns the production settings in insertion order, with the
// effective value for the given mode substituted in.
func (r *Registry) All(testing bool) []*Setting {
	out := make([]*Setting, 0, len(r.order))
	for _, key := range r.order {
		s := r.prod[key]
		eff := *s
		if testing {
			if ts, ok := r.test[key]; ok {
				eff.Value = ts.Value
			}
		}
		out = append(out, &eff)
	}
	return out
}
