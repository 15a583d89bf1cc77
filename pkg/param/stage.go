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

import (
	"github.com/mchmarny/dsgekit/pkg/errors"
)

// Stage is a scratch buffer for a steady-state solve. The solver fills the
// stage and commits it in one swap, so registry values never hold a mix of
// old and new entries after a partial failure.
type Stage struct {
	values map[string][]float64
}

// NewStage creates an empty staging buffer for the registry's
// steady-state entries.
func (r *Registry) NewStage() *Stage {
	return &Stage{
		values: make(map[string][]float64, len(r.ss)),
	}
}

// SetScalar stages a scalar steady-state value.
func (s *Stage) SetScalar(name string, value float64) {
	s.values[name] = []float64{value}
}

// SetGrid stages a grid-valued steady-state vector. The slice is copied.
func (s *Stage) SetGrid(name string, values []float64) {
	buf := make([]float64, len(values))
	copy(buf, values)
	s.values[name] = buf
}

// Commit atomically replaces every steady-state entry with the staged
// values. It fails without mutating the registry when any entry is
// missing from the stage or a staged vector's length does not match the
// registered size.
func (r *Registry) Commit(stage *Stage) error {
	for _, entry := range r.ss {
		staged, ok := stage.values[entry.Name]
		if !ok {
			return errors.Newf(errors.ErrCodeInternal, "stage missing steady-state entry %q", entry.Name)
		}
		if len(staged) != len(entry.Values) {
			return errors.NewWithContext(errors.ErrCodeInvalidRange,
				"staged steady-state size mismatch", map[string]any{
					"entry":  entry.Name,
					"staged": len(staged),
					"want":   len(entry.Values),
				})
		}
	}

	for _, entry := range r.ss {
		copy(entry.Values, stage.values[entry.Name])
	}
	return nil
}
