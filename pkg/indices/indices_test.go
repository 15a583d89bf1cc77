package indices

import (
	"testing"

	"github.com/mchmarny/dsgekit/pkg/errors"
)

func TestBuild_ConcreteLayout(t *testing.T) {
	m, err := Build(50, 2, []string{"obs_gdp"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStates := map[string]Range{
		NameDistribution: {1, 100},
		NameTFP:          {101, 101},
		NameLabor:        {102, 201},
		NameRate:         {202, 202},
	}
	for name, want := range wantStates {
		got, err := m.Range(CategoryStates, name)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", name, err)
		}
		if got != want {
			t.Errorf("state %s = %s, want %s", name, got, want)
		}
	}

	wantEquations := map[string]Range{
		NameEqEuler:          {1, 100},
		NameEqKolmogorov:     {101, 200},
		NameEqTFP:            {201, 201},
		NameEqMarketClearing: {202, 202},
	}
	for name, want := range wantEquations {
		got, err := m.Range(CategoryEquations, name)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", name, err)
		}
		if got != want {
			t.Errorf("equation %s = %s, want %s", name, got, want)
		}
	}

	if got, _ := m.Range(CategoryShocks, NameShockTFP); got != (Range{1, 1}) {
		t.Errorf("z_shock = %s, want [1, 1]", got)
	}
	if got, _ := m.Range(CategoryExpected, NameExpectedError); got != (Range{1, 100}) {
		t.Errorf("eta_l = %s, want [1, 100]", got)
	}
	if got, _ := m.Range(CategoryObservables, "obs_gdp"); got != (Range{1, 1}) {
		t.Errorf("obs_gdp = %s, want [1, 1]", got)
	}
}

func TestBuild_SpanInvariant(t *testing.T) {
	tests := []struct {
		name   string
		nx, ns int
	}{
		{"minimal", 1, 1},
		{"tall", 50, 2},
		{"square", 10, 10},
		{"wide", 2, 40},
		{"single skill", 25, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build(tt.nx, tt.ns, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := 2*tt.nx*tt.ns + 2
			if got := m.StateSpan(); got != want {
				t.Errorf("state span = %d, want %d", got, want)
			}

			// contiguity with no gaps or overlaps: each consecutive range
			// starts where the previous one stopped
			next := 1
			for _, name := range m.States.Names() {
				r, _ := m.States.Range(name)
				if r.Start != next {
					t.Errorf("state %s starts at %d, want %d", name, r.Start, next)
				}
				next = r.Stop + 1
			}
			if next-1 != want {
				t.Errorf("union covers [1, %d], want [1, %d]", next-1, want)
			}
		})
	}
}

func TestBuild_InvalidSizes(t *testing.T) {
	tests := []struct {
		name   string
		nx, ns int
	}{
		{"zero nx", 0, 2},
		{"zero ns", 50, 0},
		{"negative", -1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.nx, tt.ns, nil)
			if !errors.IsCode(err, errors.ErrCodeInvalidRange) {
				t.Errorf("expected INVALID_RANGE, got %v", err)
			}
		})
	}
}

func TestBuild_ObservableOrder(t *testing.T) {
	obs := []string{"obs_gdp", "obs_labor", "obs_rate"}
	m, err := Build(5, 2, obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, name := range obs {
		r, err := m.Range(CategoryObservables, name)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", name, err)
		}
		if r.Start != i+1 || r.Stop != i+1 {
			t.Errorf("observable %s = %s, want [%d, %d]", name, r, i+1, i+1)
		}
	}

	got, err := m.Observables.NameAt(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "obs_labor" {
		t.Errorf("NameAt(1) = %s, want obs_labor", got)
	}
}

func TestMap_UnknownLookups(t *testing.T) {
	m, err := Build(5, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.Range(CategoryStates, "nope"); !errors.IsCode(err, errors.ErrCodeUnknownParameter) {
		t.Errorf("expected UNKNOWN_PARAMETER, got %v", err)
	}
	if _, err := m.Block(Category("bogus")); !errors.IsCode(err, errors.ErrCodeInvalidRange) {
		t.Errorf("expected INVALID_RANGE, got %v", err)
	}
}

func TestBlock_Validate(t *testing.T) {
	b := newBlock()
	if err := b.add("a", Range{1, 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.add("b", Range{12, 12}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Validate(); !errors.IsCode(err, errors.ErrCodeInvalidRange) {
		t.Errorf("expected INVALID_RANGE for gapped block, got %v", err)
	}
}

func TestBlock_DuplicateName(t *testing.T) {
	b := newBlock()
	if err := b.add("a", Range{1, 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.add("a", Range{11, 11}); !errors.IsCode(err, errors.ErrCodeDuplicateName) {
		t.Errorf("expected DUPLICATE_NAME, got %v", err)
	}
}
