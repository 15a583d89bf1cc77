package param

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mchmarny/dsgekit/pkg/errors"
)

func TestRegistry_DefineAndGet(t *testing.T) {
	r := NewRegistry()

	err := r.Define("R", 1.04,
		WithBounds(1.0, 1.2),
		WithPrior(distuv.Normal{Mu: 1.04, Sigma: 0.01}),
		WithDescription("steady-state gross interest rate"),
		WithLabel("R"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := r.Get("R")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1.04 {
		t.Errorf("R = %g, want 1.04", v)
	}

	p, err := r.Param("R")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Bounds == nil || p.Bounds.Lower != 1.0 || p.Bounds.Upper != 1.2 {
		t.Errorf("unexpected bounds: %+v", p.Bounds)
	}
	if p.Prior == nil {
		t.Error("expected prior to be set")
	}
	if p.Transform != TransformIdentity {
		t.Errorf("default transform = %s, want identity", p.Transform)
	}
}

func TestRegistry_RoundTrip(t *testing.T) {
	r := NewRegistry()
	if err := r.Define("gamma", 1.0, WithDescription("risk aversion")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.Set("gamma", 2.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := r.Get("gamma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2.5 {
		t.Errorf("gamma = %g, want 2.5", v)
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := NewRegistry()
	if err := r.Define("R", 1.04); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := r.Define("R", 1.05)
	if !errors.IsCode(err, errors.ErrCodeDuplicateName) {
		t.Errorf("expected DUPLICATE_NAME, got %v", err)
	}
}

func TestRegistry_UnknownName(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("missing"); !errors.IsCode(err, errors.ErrCodeUnknownParameter) {
		t.Errorf("Get: expected UNKNOWN_PARAMETER, got %v", err)
	}
	if err := r.Set("missing", 1.0); !errors.IsCode(err, errors.ErrCodeUnknownParameter) {
		t.Errorf("Set: expected UNKNOWN_PARAMETER, got %v", err)
	}
}

func TestRegistry_SteadyStateSentinel(t *testing.T) {
	r := NewRegistry()
	if err := r.DefineSteadyState("beta_star", "solved discount factor"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.DefineSteadyStateGrid("l_star", 20, "marginal utility"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vals, err := r.SteadyStateValues("l_star")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != 20 {
		t.Fatalf("l_star has %d values, want 20", len(vals))
	}
	for i, v := range vals {
		if !math.IsNaN(v) {
			t.Errorf("l_star[%d] = %g, want NaN sentinel", i, v)
		}
	}
	if r.Solved() {
		t.Error("Solved() = true before any commit")
	}
}

func TestRegistry_SteadyStateGridSize(t *testing.T) {
	r := NewRegistry()
	err := r.DefineSteadyStateGrid("mu_star", 0, "")
	if !errors.IsCode(err, errors.ErrCodeInvalidRange) {
		t.Errorf("expected INVALID_RANGE, got %v", err)
	}
}

func TestRegistry_CommitAtomic(t *testing.T) {
	r := NewRegistry()
	if err := r.DefineSteadyState("beta_star", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.DefineSteadyStateGrid("l_star", 4, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// incomplete stage must not touch the registry
	partial := r.NewStage()
	partial.SetScalar("beta_star", 0.96)
	if err := r.Commit(partial); err == nil {
		t.Fatal("expected commit of partial stage to fail")
	}
	vals, _ := r.SteadyStateValues("beta_star")
	if !math.IsNaN(vals[0]) {
		t.Errorf("beta_star = %g after failed commit, want NaN", vals[0])
	}

	// size mismatch must not touch the registry either
	mismatched := r.NewStage()
	mismatched.SetScalar("beta_star", 0.96)
	mismatched.SetGrid("l_star", []float64{1, 2})
	if err := r.Commit(mismatched); !errors.IsCode(err, errors.ErrCodeInvalidRange) {
		t.Errorf("expected INVALID_RANGE, got %v", err)
	}

	full := r.NewStage()
	full.SetScalar("beta_star", 0.96)
	full.SetGrid("l_star", []float64{1, 2, 3, 4})
	if err := r.Commit(full); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Solved() {
		t.Error("Solved() = false after full commit")
	}
	vals, _ = r.SteadyStateValues("l_star")
	if vals[2] != 3 {
		t.Errorf("l_star[2] = %g, want 3", vals[2])
	}
}

func TestTransform_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		value     float64
	}{
		{"identity", TransformIdentity, 1.04},
		{"exp", TransformExp, 0.5},
		{"logit", TransformLogit, 0.96},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.transform.ToUnconstrained(tt.value)
			back := tt.transform.FromUnconstrained(u)
			if math.Abs(back-tt.value) > 1e-12 {
				t.Errorf("round trip of %g through %s gave %g", tt.value, tt.transform, back)
			}
		})
	}
}
