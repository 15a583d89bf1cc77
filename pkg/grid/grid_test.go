package grid

import (
	"math"
	"testing"

	"github.com/mchmarny/dsgekit/pkg/errors"
)

func TestNewUniform(t *testing.T) {
	tests := []struct {
		name    string
		low     float64
		high    float64
		n       int
		scale   float64
		wantErr bool
	}{
		{"valid", 0.0, 1.0, 10, 1.0, false},
		{"single point", -2.0, 2.0, 1, 3.0, false},
		{"cash grid", -1.5, 4.0, 50, 5.5, false},
		{"zero points", 0.0, 1.0, 0, 1.0, true},
		{"negative points", 0.0, 1.0, -5, 1.0, true},
		{"inverted bounds", 1.0, 0.0, 10, 1.0, true},
		{"equal bounds", 1.0, 1.0, 10, 1.0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewUniform(tt.low, tt.high, tt.n, tt.scale)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.IsCode(err, errors.ErrCodeInvalidRange) {
					t.Errorf("expected INVALID_RANGE, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if g.Len() != tt.n {
				t.Errorf("Len() = %d, want %d", g.Len(), tt.n)
			}
		})
	}
}

func TestNewUniform_CashGridLayout(t *testing.T) {
	g, err := NewUniform(-1.5, 4.0, 50, 5.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Points[0] != -1.5 {
		t.Errorf("first point = %g, want -1.5", g.Points[0])
	}
	if g.Points[49] != 4.0 {
		t.Errorf("last point = %g, want 4.0", g.Points[49])
	}

	wantStep := 5.5 / 49
	for i := 1; i < g.Len(); i++ {
		if g.Points[i] <= g.Points[i-1] {
			t.Fatalf("points not strictly increasing at %d: %g <= %g", i, g.Points[i], g.Points[i-1])
		}
		step := g.Points[i] - g.Points[i-1]
		if math.Abs(step-wantStep) > 1e-12 {
			t.Errorf("spacing at %d = %g, want %g", i, step, wantStep)
		}
	}

	// uniform weights: scale/n each
	for i, w := range g.Weights {
		if math.Abs(w-5.5/50) > 1e-12 {
			t.Errorf("weight[%d] = %g, want %g", i, w, 5.5/50)
		}
	}
	if math.Abs(g.WeightSum()-5.5) > 1e-9 {
		t.Errorf("WeightSum() = %g, want 5.5", g.WeightSum())
	}
}

func TestNewUniform_SinglePoint(t *testing.T) {
	g, err := NewUniform(-2.0, 2.0, 1, 3.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Points[0] != -2.0 {
		t.Errorf("point = %g, want -2.0", g.Points[0])
	}
	if g.Weights[0] != 3.0 {
		t.Errorf("weight = %g, want 3.0", g.Weights[0])
	}
}
