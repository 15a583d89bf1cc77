package grid

import (
	"math"
	"testing"

	"github.com/mchmarny/dsgekit/pkg/errors"
)

func TestDiscretizeAR1(t *testing.T) {
	tests := []struct {
		name    string
		mean    float64
		stdDev  float64
		n       int
		width   float64
		wantErr bool
	}{
		{"two states", 0.0, 0.5, 2, 2.0, false},
		{"many states", 0.2, 0.3, 11, 3.0, false},
		{"one state", 0.0, 0.5, 1, 2.0, true},
		{"zero states", 0.0, 0.5, 0, 2.0, true},
		{"zero std", 0.0, 0.0, 5, 2.0, true},
		{"negative width", 0.0, 0.5, 5, -1.0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := DiscretizeAR1(tt.mean, tt.stdDev, tt.n, tt.width)
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
			if c.Len() != tt.n {
				t.Errorf("Len() = %d, want %d", c.Len(), tt.n)
			}
		})
	}
}

func TestDiscretizeAR1_Properties(t *testing.T) {
	c, err := DiscretizeAR1(0.0, 0.5, 7, 2.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// points symmetric around mean, spanning width std devs
	if math.Abs(c.Points[0]+1.25) > 1e-12 {
		t.Errorf("first point = %g, want -1.25", c.Points[0])
	}
	if math.Abs(c.Points[6]-1.25) > 1e-12 {
		t.Errorf("last point = %g, want 1.25", c.Points[6])
	}

	var sum float64
	for i, p := range c.Stationary {
		if p < 0 {
			t.Errorf("stationary[%d] = %g, want non-negative", i, p)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-12 {
		t.Errorf("stationary sums to %g, want 1", sum)
	}

	// truncated mass is positive and below 1
	if c.Scale <= 0 || c.Scale > 1 {
		t.Errorf("scale = %g, want in (0, 1]", c.Scale)
	}

	// transition rows each sum to 1
	n := c.Len()
	for i := 0; i < n; i++ {
		var rowSum float64
		for j := 0; j < n; j++ {
			rowSum += c.Transition.At(i, j)
		}
		if math.Abs(rowSum-1.0) > 1e-12 {
			t.Errorf("transition row %d sums to %g, want 1", i, rowSum)
		}
	}
}

func TestChain_LevelGrid(t *testing.T) {
	c, err := DiscretizeAR1(0.0, 0.5, 2, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g := c.LevelGrid()
	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}
	for i := range g.Points {
		want := math.Exp(c.Points[i])
		if math.Abs(g.Points[i]-want) > 1e-12 {
			t.Errorf("level point[%d] = %g, want %g", i, g.Points[i], want)
		}
	}
	if math.Abs(g.WeightSum()-1.0) > 1e-12 {
		t.Errorf("level grid weight sum = %g, want 1", g.WeightSum())
	}
}
