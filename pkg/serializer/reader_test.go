package serializer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Format
	}{
		{"json", "params.json", FormatJSON},
		{"yaml", "params.yaml", FormatYAML},
		{"yml", "params.yml", FormatYAML},
		{"uppercase", "PARAMS.YAML", FormatYAML},
		{"table", "out.table", FormatTable},
		{"unknown defaults to json", "params.csv", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewReader_RejectsTable(t *testing.T) {
	if _, err := NewReader(FormatTable, strings.NewReader("")); err == nil {
		t.Error("expected error for table format")
	}
	if _, err := NewReader(Format("bogus"), strings.NewReader("")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestReader_Deserialize(t *testing.T) {
	r, err := NewReader(FormatJSON, strings.NewReader(`{"name":"gamma","value":2.0}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}
	if err := r.Deserialize(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "gamma" || out.Value != 2.0 {
		t.Errorf("unexpected result: %+v", out)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.yaml")
	content := "gamma: 2.0\nr: 1.05\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := FromFile[map[string]float64](path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if (*out)["gamma"] != 2.0 {
		t.Errorf("gamma = %g, want 2.0", (*out)["gamma"])
	}
	if (*out)["r"] != 1.05 {
		t.Errorf("r = %g, want 1.05", (*out)["r"])
	}
}

func TestFromFile_Missing(t *testing.T) {
	if _, err := FromFile[map[string]float64]("/does/not/exist.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReader_CloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.json")
	if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, err := NewFileReader(FormatJSON, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("first close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
