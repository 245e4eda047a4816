package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFieldCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "field.csv")
	csv := "0,0,0,0\n0,1,0,0\n0,0,0,0\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadFieldExplicitDomain(t *testing.T) {
	f, err := loadField(writeFieldCSV(t), 8, 6)
	if err != nil {
		t.Fatalf("loadField: %v", err)
	}
	if f.Grid.Nx != 4 || f.Grid.Ny != 3 {
		t.Errorf("shape = %dx%d, want 4x3", f.Grid.Nx, f.Grid.Ny)
	}
	if f.Grid.Lx != 8 || f.Grid.Ly != 6 {
		t.Errorf("domain = %gx%g, want 8x6", f.Grid.Lx, f.Grid.Ly)
	}
}

func TestLoadFieldInfersUnitCells(t *testing.T) {
	f, err := loadField(writeFieldCSV(t), 0, 0)
	if err != nil {
		t.Fatalf("loadField: %v", err)
	}
	if f.Grid.Lx != 4 || f.Grid.Ly != 3 {
		t.Errorf("domain = %gx%g, want one unit per cell (4x3)", f.Grid.Lx, f.Grid.Ly)
	}
}

func TestLoadFieldRejectsHalfSpecifiedDomain(t *testing.T) {
	path := writeFieldCSV(t)

	tests := []struct {
		name   string
		lx, ly float64
	}{
		{"only lx", 8, 0},
		{"only ly", 0, 6},
		{"negative lx", -8, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadField(path, tt.lx, tt.ly); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFieldMissingFile(t *testing.T) {
	if _, err := loadField(filepath.Join(t.TempDir(), "absent.csv"), 0, 0); err == nil {
		t.Error("expected error")
	}
}
