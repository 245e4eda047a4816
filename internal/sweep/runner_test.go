package sweep

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/store"
)

func TestExpandCombos(t *testing.T) {
	combos := expandCombos([]Param{
		{Name: "k", Values: []float64{0.1, 0.2}},
		{Name: "d", Values: []float64{1, 2, 3}},
	})

	if len(combos) != 6 {
		t.Fatalf("expected 6 combos, got %d", len(combos))
	}

	// Parameters iterate sorted by name: d is the outer loop.
	first := combos[0]
	if first["d"] != 1 || first["k"] != 0.1 {
		t.Errorf("combos[0] = %v, want d=1 k=0.1", first)
	}
	last := combos[5]
	if last["d"] != 3 || last["k"] != 0.2 {
		t.Errorf("combos[5] = %v, want d=3 k=0.2", last)
	}

	for _, c := range combos {
		if len(c) != 2 {
			t.Errorf("combo %v missing a parameter", c)
		}
	}
}

func TestExpandCombosSingleParam(t *testing.T) {
	combos := expandCombos([]Param{{Name: "dv", Values: []float64{10, 20}}})
	if len(combos) != 2 {
		t.Fatalf("expected 2 combos, got %d", len(combos))
	}
	if combos[0]["dv"] != 10 || combos[1]["dv"] != 20 {
		t.Errorf("combos = %v, want dv in given order", combos)
	}
}

func TestRunValidation(t *testing.T) {
	r := &Runner{}
	tests := []struct {
		name string
		req  Request
	}{
		{"missing model", Request{Params: []Param{{Name: "k", Values: []float64{1}}}}},
		{"no params", Request{Model: "sourcedeg"}},
		{"empty values", Request{Model: "sourcedeg", Params: []Param{{Name: "k"}}}},
		{"unknown model", Request{Model: "nope", Params: []Param{{Name: "k", Values: []float64{1}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tt.req); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{}
	summary, err := r.Run(ctx, Request{
		Model:  "sourcedeg",
		Params: []Param{{Name: "k", Values: []float64{0.25}}},
		Grid:   field.MustGrid(8, 8, 4, 4),
		TEnd:   0.5,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.Status != StatusError {
		t.Errorf("status = %q, want %q", summary.Status, StatusError)
	}
}

func TestRunSourceDegradationSweep(t *testing.T) {
	r := &Runner{}
	summary, err := r.Run(context.Background(), Request{
		Model:            "sourcedeg",
		Params:           []Param{{Name: "k", Values: []float64{0.25, 1.0}}},
		Grid:             field.MustGrid(16, 16, 5, 5),
		TEnd:             2,
		SnapshotInterval: 1,
		WindowRadius:     2,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Status != StatusComplete {
		t.Errorf("status = %q, want %q", summary.Status, StatusComplete)
	}
	if summary.RunID == "" {
		t.Error("expected non-empty run ID")
	}
	if len(summary.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(summary.Results))
	}

	// The gradient from a stripe source is flat along y, so there is no
	// strict local maximum: every combo is a valid pattern-free sample.
	for _, res := range summary.Results {
		if !res.NoPattern {
			t.Errorf("combo %v: expected NoPattern", res.Params)
		}
		if res.SpotCount != 0 || res.LengthScale != 0 {
			t.Errorf("combo %v: pattern-free sample should be zeroed, got %+v", res.Params, res)
		}
	}
	if summary.Results[0].Params["k"] != 0.25 || summary.Results[1].Params["k"] != 1.0 {
		t.Errorf("results out of order: %v, %v", summary.Results[0].Params, summary.Results[1].Params)
	}
}

func TestRunPersistsToStore(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "sweeps.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer db.Close()

	r := &Runner{DB: db}
	summary, err := r.Run(context.Background(), Request{
		Model:            "sourcedeg",
		Params:           []Param{{Name: "k", Values: []float64{0.5}}},
		Grid:             field.MustGrid(8, 8, 4, 4),
		TEnd:             1,
		SnapshotInterval: 0.5,
		Notes:            "smoke",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	runs, err := db.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != summary.RunID {
		t.Fatalf("expected persisted run %s, got %+v", summary.RunID, runs)
	}

	samples, err := db.ListSamples(summary.RunID)
	if err != nil {
		t.Fatalf("ListSamples: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	if samples[0].Params["k"] != 0.5 {
		t.Errorf("persisted params = %v, want k=0.5", samples[0].Params)
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	s := &Summary{
		RunID: "test",
		Model: "fhn",
		Results: []ComboResult{
			{Params: map[string]float64{"dv": 10}, SpotCount: 24, LengthScale: 2.04, MassDrift: 1e-10},
			{Params: map[string]float64{"dv": 40}, NoPattern: true},
		},
	}

	var buf strings.Builder
	if err := WriteSummaryCSV(&buf, s); err != nil {
		t.Fatalf("WriteSummaryCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "dv,spot_count,length_scale,no_pattern,mass_drift" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "10,24,2.04,0,") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "40,0,0,1,") {
		t.Errorf("row 2 = %q", lines[2])
	}

	if err := WriteSummaryCSV(&buf, &Summary{}); err == nil {
		t.Error("expected error for empty summary")
	}
}

func TestWriteHTMLReport(t *testing.T) {
	s := &Summary{
		RunID: "r1",
		Model: "fhn",
		Results: []ComboResult{
			{Params: map[string]float64{"dv": 10}, SpotCount: 24, LengthScale: 2.04},
			{Params: map[string]float64{"dv": 20}, SpotCount: 12, LengthScale: 2.89},
			{Params: map[string]float64{"dv": 40}, NoPattern: true},
		},
	}

	var buf strings.Builder
	if err := WriteHTMLReport(&buf, s); err != nil {
		t.Fatalf("WriteHTMLReport: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "Pattern length scale") || !strings.Contains(html, "Spot count") {
		t.Error("report missing expected chart titles")
	}

	if err := WriteHTMLReport(&buf, &Summary{}); err == nil {
		t.Error("expected error for empty summary")
	}
}

func TestPrimaryParam(t *testing.T) {
	results := []ComboResult{
		{Params: map[string]float64{"a": 1, "b": 1}},
		{Params: map[string]float64{"a": 1, "b": 2}},
		{Params: map[string]float64{"a": 1, "b": 3}},
	}
	if got := primaryParam(results); got != "b" {
		t.Errorf("primaryParam = %q, want %q", got, "b")
	}
	if got := primaryParam(nil); got != "" {
		t.Errorf("primaryParam(nil) = %q, want empty", got)
	}
}
