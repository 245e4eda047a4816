package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
)

// CSVWriter writes sweep results as CSV: one row per parameter combination,
// one column per swept parameter plus the measurement columns.
type CSVWriter struct {
	w      *csv.Writer
	params []string
}

// NewCSVWriter creates a CSVWriter for the given swept parameter names.
// The names are sorted so the column order is stable regardless of how the
// sweep request listed them.
func NewCSVWriter(out io.Writer, paramNames []string) *CSVWriter {
	params := append([]string(nil), paramNames...)
	sort.Strings(params)
	return &CSVWriter{w: csv.NewWriter(out), params: params}
}

// WriteHeader writes the column header row.
func (c *CSVWriter) WriteHeader() error {
	header := append([]string{}, c.params...)
	header = append(header, "spot_count", "length_scale", "no_pattern", "mass_drift")
	if err := c.w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// WriteResult writes one combo measurement row.
func (c *CSVWriter) WriteResult(r ComboResult) error {
	row := make([]string, 0, len(c.params)+4)
	for _, name := range c.params {
		row = append(row, fmt.Sprintf("%.6g", r.Params[name]))
	}
	noPattern := "0"
	if r.NoPattern {
		noPattern = "1"
	}
	row = append(row,
		fmt.Sprintf("%d", r.SpotCount),
		fmt.Sprintf("%.6g", r.LengthScale),
		noPattern,
		fmt.Sprintf("%.3g", r.MassDrift),
	)
	if err := c.w.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// Flush flushes buffered rows and reports any write error.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// WriteSummaryCSV writes a complete sweep summary in one call.
func WriteSummaryCSV(out io.Writer, s *Summary) error {
	if s == nil || len(s.Results) == 0 {
		return fmt.Errorf("no results to write")
	}

	names := make([]string, 0, len(s.Results[0].Params))
	for name := range s.Results[0].Params {
		names = append(names, name)
	}

	w := NewCSVWriter(out, names)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for _, r := range s.Results {
		if err := w.WriteResult(r); err != nil {
			return err
		}
	}
	return w.Flush()
}
