package field

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes the field as Ny records of Nx values, row y first.
func (f *Field) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	g := f.Grid
	row := make([]string, g.Nx)
	for y := 0; y < g.Ny; y++ {
		for x := 0; x < g.Nx; x++ {
			row[x] = strconv.FormatFloat(f.At(x, y), 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", y, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a field written by WriteCSV. The grid shape is inferred from
// the records; the physical extent is supplied by the caller.
func ReadCSV(r io.Reader, lx, ly float64) (*Field, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read field csv: %w", err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("field csv is empty")
	}

	ny, nx := len(records), len(records[0])
	g, err := NewGrid(nx, ny, lx, ly)
	if err != nil {
		return nil, err
	}

	f := New(g)
	for y, rec := range records {
		if len(rec) != nx {
			return nil, fmt.Errorf("row %d has %d values, expected %d", y, len(rec), nx)
		}
		for x, s := range rec {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			f.Set(x, y, v)
		}
	}
	return f, nil
}
