package field

// Mask marks a sub-region of a grid, e.g. the membrane band where a source
// term is active. Same row-major layout as Field.
type Mask struct {
	Grid  Grid
	Cells []bool
}

// NewMask returns an empty mask on the given grid.
func NewMask(g Grid) *Mask {
	return &Mask{Grid: g, Cells: make([]bool, g.Cells())}
}

// StripeX marks a vertical stripe of the given width (in cells) starting at
// x0. The stripe wraps around the boundary like everything else.
func StripeX(g Grid, x0, width int) *Mask {
	m := NewMask(g)
	for dx := 0; dx < width; dx++ {
		x := g.WrapX(x0 + dx)
		for y := 0; y < g.Ny; y++ {
			m.Cells[g.Index(x, y)] = true
		}
	}
	return m
}

// StripeY marks a horizontal stripe of the given width starting at y0.
func StripeY(g Grid, y0, width int) *Mask {
	m := NewMask(g)
	for dy := 0; dy < width; dy++ {
		y := g.WrapY(y0 + dy)
		for x := 0; x < g.Nx; x++ {
			m.Cells[g.Index(x, y)] = true
		}
	}
	return m
}

// At reports whether the (wrapped) cell (x, y) is inside the mask.
func (m *Mask) At(x, y int) bool {
	return m.Cells[m.Grid.Index(x, y)]
}

// Count returns the number of marked cells.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Cells {
		if b {
			n++
		}
	}
	return n
}
