package rd

import "github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"

// laplacian computes the five-point finite-difference Laplacian of f into
// out, with periodic wraparound on both axes.
func laplacian(f *field.Field, out []float64) {
	g := f.Grid
	invDx2 := 1 / (g.Dx() * g.Dx())
	invDy2 := 1 / (g.Dy() * g.Dy())

	for y := 0; y < g.Ny; y++ {
		yp := g.WrapY(y + 1)
		ym := g.WrapY(y - 1)
		row := y * g.Nx
		for x := 0; x < g.Nx; x++ {
			xp := g.WrapX(x + 1)
			xm := g.WrapX(x - 1)
			v := f.Values[row+x]
			ddx := (f.Values[row+xp] + f.Values[row+xm] - 2*v) * invDx2
			ddy := (f.Values[yp*g.Nx+x] + f.Values[ym*g.Nx+x] - 2*v) * invDy2
			out[row+x] = ddx + ddy
		}
	}
}
