package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/icza/mjpeg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
)

// MovieWriter streams field snapshots into an MJPEG AVI file, one frame per
// snapshot, with the simulated time stamped into the corner.
type MovieWriter struct {
	avi    mjpeg.AviWriter
	grid   field.Grid
	scale  int
	lo, hi float64
	buf    bytes.Buffer
}

// NewMovieWriter opens the output file. scale is the pixel size of one grid
// cell; lo and hi fix the colour range for the whole movie so frames are
// comparable over time.
func NewMovieWriter(path string, g field.Grid, scale int, fps int32, lo, hi float64) (*MovieWriter, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("movie: cell scale %d must be positive", scale)
	}
	if hi <= lo {
		return nil, fmt.Errorf("movie: colour range [%g, %g] is empty", lo, hi)
	}

	avi, err := mjpeg.New(path, int32(g.Nx*scale), int32(g.Ny*scale), fps)
	if err != nil {
		return nil, fmt.Errorf("movie: %w", err)
	}
	return &MovieWriter{avi: avi, grid: g, scale: scale, lo: lo, hi: hi}, nil
}

// AddFrame renders the field into the next movie frame.
func (m *MovieWriter) AddFrame(f *field.Field, t float64) error {
	if f.Grid != m.grid {
		return fmt.Errorf("movie: frame grid %dx%d does not match %dx%d", f.Grid.Nx, f.Grid.Ny, m.grid.Nx, m.grid.Ny)
	}

	img := image.NewRGBA(image.Rect(0, 0, m.grid.Nx*m.scale, m.grid.Ny*m.scale))
	for y := 0; y < m.grid.Ny; y++ {
		for x := 0; x < m.grid.Nx; x++ {
			c := heatColor((f.At(x, y) - m.lo) / (m.hi - m.lo))
			for py := 0; py < m.scale; py++ {
				for px := 0; px < m.scale; px++ {
					img.Set(x*m.scale+px, y*m.scale+py, c)
				}
			}
		}
	}
	drawLabel(img, fmt.Sprintf("t=%.2f", t))

	m.buf.Reset()
	if err := jpeg.Encode(&m.buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("movie: encode frame: %w", err)
	}
	if err := m.avi.AddFrame(m.buf.Bytes()); err != nil {
		return fmt.Errorf("movie: add frame: %w", err)
	}
	return nil
}

// Close finalizes the AVI index. The file is unplayable without it.
func (m *MovieWriter) Close() error {
	return m.avi.Close()
}

// heatColor maps v in [0, 1] onto a dark-blue to yellow ramp. Out-of-range
// values clamp.
func heatColor(v float64) color.RGBA {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return color.RGBA{
		R: uint8(255 * v),
		G: uint8(220 * v * v),
		B: uint8(160 * (1 - v)),
		A: 255,
	}
}

func drawLabel(img *image.RGBA, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 14),
	}
	d.DrawString(text)
}
