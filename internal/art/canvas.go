package art

import (
	"image"
	"image/color"
)

// Canvas is the art raster. It starts zero-filled and is written one column
// at a time.
type Canvas struct {
	width  int
	height int
	pix    []Color
}

// NewCanvas allocates a zero-filled width x height canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height, pix: make([]Color, width*height)}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// SetColumn writes col into column x, row by row. x must already be inside the
// canvas; rows beyond len(col) are left untouched.
func (c *Canvas) SetColumn(x int, col Column) {
	for y := 0; y < c.height && y < len(col); y++ {
		c.pix[y*c.width+x] = col[y]
	}
}

// Column copies column x out of the canvas.
func (c *Canvas) Column(x int) Column {
	col := make(Column, c.height)
	for y := range col {
		col[y] = c.pix[y*c.width+x]
	}
	return col
}

// At returns the color in row y, column x.
func (c *Canvas) At(x, y int) Color {
	return c.pix[y*c.width+x]
}

// Clone returns a deep copy.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{width: c.width, height: c.height, pix: make([]Color, len(c.pix))}
	copy(out.pix, c.pix)
	return out
}

// BGR packs the canvas in OpenCV channel order.
func (c *Canvas) BGR() []byte {
	return packBGR(c.pix)
}

// Image renders the canvas as an opaque NRGBA image.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			p := c.pix[y*c.width+x]
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		}
	}
	return img
}

// Image renders the frame as an opaque NRGBA image.
func (f *Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			p := f.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		}
	}
	return img
}
