// Package art turns video frames into columns of a fixed-size raster.
package art

// Color is a single 8-bit RGB pixel.
type Color struct {
	R, G, B uint8
}

// Frame is a decoded video frame. Pix holds Width*Height pixels in row-major
// order.
type Frame struct {
	Width  int
	Height int
	Pix    []Color
}

// NewFrame allocates a zero-filled frame.
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Pix: make([]Color, width*height)}
}

// FrameFromBGR builds a frame from packed 3-channel BGR bytes, the layout
// OpenCV hands out for CV_8UC3 matrices.
func FrameFromBGR(width, height int, data []byte) *Frame {
	f := NewFrame(width, height)
	for i := range f.Pix {
		o := i * 3
		if o+2 >= len(data) {
			break
		}
		f.Pix[i] = Color{R: data[o+2], G: data[o+1], B: data[o]}
	}
	return f
}

// At returns the pixel in row y, column x.
func (f *Frame) At(x, y int) Color {
	return f.Pix[y*f.Width+x]
}

// Set writes the pixel in row y, column x.
func (f *Frame) Set(x, y int, c Color) {
	f.Pix[y*f.Width+x] = c
}

// Empty reports whether the frame has no pixels.
func (f *Frame) Empty() bool {
	return f == nil || f.Width <= 0 || f.Height <= 0
}

// BGR packs the frame back into OpenCV channel order.
func (f *Frame) BGR() []byte {
	return packBGR(f.Pix)
}

func packBGR(pix []Color) []byte {
	buf := make([]byte, len(pix)*3)
	for i, c := range pix {
		buf[i*3] = c.B
		buf[i*3+1] = c.G
		buf[i*3+2] = c.R
	}
	return buf
}
