package art

import (
	"errors"
	"fmt"
)

// Style selects how a frame is collapsed into a column.
type Style string

const (
	StyleCenterPixel  Style = "center"
	StyleAverageColor Style = "average"
	StylePixelStrip   Style = "strip"
)

var (
	// ErrUnknownStyle is returned when no reducer exists for a style.
	ErrUnknownStyle = errors.New("art: style not set or found")
	// ErrEmptyFrame is returned for frames without pixels.
	ErrEmptyFrame = errors.New("art: empty frame")
)

// Styles lists the supported styles.
func Styles() []Style {
	return []Style{StyleCenterPixel, StyleAverageColor, StylePixelStrip}
}

// Valid reports whether s names a known reducer.
func (s Style) Valid() bool {
	_, ok := reducers[s]
	return ok
}

// Column is one vertical slice of the art, top to bottom.
type Column []Color

// Reducer turns a frame into a column of the given height.
type Reducer interface {
	Reduce(f *Frame, height int) (Column, error)
}

// ReducerFunc adapts a function to Reducer.
type ReducerFunc func(f *Frame, height int) (Column, error)

func (fn ReducerFunc) Reduce(f *Frame, height int) (Column, error) {
	return fn(f, height)
}

var reducers = map[Style]Reducer{
	StyleCenterPixel:  ReducerFunc(CenterPixel),
	StyleAverageColor: ReducerFunc(AverageColor),
	StylePixelStrip:   ReducerFunc(PixelStrip),
}

// ReducerFor looks up the reducer for s.
func ReducerFor(s Style) (Reducer, error) {
	r, ok := reducers[s]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, string(s))
	}
	return r, nil
}

// Reduce collapses f into a column using style s.
func Reduce(s Style, f *Frame, height int) (Column, error) {
	r, err := ReducerFor(s)
	if err != nil {
		return nil, err
	}
	return r.Reduce(f, height)
}

// CenterPixel replicates the frame's center pixel over the whole column.
func CenterPixel(f *Frame, height int) (Column, error) {
	if err := check(f, height); err != nil {
		return nil, err
	}
	return fill(f.At(f.Width/2, f.Height/2), height), nil
}

// AverageColor replicates the mean color of the whole frame. Channels are
// truncated by integer division.
func AverageColor(f *Frame, height int) (Column, error) {
	if err := check(f, height); err != nil {
		return nil, err
	}
	var r, g, b uint64
	for x := 0; x < f.Width; x++ {
		for y := 0; y < f.Height; y++ {
			p := f.At(x, y)
			r += uint64(p.R)
			g += uint64(p.G)
			b += uint64(p.B)
		}
	}
	n := uint64(f.Width) * uint64(f.Height)
	return fill(Color{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}, height), nil
}

// PixelStrip scans the frame column by column and averages consecutive runs
// of (width*height)/height pixels into one row each.
//
// A strip closes once its count passes the nominal length, so every strip
// averages one extra pixel, and that closing pixel also opens the next strip.
// A strip still open when the pixels run out is closed with what it has.
// Rows that never close stay zero.
func PixelStrip(f *Frame, height int) (Column, error) {
	if err := check(f, height); err != nil {
		return nil, err
	}
	col := make(Column, height)
	strip := (f.Width * f.Height) / height
	if strip == 0 {
		return col, nil
	}

	var (
		r, g, b uint64
		count   uint64
		row     int
	)
	for x := 0; x < f.Width && row < height; x++ {
		for y := 0; y < f.Height && row < height; y++ {
			p := f.At(x, y)
			r += uint64(p.R)
			g += uint64(p.G)
			b += uint64(p.B)
			count++
			if count > uint64(strip) {
				col[row] = Color{R: uint8(r / count), G: uint8(g / count), B: uint8(b / count)}
				row++
				r, g, b = uint64(p.R), uint64(p.G), uint64(p.B)
				count = 1
			}
		}
	}
	if row < height && count > 0 {
		col[row] = Color{R: uint8(r / count), G: uint8(g / count), B: uint8(b / count)}
	}
	return col, nil
}

func check(f *Frame, height int) error {
	if f.Empty() {
		return ErrEmptyFrame
	}
	if height <= 0 {
		return fmt.Errorf("art: invalid column height %d", height)
	}
	return nil
}

func fill(c Color, height int) Column {
	col := make(Column, height)
	for i := range col {
		col[i] = c
	}
	return col
}
