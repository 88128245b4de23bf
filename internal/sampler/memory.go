package sampler

import (
	"fmt"

	"github.com/grocky/movie-wall-art/internal/art"
)

// MemorySource serves frames from a slice. It records every seek, which makes
// it useful for exercising the sampler without media files.
type MemorySource struct {
	Frames []*art.Frame
	// Count overrides the reported frame count when non-zero.
	Count int
	// FailAt makes reads of frame indices at or past it come back empty.
	FailAt int

	Seeks  []int
	Reads  int
	Closed bool

	pos int
}

// NewMemorySource returns a source serving frames in order.
func NewMemorySource(frames ...*art.Frame) *MemorySource {
	return &MemorySource{Frames: frames, FailAt: -1}
}

func (m *MemorySource) FrameCount() int {
	if m.Count != 0 {
		return m.Count
	}
	return len(m.Frames)
}

func (m *MemorySource) Size() (int, int) {
	if len(m.Frames) == 0 {
		return 0, 0
	}
	return m.Frames[0].Width, m.Frames[0].Height
}

func (m *MemorySource) Seek(index int) error {
	if index < 0 {
		return fmt.Errorf("negative frame index %d", index)
	}
	m.Seeks = append(m.Seeks, index)
	m.pos = index
	return nil
}

func (m *MemorySource) Read() (*art.Frame, bool) {
	m.Reads++
	if m.pos >= len(m.Frames) || (m.FailAt >= 0 && m.pos >= m.FailAt) {
		return nil, false
	}
	f := m.Frames[m.pos]
	m.pos++
	return f, true
}

func (m *MemorySource) Close() error {
	m.Closed = true
	return nil
}
