// Package sampler picks evenly spaced frames out of a video source.
package sampler

import (
	"fmt"

	"github.com/grocky/movie-wall-art/internal/art"
)

// Source is a seekable, decodable sequence of frames.
type Source interface {
	// FrameCount is the total number of frames the source reports.
	FrameCount() int
	// Size is the frame width and height.
	Size() (width, height int)
	// Seek positions the source so the next Read decodes frame index.
	Seek(index int) error
	// Read decodes the next frame. It returns false when nothing could be
	// decoded.
	Read() (*art.Frame, bool)
	Close() error
}

// Sample is one frame picked by the sampler.
type Sample struct {
	// Index is the frame index that was seeked to.
	Index int
	// Column is the art column this frame belongs to.
	Column int
	Frame  *art.Frame
}

// Sampler yields up to Count frames spaced Stride frames apart. It is not
// restartable.
type Sampler struct {
	src       Source
	count     int
	total     int
	stride    int
	index     int
	produced  int
	exhausted bool
	err       error
}

// New prepares a sampler over src. It decodes and discards one frame first,
// since some containers only report their frame count and size correctly
// after a read.
func New(src Source, count int) *Sampler {
	src.Read()

	total := src.FrameCount()
	stride := 0
	if count > 0 {
		stride = total / count
	}
	return &Sampler{src: src, count: count, total: total, stride: stride}
}

// Total is the frame count reported by the source.
func (s *Sampler) Total() int { return s.total }

// Stride is total/count. Zero means the source is shorter than the art and
// every frame is sampled.
func (s *Sampler) Stride() int { return s.stride }

// Produced is the number of samples returned so far.
func (s *Sampler) Produced() int { return s.produced }

// Exhausted reports whether sampling stopped on an empty decode rather than
// on reaching the sample count or the end of the source.
func (s *Sampler) Exhausted() bool { return s.exhausted }

// Err returns the seek error that stopped sampling, if any.
func (s *Sampler) Err() error { return s.err }

// Next returns the next sample. ok is false once the sequence has ended.
func (s *Sampler) Next() (Sample, bool) {
	if s.produced >= s.count || s.index >= s.total || s.exhausted || s.err != nil {
		return Sample{}, false
	}

	if err := s.src.Seek(s.index); err != nil {
		s.err = fmt.Errorf("seek to frame %d: %w", s.index, err)
		return Sample{}, false
	}
	frame, ok := s.src.Read()
	if !ok || frame.Empty() {
		s.exhausted = true
		return Sample{}, false
	}

	sample := Sample{Index: s.index, Column: s.produced, Frame: frame}
	s.produced++
	s.index += s.step()
	return sample, true
}

func (s *Sampler) step() int {
	if s.stride == 0 {
		return 1
	}
	return s.stride
}
