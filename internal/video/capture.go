// Package video adapts OpenCV video capture and display to the art pipeline.
package video

import (
	"fmt"

	"github.com/grocky/movie-wall-art/internal/art"
	"github.com/grocky/movie-wall-art/internal/sampler"
	"gocv.io/x/gocv"
)

// Capture is a sampler.Source backed by an OpenCV VideoCapture.
type Capture struct {
	video *gocv.VideoCapture
	mat   gocv.Mat
}

// Open opens a video file for decoding.
func Open(filename string) (*Capture, error) {
	video, err := gocv.VideoCaptureFile(filename)
	if err != nil {
		return nil, err
	}
	if !video.IsOpened() {
		video.Close()
		return nil, fmt.Errorf("video capture not opened: %s", filename)
	}
	return &Capture{video: video, mat: gocv.NewMat()}, nil
}

// Opener opens files through OpenCV.
type Opener struct{}

func (Opener) Open(filename string) (sampler.Source, error) {
	c, err := Open(filename)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Capture) FrameCount() int {
	return int(c.video.Get(gocv.VideoCaptureFrameCount))
}

func (c *Capture) Size() (int, int) {
	return int(c.video.Get(gocv.VideoCaptureFrameWidth)), int(c.video.Get(gocv.VideoCaptureFrameHeight))
}

func (c *Capture) Seek(index int) error {
	c.video.Set(gocv.VideoCapturePosFrames, float64(index))
	return nil
}

// Read decodes the next frame. Frames that are not 8-bit, 3-channel BGR are
// treated like a failed decode.
func (c *Capture) Read() (*art.Frame, bool) {
	if !c.video.Read(&c.mat) || c.mat.Empty() {
		return nil, false
	}
	if c.mat.Type() != gocv.MatTypeCV8UC3 {
		return nil, false
	}
	return art.FrameFromBGR(c.mat.Cols(), c.mat.Rows(), c.mat.ToBytes()), true
}

// Close releases the decoder and the frame buffer.
func (c *Capture) Close() error {
	c.mat.Close()
	return c.video.Close()
}
