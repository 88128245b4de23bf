package video

import (
	"image"

	"github.com/grocky/movie-wall-art/internal/art"
	"github.com/grocky/movie-wall-art/internal/logger"
	"github.com/grocky/movie-wall-art/internal/sampler"
	"gocv.io/x/gocv"
)

// previewHeight is the on-screen height both windows are scaled to.
const previewHeight = 480

// Window shows the current frame and the art in progress in two OpenCV
// windows. It only observes; closing it does not affect the run.
type Window struct {
	frame  *gocv.Window
	art    *gocv.Window
	logger *logger.Logger
}

// NewWindow opens the preview windows.
func NewWindow(log *logger.Logger) *Window {
	return &Window{
		frame:  gocv.NewWindow("movie"),
		art:    gocv.NewWindow("art"),
		logger: log,
	}
}

// Observe displays the latest sample and the canvas.
func (w *Window) Observe(s sampler.Sample, canvas *art.Canvas) {
	w.show(w.frame, s.Frame.Width, s.Frame.Height, s.Frame.BGR())
	w.show(w.art, canvas.Width(), canvas.Height(), canvas.BGR())
	w.frame.WaitKey(1)
}

// Finish closes both windows.
func (w *Window) Finish(*art.Canvas) {
	w.frame.Close()
	w.art.Close()
}

func (w *Window) show(win *gocv.Window, width, height int, bgr []byte) {
	mat, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, bgr)
	if err != nil {
		w.logger.Debug("preview frame skipped", "error", err)
		return
	}
	defer mat.Close()

	if height > previewHeight {
		scaled := gocv.NewMat()
		defer scaled.Close()
		size := image.Point{X: width * previewHeight / height, Y: previewHeight}
		if size.X < 1 {
			size.X = 1
		}
		gocv.Resize(mat, &scaled, size, 0, 0, gocv.InterpolationArea)
		win.IMShow(scaled)
		return
	}
	win.IMShow(mat)
}
