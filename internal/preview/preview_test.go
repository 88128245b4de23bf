package preview

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/grocky/movie-wall-art/internal/art"
	"github.com/grocky/movie-wall-art/internal/logger"
	"github.com/grocky/movie-wall-art/internal/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer("127.0.0.1:0", logger.NewNopLogger())
	gin.SetMode(gin.TestMode)
	return s
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func sampleFrame() *art.Frame {
	f := art.NewFrame(4, 2)
	for i := range f.Pix {
		f.Pix[i] = art.Color{R: 200, G: 10, B: 10}
	}
	return f
}

func TestServer_NothingRenderedYet(t *testing.T) {
	s := setupTestServer(t)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/art.png").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/frame.png").Code)
}

func TestServer_ServesArtInProgress(t *testing.T) {
	s := setupTestServer(t)
	canvas := art.NewCanvas(3, 2)
	s.Start(3)

	canvas.SetColumn(0, art.Column{{R: 1}, {R: 2}})
	s.Observe(sampler.Sample{Index: 0, Column: 0, Frame: sampleFrame()}, canvas)
	canvas.SetColumn(1, art.Column{{G: 3}, {G: 4}})
	s.Observe(sampler.Sample{Index: 5, Column: 1, Frame: sampleFrame()}, canvas)

	w := get(t, s, "/art.png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(3, 2), img.Bounds().Size())
	r, _, _, _ := img.At(0, 1).RGBA()
	assert.Equal(t, uint32(2), r>>8)
	_, g, _, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(4), g>>8)

	w = get(t, s, "/status")
	require.Equal(t, http.StatusOK, w.Code)
	var status Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, Status{Expected: 3, Columns: 2, LastFrame: 5}, status)
}

func TestServer_FrameThumbnail(t *testing.T) {
	s := setupTestServer(t)
	s.Observe(sampler.Sample{Frame: sampleFrame()}, art.NewCanvas(1, 1))

	w := get(t, s, "/frame.png?max=2")
	require.Equal(t, http.StatusOK, w.Code)
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(2, 1), img.Bounds().Size())

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/frame.png?max=zero").Code)
}

func TestServer_FinishMarksDone(t *testing.T) {
	s := setupTestServer(t)
	s.Finish(art.NewCanvas(2, 2))

	w := get(t, s, "/status")
	var status Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Done)
	assert.Equal(t, http.StatusOK, get(t, s, "/art.png").Code)
}

func TestProgress_DrawsBar(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	p.Start(2)
	p.Observe(sampler.Sample{}, nil)
	p.Observe(sampler.Sample{}, nil)
	p.Finish(nil)

	assert.Contains(t, buf.String(), "rendering")
}

func TestProgress_FinishWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	p.Observe(sampler.Sample{}, nil)
	p.Finish(nil)
	assert.Empty(t, buf.String())
}

func TestServer_StopLogsFailedShutdown(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewServer("127.0.0.1:0", &logger.Logger{Logger: zap.New(core)})

	entered := make(chan struct{})
	release := make(chan struct{})
	s.httpServer.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go s.httpServer.Serve(ln)
	go http.Get("http://" + ln.Addr().String() + "/")
	<-entered

	s.Stop(10 * time.Millisecond)
	close(release)

	entries := logs.FilterMessage("Preview server shutdown").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
}

func TestServer_StopIdle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewServer("127.0.0.1:0", &logger.Logger{Logger: zap.New(core)})

	s.Stop(time.Second)
	assert.Zero(t, logs.FilterMessage("Preview server shutdown").Len())
}
