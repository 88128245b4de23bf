package preview

import (
	"context"
	"errors"
	"image"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/grocky/movie-wall-art/internal/art"
	"github.com/grocky/movie-wall-art/internal/logger"
	"github.com/grocky/movie-wall-art/internal/sampler"
)

// Status is served as JSON on /status.
type Status struct {
	Expected  int  `json:"expected"`
	Columns   int  `json:"columns"`
	LastFrame int  `json:"last_frame"`
	Done      bool `json:"done"`
}

// Server serves the art in progress and the latest sampled frame over HTTP.
// It keeps its own copy of the canvas, updated one column at a time, so
// requests never touch the pipeline's canvas.
type Server struct {
	logger     *logger.Logger
	router     *gin.Engine
	httpServer *http.Server

	mu     sync.RWMutex
	canvas *art.Canvas
	frame  *art.Frame
	status Status
}

// NewServer builds a server listening on addr once started.
func NewServer(addr string, log *logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	s := &Server{logger: log, router: router}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	router.GET("/status", s.handleStatus)
	router.GET("/art.png", s.handleArt)
	router.GET("/frame.png", s.handleFrame)
	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves in the background until Shutdown.
func (s *Server) ListenAndServe() {
	go func() {
		s.logger.Info("Preview server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Preview server stopped", "error", err)
		}
	}()
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Stop shuts the server down within timeout. A failed shutdown only affects
// the preview, so it is logged at debug level.
func (s *Server) Stop(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		s.logger.Debug("Preview server shutdown", "error", err)
	}
}

func (s *Server) Start(columns int) {
	s.mu.Lock()
	s.status = Status{Expected: columns}
	s.mu.Unlock()
}

func (s *Server) Observe(sample sampler.Sample, canvas *art.Canvas) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canvas == nil {
		s.canvas = canvas.Clone()
	} else {
		s.canvas.SetColumn(sample.Column, canvas.Column(sample.Column))
	}
	s.frame = sample.Frame
	s.status.Columns++
	s.status.LastFrame = sample.Index
}

func (s *Server) Finish(canvas *art.Canvas) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas = canvas.Clone()
	s.status.Done = true
}

func (s *Server) handleStatus(c *gin.Context) {
	s.mu.RLock()
	status := s.status
	s.mu.RUnlock()
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleArt(c *gin.Context) {
	s.mu.RLock()
	var img image.Image
	if s.canvas != nil {
		img = s.canvas.Image()
	}
	s.mu.RUnlock()
	s.writeImage(c, img)
}

func (s *Server) handleFrame(c *gin.Context) {
	s.mu.RLock()
	var img image.Image
	if s.frame != nil {
		img = s.frame.Image()
	}
	s.mu.RUnlock()
	s.writeImage(c, img)
}

// writeImage encodes img as PNG, downscaled to fit ?max=N pixels on its
// longest side when requested.
func (s *Server) writeImage(c *gin.Context, img image.Image) {
	if img == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing rendered yet"})
		return
	}
	if raw := c.Query("max"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max must be a positive integer"})
			return
		}
		img = imaging.Fit(img, size, size, imaging.Box)
	}

	c.Header("Content-Type", "image/png")
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
	if err := imaging.Encode(c.Writer, img, imaging.PNG); err != nil {
		s.logger.Warn("Failed to encode preview", "error", err)
	}
}

func ginLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
