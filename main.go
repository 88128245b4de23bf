package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/grocky/movie-wall-art/internal/art"
	"github.com/grocky/movie-wall-art/internal/config"
	"github.com/grocky/movie-wall-art/internal/logger"
	"github.com/grocky/movie-wall-art/internal/output"
	"github.com/grocky/movie-wall-art/internal/pipeline"
	"github.com/grocky/movie-wall-art/internal/preview"
	"github.com/grocky/movie-wall-art/internal/video"
)

// Version is the version of the build
var Version = "dev"

var configF string
var movieF string
var artF string
var widthF int
var heightF int
var styleF string
var windowF bool
var httpF string
var progressF bool
var logLevelF string
var versionF bool

func main() {
	flag.StringVar(&configF, "config", "", "optional YAML configuration file")
	flag.StringVar(&movieF, "movie", "", "the movie to render")
	flag.StringVar(&artF, "art", "", "where to write the art (.png, .bmp, .jpg)")
	flag.IntVar(&widthF, "width", 0, "art width, one column per sampled frame")
	flag.IntVar(&heightF, "height", 0, "art height")
	flag.StringVar(&styleF, "style", "", "column style: center, average or strip")
	flag.BoolVar(&windowF, "window", false, "show a live preview window")
	flag.StringVar(&httpF, "http", "", "serve a live preview on this address, e.g. :8090")
	flag.BoolVar(&progressF, "progress", true, "draw a progress bar")
	flag.StringVar(&logLevelF, "log-level", "", "debug, info, warn or error")
	flag.BoolVar(&versionF, "v", false, "print the version")
	flag.Parse()

	if versionF {
		fmt.Println(Version)
		os.Exit(0)
	}

	cfg, err := config.Load(configF)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	var observers []pipeline.Observer
	if cfg.Preview.Progress {
		observers = append(observers, preview.NewProgress(os.Stderr))
	}
	if cfg.Preview.Window {
		observers = append(observers, video.NewWindow(log))
	}
	if cfg.Preview.HTTPAddr != "" {
		srv := preview.NewServer(cfg.Preview.HTTPAddr, log)
		srv.ListenAndServe()
		defer srv.Stop(5 * time.Second)
		observers = append(observers, srv)
	}

	log.Info("Start rendering movie wall art",
		"version", Version,
		"movie", cfg.MoviePath,
		"art", cfg.ArtPath,
		"width", cfg.Art.Width,
		"height", cfg.Art.Height,
	)

	p := pipeline.New(pipeline.Config{
		MoviePath: cfg.MoviePath,
		ArtPath:   cfg.ArtPath,
		Width:     cfg.Art.Width,
		Height:    cfg.Art.Height,
		Style:     art.Style(cfg.Art.Style),
	}, video.Opener{}, output.FileWriter{}, log, observers...)

	if _, err := p.Run(); err != nil {
		log.Error("Run failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

// applyFlags lets explicitly set flags win over the file and environment.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "movie":
			cfg.MoviePath = movieF
		case "art":
			cfg.ArtPath = artF
		case "width":
			cfg.Art.Width = widthF
		case "height":
			cfg.Art.Height = heightF
		case "style":
			cfg.Art.Style = styleF
		case "window":
			cfg.Preview.Window = windowF
		case "http":
			cfg.Preview.HTTPAddr = httpF
		case "progress":
			cfg.Preview.Progress = progressF
		case "log-level":
			cfg.Log.Level = logLevelF
		}
	})
}
