package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grocky/movie-wall-art/internal/logger"
	"github.com/grocky/movie-wall-art/internal/output"
)

func main() {
	dir := flag.String("path", ".", "the directory of rendered art to serve")
	port := flag.Int("port", 9090, "the port to listen on")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: *logLevel, Format: "text"})
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Serving rendered art", "path", *dir, "port", *port)
	if err := http.ListenAndServe(":"+strconv.Itoa(*port), newRouter(*dir)); err != nil {
		log.Error("File server stopped", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func newRouter(dir string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		names, err := listArt(dir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"art": names})
	})
	router.StaticFS("/art", http.Dir(dir))
	return router
}

// listArt returns the files in dir that the art writer can produce.
func listArt(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, known := range output.Extensions() {
			if ext == known {
				names = append(names, e.Name())
				break
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
