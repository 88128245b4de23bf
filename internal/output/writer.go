// Package output persists the finished art to disk.
package output

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for paths whose extension has no encoder.
var ErrUnsupportedFormat = errors.New("output: unsupported image format")

// JPEGQuality is used for .jpg and .jpeg paths.
const JPEGQuality = 100

// FileWriter encodes images to files, picking the format from the extension.
// Every format it accepts stores opaque images as 3 channels of 8 bits.
type FileWriter struct{}

// Extensions lists the accepted file extensions.
func Extensions() []string {
	return []string{".png", ".bmp", ".jpg", ".jpeg"}
}

// Write encodes img to path, creating parent directories as needed.
func (FileWriter) Write(img image.Image, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !supported(ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	switch ext {
	case ".png":
		return gg.SavePNG(path, img)
	case ".jpg", ".jpeg":
		return gg.SaveJPG(path, img, JPEGQuality)
	default:
		return encodeFile(path, img, bmp.Encode)
	}
}

func supported(ext string) bool {
	for _, e := range Extensions() {
		if e == ext {
			return true
		}
	}
	return false
}

func encodeFile(path string, img image.Image, encode func(io.Writer, image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
