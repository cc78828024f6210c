// Package debug provides frame capture for the viewer.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"
)

// Supported screenshot formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

var (
	// ErrSizeMismatch is returned when the pixel buffer does not match width*height*4.
	ErrSizeMismatch = errors.New("pixel data size mismatch")
	// ErrUnknownFormat is returned for formats other than png and bmp.
	ErrUnknownFormat = errors.New("unknown screenshot format")
)

// Screenshots writes read-back frames as image files.
type Screenshots struct {
	dir    string
	prefix string
	format string
	now    func() time.Time
	seq    int
}

// NewScreenshots creates a capture handler writing "<prefix>_<timestamp>_<n>.<format>" into dir.
// An empty format means PNG.
func NewScreenshots(dir, prefix, format string) *Screenshots {
	if format == "" {
		format = FormatPNG
	}
	return &Screenshots{dir: dir, prefix: prefix, format: format, now: time.Now}
}

// Save writes bottom-up RGBA rows (as returned by glReadPixels) flipped to a top-down image.
func (s *Screenshots) Save(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return "", fmt.Errorf("%w: %dx%d with %d bytes", ErrSizeMismatch, width, height, len(pixels))
	}
	if s.format != FormatPNG && s.format != FormatBMP {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s.format)
	}

	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	img := Flip(pixels, width, height)

	s.seq++
	name := fmt.Sprintf("%s_%s_%d.%s", s.prefix, s.now().Format("2006-01-02_15-04-05"), s.seq, s.format)
	path := filepath.Join(s.dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := s.encode(file, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", s.format, err)
	}
	return path, nil
}

func (s *Screenshots) encode(w io.Writer, img image.Image) error {
	if s.format == FormatBMP {
		return bmp.Encode(w, img)
	}
	return png.Encode(w, img)
}

// Flip copies GL read-back rows into an image with the origin at the top left.
func Flip(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img
}
