// Package imageops resizes and re-encodes raster images and renders the
// sine wave plot.
package imageops

import (
	"image/color"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/disintegration/imaging"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrUnsupportedFormat is returned by Extension for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Extension maps a user-supplied format name to the file extension used
// when converting. Supported formats are png, jpg (or jpeg), bmp and gif.
func Extension(format string) (string, error) {
	switch strings.ToLower(format) {
	case "png":
		return "png", nil
	case "jpg", "jpeg":
		return "jpg", nil
	case "bmp":
		return "bmp", nil
	case "gif":
		return "gif", nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Editor decodes, transforms and encodes image files. The output encoding
// is chosen from the destination file's extension.
type Editor struct{}

// New creates an Editor.
func New() *Editor {
	return &Editor{}
}

// Resize scales src to fit within width x height, preserving its aspect
// ratio, and writes the result to dst. Smaller images are scaled up.
func (e *Editor) Resize(src, dst string, width, height int) error {
	img, err := imaging.Open(src)
	if err != nil {
		return err
	}

	b := img.Bounds()
	w, h := FitDimensions(b.Dx(), b.Dy(), width, height)
	resized := imaging.Resize(img, w, h, imaging.Lanczos)

	return errors.Wrapf(imaging.Save(resized, dst), "failed to save %s", dst)
}

// Convert re-encodes src into dst.
func (e *Editor) Convert(src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return err
	}
	return errors.Wrapf(imaging.Save(img, dst), "failed to save %s", dst)
}

// FitDimensions returns the largest size with the aspect ratio of
// srcW x srcH that fits within maxW x maxH. Each side is at least 1.
func FitDimensions(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return max(maxW, 1), max(maxH, 1)
	}

	ratio := math.Min(float64(maxW)/float64(srcW), float64(maxH)/float64(srcH))
	w := int(math.Round(float64(srcW) * ratio))
	h := int(math.Round(float64(srcH) * ratio))
	return max(w, 1), max(h, 1)
}

// PlotSine renders one period of sin(x) as a red line and saves it to
// path, widthPx x heightPx pixels. The encoding follows path's extension.
func (e *Editor) PlotSine(path string, widthPx, heightPx int) error {
	p := plot.New()
	p.Title.Text = "Sine Wave"
	p.X.Min, p.X.Max = 0, 2*math.Pi
	p.Y.Min, p.Y.Max = -1.2, 1.2
	p.Add(plotter.NewGrid())

	sine := plotter.NewFunction(math.Sin)
	sine.XMin, sine.XMax = 0, 2*math.Pi
	sine.Samples = 1000
	sine.Color = color.RGBA{R: 255, A: 255}
	sine.Width = vg.Points(1.5)
	p.Add(sine)

	return errors.Wrapf(p.Save(pixels(widthPx), pixels(heightPx), path), "failed to save %s", path)
}

// pixels converts a pixel count to a length at the default image DPI.
func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / vgimg.DefaultDPI
}
