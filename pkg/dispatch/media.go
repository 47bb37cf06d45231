package dispatch

import (
	"context"

	"thoreinstein.com/tai/pkg/command"
	"thoreinstein.com/tai/pkg/imageops"
)

func (d *Dispatcher) plotSine(_ context.Context, _ command.Parsed) (string, error) {
	path := d.opts.PlotPath
	if err := d.caps.Images.PlotSine(path, d.opts.PlotWidth, d.opts.PlotHeight); err != nil {
		return "", err
	}
	return "Plot saved to " + path, nil
}

// resizeImage always writes a PNG named after the source file.
func (d *Dispatcher) resizeImage(_ context.Context, p command.Parsed) (string, error) {
	src := p.Arg(0)
	dst := src + "_resized.png"
	if err := d.caps.Images.Resize(src, dst, p.Number(0), p.Number(1)); err != nil {
		return "", err
	}
	return "Resized image saved to " + dst, nil
}

func (d *Dispatcher) convertImage(_ context.Context, p command.Parsed) (string, error) {
	ext, err := imageops.Extension(p.Arg(1))
	if err != nil {
		return "Unsupported format. Supported: png, jpg, bmp, gif.", nil
	}

	src := p.Arg(0)
	dst := src + "." + ext
	if err := d.caps.Images.Convert(src, dst); err != nil {
		return "", err
	}
	return "Converted image saved to " + dst, nil
}
