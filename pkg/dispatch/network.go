package dispatch

import (
	"context"

	"thoreinstein.com/tai/pkg/archive"
	"thoreinstein.com/tai/pkg/command"
	"thoreinstein.com/tai/pkg/netfetch"
)

const unsupportedArchive = "Unsupported archive format. Only .zip, .tar.gz/.tgz, .tar.zst and .tar.lz4 supported."

func (d *Dispatcher) download(ctx context.Context, p command.Parsed) (string, error) {
	url, file := p.Arg(0), p.Arg(1)
	if err := d.caps.Net.Download(ctx, url, file); err != nil {
		return "", err
	}
	return "Downloaded " + url + " to " + file, nil
}

func (d *Dispatcher) extract(_ context.Context, p command.Parsed) (string, error) {
	src, dest := p.Arg(0), p.Arg(1)
	if archive.DetectFormat(src) == archive.FormatUnknown {
		return unsupportedArchive, nil
	}
	if err := d.caps.Archives.Extract(src, dest); err != nil {
		return "", err
	}
	return "Extracted " + src + " to " + dest, nil
}

func (d *Dispatcher) weather(ctx context.Context, p command.Parsed) (string, error) {
	return d.caps.Net.GetText(ctx, netfetch.WeatherURL(d.opts.WeatherEndpoint, p.Arg(0)))
}
