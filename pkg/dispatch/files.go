package dispatch

import (
	"context"
	"fmt"
	"strings"

	"thoreinstein.com/tai/pkg/command"
)

const bytesPerMB = 1024 * 1024

func (d *Dispatcher) listFiles(_ context.Context, _ command.Parsed) (string, error) {
	names, err := d.caps.Files.List(".")
	if err != nil {
		return "", err
	}
	return strings.Join(names, "\n"), nil
}

func (d *Dispatcher) showCwd(_ context.Context, _ command.Parsed) (string, error) {
	return d.caps.Files.Getwd()
}

func (d *Dispatcher) changeDir(_ context.Context, p command.Parsed) (string, error) {
	dir := p.Arg(0)
	if err := d.caps.Files.Chdir(dir); err != nil {
		return "", err
	}
	return "Changed directory to " + dir, nil
}

func (d *Dispatcher) showFile(_ context.Context, p command.Parsed) (string, error) {
	return d.caps.Files.ReadFile(p.Arg(0))
}

func (d *Dispatcher) writeFile(_ context.Context, p command.Parsed) (string, error) {
	name := p.Arg(0)
	if err := d.caps.Files.WriteFile(name, p.Arg(1)); err != nil {
		return "", err
	}
	return "Wrote to file " + name, nil
}

func (d *Dispatcher) deleteFile(_ context.Context, p command.Parsed) (string, error) {
	name := p.Arg(0)
	if err := d.caps.Files.Remove(name); err != nil {
		return "", err
	}
	return "Deleted file " + name, nil
}

func (d *Dispatcher) diskUsage(_ context.Context, _ command.Parsed) (string, error) {
	cwd, err := d.caps.Files.Getwd()
	if err != nil {
		return "", err
	}
	size, err := d.caps.Files.DirSize(cwd)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Disk usage for %s: %.2f MB", cwd, float64(size)/bytesPerMB), nil
}

func (d *Dispatcher) batchRename(_ context.Context, p command.Parsed) (string, error) {
	renames, err := d.caps.Files.RenameMatching(p.Arg(0), p.Arg(1), p.Arg(2))
	if err != nil {
		return "", err
	}
	if len(renames) == 0 {
		return "No files matched the pattern.", nil
	}

	var b strings.Builder
	b.WriteString("Renamed files:")
	for _, r := range renames {
		fmt.Fprintf(&b, "\n%s -> %s", r.Old, r.New)
	}
	return b.String(), nil
}
