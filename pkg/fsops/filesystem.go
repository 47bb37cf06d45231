// Package fsops implements the shell's filesystem capability on top of the
// operating system. The session's working directory is the process working
// directory, so relative paths resolve against it implicitly.
package fsops

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/cockroachdb/errors"

	taierrors "thoreinstein.com/tai/pkg/errors"
)

// Rename records one entry renamed by RenameMatching.
type Rename struct {
	Old string // original base name
	New string // new path, joined with the directory as given
}

// OS is the filesystem capability backed by the local machine.
type OS struct{}

// New creates an OS filesystem.
func New() *OS {
	return &OS{}
}

// List returns the names of the entries in dir, sorted by name.
func (OS) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// ReadFile returns the contents of name verbatim.
func (OS) ReadFile(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile replaces the contents of name, creating it if needed.
func (OS) WriteFile(name, content string) error {
	return os.WriteFile(name, []byte(content), 0o644)
}

// Remove deletes a file. Directories are refused.
func (OS) Remove(name string) error {
	info, err := os.Lstat(name)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("is a directory")}
	}
	return os.Remove(name)
}

// Getwd returns the current working directory.
func (OS) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir changes the current working directory.
func (OS) Chdir(dir string) error {
	return os.Chdir(dir)
}

// DirSize returns the total size in bytes of the regular files under root.
// Unreadable entries are skipped. Symbolic links are not followed.
func (OS) DirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// RenameMatching renames every entry of dir (non-recursively) whose name
// matches pattern, replacing all matches with replacement. The replacement
// may reference capture groups as $1 or ${name}.
func (OS) RenameMatching(dir, pattern, replacement string) ([]Rename, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, taierrors.NewInvalidArgumentError("batch-rename", "invalid pattern", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var renamed []Rename
	for _, e := range entries {
		name := e.Name()
		if !re.MatchString(name) {
			continue
		}

		newPath := filepath.Join(dir, re.ReplaceAllString(name, replacement))
		if err := os.Rename(filepath.Join(dir, name), newPath); err != nil {
			return renamed, errors.Wrapf(err, "failed to rename %s", name)
		}
		renamed = append(renamed, Rename{Old: name, New: newPath})
	}

	return renamed, nil
}
