// Package archive unpacks zip files and compressed tarballs into a
// directory, preserving the archive's internal layout.
package archive

import (
	"archive/tar"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies an archive container and its compression.
type Format int

const (
	FormatUnknown Format = iota
	FormatZip
	FormatTarGzip
	FormatTarZstd
	FormatTarLZ4
)

// ErrUnsupportedFormat is returned for archive names with an unknown
// extension.
var ErrUnsupportedFormat = errors.New("unsupported archive format")

// ErrUnsafePath is returned when an entry would be written outside the
// destination directory.
var ErrUnsafePath = errors.New("archive entry escapes destination")

// DetectFormat infers the archive format from name's extension.
func DetectFormat(name string) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGzip
	case strings.HasSuffix(lower, ".tar.zst"), strings.HasSuffix(lower, ".tzst"):
		return FormatTarZstd
	case strings.HasSuffix(lower, ".tar.lz4"):
		return FormatTarLZ4
	default:
		return FormatUnknown
	}
}

// Extractor unpacks archives on the local filesystem.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract unpacks archivePath into dest, creating dest if needed.
func (e *Extractor) Extract(archivePath, dest string) error {
	switch DetectFormat(archivePath) {
	case FormatZip:
		return extractZip(archivePath, dest)
	case FormatTarGzip:
		return extractTar(archivePath, dest, func(r io.Reader) (io.Reader, func(), error) {
			zr, err := gzip.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return zr, func() { _ = zr.Close() }, nil
		})
	case FormatTarZstd:
		return extractTar(archivePath, dest, func(r io.Reader) (io.Reader, func(), error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return zr, zr.Close, nil
		})
	case FormatTarLZ4:
		return extractTar(archivePath, dest, func(r io.Reader) (io.Reader, func(), error) {
			return lz4.NewReader(r), func() {}, nil
		})
	default:
		return ErrUnsupportedFormat
	}
}

func extractZip(archivePath, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return errors.Wrapf(err, "failed to open %s", f.Name)
		}
		err = writeFile(target, rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

type decompressor func(io.Reader) (io.Reader, func(), error)

func extractTar(archivePath, dest string, decompress decompressor) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	r, closeFn, err := decompress(f)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", archivePath)
	}
	defer closeFn()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", archivePath)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, fs.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if filepath.IsAbs(hdr.Linkname) {
				return errors.Wrapf(ErrUnsafePath, "%s -> %s", hdr.Name, hdr.Linkname)
			}
			if _, err := safeJoin(dest, filepath.Join(filepath.Dir(hdr.Name), hdr.Linkname)); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		}
	}
}

func writeFile(target string, r io.Reader, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o644
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return errors.Wrapf(err, "failed to write %s", target)
	}
	return out.Close()
}

// safeJoin joins name onto dest, refusing names that resolve outside dest.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(ErrUnsafePath, "%s", name)
	}
	return target, nil
}
