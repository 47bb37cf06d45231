package alias

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Scanner finds alias packs in a list of directories.
type Scanner struct {
	Dirs []Dir

	// Version is the running tai version checked against each pack's
	// requires constraint.
	Version string
}

// NewScanner creates a scanner over the user directories followed by the
// project directory. An empty projectDir is ignored.
func NewScanner(userDirs []string, projectDir, version string) *Scanner {
	s := &Scanner{Version: version}
	for _, d := range userDirs {
		s.Dirs = append(s.Dirs, Dir{Path: d, Source: SourceUser})
	}
	if projectDir != "" {
		s.Dirs = append(s.Dirs, Dir{Path: projectDir, Source: SourceProject})
	}
	return s
}

// isPackFile reports whether name looks like a YAML pack.
func isPackFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

// Scan reads every pack file in the scanner's directories. Missing
// directories are skipped. Packs that fail to parse or whose requires
// constraint is not met are returned with a non-compatible status.
func (s *Scanner) Scan() (*Result, error) {
	start := time.Now()
	result := &Result{}

	for _, dir := range s.Dirs {
		entries, err := os.ReadDir(dir.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.Wrapf(err, "failed to read alias directory %s", dir.Path)
		}

		for _, entry := range entries {
			if entry.IsDir() || !isPackFile(entry.Name()) {
				continue
			}

			result.Scanned++
			fullPath := filepath.Join(dir.Path, entry.Name())
			pack := &Pack{
				Name:   strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
				Path:   fullPath,
				Source: dir.Source,
				Status: StatusCompatible,
			}

			manifest, err := loadManifest(fullPath)
			if err != nil {
				pack.Status = StatusError
				pack.Error = errors.Wrap(err, "failed to load pack")
				result.Packs = append(result.Packs, pack)
				continue
			}

			pack.Manifest = manifest
			if manifest.Name != "" {
				pack.Name = manifest.Name
			}
			_ = ValidateCompatibility(pack, s.Version)

			result.Packs = append(result.Packs, pack)
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}
