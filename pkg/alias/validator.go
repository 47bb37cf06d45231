package alias

import (
	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// ValidateCompatibility checks the pack's requires constraint against the
// running tai version. Development builds satisfy every constraint.
func ValidateCompatibility(p *Pack, taiVersion string) error {
	if p.Manifest == nil || p.Manifest.Requires == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(p.Manifest.Requires)
	if err != nil {
		p.Status = StatusError
		p.Error = errors.Wrap(err, "invalid tai version constraint")
		return p.Error
	}

	if taiVersion == "dev" || taiVersion == "" {
		return nil
	}

	v, err := semver.NewVersion(taiVersion)
	if err != nil {
		p.Status = StatusError
		p.Error = errors.Wrapf(err, "invalid tai version %q", taiVersion)
		return p.Error
	}

	if !constraint.Check(v) {
		p.Status = StatusIncompatible
		p.Error = errors.Newf("pack requires tai %s, but running %s", p.Manifest.Requires, taiVersion)
		return p.Error
	}

	return nil
}
