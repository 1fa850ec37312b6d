package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrIncompatibleHost is returned when a manifest's host_version constraint
// rejects the running host version.
var ErrIncompatibleHost = errors.New("incompatible host version")

// CheckCompatibility verifies that the manifest version is valid semver and
// that hostVersion satisfies the manifest's host_version constraint.
// A hostVersion that is not semver (e.g., "dev") satisfies every constraint.
func CheckCompatibility(m *ScriptTypeManifest, hostVersion string) error {
	if _, err := parseSemver(m.Version); err != nil {
		return fmt.Errorf("invalid version %q: %w", m.Version, err)
	}

	if m.HostVersion == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(m.HostVersion)
	if err != nil {
		return fmt.Errorf("invalid host_version constraint %q: %w", m.HostVersion, err)
	}

	hv, err := parseSemver(hostVersion)
	if err != nil {
		return nil
	}
	if !constraint.Check(hv) {
		return fmt.Errorf("%w: %s requires host %s, running %s", ErrIncompatibleHost, m.ID, m.HostVersion, hostVersion)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
