package registry

import (
	"errors"
	"fmt"
)

// ErrDiscovery matches every *DiscoveryError via errors.Is.
var ErrDiscovery = errors.New("script type discovery failed")

// DiscoveryError reports that a required source could not be enumerated.
type DiscoveryError struct {
	Source string
	Path   string
	Err    error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovering script types in %s source %s: %v", e.Source, e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDiscovery) true for any DiscoveryError.
func (e *DiscoveryError) Is(target error) bool { return target == ErrDiscovery }

// ProviderLoadError reports a single provider that was excluded from a snapshot.
type ProviderLoadError struct {
	Dir    string
	TypeID string // empty when the manifest could not be decoded
	Err    error
}

func (e *ProviderLoadError) Error() string {
	if e.TypeID != "" {
		return fmt.Sprintf("loading provider %s from %s: %v", e.TypeID, e.Dir, e.Err)
	}
	return fmt.Sprintf("loading provider from %s: %v", e.Dir, e.Err)
}

func (e *ProviderLoadError) Unwrap() error { return e.Err }
