package boxfile

import (
	"errors"
	"fmt"
	"slices"
)

// Validation errors for Boxfile versioning.
var (
	// ErrUnsupportedAPIVersion indicates an unknown or unsupported API version.
	ErrUnsupportedAPIVersion = errors.New("unsupported API version")

	// ErrInvalidKind indicates an unknown Boxfile kind.
	ErrInvalidKind = errors.New("invalid kind")
)

// ValidateAPIVersion checks if the provided version is supported.
// An empty version is allowed.
func ValidateAPIVersion(version string) error {
	if version == "" || slices.Contains(SupportedAPIVersions, version) {
		return nil
	}
	return fmt.Errorf("%w: %s (supported: %v)", ErrUnsupportedAPIVersion, version, SupportedAPIVersions)
}

// ValidateKind checks if the provided kind is supported.
// An empty kind is allowed.
func ValidateKind(kind string) error {
	if kind == "" || slices.Contains(SupportedKinds, kind) {
		return nil
	}
	return fmt.Errorf("%w: %s (supported: %v)", ErrInvalidKind, kind, SupportedKinds)
}

// ValidateMeta validates the apiVersion and kind of a decoded Boxfile.
func ValidateMeta(b *Boxfile) error {
	if err := ValidateAPIVersion(b.APIVersion); err != nil {
		return err
	}
	return ValidateKind(b.Kind)
}
