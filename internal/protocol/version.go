package protocol

import (
	"errors"
	"fmt"
	"slices"
)

// Version is a version number as int
type Version uint32

// The version numbers, making grepping easier
const (
	VersionUnknown Version = 0
	Version1       Version = 0x1
	Version2       Version = 0x6b3343cf
)

// SupportedVersions lists the versions that the client offers.
// It must be in sorted order of preference, highest-preferred first.
var SupportedVersions = []Version{Version1, Version2}

func (vn Version) String() string {
	switch vn {
	case VersionUnknown:
		return "unknown"
	case Version1:
		return "v1"
	case Version2:
		return "v2"
	default:
		return fmt.Sprintf("%#x", uint32(vn))
	}
}

// IsSupportedVersion returns true if the version is contained in supported
func IsSupportedVersion(supported []Version, v Version) bool {
	return slices.Contains(supported, v)
}

// ValidateVersions checks that a version list is non-empty and free of duplicates.
func ValidateVersions(versions []Version) error {
	if len(versions) == 0 {
		return errors.New("no versions configured")
	}
	for i, v := range versions {
		if v == VersionUnknown {
			return fmt.Errorf("invalid version at position %d", i)
		}
		if slices.Contains(versions[:i], v) {
			return fmt.Errorf("duplicate version %s", v)
		}
	}
	return nil
}
