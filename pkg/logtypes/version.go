package logtypes

import "fmt"

// Version is the SDK version that wrote a stream. It travels as four bytes
// in the file header: major, minor, patch and a pre-release tag.
type Version struct {
	Major uint8 `json:"major"`
	Minor uint8 `json:"minor"`
	Patch uint8 `json:"patch"`
	// Meta is zero for releases. Other values mark pre-release builds.
	Meta uint8 `json:"meta,omitempty"`
}

// CurrentVersion is the version this module writes.
var CurrentVersion = Version{Major: 0, Minor: 23, Patch: 0}

// VersionFromBytes decodes a header version.
func VersionFromBytes(b [4]byte) Version {
	return Version{Major: b[0], Minor: b[1], Patch: b[2], Meta: b[3]}
}

// Bytes encodes v for the file header.
func (v Version) Bytes() [4]byte {
	return [4]byte{v.Major, v.Minor, v.Patch, v.Meta}
}

// IsCompatibleWith reports whether data written by v can be read by a
// reader at other: the major and minor versions must match.
func (v Version) IsCompatibleWith(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor
}

// NewerThan compares major and minor versions only.
func (v Version) NewerThan(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor > other.Minor
}

func (v Version) String() string {
	if v.Meta != 0 {
		return fmt.Sprintf("%d.%d.%d-pre.%d", v.Major, v.Minor, v.Patch, v.Meta)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
