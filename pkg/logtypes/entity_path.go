package logtypes

import "strings"

// EntityPath is a slash-separated hierarchical path such as "/world/camera".
// Values built with NewEntityPath or ParseEntityPath are normalized: one
// leading slash, no empty parts, no trailing slash.
type EntityPath string

// RootEntityPath is the root of the hierarchy.
const RootEntityPath EntityPath = "/"

// NewEntityPath joins parts into a path. Slashes inside a part split it.
func NewEntityPath(parts ...string) EntityPath {
	return ParseEntityPath(strings.Join(parts, "/"))
}

// ParseEntityPath normalizes s.
func ParseEntityPath(s string) EntityPath {
	parts := splitParts(s)
	if len(parts) == 0 {
		return RootEntityPath
	}
	return EntityPath("/" + strings.Join(parts, "/"))
}

// Parts returns the non-empty path components.
func (p EntityPath) Parts() []string {
	return splitParts(string(p))
}

// IsRoot reports whether p has no components.
func (p EntityPath) IsRoot() bool {
	return len(p.Parts()) == 0
}

// Join appends child components.
func (p EntityPath) Join(parts ...string) EntityPath {
	return NewEntityPath(append(p.Parts(), parts...)...)
}

// Parent returns the path without its last component. The root is its own
// parent.
func (p EntityPath) Parent() EntityPath {
	parts := p.Parts()
	if len(parts) == 0 {
		return RootEntityPath
	}
	return NewEntityPath(parts[:len(parts)-1]...)
}

// IsDescendantOf reports whether p lies strictly below ancestor.
func (p EntityPath) IsDescendantOf(ancestor EntityPath) bool {
	mine, theirs := p.Parts(), ancestor.Parts()
	if len(mine) <= len(theirs) {
		return false
	}
	for i := range theirs {
		if mine[i] != theirs[i] {
			return false
		}
	}
	return true
}

func (p EntityPath) String() string {
	return string(p)
}

func splitParts(s string) []string {
	fields := strings.Split(strings.TrimSpace(s), "/")
	parts := fields[:0]
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return parts
}
