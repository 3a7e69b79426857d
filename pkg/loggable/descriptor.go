package loggable

import (
	"github.com/cespare/xxhash/v2"
)

// ComponentType is the stable wire identifier of a component type,
// e.g. "rerun.components.Blob".
type ComponentType string

// ArchetypeName is the stable identifier of an archetype,
// e.g. "rerun.blueprint.archetypes.ForceCollisionRadius".
type ArchetypeName string

// ArchetypeFieldName is the name of a field within an archetype, e.g. "enabled".
type ArchetypeFieldName string

// ComponentDescriptor identifies a component slot. ArchetypeName and
// ArchetypeFieldName are empty for components logged outside an archetype.
type ComponentDescriptor struct {
	ArchetypeName      ArchetypeName      `json:"archetype_name,omitempty"`
	ArchetypeFieldName ArchetypeFieldName `json:"archetype_field_name,omitempty"`
	ComponentType      ComponentType      `json:"component_type"`
}

// NewComponentDescriptor creates a descriptor for a bare component.
func NewComponentDescriptor(componentType ComponentType) ComponentDescriptor {
	return ComponentDescriptor{ComponentType: componentType}
}

// WithArchetype returns a copy of d attached to an archetype field.
func (d ComponentDescriptor) WithArchetype(name ArchetypeName, field ArchetypeFieldName) ComponentDescriptor {
	d.ArchetypeName = name
	d.ArchetypeFieldName = field
	return d
}

// String renders the descriptor as "archetype:field#component".
func (d ComponentDescriptor) String() string {
	s := string(d.ComponentType)
	if d.ArchetypeFieldName != "" {
		s = string(d.ArchetypeFieldName) + "#" + s
	}
	if d.ArchetypeName != "" {
		s = string(d.ArchetypeName) + ":" + s
	}
	return s
}

// Hash returns a stable 64-bit fingerprint of the descriptor.
func (d ComponentDescriptor) Hash() uint64 {
	h := xxhash.New()
	// Separators keep ("ab", "c") and ("a", "bc") apart.
	_, _ = h.WriteString(string(d.ArchetypeName))
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(string(d.ArchetypeFieldName))
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(string(d.ComponentType))
	return h.Sum64()
}
