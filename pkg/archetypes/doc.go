// Package archetypes defines the data archetypes: named bundles of
// optional components that are logged together to an entity path.
package archetypes

import "github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"

var (
	_ loggable.AsComponents = AssetVideo{}
	_ loggable.AsComponents = Scalars{}
)

func fieldDescriptor(name loggable.ArchetypeName, field loggable.ArchetypeFieldName, ct loggable.ComponentType) loggable.ComponentDescriptor {
	return loggable.NewComponentDescriptor(ct).WithArchetype(name, field)
}
