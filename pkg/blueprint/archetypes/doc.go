// Package archetypes defines the blueprint archetypes, which group the
// blueprint components configuring graph force simulations and time series
// plots.
//
// Every archetype field is an optional component batch: an absent field is
// left untouched by a log call, while a field holding an empty batch
// retracts whatever was logged for it before (see ClearFields).
package archetypes

import "github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"

func fieldDescriptor(name loggable.ArchetypeName, field loggable.ArchetypeFieldName, ct loggable.ComponentType) loggable.ComponentDescriptor {
	return loggable.NewComponentDescriptor(ct).WithArchetype(name, field)
}

var (
	_ loggable.AsComponents = ForceCollisionRadius{}
	_ loggable.AsComponents = ForceLink{}
	_ loggable.AsComponents = ForceManyBody{}
	_ loggable.AsComponents = ForcePosition{}
	_ loggable.AsComponents = ForceCenter{}
	_ loggable.AsComponents = TimeAxis{}
)
