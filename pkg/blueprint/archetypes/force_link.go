package archetypes

import (
	"github.com/ajitpratap0/rerun-sdk-go/pkg/blueprint/components"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// ForceLink aims to achieve a target distance between two nodes that are
// connected by an edge.
type ForceLink struct {
	// Whether the link force is enabled.
	Enabled loggable.Option[loggable.ComponentBatch]

	// The target distance between two nodes.
	Distance loggable.Option[loggable.ComponentBatch]

	// Number of iterations to run per simulation tick.
	Iterations loggable.Option[loggable.ComponentBatch]
}

// ForceLinkName is the wire identifier of ForceLink.
const ForceLinkName loggable.ArchetypeName = "rerun.blueprint.archetypes.ForceLink"

// Descriptors of the ForceLink fields.
var (
	ForceLinkDescriptorEnabled    = fieldDescriptor(ForceLinkName, "enabled", components.EnabledType)
	ForceLinkDescriptorDistance   = fieldDescriptor(ForceLinkName, "distance", components.ForceDistanceType)
	ForceLinkDescriptorIterations = fieldDescriptor(ForceLinkName, "iterations", components.ForceIterationsType)
)

var forceLinkTable = loggable.NewArchetypeTable(ForceLinkName,
	loggable.Field(ForceLinkDescriptorEnabled, components.EnabledCodec,
		func(a *ForceLink) *loggable.Option[loggable.ComponentBatch] { return &a.Enabled }),
	loggable.Field(ForceLinkDescriptorDistance, components.ForceDistanceCodec,
		func(a *ForceLink) *loggable.Option[loggable.ComponentBatch] { return &a.Distance }),
	loggable.Field(ForceLinkDescriptorIterations, components.ForceIterationsCodec,
		func(a *ForceLink) *loggable.Option[loggable.ComponentBatch] { return &a.Iterations }),
)

// UpdateFields returns a ForceLink with every slot absent.
func (ForceLink) UpdateFields() ForceLink {
	return ForceLink{}
}

// ClearFields returns a ForceLink with every slot set to an empty batch.
func (ForceLink) ClearFields() (ForceLink, error) {
	return forceLinkTable.ClearFields()
}

func (a ForceLink) WithEnabled(enabled components.Enabled) (ForceLink, error) {
	return a.WithManyEnabled([]components.Enabled{enabled})
}

func (a ForceLink) WithManyEnabled(enabled []components.Enabled) (ForceLink, error) {
	err := loggable.Assign(&a.Enabled, components.EnabledCodec, ForceLinkDescriptorEnabled, enabled)
	return a, err
}

func (a ForceLink) WithDistance(distance components.ForceDistance) (ForceLink, error) {
	return a.WithManyDistance([]components.ForceDistance{distance})
}

func (a ForceLink) WithManyDistance(distance []components.ForceDistance) (ForceLink, error) {
	err := loggable.Assign(&a.Distance, components.ForceDistanceCodec, ForceLinkDescriptorDistance, distance)
	return a, err
}

func (a ForceLink) WithIterations(iterations components.ForceIterations) (ForceLink, error) {
	return a.WithManyIterations([]components.ForceIterations{iterations})
}

func (a ForceLink) WithManyIterations(iterations []components.ForceIterations) (ForceLink, error) {
	err := loggable.Assign(&a.Iterations, components.ForceIterationsCodec, ForceLinkDescriptorIterations, iterations)
	return a, err
}

func (a *ForceLink) ColumnsWithLengths(lengths []uint32) ([]loggable.ComponentColumn, error) {
	return forceLinkTable.ColumnsWithLengths(a, lengths)
}

func (a *ForceLink) Columns() ([]loggable.ComponentColumn, error) {
	return forceLinkTable.Columns(a)
}

func (a ForceLink) AsBatches() ([]loggable.ComponentBatch, error) {
	return forceLinkTable.AsBatches(&a)
}
