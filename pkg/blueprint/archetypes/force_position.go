package archetypes

import (
	"github.com/ajitpratap0/rerun-sdk-go/pkg/blueprint/components"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// ForcePosition is like a gravitational force between each node and the
// origin of the graph.
type ForcePosition struct {
	Enabled  loggable.Option[loggable.ComponentBatch]
	Strength loggable.Option[loggable.ComponentBatch]
}

// ForcePositionName is the wire identifier of ForcePosition.
const ForcePositionName loggable.ArchetypeName = "rerun.blueprint.archetypes.ForcePosition"

var (
	ForcePositionDescriptorEnabled  = fieldDescriptor(ForcePositionName, "enabled", components.EnabledType)
	ForcePositionDescriptorStrength = fieldDescriptor(ForcePositionName, "strength", components.ForceStrengthType)
)

var forcePositionTable = loggable.NewArchetypeTable(ForcePositionName,
	loggable.Field(ForcePositionDescriptorEnabled, components.EnabledCodec,
		func(a *ForcePosition) *loggable.Option[loggable.ComponentBatch] { return &a.Enabled }),
	loggable.Field(ForcePositionDescriptorStrength, components.ForceStrengthCodec,
		func(a *ForcePosition) *loggable.Option[loggable.ComponentBatch] { return &a.Strength }),
)

func (ForcePosition) UpdateFields() ForcePosition {
	return ForcePosition{}
}

func (ForcePosition) ClearFields() (ForcePosition, error) {
	return forcePositionTable.ClearFields()
}

func (a ForcePosition) WithEnabled(enabled components.Enabled) (ForcePosition, error) {
	return a.WithManyEnabled([]components.Enabled{enabled})
}

func (a ForcePosition) WithManyEnabled(enabled []components.Enabled) (ForcePosition, error) {
	err := loggable.Assign(&a.Enabled, components.EnabledCodec, ForcePositionDescriptorEnabled, enabled)
	return a, err
}

func (a ForcePosition) WithStrength(strength components.ForceStrength) (ForcePosition, error) {
	return a.WithManyStrength([]components.ForceStrength{strength})
}

func (a ForcePosition) WithManyStrength(strength []components.ForceStrength) (ForcePosition, error) {
	err := loggable.Assign(&a.Strength, components.ForceStrengthCodec, ForcePositionDescriptorStrength, strength)
	return a, err
}

func (a *ForcePosition) ColumnsWithLengths(lengths []uint32) ([]loggable.ComponentColumn, error) {
	return forcePositionTable.ColumnsWithLengths(a, lengths)
}

func (a *ForcePosition) Columns() ([]loggable.ComponentColumn, error) {
	return forcePositionTable.Columns(a)
}

func (a ForcePosition) AsBatches() ([]loggable.ComponentBatch, error) {
	return forcePositionTable.AsBatches(&a)
}
