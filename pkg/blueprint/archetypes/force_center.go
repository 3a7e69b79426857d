package archetypes

import (
	"github.com/ajitpratap0/rerun-sdk-go/pkg/blueprint/components"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// ForceCenter tries to move the center of mass of the graph to the origin.
type ForceCenter struct {
	Enabled  loggable.Option[loggable.ComponentBatch]
	Strength loggable.Option[loggable.ComponentBatch]
}

// ForceCenterName is the wire identifier of ForceCenter.
const ForceCenterName loggable.ArchetypeName = "rerun.blueprint.archetypes.ForceCenter"

var (
	ForceCenterDescriptorEnabled  = fieldDescriptor(ForceCenterName, "enabled", components.EnabledType)
	ForceCenterDescriptorStrength = fieldDescriptor(ForceCenterName, "strength", components.ForceStrengthType)
)

var forceCenterTable = loggable.NewArchetypeTable(ForceCenterName,
	loggable.Field(ForceCenterDescriptorEnabled, components.EnabledCodec,
		func(a *ForceCenter) *loggable.Option[loggable.ComponentBatch] { return &a.Enabled }),
	loggable.Field(ForceCenterDescriptorStrength, components.ForceStrengthCodec,
		func(a *ForceCenter) *loggable.Option[loggable.ComponentBatch] { return &a.Strength }),
)

func (ForceCenter) UpdateFields() ForceCenter {
	return ForceCenter{}
}

func (ForceCenter) ClearFields() (ForceCenter, error) {
	return forceCenterTable.ClearFields()
}

func (a ForceCenter) WithEnabled(enabled components.Enabled) (ForceCenter, error) {
	return a.WithManyEnabled([]components.Enabled{enabled})
}

func (a ForceCenter) WithManyEnabled(enabled []components.Enabled) (ForceCenter, error) {
	err := loggable.Assign(&a.Enabled, components.EnabledCodec, ForceCenterDescriptorEnabled, enabled)
	return a, err
}

func (a ForceCenter) WithStrength(strength components.ForceStrength) (ForceCenter, error) {
	return a.WithManyStrength([]components.ForceStrength{strength})
}

func (a ForceCenter) WithManyStrength(strength []components.ForceStrength) (ForceCenter, error) {
	err := loggable.Assign(&a.Strength, components.ForceStrengthCodec, ForceCenterDescriptorStrength, strength)
	return a, err
}

func (a *ForceCenter) ColumnsWithLengths(lengths []uint32) ([]loggable.ComponentColumn, error) {
	return forceCenterTable.ColumnsWithLengths(a, lengths)
}

func (a *ForceCenter) Columns() ([]loggable.ComponentColumn, error) {
	return forceCenterTable.Columns(a)
}

func (a ForceCenter) AsBatches() ([]loggable.ComponentBatch, error) {
	return forceCenterTable.AsBatches(&a)
}
