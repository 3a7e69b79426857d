package archetypes

import (
	"github.com/ajitpratap0/rerun-sdk-go/pkg/blueprint/components"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// ForceManyBody is a force between each pair of nodes that resembles an
// electrical charge. Positive strength makes nodes repel, negative strength
// makes them attract.
type ForceManyBody struct {
	Enabled  loggable.Option[loggable.ComponentBatch]
	Strength loggable.Option[loggable.ComponentBatch]
}

// ForceManyBodyName is the wire identifier of ForceManyBody.
const ForceManyBodyName loggable.ArchetypeName = "rerun.blueprint.archetypes.ForceManyBody"

var (
	ForceManyBodyDescriptorEnabled  = fieldDescriptor(ForceManyBodyName, "enabled", components.EnabledType)
	ForceManyBodyDescriptorStrength = fieldDescriptor(ForceManyBodyName, "strength", components.ForceStrengthType)
)

var forceManyBodyTable = loggable.NewArchetypeTable(ForceManyBodyName,
	loggable.Field(ForceManyBodyDescriptorEnabled, components.EnabledCodec,
		func(a *ForceManyBody) *loggable.Option[loggable.ComponentBatch] { return &a.Enabled }),
	loggable.Field(ForceManyBodyDescriptorStrength, components.ForceStrengthCodec,
		func(a *ForceManyBody) *loggable.Option[loggable.ComponentBatch] { return &a.Strength }),
)

func (ForceManyBody) UpdateFields() ForceManyBody {
	return ForceManyBody{}
}

func (ForceManyBody) ClearFields() (ForceManyBody, error) {
	return forceManyBodyTable.ClearFields()
}

func (a ForceManyBody) WithEnabled(enabled components.Enabled) (ForceManyBody, error) {
	return a.WithManyEnabled([]components.Enabled{enabled})
}

func (a ForceManyBody) WithManyEnabled(enabled []components.Enabled) (ForceManyBody, error) {
	err := loggable.Assign(&a.Enabled, components.EnabledCodec, ForceManyBodyDescriptorEnabled, enabled)
	return a, err
}

func (a ForceManyBody) WithStrength(strength components.ForceStrength) (ForceManyBody, error) {
	return a.WithManyStrength([]components.ForceStrength{strength})
}

func (a ForceManyBody) WithManyStrength(strength []components.ForceStrength) (ForceManyBody, error) {
	err := loggable.Assign(&a.Strength, components.ForceStrengthCodec, ForceManyBodyDescriptorStrength, strength)
	return a, err
}

func (a *ForceManyBody) ColumnsWithLengths(lengths []uint32) ([]loggable.ComponentColumn, error) {
	return forceManyBodyTable.ColumnsWithLengths(a, lengths)
}

func (a *ForceManyBody) Columns() ([]loggable.ComponentColumn, error) {
	return forceManyBodyTable.Columns(a)
}

func (a ForceManyBody) AsBatches() ([]loggable.ComponentBatch, error) {
	return forceManyBodyTable.AsBatches(&a)
}
