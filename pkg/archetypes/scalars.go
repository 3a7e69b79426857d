package archetypes

import (
	"github.com/ajitpratap0/rerun-sdk-go/pkg/components"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// Scalars logs one or more double-precision values, typically one per
// time series plot line.
type Scalars struct {
	Scalars loggable.Option[loggable.ComponentBatch]
}

// ScalarsName is the wire identifier of Scalars.
const ScalarsName loggable.ArchetypeName = "rerun.archetypes.Scalars"

var ScalarsDescriptorScalars = fieldDescriptor(ScalarsName, "scalars", components.ScalarType)

var scalarsTable = loggable.NewArchetypeTable(ScalarsName,
	loggable.Field(ScalarsDescriptorScalars, components.ScalarCodec,
		func(a *Scalars) *loggable.Option[loggable.ComponentBatch] { return &a.Scalars }),
)

// NewScalars creates a Scalars holding values.
func NewScalars(values ...components.Scalar) (Scalars, error) {
	return Scalars{}.WithScalars(values...)
}

func (Scalars) UpdateFields() Scalars {
	return Scalars{}
}

func (Scalars) ClearFields() (Scalars, error) {
	return scalarsTable.ClearFields()
}

func (a Scalars) WithScalars(values ...components.Scalar) (Scalars, error) {
	if values == nil {
		values = []components.Scalar{}
	}
	err := loggable.Assign(&a.Scalars, components.ScalarCodec, ScalarsDescriptorScalars, values)
	return a, err
}

func (a *Scalars) ColumnsWithLengths(lengths []uint32) ([]loggable.ComponentColumn, error) {
	return scalarsTable.ColumnsWithLengths(a, lengths)
}

func (a *Scalars) Columns() ([]loggable.ComponentColumn, error) {
	return scalarsTable.Columns(a)
}

func (a Scalars) AsBatches() ([]loggable.ComponentBatch, error) {
	return scalarsTable.AsBatches(&a)
}
