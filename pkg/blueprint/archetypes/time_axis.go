package archetypes

import (
	"github.com/ajitpratap0/rerun-sdk-go/pkg/blueprint/components"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// TimeAxis configures the time axis of a time series plot.
type TimeAxis struct {
	// How the axis is linked to the other plots of the blueprint.
	Link loggable.Option[loggable.ComponentBatch]
}

// TimeAxisName is the wire identifier of TimeAxis.
const TimeAxisName loggable.ArchetypeName = "rerun.blueprint.archetypes.TimeAxis"

var TimeAxisDescriptorLink = fieldDescriptor(TimeAxisName, "link", components.LinkAxisType)

var timeAxisTable = loggable.NewArchetypeTable(TimeAxisName,
	loggable.Field(TimeAxisDescriptorLink, components.LinkAxisCodec,
		func(a *TimeAxis) *loggable.Option[loggable.ComponentBatch] { return &a.Link }),
)

func (TimeAxis) UpdateFields() TimeAxis {
	return TimeAxis{}
}

func (TimeAxis) ClearFields() (TimeAxis, error) {
	return timeAxisTable.ClearFields()
}

// WithLink sets how the axis is linked. Unknown variants are rejected with
// ErrorTypeInvalidComponent.
func (a TimeAxis) WithLink(link components.LinkAxis) (TimeAxis, error) {
	return a.WithManyLink([]components.LinkAxis{link})
}

func (a TimeAxis) WithManyLink(link []components.LinkAxis) (TimeAxis, error) {
	err := loggable.Assign(&a.Link, components.LinkAxisCodec, TimeAxisDescriptorLink, link)
	return a, err
}

func (a *TimeAxis) ColumnsWithLengths(lengths []uint32) ([]loggable.ComponentColumn, error) {
	return timeAxisTable.ColumnsWithLengths(a, lengths)
}

func (a *TimeAxis) Columns() ([]loggable.ComponentColumn, error) {
	return timeAxisTable.Columns(a)
}

func (a TimeAxis) AsBatches() ([]loggable.ComponentBatch, error) {
	return timeAxisTable.AsBatches(&a)
}
