package archetypes

import (
	"github.com/ajitpratap0/rerun-sdk-go/pkg/blueprint/components"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// ForceCollisionRadius resolves collisions between the bounding circles of
// graph nodes, according to the radius of the nodes.
type ForceCollisionRadius struct {
	// Whether the collision force is enabled.
	Enabled loggable.Option[loggable.ComponentBatch]

	// The strength of the force.
	Strength loggable.Option[loggable.ComponentBatch]

	// Number of iterations to run per simulation tick.
	Iterations loggable.Option[loggable.ComponentBatch]
}

// ForceCollisionRadiusName is the wire identifier of ForceCollisionRadius.
const ForceCollisionRadiusName loggable.ArchetypeName = "rerun.blueprint.archetypes.ForceCollisionRadius"

// Descriptors of the ForceCollisionRadius fields.
var (
	ForceCollisionRadiusDescriptorEnabled    = fieldDescriptor(ForceCollisionRadiusName, "enabled", components.EnabledType)
	ForceCollisionRadiusDescriptorStrength   = fieldDescriptor(ForceCollisionRadiusName, "strength", components.ForceStrengthType)
	ForceCollisionRadiusDescriptorIterations = fieldDescriptor(ForceCollisionRadiusName, "iterations", components.ForceIterationsType)
)

var forceCollisionRadiusTable = loggable.NewArchetypeTable(ForceCollisionRadiusName,
	loggable.Field(ForceCollisionRadiusDescriptorEnabled, components.EnabledCodec,
		func(a *ForceCollisionRadius) *loggable.Option[loggable.ComponentBatch] { return &a.Enabled }),
	loggable.Field(ForceCollisionRadiusDescriptorStrength, components.ForceStrengthCodec,
		func(a *ForceCollisionRadius) *loggable.Option[loggable.ComponentBatch] { return &a.Strength }),
	loggable.Field(ForceCollisionRadiusDescriptorIterations, components.ForceIterationsCodec,
		func(a *ForceCollisionRadius) *loggable.Option[loggable.ComponentBatch] { return &a.Iterations }),
)

// UpdateFields returns a ForceCollisionRadius with every slot absent, for
// partial updates.
func (ForceCollisionRadius) UpdateFields() ForceCollisionRadius {
	return ForceCollisionRadius{}
}

// ClearFields returns a ForceCollisionRadius with every slot set to an
// empty batch, which retracts all previously logged values.
func (ForceCollisionRadius) ClearFields() (ForceCollisionRadius, error) {
	return forceCollisionRadiusTable.ClearFields()
}

// WithEnabled sets whether the collision force is enabled.
func (a ForceCollisionRadius) WithEnabled(enabled components.Enabled) (ForceCollisionRadius, error) {
	return a.WithManyEnabled([]components.Enabled{enabled})
}

// WithManyEnabled sets one enabled value per row, for use with Columns.
func (a ForceCollisionRadius) WithManyEnabled(enabled []components.Enabled) (ForceCollisionRadius, error) {
	err := loggable.Assign(&a.Enabled, components.EnabledCodec, ForceCollisionRadiusDescriptorEnabled, enabled)
	return a, err
}

// WithStrength sets the strength of the force.
func (a ForceCollisionRadius) WithStrength(strength components.ForceStrength) (ForceCollisionRadius, error) {
	return a.WithManyStrength([]components.ForceStrength{strength})
}

// WithManyStrength sets one strength per row, for use with Columns.
func (a ForceCollisionRadius) WithManyStrength(strength []components.ForceStrength) (ForceCollisionRadius, error) {
	err := loggable.Assign(&a.Strength, components.ForceStrengthCodec, ForceCollisionRadiusDescriptorStrength, strength)
	return a, err
}

// WithIterations sets the number of iterations per simulation tick.
func (a ForceCollisionRadius) WithIterations(iterations components.ForceIterations) (ForceCollisionRadius, error) {
	return a.WithManyIterations([]components.ForceIterations{iterations})
}

// WithManyIterations sets one iteration count per row, for use with Columns.
func (a ForceCollisionRadius) WithManyIterations(iterations []components.ForceIterations) (ForceCollisionRadius, error) {
	err := loggable.Assign(&a.Iterations, components.ForceIterationsCodec, ForceCollisionRadiusDescriptorIterations, iterations)
	return a, err
}

// ColumnsWithLengths partitions the present fields into runs of the given
// lengths.
func (a *ForceCollisionRadius) ColumnsWithLengths(lengths []uint32) ([]loggable.ComponentColumn, error) {
	return forceCollisionRadiusTable.ColumnsWithLengths(a, lengths)
}

// Columns partitions the present fields into one run per instance.
func (a *ForceCollisionRadius) Columns() ([]loggable.ComponentColumn, error) {
	return forceCollisionRadiusTable.Columns(a)
}

// AsBatches returns the present fields in declaration order.
func (a ForceCollisionRadius) AsBatches() ([]loggable.ComponentBatch, error) {
	return forceCollisionRadiusTable.AsBatches(&a)
}
