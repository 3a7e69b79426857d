// Package components defines the blueprint components: the settings that
// describe how the viewer lays out and simulates data, as opposed to the
// data itself.
package components

import (
	"github.com/ajitpratap0/rerun-sdk-go/pkg/datatypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// Enabled turns a property on or off.
type Enabled datatypes.Bool

// ForceStrength is the strength of a force simulation.
type ForceStrength datatypes.Float64

// ForceIterations is the number of iterations a force simulation runs per tick.
type ForceIterations datatypes.UInt64

// ForceDistance is the target distance between two nodes of a force simulation.
type ForceDistance datatypes.Float64

// Wire identifiers.
const (
	EnabledType         loggable.ComponentType = "rerun.blueprint.components.Enabled"
	ForceStrengthType   loggable.ComponentType = "rerun.blueprint.components.ForceStrength"
	ForceIterationsType loggable.ComponentType = "rerun.blueprint.components.ForceIterations"
	ForceDistanceType   loggable.ComponentType = "rerun.blueprint.components.ForceDistance"
)

var (
	EnabledCodec         = loggable.Delegate[Enabled, datatypes.Bool](EnabledType, datatypes.BoolCodec)
	ForceStrengthCodec   = loggable.Delegate[ForceStrength, datatypes.Float64](ForceStrengthType, datatypes.Float64Codec)
	ForceIterationsCodec = loggable.Delegate[ForceIterations, datatypes.UInt64](ForceIterationsType, datatypes.UInt64Codec)
	ForceDistanceCodec   = loggable.Delegate[ForceDistance, datatypes.Float64](ForceDistanceType, datatypes.Float64Codec)
)
