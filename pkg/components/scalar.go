package components

import (
	"github.com/ajitpratap0/rerun-sdk-go/pkg/datatypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// Scalar is a single double-precision value, typically plotted over time.
type Scalar datatypes.Float64

// ScalarType is the wire identifier of Scalar.
const ScalarType loggable.ComponentType = "rerun.components.Scalar"

// ScalarCodec serializes Scalar through datatypes.Float64Codec.
var ScalarCodec = loggable.Delegate[Scalar, datatypes.Float64](ScalarType, datatypes.Float64Codec)
