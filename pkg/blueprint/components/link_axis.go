package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/datatypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// LinkAxis says how the horizontal/X/time axis is linked across multiple plots.
type LinkAxis uint8

const (
	// LinkAxisIndependent keeps the axis independent from all other plots.
	LinkAxisIndependent LinkAxis = 1
	// LinkAxisLinkToGlobal links to all other plots that also have this option set.
	LinkAxisLinkToGlobal LinkAxis = 2
)

var linkAxisNames = map[LinkAxis]string{
	LinkAxisIndependent:  "Independent",
	LinkAxisLinkToGlobal: "LinkToGlobal",
}

// String returns the variant name.
func (l LinkAxis) String() string {
	if name, ok := linkAxisNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LinkAxis(%d)", uint8(l))
}

// Valid reports whether l is a known variant.
func (l LinkAxis) Valid() bool {
	_, ok := linkAxisNames[l]
	return ok
}

// ParseLinkAxis is a best-effort converter accepting a variant name (case
// insensitive) or its integer value.
func ParseLinkAxis(s string) (LinkAxis, error) {
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		if l := LinkAxis(n); l.Valid() {
			return l, nil
		}
	}
	for l, name := range linkAxisNames {
		if strings.EqualFold(name, s) {
			return l, nil
		}
	}
	return 0, errors.Newf(errors.ErrorTypeInvalidArgument, "cannot convert %q to LinkAxis", s)
}

// LinkAxisType is the wire identifier of LinkAxis.
const LinkAxisType loggable.ComponentType = "rerun.blueprint.components.LinkAxis"

// LinkAxisCodec serializes LinkAxis as uint8, rejecting unknown variants.
var LinkAxisCodec loggable.Component[LinkAxis] = linkAxisCodec{
	inner: loggable.Delegate[LinkAxis, datatypes.UInt8](LinkAxisType, datatypes.UInt8Codec),
}

type linkAxisCodec struct {
	inner loggable.Component[LinkAxis]
}

func (c linkAxisCodec) Name() string { return c.inner.Name() }

func (c linkAxisCodec) ComponentType() loggable.ComponentType { return c.inner.ComponentType() }

func (c linkAxisCodec) ArrowDataType() arrow.DataType { return c.inner.ArrowDataType() }

func (c linkAxisCodec) ToArrow(mem memory.Allocator, instances []LinkAxis, numInstances int) (arrow.Array, error) {
	if numInstances > 0 && numInstances <= len(instances) {
		for _, l := range instances[:numInstances] {
			if !l.Valid() {
				return nil, errors.Newf(errors.ErrorTypeInvalidComponent, "invalid LinkAxis variant %d", uint8(l))
			}
		}
	}
	return c.inner.ToArrow(mem, instances, numInstances)
}

func (c linkAxisCodec) FromArrow(arr arrow.Array) ([]LinkAxis, error) {
	values, err := c.inner.FromArrow(arr)
	if err != nil {
		return nil, err
	}
	for _, l := range values {
		if !l.Valid() {
			return nil, errors.Newf(errors.ErrorTypeInvalidComponent, "invalid LinkAxis variant %d", uint8(l))
		}
	}
	return values, nil
}
