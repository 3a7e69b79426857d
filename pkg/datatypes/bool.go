package datatypes

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// Bool is a single boolean.
type Bool bool

// BoolCodec serializes Bool as boolean.
var BoolCodec loggable.Loggable[Bool] = boolCodec{}

type boolCodec struct{}

func (boolCodec) Name() string { return "rerun.datatypes.Bool" }

func (boolCodec) ArrowDataType() arrow.DataType { return arrow.FixedWidthTypes.Boolean }

func (c boolCodec) ToArrow(mem memory.Allocator, instances []Bool, numInstances int) (arrow.Array, error) {
	if err := loggable.CheckInstances(c.Name(), instances, numInstances); err != nil {
		return nil, err
	}
	if mem == nil {
		mem = loggable.DefaultAllocator
	}
	b := array.NewBooleanBuilder(mem)
	defer b.Release()
	b.AppendValues(loggable.Reinterpret[Bool, bool](instances[:numInstances]), nil)
	return b.NewArray(), nil
}

func (c boolCodec) FromArrow(arr arrow.Array) ([]Bool, error) {
	if err := loggable.CheckDataType(c.Name(), arrow.FixedWidthTypes.Boolean, arr); err != nil {
		return nil, err
	}
	bools := arr.(*array.Boolean)
	out := make([]Bool, bools.Len())
	for i := range out {
		out[i] = Bool(bools.Value(i))
	}
	return out, nil
}
