package datatypes

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// Float32 is a single-precision float.
type Float32 float32

// Float64 is a double-precision float.
type Float64 float64

// UInt8 is an unsigned 8-bit integer.
type UInt8 uint8

// UInt32 is an unsigned 32-bit integer.
type UInt32 uint32

// UInt64 is an unsigned 64-bit integer.
type UInt64 uint64

var (
	// Float32Codec serializes Float32 as float32.
	Float32Codec loggable.Loggable[Float32] = primitiveCodec[Float32, float32]{
		name:   "rerun.datatypes.Float32",
		dtype:  arrow.PrimitiveTypes.Float32,
		build:  buildFloat32,
		values: float32Values,
	}

	// Float64Codec serializes Float64 as float64.
	Float64Codec loggable.Loggable[Float64] = primitiveCodec[Float64, float64]{
		name:   "rerun.datatypes.Float64",
		dtype:  arrow.PrimitiveTypes.Float64,
		build:  buildFloat64,
		values: float64Values,
	}

	// UInt8Codec serializes UInt8 as uint8.
	UInt8Codec loggable.Loggable[UInt8] = primitiveCodec[UInt8, uint8]{
		name:   "rerun.datatypes.UInt8",
		dtype:  arrow.PrimitiveTypes.Uint8,
		build:  buildUint8,
		values: uint8Values,
	}

	// UInt32Codec serializes UInt32 as uint32.
	UInt32Codec loggable.Loggable[UInt32] = primitiveCodec[UInt32, uint32]{
		name:   "rerun.datatypes.UInt32",
		dtype:  arrow.PrimitiveTypes.Uint32,
		build:  buildUint32,
		values: uint32Values,
	}

	// UInt64Codec serializes UInt64 as uint64.
	UInt64Codec loggable.Loggable[UInt64] = primitiveCodec[UInt64, uint64]{
		name:   "rerun.datatypes.UInt64",
		dtype:  arrow.PrimitiveTypes.Uint64,
		build:  buildUint64,
		values: uint64Values,
	}
)

type numeric interface {
	~uint8 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// primitiveCodec serializes a named numeric type T through the Arrow
// builder for its underlying type E.
type primitiveCodec[T, E numeric] struct {
	name   string
	dtype  arrow.DataType
	build  func(mem memory.Allocator, values []E) arrow.Array
	values func(arr arrow.Array) []E
}

func (c primitiveCodec[T, E]) Name() string { return c.name }

func (c primitiveCodec[T, E]) ArrowDataType() arrow.DataType { return c.dtype }

func (c primitiveCodec[T, E]) ToArrow(mem memory.Allocator, instances []T, numInstances int) (arrow.Array, error) {
	if err := loggable.CheckInstances(c.name, instances, numInstances); err != nil {
		return nil, err
	}
	if mem == nil {
		mem = loggable.DefaultAllocator
	}
	values := make([]E, numInstances)
	for i := range values {
		values[i] = E(instances[i])
	}
	return c.build(mem, values), nil
}

func (c primitiveCodec[T, E]) FromArrow(arr arrow.Array) ([]T, error) {
	if err := loggable.CheckDataType(c.name, c.dtype, arr); err != nil {
		return nil, err
	}
	values := c.values(arr)
	if values == nil && arr.Len() > 0 {
		return nil, errors.Newf(errors.ErrorTypeInvalidComponent, "unexpected array implementation %T", arr).
			WithDetail("type", c.name)
	}
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out, nil
}

func buildFloat32(mem memory.Allocator, values []float32) arrow.Array {
	b := array.NewFloat32Builder(mem)
	defer b.Release()
	b.AppendValues(values, nil)
	return b.NewArray()
}

func float32Values(arr arrow.Array) []float32 {
	if a, ok := arr.(*array.Float32); ok {
		return a.Float32Values()
	}
	return nil
}

func buildFloat64(mem memory.Allocator, values []float64) arrow.Array {
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.AppendValues(values, nil)
	return b.NewArray()
}

func float64Values(arr arrow.Array) []float64 {
	if a, ok := arr.(*array.Float64); ok {
		return a.Float64Values()
	}
	return nil
}

func buildUint8(mem memory.Allocator, values []uint8) arrow.Array {
	b := array.NewUint8Builder(mem)
	defer b.Release()
	b.AppendValues(values, nil)
	return b.NewArray()
}

func uint8Values(arr arrow.Array) []uint8 {
	if a, ok := arr.(*array.Uint8); ok {
		return a.Uint8Values()
	}
	return nil
}

func buildUint32(mem memory.Allocator, values []uint32) arrow.Array {
	b := array.NewUint32Builder(mem)
	defer b.Release()
	b.AppendValues(values, nil)
	return b.NewArray()
}

func uint32Values(arr arrow.Array) []uint32 {
	if a, ok := arr.(*array.Uint32); ok {
		return a.Uint32Values()
	}
	return nil
}

func buildUint64(mem memory.Allocator, values []uint64) arrow.Array {
	b := array.NewUint64Builder(mem)
	defer b.Release()
	b.AppendValues(values, nil)
	return b.NewArray()
}

func uint64Values(arr arrow.Array) []uint64 {
	if a, ok := arr.(*array.Uint64); ok {
		return a.Uint64Values()
	}
	return nil
}
