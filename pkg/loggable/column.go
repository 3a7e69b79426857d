package loggable

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/metrics"
)

// ComponentColumn is a component batch partitioned into contiguous runs.
// Run i holds the instances associated with index point i.
type ComponentColumn struct {
	Array      *array.List
	Descriptor ComponentDescriptor
}

// ColumnFromBatchWithLengths partitions batch into len(lengths) runs. The
// lengths must sum to the batch's instance count.
func ColumnFromBatchWithLengths(batch ComponentBatch, lengths []uint32) (ComponentColumn, error) {
	var total uint64
	for _, l := range lengths {
		total += uint64(l)
	}
	if total != uint64(batch.Length()) {
		err := errors.Newf(errors.ErrorTypePartitionLengthMismatch,
			"partition lengths sum to %d but %s has %d instances",
			total, batch.Descriptor.ComponentType, batch.Length()).
			WithDetail("component", batch.Descriptor.String())
		metrics.SerializationErrors.WithLabelValues(string(err.Type)).Inc()
		return ComponentColumn{}, err
	}
	if total > math.MaxInt32 {
		return ComponentColumn{}, errors.Newf(errors.ErrorTypeInvalidArgument,
			"%d instances exceed the list offset range", total)
	}
	if batch.Array == nil {
		return ComponentColumn{}, errors.New(errors.ErrorTypeUnexpectedNullArgument, "batch has no array").
			WithDetail("component", batch.Descriptor.String())
	}

	offsets := make([]int32, len(lengths)+1)
	for i, l := range lengths {
		offsets[i+1] = offsets[i] + int32(l)
	}

	data := array.NewData(
		arrow.ListOf(batch.Array.DataType()),
		len(lengths),
		[]*memory.Buffer{nil, memory.NewBufferBytes(arrow.Int32Traits.CastToBytes(offsets))},
		[]arrow.ArrayData{batch.Array.Data()},
		0, 0,
	)
	defer data.Release()

	return ComponentColumn{
		Array:      array.NewListData(data),
		Descriptor: batch.Descriptor,
	}, nil
}

// ColumnFromBatch partitions batch into one run per instance.
func ColumnFromBatch(batch ComponentBatch) (ComponentColumn, error) {
	return ColumnFromBatchWithLengths(batch, OnesLengths(batch.Length()))
}

// OnesLengths returns n partition lengths of 1.
func OnesLengths(n int) []uint32 {
	lengths := make([]uint32, n)
	for i := range lengths {
		lengths[i] = 1
	}
	return lengths
}

// Length is the number of runs.
func (c ComponentColumn) Length() int {
	if c.Array == nil {
		return 0
	}
	return c.Array.Len()
}

// Lengths returns the size of every run.
func (c ComponentColumn) Lengths() []uint32 {
	lengths := make([]uint32, c.Length())
	for i := range lengths {
		start, end := c.Array.ValueOffsets(i)
		lengths[i] = uint32(end - start)
	}
	return lengths
}

// Run returns the instances of run i as a standalone batch. The caller owns
// the returned batch.
func (c ComponentColumn) Run(i int) ComponentBatch {
	start, end := c.Array.ValueOffsets(i)
	return ComponentBatch{
		Array:      array.NewSlice(c.Array.ListValues(), start, end),
		Descriptor: c.Descriptor,
	}
}

// Release drops the column's reference to its array.
func (c ComponentColumn) Release() {
	if c.Array != nil {
		c.Array.Release()
	}
}
