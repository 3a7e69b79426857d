package loggable

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/metrics"
)

// ComponentBatch is an Arrow array of one component's values tagged with
// the descriptor of the slot it fills.
type ComponentBatch struct {
	Array      arrow.Array
	Descriptor ComponentDescriptor
}

// NewComponentBatch serializes instances with codec. An empty
// Descriptor.ComponentType is filled in from the codec; a different one is
// rejected.
func NewComponentBatch[T any](mem memory.Allocator, codec Component[T], descriptor ComponentDescriptor, instances []T) (ComponentBatch, error) {
	return newBatch(mem, codec, descriptor, instances, len(instances))
}

// EmptyComponentBatch returns a batch with zero instances and the codec's
// Arrow type. It is what ClearFields stores in every slot.
func EmptyComponentBatch[T any](codec Component[T], descriptor ComponentDescriptor) (ComponentBatch, error) {
	return newBatch[T](nil, codec, descriptor, nil, 0)
}

func newBatch[T any](mem memory.Allocator, codec Component[T], descriptor ComponentDescriptor, instances []T, n int) (ComponentBatch, error) {
	if mem == nil {
		mem = DefaultAllocator
	}
	if descriptor.ComponentType == "" {
		descriptor.ComponentType = codec.ComponentType()
	} else if descriptor.ComponentType != codec.ComponentType() {
		err := errors.Newf(errors.ErrorTypeInvalidArgument,
			"descriptor %s does not match codec %s", descriptor, codec.ComponentType())
		metrics.SerializationErrors.WithLabelValues(string(err.Type)).Inc()
		return ComponentBatch{}, err
	}

	arr, err := codec.ToArrow(mem, instances, n)
	if err != nil {
		metrics.SerializationErrors.WithLabelValues(string(errors.Code(err))).Inc()
		return ComponentBatch{}, err
	}

	metrics.BatchesSerialized.WithLabelValues(string(descriptor.ComponentType)).Inc()
	metrics.InstancesSerialized.WithLabelValues(string(descriptor.ComponentType)).Add(float64(n))
	return ComponentBatch{Array: arr, Descriptor: descriptor}, nil
}

// Length is the number of component instances in the batch.
func (b ComponentBatch) Length() int {
	if b.Array == nil {
		return 0
	}
	return b.Array.Len()
}

// Partitioned splits the batch into one run per entry of lengths.
func (b ComponentBatch) Partitioned(lengths []uint32) (ComponentColumn, error) {
	return ColumnFromBatchWithLengths(b, lengths)
}

// Release drops the batch's reference to its array.
func (b ComponentBatch) Release() {
	if b.Array != nil {
		b.Array.Release()
	}
}

// DecodeBatch recovers typed values from a batch, checking that the batch
// was produced for codec's component type.
func DecodeBatch[T any](codec Component[T], batch ComponentBatch) ([]T, error) {
	if batch.Descriptor.ComponentType != codec.ComponentType() {
		return nil, errors.Newf(errors.ErrorTypeInvalidComponent,
			"batch holds %s, not %s", batch.Descriptor.ComponentType, codec.ComponentType())
	}
	return codec.FromArrow(batch.Array)
}
