package loggable

import (
	"fmt"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
)

// DefaultAllocator is used whenever a nil allocator is passed in.
var DefaultAllocator memory.Allocator = memory.DefaultAllocator

// Loggable converts between a Go type and its Arrow representation.
type Loggable[T any] interface {
	// Name is the fully qualified type name, e.g. "rerun.datatypes.Blob".
	Name() string

	// ArrowDataType returns the Arrow type of arrays produced by ToArrow.
	// Implementations return the same value on every call.
	ArrowDataType() arrow.DataType

	// ToArrow serializes the first numInstances values of instances.
	// A zero count yields an empty array without touching instances; a
	// non-zero count with nil instances fails with
	// ErrorTypeUnexpectedNullArgument.
	ToArrow(mem memory.Allocator, instances []T, numInstances int) (arrow.Array, error)

	// FromArrow deserializes an array produced by ToArrow.
	FromArrow(arr arrow.Array) ([]T, error)
}

// Component is a Loggable that can be stored in an archetype slot.
type Component[T any] interface {
	Loggable[T]

	// ComponentType is the stable wire identifier of the component.
	ComponentType() ComponentType
}

// CheckInstances enforces the instance contract shared by every codec.
// A nil return with numInstances == 0 means the caller should produce an
// empty array.
func CheckInstances[T any](name string, instances []T, numInstances int) error {
	switch {
	case numInstances < 0:
		return errors.Newf(errors.ErrorTypeInvalidArgument,
			"negative instance count %d", numInstances).
			WithDetail("type", name)
	case numInstances == 0:
		return nil
	case instances == nil:
		return errors.New(errors.ErrorTypeUnexpectedNullArgument,
			"passed array instances is nil when num_instances > 0").
			WithDetail("type", name).
			WithDetail("num_instances", numInstances)
	case numInstances > len(instances):
		return errors.Newf(errors.ErrorTypeInvalidArgument,
			"num_instances %d exceeds %d available instances", numInstances, len(instances)).
			WithDetail("type", name)
	}
	return nil
}

// CheckDataType verifies that arr has the expected Arrow type and no nulls.
func CheckDataType(name string, expected arrow.DataType, arr arrow.Array) error {
	if arr == nil {
		return errors.New(errors.ErrorTypeUnexpectedNullArgument, "array is nil").
			WithDetail("type", name)
	}
	if !arrow.TypeEqual(expected, arr.DataType()) {
		return errors.Newf(errors.ErrorTypeArrowDataTypeMismatch,
			"expected %s, got %s", expected, arr.DataType()).
			WithDetail("type", name)
	}
	if arr.NullN() > 0 {
		return errors.Newf(errors.ErrorTypeInvalidComponent,
			"array has %d null entries", arr.NullN()).
			WithDetail("type", name)
	}
	return nil
}

// Delegate builds the codec of a component that is a thin wrapper over
// another type D. T must have exactly the layout of D: the slices are
// reinterpreted in place, never copied. The layout is checked once here and
// Delegate panics on a mismatch, so misdeclared wrappers fail at package init.
func Delegate[T, D any](componentType ComponentType, inner Loggable[D]) Component[T] {
	var t T
	var d D
	if unsafe.Sizeof(t) != unsafe.Sizeof(d) || unsafe.Alignof(t) != unsafe.Alignof(d) {
		panic(fmt.Sprintf("loggable: %s (%T) is not layout-compatible with %s (%T)",
			componentType, t, inner.Name(), d))
	}
	return delegate[T, D]{componentType: componentType, inner: inner}
}

type delegate[T, D any] struct {
	componentType ComponentType
	inner         Loggable[D]
}

func (c delegate[T, D]) Name() string {
	return string(c.componentType)
}

func (c delegate[T, D]) ComponentType() ComponentType {
	return c.componentType
}

func (c delegate[T, D]) ArrowDataType() arrow.DataType {
	return c.inner.ArrowDataType()
}

func (c delegate[T, D]) ToArrow(mem memory.Allocator, instances []T, numInstances int) (arrow.Array, error) {
	if numInstances == 0 {
		return c.inner.ToArrow(mem, nil, 0)
	}
	if instances == nil {
		return nil, CheckInstances(c.Name(), instances, numInstances)
	}
	return c.inner.ToArrow(mem, Reinterpret[T, D](instances), numInstances)
}

func (c delegate[T, D]) FromArrow(arr arrow.Array) ([]T, error) {
	values, err := c.inner.FromArrow(arr)
	if err != nil {
		return nil, err
	}
	return Reinterpret[D, T](values), nil
}

// Reinterpret views a []From as a []To without copying. The caller
// guarantees identical layout, as Delegate and the compile-time size
// assertions in the component packages do.
func Reinterpret[From, To any](s []From) []To {
	if s == nil {
		return nil
	}
	return unsafe.Slice((*To)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
}
