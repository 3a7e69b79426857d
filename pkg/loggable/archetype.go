package loggable

import (
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
)

// AsComponents is implemented by every archetype.
type AsComponents interface {
	// AsBatches returns the present component batches in field order.
	AsBatches() ([]ComponentBatch, error)
}

// ArchetypeField describes one slot of archetype A.
type ArchetypeField[A any] struct {
	Descriptor ComponentDescriptor
	Slot       func(a *A) *Option[ComponentBatch]
	Empty      func() (ComponentBatch, error)
}

// Field builds the table entry for a slot holding components of codec.
func Field[A, T any](descriptor ComponentDescriptor, codec Component[T], slot func(a *A) *Option[ComponentBatch]) ArchetypeField[A] {
	if descriptor.ComponentType == "" {
		descriptor.ComponentType = codec.ComponentType()
	}
	return ArchetypeField[A]{
		Descriptor: descriptor,
		Slot:       slot,
		Empty: func() (ComponentBatch, error) {
			return EmptyComponentBatch(codec, descriptor)
		},
	}
}

// ArchetypeTable holds the ordered field list of archetype A and implements
// the archetype conversions over it.
type ArchetypeTable[A any] struct {
	name   ArchetypeName
	fields []ArchetypeField[A]
}

// NewArchetypeTable registers the fields of archetype A in declaration order.
func NewArchetypeTable[A any](name ArchetypeName, fields ...ArchetypeField[A]) *ArchetypeTable[A] {
	return &ArchetypeTable[A]{name: name, fields: fields}
}

// Name returns the archetype identifier.
func (t *ArchetypeTable[A]) Name() ArchetypeName {
	return t.name
}

// Descriptors returns the descriptor of every field in declaration order.
func (t *ArchetypeTable[A]) Descriptors() []ComponentDescriptor {
	descriptors := make([]ComponentDescriptor, len(t.fields))
	for i, f := range t.fields {
		descriptors[i] = f.Descriptor
	}
	return descriptors
}

// ClearFields returns an archetype whose every slot holds an empty batch.
func (t *ArchetypeTable[A]) ClearFields() (A, error) {
	var a A
	for _, f := range t.fields {
		batch, err := f.Empty()
		if err != nil {
			var zero A
			return zero, err
		}
		*f.Slot(&a) = Some(batch)
	}
	return a, nil
}

// ColumnsWithLengths partitions every present slot of a by lengths. A slot
// whose instance count differs from sum(lengths) fails the whole call.
func (t *ArchetypeTable[A]) ColumnsWithLengths(a *A, lengths []uint32) ([]ComponentColumn, error) {
	columns := make([]ComponentColumn, 0, len(t.fields))
	for _, f := range t.fields {
		batch, ok := f.Slot(a).Get()
		if !ok {
			continue
		}
		column, err := batch.Partitioned(lengths)
		if err != nil {
			for _, c := range columns {
				c.Release()
			}
			return nil, err
		}
		columns = append(columns, column)
	}
	return columns, nil
}

// Columns partitions a into one run per instance, taking the instance
// count from the first present slot. Later slots with a different count
// fail with ErrorTypePartitionLengthMismatch. An archetype with no present
// slot yields no columns.
func (t *ArchetypeTable[A]) Columns(a *A) ([]ComponentColumn, error) {
	for _, f := range t.fields {
		if batch, ok := f.Slot(a).Get(); ok {
			return t.ColumnsWithLengths(a, OnesLengths(batch.Length()))
		}
	}
	return []ComponentColumn{}, nil
}

// AsBatches returns the present slots of a in field order. Each returned
// batch holds its own reference to the slot's array; the caller releases
// them, and a stays usable afterwards.
func (t *ArchetypeTable[A]) AsBatches(a *A) ([]ComponentBatch, error) {
	batches := make([]ComponentBatch, 0, len(t.fields))
	for _, f := range t.fields {
		if batch, ok := f.Slot(a).Get(); ok {
			if batch.Array == nil {
				for _, b := range batches {
					b.Release()
				}
				return nil, errors.New(errors.ErrorTypeInvalidComponent, "present slot has no array").
					WithDetail("component", f.Descriptor.String())
			}
			batch.Array.Retain()
			batches = append(batches, batch)
		}
	}
	return batches, nil
}

// Assign serializes values with codec and stores them in slot.
func Assign[T any](slot *Option[ComponentBatch], codec Component[T], descriptor ComponentDescriptor, values []T) error {
	batch, err := NewComponentBatch(nil, codec, descriptor, values)
	if err != nil {
		return err
	}
	*slot = Some(batch)
	return nil
}
