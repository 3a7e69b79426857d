// Package loggable is the serialization runtime that component and archetype
// types are built on.
//
// A Loggable[T] converts a slice of Go values into an Arrow array and back.
// Codecs are stateless package values: the same codec may be used from any
// number of goroutines, and ArrowDataType always returns the same value so
// schema comparisons stay cheap.
//
// A ComponentBatch is one component's array tagged with the descriptor of
// the archetype slot it belongs to. A ComponentColumn is a batch partitioned
// into contiguous runs, one run per index point (for example one run per
// timestamp), encoded as an Arrow list array.
//
// Archetypes are plain structs whose slots are Option[ComponentBatch]. The
// conversions every archetype exposes (ClearFields, Columns,
// ColumnsWithLengths, AsBatches) are implemented once by ArchetypeTable,
// which each archetype registers at package init with one entry per field in
// declaration order.
//
// # The instance contract
//
// ToArrow takes the instances and an explicit count:
//
//	arr, err := codec.ToArrow(mem, nil, 0)   // ok: valid empty array
//	arr, err := codec.ToArrow(mem, nil, 3)   // unexpected_null_argument
//	arr, err := codec.ToArrow(mem, vals, 2)  // first two values of vals
//
// A zero count never looks at the instances.
package loggable
