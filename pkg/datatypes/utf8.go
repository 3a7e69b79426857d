package datatypes

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// Utf8 is a UTF-8 encoded string.
type Utf8 string

// Utf8Codec serializes Utf8 as utf8.
var Utf8Codec loggable.Loggable[Utf8] = utf8Codec{}

type utf8Codec struct{}

func (utf8Codec) Name() string { return "rerun.datatypes.Utf8" }

func (utf8Codec) ArrowDataType() arrow.DataType { return arrow.BinaryTypes.String }

func (c utf8Codec) ToArrow(mem memory.Allocator, instances []Utf8, numInstances int) (arrow.Array, error) {
	if err := loggable.CheckInstances(c.Name(), instances, numInstances); err != nil {
		return nil, err
	}
	if mem == nil {
		mem = loggable.DefaultAllocator
	}
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.Reserve(numInstances)
	for _, s := range instances[:numInstances] {
		b.Append(string(s))
	}
	return b.NewArray(), nil
}

func (c utf8Codec) FromArrow(arr arrow.Array) ([]Utf8, error) {
	if err := loggable.CheckDataType(c.Name(), arrow.BinaryTypes.String, arr); err != nil {
		return nil, err
	}
	strs := arr.(*array.String)
	out := make([]Utf8, strs.Len())
	for i := range out {
		out[i] = Utf8(strings.Clone(strs.Value(i)))
	}
	return out, nil
}
