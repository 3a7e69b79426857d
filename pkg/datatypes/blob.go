package datatypes

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// Blob is a binary blob of data.
type Blob struct {
	Data []byte
}

var blobArrowType = arrow.ListOfField(arrow.Field{
	Name:     "item",
	Type:     arrow.PrimitiveTypes.Uint8,
	Nullable: false,
})

// BlobCodec serializes Blob as list<item: uint8 not null>.
var BlobCodec loggable.Loggable[Blob] = blobCodec{}

type blobCodec struct{}

func (blobCodec) Name() string { return "rerun.datatypes.Blob" }

func (blobCodec) ArrowDataType() arrow.DataType { return blobArrowType }

func (c blobCodec) ToArrow(mem memory.Allocator, instances []Blob, numInstances int) (arrow.Array, error) {
	if err := loggable.CheckInstances(c.Name(), instances, numInstances); err != nil {
		return nil, err
	}
	if mem == nil {
		mem = loggable.DefaultAllocator
	}

	builder := array.NewListBuilderWithField(mem, blobArrowType.ElemField())
	defer builder.Release()
	values := builder.ValueBuilder().(*array.Uint8Builder)

	builder.Reserve(numInstances)
	for _, blob := range instances[:numInstances] {
		builder.Append(true)
		values.AppendValues(blob.Data, nil)
	}
	return builder.NewArray(), nil
}

func (c blobCodec) FromArrow(arr arrow.Array) ([]Blob, error) {
	if err := loggable.CheckDataType(c.Name(), blobArrowType, arr); err != nil {
		return nil, err
	}
	list := arr.(*array.List)
	bytes, ok := list.ListValues().(*array.Uint8)
	if !ok {
		return nil, errors.New(errors.ErrorTypeInvalidComponent, "blob values are not a uint8 array")
	}
	raw := bytes.Uint8Values()

	out := make([]Blob, list.Len())
	for i := range out {
		start, end := list.ValueOffsets(i)
		data := make([]byte, end-start)
		copy(data, raw[start:end])
		out[i] = Blob{Data: data}
	}
	return out, nil
}
