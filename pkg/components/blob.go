package components

import (
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/datatypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// Blob is a binary blob of data.
type Blob struct {
	Data datatypes.Blob
}

// Blob must stay layout-identical to datatypes.Blob; either array length
// underflows at compile time otherwise.
var (
	_ [unsafe.Sizeof(Blob{}) - unsafe.Sizeof(datatypes.Blob{})]struct{}
	_ [unsafe.Sizeof(datatypes.Blob{}) - unsafe.Sizeof(Blob{})]struct{}
)

// NewBlob wraps raw bytes. The slice is not copied.
func NewBlob(data []byte) Blob {
	return Blob{Data: datatypes.Blob{Data: data}}
}

// Bytes returns the wrapped bytes.
func (b Blob) Bytes() []byte {
	return b.Data.Data
}

// BlobType is the wire identifier of Blob.
const BlobType loggable.ComponentType = "rerun.components.Blob"

// BlobCodec serializes Blob through datatypes.BlobCodec.
var BlobCodec loggable.Component[Blob] = blobCodec{}

type blobCodec struct{}

func (blobCodec) Name() string { return string(BlobType) }

func (blobCodec) ComponentType() loggable.ComponentType { return BlobType }

func (blobCodec) ArrowDataType() arrow.DataType {
	return datatypes.BlobCodec.ArrowDataType()
}

func (c blobCodec) ToArrow(mem memory.Allocator, instances []Blob, numInstances int) (arrow.Array, error) {
	if numInstances == 0 {
		return datatypes.BlobCodec.ToArrow(mem, nil, 0)
	}
	if instances == nil {
		return nil, loggable.CheckInstances(c.Name(), instances, numInstances)
	}
	return datatypes.BlobCodec.ToArrow(mem, loggable.Reinterpret[Blob, datatypes.Blob](instances), numInstances)
}

func (blobCodec) FromArrow(arr arrow.Array) ([]Blob, error) {
	blobs, err := datatypes.BlobCodec.FromArrow(arr)
	if err != nil {
		return nil, err
	}
	return loggable.Reinterpret[datatypes.Blob, Blob](blobs), nil
}
