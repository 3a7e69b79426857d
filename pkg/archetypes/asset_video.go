package archetypes

import (
	"os"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/components"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// AssetVideo is a video binary, e.g. an MP4 file, logged as a single blob
// together with its media type.
type AssetVideo struct {
	// The asset's bytes.
	Blob loggable.Option[loggable.ComponentBatch]

	// The media type of the asset. When absent, the viewer guesses it from
	// the data.
	MediaType loggable.Option[loggable.ComponentBatch]
}

// AssetVideoName is the wire identifier of AssetVideo.
const AssetVideoName loggable.ArchetypeName = "rerun.archetypes.AssetVideo"

// Descriptors of the AssetVideo fields.
var (
	AssetVideoDescriptorBlob      = fieldDescriptor(AssetVideoName, "blob", components.BlobType)
	AssetVideoDescriptorMediaType = fieldDescriptor(AssetVideoName, "media_type", components.MediaTypeType)
)

var assetVideoTable = loggable.NewArchetypeTable(AssetVideoName,
	loggable.Field(AssetVideoDescriptorBlob, components.BlobCodec,
		func(a *AssetVideo) *loggable.Option[loggable.ComponentBatch] { return &a.Blob }),
	loggable.Field(AssetVideoDescriptorMediaType, components.MediaTypeCodec,
		func(a *AssetVideo) *loggable.Option[loggable.ComponentBatch] { return &a.MediaType }),
)

// NewAssetVideo creates an AssetVideo holding blob.
func NewAssetVideo(blob components.Blob) (AssetVideo, error) {
	return AssetVideo{}.WithBlob(blob)
}

// AssetVideoFromBytes creates an AssetVideo from raw bytes. An empty
// mediaType leaves the media_type field absent.
func AssetVideoFromBytes(data []byte, mediaType components.MediaType) (AssetVideo, error) {
	video, err := NewAssetVideo(components.NewBlob(data))
	if err != nil {
		return AssetVideo{}, err
	}
	if mediaType == "" {
		return video, nil
	}
	withType, err := video.WithMediaType(mediaType)
	if err != nil {
		if blob, ok := video.Blob.Get(); ok {
			blob.Release()
		}
		return AssetVideo{}, err
	}
	return withType, nil
}

// AssetVideoFromFile reads the file at path and guesses its media type from
// the extension. An unknown extension leaves media_type absent.
func AssetVideoFromFile(path string) (AssetVideo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AssetVideo{}, errors.Wrap(err, errors.ErrorTypeFileOpenFailure, "failed to read video asset").
			WithDetail("path", path)
	}
	mediaType, _ := components.GuessMediaTypeFromPath(path)
	return AssetVideoFromBytes(data, mediaType)
}

func (AssetVideo) UpdateFields() AssetVideo {
	return AssetVideo{}
}

func (AssetVideo) ClearFields() (AssetVideo, error) {
	return assetVideoTable.ClearFields()
}

// WithBlob sets the asset's bytes.
func (a AssetVideo) WithBlob(blob components.Blob) (AssetVideo, error) {
	return a.WithManyBlob([]components.Blob{blob})
}

func (a AssetVideo) WithManyBlob(blob []components.Blob) (AssetVideo, error) {
	err := loggable.Assign(&a.Blob, components.BlobCodec, AssetVideoDescriptorBlob, blob)
	return a, err
}

// WithMediaType sets the media type of the asset.
func (a AssetVideo) WithMediaType(mediaType components.MediaType) (AssetVideo, error) {
	return a.WithManyMediaType([]components.MediaType{mediaType})
}

func (a AssetVideo) WithManyMediaType(mediaType []components.MediaType) (AssetVideo, error) {
	for _, m := range mediaType {
		if err := m.Validate(); err != nil {
			return a, err
		}
	}
	err := loggable.Assign(&a.MediaType, components.MediaTypeCodec, AssetVideoDescriptorMediaType, mediaType)
	return a, err
}

func (a *AssetVideo) ColumnsWithLengths(lengths []uint32) ([]loggable.ComponentColumn, error) {
	return assetVideoTable.ColumnsWithLengths(a, lengths)
}

func (a *AssetVideo) Columns() ([]loggable.ComponentColumn, error) {
	return assetVideoTable.Columns(a)
}

func (a AssetVideo) AsBatches() ([]loggable.ComponentBatch, error) {
	return assetVideoTable.AsBatches(&a)
}
