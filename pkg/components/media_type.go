package components

import (
	"path/filepath"
	"strings"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/datatypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// MediaType is a IANA media type describing the contents of a blob,
// e.g. "video/mp4".
type MediaType datatypes.Utf8

// Well-known media types.
const (
	MediaTypePlainText MediaType = "text/plain"
	MediaTypeMarkdown  MediaType = "text/markdown"
	MediaTypeGLB       MediaType = "model/gltf-binary"
	MediaTypeGLTF      MediaType = "model/gltf+json"
	MediaTypeOBJ       MediaType = "model/obj"
	MediaTypeSTL       MediaType = "model/stl"
	MediaTypeJPEG      MediaType = "image/jpeg"
	MediaTypePNG       MediaType = "image/png"
	MediaTypeMP4       MediaType = "video/mp4"
	MediaTypeWebM      MediaType = "video/webm"
)

var mediaTypesByExtension = map[string]MediaType{
	".txt":  MediaTypePlainText,
	".md":   MediaTypeMarkdown,
	".glb":  MediaTypeGLB,
	".gltf": MediaTypeGLTF,
	".obj":  MediaTypeOBJ,
	".stl":  MediaTypeSTL,
	".jpg":  MediaTypeJPEG,
	".jpeg": MediaTypeJPEG,
	".png":  MediaTypePNG,
	".mp4":  MediaTypeMP4,
	".webm": MediaTypeWebM,
}

// Validate checks that m has the "type/subtype" form.
func (m MediaType) Validate() error {
	typ, sub, ok := strings.Cut(string(m), "/")
	if !ok || typ == "" || sub == "" || strings.ContainsAny(string(m), " \t") {
		return errors.Newf(errors.ErrorTypeInvalidArgument, "malformed media type %q", string(m))
	}
	return nil
}

// GuessMediaTypeFromPath guesses a media type from the file extension.
func GuessMediaTypeFromPath(path string) (MediaType, bool) {
	mt, ok := mediaTypesByExtension[strings.ToLower(filepath.Ext(path))]
	return mt, ok
}

// MediaTypeType is the wire identifier of MediaType.
const MediaTypeType loggable.ComponentType = "rerun.components.MediaType"

// MediaTypeCodec serializes MediaType through datatypes.Utf8Codec.
var MediaTypeCodec = loggable.Delegate[MediaType, datatypes.Utf8](MediaTypeType, datatypes.Utf8Codec)
