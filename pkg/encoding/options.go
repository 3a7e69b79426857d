package encoding

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/compression"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logtypes"
)

// Compression is the codec applied to Arrow payloads. Control messages are
// never compressed.
type Compression uint8

const (
	CompressionOff  Compression = 0
	CompressionLZ4  Compression = 1
	CompressionZstd Compression = 2
)

// ParseCompression accepts "off", "lz4" or "zstd", in any case.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "off", "none", "":
		return CompressionOff, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, errors.Newf(errors.ErrorTypeConfig, "unknown compression %q", s)
	}
}

func (c Compression) String() string {
	switch c {
	case CompressionOff:
		return "off"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

func (c Compression) algorithm() (compression.Algorithm, error) {
	switch c {
	case CompressionOff:
		return compression.None, nil
	case CompressionLZ4:
		return compression.LZ4, nil
	case CompressionZstd:
		return compression.Zstd, nil
	default:
		return "", errors.Newf(errors.ErrorTypeDecode, "unknown compression %d", uint8(c))
	}
}

// Serializer is the format of message bodies.
type Serializer uint8

// SerializerJSON writes control messages as JSON and Arrow payloads as an
// Arrow IPC stream behind a JSON envelope.
const SerializerJSON Serializer = 1

// EncodingOptions are fixed per stream and recorded in its header.
type EncodingOptions struct {
	Compression Compression
	Serializer  Serializer
}

// Common option sets.
var (
	OptionsUncompressed = EncodingOptions{Compression: CompressionOff, Serializer: SerializerJSON}
	OptionsLZ4          = EncodingOptions{Compression: CompressionLZ4, Serializer: SerializerJSON}
	OptionsZstd         = EncodingOptions{Compression: CompressionZstd, Serializer: SerializerJSON}
)

// Bytes encodes the options for the file header.
func (o EncodingOptions) Bytes() [4]byte {
	return [4]byte{byte(o.Compression), byte(o.Serializer), 0, 0}
}

func optionsFromBytes(b [4]byte) (EncodingOptions, error) {
	o := EncodingOptions{Compression: Compression(b[0]), Serializer: Serializer(b[1])}
	if _, err := o.Compression.algorithm(); err != nil {
		return EncodingOptions{}, err
	}
	if o.Serializer != SerializerJSON {
		return EncodingOptions{}, errors.Newf(errors.ErrorTypeDecode, "unsupported serializer %d", b[1])
	}
	return o, nil
}

// Magic opens every stream.
var Magic = [4]byte{'R', 'R', 'F', '2'}

// FileHeaderSize is the encoded size of a FileHeader.
const FileHeaderSize = 12

// FileHeader opens a stream: magic, writer version and encoding options.
type FileHeader struct {
	Version logtypes.Version
	Options EncodingOptions
}

// Bytes encodes the header.
func (h FileHeader) Bytes() []byte {
	out := make([]byte, 0, FileHeaderSize)
	out = append(out, Magic[:]...)
	v := h.Version.Bytes()
	out = append(out, v[:]...)
	o := h.Options.Bytes()
	return append(out, o[:]...)
}

// ParseFileHeader decodes and validates a header. Streams written by a
// newer minor version than this module are rejected.
func ParseFileHeader(b []byte) (FileHeader, error) {
	if len(b) < FileHeaderSize {
		return FileHeader{}, errors.Newf(errors.ErrorTypeDecode, "file header needs %d bytes, got %d", FileHeaderSize, len(b))
	}
	if !bytes.Equal(b[:4], Magic[:]) {
		return FileHeader{}, errors.New(errors.ErrorTypeDecode, "not a log stream: bad magic").
			WithDetail("magic", fmt.Sprintf("%q", b[:4]))
	}

	version := logtypes.VersionFromBytes([4]byte(b[4:8]))
	if version.NewerThan(logtypes.CurrentVersion) {
		return FileHeader{}, errors.Newf(errors.ErrorTypeDecode,
			"stream version %s is newer than supported %s", version, logtypes.CurrentVersion)
	}

	options, err := optionsFromBytes([4]byte(b[8:12]))
	if err != nil {
		return FileHeader{}, err
	}
	return FileHeader{Version: version, Options: options}, nil
}
