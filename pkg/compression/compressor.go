// Package compression provides the payload codecs of the recording stream:
// LZ4 (pierrec/lz4) and Zstandard (klauspost/compress), plus a pass-through
// codec for uncompressed streams.
//
// # Basic Usage
//
//	comp, err := compression.NewCompressor(&compression.Config{
//	    Algorithm: compression.LZ4,
//	    Level:     compression.Default,
//	})
//
//	compressed, err := comp.Compress(data)
//	original, err := comp.Decompress(compressed, len(data))
//
// Compressors are safe for concurrent use, so one instance can serve every
// goroutine of an encoder.
package compression

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/pool"
)

// Algorithm represents a compression algorithm.
type Algorithm string

const (
	// None represents no compression
	None Algorithm = "none"
	// LZ4 represents lz4 frame compression
	LZ4 Algorithm = "lz4"
	// Zstd represents zstandard compression
	Zstd Algorithm = "zstd"
)

// Level represents compression level, controlling the trade-off between
// compression speed and compression ratio.
type Level int

const (
	// Fastest prioritizes speed over compression ratio.
	Fastest Level = 1
	// Default balances speed and compression.
	Default Level = 5
	// Better improves compression at cost of speed.
	Better Level = 7
	// Best maximizes compression ratio.
	Best Level = 9
)

var levelNames = map[Level]string{
	Fastest: "fastest",
	Default: "default",
	Better:  "better",
	Best:    "best",
}

// String returns the configuration name of the level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "default"
}

// ParseLevel converts a configuration name into a Level. The empty string
// maps to Default.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return Default, nil
	}
	for l, name := range levelNames {
		if strings.EqualFold(name, s) {
			return l, nil
		}
	}
	return Default, errors.Newf(errors.ErrorTypeConfig, "unknown compression level %q", s)
}

// Compressor provides compression and decompression functionality.
// All implementations are safe for concurrent use.
type Compressor interface {
	// Compress compresses data and returns the compressed bytes.
	// The input data is not modified.
	Compress(data []byte) ([]byte, error)

	// Decompress decompresses data. sizeHint, when positive, is the
	// expected decompressed size and is used to preallocate the result.
	Decompress(data []byte, sizeHint int) ([]byte, error)

	// CompressStream compresses from reader to writer.
	CompressStream(dst io.Writer, src io.Reader) error

	// DecompressStream decompresses from reader to writer.
	DecompressStream(dst io.Writer, src io.Reader) error

	// Algorithm returns the compression algorithm used.
	Algorithm() Algorithm

	// Level returns the compression level configured.
	Level() Level
}

// Config represents compressor configuration.
type Config struct {
	Algorithm Algorithm // Compression algorithm to use
	Level     Level     // Compression level
}

// DefaultConfig returns the default compression configuration: LZ4 at the
// default level.
func DefaultConfig() *Config {
	return &Config{
		Algorithm: LZ4,
		Level:     Default,
	}
}

// NewCompressor creates a new compressor based on the provided configuration.
// If config is nil, default configuration is used.
func NewCompressor(config *Config) (Compressor, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Algorithm {
	case None, "":
		return &noneCompressor{baseCompressor{algorithm: None, level: config.Level}}, nil
	case LZ4:
		return newLZ4Compressor(config), nil
	case Zstd:
		return newZstdCompressor(config)
	default:
		return nil, errors.Newf(errors.ErrorTypeCompression, "unsupported compression algorithm: %s", config.Algorithm)
	}
}

// Base compressor implementation
type baseCompressor struct {
	algorithm Algorithm
	level     Level
}

// Algorithm returns the compression algorithm
func (bc *baseCompressor) Algorithm() Algorithm {
	return bc.algorithm
}

// Level returns the compression level
func (bc *baseCompressor) Level() Level {
	return bc.level
}

func (bc *baseCompressor) wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, errors.ErrorTypeCompression, op+" failed").
		WithDetail("algorithm", string(bc.algorithm))
}

// None compressor (no compression)
type noneCompressor struct {
	baseCompressor
}

func (nc *noneCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (nc *noneCompressor) Decompress(data []byte, _ int) ([]byte, error) {
	return data, nil
}

func (nc *noneCompressor) CompressStream(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return nc.wrap(err, "copy")
}

func (nc *noneCompressor) DecompressStream(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return nc.wrap(err, "copy")
}

// maxPreallocRatio bounds the output preallocated for a size hint relative
// to the compressed input. Hints come from the stream and are untrusted.
const maxPreallocRatio = 64

func preallocSize(sizeHint, compressedLen int) int {
	if sizeHint <= 0 {
		return 0
	}
	return min(sizeHint, compressedLen*maxPreallocRatio)
}

// LZ4 compressor
type lz4Compressor struct {
	baseCompressor
	compressionLevel lz4.CompressionLevel
}

func newLZ4Compressor(config *Config) *lz4Compressor {
	return &lz4Compressor{
		baseCompressor: baseCompressor{
			algorithm: LZ4,
			level:     config.Level,
		},
		compressionLevel: mapLZ4Level(config.Level),
	}
}

func (lc *lz4Compressor) Compress(data []byte) ([]byte, error) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	if err := lc.CompressStream(buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

func (lc *lz4Compressor) Decompress(data []byte, sizeHint int) ([]byte, error) {
	out := bytes.NewBuffer(make([]byte, 0, preallocSize(sizeHint, len(data))))
	if err := lc.DecompressStream(out, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (lc *lz4Compressor) CompressStream(dst io.Writer, src io.Reader) error {
	w := lz4.NewWriter(dst)
	if err := w.Apply(lz4.CompressionLevelOption(lc.compressionLevel)); err != nil {
		return lc.wrap(err, "configure")
	}

	if _, err := io.Copy(w, src); err != nil {
		return lc.wrap(err, "compress")
	}
	return lc.wrap(w.Close(), "compress")
}

func (lc *lz4Compressor) DecompressStream(dst io.Writer, src io.Reader) error {
	r := lz4.NewReader(src)
	_, err := io.Copy(dst, r) //nolint:gosec // G110: payload sizes are checked by the decoder
	return lc.wrap(err, "decompress")
}

// Zstd compressor
type zstdCompressor struct {
	baseCompressor
	encoderPool sync.Pool
	decoderPool sync.Pool
}

func newZstdCompressor(config *Config) (*zstdCompressor, error) {
	level := mapZstdLevel(config.Level)

	zc := &zstdCompressor{
		baseCompressor: baseCompressor{
			algorithm: Zstd,
			level:     config.Level,
		},
	}

	// Fail early on options the encoder rejects rather than inside the pool.
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, zc.wrap(err, "configure")
	}
	zc.encoderPool.Put(enc)

	zc.encoderPool.New = func() interface{} {
		enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
		return enc
	}

	zc.decoderPool.New = func() interface{} {
		dec, _ := zstd.NewReader(nil)
		return dec
	}

	return zc, nil
}

func (zc *zstdCompressor) Compress(data []byte) ([]byte, error) {
	enc := zc.encoderPool.Get().(*zstd.Encoder)
	defer zc.encoderPool.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

func (zc *zstdCompressor) Decompress(data []byte, sizeHint int) ([]byte, error) {
	dec := zc.decoderPool.Get().(*zstd.Decoder)
	defer zc.decoderPool.Put(dec)

	out, err := dec.DecodeAll(data, make([]byte, 0, preallocSize(sizeHint, len(data))))
	if err != nil {
		return nil, zc.wrap(err, "decompress")
	}
	return out, nil
}

func (zc *zstdCompressor) CompressStream(dst io.Writer, src io.Reader) error {
	enc := zc.encoderPool.Get().(*zstd.Encoder)
	defer zc.encoderPool.Put(enc)

	enc.Reset(dst)
	if _, err := io.Copy(enc, src); err != nil {
		return zc.wrap(err, "compress")
	}
	return zc.wrap(enc.Close(), "compress")
}

func (zc *zstdCompressor) DecompressStream(dst io.Writer, src io.Reader) error {
	dec := zc.decoderPool.Get().(*zstd.Decoder)
	defer zc.decoderPool.Put(dec)

	if err := dec.Reset(src); err != nil {
		return zc.wrap(err, "decompress")
	}

	_, err := io.Copy(dst, dec)
	return zc.wrap(err, "decompress")
}

// Helper functions to map compression levels

func mapLZ4Level(level Level) lz4.CompressionLevel {
	switch level {
	case Fastest:
		return lz4.Fast
	case Better:
		return lz4.Level7
	case Best:
		return lz4.Level9
	default:
		return lz4.Level5
	}
}

func mapZstdLevel(level Level) zstd.EncoderLevel {
	switch level {
	case Fastest:
		return zstd.SpeedFastest
	case Better:
		return zstd.SpeedBetterCompression
	case Best:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}
