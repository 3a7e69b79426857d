package encoding

import (
	"bytes"
	"encoding/binary"
	"sync"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/compression"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/json"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logtypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/pool"
)

const payloadEncodingArrowIPC = "arrow_ipc"

// arrowEnvelope precedes the Arrow payload of an ArrowMsg body.
type arrowEnvelope struct {
	StoreID          logtypes.StoreID `json:"store_id"`
	ChunkID          uuid.UUID        `json:"chunk_id"`
	Compression      Compression      `json:"compression"`
	UncompressedSize int              `json:"uncompressed_size"`
	Encoding         string           `json:"encoding"`
}

// codecSet lazily builds one compressor per algorithm. Safe for concurrent
// use.
type codecSet struct {
	level compression.Level

	mu          sync.Mutex
	compressors map[Compression]compression.Compressor
}

func newCodecSet(level compression.Level) *codecSet {
	return &codecSet{level: level, compressors: make(map[Compression]compression.Compressor, 1)}
}

func (s *codecSet) get(c Compression) (compression.Compressor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if comp, ok := s.compressors[c]; ok {
		return comp, nil
	}
	algorithm, err := c.algorithm()
	if err != nil {
		return nil, err
	}
	comp, err := compression.NewCompressor(&compression.Config{Algorithm: algorithm, Level: s.level})
	if err != nil {
		return nil, err
	}
	s.compressors[c] = comp
	return comp, nil
}

func encodeBody(msg logtypes.LogMsg, opts EncodingOptions, codecs *codecSet, mem memory.Allocator) ([]byte, error) {
	switch m := msg.(type) {
	case *logtypes.SetStoreInfo:
		return marshalControl(m)
	case *logtypes.BlueprintActivationCommand:
		return marshalControl(m)
	case *logtypes.ArrowMsg:
		return encodeArrowMsg(m, opts.Compression, codecs, mem)
	default:
		return nil, errors.Newf(errors.ErrorTypeEncode, "unsupported message type %T", msg)
	}
}

func marshalControl(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeEncode, "marshal control message")
	}
	return body, nil
}

func encodeArrowMsg(m *logtypes.ArrowMsg, c Compression, codecs *codecSet, mem memory.Allocator) ([]byte, error) {
	if m.Batch == nil {
		return nil, errors.New(errors.ErrorTypeUnexpectedNullArgument, "arrow message has no record").
			WithDetail("chunk_id", m.ChunkID.String())
	}

	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	w := ipc.NewWriter(buf, ipc.WithSchema(m.Batch.Schema()), ipc.WithAllocator(mem))
	if err := w.Write(m.Batch); err != nil {
		_ = w.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeEncode, "write arrow ipc").
			WithDetail("chunk_id", m.ChunkID.String())
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeEncode, "close arrow ipc writer")
	}

	comp, err := codecs.get(c)
	if err != nil {
		return nil, err
	}
	payload, err := comp.Compress(buf.Bytes())
	if err != nil {
		return nil, err
	}

	envelope, err := json.Marshal(arrowEnvelope{
		StoreID:          m.StoreID,
		ChunkID:          m.ChunkID,
		Compression:      c,
		UncompressedSize: buf.Len(),
		Encoding:         payloadEncodingArrowIPC,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeEncode, "marshal arrow envelope")
	}

	// payload may alias buf; copy before buf goes back to the pool.
	body := make([]byte, 4, 4+len(envelope)+len(payload))
	binary.LittleEndian.PutUint32(body, uint32(len(envelope)))
	body = append(body, envelope...)
	return append(body, payload...), nil
}

// decodeBody returns nil for KindEnd.
func decodeBody(kind MessageKind, body []byte, codecs *codecSet, mem memory.Allocator) (logtypes.LogMsg, error) {
	switch kind {
	case KindEnd:
		return nil, nil
	case KindSetStoreInfo:
		var m logtypes.SetStoreInfo
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeDecode, "decode set_store_info")
		}
		return &m, nil
	case KindBlueprintActivationCommand:
		var m logtypes.BlueprintActivationCommand
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeDecode, "decode blueprint_activation_command")
		}
		return &m, nil
	case KindArrowMsg:
		return decodeArrowMsg(body, codecs, mem)
	default:
		return nil, errors.Newf(errors.ErrorTypeDecode, "unknown message kind %d", uint64(kind))
	}
}

func decodeArrowMsg(body []byte, codecs *codecSet, mem memory.Allocator) (*logtypes.ArrowMsg, error) {
	if len(body) < 4 {
		return nil, errors.New(errors.ErrorTypeDecode, "arrow message body is truncated")
	}
	n := binary.LittleEndian.Uint32(body)
	if uint64(n) > uint64(len(body)-4) {
		return nil, errors.Newf(errors.ErrorTypeDecode, "arrow envelope of %d bytes overruns body", n)
	}

	var envelope arrowEnvelope
	if err := json.Unmarshal(body[4:4+n], &envelope); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeDecode, "decode arrow envelope")
	}
	if envelope.Encoding != payloadEncodingArrowIPC {
		return nil, errors.Newf(errors.ErrorTypeDecode, "unsupported payload encoding %q", envelope.Encoding)
	}

	if envelope.UncompressedSize < 0 || uint64(envelope.UncompressedSize) > MaxMessageLen {
		return nil, errors.Newf(errors.ErrorTypeDecode,
			"uncompressed size %d outside [0, %d]", envelope.UncompressedSize, uint64(MaxMessageLen)).
			WithDetail("chunk_id", envelope.ChunkID.String())
	}

	comp, err := codecs.get(envelope.Compression)
	if err != nil {
		return nil, err
	}
	payload, err := comp.Decompress(body[4+n:], envelope.UncompressedSize)
	if err != nil {
		return nil, err
	}
	if len(payload) != envelope.UncompressedSize {
		return nil, errors.Newf(errors.ErrorTypeDecode,
			"payload is %d bytes, envelope says %d", len(payload), envelope.UncompressedSize).
			WithDetail("chunk_id", envelope.ChunkID.String())
	}

	rdr, err := ipc.NewReader(bytes.NewReader(payload), ipc.WithAllocator(mem))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeDecode, "open arrow ipc stream")
	}
	defer rdr.Release()

	if !rdr.Next() {
		if err := rdr.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeDecode, "read arrow ipc record")
		}
		return nil, errors.New(errors.ErrorTypeDecode, "arrow payload holds no record")
	}
	rec := rdr.Record()
	rec.Retain()

	return &logtypes.ArrowMsg{StoreID: envelope.StoreID, ChunkID: envelope.ChunkID, Batch: rec}, nil
}
