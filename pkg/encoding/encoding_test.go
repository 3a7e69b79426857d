package encoding_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"runtime"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/archetypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/components"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/encoding"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logtypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/metrics"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/testutil"
)

// fakeMessages returns a store announcement, n chunks and a blueprint
// activation. The arrow messages are released at test cleanup.
func fakeMessages(t *testing.T, mem memory.Allocator, n int) []logtypes.LogMsg {
	t.Helper()
	storeID := logtypes.RandomStoreID(logtypes.StoreKindRecording)
	msgs := []logtypes.LogMsg{logtypes.NewSetStoreInfo(logtypes.StoreInfo{
		ApplicationID: "encoding_test",
		StoreID:       storeID,
		StoreSource:   logtypes.GoSDKSource(),
	})}

	step := logtypes.NewSequenceTimeline("step")
	for i := 0; i < n; i++ {
		batch, err := loggable.NewComponentBatch(mem, components.ScalarCodec, archetypes.ScalarsDescriptorScalars,
			[]components.Scalar{components.Scalar(i), 0.5})
		require.NoError(t, err)
		chunk, err := logtypes.ChunkFromBatches(logtypes.NewEntityPath("plot", "line"),
			logtypes.TimePoint{{Timeline: step, Value: int64(i)}}, []loggable.ComponentBatch{batch})
		batch.Release()
		require.NoError(t, err)
		msg, err := chunk.ToArrowMsg(storeID, mem)
		chunk.Release()
		require.NoError(t, err)
		msgs = append(msgs, msg)
	}

	msgs = append(msgs, logtypes.MakeActive(logtypes.RandomStoreID(logtypes.StoreKindBlueprint)))
	t.Cleanup(func() { releaseAll(msgs) })
	return msgs
}

func releaseAll(msgs []logtypes.LogMsg) {
	for _, msg := range msgs {
		if m, ok := msg.(*logtypes.ArrowMsg); ok {
			m.Release()
		}
	}
}

func encode(t *testing.T, mem memory.Allocator, opts encoding.EncodingOptions, msgs []logtypes.LogMsg) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc, err := encoding.NewEncoder(&buf, opts, encoding.WithAllocator(mem), encoding.WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)
	for _, msg := range msgs {
		require.NoError(t, enc.Append(context.Background(), msg))
	}
	require.NoError(t, enc.Finish())
	assert.Equal(t, int64(buf.Len()), enc.BytesWritten())
	return buf.Bytes()
}

func decodeAll(t *testing.T, mem memory.Allocator, data []byte) []logtypes.LogMsg {
	t.Helper()
	dec, err := encoding.NewDecoder(bytes.NewReader(data), encoding.WithAllocator(mem))
	require.NoError(t, err)
	var msgs []logtypes.LogMsg
	t.Cleanup(func() { releaseAll(msgs) })
	for {
		msg, err := dec.Next()
		if err == io.EOF {
			return msgs
		}
		require.NoError(t, err)
		msgs = append(msgs, msg)
	}
}

func assertSameMessages(t *testing.T, want, got []logtypes.LogMsg) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].Kind(), got[i].Kind(), "message %d", i)
		switch w := want[i].(type) {
		case *logtypes.SetStoreInfo:
			g := got[i].(*logtypes.SetStoreInfo)
			assert.Equal(t, w.RowID, g.RowID)
			require.NotNil(t, g.Info.StoreVersion, "decoders stamp the stream version")
			info := g.Info
			info.StoreVersion = w.Info.StoreVersion
			assert.Equal(t, w.Info, info)
		case *logtypes.ArrowMsg:
			g := got[i].(*logtypes.ArrowMsg)
			assert.Equal(t, w.StoreID, g.StoreID)
			assert.Equal(t, w.ChunkID, g.ChunkID)
			assert.True(t, array.RecordEqual(w.Batch, g.Batch), "record %d differs", i)
		default:
			assert.Equal(t, want[i], got[i])
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, opts := range []encoding.EncodingOptions{encoding.OptionsUncompressed, encoding.OptionsLZ4, encoding.OptionsZstd} {
		t.Run(opts.Compression.String(), func(t *testing.T) {
			mem := testutil.CheckedAllocator(t)
			msgs := fakeMessages(t, mem, 4)

			data := encode(t, mem, opts, msgs)
			decoded := decodeAll(t, mem, data)
			assertSameMessages(t, msgs, decoded)
		})
	}
}

func TestRoundTripPreservesChunks(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	msgs := fakeMessages(t, mem, 1)

	decoded := decodeAll(t, mem, encode(t, mem, encoding.OptionsZstd, msgs))
	arrowMsg := decoded[1].(*logtypes.ArrowMsg)

	chunk, err := logtypes.ChunkFromRecord(arrowMsg.Batch)
	require.NoError(t, err)
	defer chunk.Release()
	assert.Equal(t, arrowMsg.ChunkID, chunk.ID)
	assert.Equal(t, logtypes.EntityPath("/plot/line"), chunk.EntityPath)

	batches, err := chunk.ComponentBatchesAt(0)
	require.NoError(t, err)
	defer batches[0].Release()
	assert.Equal(t, archetypes.ScalarsDescriptorScalars, batches[0].Descriptor)
	values, err := loggable.DecodeBatch(components.ScalarCodec, batches[0])
	require.NoError(t, err)
	assert.Equal(t, []components.Scalar{0, 0.5}, values)
}

func TestConcatenatedStreams(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	first := fakeMessages(t, mem, 2)
	second := fakeMessages(t, mem, 3)

	data := append(encode(t, mem, encoding.OptionsLZ4, first), encode(t, mem, encoding.OptionsUncompressed, second)...)
	decoded := decodeAll(t, mem, data)
	assertSameMessages(t, append(append([]logtypes.LogMsg{}, first...), second...), decoded)
}

func TestDecoderWithoutEndMarker(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	msgs := fakeMessages(t, mem, 1)
	data := encode(t, mem, encoding.OptionsUncompressed, msgs)

	decoded := decodeAll(t, mem, data[:len(data)-encoding.MessageHeaderSize])
	assertSameMessages(t, msgs, decoded)
}

func TestDecoderErrors(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	msgs := fakeMessages(t, mem, 1)
	data := encode(t, mem, encoding.OptionsUncompressed, msgs)

	patched := func(offset int, b ...byte) []byte {
		out := bytes.Clone(data)
		copy(out[offset:], b)
		return out
	}
	unknownKind := append(bytes.Clone(data[:encoding.FileHeaderSize]),
		encoding.MessageHeader{Kind: 9, Len: 0}.Bytes()...)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "short header", data: data[:5]},
		{name: "bad magic", data: patched(0, 'X')},
		{name: "newer version", data: patched(4, 0, logtypes.CurrentVersion.Minor+1)},
		{name: "unknown compression", data: patched(8, 7)},
		{name: "unknown serializer", data: patched(9, 7)},
		{name: "unknown kind", data: unknownKind},
		{name: "truncated body", data: data[:len(data)-encoding.MessageHeaderSize-4]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeUntilError(mem, tt.data)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeDecode), "got %v", err)
		})
	}
}

func decodeUntilError(mem memory.Allocator, data []byte) error {
	dec, err := encoding.NewDecoder(bytes.NewReader(data), encoding.WithAllocator(mem))
	if err != nil {
		return err
	}
	var msgs []logtypes.LogMsg
	defer func() { releaseAll(msgs) }()
	for {
		msg, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
}

// forgedArrowStream hand-builds a stream holding one ArrowMsg. The body is
// envelopeLen, the envelope and a filler payload.
func forgedArrowStream(opts encoding.EncodingOptions, envelopeLen int, size string) []byte {
	envelope := fmt.Sprintf(`{"compression":%d,"uncompressed_size":%s,"encoding":"arrow_ipc"}`,
		opts.Compression, size)
	if envelopeLen < 0 {
		envelopeLen = len(envelope)
	}
	body := binary.LittleEndian.AppendUint32(nil, uint32(envelopeLen))
	body = append(body, envelope...)
	body = append(body, bytes.Repeat([]byte{0x42}, 32)...)

	out := encoding.FileHeader{Version: logtypes.CurrentVersion, Options: opts}.Bytes()
	out = append(out, encoding.MessageHeader{Kind: encoding.KindArrowMsg, Len: uint64(len(body))}.Bytes()...)
	return append(out, body...)
}

func TestDecoderRejectsForgedEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "huge size lz4", data: forgedArrowStream(encoding.OptionsLZ4, -1, "1152921504606846976")},
		{name: "huge size zstd", data: forgedArrowStream(encoding.OptionsZstd, -1, "1152921504606846976")},
		{name: "negative size", data: forgedArrowStream(encoding.OptionsLZ4, -1, "-1")},
		{name: "size above message limit", data: forgedArrowStream(encoding.OptionsUncompressed, -1, "2147483649")},
		{name: "envelope overruns body", data: forgedArrowStream(encoding.OptionsUncompressed, 1<<20, "4")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := testutil.CheckedAllocator(t)

			var err error
			require.NotPanics(t, func() { err = decodeUntilError(mem, tt.data) })
			assert.True(t, errors.IsType(err, errors.ErrorTypeDecode), "got %v", err)

			dec := encoding.NewStreamDecoder(encoding.WithAllocator(mem))
			dec.PushChunk(tt.data)
			require.NotPanics(t, func() { _, _, err = dec.TryRead() })
			assert.True(t, errors.IsType(err, errors.ErrorTypeDecode), "got %v", err)
		})
	}
}

func TestDecoderDoesNotTrustMessageLength(t *testing.T) {
	data := encoding.FileHeader{Version: logtypes.CurrentVersion, Options: encoding.OptionsUncompressed}.Bytes()
	data = append(data, encoding.MessageHeader{Kind: encoding.KindArrowMsg, Len: encoding.MaxMessageLen}.Bytes()...)
	data = append(data, "short"...)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	err := decodeUntilError(memory.NewGoAllocator(), data)
	runtime.ReadMemStats(&after)

	assert.True(t, errors.IsType(err, errors.ErrorTypeDecode), "got %v", err)
	assert.Contains(t, err.Error(), "message body is truncated")
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20), "body buffer must grow with the input")
}

func TestVersionPropagation(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	msgs := fakeMessages(t, mem, 0)
	data := encode(t, mem, encoding.OptionsUncompressed, msgs)

	older := logtypes.Version{Major: 0, Minor: logtypes.CurrentVersion.Minor - 1, Patch: 3}
	ob := older.Bytes()
	copy(data[4:8], ob[:])

	core, logs := observer.New(zapcore.WarnLevel)
	dec, err := encoding.NewDecoder(bytes.NewReader(data), encoding.WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, older, dec.Version())
	assert.Equal(t, 1, logs.FilterMessage("stream was written by a different SDK version").Len())

	msg, err := dec.Next()
	require.NoError(t, err)
	info := msg.(*logtypes.SetStoreInfo).Info
	require.NotNil(t, info.StoreVersion)
	assert.Equal(t, older, *info.StoreVersion)
}

func TestEncoderErrors(t *testing.T) {
	var buf bytes.Buffer
	_, err := encoding.NewEncoder(&buf, encoding.EncodingOptions{Compression: 9})
	assert.True(t, errors.IsType(err, errors.ErrorTypeEncode))

	enc, err := encoding.NewEncoder(&buf, encoding.OptionsUncompressed)
	require.NoError(t, err)

	err = enc.Append(context.Background(), nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnexpectedNullArgument))

	err = enc.Append(context.Background(), &logtypes.ArrowMsg{})
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnexpectedNullArgument))

	require.NoError(t, enc.Finish())
	require.NoError(t, enc.Finish(), "finish is idempotent")
	err = enc.Append(context.Background(), logtypes.MakeDefault(logtypes.RandomStoreID(logtypes.StoreKindBlueprint)))
	assert.True(t, errors.IsType(err, errors.ErrorTypeEncode))
}

func TestEncodeAll(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	msgs := fakeMessages(t, mem, 16)

	var buf bytes.Buffer
	err := encoding.EncodeAll(context.Background(), &buf, encoding.OptionsUncompressed, msgs,
		encoding.WithAllocator(mem), encoding.WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, encode(t, mem, encoding.OptionsUncompressed, msgs), buf.Bytes(),
		"parallel encoding writes the same bytes as sequential encoding")
	assertSameMessages(t, msgs, decodeAll(t, mem, buf.Bytes()))
}

func TestEncodeAllFailure(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	msgs := append(fakeMessages(t, mem, 2), &logtypes.ArrowMsg{})

	err := encoding.EncodeAll(context.Background(), io.Discard, encoding.OptionsLZ4, msgs, encoding.WithAllocator(mem))
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnexpectedNullArgument))
}

func TestEncoderMetrics(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	msgs := fakeMessages(t, mem, 2)

	ends := promtestutil.ToFloat64(metrics.MessagesEncoded.WithLabelValues("end"))
	arrow := promtestutil.ToFloat64(metrics.MessagesEncoded.WithLabelValues("arrow_msg"))
	decoded := promtestutil.ToFloat64(metrics.MessagesDecoded.WithLabelValues("arrow_msg"))

	decodeAll(t, mem, encode(t, mem, encoding.OptionsLZ4, msgs))

	assert.Equal(t, ends+1, promtestutil.ToFloat64(metrics.MessagesEncoded.WithLabelValues("end")))
	assert.Equal(t, arrow+2, promtestutil.ToFloat64(metrics.MessagesEncoded.WithLabelValues("arrow_msg")))
	assert.Equal(t, decoded+2, promtestutil.ToFloat64(metrics.MessagesDecoded.WithLabelValues("arrow_msg")))
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in   string
		want encoding.Compression
	}{
		{"off", encoding.CompressionOff},
		{"", encoding.CompressionOff},
		{"LZ4", encoding.CompressionLZ4},
		{"zstd", encoding.CompressionZstd},
	}
	for _, tt := range tests {
		got, err := encoding.ParseCompression(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.NotEmpty(t, got.String())
	}

	_, err := encoding.ParseCompression("brotli")
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestHeaders(t *testing.T) {
	h := encoding.FileHeader{Version: logtypes.CurrentVersion, Options: encoding.OptionsZstd}
	b := h.Bytes()
	require.Len(t, b, encoding.FileHeaderSize)
	assert.Equal(t, []byte("RRF2"), b[:4])

	parsed, err := encoding.ParseFileHeader(b)
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	mh := encoding.MessageHeader{Kind: encoding.KindArrowMsg, Len: 1234}
	mb := mh.Bytes()
	assert.Equal(t, []byte{2, 0, 0, 0, 0, 0, 0, 0, 0xd2, 0x04, 0, 0, 0, 0, 0, 0}, mb)
	parsedMH, err := encoding.ParseMessageHeader(mb)
	require.NoError(t, err)
	assert.Equal(t, mh, parsedMH)

	_, err = encoding.ParseMessageHeader(encoding.MessageHeader{Kind: encoding.KindEnd, Len: 1}.Bytes())
	assert.True(t, errors.IsType(err, errors.ErrorTypeDecode))
	_, err = encoding.ParseMessageHeader(encoding.MessageHeader{Kind: encoding.KindSetStoreInfo, Len: encoding.MaxMessageLen + 1}.Bytes())
	assert.True(t, errors.IsType(err, errors.ErrorTypeDecode))
}
