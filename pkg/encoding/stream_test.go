package encoding_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/encoding"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logtypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/testutil"
)

// streamDecode pushes chunks one at a time, draining the decoder after
// each push.
func streamDecode(t *testing.T, mem memory.Allocator, chunks [][]byte) []logtypes.LogMsg {
	t.Helper()
	dec := encoding.NewStreamDecoder(encoding.WithAllocator(mem))
	var msgs []logtypes.LogMsg
	t.Cleanup(func() { releaseAll(msgs) })
	for _, chunk := range chunks {
		dec.PushChunk(chunk)
		for {
			msg, ok, err := dec.TryRead()
			require.NoError(t, err)
			if !ok {
				break
			}
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// splitPattern cuts data into pieces whose sizes cycle through pattern.
func splitPattern(data []byte, pattern ...int) [][]byte {
	var chunks [][]byte
	for i := 0; len(data) > 0; i++ {
		n := min(pattern[i%len(pattern)], len(data))
		chunks = append(chunks, data[:n:n])
		data = data[n:]
	}
	return chunks
}

func TestStreamWholeChunks(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	msgs := fakeMessages(t, mem, 3)
	data := encode(t, mem, encoding.OptionsUncompressed, msgs)

	assertSameMessages(t, msgs, streamDecode(t, mem, [][]byte{data}))
}

func TestStreamOneByteChunks(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	msgs := fakeMessages(t, mem, 3)
	data := encode(t, mem, encoding.OptionsUncompressed, msgs)

	assertSameMessages(t, msgs, streamDecode(t, mem, splitPattern(data, 1)))
}

func TestStreamTwoConcatenatedStreams(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	first := fakeMessages(t, mem, 2)
	second := fakeMessages(t, mem, 2)
	data := append(encode(t, mem, encoding.OptionsUncompressed, first), encode(t, mem, encoding.OptionsZstd, second)...)

	decoded := streamDecode(t, mem, [][]byte{data})
	assertSameMessages(t, append(append([]logtypes.LogMsg{}, first...), second...), decoded)
}

func TestStreamCompressed(t *testing.T) {
	for _, opts := range []encoding.EncodingOptions{encoding.OptionsLZ4, encoding.OptionsZstd} {
		t.Run(opts.Compression.String(), func(t *testing.T) {
			mem := testutil.CheckedAllocator(t)
			msgs := fakeMessages(t, mem, 3)
			data := encode(t, mem, opts, msgs)

			assertSameMessages(t, msgs, streamDecode(t, mem, [][]byte{data}))
		})
	}
}

func TestStream3x16Chunks(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	msgs := fakeMessages(t, mem, 3)
	data := encode(t, mem, encoding.OptionsLZ4, msgs)

	assertSameMessages(t, msgs, streamDecode(t, mem, splitPattern(data, 16)))
}

func TestStreamIrregularChunks(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	msgs := fakeMessages(t, mem, 3)
	data := encode(t, mem, encoding.OptionsUncompressed, msgs)

	// Zero-sized pieces are pushed too; the decoder must ignore them.
	assertSameMessages(t, msgs, streamDecode(t, mem, splitPattern(data, 0, 3, 4, 70, 31)))
}

func TestStreamPartialInput(t *testing.T) {
	mem := testutil.CheckedAllocator(t)
	msgs := fakeMessages(t, mem, 1)
	data := encode(t, mem, encoding.OptionsUncompressed, msgs)

	dec := encoding.NewStreamDecoder(encoding.WithAllocator(mem))
	dec.PushChunk(data[:encoding.FileHeaderSize-1])
	_, ok, err := dec.TryRead()
	require.NoError(t, err)
	assert.False(t, ok)

	dec.PushChunk(data[encoding.FileHeaderSize-1 : encoding.FileHeaderSize+encoding.MessageHeaderSize])
	_, ok, err = dec.TryRead()
	require.NoError(t, err)
	assert.False(t, ok, "header alone is not a message")
	assert.Equal(t, logtypes.CurrentVersion, dec.Version())
}

func TestStreamRejectsBadMagic(t *testing.T) {
	dec := encoding.NewStreamDecoder()
	dec.PushChunk([]byte("NOPE0000000000000000"))
	_, ok, err := dec.TryRead()
	assert.False(t, ok)
	assert.True(t, errors.IsType(err, errors.ErrorTypeDecode))
}
