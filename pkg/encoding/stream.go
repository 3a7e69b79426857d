package encoding

import (
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logtypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/metrics"
)

type streamState uint8

const (
	stateStreamHeader streamState = iota
	stateMessageHeader
	stateMessage
)

// StreamDecoder decodes a stream that arrives in arbitrary pieces, such as
// network reads. Push bytes with PushChunk and poll TryRead until it
// reports no message.
//
//	StreamHeader -> MessageHeader <-> Message
//
// An end marker returns to StreamHeader so concatenated streams decode as
// one.
type StreamDecoder struct {
	settings settings
	codecs   *codecSet
	chunks   chunkBuffer

	state   streamState
	header  FileHeader
	pending MessageHeader
}

// NewStreamDecoder returns a decoder waiting for a stream header.
func NewStreamDecoder(options ...Option) *StreamDecoder {
	s := newSettings(options)
	return &StreamDecoder{settings: s, codecs: newCodecSet(s.level)}
}

// PushChunk queues bytes for decoding. The decoder keeps chunk until it has
// been consumed; the caller must not modify it.
func (d *StreamDecoder) PushChunk(chunk []byte) {
	d.chunks.push(chunk)
}

// Version is the writer version of the current stream, valid once its
// header has been read.
func (d *StreamDecoder) Version() logtypes.Version {
	return d.header.Version
}

// TryRead returns the next complete message. ok is false when more input
// is needed.
func (d *StreamDecoder) TryRead() (msg logtypes.LogMsg, ok bool, err error) {
	for {
		switch d.state {
		case stateStreamHeader:
			b, ok := d.chunks.tryRead(FileHeaderSize)
			if !ok {
				return nil, false, nil
			}
			header, err := ParseFileHeader(b)
			if err != nil {
				return nil, false, err
			}
			warnOnVersionMismatch(d.settings.logger, header.Version)
			d.header = header
			d.state = stateMessageHeader

		case stateMessageHeader:
			b, ok := d.chunks.tryRead(MessageHeaderSize)
			if !ok {
				return nil, false, nil
			}
			header, err := ParseMessageHeader(b)
			if err != nil {
				return nil, false, err
			}
			d.pending = header
			d.state = stateMessage

		case stateMessage:
			b, ok := d.chunks.tryRead(int(d.pending.Len))
			if !ok {
				return nil, false, nil
			}
			msg, err := decodeBody(d.pending.Kind, b, d.codecs, d.settings.mem)
			if err != nil {
				metrics.SerializationErrors.WithLabelValues(string(errors.Code(err))).Inc()
				return nil, false, err
			}
			if msg == nil {
				d.state = stateStreamHeader
				continue
			}
			propagateVersion(msg, d.header.Version)
			metrics.MessagesDecoded.WithLabelValues(d.pending.Kind.String()).Inc()
			d.state = stateMessageHeader
			return msg, true, nil
		}
	}
}

// chunkBuffer assembles fixed-size reads out of queued chunks.
type chunkBuffer struct {
	queue  [][]byte
	buffer []byte
	want   int
}

func (b *chunkBuffer) push(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	b.queue = append(b.queue, chunk)
}

// tryRead returns exactly n bytes once enough have been pushed. The result
// is only valid until the next call. A partial read must be retried with
// the same n. The buffer grows with the pushed data, not with n.
func (b *chunkBuffer) tryRead(n int) ([]byte, bool) {
	if n != b.want {
		if len(b.buffer) != 0 {
			panic("chunkBuffer: read size changed during a partial read")
		}
		b.want = n
	}

	for len(b.buffer) < n && len(b.queue) > 0 {
		take := min(n-len(b.buffer), len(b.queue[0]))
		b.buffer = append(b.buffer, b.queue[0][:take]...)
		b.queue[0] = b.queue[0][take:]
		if len(b.queue[0]) == 0 {
			b.queue[0] = nil
			b.queue = b.queue[1:]
		}
	}

	if len(b.buffer) < n {
		return nil, false
	}
	out := b.buffer
	b.buffer = b.buffer[:0]
	return out, true
}
