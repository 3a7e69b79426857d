package encoding

import (
	"context"
	"io"
	"runtime"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/compression"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logtypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/metrics"
)

const tracerName = "github.com/ajitpratap0/rerun-sdk-go/pkg/encoding"

type settings struct {
	logger  *zap.Logger
	tracer  trace.Tracer
	mem     memory.Allocator
	level   compression.Level
	workers int
}

// Option configures an Encoder or Decoder.
type Option func(*settings)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTracer sets the tracer used for per-message spans. The default is the
// global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *settings) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithAllocator sets the Arrow allocator for IPC buffers and decoded records.
func WithAllocator(mem memory.Allocator) Option {
	return func(s *settings) {
		if mem != nil {
			s.mem = mem
		}
	}
}

// WithCompressionLevel sets the level for LZ4 and Zstd payloads.
func WithCompressionLevel(level compression.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithWorkers bounds how many payloads EncodeAll serializes at once.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

func newSettings(options []Option) settings {
	s := settings{
		logger:  zap.NewNop(),
		tracer:  otel.Tracer(tracerName),
		mem:     memory.DefaultAllocator,
		level:   compression.Default,
		workers: runtime.NumCPU(),
	}
	for _, opt := range options {
		opt(&s)
	}
	return s
}

// Encoder writes log messages to a stream. It is not safe for concurrent
// use.
type Encoder struct {
	w        io.Writer
	opts     EncodingOptions
	settings settings
	codecs   *codecSet
	written  int64
	finished bool
}

// NewEncoder writes the stream header to w and returns an encoder for the
// messages that follow.
func NewEncoder(w io.Writer, opts EncodingOptions, options ...Option) (*Encoder, error) {
	if _, err := opts.Compression.algorithm(); err != nil {
		return nil, errors.Newf(errors.ErrorTypeEncode, "unknown compression %d", uint8(opts.Compression))
	}
	if opts.Serializer == 0 {
		opts.Serializer = SerializerJSON
	}
	if opts.Serializer != SerializerJSON {
		return nil, errors.Newf(errors.ErrorTypeEncode, "unsupported serializer %d", uint8(opts.Serializer))
	}

	s := newSettings(options)
	e := &Encoder{w: w, opts: opts, settings: s, codecs: newCodecSet(s.level)}

	header := FileHeader{Version: logtypes.CurrentVersion, Options: opts}
	if err := e.write(header.Bytes()); err != nil {
		return nil, err
	}
	return e, nil
}

// Append encodes msg and writes it.
func (e *Encoder) Append(ctx context.Context, msg logtypes.LogMsg) error {
	if e.finished {
		return errors.New(errors.ErrorTypeEncode, "append after finish")
	}
	m, err := e.encode(ctx, msg)
	if err != nil {
		return err
	}
	return e.writeMessage(m)
}

// Finish writes the end-of-stream marker. Further appends fail. Another
// stream may be written to the same writer with a new Encoder.
func (e *Encoder) Finish() error {
	if e.finished {
		return nil
	}
	e.finished = true
	if err := e.write(MessageHeader{Kind: KindEnd}.Bytes()); err != nil {
		return err
	}
	metrics.MessagesEncoded.WithLabelValues(KindEnd.String()).Inc()
	e.settings.logger.Debug("stream finished", zap.Int64("bytes", e.written))
	return nil
}

// BytesWritten is the number of bytes written so far, header included.
func (e *Encoder) BytesWritten() int64 {
	return e.written
}

type encodedMessage struct {
	kind MessageKind
	body []byte
}

func (e *Encoder) encode(ctx context.Context, msg logtypes.LogMsg) (encodedMessage, error) {
	if msg == nil {
		return encodedMessage{}, errors.New(errors.ErrorTypeUnexpectedNullArgument, "nil message")
	}
	kind, err := kindOf(msg)
	if err != nil {
		return encodedMessage{}, err
	}

	_, span := e.settings.tracer.Start(ctx, "encoding.encode",
		trace.WithAttributes(
			attribute.String("rerun.message.kind", kind.String()),
			attribute.String("rerun.store_id", logtypes.StoreIDOf(msg).String()),
			attribute.String("rerun.compression", e.opts.Compression.String()),
		))
	defer span.End()

	timer := metrics.NewTimer(kind.String())
	body, err := encodeBody(msg, e.opts, e.codecs, e.settings.mem)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode failed")
		metrics.SerializationErrors.WithLabelValues(string(errors.Code(err))).Inc()
		return encodedMessage{}, err
	}
	elapsed := timer.ObserveDuration()
	span.SetAttributes(attribute.Int("rerun.message.bytes", len(body)))

	e.settings.logger.Debug("encoded message",
		zap.String("kind", kind.String()),
		zap.String("store_id", logtypes.StoreIDOf(msg).String()),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", elapsed))
	return encodedMessage{kind: kind, body: body}, nil
}

func (e *Encoder) writeMessage(m encodedMessage) error {
	header := MessageHeader{Kind: m.kind, Len: uint64(len(m.body))}
	if err := e.write(header.Bytes()); err != nil {
		return err
	}
	if err := e.write(m.body); err != nil {
		return err
	}
	metrics.MessagesEncoded.WithLabelValues(m.kind.String()).Inc()
	if m.kind == KindArrowMsg {
		metrics.EncodedBytes.WithLabelValues(e.opts.Compression.String()).Add(float64(len(m.body)))
	}
	return nil
}

func (e *Encoder) write(b []byte) error {
	n, err := e.w.Write(b)
	e.written += int64(n)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeEncode, "write stream")
	}
	return nil
}

// EncodeAll writes msgs as one complete stream. Payloads are serialized
// concurrently and written in the order given.
func EncodeAll(ctx context.Context, w io.Writer, opts EncodingOptions, msgs []logtypes.LogMsg, options ...Option) error {
	e, err := NewEncoder(w, opts, options...)
	if err != nil {
		return err
	}

	encoded := make([]encodedMessage, len(msgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.settings.workers)
	for i, msg := range msgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := e.encode(gctx, msg)
			if err != nil {
				return err
			}
			encoded[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, m := range encoded {
		if err := e.writeMessage(m); err != nil {
			return err
		}
	}
	return e.Finish()
}
