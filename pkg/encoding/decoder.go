package encoding

import (
	"bufio"
	"io"

	"go.uber.org/zap"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logtypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/metrics"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/pool"
)

// Decoder reads log messages from a stream. Streams concatenated back to
// back are read as one.
type Decoder struct {
	r        *bufio.Reader
	settings settings
	codecs   *codecSet
	header   FileHeader
	inStream bool
}

// NewDecoder reads the first stream header from r.
func NewDecoder(r io.Reader, options ...Option) (*Decoder, error) {
	s := newSettings(options)
	d := &Decoder{r: bufio.NewReader(r), settings: s, codecs: newCodecSet(s.level)}
	if err := d.readFileHeader(); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrorTypeDecode, "empty stream")
		}
		return nil, err
	}
	return d, nil
}

// Version is the writer version of the stream being read.
func (d *Decoder) Version() logtypes.Version {
	return d.header.Version
}

// Options are the encoding options of the stream being read.
func (d *Decoder) Options() EncodingOptions {
	return d.header.Options
}

// Next returns the next message, or io.EOF once the input is exhausted.
// Input that stops at a message boundary without an end marker is also
// treated as the end.
func (d *Decoder) Next() (logtypes.LogMsg, error) {
	for {
		if !d.inStream {
			if err := d.readFileHeader(); err != nil {
				return nil, err
			}
		}

		var hb [MessageHeaderSize]byte
		if err := d.readFull(hb[:]); err != nil {
			return nil, err
		}
		header, err := ParseMessageHeader(hb[:])
		if err != nil {
			return nil, err
		}
		if header.Kind == KindEnd {
			d.inStream = false
			continue
		}

		msg, err := d.readBody(header)
		if err != nil {
			metrics.SerializationErrors.WithLabelValues(string(errors.Code(err))).Inc()
			return nil, err
		}
		propagateVersion(msg, d.header.Version)
		metrics.MessagesDecoded.WithLabelValues(header.Kind.String()).Inc()
		return msg, nil
	}
}

// readBody grows its buffer as bytes arrive, so a forged length on a short
// stream costs no more memory than the stream holds.
func (d *Decoder) readBody(header MessageHeader) (logtypes.LogMsg, error) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	n, err := io.CopyN(buf, d.r, int64(header.Len))
	if n < int64(header.Len) {
		if err == nil || err == io.EOF {
			return nil, truncated("message body")
		}
		return nil, errors.Wrap(err, errors.ErrorTypeDecode, "read stream")
	}
	return decodeBody(header.Kind, buf.Bytes(), d.codecs, d.settings.mem)
}

func (d *Decoder) readFileHeader() error {
	var b [FileHeaderSize]byte
	if err := d.readFull(b[:]); err != nil {
		return err
	}
	header, err := ParseFileHeader(b[:])
	if err != nil {
		return err
	}
	warnOnVersionMismatch(d.settings.logger, header.Version)
	d.header = header
	d.inStream = true
	return nil
}

// readFull returns io.EOF only when no byte of b could be read.
func (d *Decoder) readFull(b []byte) error {
	_, err := io.ReadFull(d.r, b)
	switch err {
	case nil, io.EOF:
		return err
	case io.ErrUnexpectedEOF:
		return truncated("stream")
	default:
		return errors.Wrap(err, errors.ErrorTypeDecode, "read stream")
	}
}

func truncated(what string) error {
	return errors.Newf(errors.ErrorTypeDecode, "%s is truncated", what)
}

func warnOnVersionMismatch(l *zap.Logger, v logtypes.Version) {
	if !v.IsCompatibleWith(logtypes.CurrentVersion) {
		l.Warn("stream was written by a different SDK version",
			zap.Stringer("stream_version", v),
			zap.Stringer("reader_version", logtypes.CurrentVersion))
	}
}

// propagateVersion stamps the stream version onto store announcements.
func propagateVersion(msg logtypes.LogMsg, v logtypes.Version) {
	if m, ok := msg.(*logtypes.SetStoreInfo); ok {
		m.Info.StoreVersion = &v
	}
}
