// Package json provides JSON serialization backed by goccy/go-json
package json

import (
	"io"

	gojson "github.com/goccy/go-json"
)

// Marshal is a drop-in replacement for encoding/json.Marshal
func Marshal(v interface{}) ([]byte, error) {
	return gojson.Marshal(v)
}

// Unmarshal is a drop-in replacement for encoding/json.Unmarshal
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

// MarshalIndent is a drop-in replacement for encoding/json.MarshalIndent
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}

// NewEncoder returns an encoder writing to w with HTML escaping disabled.
func NewEncoder(w io.Writer) *gojson.Encoder {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

// StreamingEncoder writes a sequence of values either as a JSON array or as
// line-delimited JSON.
type StreamingEncoder struct {
	writer      io.Writer
	encoder     *gojson.Encoder
	firstRecord bool
	isArray     bool
	pretty      bool
}

// NewStreamingEncoder creates a new streaming encoder
func NewStreamingEncoder(w io.Writer, isArray bool) (*StreamingEncoder, error) {
	se := &StreamingEncoder{
		writer:      w,
		encoder:     NewEncoder(w),
		firstRecord: true,
		isArray:     isArray,
	}

	if isArray {
		if _, err := w.Write([]byte{'['}); err != nil {
			return nil, err
		}
	}

	return se, nil
}

// SetPretty enables pretty printing
func (se *StreamingEncoder) SetPretty(indent string) {
	se.pretty = true
	se.encoder.SetIndent("", indent)
}

// Encode encodes a single value
func (se *StreamingEncoder) Encode(v interface{}) error {
	if se.isArray && !se.firstRecord {
		if _, err := se.writer.Write([]byte{','}); err != nil {
			return err
		}
	}
	se.firstRecord = false

	// Encode appends the newline that separates line-delimited values
	return se.encoder.Encode(v)
}

// Close finalizes the encoding
func (se *StreamingEncoder) Close() error {
	if !se.isArray {
		return nil
	}
	_, err := se.writer.Write([]byte{']', '\n'})
	return err
}
