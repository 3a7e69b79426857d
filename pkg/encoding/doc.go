// Package encoding reads and writes log message streams.
//
// A stream is a 12-byte file header (magic "RRF2", writer version,
// encoding options) followed by messages, each a 16-byte little-endian
// header (kind, body length) and a body. A message of kind End closes the
// stream; another stream may follow immediately.
//
// Control messages are JSON. ArrowMsg bodies carry a JSON envelope with
// the chunk id, compression and uncompressed size, followed by the chunk
// as an Arrow IPC stream, compressed with LZ4 or Zstd if requested.
//
//	enc, err := encoding.NewEncoder(f, encoding.OptionsLZ4, encoding.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	for _, msg := range msgs {
//	    if err := enc.Append(ctx, msg); err != nil {
//	        return err
//	    }
//	}
//	return enc.Finish()
//
// Decoder reads from an io.Reader; StreamDecoder accepts bytes as they
// arrive.
package encoding
