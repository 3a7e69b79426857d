package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logtypes"
)

// MessageKind tags the body that follows a MessageHeader.
type MessageKind uint64

const (
	// KindEnd closes a stream. Its body is empty.
	KindEnd                        MessageKind = 0
	KindSetStoreInfo               MessageKind = 1
	KindArrowMsg                   MessageKind = 2
	KindBlueprintActivationCommand MessageKind = 3
)

func (k MessageKind) String() string {
	switch k {
	case KindEnd:
		return "end"
	case KindSetStoreInfo:
		return string(logtypes.KindSetStoreInfo)
	case KindArrowMsg:
		return string(logtypes.KindArrowMsg)
	case KindBlueprintActivationCommand:
		return string(logtypes.KindBlueprintActivationCommand)
	default:
		return fmt.Sprintf("kind(%d)", uint64(k))
	}
}

func kindOf(msg logtypes.LogMsg) (MessageKind, error) {
	switch msg.(type) {
	case *logtypes.SetStoreInfo:
		return KindSetStoreInfo, nil
	case *logtypes.ArrowMsg:
		return KindArrowMsg, nil
	case *logtypes.BlueprintActivationCommand:
		return KindBlueprintActivationCommand, nil
	default:
		return 0, errors.Newf(errors.ErrorTypeEncode, "unsupported message type %T", msg)
	}
}

// MessageHeaderSize is the encoded size of a MessageHeader.
const MessageHeaderSize = 16

// MaxMessageLen bounds the body length a decoder accepts.
const MaxMessageLen = 1 << 31

// MessageHeader precedes every message body: the kind and the body length,
// both little-endian uint64.
type MessageHeader struct {
	Kind MessageKind
	Len  uint64
}

// Bytes encodes the header.
func (h MessageHeader) Bytes() []byte {
	out := make([]byte, MessageHeaderSize)
	binary.LittleEndian.PutUint64(out[0:8], uint64(h.Kind))
	binary.LittleEndian.PutUint64(out[8:16], h.Len)
	return out
}

// ParseMessageHeader decodes and validates a header.
func ParseMessageHeader(b []byte) (MessageHeader, error) {
	if len(b) < MessageHeaderSize {
		return MessageHeader{}, errors.Newf(errors.ErrorTypeDecode,
			"message header needs %d bytes, got %d", MessageHeaderSize, len(b))
	}
	h := MessageHeader{
		Kind: MessageKind(binary.LittleEndian.Uint64(b[0:8])),
		Len:  binary.LittleEndian.Uint64(b[8:16]),
	}
	if h.Kind > KindBlueprintActivationCommand {
		return MessageHeader{}, errors.Newf(errors.ErrorTypeDecode, "unknown message kind %d", uint64(h.Kind))
	}
	if h.Kind == KindEnd && h.Len != 0 {
		return MessageHeader{}, errors.Newf(errors.ErrorTypeDecode, "end marker with %d byte body", h.Len)
	}
	if h.Len > MaxMessageLen {
		return MessageHeader{}, errors.Newf(errors.ErrorTypeDecode, "message of %d bytes exceeds limit", h.Len)
	}
	return h, nil
}
