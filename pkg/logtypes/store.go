package logtypes

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
)

// StoreKind distinguishes recordings from blueprints.
type StoreKind uint8

const (
	// StoreKindRecording is a store of logged data.
	StoreKindRecording StoreKind = iota
	// StoreKindBlueprint is a store of viewer layout.
	StoreKindBlueprint
)

func (k StoreKind) String() string {
	switch k {
	case StoreKindRecording:
		return "Recording"
	case StoreKindBlueprint:
		return "Blueprint"
	default:
		return fmt.Sprintf("StoreKind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind by name.
func (k StoreKind) MarshalText() ([]byte, error) {
	switch k {
	case StoreKindRecording, StoreKindBlueprint:
		return []byte(k.String()), nil
	}
	return nil, errors.Newf(errors.ErrorTypeInvalidArgument, "unknown store kind %d", uint8(k))
}

// UnmarshalText decodes a kind written by MarshalText.
func (k *StoreKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Recording":
		*k = StoreKindRecording
	case "Blueprint":
		*k = StoreKindBlueprint
	default:
		return errors.Newf(errors.ErrorTypeDecode, "unknown store kind %q", text)
	}
	return nil
}

const emptyRecordingID = "<EMPTY>"

// StoreID identifies a recording or blueprint store.
type StoreID struct {
	Kind StoreKind `json:"kind"`
	ID   string    `json:"id"`
}

// RandomStoreID returns a store id backed by a fresh random UUID.
func RandomStoreID(kind StoreKind) StoreID {
	return StoreIDFromUUID(kind, uuid.New())
}

// StoreIDFromUUID uses the simple (undashed) hex form of u as the id.
func StoreIDFromUUID(kind StoreKind, u uuid.UUID) StoreID {
	return StoreID{Kind: kind, ID: simpleUUID(u)}
}

// StoreIDFromString wraps a caller-chosen id.
func StoreIDFromString(kind StoreKind, id string) StoreID {
	return StoreID{Kind: kind, ID: id}
}

// EmptyRecording is the placeholder recording used before one is set.
func EmptyRecording() StoreID {
	return StoreID{Kind: StoreKindRecording, ID: emptyRecordingID}
}

// IsEmptyRecording reports whether id is the EmptyRecording placeholder.
func (id StoreID) IsEmptyRecording() bool {
	return id.Kind == StoreKindRecording && id.ID == emptyRecordingID
}

// String returns the bare id; the kind is not part of it.
func (id StoreID) String() string {
	return id.ID
}

// ApplicationID names the application that produced a store. Recordings
// of the same application share blueprints.
type ApplicationID string

// UnknownApplicationID is used when no application id was given.
func UnknownApplicationID() ApplicationID {
	return "unknown_app_id"
}

// RandomApplicationID returns "app_" followed by a random UUID.
func RandomApplicationID() ApplicationID {
	return ApplicationID("app_" + simpleUUID(uuid.New()))
}

func (a ApplicationID) String() string {
	return string(a)
}

func simpleUUID(u uuid.UUID) string {
	return strings.ReplaceAll(u.String(), "-", "")
}
