package logtypes

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/google/uuid"
)

// MsgKind names a LogMsg variant. It doubles as the metrics label.
type MsgKind string

const (
	KindSetStoreInfo               MsgKind = "set_store_info"
	KindArrowMsg                   MsgKind = "arrow_msg"
	KindBlueprintActivationCommand MsgKind = "blueprint_activation_command"
)

// LogMsg is one message of a log stream. It is implemented by
// *SetStoreInfo, *ArrowMsg and *BlueprintActivationCommand only.
type LogMsg interface {
	Kind() MsgKind
	logMsg()
}

// SetStoreInfo announces a store. It precedes all other messages for that
// store.
type SetStoreInfo struct {
	RowID uuid.UUID `json:"row_id"`
	Info  StoreInfo `json:"info"`
}

// NewSetStoreInfo wraps info with a fresh time-ordered row id.
func NewSetStoreInfo(info StoreInfo) *SetStoreInfo {
	return &SetStoreInfo{RowID: newRowID(), Info: info}
}

func (*SetStoreInfo) Kind() MsgKind { return KindSetStoreInfo }
func (*SetStoreInfo) logMsg()       {}

// ArrowMsg carries one chunk as an Arrow record batch.
type ArrowMsg struct {
	StoreID StoreID
	ChunkID uuid.UUID
	Batch   arrow.Record
}

func (*ArrowMsg) Kind() MsgKind { return KindArrowMsg }
func (*ArrowMsg) logMsg()       {}

// Release drops the message's reference to its record.
func (m *ArrowMsg) Release() {
	if m.Batch != nil {
		m.Batch.Release()
	}
}

// BlueprintActivationCommand tells the viewer which blueprint to use.
type BlueprintActivationCommand struct {
	BlueprintID StoreID `json:"blueprint_id"`
	// MakeActive switches to the blueprint immediately.
	MakeActive bool `json:"make_active"`
	// MakeDefault makes it the fallback for the application.
	MakeDefault bool `json:"make_default"`
}

// MakeDefault registers blueprintID as the application default without
// activating it.
func MakeDefault(blueprintID StoreID) *BlueprintActivationCommand {
	return &BlueprintActivationCommand{BlueprintID: blueprintID, MakeDefault: true}
}

// MakeActive activates blueprintID and also makes it the default.
func MakeActive(blueprintID StoreID) *BlueprintActivationCommand {
	return &BlueprintActivationCommand{BlueprintID: blueprintID, MakeActive: true, MakeDefault: true}
}

func (*BlueprintActivationCommand) Kind() MsgKind { return KindBlueprintActivationCommand }
func (*BlueprintActivationCommand) logMsg()       {}

// StoreIDOf returns the store a message belongs to.
func StoreIDOf(msg LogMsg) StoreID {
	switch m := msg.(type) {
	case *SetStoreInfo:
		return m.Info.StoreID
	case *ArrowMsg:
		return m.StoreID
	case *BlueprintActivationCommand:
		return m.BlueprintID
	default:
		return StoreID{}
	}
}

// SetStoreID moves a message to another store.
func SetStoreID(msg LogMsg, id StoreID) {
	switch m := msg.(type) {
	case *SetStoreInfo:
		m.Info.StoreID = id
	case *ArrowMsg:
		m.StoreID = id
	case *BlueprintActivationCommand:
		m.BlueprintID = id
	}
}

// newRowID returns a UUIDv7, falling back to a random one if the clock
// source fails.
func newRowID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
