package logtypes

import (
	"fmt"
	"runtime"
)

// StoreSourceKind says what kind of program produced a store.
type StoreSourceKind string

const (
	SourceUnknown   StoreSourceKind = "unknown"
	SourceCSDK      StoreSourceKind = "c_sdk"
	SourcePythonSDK StoreSourceKind = "python_sdk"
	SourceRustSDK   StoreSourceKind = "rust_sdk"
	SourceGoSDK     StoreSourceKind = "go_sdk"
	SourceFile      StoreSourceKind = "file"
	SourceViewer    StoreSourceKind = "viewer"
	SourceOther     StoreSourceKind = "other"
)

// StoreSource describes the producer of a store.
type StoreSource struct {
	Kind StoreSourceKind `json:"kind"`
	// Version is the language or toolchain version for SDK sources.
	Version string `json:"version,omitempty"`
	// LLVMVersion is set for Rust sources only.
	LLVMVersion string `json:"llvm_version,omitempty"`
	// Detail holds the file source for SourceFile and free text for
	// SourceOther.
	Detail string `json:"detail,omitempty"`
}

// GoSDKSource describes this SDK running under the current Go toolchain.
func GoSDKSource() StoreSource {
	return StoreSource{Kind: SourceGoSDK, Version: runtime.Version()}
}

// FileSource describes data loaded from a file by the given loader.
func FileSource(fileSource string) StoreSource {
	return StoreSource{Kind: SourceFile, Detail: fileSource}
}

func (s StoreSource) String() string {
	switch s.Kind {
	case SourceCSDK:
		return "C SDK"
	case SourcePythonSDK:
		return fmt.Sprintf("Python %s SDK", s.Version)
	case SourceRustSDK:
		return fmt.Sprintf("Rust SDK (rustc %s)", s.Version)
	case SourceGoSDK:
		return fmt.Sprintf("Go SDK (%s)", s.Version)
	case SourceFile:
		if s.Detail == "cli" || s.Detail == "" {
			return "File via CLI"
		}
		return "File via " + s.Detail
	case SourceViewer:
		return "Viewer-generated"
	case SourceOther:
		return fmt.Sprintf("%q", s.Detail)
	default:
		return "Unknown"
	}
}

// StoreInfo is the metadata announced at the start of every store.
type StoreInfo struct {
	ApplicationID ApplicationID `json:"application_id"`
	StoreID       StoreID       `json:"store_id"`
	// ClonedFrom is set when the store was cloned from another one.
	ClonedFrom  *StoreID    `json:"cloned_from,omitempty"`
	StoreSource StoreSource `json:"store_source"`
	// StoreVersion is the SDK version that wrote the store. Decoders fill
	// it in from the stream header.
	StoreVersion *Version `json:"store_version,omitempty"`
}

// IsAppDefaultBlueprint reports whether this is the default blueprint of
// its application, which shares the application's id.
func (i StoreInfo) IsAppDefaultBlueprint() bool {
	return string(i.ApplicationID) == i.StoreID.ID
}
