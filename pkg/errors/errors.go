// Package errors provides structured error handling for the SDK.
//
// Every fallible operation returns an *Error whose Type is one of the SDK
// error codes below. Callers branch on the code with IsType or Code; the
// message is for humans.
//
//	arr, err := codec.ToArrow(mem, nil, 3)
//	if errors.IsType(err, errors.ErrorTypeUnexpectedNullArgument) {
//	    // caller bug: non-zero count with no instances
//	}
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeInternal represents internal invariant violations
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeUnexpectedNullArgument is returned when a non-zero instance
	// count is paired with a nil instance slice
	ErrorTypeUnexpectedNullArgument ErrorType = "unexpected_null_argument"
	// ErrorTypeInvalidArgument represents malformed caller input
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"
	// ErrorTypePartitionLengthMismatch is returned when partition lengths do
	// not sum to a component's instance count
	ErrorTypePartitionLengthMismatch ErrorType = "partition_length_mismatch"
	// ErrorTypeArrowDataTypeMismatch is returned when an array does not have
	// the datatype a codec expects
	ErrorTypeArrowDataTypeMismatch ErrorType = "arrow_datatype_mismatch"
	// ErrorTypeInvalidComponent represents structurally broken component data
	ErrorTypeInvalidComponent ErrorType = "invalid_component"
	// ErrorTypeFileOpenFailure represents file read errors
	ErrorTypeFileOpenFailure ErrorType = "file_open_failure"
	// ErrorTypeEncode represents message encoding errors
	ErrorTypeEncode ErrorType = "encode"
	// ErrorTypeDecode represents message decoding errors
	ErrorTypeDecode ErrorType = "decode"
	// ErrorTypeCompression represents compression codec errors
	ErrorTypeCompression ErrorType = "compression"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates a new error with a formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the error is of the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// Code returns the type of the outermost *Error in err's chain, or
// ErrorTypeInternal for foreign errors and "" for nil.
func Code(err error) ErrorType {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return ErrorTypeInternal
	}
	return e.Type
}

// captureStack captures the current call stack
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
