// Package errors provides structured error handling for richtext.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindIndex indicates an out-of-range child access.
	KindIndex
	// KindMissingField indicates a required field absent from wire data.
	KindMissingField
	// KindDecode indicates malformed serialized data.
	KindDecode
	// KindFont indicates a font loading or metrics failure.
	KindFont
	// KindRender indicates a drawing error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindIndex:
		return "index"
	case KindMissingField:
		return "missing_field"
	case KindDecode:
		return "decode"
	case KindFont:
		return "font"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Error represents a structured error raised while reading or drawing
// attributed text.
type Error struct {
	// Op is the operation that failed (e.g., "attributedstring.Shard").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Backing names the wire representation being read ("map" or
	// "mapbuffer"), if applicable.
	Backing string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Backing != "" {
		return fmt.Sprintf("%s [%s] backing=%s: %v", e.Op, e.Kind, e.Backing, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "span.DrawBackground").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// IndexError reports a child access or text position outside [0, Count).
type IndexError struct {
	// Index is the requested position.
	Index int
	// Count is the number of valid indices.
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Count)
}

// MissingFieldError reports a required field that is absent from the
// backing data.
type MissingFieldError struct {
	// Field is the map key or the numeric buffer key rendered as a string.
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q missing", e.Field)
}

// DecodeError represents a value of an unexpected shape in wire data.
type DecodeError struct {
	// Field is the key being decoded.
	Field string
	// DataType is the expected type name.
	DataType string
	// Got is the actual value received.
	Got any
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s from field %s: got %T", e.DataType, e.Field, e.Got)
}

// ErrorHandler receives errors reported by richtext.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
