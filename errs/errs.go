// Package errs defines the error kinds surfaced by this module's descriptor
// parser and read/write engines, following the sentinel-error-plus-wrap idiom
// used throughout the rest of this module.
package errs

import "fmt"

// Code identifies the kind of failure a descriptor or engine operation
// encountered. It is the Go equivalent of the reference implementation's
// error enumeration.
type Code uint8

const (
	// NoError indicates success. It is never attached to an *Error value;
	// operations that succeed return a nil error.
	NoError Code = iota
	InvalidIdxFile
	FieldNotFound
	TimeStepNotFound
	InvalidHzLevel
	InvalidVolume
	VolumeTooBig
	FileNotFound
	HeaderNotFound
	BlockNotFound
	BlockReadFailed
	BlockWriteFailed
	HeaderWriteFailed
	InvalidCompression
	CompressionUnsupported
	InvalidFormat
	ParseError
)

var codeNames = [...]string{
	"NoError",
	"InvalidIdxFile",
	"FieldNotFound",
	"TimeStepNotFound",
	"InvalidHzLevel",
	"InvalidVolume",
	"VolumeTooBig",
	"FileNotFound",
	"HeaderNotFound",
	"BlockNotFound",
	"BlockReadFailed",
	"BlockWriteFailed",
	"HeaderWriteFailed",
	"InvalidCompression",
	"CompressionUnsupported",
	"InvalidFormat",
	"ParseError",
}

// String returns the symbolic name of the error code.
func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}

	return fmt.Sprintf("Code(%d)", uint8(c))
}

// Error is the error type returned by this module's public APIs. It carries a
// Code for programmatic dispatch (via errors.Is against the sentinel values
// below) plus an optional human-readable message and wrapped cause.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Msg == "" && e.Err == nil {
		return e.Code.String()
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}

	return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
}

// Unwrap returns the wrapped cause, if any, enabling errors.Is/errors.As to
// see through to the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Code, so that callers
// can write errors.Is(err, errs.New(errs.FieldNotFound, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

// New creates an *Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Newf creates an *Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given code that wraps an underlying cause.
func Wrap(code Code, msg string, cause error) *Error {
	return &Error{Code: code, Msg: msg, Err: cause}
}

// sentinels for errors.Is comparisons against a bare code, e.g.
// errors.Is(err, errs.ErrFieldNotFound).
var (
	ErrInvalidIdxFile         = &Error{Code: InvalidIdxFile}
	ErrFieldNotFound          = &Error{Code: FieldNotFound}
	ErrTimeStepNotFound       = &Error{Code: TimeStepNotFound}
	ErrInvalidHzLevel         = &Error{Code: InvalidHzLevel}
	ErrInvalidVolume          = &Error{Code: InvalidVolume}
	ErrVolumeTooBig           = &Error{Code: VolumeTooBig}
	ErrFileNotFound           = &Error{Code: FileNotFound}
	ErrHeaderNotFound         = &Error{Code: HeaderNotFound}
	ErrBlockNotFound          = &Error{Code: BlockNotFound}
	ErrBlockReadFailed        = &Error{Code: BlockReadFailed}
	ErrBlockWriteFailed       = &Error{Code: BlockWriteFailed}
	ErrHeaderWriteFailed      = &Error{Code: HeaderWriteFailed}
	ErrInvalidCompression     = &Error{Code: InvalidCompression}
	ErrCompressionUnsupported = &Error{Code: CompressionUnsupported}
	ErrInvalidFormat          = &Error{Code: InvalidFormat}
	ErrParseError             = &Error{Code: ParseError}
)
