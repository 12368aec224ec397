// Package errors defines minikv's closed error taxonomy: IO, StringDecode,
// ReprDecode, SliceDecode, KeyNotFound, and InvalidDataPath (spec.md §7).
// The store's Open, Get, Set, Remove and Compact return their failures as a
// *Error carrying one of these codes, built with the same fluent With*
// pattern the rest of the codebase's dependency stack favors for structured
// error context. Two kinds of error are not *Error values: the engine
// façade's ErrEngineClosed, and the raw file-close errors Store.Close
// returns.
package errors

import stdErrors "errors"

// Is reports whether err is (or wraps) a minikv error with the given code.
func Is(err error, code ErrorCode) bool {
	var e *Error
	if !stdErrors.As(err, &e) {
		return false
	}
	return e.code == code
}

// As extracts a *Error from err's chain, if present.
func As(err error) (*Error, bool) {
	var e *Error
	if stdErrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// NewIO wraps a file-system or low-level read/write failure.
func NewIO(cause error, msg string) *Error {
	return New(cause, CodeIO, msg)
}

// NewStringDecode reports that a key or value payload is not valid UTF-8.
func NewStringDecode(cause error, msg string) *Error {
	return New(cause, CodeStringDecode, msg)
}

// NewReprDecode reports an unrecognized cmd_type byte or other header
// deserialization failure.
func NewReprDecode(cause error, msg string) *Error {
	return New(cause, CodeReprDecode, msg)
}

// NewSliceDecode reports a header byte slice that isn't exactly HeaderSize
// bytes long — a truncated header.
func NewSliceDecode(cause error, msg string) *Error {
	return New(cause, CodeSliceDecode, msg)
}

// NewKeyNotFound reports that Remove found no entry for a key.
func NewKeyNotFound(key string) *Error {
	return New(nil, CodeKeyNotFound, "key not found").WithKey(key)
}

// NewInvalidDataPath reports that Open could not create the data directory,
// or found a non-directory at its path.
func NewInvalidDataPath(path string) *Error {
	return New(nil, CodeInvalidDataPath, "could not resolve data directory").WithPath(path)
}
