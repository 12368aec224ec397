package errors

// ErrorCode categorizes a minikv failure. The set is intentionally closed:
// every *Error carries exactly one of these.
type ErrorCode string

const (
	// CodeIO covers any file-system or low-level read/write failure.
	CodeIO ErrorCode = "IO"

	// CodeStringDecode marks a key or value payload in the log that is not
	// valid UTF-8.
	CodeStringDecode ErrorCode = "STRING_DECODE"

	// CodeReprDecode marks a cmd_type byte that is not a recognized
	// variant, or any other header deserialization failure.
	CodeReprDecode ErrorCode = "REPR_DECODE"

	// CodeSliceDecode marks a header byte slice that is not exactly
	// HeaderSize bytes — a truncated header.
	CodeSliceDecode ErrorCode = "SLICE_DECODE"

	// CodeKeyNotFound marks Remove called on an absent key. Get reports a
	// missing key with ok == false, not with this code.
	CodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"

	// CodeInvalidDataPath marks a data directory that Open cannot create or
	// that exists as a non-directory. Compaction does not raise it.
	CodeInvalidDataPath ErrorCode = "INVALID_DATA_PATH"
)
