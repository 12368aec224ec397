// Package record defines minikv's on-disk log record format (spec.md §3,
// §4.1): a fixed-size header followed by the raw key and value bytes, with
// all multi-byte integers encoded big-endian.
package record

import (
	"encoding/binary"
	"unicode/utf8"

	minikverrors "minikv/pkg/errors"
)

// CmdType identifies what kind of record a log entry is.
type CmdType uint8

const (
	// CmdPut marks a record that stores a key/value pair.
	CmdPut CmdType = 1
	// CmdDel marks a tombstone record for a key.
	CmdDel CmdType = 2
)

func (c CmdType) String() string {
	switch c {
	case CmdPut:
		return "PUT"
	case CmdDel:
		return "DEL"
	default:
		return "UNKNOWN"
	}
}

const (
	// WordSize is the fixed width, in bytes, of the key_len and value_len
	// header fields. spec.md §6 recommends fixing this at 8 regardless of
	// platform pointer width, for file portability.
	WordSize = 8

	// HeaderSize is the total size of a record's header:
	// key_len (WordSize) + value_len (WordSize) + cmd_type (1 byte).
	HeaderSize = 2*WordSize + 1
)

// Header is the fixed-size prefix of every log record.
type Header struct {
	KeyLen   uint64
	ValueLen uint64
	CmdType  CmdType
}

// Size returns the total encoded size of the record this header describes.
func (h Header) Size() int64 {
	return int64(HeaderSize) + int64(h.KeyLen) + int64(h.ValueLen)
}

// Record is the in-memory representation of one log entry.
type Record struct {
	CmdType CmdType
	Key     string
	Value   string
}

// NewPut builds a PUT record for key/value.
func NewPut(key, value string) Record {
	return Record{CmdType: CmdPut, Key: key, Value: value}
}

// NewDel builds a DEL (tombstone) record for key.
func NewDel(key string) Record {
	return Record{CmdType: CmdDel, Key: key}
}

// EncodedSize returns the number of bytes Encode will produce for r.
func (r Record) EncodedSize() int64 {
	return int64(HeaderSize) + int64(len(r.Key)) + int64(len(r.Value))
}

// Encode serializes r to its on-disk layout:
// [key_len: WordSize BE][value_len: WordSize BE][cmd_type: 1 byte][key][value].
func (r Record) Encode() []byte {
	buf := make([]byte, r.EncodedSize())

	binary.BigEndian.PutUint64(buf[0:WordSize], uint64(len(r.Key)))
	binary.BigEndian.PutUint64(buf[WordSize:2*WordSize], uint64(len(r.Value)))
	buf[2*WordSize] = byte(r.CmdType)

	n := copy(buf[HeaderSize:], r.Key)
	copy(buf[HeaderSize+n:], r.Value)

	return buf
}

// DecodeHeader parses the fixed-size header fields from buf, which must be
// exactly HeaderSize bytes. It does not interpret the key/value payload —
// that is the log engine's job, since only it can validate UTF-8 against
// the declared lengths (spec.md §4.1).
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) != HeaderSize {
		return Header{}, minikverrors.NewSliceDecode(nil, "header slice has wrong length").
			WithDetail("expected", HeaderSize).
			WithDetail("got", len(buf))
	}

	cmdType := CmdType(buf[2*WordSize])
	if cmdType != CmdPut && cmdType != CmdDel {
		return Header{}, minikverrors.NewReprDecode(nil, "unrecognized cmd_type byte").
			WithDetail("cmd_type", buf[2*WordSize])
	}

	return Header{
		KeyLen:   binary.BigEndian.Uint64(buf[0:WordSize]),
		ValueLen: binary.BigEndian.Uint64(buf[WordSize : 2*WordSize]),
		CmdType:  cmdType,
	}, nil
}

// DecodeString validates that payload is well-formed UTF-8 and returns it
// as a string, or a StringDecode error.
func DecodeString(payload []byte) (string, error) {
	if !utf8.Valid(payload) {
		return "", minikverrors.NewStringDecode(nil, "payload is not valid UTF-8")
	}
	return string(payload), nil
}
