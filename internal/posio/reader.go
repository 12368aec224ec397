// Package posio provides buffered, position-tracking wrappers around an
// *os.File: a Reader used for seek-then-read access into the log, and a
// Writer used for sequential append (spec.md §4.2).
package posio

import (
	"bufio"
	"io"
	"os"
)

// Reader wraps a read-only file handle. Its Pos field always equals the
// absolute offset from which the next byte will be read — callers rely on
// this to know exactly where a record begins.
type Reader struct {
	file *os.File
	buf  *bufio.Reader
	Pos  int64
}

// NewReader opens path read-only and wraps it in a position-tracking
// buffered reader positioned at the start of the file.
func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{file: f, buf: bufio.NewReader(f)}, nil
}

// Read fills buf from the current position, advancing Pos by the number of
// bytes read.
func (r *Reader) Read(buf []byte) (int, error) {
	n, err := io.ReadFull(r.buf, buf)
	r.Pos += int64(n)
	return n, err
}

// Seek moves the reader to an absolute offset, discarding any buffered
// bytes, and updates Pos.
func (r *Reader) Seek(offset int64) error {
	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	r.buf.Reset(r.file)
	r.Pos = offset
	return nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.file.Close()
}
