// Package bytesio provides the blocking byte source/sink abstraction that
// package varint, leaf, and streaming read and write through. It is the
// Go analogue of original_source/structstream/io.hpp's IOIntf: every
// implementation either fully satisfies a read/write or returns an error,
// there is no short read/write.
package bytesio

import (
	"errors"
	"io"

	"github.com/dstream-go/structstream/errs"
)

// Source is a blocking byte reader. Read fills p completely or returns an
// error; a source that runs out of data mid-read returns errs.ErrEndOfStream.
type Source interface {
	// Read fills p completely from the source.
	Read(p []byte) error
	// Skip advances the source by n bytes without copying them out.
	Skip(n int) error
}

// Sink is a blocking byte writer. Write either writes all of p or returns
// an error.
type Sink interface {
	Write(p []byte) error
}

// MemSource reads from an in-memory byte slice.
type MemSource struct {
	buf []byte
	pos int
}

// NewMemSource wraps buf for reading. The returned MemSource does not copy
// buf; the caller must not mutate it while reading is in progress.
func NewMemSource(buf []byte) *MemSource {
	return &MemSource{buf: buf}
}

// Read implements Source.
func (s *MemSource) Read(p []byte) error {
	if len(s.buf)-s.pos < len(p) {
		return errs.ErrEndOfStream
	}

	copy(p, s.buf[s.pos:])
	s.pos += len(p)

	return nil
}

// Skip implements Source.
func (s *MemSource) Skip(n int) error {
	if n < 0 {
		panic("bytesio: negative skip")
	}

	if len(s.buf)-s.pos < n {
		return errs.ErrEndOfStream
	}

	s.pos += n

	return nil
}

// Pos returns the current read offset, useful for hash-range bookkeeping
// outside of a HashSource tee.
func (s *MemSource) Pos() int {
	return s.pos
}

// Remaining reports how many unread bytes are left in the source.
func (s *MemSource) Remaining() int {
	return len(s.buf) - s.pos
}

// MemSink writes into a growable pooled byte buffer.
type MemSink struct {
	buf byteWriter
}

// byteWriter is satisfied by *pool.ByteBuffer; declared locally so that
// bytesio does not import package pool.
type byteWriter interface {
	Write(p []byte) (int, error)
	Bytes() []byte
}

// NewMemSink wraps any pooled-buffer-shaped writer (such as a
// *pool.ByteBuffer) for use as a Sink.
func NewMemSink(buf byteWriter) *MemSink {
	return &MemSink{buf: buf}
}

// Write implements Sink.
func (s *MemSink) Write(p []byte) error {
	_, err := s.buf.Write(p)
	return err
}

// Bytes returns the bytes written so far.
func (s *MemSink) Bytes() []byte {
	return s.buf.Bytes()
}

// FileSource reads from any io.Reader using io.ReadFull, so partial reads
// from the underlying reader are transparently completed.
type FileSource struct {
	r io.Reader
}

// NewFileSource wraps r (typically an *os.File, but any io.Reader works).
func NewFileSource(r io.Reader) *FileSource {
	return &FileSource{r: r}
}

// Read implements Source.
func (s *FileSource) Read(p []byte) error {
	_, err := io.ReadFull(s.r, p)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return errs.ErrEndOfStream
		}

		return errors.Join(errs.ErrIO, err)
	}

	return nil
}

// Skip implements Source. It discards n bytes; if the underlying reader is
// an io.Seeker it seeks instead of copying.
func (s *FileSource) Skip(n int) error {
	if seeker, ok := s.r.(io.Seeker); ok {
		if _, err := seeker.Seek(int64(n), io.SeekCurrent); err != nil {
			return errors.Join(errs.ErrIO, err)
		}

		return nil
	}

	_, err := io.CopyN(io.Discard, s.r, int64(n))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return errs.ErrEndOfStream
		}

		return errors.Join(errs.ErrIO, err)
	}

	return nil
}

// FileSink writes to any io.Writer.
type FileSink struct {
	w io.Writer
}

// NewFileSink wraps w (typically an *os.File, but any io.Writer works).
func NewFileSink(w io.Writer) *FileSink {
	return &FileSink{w: w}
}

// Write implements Sink.
func (s *FileSink) Write(p []byte) error {
	n, err := s.w.Write(p)
	if err != nil {
		return errors.Join(errs.ErrIO, err)
	}

	if n != len(p) {
		return errors.Join(errs.ErrIO, io.ErrShortWrite)
	}

	return nil
}
