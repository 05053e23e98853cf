package cppdbc

import (
	"io"
)

// InputStream is a pull-based byte source backing a BLOB parameter or
// column value. Read follows io.Reader semantics (io.EOF once exhausted).
type InputStream interface {
	Read(buf []byte) (n int, err error)
	Skip(n int64) (int64, error)
	Close() error
}

// streamFromReader adapts any io.ReadCloser into an InputStream.
type streamFromReader struct {
	rc io.ReadCloser
}

// StreamFromReader wraps an io.ReadCloser as an InputStream.
func StreamFromReader(rc io.ReadCloser) InputStream {
	return &streamFromReader{rc: rc}
}

func (s *streamFromReader) Read(buf []byte) (int, error) { return s.rc.Read(buf) }

func (s *streamFromReader) Skip(n int64) (int64, error) {
	if seeker, ok := s.rc.(io.Seeker); ok {
		return seeker.Seek(n, io.SeekCurrent)
	}
	return io.CopyN(io.Discard, s.rc, n)
}

func (s *streamFromReader) Close() error { return s.rc.Close() }

// Blob is a byte buffer with a length, addressable by range. It is backed
// either by an in-memory buffer or by an InputStream that yields bytes on
// demand; the two are mutually exclusive.
type Blob struct {
	buf    []byte
	stream InputStream
	size   int64
}

// NewBlobBytes builds a Blob backed by an in-memory buffer. The slice is
// copied, matching the "slot owns a copy" rule for variable-size payloads
// (spec.md §3, parameter bind slot).
func NewBlobBytes(b []byte) *Blob {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Blob{buf: cp, size: int64(len(cp))}
}

// NewBlobStream builds a Blob backed by a pull-based stream. size is the
// caller-declared total length; it is not independently verified.
func NewBlobStream(s InputStream, size int64) *Blob {
	return &Blob{stream: s, size: size}
}

// Len returns the blob's declared length in bytes.
func (b *Blob) Len() int64 { return b.size }

// Bytes materializes the entire blob into memory, reading from the stream
// if it is stream-backed.
func (b *Blob) Bytes() ([]byte, error) {
	if b.buf != nil {
		return b.buf, nil
	}
	out := make([]byte, 0, b.size)
	chunk := make([]byte, 32*1024)
	for {
		n, err := b.stream.Read(chunk)
		if n > 0 {
			out = append(out, chunk[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, WrapError(CodeProtocolError, err, "reading blob stream")
		}
	}
	return out, nil
}

// Range returns the byte slice [start, end) of the blob, materializing an
// in-memory copy if the blob is stream-backed.
func (b *Blob) Range(start, end int64) ([]byte, error) {
	all, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	if start < 0 || end > int64(len(all)) || start > end {
		return nil, NewError(CodeParameterError, "blob range [%d,%d) out of bounds for length %d", start, end, len(all))
	}
	return all[start:end], nil
}

// Stream returns an InputStream over the blob's contents, wrapping the
// in-memory buffer in a reader when the blob is buffer-backed.
func (b *Blob) Stream() InputStream {
	if b.stream != nil {
		return b.stream
	}
	return &bufStream{data: b.buf}
}

type bufStream struct {
	data []byte
	pos  int
}

func (s *bufStream) Read(buf []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(buf, s.data[s.pos:])
	s.pos += n
	return n, nil
}

func (s *bufStream) Skip(n int64) (int64, error) {
	remaining := int64(len(s.data) - s.pos)
	if n > remaining {
		n = remaining
	}
	s.pos += int(n)
	return n, nil
}

func (s *bufStream) Close() error { return nil }
