package cppdbc

import (
	"bytes"
	"io"
	"testing"
)

type nopReadCloser struct{ io.Reader }

func (nopReadCloser) Close() error { return nil }

func TestNewBlobBytesCopiesInput(t *testing.T) {
	src := []byte("hello")
	b := NewBlobBytes(src)
	src[0] = 'X'
	got, err := b.Bytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("expected blob to own a copy, got %q", got)
	}
}

func TestBlobRangeOutOfBoundsErrors(t *testing.T) {
	b := NewBlobBytes([]byte("hello"))
	if _, err := b.Range(0, 10); err == nil {
		t.Fatalf("expected error for out-of-bounds range")
	}
	if _, err := b.Range(3, 1); err == nil {
		t.Fatalf("expected error for start > end")
	}
	got, err := b.Range(1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "ell" {
		t.Fatalf("got %q, want ell", got)
	}
}

func TestBlobStreamBackedMaterializes(t *testing.T) {
	rc := nopReadCloser{Reader: bytes.NewReader([]byte("streamed-data"))}
	stream := StreamFromReader(rc)
	b := NewBlobStream(stream, int64(len("streamed-data")))
	got, err := b.Bytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "streamed-data" {
		t.Fatalf("got %q", got)
	}
}

func TestBlobStreamReadsBufferedBlob(t *testing.T) {
	b := NewBlobBytes([]byte("abc"))
	s := b.Stream()
	buf := make([]byte, 2)
	n, err := s.Read(buf)
	if err != nil || n != 2 {
		t.Fatalf("got n=%d err=%v", n, err)
	}
	n, err = s.Read(buf)
	if err != nil || n != 1 {
		t.Fatalf("got n=%d err=%v", n, err)
	}
	if _, err := s.Read(buf); err != io.EOF {
		t.Fatalf("expected io.EOF once exhausted, got %v", err)
	}
}
