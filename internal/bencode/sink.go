package bencode

import (
	"bytes"
	"strconv"
	"unicode/utf8"
)

// Sink is an append-only byte buffer with the small set of writes the
// encoder needs. It wraps bytes.Buffer rather than an arbitrary io.Writer so
// that MarshalText (pkg/bencode) can validate the finished output as UTF-8
// without an intermediate copy.
type Sink struct {
	buf bytes.Buffer
}

// NewSink returns an empty Sink.
func NewSink() *Sink { return &Sink{} }

// WriteByte appends a single byte.
func (s *Sink) WriteByte(b byte) error { return s.buf.WriteByte(b) }

// WriteToken appends a single reserved marker byte.
func (s *Sink) WriteToken(t Token) error { return s.buf.WriteByte(t.Byte()) }

// WriteBytes appends b verbatim.
func (s *Sink) WriteBytes(b []byte) error {
	_, err := s.buf.Write(b)
	return err
}

// WriteString appends s verbatim, without copying through a []byte.
func (s *Sink) WriteString(str string) error {
	_, err := s.buf.WriteString(str)
	return err
}

// WriteInt appends the base-10 representation of n.
func (s *Sink) WriteInt(n int64) error {
	var tmp [32]byte
	return s.WriteBytes(strconv.AppendInt(tmp[:0], n, 10))
}

// WriteUint appends the base-10 representation of n.
func (s *Sink) WriteUint(n uint64) error {
	var tmp [32]byte
	return s.WriteBytes(strconv.AppendUint(tmp[:0], n, 10))
}

// Bytes returns the accumulated output. The caller owns the returned slice.
func (s *Sink) Bytes() []byte { return s.buf.Bytes() }

// Len reports the number of bytes written so far.
func (s *Sink) Len() int { return s.buf.Len() }

// ValidUTF8 reports whether the accumulated output is well-formed UTF-8.
func (s *Sink) ValidUTF8() bool { return utf8.Valid(s.buf.Bytes()) }
