package bencode

import (
	"reflect"
	"unicode/utf8"

	internal "github.com/prxssh/bencode/internal/bencode"
)

// Encoder writes Bencode values to an internal buffer. The zero value is not
// usable; construct one with NewEncoder. An Encoder is not safe for
// concurrent use.
//
// This keeps the teacher repository's encoder shape (a small struct wrapping
// an append-only buffer with one method per leaf kind) but replaces its
// hand-written type switch with the generic reflect-based driver (driver.go)
// so any host type described by spec §4.4 round-trips, not just the
// torrent-specific shapes the teacher's encoder originally handled.
type Encoder struct {
	sink *internal.Sink
}

// NewEncoder returns an Encoder with an empty output buffer.
func NewEncoder() *Encoder {
	return &Encoder{sink: internal.NewSink()}
}

// Bytes returns the bytes written so far.
func (e *Encoder) Bytes() []byte { return e.sink.Bytes() }

// Encode appends the Bencode form of v to the Encoder's buffer. See
// driver.go for the full host-type mapping (spec §4.4.1).
func (e *Encoder) Encode(v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return internal.New(internal.Message, "cannot encode untyped nil")
	}
	return encodeReflect(e, rv)
}

func (e *Encoder) encodeInt64(n int64) error {
	if err := e.sink.WriteToken(internal.TokenInteger); err != nil {
		return err
	}
	if err := e.sink.WriteInt(n); err != nil {
		return err
	}
	return e.sink.WriteToken(internal.TokenEnding)
}

func (e *Encoder) encodeUint(n uint64) error {
	if err := e.sink.WriteToken(internal.TokenInteger); err != nil {
		return err
	}
	if err := e.sink.WriteUint(n); err != nil {
		return err
	}
	return e.sink.WriteToken(internal.TokenEnding)
}

func (e *Encoder) encodeString(s string) error {
	if err := e.sink.WriteUint(uint64(len(s))); err != nil {
		return err
	}
	if err := e.sink.WriteToken(internal.TokenStringSeparator); err != nil {
		return err
	}
	return e.sink.WriteString(s)
}

// Marshal returns the Bencode encoding of v (spec §6's encode_to_bytes).
func Marshal(v any) ([]byte, error) {
	e := NewEncoder()
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// MarshalText returns the Bencode encoding of v reinterpreted as a UTF-8
// string (spec §6's encode_to_text), failing with InvalidUTF8 if any
// encoded byte string is not valid UTF-8.
func MarshalText(v any) (string, error) {
	b, err := Marshal(v)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", internal.New(internal.InvalidUTF8, "")
	}
	return string(b), nil
}
