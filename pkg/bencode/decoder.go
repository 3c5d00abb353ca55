package bencode

import (
	"log/slog"

	internal "github.com/prxssh/bencode/internal/bencode"
)

// Decoder reads Bencode values from an in-memory byte slice. A Decoder is
// not safe for concurrent use by multiple goroutines; construct one per
// goroutine (it is cheap).
//
// Decoder keeps the teacher repository's original shape (a cursor over a
// []byte with conservative nesting/length limits) but now drives the full
// error taxonomy of spec §7 and, via DecodeValue, the generic struct/
// variant/optional type driver of spec §4.4 instead of only ever returning
// int64/string/[]any/map[string]any.
type Decoder struct {
	cur       *internal.Cursor
	maxDepth  int
	maxStrLen int64
	logger    *slog.Logger
}

// NewDecoder returns a new Decoder reading from data with conservative
// limits. The returned Decoder aliases data for zero-copy byte-string
// decodes; the caller must not mutate data while the Decoder (or any value
// it returned a []byte from) is in use.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		cur:       internal.NewCursor(data),
		maxDepth:  2048,     // protects against pathological nesting
		maxStrLen: 16 << 20, // 16 MiB
	}
}

// SetLogger configures an optional debug logger. When set, the Decoder logs
// at slog.LevelDebug each list and dictionary it enters while decoding in
// self-describing mode (Decode, and the parts of DecodeValue that fall back
// to it); it does not log leaving a container, typed-mode containers, or
// errors. When nil (the default), the Decoder is silent. This mirrors the ambient
// logging posture described in SPEC_FULL.md §2.1: a library stays quiet by
// default, a caller that wants the teacher's pkg/utils/logging-style
// tracing opts in explicitly.
func (d *Decoder) SetLogger(l *slog.Logger) { d.logger = l }

func (d *Decoder) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}

// Decode parses and returns the next Bencode value from the input in
// self-describing mode (spec §4.4): the result is one of int64, uint64,
// string, []any, or map[string]any. It does not require the input to be
// fully consumed; callers that want that guarantee should use Unmarshal or
// DecodeAny.
func (d *Decoder) Decode() (any, error) { return d.decodeAny(0) }

// DecodeValue decodes the next Bencode value directly into v, which must be
// a non-nil pointer (spec §4.4's typed mode). See driver.go for the full
// host-type mapping.
func (d *Decoder) DecodeValue(v any) error {
	return decodeInto(d, v)
}

// decodeAny is the recursive self-describing decoder. depth is the current
// nesting level.
func (d *Decoder) decodeAny(depth int) (any, error) {
	if depth > d.maxDepth {
		return nil, internal.New(internal.Message, "max nesting depth exceeded")
	}

	b, err := d.cur.Peek(0)
	if err != nil {
		return nil, internal.EOFErr
	}

	switch {
	case isASCIIDigit(b):
		raw, err := internal.ReadByteString(d.cur, d.maxStrLen)
		if err != nil {
			return nil, err
		}
		return string(raw), nil

	case b == internal.TokenInteger.Byte():
		d.cur.AdvanceOne()
		neg, err := d.cur.Peek(0)
		if err != nil {
			return nil, internal.EOFErr
		}
		if neg == internal.TokenMinus.Byte() {
			return internal.ParseSigned(d.cur, internal.TokenEnding, 64)
		}
		return internal.ParseUnsigned(d.cur, internal.TokenEnding, 64)

	case b == internal.TokenList.Byte():
		d.cur.AdvanceOne()
		d.debug("enter list", "depth", depth)
		return d.decodeList(depth + 1)

	case b == internal.TokenDict.Byte():
		d.cur.AdvanceOne()
		d.debug("enter dict", "depth", depth)
		return d.decodeDict(depth + 1)

	default:
		return nil, internal.New(internal.UnknownType, "leading byte %q", b)
	}
}

func (d *Decoder) decodeList(depth int) ([]any, error) {
	var list []any

	for {
		next, err := d.cur.Peek(0)
		if err != nil {
			return nil, internal.EOFErr
		}
		if next == internal.TokenEnding.Byte() {
			d.cur.AdvanceOne()
			return list, nil
		}

		v, err := d.decodeAny(depth)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
}

func (d *Decoder) decodeDict(depth int) (map[string]any, error) {
	dict := make(map[string]any, 8)

	for {
		next, err := d.cur.Peek(0)
		if err != nil {
			return nil, internal.EOFErr
		}
		if next == internal.TokenEnding.Byte() {
			d.cur.AdvanceOne()
			return dict, nil
		}
		if !isASCIIDigit(next) {
			return nil, internal.New(internal.ExpectedDictionaryKeyString, "leading byte %q", next)
		}

		keyBytes, err := internal.ReadByteString(d.cur, d.maxStrLen)
		if err != nil {
			return nil, err
		}
		v, err := d.decodeAny(depth)
		if err != nil {
			return nil, err
		}
		dict[string(keyBytes)] = v
	}
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

// DecodeAny decodes a single top-level value in self-describing mode and
// requires the entire input be consumed (spec §4.4's "top-level
// discipline"); residual bytes are TrailingCharacters.
func DecodeAny(data []byte) (any, error) {
	d := NewDecoder(data)

	v, err := d.Decode()
	if err != nil {
		return nil, err
	}
	if !d.cur.AtEnd() {
		return nil, internal.New(internal.TrailingCharacters, "")
	}
	return v, nil
}

// Unmarshal decodes a single complete Bencode value from data into v, which
// must be a non-nil pointer. It requires the entire input be consumed.
//
// This is the Go realization of the language-neutral decode_from_bytes
// operation (spec §6): the teacher's original Unmarshal (which returned
// any, not requiring a host type up front) survives as DecodeAny.
func Unmarshal(data []byte, v any) error {
	d := NewDecoder(data)

	if err := d.DecodeValue(v); err != nil {
		return err
	}
	if !d.cur.AtEnd() {
		return internal.New(internal.TrailingCharacters, "")
	}
	return nil
}

// UnmarshalText is Unmarshal reinterpreting a UTF-8 string as bytes (spec
// §6's decode_from_text).
func UnmarshalText(s string, v any) error {
	return Unmarshal([]byte(s), v)
}
