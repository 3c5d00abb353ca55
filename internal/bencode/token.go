// Package bencode implements the low-level, allocation-conscious half of a
// Bencode (BEP-0003) codec: a read-only cursor over an in-memory buffer, an
// append-only sink, and the canonical-form numeric and byte-string scanners
// both the decoder and the encoder driver in github.com/prxssh/bencode/pkg/bencode
// are built on top of.
//
// Everything here is non-streaming by design: a Cursor is constructed from a
// complete []byte and never blocks on more input arriving later.
package bencode

// Token identifies one of the five reserved Bencode markers, or the minus
// sign that prefixes a negative integer.
type Token byte

// Byte returns the Token's single-byte wire representation.
func (t Token) Byte() byte { return byte(t) }

const (
	// TokenDict begins a dictionary: 'd'.
	TokenDict Token = 'd'
	// TokenInteger begins an integer: 'i'.
	TokenInteger Token = 'i'
	// TokenEnding terminates a list, dictionary, or integer: 'e'.
	TokenEnding Token = 'e'
	// TokenList begins a list: 'l'.
	TokenList Token = 'l'
	// TokenStringSeparator separates a byte-string length from its payload: ':'.
	TokenStringSeparator Token = ':'
	// TokenMinus prefixes a negative integer: '-'.
	TokenMinus Token = '-'
)

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
