package bencode

import (
	"errors"
	"io"
	"strconv"
)

// ScanDigits reads a canonical-form base-10 integer from c, terminated by
// delim (TokenEnding for an `i...e` integer, TokenStringSeparator for a
// byte-string length prefix), and returns the raw digit run (including a
// leading '-' if signAllowed and present) with delim already consumed.
//
// Canonical-form rules, checked here before any width-specific conversion
// (spec §4.2, "overflow vs. canonical-form error precedence" — shape errors
// must fire before overflow errors):
//   - the first character must be a digit, or (signAllowed) '-'
//   - after a leading '-', the next character must be a non-zero digit
//   - a leading '0' is legal only if it is the entire digit run
//   - no other character may appear before delim
//
// badKind selects which Kind a canonical-form violation is reported as
// (ExpectedInteger for signed integer context, ExpectedUnsignedInteger for
// unsigned integer and byte-string-length context).
func ScanDigits(c *Cursor, delim Token, signAllowed bool, badKind Kind) ([]byte, error) {
	raw, err := c.ReadUntil(delim.Byte())
	if err != nil {
		return nil, EOFErr
	}

	if len(raw) == 0 {
		return nil, New(badKind, "empty digit run")
	}

	digits := raw
	if raw[0] == TokenMinus.Byte() {
		if !signAllowed {
			return nil, New(ExpectedUnsignedInteger, "unexpected '-'")
		}
		if len(raw) == 1 {
			return nil, New(ExpectedInteger, "lone '-'")
		}
		if raw[1] == '0' {
			return nil, New(ExpectedInteger, "negative zero")
		}
		digits = raw[1:]
	} else if raw[0] == '0' && len(raw) > 1 {
		return nil, New(badKind, "leading zero")
	}

	for _, b := range digits {
		if !isDigit(b) {
			return nil, New(badKind, "non-digit character %q", b)
		}
	}

	return raw, nil
}

// ParseSigned scans a canonical signed integer of the given bit width (8,
// 16, 32, or 64) from c, terminated by delim, leaving the cursor positioned
// immediately after delim.
func ParseSigned(c *Cursor, delim Token, bitSize int) (int64, error) {
	raw, err := ScanDigits(c, delim, true, ExpectedInteger)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(string(raw), 10, bitSize)
	if err != nil {
		return 0, overflowOrMessage(err, ExpectedInteger)
	}
	return v, nil
}

// ParseUnsigned scans a canonical unsigned integer of the given bit width
// from c, terminated by delim, leaving the cursor positioned immediately
// after delim. A leading '-' is rejected as ExpectedUnsignedInteger before
// any digit scanning, per spec §4.2.
func ParseUnsigned(c *Cursor, delim Token, bitSize int) (uint64, error) {
	raw, err := ScanDigits(c, delim, false, ExpectedUnsignedInteger)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(string(raw), 10, bitSize)
	if err != nil {
		return 0, overflowOrMessage(err, ExpectedUnsignedInteger)
	}
	return v, nil
}

func overflowOrMessage(err error, shapeKind Kind) *Error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return New(IntegerOverflow, "value out of range")
	}
	return New(shapeKind, "%v", err)
}

// ReadByteString reads a canonical-form, unsigned decimal length terminated
// by ':' and then consumes exactly that many subsequent bytes, returning a
// zero-copy sub-slice of c's backing buffer. Length L=0 yields a non-nil
// empty slice. A short buffer after a valid length is reported as EOF.
func ReadByteString(c *Cursor, maxLen int64) ([]byte, error) {
	n, err := ParseUnsigned(c, TokenStringSeparator, 64)
	if err != nil {
		if be, ok := err.(*Error); ok && be.Kind == ExpectedUnsignedInteger {
			return nil, New(ExpectedStringIntegerLength, "%s", be.Detail)
		}
		return nil, err
	}
	if maxLen > 0 && n > uint64(maxLen) {
		return nil, New(Message, "byte string too large: %d > %d", n, maxLen)
	}

	buf, err := c.Take(int(n))
	if err != nil {
		if err == io.EOF {
			return nil, EOFErr
		}
		return nil, err
	}
	if buf == nil {
		buf = []byte{}
	}
	return buf, nil
}
