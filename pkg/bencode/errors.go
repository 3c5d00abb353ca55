package bencode

import (
	"errors"

	internal "github.com/prxssh/bencode/internal/bencode"
)

// Kind identifies one leaf of the Bencode error taxonomy (spec §7).
type Kind = internal.Kind

// Error is the error type every Marshal/Unmarshal failure surfaces as. Use
// bencode.Is(err, bencode.ExpectedInteger) (etc.) to test its Kind, or
// errors.As(err, new(*bencode.Error)) to recover the full value.
type Error = internal.Error

// Is reports whether err is (or wraps) a *bencode.Error of the given Kind.
func Is(err error, kind Kind) bool {
	var be *Error
	if !errors.As(err, &be) {
		return false
	}
	return be.Kind == kind
}

// The Bencode error taxonomy (spec §7). Each is a stable, comparable Kind
// value; test a failure's shape with Is(err, kind).
const (
	Message                     = internal.Message
	ExpectedInteger             = internal.ExpectedInteger
	ExpectedUnsignedInteger     = internal.ExpectedUnsignedInteger
	IntegerOverflow             = internal.IntegerOverflow
	ExpectedStringIntegerLength = internal.ExpectedStringIntegerLength
	InvalidUTF8                 = internal.InvalidUTF8
	ExpectedFloat               = internal.ExpectedFloat
	ExpectedList                = internal.ExpectedList
	ExpectedListEnd             = internal.ExpectedListEnd
	ExpectedDictionary          = internal.ExpectedDictionary
	ExpectedDictionaryEnd       = internal.ExpectedDictionaryEnd
	ExpectedDictionaryKeyString = internal.ExpectedDictionaryKeyString
	UnknownType                 = internal.UnknownType
	TrailingCharacters          = internal.TrailingCharacters
	EOF                         = internal.EOF
	IO                          = internal.IO
)
