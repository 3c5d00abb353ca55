package bencode

import (
	"fmt"
	"io"
)

// Kind identifies one leaf of the Bencode error taxonomy. The set is closed
// and small; unlike JesseCoretta-go-asn1plus's cached, arbitrary-message
// sentinel errors (grounded for the general shape of "name-stable error
// identity you can compare with errors.Is"), Bencode has no need for a
// growing, interned table — there are exactly as many Kinds as BEP-0003 has
// failure modes.
type Kind int

const (
	// Message is the catchall for host-level binding failures (unsupported
	// Go type, duplicate struct-tag name, unregistered variant).
	Message Kind = iota
	// ExpectedInteger marks a shape/canonical-form violation in a signed
	// integer context.
	ExpectedInteger
	// ExpectedUnsignedInteger marks a shape/canonical-form violation in an
	// unsigned integer context, including a '-' sign where none is allowed.
	ExpectedUnsignedInteger
	// IntegerOverflow marks a value exceeding the target width.
	IntegerOverflow
	// ExpectedStringIntegerLength marks a missing or malformed byte-string
	// length prefix.
	ExpectedStringIntegerLength
	// InvalidUTF8 marks bytes that are not well-formed UTF-8 where text was
	// required.
	InvalidUTF8
	// ExpectedFloat marks a byte-string payload that is not a parsable
	// floating-point literal.
	ExpectedFloat
	// ExpectedList marks a structural mismatch where a list was required.
	ExpectedList
	// ExpectedListEnd marks a list that never reached its closing 'e'.
	ExpectedListEnd
	// ExpectedDictionary marks a structural mismatch where a dictionary was
	// required.
	ExpectedDictionary
	// ExpectedDictionaryEnd marks a dictionary that never reached its
	// closing 'e'.
	ExpectedDictionaryEnd
	// ExpectedDictionaryKeyString marks a dictionary key that was not a
	// byte string.
	ExpectedDictionaryKeyString
	// UnknownType marks a self-describing decode whose leading byte matched
	// none of the four forms.
	UnknownType
	// TrailingCharacters marks bytes remaining after the top-level value.
	TrailingCharacters
	// EOF marks input that ended unexpectedly.
	EOF
	// IO marks an error forwarded from the underlying sink or source.
	IO
)

var kindNames = map[Kind]string{
	Message:                     "bencode: message",
	ExpectedInteger:             "bencode: expected integer",
	ExpectedUnsignedInteger:     "bencode: expected unsigned integer",
	IntegerOverflow:             "bencode: integer overflow",
	ExpectedStringIntegerLength: "bencode: expected string integer length",
	InvalidUTF8:                 "bencode: invalid utf-8",
	ExpectedFloat:               "bencode: expected float",
	ExpectedList:                "bencode: expected list",
	ExpectedListEnd:             "bencode: expected list end",
	ExpectedDictionary:          "bencode: expected dictionary",
	ExpectedDictionaryEnd:       "bencode: expected dictionary end",
	ExpectedDictionaryKeyString: "bencode: expected dictionary key string",
	UnknownType:                 "bencode: unknown type",
	TrailingCharacters:          "bencode: trailing characters",
	EOF:                         "bencode: eof",
	IO:                          "bencode: io",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "bencode: unknown kind"
}

// Error is the single error type every decode or encode failure surfaces
// as. It carries a stable Kind (switchable, and comparable via errors.Is
// against another *Error of the same Kind; see Is) plus an optional
// human-readable detail and cause. New and Wrap construct one.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes the underlying cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, &Error{Kind: ExpectedInteger}) matches any error of that
// Kind regardless of its detail or cause. A bare Kind is not an error value;
// pkg/bencode's Is(err, kind) helper tests an error against one directly
// (e.g. bencode.Is(err, bencode.ExpectedInteger)).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New returns an *Error of the given kind with a formatted detail message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error of the given kind wrapping cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Cause: cause}
}

// EOFErr is the shared io.EOF-wrapping Error used whenever the cursor runs
// out of input mid-value. Kept as a single value (rather than allocating one
// per call site) since it carries no per-call detail.
var EOFErr = &Error{Kind: EOF, Cause: io.EOF}
