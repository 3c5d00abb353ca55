package bencode

import "testing"

func scanDigits(t *testing.T, s string, signAllowed bool, badKind Kind) ([]byte, error) {
	t.Helper()
	c := NewCursor([]byte(s))
	return ScanDigits(c, TokenEnding, signAllowed, badKind)
}

func TestScanDigitsCanonicalForm(t *testing.T) {
	cases := []struct {
		name        string
		in          string
		signAllowed bool
		wantErr     Kind
		wantOK      bool
	}{
		{"zero", "0e", true, 0, true},
		{"simple", "123e", true, 0, true},
		{"negative", "-5e", true, 0, true},
		{"empty digit run", "e", true, ExpectedInteger, false},
		{"leading zero", "007e", true, ExpectedInteger, false},
		{"negative zero", "-0e", true, ExpectedInteger, false},
		{"lone minus", "-e", true, ExpectedInteger, false},
		{"minus not allowed", "-5e", false, ExpectedUnsignedInteger, false},
		{"non digit", "12a3e", true, ExpectedInteger, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scanDigits(t, tc.in, tc.signAllowed, ExpectedInteger)
			if tc.wantOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			be, ok := err.(*Error)
			if !ok {
				t.Fatalf("got %v (%T), want *Error", err, err)
			}
			if be.Kind != tc.wantErr {
				t.Fatalf("kind = %v, want %v", be.Kind, tc.wantErr)
			}
		})
	}
}

func TestParseSignedWidths(t *testing.T) {
	c := NewCursor([]byte("127e"))
	v, err := ParseSigned(c, TokenEnding, 8)
	if err != nil || v != 127 {
		t.Fatalf("v=%d err=%v", v, err)
	}

	c = NewCursor([]byte("128e"))
	_, err = ParseSigned(c, TokenEnding, 8)
	be, ok := err.(*Error)
	if !ok || be.Kind != IntegerOverflow {
		t.Fatalf("got %v, want IntegerOverflow", err)
	}
}

func TestParseUnsignedRejectsMinusBeforeShapeCheck(t *testing.T) {
	c := NewCursor([]byte("-1e"))
	_, err := ParseUnsigned(c, TokenEnding, 64)
	be, ok := err.(*Error)
	if !ok || be.Kind != ExpectedUnsignedInteger {
		t.Fatalf("got %v, want ExpectedUnsignedInteger", err)
	}
}

func TestReadByteString(t *testing.T) {
	c := NewCursor([]byte("4:spamrest"))
	b, err := ReadByteString(c, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "spam" {
		t.Fatalf("got %q", b)
	}
	if c.Remaining() != 4 {
		t.Fatalf("remaining = %d, want 4", c.Remaining())
	}
}

func TestReadByteStringZeroLength(t *testing.T) {
	c := NewCursor([]byte("0:"))
	b, err := ReadByteString(c, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b == nil || len(b) != 0 {
		t.Fatalf("got %v, want non-nil empty slice", b)
	}
}

func TestReadByteStringTooLarge(t *testing.T) {
	c := NewCursor([]byte("100:x"))
	if _, err := ReadByteString(c, 10); err == nil {
		t.Fatal("expected error for oversized byte string")
	}
}

func TestReadByteStringMalformedLength(t *testing.T) {
	c := NewCursor([]byte("5x:abcde"))
	_, err := ReadByteString(c, 0)
	be, ok := err.(*Error)
	if !ok || be.Kind != ExpectedStringIntegerLength {
		t.Fatalf("got %v, want ExpectedStringIntegerLength", err)
	}
}

func TestReadByteStringShortBuffer(t *testing.T) {
	c := NewCursor([]byte("10:abc"))
	_, err := ReadByteString(c, 0)
	be, ok := err.(*Error)
	if !ok || be.Kind != EOF {
		t.Fatalf("got %v, want EOF", err)
	}
}
