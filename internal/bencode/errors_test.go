package bencode

import (
	"errors"
	"io"
	"testing"
)

func TestErrorIsMatchesByKindOnly(t *testing.T) {
	a := New(ExpectedInteger, "detail a")
	b := New(ExpectedInteger, "detail b")
	c := New(ExpectedList, "detail c")

	if !errors.Is(a, b) {
		t.Error("errors of the same Kind should compare equal via errors.Is")
	}
	if errors.Is(a, c) {
		t.Error("errors of different Kind should not compare equal")
	}
}

func TestErrorUnwrapExposesCause(t *testing.T) {
	wrapped := Wrap(IO, io.ErrUnexpectedEOF, "reading payload")
	if !errors.Is(wrapped, io.ErrUnexpectedEOF) {
		t.Error("Wrap should preserve the cause for errors.Is")
	}
}

func TestKindStringUnknown(t *testing.T) {
	var k Kind = 999
	if k.String() != "bencode: unknown kind" {
		t.Errorf("String() = %q", k.String())
	}
}

func TestEOFErrWrapsIOEOF(t *testing.T) {
	if !errors.Is(EOFErr, io.EOF) {
		t.Error("EOFErr should wrap io.EOF")
	}
}
