package bencode

import (
	"io"
	"testing"
)

func TestCursorPeekAndAdvance(t *testing.T) {
	c := NewCursor([]byte("ab"))

	b, err := c.Peek(0)
	if err != nil || b != 'a' {
		t.Fatalf("Peek(0) = %q, %v", b, err)
	}
	b, err = c.Peek(1)
	if err != nil || b != 'b' {
		t.Fatalf("Peek(1) = %q, %v", b, err)
	}
	if _, err := c.Peek(2); err != io.EOF {
		t.Fatalf("Peek(2) err = %v, want io.EOF", err)
	}

	b, err = c.AdvanceOne()
	if err != nil || b != 'a' {
		t.Fatalf("AdvanceOne = %q, %v", b, err)
	}
	if c.Pos() != 1 {
		t.Fatalf("Pos() = %d, want 1", c.Pos())
	}
}

func TestCursorTakeIsZeroCopy(t *testing.T) {
	buf := []byte("hello world")
	c := NewCursor(buf)

	sub, err := c.Take(5)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if string(sub) != "hello" {
		t.Fatalf("sub = %q", sub)
	}
	sub[0] = 'H'
	if buf[0] != 'H' {
		t.Fatal("Take did not alias the backing array")
	}
}

func TestCursorTakePastEndLeavesPositionUnmoved(t *testing.T) {
	c := NewCursor([]byte("abc"))
	if _, err := c.Take(10); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
	if c.Pos() != 0 {
		t.Fatalf("Pos() = %d, want 0 after failed Take", c.Pos())
	}
}

func TestCursorReadUntil(t *testing.T) {
	c := NewCursor([]byte("123:abc"))
	digits, err := c.ReadUntil(':')
	if err != nil {
		t.Fatalf("ReadUntil: %v", err)
	}
	if string(digits) != "123" {
		t.Fatalf("digits = %q", digits)
	}
	if c.Remaining() != 3 {
		t.Fatalf("remaining = %d, want 3", c.Remaining())
	}
}

func TestCursorReadUntilMissingDelimLeavesPositionUnmoved(t *testing.T) {
	c := NewCursor([]byte("123abc"))
	if _, err := c.ReadUntil(':'); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
	if c.Pos() != 0 {
		t.Fatalf("Pos() = %d, want 0", c.Pos())
	}
}

func TestCursorAtEnd(t *testing.T) {
	c := NewCursor(nil)
	if !c.AtEnd() {
		t.Fatal("empty cursor should be at end")
	}
}
