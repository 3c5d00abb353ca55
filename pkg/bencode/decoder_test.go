package bencode

import (
	"reflect"
	"testing"
)

func TestDecodeAnyScalars(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want any
	}{
		{"positive int", "i42e", uint64(42)},
		{"negative int", "i-7e", int64(-7)},
		{"zero", "i0e", uint64(0)},
		{"string", "4:spam", "spam"},
		{"empty string", "0:", ""},
		{"list", "l4:spami42ee", []any{"spam", uint64(42)}},
		{"dict", "d3:foo3:baz3:num2:42e", map[string]any{"foo": "baz", "num": "42"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeAny([]byte(tc.in))
			if err != nil {
				t.Fatalf("DecodeAny(%q): %v", tc.in, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("DecodeAny(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDecodeAnyTrailingCharacters(t *testing.T) {
	_, err := DecodeAny([]byte("i1e garbage"))
	if !Is(err, TrailingCharacters) {
		t.Fatalf("got %v, want TrailingCharacters", err)
	}
}

func TestDecodeAnyUnknownType(t *testing.T) {
	_, err := DecodeAny([]byte("x"))
	if !Is(err, UnknownType) {
		t.Fatalf("got %v, want UnknownType", err)
	}
}

func TestDecodeAnyNestedDict(t *testing.T) {
	got, err := DecodeAny([]byte("d4:infod4:name4:spam4:sizei10eee"))
	if err != nil {
		t.Fatalf("DecodeAny: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want map[string]any", got)
	}
	info, ok := m["info"].(map[string]any)
	if !ok {
		t.Fatalf("info = %T", m["info"])
	}
	if info["name"] != "spam" || info["size"] != uint64(10) {
		t.Fatalf("info = %#v", info)
	}
}

func TestUnmarshalStruct(t *testing.T) {
	type file struct {
		Name string `bencode:"name"`
		Size int64  `bencode:"size"`
	}

	var f file
	if err := Unmarshal([]byte("d4:name4:spam4:sizei10ee"), &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if f.Name != "spam" || f.Size != 10 {
		t.Fatalf("got %+v", f)
	}
}

func TestUnmarshalNonPointerTarget(t *testing.T) {
	var f struct{}
	err := Unmarshal([]byte("de"), f)
	if err == nil {
		t.Fatal("expected error for non-pointer target")
	}
}

func TestUnmarshalRejectsTrailingBytes(t *testing.T) {
	var s string
	err := Unmarshal([]byte("4:spamXXXX"), &s)
	if !Is(err, TrailingCharacters) {
		t.Fatalf("got %v, want TrailingCharacters", err)
	}
}

func TestUnmarshalTextString(t *testing.T) {
	var s string
	if err := UnmarshalText("4:spam", &s); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if s != "spam" {
		t.Fatalf("s = %q", s)
	}
}

func TestDecodeInvalidUTF8(t *testing.T) {
	var s string
	err := Unmarshal([]byte("2:\xff\xfe"), &s)
	if !Is(err, InvalidUTF8) {
		t.Fatalf("got %v, want InvalidUTF8", err)
	}
}

func TestDecodeByteSliceAliasesInput(t *testing.T) {
	data := []byte("4:spam")
	var b []byte
	if err := Unmarshal(data, &b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if &b[0] != &data[2] {
		t.Fatal("decoding into []byte should alias the input buffer")
	}
}
