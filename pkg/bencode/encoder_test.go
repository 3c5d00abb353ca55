package bencode

import "testing"

func TestMarshalScalars(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"int64", int64(42), "i42e"},
		{"negative int", int64(-7), "i-7e"},
		{"uint64", uint64(42), "i42e"},
		{"string", "spam", "4:spam"},
		{"empty string", "", "0:"},
		{"bool true", true, "4:true"},
		{"bool false", false, "5:false"},
		{"byte slice", []byte("spam"), "4:spam"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(tc.in)
			if err != nil {
				t.Fatalf("Marshal(%#v): %v", tc.in, err)
			}
			if string(got) != tc.want {
				t.Fatalf("Marshal(%#v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMarshalSlice(t *testing.T) {
	got, err := Marshal([]string{"spam", "eggs"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != "l4:spam4:eggse" {
		t.Fatalf("got %q", got)
	}
}

func TestMarshalMapSortsKeys(t *testing.T) {
	got, err := Marshal(map[string]string{"b": "2", "a": "1"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != "d1:a1:11:b1:2e" {
		t.Fatalf("got %q, want ascending key order", got)
	}
}

func TestMarshalStruct(t *testing.T) {
	type file struct {
		Name string `bencode:"name"`
		Size int64  `bencode:"size"`
	}

	got, err := Marshal(file{Name: "spam", Size: 10})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != "d4:name4:spam4:sizei10ee" {
		t.Fatalf("got %q", got)
	}
}

func TestMarshalStructOmitsNilPointerField(t *testing.T) {
	type doc struct {
		Name    string  `bencode:"name"`
		Comment *string `bencode:"comment"`
	}

	got, err := Marshal(doc{Name: "x"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != "d4:name1:xe" {
		t.Fatalf("got %q, nil pointer field should be omitted", got)
	}
}

func TestMarshalStructOmitsEmptyOmitEmpty(t *testing.T) {
	type doc struct {
		Name string `bencode:"name"`
		Tag  string `bencode:"tag,omitempty"`
	}

	got, err := Marshal(doc{Name: "x"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != "d4:name1:xe" {
		t.Fatalf("got %q", got)
	}
}

func TestMarshalTextRejectsInvalidUTF8(t *testing.T) {
	_, err := MarshalText([]byte{0xff, 0xfe})
	if !Is(err, InvalidUTF8) {
		t.Fatalf("got %v, want InvalidUTF8", err)
	}
}

func TestRoundTripDictOfLists(t *testing.T) {
	in := map[string][]int64{"a": {1, 2, 3}}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out map[string][]int64
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out["a"]) != 3 || out["a"][0] != 1 || out["a"][2] != 3 {
		t.Fatalf("got %#v", out)
	}
}
