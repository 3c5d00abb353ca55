package benctag

import (
	"reflect"
	"testing"
)

type inner struct {
	City string `bencode:"city"`
}

type sample struct {
	inner
	Name     string `bencode:"name"`
	Age      int    `bencode:"age,omitempty"`
	Secret   string `bencode:"-"`
	hidden   string
	Fallback string
}

func TestFieldsFlattensAnonymousAndSkipsIgnored(t *testing.T) {
	fields := Fields(reflect.TypeOf(sample{}))

	names := make(map[string]Field, len(fields))
	for _, f := range fields {
		names[f.Params.Name] = f
	}

	if _, ok := names["city"]; !ok {
		t.Error("expected flattened anonymous field 'city'")
	}
	if _, ok := names[""]; ok {
		t.Error("ignored field should not appear")
	}
	if f, ok := names["age"]; !ok || !f.Params.OmitEmpty {
		t.Error("expected 'age' with OmitEmpty set")
	}
	if _, ok := names["Fallback"]; !ok {
		t.Error("untagged exported field should default to its Go name")
	}
	for _, f := range fields {
		if f.Params.Name == "hidden" {
			t.Error("unexported field should not appear")
		}
	}
}

func TestSortedByNameIsAscending(t *testing.T) {
	fields := Fields(reflect.TypeOf(sample{}))
	sorted := SortedByName(fields)

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Params.Name > sorted[i].Params.Name {
			t.Fatalf("not sorted: %q before %q", sorted[i-1].Params.Name, sorted[i].Params.Name)
		}
	}
}

type dup struct {
	A string `bencode:"x"`
	B string `bencode:"x"`
}

func TestDuplicateName(t *testing.T) {
	fields := Fields(reflect.TypeOf(dup{}))
	name, ok := DuplicateName(fields)
	if !ok || name != "x" {
		t.Fatalf("DuplicateName = %q, %v, want \"x\", true", name, ok)
	}
}

func TestParseFieldParamsDefaultsToFieldName(t *testing.T) {
	p := ParseFieldParams("", "Foo")
	if p.Name != "Foo" || p.Ignore || p.OmitEmpty {
		t.Fatalf("got %+v", p)
	}
}

func TestParseFieldParamsIgnore(t *testing.T) {
	p := ParseFieldParams("-", "Foo")
	if !p.Ignore {
		t.Fatal("expected Ignore")
	}
}
