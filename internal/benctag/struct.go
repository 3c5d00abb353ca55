// Package benctag resolves Go struct fields into the name each one
// contributes to a Bencode dictionary, parsing `bencode:"..."` tags.
//
// The shape is adapted from codello.dev/asn1's internal/struct.go
// (StructFields/ParseFieldParameters), reduced from ASN.1's tag/class/
// explicit/optional vocabulary down to Bencode's much smaller one: a field
// name override, an "ignore this field" marker, and "omit if zero".
package benctag

import (
	"reflect"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// FieldParams is the parsed form of one field's `bencode:"..."` tag.
type FieldParams struct {
	// Name is the dictionary key this field encodes/decodes under. Empty
	// only when Ignore is set.
	Name string
	// Ignore marks a field excluded from encoding and decoding (tag "-").
	Ignore bool
	// OmitEmpty marks a field that, when it holds its zero value, is
	// omitted from the encoded dictionary entirely.
	OmitEmpty bool
}

// ParseFieldParams parses one field's raw struct tag value (the content of
// the `bencode:"..."` tag, or "" if absent) against the field's declared
// name, which is used as the default Name when the tag supplies none.
func ParseFieldParams(tag, fieldName string) FieldParams {
	if tag == "-" {
		return FieldParams{Ignore: true}
	}

	parts := strings.Split(tag, ",")
	params := FieldParams{Name: fieldName}

	if len(parts) > 0 && parts[0] != "" {
		params.Name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			params.OmitEmpty = true
		}
	}

	return params
}

// Field pairs a resolved FieldParams with the reflect.StructField and index
// path needed to read/write it.
type Field struct {
	Params FieldParams
	Index  []int
	Type   reflect.Type
}

// Fields walks t's fields (t must be a struct type), resolving each one's
// `bencode` tag and flattening anonymous embedded structs recursively —
// the same flattening StructFields performs for ASN.1's Extensible marker,
// generalized to any anonymous struct field here since Bencode has no
// equivalent marker type to special-case.
//
// Unexported fields are skipped. The returned slice is in declaration order;
// callers that need ascending dictionary-key order (the encoder) sort it
// themselves.
func Fields(t reflect.Type) []Field {
	var out []Field
	collectFields(t, nil, &out)
	return out
}

func collectFields(t reflect.Type, prefix []int, out *[]Field) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue // unexported
		}

		index := append(append([]int{}, prefix...), i)

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			collectFields(sf.Type, index, out)
			continue
		}

		params := ParseFieldParams(sf.Tag.Get("bencode"), sf.Name)
		if params.Ignore {
			continue
		}

		*out = append(*out, Field{Params: params, Index: index, Type: sf.Type})
	}
}

// SortedByName returns a copy of fields sorted by their dictionary key name
// in ascending byte order, as required on encode (spec §3, §4.5).
func SortedByName(fields []Field) []Field {
	sorted := append([]Field{}, fields...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Params.Name < sorted[j].Params.Name
	})
	return sorted
}

// DuplicateName reports the first dictionary key name claimed by more than
// one field of the same struct, if any. A struct whose tags collide this
// way is a programmer error (spec §9's duplicate-key question, resolved for
// the struct driver as a build-time failure rather than "last write wins").
func DuplicateName(fields []Field) (string, bool) {
	names := lo.Map(fields, func(f Field, _ int) string { return f.Params.Name })
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return n, true
		}
		seen[n] = true
	}
	return "", false
}
