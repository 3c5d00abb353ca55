package bencode

import (
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/tkrajina/go-reflector/reflector"

	"github.com/prxssh/bencode/internal/benctag"
	internal "github.com/prxssh/bencode/internal/bencode"
)

// Tuple is a marker interface. A struct type that implements it
// encodes/decodes as a positional Bencode list (spec §4.4's "tuple-struct:
// list") instead of a dictionary keyed by field name. Implement it with a
// zero-cost method:
//
//	func (MyTuple) BencodeTuple() {}
type Tuple interface {
	BencodeTuple()
}

var tupleType = reflect.TypeOf((*Tuple)(nil)).Elem()
var variantIfaceType = reflect.TypeOf((*Variant)(nil)).Elem()

var structPlans = internal.NewTypeCache[*structPlan]()

// structPlan is the cached, per-type resolution of a struct's `bencode`
// tags: the field list in declaration order (for positional tuple decode)
// and the same list sorted by dictionary-key name (for the encoder's
// ascending-order requirement, spec §3/§4.5).
type structPlan struct {
	declOrder []benctag.Field
	byName    []benctag.Field
	isTuple   bool
}

func buildStructPlan(t reflect.Type) (*structPlan, error) {
	if err := tagInspect(reflect.New(t).Interface()); err != nil {
		return nil, err
	}

	fields := benctag.Fields(t)
	if dup, ok := benctag.DuplicateName(fields); ok {
		return nil, internal.New(internal.Message, "struct %s: duplicate bencode name %q", t, dup)
	}

	isTuple := t.Implements(tupleType) || reflect.PointerTo(t).Implements(tupleType)

	return &structPlan{
		declOrder: fields,
		byName:    benctag.SortedByName(fields),
		isTuple:   isTuple,
	}, nil
}

func planFor(t reflect.Type) (*structPlan, error) {
	return structPlans.GetOrBuild(t, func() (*structPlan, error) { return buildStructPlan(t) })
}

// fieldValue returns the (possibly newly-allocated-through) reflect.Value
// for a field's index path, allocating intermediate nil pointers along the
// way when settable.
func fieldValue(v reflect.Value, index []int) reflect.Value {
	for _, i := range index {
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v
}

// ---- decode ----

func decodeInto(d *Decoder, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return internal.New(internal.Message, "Unmarshal target must be a non-nil pointer, got %T", target)
	}
	return decodeReflect(d, rv.Elem(), 0)
}

func decodeReflect(d *Decoder, rv reflect.Value, depth int) error {
	if depth > d.maxDepth {
		return internal.New(internal.Message, "max nesting depth exceeded")
	}

	switch rv.Kind() {
	case reflect.Bool:
		return decodeBool(d, rv)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decodeSignedField(d, rv)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decodeUnsignedField(d, rv)

	case reflect.Float32, reflect.Float64:
		return decodeFloat(d, rv)

	case reflect.String:
		return decodeString(d, rv)

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return decodeByteSlice(d, rv)
		}
		return decodeSlice(d, rv, depth)

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return decodeByteArray(d, rv)
		}
		return decodeArray(d, rv, depth)

	case reflect.Map:
		return decodeMap(d, rv, depth)

	case reflect.Ptr:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return decodeReflect(d, rv.Elem(), depth)

	case reflect.Struct:
		return decodeStruct(d, rv, depth)

	case reflect.Interface:
		return decodeVariant(d, rv, depth)

	default:
		return internal.New(internal.Message, "unsupported decode target kind %s", rv.Kind())
	}
}

func expectToken(d *Decoder, want internal.Token, shapeKind internal.Kind) error {
	b, err := d.cur.Peek(0)
	if err != nil {
		return internal.EOFErr
	}
	if b != want.Byte() {
		return internal.New(shapeKind, "expected %q, got %q", want.Byte(), b)
	}
	d.cur.AdvanceOne()
	return nil
}

func decodeBool(d *Decoder, rv reflect.Value) error {
	raw, err := internal.ReadByteString(d.cur, d.maxStrLen)
	if err != nil {
		return err
	}
	switch string(raw) {
	case "true":
		rv.SetBool(true)
	case "false":
		rv.SetBool(false)
	default:
		return internal.New(internal.Message, "invalid bool literal %q", raw)
	}
	return nil
}

func decodeSignedField(d *Decoder, rv reflect.Value) error {
	if err := expectToken(d, internal.TokenInteger, internal.ExpectedInteger); err != nil {
		return err
	}
	v, err := internal.ParseSigned(d.cur, internal.TokenEnding, rv.Type().Bits())
	if err != nil {
		return err
	}
	rv.SetInt(v)
	return nil
}

func decodeUnsignedField(d *Decoder, rv reflect.Value) error {
	if err := expectToken(d, internal.TokenInteger, internal.ExpectedUnsignedInteger); err != nil {
		return err
	}
	v, err := internal.ParseUnsigned(d.cur, internal.TokenEnding, rv.Type().Bits())
	if err != nil {
		return err
	}
	rv.SetUint(v)
	return nil
}

func decodeFloat(d *Decoder, rv reflect.Value) error {
	raw, err := internal.ReadByteString(d.cur, d.maxStrLen)
	if err != nil {
		return err
	}
	f, err := strconv.ParseFloat(string(raw), rv.Type().Bits())
	if err != nil {
		return internal.Wrap(internal.ExpectedFloat, err, "%q", raw)
	}
	rv.SetFloat(f)
	return nil
}

func decodeString(d *Decoder, rv reflect.Value) error {
	raw, err := internal.ReadByteString(d.cur, d.maxStrLen)
	if err != nil {
		return err
	}
	if !utf8.Valid(raw) {
		return internal.New(internal.InvalidUTF8, "")
	}
	rv.SetString(string(raw))
	return nil
}

func decodeByteSlice(d *Decoder, rv reflect.Value) error {
	raw, err := internal.ReadByteString(d.cur, d.maxStrLen)
	if err != nil {
		return err
	}
	// raw aliases the input buffer (zero-copy) and is stored as is, with no
	// copy, matching spec §9's "decoding into a []byte-kind field aliases
	// the input slice" rule.
	rv.SetBytes(raw)
	return nil
}

func decodeByteArray(d *Decoder, rv reflect.Value) error {
	raw, err := internal.ReadByteString(d.cur, d.maxStrLen)
	if err != nil {
		return err
	}
	if len(raw) != rv.Len() {
		return internal.New(internal.Message, "byte array length mismatch: got %d, want %d", len(raw), rv.Len())
	}
	reflect.Copy(rv, reflect.ValueOf(raw))
	return nil
}

func decodeSlice(d *Decoder, rv reflect.Value, depth int) error {
	if err := expectToken(d, internal.TokenList, internal.ExpectedList); err != nil {
		return err
	}
	elemType := rv.Type().Elem()
	out := reflect.MakeSlice(rv.Type(), 0, 0)

	for {
		b, err := d.cur.Peek(0)
		if err != nil {
			return internal.EOFErr
		}
		if b == internal.TokenEnding.Byte() {
			d.cur.AdvanceOne()
			rv.Set(out)
			return nil
		}

		elem := reflect.New(elemType).Elem()
		if err := decodeReflect(d, elem, depth+1); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
	}
}

func decodeArray(d *Decoder, rv reflect.Value, depth int) error {
	if err := expectToken(d, internal.TokenList, internal.ExpectedList); err != nil {
		return err
	}

	i := 0
	for {
		b, err := d.cur.Peek(0)
		if err != nil {
			return internal.EOFErr
		}
		if b == internal.TokenEnding.Byte() {
			d.cur.AdvanceOne()
			if i != rv.Len() {
				return internal.New(internal.Message, "array length mismatch: got %d, want %d", i, rv.Len())
			}
			return nil
		}
		if i >= rv.Len() {
			return internal.New(internal.Message, "array overflow: want %d elements", rv.Len())
		}

		if err := decodeReflect(d, rv.Index(i), depth+1); err != nil {
			return err
		}
		i++
	}
}

func decodeMap(d *Decoder, rv reflect.Value, depth int) error {
	if err := expectToken(d, internal.TokenDict, internal.ExpectedDictionary); err != nil {
		return err
	}
	if rv.Type().Key().Kind() != reflect.String {
		return internal.New(internal.Message, "unsupported map key kind %s", rv.Type().Key().Kind())
	}

	out := reflect.MakeMap(rv.Type())
	valType := rv.Type().Elem()

	for {
		b, err := d.cur.Peek(0)
		if err != nil {
			return internal.EOFErr
		}
		if b == internal.TokenEnding.Byte() {
			d.cur.AdvanceOne()
			rv.Set(out)
			return nil
		}
		if !isASCIIDigit(b) {
			return internal.New(internal.ExpectedDictionaryKeyString, "leading byte %q", b)
		}

		keyBytes, err := internal.ReadByteString(d.cur, d.maxStrLen)
		if err != nil {
			return err
		}

		val := reflect.New(valType).Elem()
		if err := decodeReflect(d, val, depth+1); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(string(keyBytes)).Convert(rv.Type().Key()), val)
	}
}

func decodeStruct(d *Decoder, rv reflect.Value, depth int) error {
	plan, err := planFor(rv.Type())
	if err != nil {
		return err
	}

	if plan.isTuple {
		return decodeTuple(d, rv, plan, depth)
	}

	if err := expectToken(d, internal.TokenDict, internal.ExpectedDictionary); err != nil {
		return err
	}

	byName := make(map[string]benctag.Field, len(plan.declOrder))
	for _, f := range plan.declOrder {
		byName[f.Params.Name] = f
	}

	for {
		b, err := d.cur.Peek(0)
		if err != nil {
			return internal.EOFErr
		}
		if b == internal.TokenEnding.Byte() {
			d.cur.AdvanceOne()
			return nil
		}
		if !isASCIIDigit(b) {
			return internal.New(internal.ExpectedDictionaryKeyString, "leading byte %q", b)
		}

		keyBytes, err := internal.ReadByteString(d.cur, d.maxStrLen)
		if err != nil {
			return err
		}

		f, known := byName[string(keyBytes)]
		if !known {
			// Unknown key: skip its value in self-describing mode and move
			// on, mirroring encoding/json's tolerance of unrecognized
			// fields (spec §4.4.2, the struct driver's resolved ambiguity).
			if _, err := d.decodeAny(depth + 1); err != nil {
				return err
			}
			continue
		}

		fv := fieldValue(rv, f.Index)
		if err := decodeReflect(d, fv, depth+1); err != nil {
			return errors.Wrapf(err, "field %q", f.Params.Name)
		}
	}
}

func decodeTuple(d *Decoder, rv reflect.Value, plan *structPlan, depth int) error {
	if err := expectToken(d, internal.TokenList, internal.ExpectedList); err != nil {
		return err
	}

	for _, f := range plan.declOrder {
		b, err := d.cur.Peek(0)
		if err != nil {
			return internal.EOFErr
		}
		if b == internal.TokenEnding.Byte() {
			return internal.New(internal.Message, "tuple %s: too few elements", rv.Type())
		}
		fv := fieldValue(rv, f.Index)
		if err := decodeReflect(d, fv, depth+1); err != nil {
			return err
		}
	}

	return expectToken(d, internal.TokenEnding, internal.ExpectedListEnd)
}

func decodeVariant(d *Decoder, rv reflect.Value, depth int) error {
	if !rv.Type().Implements(variantIfaceType) {
		// Plain interface{}/any target: fall back to self-describing decode.
		v, err := d.decodeAny(depth)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(v))
		return nil
	}

	if err := expectToken(d, internal.TokenDict, internal.ExpectedDictionary); err != nil {
		return err
	}

	b, err := d.cur.Peek(0)
	if err != nil {
		return internal.EOFErr
	}
	if !isASCIIDigit(b) {
		return internal.New(internal.ExpectedDictionaryKeyString, "leading byte %q", b)
	}
	nameBytes, err := internal.ReadByteString(d.cur, d.maxStrLen)
	if err != nil {
		return err
	}

	concrete, ok := lookupVariant(string(nameBytes))
	if !ok {
		return internal.New(internal.Message, "unregistered variant %q", nameBytes)
	}

	isPtr := concrete.Kind() == reflect.Ptr
	elemType := concrete
	if isPtr {
		elemType = concrete.Elem()
	}

	payload := reflect.New(elemType)
	if err := decodeReflect(d, payload.Elem(), depth+1); err != nil {
		return err
	}

	if err := expectToken(d, internal.TokenEnding, internal.ExpectedDictionaryEnd); err != nil {
		return err
	}

	if isPtr {
		rv.Set(payload)
	} else {
		rv.Set(payload.Elem())
	}
	return nil
}

// ---- encode ----

func encodeReflect(e *Encoder, rv reflect.Value) error {
	if v, ok := reflectAsVariant(rv); ok {
		return encodeVariant(e, v)
	}

	switch rv.Kind() {
	case reflect.Bool:
		return encodeBool(e, rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.encodeInt64(rv.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return e.encodeUint(rv.Uint())

	case reflect.Float32, reflect.Float64:
		return e.encodeString(strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits()))

	case reflect.String:
		return e.encodeString(rv.String())

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return e.encodeString(string(rv.Bytes()))
		}
		return encodeSequence(e, rv)

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			buf := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(buf), rv)
			return e.encodeString(string(buf))
		}
		return encodeSequence(e, rv)

	case reflect.Map:
		return encodeMapReflect(e, rv)

	case reflect.Ptr:
		if rv.IsNil() {
			return internal.New(internal.Message, "nil pointer has no standalone encoding; omit it from its container")
		}
		return encodeReflect(e, rv.Elem())

	case reflect.Struct:
		return encodeStruct(e, rv)

	case reflect.Interface:
		if rv.IsNil() {
			return internal.New(internal.Message, "nil interface has no standalone encoding")
		}
		return encodeReflect(e, rv.Elem())

	default:
		return internal.New(internal.Message, "unsupported datatype %q", rv.Type())
	}
}

func reflectAsVariant(rv reflect.Value) (Variant, bool) {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil, false
	}
	v, ok := rv.Interface().(Variant)
	return v, ok
}

func encodeBool(e *Encoder, b bool) error {
	if b {
		return e.encodeString("true")
	}
	return e.encodeString("false")
}

func encodeSequence(e *Encoder, rv reflect.Value) error {
	if err := e.sink.WriteToken(internal.TokenList); err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := encodeReflect(e, rv.Index(i)); err != nil {
			return err
		}
	}
	return e.sink.WriteToken(internal.TokenEnding)
}

func encodeMapReflect(e *Encoder, rv reflect.Value) error {
	if rv.Type().Key().Kind() != reflect.String {
		return internal.New(internal.Message, "unsupported map key kind %s", rv.Type().Key().Kind())
	}

	if err := e.sink.WriteToken(internal.TokenDict); err != nil {
		return err
	}

	keys := rv.MapKeys()
	sortReflectStrings(keys)

	for _, k := range keys {
		if err := e.encodeString(k.String()); err != nil {
			return err
		}
		if err := encodeReflect(e, rv.MapIndex(k)); err != nil {
			return err
		}
	}
	return e.sink.WriteToken(internal.TokenEnding)
}

func encodeStruct(e *Encoder, rv reflect.Value) error {
	plan, err := planFor(rv.Type())
	if err != nil {
		return err
	}

	if plan.isTuple {
		if err := e.sink.WriteToken(internal.TokenList); err != nil {
			return err
		}
		for _, f := range plan.declOrder {
			if err := encodeReflect(e, fieldValue(rv, f.Index)); err != nil {
				return err
			}
		}
		return e.sink.WriteToken(internal.TokenEnding)
	}

	if err := e.sink.WriteToken(internal.TokenDict); err != nil {
		return err
	}
	for _, f := range plan.byName {
		fv := fieldValue(rv, f.Index)
		if f.Params.OmitEmpty && fv.IsZero() {
			continue
		}
		if fv.Kind() == reflect.Ptr && fv.IsNil() {
			continue // spec §4.4: an absent optional is simply omitted
		}
		if err := e.encodeString(f.Params.Name); err != nil {
			return err
		}
		if err := encodeReflect(e, fv); err != nil {
			return errors.Wrapf(err, "field %q", f.Params.Name)
		}
	}
	return e.sink.WriteToken(internal.TokenEnding)
}

func encodeVariant(e *Encoder, v Variant) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return internal.New(internal.Message, "nil variant has no standalone encoding")
	}

	if err := e.sink.WriteToken(internal.TokenDict); err != nil {
		return err
	}
	if err := e.encodeString(v.BencodeVariant()); err != nil {
		return err
	}
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if err := encodeReflect(e, rv); err != nil {
		return err
	}
	return e.sink.WriteToken(internal.TokenEnding)
}

func sortReflectStrings(keys []reflect.Value) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1].String() > keys[j].String(); j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
}

// tagInspect is a small indirection through go-reflector used only to sanity
// check, once per type, that go-reflector's own field walk agrees the type
// is a well-formed struct before the driver commits a plan for it. reflect
// alone can answer the questions the rest of this file asks, but go-reflector
// is the friendlier, already-idiomatic surface this module uses for the
// one-time struct-shape sanity check (SPEC_FULL.md §2.2), rather than a
// second hand-written reflect.StructField walk duplicating benctag's.
func tagInspect(v any) error {
	if _, err := reflector.New(v).FieldsFlattened(); err != nil {
		return internal.New(internal.Message, "struct binding %T: %v", v, err)
	}
	return nil
}
