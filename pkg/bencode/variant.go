package bencode

import (
	"reflect"

	"github.com/prxssh/bencode/pkg/syncmap"
)

// Variant is implemented by Go types that should encode/decode as a Bencode
// named-variant sum (spec §4.4): a single-entry dictionary whose key is the
// variant name and whose value is the type's own encoded form.
type Variant interface {
	// BencodeVariant returns the dictionary key this value encodes under.
	BencodeVariant() string
}

var variantRegistry = syncmap.New[string, reflect.Type]()

// RegisterVariant associates name with the concrete type of zero (which
// should be the zero value of a type implementing Variant, typically passed
// as a pointer: RegisterVariant("ping", (*Ping)(nil))). Decoding a
// named-variant dictionary whose key is name allocates a fresh value of
// this type.
//
// RegisterVariant is expected to be called from package init functions,
// mirroring how encoding/gob's gob.Register works; it panics if name is
// already registered to a different type, since that is always a
// programming error caught once at startup rather than a runtime data
// condition.
func RegisterVariant(name string, zero any) {
	t := reflect.TypeOf(zero)
	if existing, ok := variantRegistry.Get(name); ok && existing != t {
		panic("bencode: variant " + name + " already registered to a different type")
	}
	variantRegistry.Put(name, t)
}

func lookupVariant(name string) (reflect.Type, bool) {
	return variantRegistry.Get(name)
}
