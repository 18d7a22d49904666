package jsonvalue

import (
	"encoding/json"

	"github.com/valyala/fastjson"
)

// Kind discriminates the structural type of a parsed JSON value.
type Kind uint8

const (
	// Invalid is the kind of the zero Value.
	Invalid Kind = iota
	Null
	Object
	Array
	String
	Number
	True
	False
)

var kindNames = [...]string{
	Invalid: "invalid",
	Null:    "null",
	Object:  "object",
	Array:   "array",
	String:  "string",
	Number:  "number",
	True:    "true",
	False:   "false",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is an immutable parsed JSON value. The zero Value has kind Invalid.
type Value struct {
	v *fastjson.Value
}

// TryParse parses text as a single JSON document.
// It reports false instead of an error so callers on the decode path can
// short-circuit without allocating error values.
func TryParse(text string) (Value, bool) {
	v, err := fastjson.Parse(text)
	if err != nil {
		return Value{}, false
	}
	return Value{v: v}, true
}

// Parse is TryParse with the parser error preserved.
func Parse(text string) (Value, error) {
	v, err := fastjson.Parse(text)
	if err != nil {
		return Value{}, err
	}
	return Value{v: v}, nil
}

// Kind returns the structural type of v.
func (v Value) Kind() Kind {
	if v.v == nil {
		return Invalid
	}
	switch v.v.Type() {
	case fastjson.TypeNull:
		return Null
	case fastjson.TypeObject:
		return Object
	case fastjson.TypeArray:
		return Array
	case fastjson.TypeString:
		return String
	case fastjson.TypeNumber:
		return Number
	case fastjson.TypeTrue:
		return True
	case fastjson.TypeFalse:
		return False
	default:
		return Invalid
	}
}

// IsObject reports whether v is a JSON object.
func (v Value) IsObject() bool {
	return v.Kind() == Object
}

// Get returns the member at the given key path, or the zero Value.
func (v Value) Get(keys ...string) Value {
	if v.v == nil {
		return Value{}
	}
	return Value{v: v.v.Get(keys...)}
}

// Has reports whether the key path exists.
func (v Value) Has(keys ...string) bool {
	return v.Get(keys...).Kind() != Invalid
}

// Str returns the string content of a String value.
func (v Value) Str() (string, bool) {
	if v.Kind() != String {
		return "", false
	}
	b, err := v.v.StringBytes()
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Float returns the numeric content of a Number value.
func (v Value) Float() (float64, bool) {
	if v.Kind() != Number {
		return 0, false
	}
	f, err := v.v.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// Bool returns the content of a True or False value.
func (v Value) Bool() (bool, bool) {
	switch v.Kind() {
	case True:
		return true, true
	case False:
		return false, true
	default:
		return false, false
	}
}

// Len returns the number of members of an object or elements of an array.
func (v Value) Len() int {
	switch v.Kind() {
	case Object:
		o, _ := v.v.Object()
		return o.Len()
	case Array:
		a, _ := v.v.Array()
		return len(a)
	default:
		return 0
	}
}

// Keys returns object member names in document order.
func (v Value) Keys() []string {
	if v.Kind() != Object {
		return nil
	}
	o, _ := v.v.Object()
	keys := make([]string, 0, o.Len())
	o.Visit(func(key []byte, _ *fastjson.Value) {
		keys = append(keys, string(key))
	})
	return keys
}

// Index returns the i-th element of an array, or the zero Value.
func (v Value) Index(i int) Value {
	if v.Kind() != Array {
		return Value{}
	}
	a, _ := v.v.Array()
	if i < 0 || i >= len(a) {
		return Value{}
	}
	return Value{v: a[i]}
}

// String returns the compact JSON encoding of v.
func (v Value) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// MarshalJSON implements json.Marshaler so decoded values can be re-emitted.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.v == nil {
		return []byte("null"), nil
	}
	return v.v.MarshalTo(nil), nil
}

var _ json.Marshaler = Value{}
