package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindUnset Kind = iota
	KindText
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "unset"
	}
}

// Value is the stored, normalized form of a field.
//
// Invariants:
//   - The zero Value is Unset and is distinct from Text(""), Int(0) and Bool(false)
//   - Exactly one variant is meaningful, selected by Kind
type Value struct {
	kind Kind
	text string
	num  int64
	flag bool
}

// Unset is the value of a field that has never been successfully set.
var Unset = Value{}

func Text(s string) Value { return Value{kind: KindText, text: s} }

func Int(n int64) Value { return Value{kind: KindInt, num: n} }

func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

func (v Value) Kind() Kind { return v.kind }

// IsSet reports whether the field holds a committed value.
func (v Value) IsSet() bool { return v.kind != KindUnset }

// AsText returns the text variant.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsInt returns the integer variant.
func (v Value) AsInt() (int64, bool) {
	return v.num, v.kind == KindInt
}

// AsBool returns the boolean variant.
func (v Value) AsBool() (bool, bool) {
	return v.flag, v.kind == KindBool
}

// Interface returns the variant as a plain Go value, nil when unset.
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindInt:
		return v.num
	case KindBool:
		return v.flag
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return "<unset>"
	}
}

// MarshalJSON encodes unset as null and the other variants as their JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = Unset
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*v = Text(t)
	case bool:
		*v = Bool(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return fmt.Errorf("value %s is not an integer", t)
		}
		*v = Int(n)
	default:
		return fmt.Errorf("unsupported value %s", data)
	}
	return nil
}
