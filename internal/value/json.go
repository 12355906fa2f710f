package value

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MarshalJSON renders v as JSON, preserving record key insertion order
// (the teacher's jsonvalue.Value marshaled objects through a plain Go map
// and lost that order; this implementation builds the object body
// manually to keep it).
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindUndefined, KindNull:
		return []byte("null"), nil
	case KindBool:
		if v.b {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		return json.Marshal(v.f)
	case KindString:
		return json.Marshal(v.s)
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindRecord:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, key := range v.record.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			val, _ := v.record.Get(key)
			vb, err := val.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		// Callables and opaque host values have no direct JSON form. At the
		// top level the reduce package renders them to text itself; inside a
		// list or record they reach this branch and render as null.
		return []byte("null"), nil
	}
}
