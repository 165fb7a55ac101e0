package ordmap

import (
	"bytes"
	"encoding/json"

	"github.com/sugawarayuuta/sonnet"
	"github.com/zeebo/errs/v2"
)

// JSON support comes in two shapes, mirroring the two natural byte
// layouts of an ordered map: the object form {"k":v,...}, which any
// JSON consumer understands but requires keys that encode as strings
// or numbers, and the sequence form [[k,v],...], which round-trips any
// key type. Element encoding goes through sonnet; the token-level walk
// on decode uses encoding/json's Decoder for its incremental API.

// MarshalJSON encodes the map as a JSON object in iteration order.
// Keys must marshal to JSON strings or numbers; numbers are quoted the
// way encoding/json quotes numeric map keys.
func (t *T[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := 0, t.Len(); i < l; i++ {
		p := t.ps.Ptr(i)
		kb, err := sonnet.Marshal(p.Key)
		if err != nil {
			return nil, errs.Wrap(err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		switch {
		case len(kb) > 0 && kb[0] == '"':
			buf.Write(kb)
		case len(kb) > 0 && (kb[0] == '-' || (kb[0] >= '0' && kb[0] <= '9')):
			buf.WriteByte('"')
			buf.Write(kb)
			buf.WriteByte('"')
		default:
			return nil, errs.Errorf("key %q does not encode as a JSON object key", kb)
		}
		buf.WriteByte(':')
		vb, err := sonnet.Marshal(p.Value)
		if err != nil {
			return nil, errs.Wrap(err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the map, preserving the
// document's member order and inserting with standard semantics (a
// duplicate member replaces the value, keeps the first position).
func (t *T[K, V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return errs.Wrap(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errs.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errs.Wrap(err)
		}
		ks, ok := tok.(string)
		if !ok {
			return errs.Errorf("expected object key, got %v", tok)
		}
		k, err := decodeKey[K](ks)
		if err != nil {
			return err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return errs.Wrap(err)
		}
		var v V
		if err := sonnet.Unmarshal(raw, &v); err != nil {
			return errs.Wrap(err)
		}
		t.Insert(k, v)
	}
	if _, err := dec.Token(); err != nil {
		return errs.Wrap(err)
	}
	return nil
}

// decodeKey maps an object member name back to K: first as the JSON
// string itself, then as the bare token for numeric key types.
func decodeKey[K comparable](ks string) (k K, err error) {
	quoted, _ := sonnet.Marshal(ks)
	if err := sonnet.Unmarshal(quoted, &k); err == nil {
		return k, nil
	}
	if err := sonnet.Unmarshal([]byte(ks), &k); err != nil {
		return k, errs.Errorf("cannot decode object key %q: %v", ks, err)
	}
	return k, nil
}

// MarshalSeq encodes the map as [[k,v],...], the order-explicit form
// that accepts any marshalable key type.
func MarshalSeq[K comparable, V any](t *T[K, V]) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, l := 0, t.Len(); i < l; i++ {
		p := t.ps.Ptr(i)
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := sonnet.Marshal(p.Key)
		if err != nil {
			return nil, errs.Wrap(err)
		}
		vb, err := sonnet.Marshal(p.Value)
		if err != nil {
			return nil, errs.Wrap(err)
		}
		buf.WriteByte('[')
		buf.Write(kb)
		buf.WriteByte(',')
		buf.Write(vb)
		buf.WriteByte(']')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalSeq decodes the [[k,v],...] form into t with standard
// insert semantics.
func UnmarshalSeq[K comparable, V any](data []byte, t *T[K, V]) error {
	var rows [][2]json.RawMessage
	if err := sonnet.Unmarshal(data, &rows); err != nil {
		return errs.Wrap(err)
	}
	for _, row := range rows {
		var k K
		var v V
		if err := sonnet.Unmarshal(row[0], &k); err != nil {
			return errs.Wrap(err)
		}
		if err := sonnet.Unmarshal(row[1], &v); err != nil {
			return errs.Wrap(err)
		}
		t.Insert(k, v)
	}
	return nil
}
