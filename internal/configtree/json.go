package configtree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Decode parses a JSON document into a Value, preserving object key order.
// JSON has no int/float distinction, so numbers with no fractional part and
// no exponent become KindInt; all others become KindFloat.
func Decode(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// Reject trailing content after the document.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing content after JSON document")
	}

	return v, nil
}

// DecodeReader parses a JSON document from a reader.
func DecodeReader(r io.Reader) (*Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return Decode(data)
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding value: %w", err)
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMap(dec)
		case '[':
			return decodeList(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case bool:
		return Bool(t), nil
	case json.Number:
		return decodeNumber(t)
	case string:
		return String(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeMap(dec *json.Decoder) (*Value, error) {
	m := Map()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		child, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		m.Set(key, child)
	}
	// Consume closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding object end: %w", err)
	}
	return m, nil
}

func decodeList(dec *json.Decoder) (*Value, error) {
	l := List()
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		l.Append(item)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding array end: %w", err)
	}
	return l, nil
}

func decodeNumber(n json.Number) (*Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		i, err := n.Int64()
		if err == nil {
			return Int(i), nil
		}
		// Integral-looking but out of int64 range; fall through to float.
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("parsing number %q: %w", s, err)
	}
	return Float(f), nil
}

// Encode serializes a Value to JSON, emitting map keys in insertion order.
// Formatting is not preserved from the original document; structure and
// values are.
func Encode(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeIndent serializes a Value to indented JSON.
func EncodeIndent(v *Value, prefix, indent string) ([]byte, error) {
	compact, err := Encode(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DisplayString renders a compact human-readable form, used for read-only
// presentation of values that have no editable widget.
func (v *Value) DisplayString() string {
	if v == nil || v.kind == KindNull {
		return "null"
	}
	if v.kind == KindString {
		return v.strVal
	}
	data, err := Encode(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func encodeValue(buf *bytes.Buffer, v *Value) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boolVal))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.intVal, 10))
	case KindFloat:
		data, err := json.Marshal(v.floatVal)
		if err != nil {
			return fmt.Errorf("encoding float: %w", err)
		}
		buf.Write(data)
	case KindString:
		data, err := json.Marshal(v.strVal)
		if err != nil {
			return fmt.Errorf("encoding string: %w", err)
		}
		buf.Write(data)
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMap:
		buf.WriteByte('{')
		for i, key := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyData, err := json.Marshal(key)
			if err != nil {
				return fmt.Errorf("encoding key: %w", err)
			}
			buf.Write(keyData)
			buf.WriteByte(':')
			if err := encodeValue(buf, v.children[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode kind %s", v.kind)
	}
	return nil
}
