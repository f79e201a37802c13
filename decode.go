package etdump

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// Decode reconstructs a typed record from canonical JSON, directed by the
// target descriptor. Every decision — scalar width, nesting, the admissible
// variant set — comes from the descriptor, never from the JSON's own typing.
//
// Fields the descriptor requires but the JSON lacks fail with a
// *MissingFieldError naming the full path. JSON members the descriptor does
// not mention are ignored. A union discriminator outside the declared set
// fails with *UnknownVariantError. Decode is all-or-nothing: on error no
// record is returned.
func Decode(data []byte, desc *Descriptor) (*Record, error) {
	if desc == nil {
		return nil, fmt.Errorf("decode: nil descriptor")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode: %s: %w", desc.Name, err)
	}
	return decodeRecord(raw, desc, "")
}

func decodeRecord(raw map[string]json.RawMessage, desc *Descriptor, path string) (*Record, error) {
	rec := &Record{fields: make([]Field, 0, len(desc.Fields))}
	for _, fd := range desc.Fields {
		member, ok := raw[fd.Name]
		fieldPath := joinPath(path, fd.Name)
		if !ok {
			if fd.Optional {
				continue
			}
			return nil, &MissingFieldError{Path: fieldPath}
		}
		v, err := decodeField(member, fd, fieldPath)
		if err != nil {
			return nil, err
		}
		rec.fields = append(rec.fields, Field{Name: fd.Name, Value: v})
	}
	return rec, nil
}

func decodeField(raw json.RawMessage, fd FieldDesc, path string) (Value, error) {
	switch fd.Kind {
	case KindScalar:
		return decodeScalar(raw, fd.Scalar, path)
	case KindRecord:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("decode: field %q: expected object: %w", path, err)
		}
		return decodeRecord(obj, fd.Record, path)
	case KindSequence:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode: field %q: expected array: %w", path, err)
		}
		seq := make(Sequence, len(items))
		for i, item := range items {
			v, err := decodeField(item, *fd.Elem, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			seq[i] = v
		}
		return seq, nil
	case KindUnion:
		return decodeUnion(raw, fd, path)
	default:
		return nil, fmt.Errorf("decode: field %q: invalid field kind %d", path, fd.Kind)
	}
}

func decodeUnion(raw json.RawMessage, fd FieldDesc, path string) (Value, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode: field %q: expected union object: %w", path, err)
	}
	tagRaw, ok := obj[discriminatorMember]
	if !ok {
		return nil, &MissingFieldError{Path: joinPath(path, discriminatorMember)}
	}
	var tag string
	if err := json.Unmarshal(tagRaw, &tag); err != nil {
		return nil, fmt.Errorf("decode: field %q: discriminator must be a string: %w", path, err)
	}
	var payload *VariantDesc
	for i := range fd.Variants {
		if fd.Variants[i].Name == tag {
			payload = &fd.Variants[i]
			break
		}
	}
	if payload == nil {
		return nil, &UnknownVariantError{Path: path, Variant: tag, Declared: fd.variantNames()}
	}
	valRaw, ok := obj[payloadMember]
	if !ok {
		return nil, &MissingFieldError{Path: joinPath(path, payloadMember)}
	}
	v, err := decodeField(valRaw, payload.Payload, joinPath(path, tag))
	if err != nil {
		return nil, err
	}
	return Union{Variant: tag, Value: v}, nil
}

func decodeScalar(raw json.RawMessage, t ScalarType, path string) (Value, error) {
	switch {
	case t.Signed():
		n, err := decodeNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("decode: field %q: expected %s: %w", path, t, err)
		}
		v, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode: field %q: expected %s: %w", path, t, err)
		}
		if min, max := t.intBounds(); v < min || v > max {
			return nil, fmt.Errorf("decode: field %q: value %d overflows %s", path, v, t)
		}
		return Int{Type: t, Val: v}, nil
	case t.Unsigned():
		n, err := decodeNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("decode: field %q: expected %s: %w", path, t, err)
		}
		v, err := strconv.ParseUint(n.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode: field %q: expected %s: %w", path, t, err)
		}
		if v > t.uintMax() {
			return nil, fmt.Errorf("decode: field %q: value %d overflows %s", path, v, t)
		}
		return Uint{Type: t, Val: v}, nil
	case t.Float():
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode: field %q: expected %s: %w", path, t, err)
		}
		return Float{Type: t, Val: f}, nil
	case t == ScalarBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("decode: field %q: expected bool: %w", path, err)
		}
		return Bool(b), nil
	case t == ScalarString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode: field %q: expected string: %w", path, err)
		}
		return String(s), nil
	case t == ScalarBytes:
		var xs []int64
		if err := json.Unmarshal(raw, &xs); err != nil {
			return nil, fmt.Errorf("decode: field %q: expected byte array: %w", path, err)
		}
		out := make(Bytes, len(xs))
		for i, x := range xs {
			if x < 0 || x > 255 {
				return nil, fmt.Errorf("decode: field %q: byte %d out of range at index %d", path, x, i)
			}
			out[i] = byte(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("decode: field %q: invalid scalar type %s", path, t)
	}
}

// decodeNumber parses a JSON number without losing precision to float64.
func decodeNumber(raw json.RawMessage) (json.Number, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n, nil
}
