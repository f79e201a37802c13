package etdump

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

// Union discriminator and payload member names in the JSON form.
const (
	discriminatorMember = "variant"
	payloadMember       = "value"
)

// Encode renders a record as compact canonical JSON. Output is deterministic:
// fields appear in declaration order, so encoding the same record twice
// yields byte-identical text. Tagged unions encode as
// {"variant":<name>,"value":<payload>}.
func Encode(rec *Record) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("encode: nil record")
	}
	var buf bytes.Buffer
	if err := encodeRecord(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeIndent renders a record as indented JSON for human inspection.
// Indentation is cosmetic; Decode accepts both forms identically.
func EncodeIndent(rec *Record, indent string) ([]byte, error) {
	compact, err := Encode(rec)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return nil, fmt.Errorf("encode: indent: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeRecord(buf *bytes.Buffer, rec *Record) error {
	buf.WriteByte('{')
	for i, f := range rec.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(buf, f.Name); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := encodeValue(buf, f.Value, f.Name); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeValue(buf *bytes.Buffer, v Value, path string) error {
	switch val := v.(type) {
	case Int:
		buf.WriteString(strconv.FormatInt(val.Val, 10))
	case Uint:
		buf.WriteString(strconv.FormatUint(val.Val, 10))
	case Float:
		if math.IsNaN(val.Val) || math.IsInf(val.Val, 0) {
			return fmt.Errorf("encode: field %q: unsupported float value %v", path, val.Val)
		}
		bits := 64
		if val.Type == ScalarF32 {
			bits = 32
		}
		buf.WriteString(strconv.FormatFloat(val.Val, 'g', -1, bits))
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(val)))
	case String:
		return encodeString(buf, string(val))
	case Bytes:
		buf.WriteByte('[')
		for i, b := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.FormatUint(uint64(b), 10))
		}
		buf.WriteByte(']')
	case *Record:
		return encodeRecord(buf, val)
	case Sequence:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, elem, indexPath(path, i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Union:
		buf.WriteString(`{"` + discriminatorMember + `":`)
		if err := encodeString(buf, val.Variant); err != nil {
			return err
		}
		buf.WriteString(`,"` + payloadMember + `":`)
		if err := encodeValue(buf, val.Value, joinPath(path, val.Variant)); err != nil {
			return err
		}
		buf.WriteByte('}')
	case nil:
		return fmt.Errorf("encode: field %q: nil value", path)
	default:
		return fmt.Errorf("encode: field %q: unknown value type %T", path, v)
	}
	return nil
}

// encodeString writes a JSON string using the library encoder so escaping
// matches standard JSON output.
func encodeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode: string: %w", err)
	}
	buf.Write(b)
	return nil
}
