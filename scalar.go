package etdump

import "fmt"

// ScalarType identifies the declared width and signedness class of a scalar
// field. JSON carries none of this information; the schema descriptor is the
// only source of truth for it.
type ScalarType uint8

const (
	ScalarInvalid ScalarType = iota
	ScalarI8
	ScalarI16
	ScalarI32
	ScalarI64
	ScalarU8
	ScalarU16
	ScalarU32
	ScalarU64
	ScalarF32
	ScalarF64
	ScalarBool
	ScalarString
	ScalarBytes
)

var scalarNames = map[ScalarType]string{
	ScalarI8:     "i8",
	ScalarI16:    "i16",
	ScalarI32:    "i32",
	ScalarI64:    "i64",
	ScalarU8:     "u8",
	ScalarU16:    "u16",
	ScalarU32:    "u32",
	ScalarU64:    "u64",
	ScalarF32:    "f32",
	ScalarF64:    "f64",
	ScalarBool:   "bool",
	ScalarString: "string",
	ScalarBytes:  "bytes",
}

// String returns the short lowercase name of the scalar type.
func (t ScalarType) String() string {
	if s, ok := scalarNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ScalarType(%d)", uint8(t))
}

// Signed reports whether t is a signed integer width.
func (t ScalarType) Signed() bool {
	return t >= ScalarI8 && t <= ScalarI64
}

// Unsigned reports whether t is an unsigned integer width.
func (t ScalarType) Unsigned() bool {
	return t >= ScalarU8 && t <= ScalarU64
}

// Float reports whether t is a floating-point width.
func (t ScalarType) Float() bool {
	return t == ScalarF32 || t == ScalarF64
}

// intBounds returns the inclusive range of a signed integer width.
func (t ScalarType) intBounds() (min, max int64) {
	switch t {
	case ScalarI8:
		return -1 << 7, 1<<7 - 1
	case ScalarI16:
		return -1 << 15, 1<<15 - 1
	case ScalarI32:
		return -1 << 31, 1<<31 - 1
	default:
		return -1 << 63, 1<<63 - 1
	}
}

// uintMax returns the maximum value of an unsigned integer width.
func (t ScalarType) uintMax() uint64 {
	switch t {
	case ScalarU8:
		return 1<<8 - 1
	case ScalarU16:
		return 1<<16 - 1
	case ScalarU32:
		return 1<<32 - 1
	default:
		return 1<<64 - 1
	}
}
