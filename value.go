package etdump

import "bytes"

// Value is a sealed interface over the types a dump record field can hold.
// Only Int, Uint, Float, Bool, String, Bytes, *Record, Sequence, and Union
// implement it. Numeric values carry their declared ScalarType so that width
// and signedness survive the trip through JSON, which has no such notion.
type Value interface {
	value() // sealed

	// Equal reports structural equality, including scalar type tags.
	Equal(Value) bool
}

// Int is a signed integer scalar with a declared width (ScalarI8..ScalarI64).
type Int struct {
	Type ScalarType
	Val  int64
}

func (Int) value() {}

// Equal implements Value.
func (v Int) Equal(o Value) bool {
	w, ok := o.(Int)
	return ok && v.Type == w.Type && v.Val == w.Val
}

// Uint is an unsigned integer scalar with a declared width (ScalarU8..ScalarU64).
type Uint struct {
	Type ScalarType
	Val  uint64
}

func (Uint) value() {}

// Equal implements Value.
func (v Uint) Equal(o Value) bool {
	w, ok := o.(Uint)
	return ok && v.Type == w.Type && v.Val == w.Val
}

// Float is a floating-point scalar with a declared width (ScalarF32 or ScalarF64).
type Float struct {
	Type ScalarType
	Val  float64
}

func (Float) value() {}

// Equal implements Value.
func (v Float) Equal(o Value) bool {
	w, ok := o.(Float)
	return ok && v.Type == w.Type && v.Val == w.Val
}

// Bool is a boolean scalar.
type Bool bool

func (Bool) value() {}

// Equal implements Value.
func (v Bool) Equal(o Value) bool {
	w, ok := o.(Bool)
	return ok && v == w
}

// String is a string scalar.
type String string

func (String) value() {}

// Equal implements Value.
func (v String) Equal(o Value) bool {
	w, ok := o.(String)
	return ok && v == w
}

// Bytes is a byte-sequence scalar. It encodes to a JSON array of numbers,
// matching the external compiler's convention for byte vectors.
type Bytes []byte

func (Bytes) value() {}

// Equal implements Value.
func (v Bytes) Equal(o Value) bool {
	w, ok := o.(Bytes)
	return ok && bytes.Equal(v, w)
}

// Field is one named member of a Record. Declaration order is significant:
// encoding emits fields in the order they were added.
type Field struct {
	Name  string
	Value Value
}

// F constructs a Field. Shorthand for building records inline.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Record is an ordered collection of named fields. It is the only composite
// that appears at the root of a dump record.
type Record struct {
	fields []Field
}

func (*Record) value() {}

// NewRecord builds a record from fields, preserving their order.
func NewRecord(fields ...Field) *Record {
	return &Record{fields: fields}
}

// Set appends a field, or replaces the value of an existing field in place.
func (r *Record) Set(name string, v Value) {
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields[i].Value = v
			return
		}
	}
	r.fields = append(r.fields, Field{Name: name, Value: v})
}

// Get returns the value of the named field.
func (r *Record) Get(name string) (Value, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Fields returns the fields in declaration order. The slice is shared; do
// not mutate it.
func (r *Record) Fields() []Field {
	return r.fields
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// Equal implements Value. Field order is part of record identity.
func (r *Record) Equal(o Value) bool {
	w, ok := o.(*Record)
	if !ok || r == nil || w == nil {
		return ok && r == nil && w == nil
	}
	if len(r.fields) != len(w.fields) {
		return false
	}
	for i, f := range r.fields {
		g := w.fields[i]
		if f.Name != g.Name || !f.Value.Equal(g.Value) {
			return false
		}
	}
	return true
}

// Sequence is an ordered list of homogeneously typed values.
type Sequence []Value

func (Sequence) value() {}

// Equal implements Value.
func (v Sequence) Equal(o Value) bool {
	w, ok := o.(Sequence)
	if !ok || len(v) != len(w) {
		return false
	}
	for i := range v {
		if !v[i].Equal(w[i]) {
			return false
		}
	}
	return true
}

// Union is a tagged choice over a schema-declared set of variants. Variant
// names which tag is active; Value holds that variant's payload.
type Union struct {
	Variant string
	Value   Value
}

func (Union) value() {}

// Equal implements Value.
func (v Union) Equal(o Value) bool {
	w, ok := o.(Union)
	return ok && v.Variant == w.Variant && v.Value.Equal(w.Value)
}
