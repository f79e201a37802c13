package etdump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	// Compile-time check that every value type satisfies the sealed interface.
	var _ Value = Int{Type: ScalarI32, Val: 1}
	var _ Value = Uint{Type: ScalarU8, Val: 1}
	var _ Value = Float{Type: ScalarF64, Val: 1.5}
	var _ Value = Bool(true)
	var _ Value = String("x")
	var _ Value = Bytes{0x01}
	var _ Value = NewRecord()
	var _ Value = Sequence{}
	var _ Value = Union{Variant: "ok", Value: Bool(true)}
}

func TestScalarEqualIncludesType(t *testing.T) {
	// Same numeric value, different declared width: not equal.
	assert.False(t, Int{Type: ScalarI8, Val: 7}.Equal(Int{Type: ScalarI32, Val: 7}))
	assert.True(t, Int{Type: ScalarI32, Val: 7}.Equal(Int{Type: ScalarI32, Val: 7}))

	assert.False(t, Uint{Type: ScalarU16, Val: 7}.Equal(Uint{Type: ScalarU64, Val: 7}))
	assert.False(t, Float{Type: ScalarF32, Val: 1.5}.Equal(Float{Type: ScalarF64, Val: 1.5}))

	// Different value kinds never compare equal.
	assert.False(t, Int{Type: ScalarI64, Val: 7}.Equal(Uint{Type: ScalarU64, Val: 7}))
	assert.False(t, Bool(true).Equal(String("true")))
}

func TestRecordFieldOrder(t *testing.T) {
	rec := NewRecord(
		F("b", Int{Type: ScalarI32, Val: 2}),
		F("a", Int{Type: ScalarI32, Val: 1}),
	)

	fields := rec.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "b", fields[0].Name)
	assert.Equal(t, "a", fields[1].Name)
}

func TestRecordSetReplacesInPlace(t *testing.T) {
	rec := NewRecord(F("count", Int{Type: ScalarI32, Val: 1}))
	rec.Set("count", Int{Type: ScalarI32, Val: 2})
	rec.Set("extra", Bool(true))

	require.Equal(t, 2, rec.Len())
	v, ok := rec.Get("count")
	require.True(t, ok)
	assert.True(t, v.Equal(Int{Type: ScalarI32, Val: 2}))

	// Replacement keeps the original position.
	assert.Equal(t, "count", rec.Fields()[0].Name)
}

func TestRecordGetMissing(t *testing.T) {
	rec := NewRecord()
	_, ok := rec.Get("nope")
	assert.False(t, ok)
}

func TestRecordEqualOrderSensitive(t *testing.T) {
	a := NewRecord(F("x", Int{Type: ScalarI32, Val: 1}), F("y", Int{Type: ScalarI32, Val: 2}))
	b := NewRecord(F("y", Int{Type: ScalarI32, Val: 2}), F("x", Int{Type: ScalarI32, Val: 1}))
	c := NewRecord(F("x", Int{Type: ScalarI32, Val: 1}), F("y", Int{Type: ScalarI32, Val: 2}))

	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(c))
}

func TestSequenceEqual(t *testing.T) {
	a := Sequence{Int{Type: ScalarI32, Val: 1}, String("x")}
	b := Sequence{Int{Type: ScalarI32, Val: 1}, String("x")}
	c := Sequence{String("x"), Int{Type: ScalarI32, Val: 1}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Sequence{}))
}

func TestUnionEqual(t *testing.T) {
	a := Union{Variant: "ok", Value: Bool(true)}
	assert.True(t, a.Equal(Union{Variant: "ok", Value: Bool(true)}))
	assert.False(t, a.Equal(Union{Variant: "err", Value: Bool(true)}))
	assert.False(t, a.Equal(Union{Variant: "ok", Value: Bool(false)}))
}

func TestBytesEqual(t *testing.T) {
	assert.True(t, Bytes{1, 2}.Equal(Bytes{1, 2}))
	assert.False(t, Bytes{1, 2}.Equal(Bytes{2, 1}))
	assert.True(t, Bytes{}.Equal(Bytes(nil)))
}
