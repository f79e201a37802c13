package etdump

// FieldKind classifies a descriptor field as scalar, nested record,
// sequence, or tagged union.
type FieldKind uint8

const (
	KindScalar FieldKind = iota + 1
	KindRecord
	KindSequence
	KindUnion
)

// Descriptor describes the field layout of one record type. Decoding is
// driven entirely by descriptors: the declared type of each field, never the
// shape of the JSON, decides how a value is reconstructed.
type Descriptor struct {
	Name   string
	Fields []FieldDesc
}

// FieldDesc describes a single field. Exactly one of Scalar, Record, Elem,
// or Variants is meaningful, selected by Kind.
type FieldDesc struct {
	Name     string
	Kind     FieldKind
	Scalar   ScalarType    // KindScalar
	Record   *Descriptor   // KindRecord
	Elem     *FieldDesc    // KindSequence: element type (Name unused)
	Variants []VariantDesc // KindUnion
	Optional bool
}

// VariantDesc names one admissible variant of a tagged union and describes
// its payload type.
type VariantDesc struct {
	Name    string
	Payload FieldDesc // Name unused
}

// ScalarField describes a required scalar field.
func ScalarField(name string, t ScalarType) FieldDesc {
	return FieldDesc{Name: name, Kind: KindScalar, Scalar: t}
}

// RecordField describes a required nested-record field.
func RecordField(name string, d *Descriptor) FieldDesc {
	return FieldDesc{Name: name, Kind: KindRecord, Record: d}
}

// SequenceField describes a required sequence field with the given element type.
func SequenceField(name string, elem FieldDesc) FieldDesc {
	elem.Name = ""
	return FieldDesc{Name: name, Kind: KindSequence, Elem: &elem}
}

// UnionField describes a required tagged-union field.
func UnionField(name string, variants ...VariantDesc) FieldDesc {
	return FieldDesc{Name: name, Kind: KindUnion, Variants: variants}
}

// VariantOf names one union alternative with its payload type.
func VariantOf(name string, payload FieldDesc) VariantDesc {
	payload.Name = ""
	return VariantDesc{Name: name, Payload: payload}
}

// Opt marks a field descriptor optional. Optional fields may be absent from
// the JSON without a decode error.
func Opt(f FieldDesc) FieldDesc {
	f.Optional = true
	return f
}

// variantNames returns the declared variant names in order.
func (f FieldDesc) variantNames() []string {
	names := make([]string, len(f.Variants))
	for i, v := range f.Variants {
		names[i] = v.Name
	}
	return names
}
