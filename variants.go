package etdump

import (
	"fmt"

	"github.com/edgetrace/etdump/schema"
)

// Variant selects which of the two dump record layouts a codec targets. The
// layouts are siblings, not versions of one another: a codec built for one
// never accepts the other's records or payloads.
type Variant string

const (
	// VariantLegacy is the flat profile-event layout emitted by older
	// runtimes.
	VariantLegacy Variant = "legacy"

	// VariantCurrent is the event-based layout with debug payloads.
	VariantCurrent Variant = "current"
)

// ParseVariant converts a user-supplied string into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantLegacy, VariantCurrent:
		return Variant(s), nil
	}
	return "", fmt.Errorf("unknown schema variant %q (want %q or %q)", s, VariantLegacy, VariantCurrent)
}

// SchemaName returns the schema resource name backing the variant.
func (v Variant) SchemaName() (string, error) {
	switch v {
	case VariantLegacy:
		return schema.Legacy, nil
	case VariantCurrent:
		return schema.Current, nil
	}
	return "", fmt.Errorf("unknown schema variant %q", string(v))
}

// Descriptor returns the record descriptor for the variant, or nil for an
// unknown variant. Descriptors are shared and must not be mutated.
func (v Variant) Descriptor() *Descriptor {
	switch v {
	case VariantLegacy:
		return legacyDescriptor
	case VariantCurrent:
		return currentDescriptor
	}
	return nil
}

// Field layouts mirror the embedded .fbs schemas (schema/fbs). The compiler
// reads the schema text; this codec reads these descriptors. They must stay
// in lockstep.

var allocatorDescriptor = &Descriptor{
	Name: "Allocator",
	Fields: []FieldDesc{
		ScalarField("id", ScalarI32),
		ScalarField("name", ScalarString),
	},
}

var legacyDescriptor = &Descriptor{
	Name: "ETDumpLegacy",
	Fields: []FieldDesc{
		ScalarField("version", ScalarI32),
		SequenceField("run_blocks", RecordField("", &Descriptor{
			Name: "RunBlock",
			Fields: []FieldDesc{
				ScalarField("name", ScalarString),
				Opt(SequenceField("allocators", RecordField("", allocatorDescriptor))),
				SequenceField("profile_events", RecordField("", &Descriptor{
					Name: "ProfileEvent",
					Fields: []FieldDesc{
						ScalarField("name", ScalarString),
						ScalarField("chain_id", ScalarI32),
						ScalarField("start_time", ScalarU64),
						ScalarField("end_time", ScalarU64),
					},
				})),
			},
		})),
	},
}

var currentDescriptor = &Descriptor{
	Name: "ETDump",
	Fields: []FieldDesc{
		ScalarField("version", ScalarI32),
		SequenceField("run_data", RecordField("", &Descriptor{
			Name: "RunData",
			Fields: []FieldDesc{
				ScalarField("name", ScalarString),
				Opt(ScalarField("bundled_index", ScalarI32)),
				Opt(SequenceField("allocators", RecordField("", allocatorDescriptor))),
				SequenceField("events", RecordField("", &Descriptor{
					Name: "Event",
					Fields: []FieldDesc{
						Opt(RecordField("profile_event", &Descriptor{
							Name: "ProfileEvent",
							Fields: []FieldDesc{
								ScalarField("name", ScalarString),
								ScalarField("instruction_id", ScalarI64),
								ScalarField("start_time", ScalarU64),
								ScalarField("end_time", ScalarU64),
							},
						})),
						Opt(RecordField("debug_event", &Descriptor{
							Name: "DebugEvent",
							Fields: []FieldDesc{
								ScalarField("instruction_id", ScalarI64),
								UnionField("value",
									VariantOf("int", ScalarField("", ScalarI64)),
									VariantOf("double", ScalarField("", ScalarF64)),
									VariantOf("bool", ScalarField("", ScalarBool)),
									VariantOf("output", ScalarField("", ScalarBool)),
								),
							},
						})),
					},
				})),
			},
		})),
	},
}
