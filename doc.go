// Package etdump converts structured runtime trace dumps between three
// forms: an in-memory typed record tree, canonical JSON, and the compact
// binary encoding produced by the external FlatBuffers schema compiler.
//
// Two independent record layouts exist, selected by Variant. A Codec is
// built for exactly one of them:
//
//	codec, err := etdump.New(etdump.VariantCurrent, flatc.NewTool(""))
//	blob, err := codec.Serialize(ctx, rec)
//	rec, err := codec.Deserialize(ctx, blob)
//
// JSON is the only representation this package manipulates structurally.
// Encoding is deterministic (declaration-order fields) and decoding is
// schema-directed: the target descriptor, not the JSON value, decides every
// scalar width and union variant. The binary form is opaque; it is staged
// to a scoped temporary workspace and exchanged with the compiler by path.
package etdump
