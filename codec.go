package etdump

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/edgetrace/etdump/flatc"
	"github.com/edgetrace/etdump/schema"
	"github.com/edgetrace/etdump/workspace"
)

// Codec converts typed dump records to and from the compiled binary form for
// one schema variant. Every conversion stages its files in a private
// workspace that is removed before the call returns, so concurrent use from
// multiple goroutines is safe.
type Codec struct {
	variant    Variant
	desc       *Descriptor
	schemaName string
	tool       flatc.Transcoder
}

// New builds a codec for the given variant. The transcoder is a required
// capability; pass flatc.NewTool("") for the real compiler.
func New(v Variant, tool flatc.Transcoder) (*Codec, error) {
	name, err := v.SchemaName()
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, fmt.Errorf("codec: nil transcoder")
	}
	return &Codec{
		variant:    v,
		desc:       v.Descriptor(),
		schemaName: name,
		tool:       tool,
	}, nil
}

// Variant returns the schema variant this codec targets.
func (c *Codec) Variant() Variant {
	return c.variant
}

// Descriptor returns the record descriptor this codec decodes against.
func (c *Codec) Descriptor() *Descriptor {
	return c.desc
}

// Serialize converts a record into its compiled binary form: the record is
// encoded to canonical JSON, staged with the variant's schema, handed to the
// compiler, and the compiled payload read back. On any failure no bytes are
// returned and the staging directory is already gone.
func (c *Codec) Serialize(ctx context.Context, rec *Record) ([]byte, error) {
	payload, err := Encode(rec)
	if err != nil {
		return nil, err
	}
	var blob []byte
	err = workspace.With(func(ws *workspace.Workspace) error {
		schemaPath, err := c.stageSchemas(ws)
		if err != nil {
			return err
		}
		jsonName := c.schemaName + ".json"
		if err := ws.WriteFile(jsonName, payload); err != nil {
			return err
		}
		out, err := c.tool.Compile(ctx, schemaPath, ws.Path(jsonName))
		if err != nil {
			return err
		}
		blob, err = ws.ReadFile(filepath.Base(out))
		return err
	})
	if err != nil {
		return nil, err
	}
	return blob, nil
}

// Deserialize converts a compiled binary payload back into a typed record:
// the payload is staged with the variant's schema, decompiled to JSON, and
// decoded against the variant's descriptor.
func (c *Codec) Deserialize(ctx context.Context, blob []byte) (*Record, error) {
	var rec *Record
	err := workspace.With(func(ws *workspace.Workspace) error {
		schemaPath, err := c.stageSchemas(ws)
		if err != nil {
			return err
		}
		binName := c.schemaName + flatc.BinaryExt
		if err := ws.WriteFile(binName, blob); err != nil {
			return err
		}
		out, err := c.tool.Decompile(ctx, schemaPath, ws.Path(binName))
		if err != nil {
			return err
		}
		payload, err := ws.ReadFile(filepath.Base(out))
		if err != nil {
			return err
		}
		rec, err = Decode(payload, c.desc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// stageSchemas writes the variant's schema and the shared scalar-type schema
// into the workspace and returns the variant schema's path. Both files are
// needed: the variant schema includes the scalar-type schema by name.
func (c *Codec) stageSchemas(ws *workspace.Workspace) (string, error) {
	for _, name := range []string{c.schemaName, schema.ScalarType} {
		text, err := schema.Resource(name)
		if err != nil {
			return "", err
		}
		if err := ws.WriteFile(name+schema.Ext, text); err != nil {
			return "", err
		}
	}
	return ws.Path(c.schemaName + schema.Ext), nil
}
