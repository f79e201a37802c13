// Package schema supplies the embedded schema definition texts that drive
// the external flatc compiler. Three logical resources exist: the legacy
// record schema, the current record schema, and the shared scalar-type
// schema both depend on. Content is fixed at build time and never mutated.
package schema

import (
	"embed"
	"fmt"
	"sort"
)

//go:embed fbs/*.fbs
var fbsFS embed.FS

// Logical resource names.
const (
	Legacy     = "etdump_legacy"
	Current    = "etdump"
	ScalarType = "scalar_type"
)

// Ext is the filename extension schema texts are staged under.
const Ext = ".fbs"

// NotFoundError reports a request for a schema resource name outside the
// known set. This is a programmer error, not an input error.
type NotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown schema resource %q", e.Name)
}

// Resource returns the schema text for a logical name. The returned slice is
// a copy; callers may keep or modify it freely.
func Resource(name string) ([]byte, error) {
	switch name {
	case Legacy, Current, ScalarType:
	default:
		return nil, &NotFoundError{Name: name}
	}
	data, err := fbsFS.ReadFile("fbs/" + name + Ext)
	if err != nil {
		// Embedded content is fixed at build time; a miss here means the
		// binary itself is broken.
		return nil, fmt.Errorf("read embedded schema %q: %w", name, err)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Names returns the known resource names, sorted.
func Names() []string {
	names := []string{Legacy, Current, ScalarType}
	sort.Strings(names)
	return names
}
