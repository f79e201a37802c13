package etdump

import (
	"errors"
	"fmt"
	"strings"
)

// MissingFieldError reports a field the target schema requires but the JSON
// does not contain. Path is the full dotted path from the record root, with
// sequence indices in brackets (for example "run_data[2].events[0].name").
type MissingFieldError struct {
	Path string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Path)
}

// UnknownVariantError reports a tagged-union discriminator outside the
// schema's declared variant set.
type UnknownVariantError struct {
	Path     string
	Variant  string
	Declared []string
}

// Error implements the error interface.
func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown variant %q at %q (declared: %s)",
		e.Variant, e.Path, strings.Join(e.Declared, ", "))
}

// IsMissingField reports whether err is (or wraps) a MissingFieldError.
func IsMissingField(err error) bool {
	var me *MissingFieldError
	return errors.As(err, &me)
}

// IsUnknownVariant reports whether err is (or wraps) an UnknownVariantError.
func IsUnknownVariant(err error) bool {
	var ue *UnknownVariantError
	return errors.As(err, &ue)
}

// joinPath appends a field name to a dotted path. The root path is empty.
func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// indexPath appends a sequence index to a path.
func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
