// Package workspace provides scoped temporary directories for staging
// conversion artifacts. Each conversion call owns one workspace; the
// directory and everything in it is removed on every exit path, so no
// staging files outlive the call that created them.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// IOError reports a filesystem failure inside a workspace.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("workspace %s %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOError reports whether err is (or wraps) a workspace IOError.
func IsIOError(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}

// Workspace is an ephemeral staging directory. It is only valid inside the
// With callback that received it.
type Workspace struct {
	id  string
	dir string
}

// With creates a fresh, uniquely named workspace directory, invokes fn with
// it, and removes the directory tree before returning. Removal happens on
// normal return, on error, and on panic. Concurrent calls always receive
// independent directories.
func With(fn func(ws *Workspace) error) error {
	id := uuid.NewString()
	dir := filepath.Join(os.TempDir(), "etdump-"+id)
	if err := os.Mkdir(dir, 0o700); err != nil {
		return &IOError{Op: "create", Path: dir, Err: err}
	}
	defer os.RemoveAll(dir)
	return fn(&Workspace{id: id, dir: dir})
}

// ID returns the workspace's unique identifier, for diagnostics.
func (w *Workspace) ID() string {
	return w.id
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path resolves a relative file name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// WriteFile stages a file under a name relative to the workspace root.
func (w *Workspace) WriteFile(name string, data []byte) error {
	path, err := w.resolve(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// ReadFile reads a staged file by its name relative to the workspace root.
func (w *Workspace) ReadFile(name string) ([]byte, error) {
	path, err := w.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// resolve rejects names that would escape the workspace directory.
func (w *Workspace) resolve(name string) (string, error) {
	if name == "" || filepath.IsAbs(name) {
		return "", &IOError{Op: "resolve", Path: name, Err: errors.New("name must be relative")}
	}
	path := filepath.Join(w.dir, name)
	if path != w.dir && !strings.HasPrefix(path, w.dir+string(filepath.Separator)) {
		return "", &IOError{Op: "resolve", Path: name, Err: errors.New("name escapes workspace")}
	}
	return path, nil
}
