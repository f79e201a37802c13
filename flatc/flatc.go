// Package flatc invokes the external FlatBuffers schema compiler to
// transcode between JSON and binary dump payloads. The compiler is a
// separate process; this package treats one invocation as the unit of
// failure and never interprets its output beyond locating the produced
// file.
package flatc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultBin is the compiler binary looked up on PATH when no explicit
// path is configured.
const DefaultBin = "flatc"

// BinaryExt is the extension of compiled payloads, fixed by the schema's
// file_extension declaration.
const BinaryExt = ".etdp"

// Transcoder is the compile/decompile capability the dump codec depends on.
// It is injected explicitly so tests can substitute an in-memory
// implementation that never spawns a process.
type Transcoder interface {
	// Compile transcodes a JSON payload to binary using the given schema.
	// It returns the path of the produced binary file, which lives in the
	// same directory as the inputs.
	Compile(ctx context.Context, schemaPath, jsonPath string) (string, error)

	// Decompile transcodes a binary payload back to JSON using the given
	// schema, returning the path of the produced JSON file.
	Decompile(ctx context.Context, schemaPath, binPath string) (string, error)
}

// CompilerError reports a failed compiler invocation: a non-zero exit, a
// cancelled context, or a run that produced no output file. Output carries
// the tool's combined diagnostic text.
type CompilerError struct {
	Op     string // "compile" or "decompile"
	Args   []string
	Output string
	Err    error
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	msg := fmt.Sprintf("flatc %s failed: %v", e.Op, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// Unwrap returns the underlying process or filesystem error.
func (e *CompilerError) Unwrap() error {
	return e.Err
}

// IsCompilerError reports whether err is (or wraps) a CompilerError.
func IsCompilerError(err error) bool {
	var ce *CompilerError
	return errors.As(err, &ce)
}

// Tool runs the real flatc binary.
type Tool struct {
	bin       string
	extraArgs []string
}

// NewTool creates a Tool. An empty bin means DefaultBin resolved via PATH.
// Extra arguments are appended to every invocation, before the input files.
func NewTool(bin string, extraArgs ...string) *Tool {
	if bin == "" {
		bin = DefaultBin
	}
	return &Tool{bin: bin, extraArgs: extraArgs}
}

// Compile implements Transcoder. The output file is named after the JSON
// payload with the binary extension, in the payload's directory.
func (t *Tool) Compile(ctx context.Context, schemaPath, jsonPath string) (string, error) {
	dir := filepath.Dir(jsonPath)
	args := []string{"-o", dir, "--strict-json", "--binary", schemaPath, jsonPath}
	if err := t.run(ctx, "compile", args); err != nil {
		return "", err
	}
	out := filepath.Join(dir, trimExt(filepath.Base(jsonPath))+BinaryExt)
	if err := requireOutput("compile", args, out); err != nil {
		return "", err
	}
	return out, nil
}

// Decompile implements Transcoder. The output file is named after the
// binary payload with a .json extension, in the payload's directory.
func (t *Tool) Decompile(ctx context.Context, schemaPath, binPath string) (string, error) {
	dir := filepath.Dir(binPath)
	args := []string{"-o", dir, "--strict-json", "--raw-binary", "--json", schemaPath, "--", binPath}
	if err := t.run(ctx, "decompile", args); err != nil {
		return "", err
	}
	out := filepath.Join(dir, trimExt(filepath.Base(binPath))+".json")
	if err := requireOutput("decompile", args, out); err != nil {
		return "", err
	}
	return out, nil
}

func (t *Tool) run(ctx context.Context, op string, args []string) error {
	full := append(append([]string{}, t.extraArgs...), args...)
	cmd := exec.CommandContext(ctx, t.bin, full...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		// Prefer the context error so deadline overruns are recognizable.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return &CompilerError{Op: op, Args: full, Output: string(output), Err: err}
	}
	return nil
}

// requireOutput verifies the compiler actually produced the expected file.
func requireOutput(op string, args []string, path string) error {
	if _, err := os.Stat(path); err != nil {
		return &CompilerError{
			Op:     op,
			Args:   args,
			Output: "",
			Err:    fmt.Errorf("compiler produced no output at %s: %w", path, err),
		}
	}
	return nil
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
