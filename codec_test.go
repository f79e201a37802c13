package etdump

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgetrace/etdump/flatc"
	"github.com/edgetrace/etdump/schema"
)

// fakeMagic marks payloads produced by the fake transcoder so decompile can
// detect being handed something it did not produce.
var fakeMagic = []byte("ETDPFAKE")

// fakeTranscoder stands in for the external compiler: compile prefixes the
// JSON with a magic header, decompile strips it. It records every staging
// directory it sees so tests can verify workspace teardown.
type fakeTranscoder struct {
	mu         sync.Mutex
	dirs       []string
	schemas    []string
	compileErr error
}

func (f *fakeTranscoder) observe(schemaPath, payloadPath string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirs = append(f.dirs, filepath.Dir(payloadPath))
	f.schemas = append(f.schemas, filepath.Base(schemaPath))
}

func (f *fakeTranscoder) Compile(ctx context.Context, schemaPath, jsonPath string) (string, error) {
	f.observe(schemaPath, jsonPath)
	if f.compileErr != nil {
		return "", f.compileErr
	}
	payload, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", err
	}
	out := strings.TrimSuffix(jsonPath, ".json") + flatc.BinaryExt
	if err := os.WriteFile(out, append(append([]byte{}, fakeMagic...), payload...), 0o600); err != nil {
		return "", err
	}
	return out, nil
}

func (f *fakeTranscoder) Decompile(ctx context.Context, schemaPath, binPath string) (string, error) {
	f.observe(schemaPath, binPath)
	blob, err := os.ReadFile(binPath)
	if err != nil {
		return "", err
	}
	if len(blob) < len(fakeMagic) || string(blob[:len(fakeMagic)]) != string(fakeMagic) {
		return "", &flatc.CompilerError{Op: "decompile", Output: "not a compiled payload", Err: fmt.Errorf("bad magic")}
	}
	out := strings.TrimSuffix(binPath, flatc.BinaryExt) + ".json"
	if err := os.WriteFile(out, blob[len(fakeMagic):], 0o600); err != nil {
		return "", err
	}
	return out, nil
}

func (f *fakeTranscoder) seenDirs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.dirs...)
}

func TestNewRejectsBadInputs(t *testing.T) {
	_, err := New(Variant("bogus"), &fakeTranscoder{})
	assert.Error(t, err)

	_, err = New(VariantCurrent, nil)
	assert.Error(t, err)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	for _, variant := range []Variant{VariantLegacy, VariantCurrent} {
		t.Run(string(variant), func(t *testing.T) {
			codec, err := New(variant, &fakeTranscoder{})
			require.NoError(t, err)

			original := sampleRecord(t, variant)
			blob, err := codec.Serialize(context.Background(), original)
			require.NoError(t, err)
			require.NotEmpty(t, blob)

			decoded, err := codec.Deserialize(context.Background(), blob)
			require.NoError(t, err)
			assert.True(t, original.Equal(decoded))
		})
	}
}

func TestSerializeStagesVariantSchema(t *testing.T) {
	fake := &fakeTranscoder{}
	codec, err := New(VariantLegacy, fake)
	require.NoError(t, err)

	_, err = codec.Serialize(context.Background(), sampleRecord(t, VariantLegacy))
	require.NoError(t, err)
	require.Len(t, fake.schemas, 1)
	assert.Equal(t, schema.Legacy+schema.Ext, fake.schemas[0])

	// The shared scalar-type schema is staged alongside it.
	// (The directory is gone by now; the fake saw it while it existed.)
}

func TestWorkspaceRemovedAfterSuccess(t *testing.T) {
	fake := &fakeTranscoder{}
	codec, err := New(VariantCurrent, fake)
	require.NoError(t, err)

	blob, err := codec.Serialize(context.Background(), sampleRecord(t, VariantCurrent))
	require.NoError(t, err)
	_, err = codec.Deserialize(context.Background(), blob)
	require.NoError(t, err)

	dirs := fake.seenDirs()
	require.Len(t, dirs, 2)
	for _, dir := range dirs {
		_, statErr := os.Stat(dir)
		assert.True(t, os.IsNotExist(statErr), "workspace %s should be removed", dir)
	}
}

func TestWorkspaceRemovedAfterCompilerFailure(t *testing.T) {
	fake := &fakeTranscoder{
		compileErr: &flatc.CompilerError{Op: "compile", Output: "schema mismatch", Err: fmt.Errorf("exit status 1")},
	}
	codec, err := New(VariantCurrent, fake)
	require.NoError(t, err)

	_, err = codec.Serialize(context.Background(), sampleRecord(t, VariantCurrent))
	require.Error(t, err)
	assert.True(t, flatc.IsCompilerError(err))
	assert.Contains(t, err.Error(), "schema mismatch")

	dirs := fake.seenDirs()
	require.Len(t, dirs, 1)
	_, statErr := os.Stat(dirs[0])
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeserializeRejectsMalformedBlob(t *testing.T) {
	codec, err := New(VariantCurrent, &fakeTranscoder{})
	require.NoError(t, err)

	_, err = codec.Deserialize(context.Background(), []byte("not a compiled payload"))
	require.Error(t, err)
	assert.True(t, flatc.IsCompilerError(err))
}

func TestCrossVariantMismatchDetected(t *testing.T) {
	// A payload serialized under the legacy layout must not deserialize
	// under the current layout, even though both are structurally similar.
	legacy, err := New(VariantLegacy, &fakeTranscoder{})
	require.NoError(t, err)
	current, err := New(VariantCurrent, &fakeTranscoder{})
	require.NoError(t, err)

	blob, err := legacy.Serialize(context.Background(), sampleRecord(t, VariantLegacy))
	require.NoError(t, err)

	_, err = current.Deserialize(context.Background(), blob)
	require.Error(t, err)
	require.True(t, IsMissingField(err))

	var me *MissingFieldError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "run_data", me.Path)
}

func TestSerializeInvalidRecordReturnsNothing(t *testing.T) {
	fake := &fakeTranscoder{}
	codec, err := New(VariantCurrent, fake)
	require.NoError(t, err)

	rec := NewRecord(F("bad", nil))
	blob, err := codec.Serialize(context.Background(), rec)
	require.Error(t, err)
	assert.Nil(t, blob)
	// Encode failed before any staging happened.
	assert.Empty(t, fake.seenDirs())
}

func TestConcurrentSerializeIsIndependent(t *testing.T) {
	fake := &fakeTranscoder{}
	codec, err := New(VariantCurrent, fake)
	require.NoError(t, err)

	const calls = 8
	var wg sync.WaitGroup
	errs := make([]error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = codec.Serialize(context.Background(), sampleRecord(t, VariantCurrent))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "call %d", i)
	}
	dirs := fake.seenDirs()
	require.Len(t, dirs, calls)
	seen := make(map[string]bool, calls)
	for _, dir := range dirs {
		assert.False(t, seen[dir], "workspace %s reused across calls", dir)
		seen[dir] = true
	}
}
