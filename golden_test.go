package etdump

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Golden files pin the canonical JSON form. Any diff here is a wire-format
// change and must be deliberate: downstream artifacts are diffed against
// this exact text.
func TestEncodeGolden(t *testing.T) {
	g := goldie.New(t)

	for _, variant := range []Variant{VariantLegacy, VariantCurrent} {
		t.Run(string(variant), func(t *testing.T) {
			out, err := Encode(sampleRecord(t, variant))
			require.NoError(t, err)
			g.Assert(t, "encode_"+string(variant), out)
		})
	}
}
