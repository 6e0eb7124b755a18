package codon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextgenomics/nextplace/internal/seq"
)

func triplet(s string) seq.Sequence[seq.Nuc] {
	out, err := seq.ParseNucSequence(s)
	if err != nil {
		panic(err)
	}
	return out
}

func TestDecodeCanonical(t *testing.T) {
	tests := []struct {
		codon string
		want  byte
	}{
		{"ATG", 'M'},
		{"GGT", 'G'},
		{"TGT", 'C'},
		{"TAA", '*'},
		{"TAG", '*'},
		{"TGA", '*'},
	}
	for _, tt := range tests {
		got := Decode(triplet(tt.codon))
		assert.Equal(t, tt.want, got.Char(), "Decode(%s)", tt.codon)
	}
}

func TestDecodeGap(t *testing.T) {
	assert.True(t, Decode(triplet("A-T")).IsGap())
	assert.True(t, Decode(triplet("---")).IsGap())
}

func TestDecodeUnambiguousResolution(t *testing.T) {
	// CTN all decode to Leucine regardless of the third position, so an N
	// there still resolves instead of falling back to X.
	got := Decode(triplet("CTN"))
	assert.Equal(t, byte('L'), got.Char())
}

func TestDecodeAmbiguousConflict(t *testing.T) {
	// TTY = TTT|TTC (Phe) but TTR = TTA|TTG (Leu); a position mixing codons
	// that disagree yields X.
	got := Decode(triplet("TTN"))
	assert.Equal(t, byte('X'), got.Char())
}

func TestDecodeAmbiguousStop(t *testing.T) {
	// TRA = TAA|TGA, both stops.
	got := Decode(triplet("TRA"))
	assert.True(t, got.IsStop())
}

func TestDecodeWrongLength(t *testing.T) {
	out, err := seq.ParseNucSequence("AT")
	require.NoError(t, err)
	got := Decode(out)
	assert.Equal(t, byte('X'), got.Char())
}

func TestIsStopCodon(t *testing.T) {
	assert.True(t, IsStopCodon(triplet("TAA")))
	assert.False(t, IsStopCodon(triplet("ATG")))
}

func TestDecodeBytes(t *testing.T) {
	got := DecodeBytes(seq.NucA, seq.NucT, seq.NucG)
	assert.Equal(t, byte('M'), got.Char())
}
