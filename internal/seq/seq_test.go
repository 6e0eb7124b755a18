package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNucFromChar(t *testing.T) {
	n, err := NucFromChar('A')
	require.NoError(t, err)
	assert.Equal(t, NucA, n)

	_, err = NucFromChar('Z')
	require.Error(t, err)
	var invalid *InvalidLetterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, byte('Z'), invalid.Char)
}

func TestNucCharRoundTrip(t *testing.T) {
	for _, c := range []byte{'A', 'C', 'G', 'T', 'R', 'Y', 'S', 'W', 'K', 'M', 'B', 'D', 'H', 'V', 'N', '-'} {
		n, err := NucFromChar(c)
		require.NoError(t, err)
		assert.Equal(t, c, n.Char())
	}
}

func TestNucComplement(t *testing.T) {
	tests := []struct {
		in, want Nuc
	}{
		{NucA, NucT}, {NucT, NucA}, {NucC, NucG}, {NucG, NucC},
		{NucR, NucY}, {NucY, NucR}, {NucS, NucS}, {NucW, NucW},
		{NucK, NucM}, {NucM, NucK}, {NucB, NucV}, {NucV, NucB},
		{NucD, NucH}, {NucH, NucD}, {NucN, NucN}, {NucGap, NucGap},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Complement(), "complement of %v", tt.in)
	}
}

func TestNucExpand(t *testing.T) {
	assert.ElementsMatch(t, []Nuc{NucA}, NucA.Expand())
	assert.ElementsMatch(t, []Nuc{NucA, NucG}, NucR.Expand())
	assert.ElementsMatch(t, []Nuc{NucA, NucC, NucG, NucT}, NucN.Expand())
	assert.Empty(t, NucGap.Expand())
}

func TestNucClassification(t *testing.T) {
	assert.True(t, NucA.IsCanonical())
	assert.False(t, NucR.IsCanonical())
	assert.True(t, NucR.IsAmbiguous())
	assert.False(t, NucA.IsAmbiguous())
	assert.True(t, NucGap.IsGap())
	assert.False(t, NucGap.IsAmbiguous())
}

func TestAAFromChar(t *testing.T) {
	a, err := AAFromChar('M')
	require.NoError(t, err)
	assert.Equal(t, AAMet, a)

	stop, err := AAFromChar('*')
	require.NoError(t, err)
	assert.True(t, stop.IsStop())

	_, err = AAFromChar('9')
	require.Error(t, err)
}

func TestParseNucSequence(t *testing.T) {
	s, err := ParseNucSequence("ACGT-N")
	require.NoError(t, err)
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, `"ACGT-N"`, s.String())
	assert.Equal(t, "ACGT-N", s.Chars())
	assert.Equal(t, 1, s.CountGaps())

	_, err = ParseNucSequence("ACGTZ")
	require.Error(t, err)
}

func TestParseAASequence(t *testing.T) {
	s, err := ParseAASequence("MGR*")
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, AAMet, s.At(0))
	assert.True(t, s.At(3).IsStop())
}

func TestSequenceSliceIsAView(t *testing.T) {
	s, err := ParseNucSequence("ACGTACGT")
	require.NoError(t, err)

	sub := s.Slice(2, 5)
	assert.Equal(t, "GTA", sub.Chars())

	sub.Set(0, NucN)
	assert.Equal(t, byte('N'), s.At(2).Char(), "Slice must share the backing array")
}

func TestSequenceCloneIsIndependent(t *testing.T) {
	s, err := ParseNucSequence("ACGT")
	require.NoError(t, err)

	clone := s.Clone()
	clone.Set(0, NucN)
	assert.Equal(t, byte('A'), s.At(0).Char())
	assert.Equal(t, byte('N'), clone.At(0).Char())
}

func TestSequenceEqual(t *testing.T) {
	a, _ := ParseNucSequence("ACGT")
	b, _ := ParseNucSequence("ACGT")
	c, _ := ParseNucSequence("ACGG")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(a.Slice(0, 3)))
}

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ATGC", "GCAT"},
		{"AAAA", "TTTT"},
		{"", ""},
		{"ATAT", "ATAT"},
		{"RYSWKM", "KMWSRY"},
	}
	for _, tt := range tests {
		s, err := ParseNucSequence(tt.in)
		require.NoError(t, err)
		got := ReverseComplement(s)
		assert.Equal(t, tt.want, got.Chars())
	}
}
