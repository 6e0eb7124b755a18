package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextgenomics/nextplace/internal/align"
	"github.com/nextgenomics/nextplace/internal/rng"
	"github.com/nextgenomics/nextplace/internal/seq"
)

func mustNuc(t *testing.T, s string) seq.NucSequence {
	t.Helper()
	out, err := seq.ParseNucSequence(s)
	require.NoError(t, err)
	return out
}

func TestDiffNucleotides(t *testing.T) {
	ref := mustNuc(t, "ACGTACGTACGT")
	query := mustNuc(t, "ACGTTC--ANNT")

	result := &align.Result{AlignedRef: ref, AlignedQuery: query}

	diff := DiffNucleotides(result)

	require.Len(t, diff.Substitutions, 1)
	assert.Equal(t, Substitution{Pos: 4, Ref: seq.NucA, Query: seq.NucT}, diff.Substitutions[0])

	require.Len(t, diff.Deletions, 1)
	assert.Equal(t, rng.Range{Begin: 6, End: 8}, diff.Deletions[0].Range)

	require.Len(t, diff.Missing, 1)
	assert.Equal(t, rng.Range{Begin: 9, End: 11}, diff.Missing[0].Range)
}

func TestDiffNucleotidesNoChanges(t *testing.T) {
	ref := mustNuc(t, "ACGTACGT")
	result := &align.Result{AlignedRef: ref, AlignedQuery: ref}

	diff := DiffNucleotides(result)
	assert.Empty(t, diff.Substitutions)
	assert.Empty(t, diff.Deletions)
	assert.Empty(t, diff.Missing)
}

func TestDiffNucleotidesAmbiguousCompatibleIsNotASubstitution(t *testing.T) {
	// An ambiguity code in the query (not N, not a deletion) falls outside
	// what DiffNucleotides reports: only canonical-vs-canonical mismatches
	// are substitutions.
	ref := mustNuc(t, "ACGT")
	query := mustNuc(t, "AYGT") // Y (C or T) at position 1, compatible with the reference C
	result := &align.Result{AlignedRef: ref, AlignedQuery: query}

	diff := DiffNucleotides(result)
	assert.Empty(t, diff.Substitutions)
}

func TestDiffNucleotidesCarriesInsertionsThrough(t *testing.T) {
	ref := mustNuc(t, "ACGT")
	ins := []align.Insertion{{Pos: 2, Length: 3, Ins: mustNuc(t, "TTT")}}
	result := &align.Result{AlignedRef: ref, AlignedQuery: ref, Insertions: ins}

	diff := DiffNucleotides(result)
	assert.Equal(t, ins, diff.Insertions)
}

func TestDiffNucleotidesPanicsOnLengthMismatch(t *testing.T) {
	ref := mustNuc(t, "ACGT")
	query := mustNuc(t, "ACG")
	result := &align.Result{AlignedRef: ref, AlignedQuery: query}

	assert.Panics(t, func() { DiffNucleotides(result) })
}
