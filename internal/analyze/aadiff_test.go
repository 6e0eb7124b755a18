package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextgenomics/nextplace/internal/gene"
	"github.com/nextgenomics/nextplace/internal/rng"
	"github.com/nextgenomics/nextplace/internal/seq"
	"github.com/nextgenomics/nextplace/internal/translate"
)

func mustAA(t *testing.T, s string) seq.AASequence {
	t.Helper()
	out, err := seq.ParseAASequence(s)
	require.NoError(t, err)
	return out
}

func testGenePeptideAndGene(t *testing.T) (translate.GenePeptide, gene.Gene, seq.NucSequence, seq.NucSequence) {
	t.Helper()
	// Codon 0: ATG/ATG (Met, no change). Codon 1: GGT/TGT (Gly -> Cys).
	// Codon 2: CGA deleted entirely from the query.
	gp := translate.GenePeptide{
		Gene:         "g",
		RefPeptide:   mustAA(t, "MGR"),
		QueryPeptide: mustAA(t, "MC-"),
	}
	g := gene.Gene{Name: "g", Start: 0, End: 9, Strand: gene.Forward, Frame: 0}
	strippedRef := mustNuc(t, "ATGGGTCGA")
	strippedQuery := mustNuc(t, "ATGTGT---")
	return gp, g, strippedRef, strippedQuery
}

func TestDiffAminoAcidsSubstitutionAndDeletion(t *testing.T) {
	gp, g, strippedRef, strippedQuery := testGenePeptideAndGene(t)
	alignRange := rng.New(0, 9)

	diff := DiffAminoAcids(gp, g, alignRange, strippedRef, strippedQuery)

	require.Len(t, diff.Substitutions, 1)
	sub := diff.Substitutions[0]
	assert.Equal(t, 1, sub.Codon)
	assert.Equal(t, byte('G'), sub.RefAA.Char())
	assert.Equal(t, byte('C'), sub.QueryAA.Char())
	assert.Equal(t, rng.Range{Begin: 3, End: 6}, sub.CodonNucRange)
	assert.Equal(t, "ATGGGTCGA", sub.RefContext.Chars())
	assert.Equal(t, "ATGTGT---", sub.QueryContext.Chars())

	require.Len(t, diff.Deletions, 1)
	del := diff.Deletions[0]
	assert.Equal(t, 2, del.Codon)
	assert.Equal(t, byte('R'), del.RefAA.Char())
	assert.Equal(t, rng.Range{Begin: 6, End: 9}, del.CodonNucRange)
	assert.Equal(t, "GGTCGA", del.RefContext.Chars())
	assert.Equal(t, "TGT---", del.QueryContext.Chars())
}

func TestDiffAminoAcidsExcludesCodonsOutsideAlignRange(t *testing.T) {
	gp, g, strippedRef, strippedQuery := testGenePeptideAndGene(t)
	alignRange := rng.New(0, 6) // codon 2 ([6,9)) falls outside

	diff := DiffAminoAcids(gp, g, alignRange, strippedRef, strippedQuery)

	assert.Empty(t, diff.Deletions)
	require.Len(t, diff.Substitutions, 1)
	assert.Equal(t, 1, diff.Substitutions[0].Codon)
}

func TestDiffAminoAcidsNoChangeForMatchingCodon(t *testing.T) {
	gp := translate.GenePeptide{
		Gene:         "g",
		RefPeptide:   mustAA(t, "MGR"),
		QueryPeptide: mustAA(t, "MGR"),
	}
	g := gene.Gene{Name: "g", Start: 0, End: 9, Strand: gene.Forward, Frame: 0}
	strippedRef := mustNuc(t, "ATGGGTCGA")

	diff := DiffAminoAcids(gp, g, rng.New(0, 9), strippedRef, strippedRef)
	assert.Empty(t, diff.Substitutions)
	assert.Empty(t, diff.Deletions)
}

func TestDiffAminoAcidsUnresolvedXIsNotReported(t *testing.T) {
	gp := translate.GenePeptide{
		Gene:         "g",
		RefPeptide:   mustAA(t, "MGR"),
		QueryPeptide: mustAA(t, "MXR"),
	}
	g := gene.Gene{Name: "g", Start: 0, End: 9, Strand: gene.Forward, Frame: 0}
	strippedRef := mustNuc(t, "ATGGGTCGA")
	strippedQuery := mustNuc(t, "ATGNNNCGA")

	diff := DiffAminoAcids(gp, g, rng.New(0, 9), strippedRef, strippedQuery)
	assert.Empty(t, diff.Substitutions, "an unresolved X query codon is not reported as a substitution")
}
