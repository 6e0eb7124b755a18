package analyze

import (
	"github.com/nextgenomics/nextplace/internal/gene"
	"github.com/nextgenomics/nextplace/internal/rng"
	"github.com/nextgenomics/nextplace/internal/seq"
	"github.com/nextgenomics/nextplace/internal/translate"
)

// AminoacidSubstitution is a single-codon amino-acid change.
type AminoacidSubstitution struct {
	Gene          string
	Codon         int // 0-based codon index within the gene
	RefAA         seq.AA
	QueryAA       seq.AA
	CodonNucRange rng.Range // reference coordinates of the codon's 3 bases
	RefContext    seq.NucSequence
	QueryContext  seq.NucSequence
}

// AminoacidDeletion is a codon entirely absent from the query peptide.
type AminoacidDeletion struct {
	Gene          string
	Codon         int
	RefAA         seq.AA
	CodonNucRange rng.Range
	RefContext    seq.NucSequence
	QueryContext  seq.NucSequence
}

// AADiff is the flat per-gene output of the amino-acid differ.
type AADiff struct {
	Substitutions []AminoacidSubstitution
	Deletions     []AminoacidDeletion
}

// DiffAminoAcids walks codons of a gene's reference and query peptides
// (equal length by construction, P3) and emits substitutions/deletions for
// every codon whose nucleotide range lies fully inside alignRange (§4.8).
// strippedRef/strippedQuery are the stripped-aligned pair the context
// windows are sliced from.
func DiffAminoAcids(gp translate.GenePeptide, g gene.Gene, alignRange rng.Range, strippedRef, strippedQuery seq.NucSequence) AADiff {
	var diff AADiff
	refLen := strippedRef.Len()

	numCodons := gp.RefPeptide.Len()
	for c := 0; c < numCodons; c++ {
		codonBegin := g.Start + 3*c
		codonEnd := codonBegin + 3
		codonRange := rng.Range{Begin: codonBegin, End: codonEnd}
		if !alignRange.ContainsRange(codonRange) {
			continue
		}

		refAA := gp.RefPeptide.At(c)
		queryAA := gp.QueryPeptide.At(c)

		ctxBegin := rng.Clamp(codonBegin-3, 0, refLen)
		ctxEnd := rng.Clamp(codonEnd+3, 0, refLen)
		refCtx := strippedRef.Slice(ctxBegin, ctxEnd)
		queryCtx := strippedQuery.Slice(ctxBegin, ctxEnd)

		switch {
		case queryAA.IsGap():
			diff.Deletions = append(diff.Deletions, AminoacidDeletion{
				Gene:          g.Name,
				Codon:         c,
				RefAA:         refAA,
				CodonNucRange: codonRange,
				RefContext:    refCtx,
				QueryContext:  queryCtx,
			})
		case queryAA != refAA && queryAA != seq.AAX:
			diff.Substitutions = append(diff.Substitutions, AminoacidSubstitution{
				Gene:          g.Name,
				Codon:         c,
				RefAA:         refAA,
				QueryAA:       queryAA,
				CodonNucRange: codonRange,
				RefContext:    refCtx,
				QueryContext:  queryCtx,
			})
		}
	}

	return diff
}
