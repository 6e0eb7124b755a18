package analyze

import (
	"github.com/nextgenomics/nextplace/internal/translate"
)

// AAChangeRef identifies one amino-acid change by gene and codon index, for
// cross-linking without duplicating the full record.
type AAChangeRef struct {
	Gene      string
	Codon     int
	IsDeletion bool
}

// LinkedNucSub is a nucleotide substitution together with every
// amino-acid change whose codon range contains its position (§4.10).
type LinkedNucSub struct {
	Substitution
	AAChanges []AAChangeRef
}

// LinkedAASub is an amino-acid substitution together with the nucleotide
// substitutions and deletions that fall within its codon range (§4.10).
type LinkedAASub struct {
	AminoacidSubstitution
	NucSubstitutions []Substitution
	NucDeletions     []DeletionRun
}

// LinkedAADel mirrors LinkedAASub for amino-acid deletions.
type LinkedAADel struct {
	AminoacidDeletion
	NucSubstitutions []Substitution
	NucDeletions     []DeletionRun
}

// Assembled is the final cross-linked per-query result (C10).
type Assembled struct {
	NucDiff      NucDiff
	GenePeptides []translate.GenePeptide
	AADiffs      map[string]AADiff
	FrameShifts  []translate.FrameShift

	LinkedNucSubs []LinkedNucSub
	LinkedAASubs  []LinkedAASub
	LinkedAADels  []LinkedAADel
}

// Assemble cross-links the flat nucleotide and amino-acid diffs (§4.10):
// every amino-acid change is paired with the nucleotide substitutions and
// deletions inside its codon range, and every nucleotide substitution is
// paired with the amino-acid changes whose codon range contains it. Both
// directions agree by construction (L1).
func Assemble(nucDiff NucDiff, genePeptides []translate.GenePeptide, aaDiffs map[string]AADiff, frameShifts []translate.FrameShift) Assembled {
	out := Assembled{
		NucDiff:      nucDiff,
		GenePeptides: genePeptides,
		AADiffs:      aaDiffs,
		FrameShifts:  frameShifts,
	}

	// range queries over the nuc substitutions/deletions (linear scans).
	subsInRange := func(begin, end int) []Substitution {
		var out []Substitution
		for _, s := range nucDiff.Substitutions {
			if s.Pos >= begin && s.Pos < end {
				out = append(out, s)
			}
		}
		return out
	}
	delsOverlapping := func(begin, end int) []DeletionRun {
		var out []DeletionRun
		for _, d := range nucDiff.Deletions {
			if d.Range.Begin < end && begin < d.Range.End {
				out = append(out, d)
			}
		}
		return out
	}

	refsByPos := make(map[int][]AAChangeRef)

	for _, diff := range aaDiffs {
		for _, sub := range diff.Substitutions {
			begin, end := sub.CodonNucRange.Begin, sub.CodonNucRange.End
			linked := LinkedAASub{
				AminoacidSubstitution: sub,
				NucSubstitutions:      subsInRange(begin, end),
				NucDeletions:          delsOverlapping(begin, end),
			}
			out.LinkedAASubs = append(out.LinkedAASubs, linked)
			ref := AAChangeRef{Gene: sub.Gene, Codon: sub.Codon}
			for p := begin; p < end; p++ {
				refsByPos[p] = append(refsByPos[p], ref)
			}
		}
		for _, del := range diff.Deletions {
			begin, end := del.CodonNucRange.Begin, del.CodonNucRange.End
			linked := LinkedAADel{
				AminoacidDeletion: del,
				NucSubstitutions:  subsInRange(begin, end),
				NucDeletions:      delsOverlapping(begin, end),
			}
			out.LinkedAADels = append(out.LinkedAADels, linked)
			ref := AAChangeRef{Gene: del.Gene, Codon: del.Codon, IsDeletion: true}
			for p := begin; p < end; p++ {
				refsByPos[p] = append(refsByPos[p], ref)
			}
		}
	}

	for _, sub := range nucDiff.Substitutions {
		out.LinkedNucSubs = append(out.LinkedNucSubs, LinkedNucSub{
			Substitution: sub,
			AAChanges:    refsByPos[sub.Pos],
		})
	}

	return out
}
