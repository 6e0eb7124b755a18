// Package analyze implements the nucleotide differ (C7, §4.7), the
// amino-acid differ (C8, §4.8), and the result assembler that cross-links
// them (C10, §4.10).
package analyze

import (
	"github.com/nextgenomics/nextplace/internal/align"
	"github.com/nextgenomics/nextplace/internal/errs"
	"github.com/nextgenomics/nextplace/internal/rng"
	"github.com/nextgenomics/nextplace/internal/seq"
)

// Substitution is a single-position nucleotide change.
type Substitution struct {
	Pos   int
	Ref   seq.Nuc
	Query seq.Nuc

	// PCRPrimersChanged is never populated by this package: PCR-primer
	// bookkeeping is out of scope here. The field exists only so a
	// downstream report consumer sees a stable shape.
	PCRPrimersChanged bool
}

// DeletionRun is a maximal run of reference positions absent from the
// query (aligned query letter is GAP).
type DeletionRun struct {
	Range rng.Range
}

// MissingRun is a maximal run of reference positions where the query is
// ambiguous-N (uncalled), distinct from an actual deletion.
type MissingRun struct {
	Range rng.Range
}

// NucDiff is the flat output of the nucleotide differ: substitutions,
// deletions, missing runs (all strictly increasing in Pos, per P4), plus
// the insertions carried through unchanged from the aligner.
type NucDiff struct {
	Substitutions []Substitution
	Deletions     []DeletionRun
	Missing       []MissingRun
	Insertions    []align.Insertion
}

// DiffNucleotides walks the stripped-aligned pair position-by-position
// (§4.7). Reference coordinates are preserved by construction (stripped
// alignment has no reference gaps), so Pos is a direct reference index.
func DiffNucleotides(result *align.Result) NucDiff {
	ref := result.AlignedRef
	query := result.AlignedQuery
	n := ref.Len()

	errs.Check(ref.Len() == query.Len(), "P1 violated: aligned ref/query length mismatch")

	diff := NucDiff{Insertions: result.Insertions}

	var delStart, missStart = -1, -1
	closeDeletion := func(end int) {
		if delStart != -1 {
			diff.Deletions = append(diff.Deletions, DeletionRun{Range: rng.Range{Begin: delStart, End: end}})
			delStart = -1
		}
	}
	closeMissing := func(end int) {
		if missStart != -1 {
			diff.Missing = append(diff.Missing, MissingRun{Range: rng.Range{Begin: missStart, End: end}})
			missStart = -1
		}
	}

	for p := 0; p < n; p++ {
		r := ref.At(p)
		q := query.At(p)

		switch {
		case q.IsGap():
			closeMissing(p)
			if delStart == -1 {
				delStart = p
			}
			continue
		case q == seq.NucN:
			closeDeletion(p)
			if missStart == -1 {
				missStart = p
			}
			continue
		default:
			closeDeletion(p)
			closeMissing(p)
		}

		if r.IsCanonical() && q.IsCanonical() && r != q {
			diff.Substitutions = append(diff.Substitutions, Substitution{Pos: p, Ref: r, Query: q})
		}
		// Ambiguous query letters compatible with the reference are not
		// reported (§4.7's "compatible" clause); letters incompatible with
		// r fall outside what DiffNucleotides is asked to report, since the
		// reference itself is canonicalised upper-case IUPAC (§6).
	}
	closeDeletion(n)
	closeMissing(n)

	return diff
}
