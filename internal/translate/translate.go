// Package translate implements the gene extractor/translator (C5, §4.5) and
// the frame-shift detector (C6, §4.6).
package translate

import (
	"github.com/nextgenomics/nextplace/internal/errs"
	"github.com/nextgenomics/nextplace/internal/gene"
	"github.com/nextgenomics/nextplace/internal/params"
	"github.com/nextgenomics/nextplace/internal/rng"
	"github.com/nextgenomics/nextplace/internal/seq"
)

// GenePeptide is the per-gene translation of one query against the shared
// reference peptide (§4.5). RefPeptide and QueryPeptide always have equal
// length (P3).
type GenePeptide struct {
	Gene         string
	RefPeptide   seq.AASequence
	QueryPeptide seq.AASequence
}

// Translate extracts and translates every gene whose range intersects
// alignRange. strippedQuery is the stripped-aligned query (reference
// coordinates preserved, insertions already removed, per §4.4). Genes
// entirely outside alignRange produce no entry (§4.5).
func Translate(strippedQuery seq.NucSequence, alignRange rng.Range, genes gene.Map, refPeptides map[string]seq.AASequence, p params.Params) ([]GenePeptide, []*errs.NonFatal) {
	var peptides []GenePeptide
	var failures []*errs.NonFatal

	genes.Each(func(g gene.Gene) {
		geneRange := rng.New(g.Start, g.End)
		if !rng.HasIntersection(geneRange, alignRange) {
			return
		}

		refPeptide, ok := refPeptides[g.Name]
		if !ok {
			failures = append(failures, &errs.NonFatal{
				Stage: errs.StageTranslate,
				Kind:  "ref_peptide_not_found",
				Err:   &errs.RefPeptideNotFound{Gene: g.Name},
			})
			return
		}

		slice := strippedQuery.Slice(g.Start, g.End)
		if g.Strand == gene.Reverse {
			slice = seq.ReverseComplement(slice)
		}
		queryPeptide := translateCodons(slice, p.TranslatePastStop)

		errs.Check(queryPeptide.Len() == refPeptide.Len(), "peptide length mismatch for gene %q: ref=%d query=%d", g.Name, refPeptide.Len(), queryPeptide.Len())

		peptides = append(peptides, GenePeptide{
			Gene:         g.Name,
			RefPeptide:   refPeptide,
			QueryPeptide: queryPeptide,
		})
	})

	return peptides, failures
}
