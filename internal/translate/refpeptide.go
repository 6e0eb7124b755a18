package translate

import (
	"github.com/nextgenomics/nextplace/internal/codon"
	"github.com/nextgenomics/nextplace/internal/gene"
	"github.com/nextgenomics/nextplace/internal/seq"
)

// BuildReferencePeptides translates every gene's reference slice once, up
// front, so every worker can share the result read-only (§5 "Shared
// immutable resources"). Genes are never trimmed or skipped here: the
// reference fully covers its own gene map by construction.
func BuildReferencePeptides(ref seq.NucSequence, genes gene.Map, translatePastStop bool) map[string]seq.AASequence {
	out := make(map[string]seq.AASequence, genes.Len())
	genes.Each(func(g gene.Gene) {
		slice := ref.Slice(g.Start, g.End)
		if g.Strand == gene.Reverse {
			slice = seq.ReverseComplement(slice)
		}
		out[g.Name] = translateCodons(slice, translatePastStop)
	})
	return out
}

func translateCodons(nucs seq.NucSequence, translatePastStop bool) seq.AASequence {
	numCodons := nucs.Len() / 3
	aas := make([]seq.AA, numCodons)
	stopped := false
	for c := 0; c < numCodons; c++ {
		if stopped {
			aas[c] = seq.AAGap
			continue
		}
		triplet := nucs.Slice(c*3, c*3+3)
		aa := codon.Decode(triplet)
		aas[c] = aa
		if aa.IsStop() && !translatePastStop {
			stopped = true
		}
	}
	return seq.Of(aas)
}
