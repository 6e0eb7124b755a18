package translate

import (
	"github.com/nextgenomics/nextplace/internal/align"
	"github.com/nextgenomics/nextplace/internal/gene"
	"github.com/nextgenomics/nextplace/internal/rng"
)

// FrameShift is one maximal span within a gene where cumulative
// insertions minus deletions is not a multiple of 3 (§4.6).
type FrameShift struct {
	Gene         string
	NucRel       rng.Range // 0-based within the gene
	NucAbs       rng.Range // reference coordinates
	Codon        rng.Range // affected codon indices within the gene
	GapsLeading  int       // 1 if the span starts mid-codon, else 0
	GapsTrailing int       // 1 if the span ends mid-codon, else 0
}

// DetectFrameShifts walks the raw (unstripped) aligned pair within each
// gene's span and reports every maximal run of positions where the running
// insertions-minus-deletions count is non-zero mod 3 (§4.6).
func DetectFrameShifts(result *align.Result, genes gene.Map) []FrameShift {
	var out []FrameShift
	genes.Each(func(g gene.Gene) {
		out = append(out, detectGeneFrameShifts(result, g)...)
	})
	return out
}

func detectGeneFrameShifts(result *align.Result, g gene.Gene) []FrameShift {
	rawStart := result.RefToRaw[g.Start]
	rawEnd := result.RefToRaw[g.End]

	ref := result.RawAlignedRef
	query := result.RawAlignedQuery

	geneLen := g.Length()
	modAt := make([]int, geneLen) // modAt[p] = (netIns - netDel) mod 3 at gene-relative ref position p
	shift := 0
	nucRel := 0

	for i := rawStart; i < rawEnd; i++ {
		refGap := ref.At(i).IsGap()
		queryGap := query.At(i).IsGap()

		if refGap {
			// Insertion column: no reference position consumed.
			shift++
			continue
		}

		if queryGap {
			shift--
		}
		modAt[nucRel] = ((shift % 3) + 3) % 3
		nucRel++
	}

	var spans []FrameShift
	p := 0
	for p < geneLen {
		if modAt[p] == 0 {
			p++
			continue
		}
		start := p
		for p < geneLen && modAt[p] != 0 {
			p++
		}
		end := p

		codonBegin := start / 3
		codonEnd := (end + 2) / 3

		spans = append(spans, FrameShift{
			Gene:         g.Name,
			NucRel:       rng.Range{Begin: start, End: end},
			NucAbs:       rng.Range{Begin: g.Start + start, End: g.Start + end},
			Codon:        rng.Range{Begin: codonBegin, End: codonEnd},
			GapsLeading:  boolToInt(start%3 != 0),
			GapsTrailing: boolToInt(end%3 != 0),
		})
	}

	return spans
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
