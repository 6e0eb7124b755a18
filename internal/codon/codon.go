// Package codon implements the fixed nucleotide-triplet to amino-acid
// mapping (§4.2), including IUPAC ambiguity resolution.
package codon

import "github.com/nextgenomics/nextplace/internal/seq"

// table maps the 64 canonical triplets to their amino acid. Grounded on the
// standard genetic code used throughout the corpus (see codon.go's
// codonTable in the teacher repo); here keyed by seq.Nuc rather than bytes
// so it composes with the rest of the sequence domain.
var table = buildTable()

func buildTable() map[[3]seq.Nuc]seq.AA {
	// string-keyed standard genetic code, converted to seq.Nuc triplets below.
	raw := map[string]byte{
		"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
		"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
		"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
		"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',

		"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
		"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
		"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
		"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',

		"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
		"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
		"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
		"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',

		"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
		"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
		"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
		"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
	}

	out := make(map[[3]seq.Nuc]seq.AA, len(raw))
	for codon, aaChar := range raw {
		n0, _ := seq.NucFromChar(codon[0])
		n1, _ := seq.NucFromChar(codon[1])
		n2, _ := seq.NucFromChar(codon[2])
		aa, _ := seq.AAFromChar(aaChar)
		out[[3]seq.Nuc{n0, n1, n2}] = aa
	}
	return out
}

// Decode translates a 3-letter nucleotide triplet to its amino acid,
// following the contract in §4.2:
//   - all-canonical triplets decode per the standard genetic code;
//   - any GAP position yields a GAP;
//   - any N/ambiguous position yields X, unless every triplet consistent
//     with the ambiguity codes decodes to the same amino acid, in which
//     case that amino acid is returned;
//   - stop codons (canonical or resolved-ambiguous) yield STOP.
func Decode(triplet seq.Sequence[seq.Nuc]) seq.AA {
	if triplet.Len() != 3 {
		return seq.AAX
	}
	n0, n1, n2 := triplet.At(0), triplet.At(1), triplet.At(2)

	if n0.IsGap() || n1.IsGap() || n2.IsGap() {
		return seq.AAGap
	}

	if n0.IsCanonical() && n1.IsCanonical() && n2.IsCanonical() {
		if aa, ok := table[[3]seq.Nuc{n0, n1, n2}]; ok {
			return aa
		}
		return seq.AAX
	}

	return decodeAmbiguous(n0, n1, n2)
}

// DecodeBytes is a convenience wrapper for callers holding raw triplet
// letters rather than a Sequence view.
func DecodeBytes(n0, n1, n2 seq.Nuc) seq.AA {
	return Decode(seq.Of([]seq.Nuc{n0, n1, n2}))
}

func decodeAmbiguous(n0, n1, n2 seq.Nuc) seq.AA {
	opts0, opts1, opts2 := n0.Expand(), n1.Expand(), n2.Expand()
	if len(opts0) == 0 || len(opts1) == 0 || len(opts2) == 0 {
		// One of the positions was itself a GAP routed here incorrectly,
		// or an invalid letter slipped through validation.
		return seq.AAX
	}

	var first seq.AA
	haveFirst := false
	for _, a := range opts0 {
		for _, b := range opts1 {
			for _, c := range opts2 {
				aa, ok := table[[3]seq.Nuc{a, b, c}]
				if !ok {
					return seq.AAX
				}
				if !haveFirst {
					first = aa
					haveFirst = true
					continue
				}
				if aa != first {
					return seq.AAX
				}
			}
		}
	}
	return first
}

// IsStopCodon reports whether the triplet decodes to STOP.
func IsStopCodon(triplet seq.Sequence[seq.Nuc]) bool {
	return Decode(triplet).IsStop()
}
