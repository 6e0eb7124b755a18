// Package seq provides the nucleotide/amino-acid alphabets, the generic
// Sequence buffer, and the gap/display logic shared across the alignment,
// translation, and diff packages.
package seq

import "fmt"

// Nuc is a nucleotide letter, densely encoded so codon lookup and table
// scans stay cheap. It covers the IUPAC set plus the alignment gap marker.
type Nuc uint8

// Canonical bases first (so ambiguity-expansion tables can range over them),
// then ambiguity codes, then the gap marker.
const (
	NucA Nuc = iota
	NucC
	NucG
	NucT
	NucR
	NucY
	NucS
	NucW
	NucK
	NucM
	NucB
	NucD
	NucH
	NucV
	NucN
	NucGap
	nucCount
)

var nucToChar = [nucCount]byte{
	NucA: 'A', NucC: 'C', NucG: 'G', NucT: 'T',
	NucR: 'R', NucY: 'Y', NucS: 'S', NucW: 'W', NucK: 'K', NucM: 'M',
	NucB: 'B', NucD: 'D', NucH: 'H', NucV: 'V', NucN: 'N',
	NucGap: '-',
}

var charToNuc = buildCharToNuc()

func buildCharToNuc() map[byte]Nuc {
	m := make(map[byte]Nuc, nucCount)
	for n, c := range nucToChar {
		m[c] = Nuc(n)
	}
	return m
}

// InvalidLetterError is returned when a byte falls outside the letter's
// alphabet. It is a non-fatal error per the error-handling design (§7);
// callers attach it to the offending query rather than aborting the run.
type InvalidLetterError struct {
	Char byte
}

func (e *InvalidLetterError) Error() string {
	return fmt.Sprintf("invalid letter %q", e.Char)
}

// NucFromChar converts an upper-case IUPAC character to a Nuc.
func NucFromChar(c byte) (Nuc, error) {
	if n, ok := charToNuc[c]; ok {
		return n, nil
	}
	return 0, &InvalidLetterError{Char: c}
}

// Char returns the single-character representation of n.
func (n Nuc) Char() byte {
	if int(n) >= len(nucToChar) {
		return '?'
	}
	return nucToChar[n]
}

// IsGap reports whether n is the alignment gap marker (not a nucleotide).
func (n Nuc) IsGap() bool {
	return n == NucGap
}

// IsAmbiguous reports whether n is neither a canonical base nor a gap.
func (n Nuc) IsAmbiguous() bool {
	return n > NucT && n != NucGap
}

// IsCanonical reports whether n is one of A, C, G, T.
func (n Nuc) IsCanonical() bool {
	return n <= NucT
}

func (n Nuc) String() string {
	return fmt.Sprintf("'%c'", n.Char())
}

// nucExpansion lists, for each ambiguity code, the canonical bases it is
// consistent with. Canonical bases and N expand to themselves / all four.
var nucExpansion = map[Nuc][]Nuc{
	NucA: {NucA}, NucC: {NucC}, NucG: {NucG}, NucT: {NucT},
	NucR: {NucA, NucG},
	NucY: {NucC, NucT},
	NucS: {NucG, NucC},
	NucW: {NucA, NucT},
	NucK: {NucG, NucT},
	NucM: {NucA, NucC},
	NucB: {NucC, NucG, NucT},
	NucD: {NucA, NucG, NucT},
	NucH: {NucA, NucC, NucT},
	NucV: {NucA, NucC, NucG},
	NucN: {NucA, NucC, NucG, NucT},
}

// Expand returns the canonical bases consistent with n. A gap expands to
// nothing.
func (n Nuc) Expand() []Nuc {
	return nucExpansion[n]
}

// Complement returns the Watson-Crick complement of n. Ambiguity codes
// complement to their paired ambiguity code; the gap complements to itself.
func (n Nuc) Complement() Nuc {
	switch n {
	case NucA:
		return NucT
	case NucT:
		return NucA
	case NucC:
		return NucG
	case NucG:
		return NucC
	case NucR:
		return NucY
	case NucY:
		return NucR
	case NucS:
		return NucS
	case NucW:
		return NucW
	case NucK:
		return NucM
	case NucM:
		return NucK
	case NucB:
		return NucV
	case NucV:
		return NucB
	case NucD:
		return NucH
	case NucH:
		return NucD
	case NucN:
		return NucN
	case NucGap:
		return NucGap
	default:
		return NucN
	}
}
