package seq

import "strings"

// Letter is the capability set a letter type must provide for Sequence to
// offer gap logic and display generically (§4.1, "Polymorphism over letter
// type"): Nuc and AA both satisfy it.
type Letter interface {
	comparable
	IsGap() bool
	Char() byte
}

// Sequence is an ordered, finite buffer of letters supporting random access
// and cheap subrange views: Slice never copies, it reslices the backing
// array, mirroring how a reference-coordinate window is threaded through
// the aligner and translator without reallocating.
type Sequence[L Letter] struct {
	letters []L
}

// Of wraps an existing slice as a Sequence without copying.
func Of[L Letter](letters []L) Sequence[L] {
	return Sequence[L]{letters: letters}
}

// Make allocates a new Sequence of the given length, filled with the zero
// value of L.
func Make[L Letter](n int) Sequence[L] {
	return Sequence[L]{letters: make([]L, n)}
}

// Len returns the number of letters in the sequence.
func (s Sequence[L]) Len() int {
	return len(s.letters)
}

// At returns the letter at position i.
func (s Sequence[L]) At(i int) L {
	return s.letters[i]
}

// Set overwrites the letter at position i.
func (s Sequence[L]) Set(i int, l L) {
	s.letters[i] = l
}

// Slice returns the subrange [begin, end) as a view over the same backing
// array — no copy is made.
func (s Sequence[L]) Slice(begin, end int) Sequence[L] {
	return Sequence[L]{letters: s.letters[begin:end]}
}

// Letters exposes the backing slice for callers that need direct iteration.
func (s Sequence[L]) Letters() []L {
	return s.letters
}

// Append returns a new Sequence with l appended, growing the backing array
// as needed (copy-on-grow, same semantics as append()).
func (s Sequence[L]) Append(l L) Sequence[L] {
	return Sequence[L]{letters: append(s.letters, l)}
}

// Clone makes an independent copy of the sequence's letters.
func (s Sequence[L]) Clone() Sequence[L] {
	out := make([]L, len(s.letters))
	copy(out, s.letters)
	return Sequence[L]{letters: out}
}

// Equal reports whether two sequences hold identical letters in order.
func (s Sequence[L]) Equal(other Sequence[L]) bool {
	if len(s.letters) != len(other.letters) {
		return false
	}
	for i, l := range s.letters {
		if l != other.letters[i] {
			return false
		}
	}
	return true
}

// String renders the sequence double-quoted, per the external report format
// (§4.1): e.g. "ATG-AA".
func (s Sequence[L]) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, l := range s.letters {
		b.WriteByte(l.Char())
	}
	b.WriteByte('"')
	return b.String()
}

// Chars renders the sequence as a plain (unquoted) byte string.
func (s Sequence[L]) Chars() string {
	buf := make([]byte, len(s.letters))
	for i, l := range s.letters {
		buf[i] = l.Char()
	}
	return string(buf)
}

// CountGaps returns the number of gap letters in the sequence.
func (s Sequence[L]) CountGaps() int {
	n := 0
	for _, l := range s.letters {
		if l.IsGap() {
			n++
		}
	}
	return n
}

// NucSequence and AASequence are the two concrete instantiations used
// throughout the pipeline.
type NucSequence = Sequence[Nuc]
type AASequence = Sequence[AA]

// ParseNucSequence converts an upper-cased IUPAC string into a NucSequence,
// failing with *InvalidLetterError on the first out-of-alphabet byte.
func ParseNucSequence(s string) (NucSequence, error) {
	letters := make([]Nuc, len(s))
	for i := 0; i < len(s); i++ {
		n, err := NucFromChar(s[i])
		if err != nil {
			return NucSequence{}, err
		}
		letters[i] = n
	}
	return Of(letters), nil
}

// ParseAASequence converts a single-letter amino-acid string into an
// AASequence.
func ParseAASequence(s string) (AASequence, error) {
	letters := make([]AA, len(s))
	for i := 0; i < len(s); i++ {
		a, err := AAFromChar(s[i])
		if err != nil {
			return AASequence{}, err
		}
		letters[i] = a
	}
	return Of(letters), nil
}

// ReverseComplement returns a new NucSequence that is the reverse complement
// of s.
func ReverseComplement(s NucSequence) NucSequence {
	n := s.Len()
	out := make([]Nuc, n)
	for i := 0; i < n; i++ {
		out[i] = s.At(n - 1 - i).Complement()
	}
	return Of(out)
}
