// Package align implements the seed index (C3) and the banded pairwise
// aligner (C4) of §4.3/§4.4.
package align

import (
	"github.com/nextgenomics/nextplace/internal/errs"
	"github.com/nextgenomics/nextplace/internal/params"
	"github.com/nextgenomics/nextplace/internal/seq"
)

// SeedIndex maps every canonical (non-ambiguous) k-mer of the reference to
// its sorted list of positions, for seeding banded alignment.
type SeedIndex struct {
	k         int
	positions map[uint64][]int
}

// BuildSeedIndex indexes every ambiguity-free k-mer of ref. Ambiguous
// k-mers (containing N or any other ambiguity code) are skipped, per §4.3.
func BuildSeedIndex(ref seq.NucSequence, k int) *SeedIndex {
	idx := &SeedIndex{k: k, positions: make(map[uint64][]int)}
	n := ref.Len()
	if k <= 0 || k > 32 || n < k {
		return idx
	}

	var code uint64
	ambiguousRun := 0 // k-windows, counting the current one, that still contain an ambiguous base
	const mask = ^uint64(0)

	for i := 0; i < n; i++ {
		if ambiguousRun > 0 {
			ambiguousRun--
		}

		letter := ref.At(i)
		if letter.IsCanonical() {
			code = (code << 2) | uint64(canonicalCode(letter))
		} else {
			// Shift in a dummy 0 so the window still advances; this position
			// is ambiguous, so any k-mer containing it gets skipped below.
			code = code << 2
			ambiguousRun = k
		}
		if k < 32 {
			code &= (uint64(1) << uint(2*k)) - 1
		} else {
			code &= mask
		}

		kmerStart := i - k + 1
		if kmerStart < 0 {
			continue
		}
		if ambiguousRun > 0 {
			continue
		}
		idx.positions[code] = append(idx.positions[code], kmerStart)
	}

	return idx
}

func canonicalCode(n seq.Nuc) uint64 {
	switch n {
	case seq.NucA:
		return 0
	case seq.NucC:
		return 1
	case seq.NucG:
		return 2
	case seq.NucT:
		return 3
	default:
		return 0
	}
}

// KmerLength returns the k used to build the index.
func (s *SeedIndex) KmerLength() int {
	return s.k
}

// Lookup returns the reference positions where the given k-mer (already
// canonical-encoded) occurs.
func (s *SeedIndex) Lookup(kmer uint64) []int {
	return s.positions[kmer]
}

// encodeKmer packs a canonical k-mer into a 2-bit-per-base code. ok is false
// if the k-mer contains any ambiguous base.
func encodeKmer(q seq.NucSequence, start, k int) (code uint64, ok bool) {
	for i := 0; i < k; i++ {
		n := q.At(start + i)
		if !n.IsCanonical() {
			return 0, false
		}
		code = (code << 2) | canonicalCode(n)
	}
	return code, true
}

// SeedMatch is one exact k-mer match between query and reference.
type SeedMatch struct {
	QueryPos int
	RefPos   int
}

// Chain is a colinear run of seed matches used to anchor banded alignment.
type Chain struct {
	Matches   []SeedMatch
	MeanShift float64 // mean of (RefPos - QueryPos) across matches
}

// FindSeedChain picks query seeds at a regular stride of
// (len(query)-k)/params.SeedCount (at least 1, so up to SeedCount+1 seeds), looks
// each up in the index, and keeps the longest colinear run whose
// inter-seed reference-offset gaps stay within params.MaxSeedGap. Returns
// an error if fewer than params.MinSeeds colinear matches are found.
func FindSeedChain(idx *SeedIndex, query seq.NucSequence, p params.Params) (Chain, error) {
	k := idx.KmerLength()
	qlen := query.Len()
	if qlen < k {
		return Chain{}, &errs.AlignmentFailed{Reason: "query shorter than seed length"}
	}

	seedCount := p.SeedCount
	if seedCount <= 0 {
		seedCount = 1
	}
	stride := (qlen - k) / seedCount
	if stride < 1 {
		stride = 1
	}

	var candidates []SeedMatch
	for start := 0; start+k <= qlen; start += stride {
		code, ok := encodeKmer(query, start, k)
		if !ok {
			continue
		}
		for _, refPos := range idx.Lookup(code) {
			candidates = append(candidates, SeedMatch{QueryPos: start, RefPos: refPos})
		}
	}

	chain := longestColinearChain(candidates, p.MaxSeedGap)
	if len(chain) < p.MinSeeds {
		return Chain{}, &errs.AlignmentFailed{Reason: "no seed chain met the minimum colinear match count"}
	}

	var sumShift float64
	for _, m := range chain {
		sumShift += float64(m.RefPos - m.QueryPos)
	}

	return Chain{Matches: chain, MeanShift: sumShift / float64(len(chain))}, nil
}

// longestColinearChain finds the longest subsequence of candidates that is
// monotonically increasing in both QueryPos and RefPos, with consecutive
// RefPos gaps bounded by maxGap. Candidates are expected to be small in
// number (seedCount-bounded), so an O(n^2) DP is adequate.
func longestColinearChain(candidates []SeedMatch, maxGap int) []SeedMatch {
	if len(candidates) == 0 {
		return nil
	}

	sortSeedMatches(candidates)

	n := len(candidates)
	length := make([]int, n)
	prev := make([]int, n)
	best, bestLen := 0, 1
	for i := range candidates {
		length[i] = 1
		prev[i] = -1
		for j := 0; j < i; j++ {
			if candidates[j].QueryPos >= candidates[i].QueryPos {
				continue
			}
			if candidates[j].RefPos >= candidates[i].RefPos {
				continue
			}
			gap := candidates[i].RefPos - candidates[j].RefPos
			if gap > maxGap {
				continue
			}
			if length[j]+1 > length[i] {
				length[i] = length[j] + 1
				prev[i] = j
			}
		}
		if length[i] > bestLen {
			bestLen = length[i]
			best = i
		}
	}

	var chain []SeedMatch
	for i := best; i != -1; i = prev[i] {
		chain = append([]SeedMatch{candidates[i]}, chain...)
	}
	return chain
}

func sortSeedMatches(m []SeedMatch) {
	// insertion sort: candidate counts are small (bounded by seedCount *
	// average k-mer occurrence count), so this avoids pulling in sort for a
	// short slice sorted by QueryPos then RefPos.
	for i := 1; i < len(m); i++ {
		for j := i; j > 0 && less(m[j], m[j-1]); j-- {
			m[j], m[j-1] = m[j-1], m[j]
		}
	}
}

func less(a, b SeedMatch) bool {
	if a.QueryPos != b.QueryPos {
		return a.QueryPos < b.QueryPos
	}
	return a.RefPos < b.RefPos
}
