package align

import (
	"github.com/nextgenomics/nextplace/internal/errs"
	"github.com/nextgenomics/nextplace/internal/params"
	"github.com/nextgenomics/nextplace/internal/rng"
	"github.com/nextgenomics/nextplace/internal/seq"
)

// Insertion records a run of query letters aligned against reference gaps
// (§3 InsertionInternal). Pos is the reference coordinate of the first
// reference base after the run, i.e. the number of reference bases aligned
// before it.
type Insertion struct {
	Pos    int
	Length int
	Ins    seq.NucSequence
}

// Result is the output of a pairwise alignment: equal-length aligned
// reference/query sequences with insertions already stripped out and
// carried separately, plus the alignment range (§4.4).
type Result struct {
	AlignedRef     seq.NucSequence // stripped of insertions
	AlignedQuery   seq.NucSequence // stripped of insertions, equal length to AlignedRef
	Insertions     []Insertion     // sorted by Pos ascending
	AlignmentRange rng.Range       // [firstNonGap, lastNonGap+1) in reference coordinates
	Score          int

	// RawAlignedRef/RawAlignedQuery are the aligned pair before insertions
	// were stripped out: equal length, reference gaps mark insertion
	// columns. The frame-shift detector (C6) walks these directly since it
	// needs to see insertions in place.
	RawAlignedRef   seq.NucSequence
	RawAlignedQuery seq.NucSequence

	// RefToRaw maps a reference coordinate p in [0, len(AlignedRef)] to the
	// index into RawAlignedRef/RawAlignedQuery holding that reference base
	// (RefToRaw[len(AlignedRef)] == len(RawAlignedRef)). Any insertion
	// columns immediately preceding p fall after RefToRaw[p-1] and before
	// RefToRaw[p], so a gene span [start, end) maps to raw-index span
	// [RefToRaw[start], RefToRaw[end]) inclusive of interior insertions.
	RefToRaw []int
}

const negInf = -(1 << 30)

// layer identifies which of the three Gotoh DP matrices a cell/move
// belongs to: M (match/mismatch), Ix (gap in reference, consumes query),
// Iy (gap in query, consumes reference).
type layer int8

const (
	layerNone layer = iota
	layerM
	layerIx
	layerIy
)

// band is a fixed-width diagonal band: row i covers query columns
// [i-center-halfWidth, i-center+halfWidth].
type band struct {
	center    int
	halfWidth int
	width     int
	rows      int // n+1
	m         int // query length
}

func newBand(center, halfWidth, n, m int) band {
	return band{center: center, halfWidth: halfWidth, width: 2*halfWidth + 1, rows: n + 1, m: m}
}

func (b band) colOf(i, j int) int {
	return j - (i - b.center - b.halfWidth)
}

func (b band) jOf(i, c int) int {
	return i - b.center - b.halfWidth + c
}

func (b band) inRange(i, j int) bool {
	if j < 0 || j > b.m {
		return false
	}
	c := b.colOf(i, j)
	return c >= 0 && c < b.width
}

type matrix struct {
	b    band
	data []int32
	tb   []int8 // traceback: which layer the cell's best predecessor came from
}

func newMatrix(b band) matrix {
	size := b.rows * b.width
	data := make([]int32, size)
	tb := make([]int8, size)
	for i := range data {
		data[i] = negInf
	}
	return matrix{b: b, data: data, tb: tb}
}

func (mx matrix) idx(i, j int) int {
	return i*mx.b.width + mx.b.colOf(i, j)
}

func (mx matrix) get(i, j int) int {
	if !mx.b.inRange(i, j) {
		return negInf
	}
	return int(mx.data[mx.idx(i, j)])
}

func (mx matrix) set(i, j, val int, from layer) {
	k := mx.idx(i, j)
	mx.data[k] = int32(val)
	mx.tb[k] = int8(from)
}

func (mx matrix) trace(i, j int) layer {
	return layer(mx.tb[mx.idx(i, j)])
}

// Align performs banded Needleman-Wunsch (Gotoh affine-gap variant) of
// query against ref, anchored by the seed chain found through idx, per
// §4.4. Terminal gaps are penalty-free: the best alignment may start or end
// before consuming the whole of either sequence, and the unconsumed tail is
// appended as a free trailing gap.
func Align(ref, query seq.NucSequence, idx *SeedIndex, p params.Params) (*Result, error) {
	if query.Len() > p.MaxSeqLen {
		return nil, &errs.AlignmentFailed{Reason: "query exceeds maximum sequence length"}
	}

	chain, err := FindSeedChain(idx, query, p)
	if err != nil {
		return nil, err
	}

	center := int(chain.MeanShift)
	if chain.MeanShift < 0 {
		center = int(chain.MeanShift - 0.5)
	} else {
		center = int(chain.MeanShift + 0.5)
	}
	halfWidth := p.ExcessBandwidth
	if p.TerminalBandwidth > halfWidth {
		halfWidth = p.TerminalBandwidth
	}

	n, m := ref.Len(), query.Len()
	b := newBand(center, halfWidth, n, m)

	mM := newMatrix(b)
	mIx := newMatrix(b) // gap in reference: consumes query only
	mIy := newMatrix(b) // gap in query: consumes reference only

	mM.set(0, 0, 0, layerNone)

	for i := 0; i <= n; i++ {
		loJ := b.jOf(i, 0)
		hiJ := b.jOf(i, b.width-1)
		if loJ < 0 {
			loJ = 0
		}
		if hiJ > m {
			hiJ = m
		}
		for j := loJ; j <= hiJ; j++ {
			if i == 0 && j == 0 {
				continue
			}

			if i == 0 {
				// Free leading insertion: query bases before the reference start.
				mIx.set(i, j, 0, layerNone)
				continue
			}
			if j == 0 {
				// Free leading deletion: reference bases before the query start.
				mIy.set(i, j, 0, layerNone)
				continue
			}

			// M[i][j]: align ref[i-1] with query[j-1].
			s := mismatchAwareScore(ref.At(i-1), query.At(j-1), p)
			bestM, fromM := best3(mM.get(i-1, j-1), mIx.get(i-1, j-1), mIy.get(i-1, j-1))
			if bestM > negInf/2 {
				mM.set(i, j, bestM+s, fromM)
			}

			// Ix[i][j]: gap in reference, consumes query[j-1].
			openIx := mM.get(i, j-1) + p.GapOpen
			extIx := mIx.get(i, j-1) + p.GapExtend
			if openIx >= extIx {
				if openIx > negInf/2 {
					mIx.set(i, j, openIx, layerM)
				}
			} else if extIx > negInf/2 {
				mIx.set(i, j, extIx, layerIx)
			}

			// Iy[i][j]: gap in query, consumes ref[i-1].
			openIy := mM.get(i-1, j) + p.GapOpen
			extIy := mIy.get(i-1, j) + p.GapExtend
			if openIy >= extIy {
				if openIy > negInf/2 {
					mIy.set(i, j, openIy, layerM)
				}
			} else if extIy > negInf/2 {
				mIy.set(i, j, extIy, layerIy)
			}
		}
	}

	bestScore := negInf
	bestI, bestJ, bestLayer := 0, 0, layerM

	consider := func(i, j int, lay layer, val int) {
		if val > bestScore {
			bestScore = val
			bestI, bestJ, bestLayer = i, j, lay
		}
	}
	for j := 0; j <= m; j++ {
		consider(n, j, layerM, mM.get(n, j))
		consider(n, j, layerIx, mIx.get(n, j))
		consider(n, j, layerIy, mIy.get(n, j))
	}
	for i := 0; i <= n; i++ {
		consider(i, m, layerM, mM.get(i, m))
		consider(i, m, layerIx, mIx.get(i, m))
		consider(i, m, layerIy, mIy.get(i, m))
	}

	if bestScore <= negInf/2 || bestScore < p.MinScore {
		return nil, &errs.AlignmentFailed{Reason: "banded alignment score below minimum"}
	}

	alignedRef, alignedQuery := traceback(ref, query, mM, mIx, mIy, bestI, bestJ, bestLayer)

	// Pad any unconsumed tail as a free terminal gap.
	if bestI < n {
		for i := bestI; i < n; i++ {
			alignedRef = append(alignedRef, ref.At(i))
			alignedQuery = append(alignedQuery, seq.NucGap)
		}
	}
	if bestJ < m {
		for j := bestJ; j < m; j++ {
			alignedRef = append(alignedRef, seq.NucGap)
			alignedQuery = append(alignedQuery, query.At(j))
		}
	}

	return finishAlignment(alignedRef, alignedQuery, bestScore)
}

func mismatchAwareScore(r, q seq.Nuc, p params.Params) int {
	if r == q {
		return p.Match
	}
	return p.Mismatch
}

func best3(a, b, c int) (int, layer) {
	best, lay := a, layerM
	if b > best {
		best, lay = b, layerIx
	}
	if c > best {
		best, lay = c, layerIy
	}
	return best, lay
}

// traceback walks the three matrices from (i,j,lay) back to the origin,
// producing the aligned letters in forward order.
func traceback(ref, query seq.NucSequence, mM, mIx, mIy matrix, i, j int, lay layer) ([]seq.Nuc, []seq.Nuc) {
	var alignedRef, alignedQuery []seq.Nuc

	for i > 0 || j > 0 {
		switch lay {
		case layerM:
			alignedRef = append(alignedRef, ref.At(i-1))
			alignedQuery = append(alignedQuery, query.At(j-1))
			lay = mM.trace(i, j)
			i--
			j--
		case layerIx:
			// Gap in reference: consumes query[j-1].
			alignedRef = append(alignedRef, seq.NucGap)
			alignedQuery = append(alignedQuery, query.At(j-1))
			lay = mIx.trace(i, j)
			j--
		case layerIy:
			// Gap in query: consumes ref[i-1].
			alignedRef = append(alignedRef, ref.At(i-1))
			alignedQuery = append(alignedQuery, seq.NucGap)
			lay = mIy.trace(i, j)
			i--
		default:
			// Reached a free-boundary cell: emit the unconsumed leading
			// letters of either sequence against free terminal gaps.
			for ; i > 0; i-- {
				alignedRef = append(alignedRef, ref.At(i-1))
				alignedQuery = append(alignedQuery, seq.NucGap)
			}
			for ; j > 0; j-- {
				alignedRef = append(alignedRef, seq.NucGap)
				alignedQuery = append(alignedQuery, query.At(j-1))
			}
		}
	}

	reverseNucs(alignedRef)
	reverseNucs(alignedQuery)
	return alignedRef, alignedQuery
}

func reverseNucs(s []seq.Nuc) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// finishAlignment strips insertions (query letters against reference gaps)
// out of the aligned pair, computes the alignment range, builds the
// reference-to-raw index map, and assembles the Result (§4.4 "Alignment
// range" and "Insertions").
func finishAlignment(alignedRef, alignedQuery []seq.Nuc, score int) (*Result, error) {
	strippedRef := make([]seq.Nuc, 0, len(alignedRef))
	strippedQuery := make([]seq.Nuc, 0, len(alignedRef))
	refToRaw := make([]int, 0, len(alignedRef)+1)
	var insertions []Insertion

	firstNonGap, lastNonGap := -1, -1
	refPos := 0

	i := 0
	for i < len(alignedRef) {
		if alignedRef[i].IsGap() {
			start := i
			for i < len(alignedRef) && alignedRef[i].IsGap() {
				i++
			}
			ins := make([]seq.Nuc, i-start)
			copy(ins, alignedQuery[start:i])
			insertions = append(insertions, Insertion{
				Pos:    refPos,
				Length: i - start,
				Ins:    seq.Of(ins),
			})
			continue
		}

		refToRaw = append(refToRaw, i)
		strippedRef = append(strippedRef, alignedRef[i])
		strippedQuery = append(strippedQuery, alignedQuery[i])
		if !alignedQuery[i].IsGap() {
			if firstNonGap == -1 {
				firstNonGap = refPos
			}
			lastNonGap = refPos
		}
		refPos++
		i++
	}
	refToRaw = append(refToRaw, len(alignedRef))

	alignRange := rng.Range{}
	if firstNonGap != -1 {
		alignRange = rng.Range{Begin: firstNonGap, End: lastNonGap + 1}
	}

	return &Result{
		AlignedRef:      seq.Of(strippedRef),
		AlignedQuery:    seq.Of(strippedQuery),
		Insertions:      insertions,
		AlignmentRange:  alignRange,
		Score:           score,
		RawAlignedRef:   seq.Of(alignedRef),
		RawAlignedQuery: seq.Of(alignedQuery),
		RefToRaw:        refToRaw,
	}, nil
}
