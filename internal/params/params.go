// Package params holds the configuration knobs threaded through the
// alignment, translation, and seeding stages (§4.3, §4.4, §4.5). Keeping
// them in one struct lets the CLI bind them through viper in one place.
package params

// Params collects every tunable of the pipeline's core algorithms.
type Params struct {
	// Seed index / seed chain (§4.3)
	SeedLength        int // k-mer length, typically 21
	SeedCount         int // number of query seeds picked at regular stride
	MinSeeds          int // minimum colinear matches required for a chain
	MaxSeedGap        int // max inter-seed reference-offset gap allowed in a chain

	// Banded alignment (§4.4)
	Match              int // match score, default +1
	Mismatch           int // mismatch penalty, default -1
	GapOpen            int // gap-open penalty, default -6
	GapExtend          int // gap-extend penalty, default -1
	ExcessBandwidth    int // minimum band half-width regardless of seed shift
	TerminalBandwidth  int // band half-width around the seed-implied diagonal; the larger of this and ExcessBandwidth is used
	MinScore           int // alignments scoring below this fail
	MaxSeqLen          int // queries longer than this fail outright

	// Translation (§4.5)
	TranslatePastStop bool // if false, halt at first stop and pad with gaps

	// Scheduling (§5)
	Workers int // worker pool size; 0 means runtime.NumCPU()
}

// Default returns the parameter set matching the defaults named in §4.3/§4.4.
func Default() Params {
	return Params{
		SeedLength:        21,
		SeedCount:         20,
		MinSeeds:          2,
		MaxSeedGap:        100,
		Match:             1,
		Mismatch:          -1,
		GapOpen:           -6,
		GapExtend:         -1,
		ExcessBandwidth:   20,
		TerminalBandwidth: 20,
		MinScore:          0,
		MaxSeqLen:         2_000_000,
		TranslatePastStop: false,
		Workers:           0,
	}
}
