// Package report defines the JSON-serializable per-query output (§6
// "Outputs"), grounded on internal/output/tab.go's field-by-field
// assembly but emitted as JSON rather than tab-delimited rows, since the
// report nests mutation lists rather than flattening to one row per
// variant.
package report

import (
	json "github.com/goccy/go-json"

	"github.com/nextgenomics/nextplace/internal/align"
	"github.com/nextgenomics/nextplace/internal/analyze"
	"github.com/nextgenomics/nextplace/internal/errs"
	"github.com/nextgenomics/nextplace/internal/tree"
	"github.com/nextgenomics/nextplace/internal/translate"
)

// Range is the wire form of rng.Range.
type Range struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Insertion is the wire form of align.Insertion.
type Insertion struct {
	Pos    int    `json:"pos"`
	Length int    `json:"length"`
	Seq    string `json:"seq"`
}

// Substitution is the wire form of analyze.Substitution.
type Substitution struct {
	Pos               int    `json:"pos"`
	Ref               string `json:"ref"`
	Query             string `json:"query"`
	PCRPrimersChanged bool   `json:"pcrPrimersChanged"`
}

// Run is the wire form of a deletion or missing-region run.
type Run struct {
	Range Range `json:"range"`
}

// Peptide is one gene's reference/query translation.
type Peptide struct {
	Gene         string `json:"gene"`
	RefPeptide   string `json:"refPeptide"`
	QueryPeptide string `json:"queryPeptide"`
}

// AASubstitution is the wire form of analyze.AminoacidSubstitution.
type AASubstitution struct {
	Gene          string `json:"gene"`
	Codon         int    `json:"codon"`
	RefAA         string `json:"refAa"`
	QueryAA       string `json:"queryAa"`
	CodonNucRange Range  `json:"codonNucRange"`
}

// AADeletion is the wire form of analyze.AminoacidDeletion.
type AADeletion struct {
	Gene          string `json:"gene"`
	Codon         int    `json:"codon"`
	RefAA         string `json:"refAa"`
	CodonNucRange Range  `json:"codonNucRange"`
}

// FrameShift is the wire form of translate.FrameShift.
type FrameShift struct {
	Gene         string `json:"gene"`
	NucRel       Range  `json:"nucRel"`
	NucAbs       Range  `json:"nucAbs"`
	Codon        Range  `json:"codon"`
	GapsLeading  int    `json:"gapsLeading"`
	GapsTrailing int    `json:"gapsTrailing"`
}

// Placement is the wire form of one query's tree placement.
type Placement struct {
	NearestNode      string   `json:"nearestNode"`
	AssignedClade    string   `json:"assignedClade"`
	PrivateMutations []string `json:"privateMutations"`
}

// Failure records a non-fatal error attached to the query's report (§7).
type Failure struct {
	Stage   string `json:"stage"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Report is the full per-query output (§6 "Outputs").
type Report struct {
	RunID           string           `json:"runId,omitempty"`
	Name            string           `json:"name"`
	State           string           `json:"state"`
	Score           int              `json:"score,omitempty"`
	AlignmentRange  Range            `json:"alignmentRange"`
	Insertions      []Insertion      `json:"insertions,omitempty"`
	Substitutions   []Substitution   `json:"substitutions,omitempty"`
	Deletions       []Run            `json:"deletions,omitempty"`
	Missing         []Run            `json:"missing,omitempty"`
	Peptides        []Peptide        `json:"peptides,omitempty"`
	AASubstitutions []AASubstitution `json:"aaSubstitutions,omitempty"`
	AADeletions     []AADeletion     `json:"aaDeletions,omitempty"`
	FrameShifts     []FrameShift     `json:"frameShifts,omitempty"`
	Placement       *Placement       `json:"placement,omitempty"`
	Failure         *Failure         `json:"failure,omitempty"`
}

// Marshal renders the report as indented JSON.
func Marshal(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FromNonFatal converts a *errs.NonFatal into a Failure for attachment to a
// partially-completed report (§7's "a failed query is still reported with
// its partial data").
func FromNonFatal(err *errs.NonFatal) *Failure {
	return &Failure{Stage: string(err.Stage), Kind: err.Kind, Message: err.Error()}
}

// Build assembles the full report for a successfully-analyzed query.
// nearestLabel and clade are the nearest tree node's own label and its
// (possibly inherited) clade assignment — distinct pieces of information
// (§6: "placement (nearest node label, private mutations, assigned clade)").
func Build(name string, alignResult *align.Result, assembled analyze.Assembled, placement *tree.PlacementResult, nearestLabel, clade string) *Report {
	r := &Report{
		Name:  name,
		State: "reported",
		Score: alignResult.Score,
		AlignmentRange: Range{
			Begin: alignResult.AlignmentRange.Begin,
			End:   alignResult.AlignmentRange.End,
		},
	}

	for _, ins := range alignResult.Insertions {
		r.Insertions = append(r.Insertions, Insertion{Pos: ins.Pos, Length: ins.Length, Seq: ins.Ins.Chars()})
	}
	for _, s := range assembled.NucDiff.Substitutions {
		r.Substitutions = append(r.Substitutions, Substitution{
			Pos: s.Pos, Ref: string(s.Ref.Char()), Query: string(s.Query.Char()),
			PCRPrimersChanged: s.PCRPrimersChanged,
		})
	}
	for _, d := range assembled.NucDiff.Deletions {
		r.Deletions = append(r.Deletions, Run{Range: Range{Begin: d.Range.Begin, End: d.Range.End}})
	}
	for _, m := range assembled.NucDiff.Missing {
		r.Missing = append(r.Missing, Run{Range: Range{Begin: m.Range.Begin, End: m.Range.End}})
	}
	for _, gp := range assembled.GenePeptides {
		r.Peptides = append(r.Peptides, Peptide{Gene: gp.Gene, RefPeptide: gp.RefPeptide.Chars(), QueryPeptide: gp.QueryPeptide.Chars()})
	}
	for _, linked := range assembled.LinkedAASubs {
		s := linked.AminoacidSubstitution
		r.AASubstitutions = append(r.AASubstitutions, AASubstitution{
			Gene: s.Gene, Codon: s.Codon,
			RefAA: string(s.RefAA.Char()), QueryAA: string(s.QueryAA.Char()),
			CodonNucRange: Range{Begin: s.CodonNucRange.Begin, End: s.CodonNucRange.End},
		})
	}
	for _, linked := range assembled.LinkedAADels {
		d := linked.AminoacidDeletion
		r.AADeletions = append(r.AADeletions, AADeletion{
			Gene: d.Gene, Codon: d.Codon, RefAA: string(d.RefAA.Char()),
			CodonNucRange: Range{Begin: d.CodonNucRange.Begin, End: d.CodonNucRange.End},
		})
	}
	for _, fs := range assembled.FrameShifts {
		r.FrameShifts = append(r.FrameShifts, FrameShift{
			Gene:         fs.Gene,
			NucRel:       Range{Begin: fs.NucRel.Begin, End: fs.NucRel.End},
			NucAbs:       Range{Begin: fs.NucAbs.Begin, End: fs.NucAbs.End},
			Codon:        Range{Begin: fs.Codon.Begin, End: fs.Codon.End},
			GapsLeading:  fs.GapsLeading,
			GapsTrailing: fs.GapsTrailing,
		})
	}

	if placement != nil {
		p := &Placement{NearestNode: nearestLabel, AssignedClade: clade}
		for _, m := range placement.PrivateMutations {
			p.PrivateMutations = append(p.PrivateMutations, m.String())
		}
		r.Placement = p
	}

	return r
}
