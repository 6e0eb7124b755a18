package report

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextgenomics/nextplace/internal/align"
	"github.com/nextgenomics/nextplace/internal/analyze"
	"github.com/nextgenomics/nextplace/internal/errs"
	"github.com/nextgenomics/nextplace/internal/rng"
	"github.com/nextgenomics/nextplace/internal/seq"
	"github.com/nextgenomics/nextplace/internal/tree"
)

func mustNuc(t *testing.T, s string) seq.NucSequence {
	t.Helper()
	out, err := seq.ParseNucSequence(s)
	require.NoError(t, err)
	return out
}

func TestBuildAssemblesCoreFields(t *testing.T) {
	alignResult := &align.Result{
		Score:          42,
		AlignmentRange: rng.Range{Begin: 0, End: 12},
		Insertions: []align.Insertion{
			{Pos: 3, Length: 2, Ins: mustNuc(t, "TT")},
		},
	}

	nucDiff := analyze.NucDiff{
		Substitutions: []analyze.Substitution{{Pos: 4, Ref: seq.NucA, Query: seq.NucT}},
		Deletions:     []analyze.DeletionRun{{Range: rng.Range{Begin: 6, End: 8}}},
		Missing:       []analyze.MissingRun{{Range: rng.Range{Begin: 9, End: 11}}},
	}
	assembled := analyze.Assemble(nucDiff, nil, map[string]analyze.AADiff{}, nil)

	r := Build("sample-1", alignResult, assembled, nil, "", "")

	assert.Equal(t, "sample-1", r.Name)
	assert.Equal(t, "reported", r.State)
	assert.Equal(t, 42, r.Score)
	assert.Equal(t, Range{Begin: 0, End: 12}, r.AlignmentRange)

	require.Len(t, r.Insertions, 1)
	assert.Equal(t, Insertion{Pos: 3, Length: 2, Seq: "TT"}, r.Insertions[0])

	require.Len(t, r.Substitutions, 1)
	assert.Equal(t, Substitution{Pos: 4, Ref: "A", Query: "T"}, r.Substitutions[0])

	require.Len(t, r.Deletions, 1)
	assert.Equal(t, Range{Begin: 6, End: 8}, r.Deletions[0].Range)

	require.Len(t, r.Missing, 1)
	assert.Equal(t, Range{Begin: 9, End: 11}, r.Missing[0].Range)

	assert.Nil(t, r.Placement)
}

func TestBuildAttachesPlacement(t *testing.T) {
	alignResult := &align.Result{AlignmentRange: rng.Range{Begin: 0, End: 1}}
	assembled := analyze.Assemble(analyze.NucDiff{}, nil, map[string]analyze.AADiff{}, nil)

	m, err := tree.ParseMutation("A5T")
	require.NoError(t, err)
	placement := &tree.PlacementResult{NearestNodeID: 7, PrivateMutations: []tree.Mutation{m}}

	r := Build("sample-2", alignResult, assembled, placement, "node-42", "clade-B")

	require.NotNil(t, r.Placement)
	assert.Equal(t, "node-42", r.Placement.NearestNode)
	assert.Equal(t, "clade-B", r.Placement.AssignedClade)
	require.Len(t, r.Placement.PrivateMutations, 1)
	assert.Equal(t, "A5T", r.Placement.PrivateMutations[0])
}

func TestFromNonFatalCarriesStageAndKind(t *testing.T) {
	nf := &errs.NonFatal{
		Stage: errs.StageAlign,
		Kind:  "alignment_failed",
		Query: "sample-3",
		Err:   assert.AnError,
	}

	f := FromNonFatal(nf)
	assert.Equal(t, "aligned", f.Stage)
	assert.Equal(t, "alignment_failed", f.Kind)
	assert.Contains(t, f.Message, "sample-3")
}

func TestMarshalProducesIndentedJSON(t *testing.T) {
	r := &Report{Name: "sample-4", State: "reported", AlignmentRange: Range{Begin: 0, End: 3}}

	out, err := Marshal(r)
	require.NoError(t, err)

	var roundTrip Report
	require.NoError(t, json.Unmarshal(out, &roundTrip))
	assert.Equal(t, r.Name, roundTrip.Name)
	assert.Contains(t, string(out), "\n  ")
}

func TestMarshalOmitsEmptyOptionalFields(t *testing.T) {
	r := &Report{Name: "sample-5", State: "reported"}
	out, err := Marshal(r)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "substitutions")
	assert.NotContains(t, string(out), "placement")
}
