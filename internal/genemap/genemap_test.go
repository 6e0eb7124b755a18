package genemap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextgenomics/nextplace/internal/gene"
)

func TestParseGTFSyntax(t *testing.T) {
	input := "chr1\tsource\tgene\t1\t9\t.\t+\t0\tgene_id \"g1\"; gene_name \"G1\";\n"
	m, err := Parse(strings.NewReader(input), 9)
	require.NoError(t, err)

	require.Equal(t, 1, m.Len())
	g, ok := m.Get("G1")
	require.True(t, ok)
	assert.Equal(t, 0, g.Start)
	assert.Equal(t, 9, g.End)
	assert.Equal(t, gene.Forward, g.Strand)
	assert.Equal(t, 0, g.Frame)
}

func TestParseGFF3Syntax(t *testing.T) {
	input := "chr1\tsource\tCDS\t1\t9\t.\t-\t1\tID=cds1;gene_name=G2\n"
	m, err := Parse(strings.NewReader(input), 9)
	require.NoError(t, err)

	g, ok := m.Get("G2")
	require.True(t, ok)
	assert.Equal(t, gene.Reverse, g.Strand)
	assert.Equal(t, 1, g.Frame)
}

func TestParseFallsBackToGeneID(t *testing.T) {
	input := "chr1\tsource\tgene\t1\t9\t.\t+\t0\tgene_id \"g1\";\n"
	m, err := Parse(strings.NewReader(input), 9)
	require.NoError(t, err)

	_, ok := m.Get("g1")
	assert.True(t, ok)
}

func TestParseSkipsCommentsBlankLinesAndOtherFeatures(t *testing.T) {
	input := "# a comment\n\nchr1\tsource\texon\t1\t9\t.\t+\t0\tgene_name \"G1\";\n"
	m, err := Parse(strings.NewReader(input), 9)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestParseRejectsUnknownStrand(t *testing.T) {
	input := "chr1\tsource\tgene\t1\t9\t.\t?\t0\tgene_name \"G1\";\n"
	_, err := Parse(strings.NewReader(input), 9)
	assert.Error(t, err)
}

func TestParseRejectsMissingGeneName(t *testing.T) {
	input := "chr1\tsource\tgene\t1\t9\t.\t+\t0\tsome_other_attr \"x\";\n"
	_, err := Parse(strings.NewReader(input), 9)
	assert.Error(t, err)
}

func TestParsePropagatesGeneValidationError(t *testing.T) {
	// length 8 is not a multiple of 3.
	input := "chr1\tsource\tgene\t1\t8\t.\t+\t0\tgene_name \"G1\";\n"
	_, err := Parse(strings.NewReader(input), 9)
	assert.Error(t, err)
}

func TestParseMultipleGenes(t *testing.T) {
	input := "chr1\tsource\tgene\t1\t9\t.\t+\t0\tgene_name \"G1\";\n" +
		"chr1\tsource\tgene\t10\t18\t.\t-\t0\tgene_name \"G2\";\n"
	m, err := Parse(strings.NewReader(input), 18)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
}
