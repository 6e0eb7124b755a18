package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextgenomics/nextplace/internal/seq"
)

func mut(pos int, ref, qry byte) Mutation {
	r, err := seq.NucFromChar(ref)
	if err != nil {
		panic(err)
	}
	q, err := seq.NucFromChar(qry)
	if err != nil {
		panic(err)
	}
	return Mutation{Ref: r, Pos: pos, Qry: q}
}

func TestAddNodeEstablishesRootAndDepth(t *testing.T) {
	tr := NewTree()
	root := tr.AddNode(-1, "root", "", nil)
	child := tr.AddNode(root, "child", "", []Mutation{mut(0, 'A', 'T')})
	grandchild := tr.AddNode(child, "grandchild", "", []Mutation{mut(1, 'C', 'G')})

	assert.Equal(t, root, tr.Root())
	assert.Equal(t, 0, tr.Node(root).Depth)
	assert.Equal(t, 1, tr.Node(child).Depth)
	assert.Equal(t, 2, tr.Node(grandchild).Depth)
	assert.Equal(t, []int{child}, tr.Node(root).Children)
	assert.Equal(t, 3, tr.Len())
}

func TestAddNodeInheritsParentCladeWhenUnset(t *testing.T) {
	tr := NewTree()
	root := tr.AddNode(-1, "root", "cladeA", nil)
	child := tr.AddNode(root, "child", "", []Mutation{mut(0, 'A', 'T')})
	grandchild := tr.AddNode(child, "grandchild", "cladeB", []Mutation{mut(1, 'C', 'G')})
	greatGrandchild := tr.AddNode(grandchild, "ggc", "", nil)

	assert.Equal(t, "cladeA", tr.Node(root).Clade)
	assert.Equal(t, "cladeA", tr.Node(child).Clade, "empty clade inherits the nearest ancestor's")
	assert.Equal(t, "cladeB", tr.Node(grandchild).Clade, "a node may define its own clade")
	assert.Equal(t, "cladeB", tr.Node(greatGrandchild).Clade, "inheritance follows the nearest defining ancestor, not just the direct parent")
}

func TestFinalizeComputesMaxAdditionalBelow(t *testing.T) {
	tr := NewTree()
	root := tr.AddNode(-1, "root", "", nil)
	child := tr.AddNode(root, "child", "", []Mutation{mut(0, 'A', 'T')})
	leaf1 := tr.AddNode(child, "leaf1", "", []Mutation{mut(0, 'A', 'T'), mut(1, 'C', 'G')})
	tr.AddNode(child, "leaf2", "", []Mutation{mut(0, 'A', 'T'), mut(1, 'C', 'G'), mut(2, 'G', 'C')})

	tr.Finalize()

	// child carries 1 mutation; its deepest descendant (leaf2) carries 3,
	// so child's bound is 3 - 1 = 2.
	assert.Equal(t, 2, tr.Node(child).MaxAdditionalBelow)
	// leaves have no descendants, so their bound is 0.
	assert.Equal(t, 0, tr.Node(leaf1).MaxAdditionalBelow)

	require.NotPanics(t, func() { tr.Finalize() }, "Finalize must be idempotent")
}

func TestFinalizeEmptyTree(t *testing.T) {
	tr := NewTree()
	assert.NotPanics(t, func() { tr.Finalize() })
}
