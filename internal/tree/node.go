// Package tree implements the reference phylogenetic tree (C9, §4.9):
// an arena of nodes carrying per-node cumulative mutation sets, nearest-node
// placement with subtree pruning, and single-threaded leaf attachment.
//
// Nodes are stored in a flat slice indexed by integer ID rather than linked
// via pointers (§9 "Cyclic and back references"): children are ID lists
// and each node records its parent as an integer ID; placement walks down
// from the root with an explicit stack and never follows parent links.
// This is grounded on the teacher's flat-slice-plus-auxiliary-array technique in
// internal/cache/intervaltree.go (there: a suffix-max array; here: a
// per-node "maximum additional mutations below" bound used for pruning).
package tree

import "github.com/nextgenomics/nextplace/internal/seq"

type mutKey struct {
	Pos int
	Qry seq.Nuc
}

// Node is one element of the tree arena.
type Node struct {
	ID       int
	ParentID int    // -1 for the root
	Label    string // this node's own name (tip accession or internal node id)
	// Clade is the clade/lineage label assigned to this node, inherited from
	// the nearest ancestor that defines one (§3 "a clade label"). Distinct
	// from Label: two nodes can share a Clade while having different Labels.
	Clade     string
	Depth     int
	Mutations []Mutation
	Children  []int

	mutSet map[mutKey]struct{}

	// MaxAdditionalBelow bounds how many mutations beyond this node's own
	// set can appear anywhere in its subtree — the pruning bound of §4.9's
	// "mutations below it that could possibly match".
	MaxAdditionalBelow int
}

// Tree is an arena of Nodes plus the root's ID.
type Tree struct {
	nodes  []*Node
	rootID int
}

// NewTree returns an empty tree. Call AddNode with parentID -1 first to
// establish the root.
func NewTree() *Tree {
	return &Tree{rootID: -1}
}

// AddNode appends a node and returns its ID. Passing parentID -1 makes this
// the root; only one root is supported. clade may be "" to inherit the
// parent's clade (the common case: most nodes don't define a new clade).
func (t *Tree) AddNode(parentID int, label, clade string, mutations []Mutation) int {
	id := len(t.nodes)
	set := make(map[mutKey]struct{}, len(mutations))
	for _, m := range mutations {
		set[mutKey{Pos: m.Pos, Qry: m.Qry}] = struct{}{}
	}

	depth := 0
	if parentID != -1 {
		depth = t.nodes[parentID].Depth + 1
		if clade == "" {
			clade = t.nodes[parentID].Clade
		}
	}

	n := &Node{
		ID:        id,
		ParentID:  parentID,
		Label:     label,
		Clade:     clade,
		Depth:     depth,
		Mutations: mutations,
		mutSet:    set,
	}
	t.nodes = append(t.nodes, n)

	if parentID == -1 {
		t.rootID = id
	} else {
		t.nodes[parentID].Children = append(t.nodes[parentID].Children, id)
	}
	return id
}

// Root returns the root node's ID.
func (t *Tree) Root() int {
	return t.rootID
}

// Node returns the node with the given ID.
func (t *Tree) Node(id int) *Node {
	return t.nodes[id]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Finalize computes each node's MaxAdditionalBelow bound. Must be called
// once after the tree is fully built and before any PlaceQuery call.
func (t *Tree) Finalize() {
	if t.rootID == -1 {
		return
	}

	preorder := make([]int, 0, len(t.nodes))
	stack := []int{t.rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		preorder = append(preorder, id)
		children := t.nodes[id].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	for i := len(preorder) - 1; i >= 0; i-- {
		node := t.nodes[preorder[i]]
		maxSizeBelow := len(node.Mutations)
		for _, c := range node.Children {
			childMax := len(t.nodes[c].Mutations) + t.nodes[c].MaxAdditionalBelow
			if childMax > maxSizeBelow {
				maxSizeBelow = childMax
			}
		}
		node.MaxAdditionalBelow = maxSizeBelow - len(node.Mutations)
	}
}
