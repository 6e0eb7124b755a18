package tree

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// jsonNode mirrors the on-disk reference-tree shape: each node carries the
// comma-separated mutation string for the path from its parent (matching
// the wire grammar of §6), an optional clade label (empty on nodes that
// don't define a new clade — they inherit their parent's), and a list of
// children.
type jsonNode struct {
	Name      string     `json:"name"`
	Clade     string     `json:"clade"`
	Mutations string     `json:"mutations"`
	Children  []jsonNode `json:"children"`
}

// ParseTree reads a JSON-encoded reference tree (grounded on Auspice-style
// tree exports, the format nextclade's own reference trees ship in) and
// builds a finalized Tree ready for PlaceQuery.
func ParseTree(r io.Reader) (*Tree, error) {
	var root jsonNode
	dec := json.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parse reference tree: %w", err)
	}

	t := NewTree()
	if err := addJSONSubtree(t, -1, root); err != nil {
		return nil, err
	}
	t.Finalize()
	return t, nil
}

func addJSONSubtree(t *Tree, parentID int, n jsonNode) error {
	mutations, err := ParseMutationList(n.Mutations)
	if err != nil {
		return fmt.Errorf("node %q: %w", n.Name, err)
	}

	var cumulative []Mutation
	if parentID == -1 {
		cumulative = mutations
	} else {
		parent := t.Node(parentID)
		cumulative = make([]Mutation, 0, len(parent.Mutations)+len(mutations))
		cumulative = append(cumulative, parent.Mutations...)
		cumulative = append(cumulative, mutations...)
	}

	id := t.AddNode(parentID, n.Name, n.Clade, cumulative)
	for _, child := range n.Children {
		if err := addJSONSubtree(t, id, child); err != nil {
			return err
		}
	}
	return nil
}
