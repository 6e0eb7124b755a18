package tree

// AttachLeaf adds a new leaf under parentID carrying the query's full
// cumulative mutation set (§4.9 "Attach the query as a new leaf"). Tree
// mutation only ever happens here, in the coordinator's single-threaded
// post-analysis reduction pass (§5) — never concurrently with placement. A
// query doesn't define a new clade of its own; it inherits parentID's.
func (t *Tree) AttachLeaf(parentID int, label string, mutations []Mutation) int {
	return t.AddNode(parentID, label, "", mutations)
}
