package tree

import "sort"

// PlacementResult is the outcome of placing one query against the tree
// (§4.9): the chosen node and the query's mutations not inherited from it.
type PlacementResult struct {
	NearestNodeID    int
	PrivateMutations []Mutation
}

// PlaceQuery finds the tree node minimizing the symmetric-difference
// distance to querySubs (§4.9). Ties are broken by preferring the deeper
// node, then the lexicographically smaller clade label. Subtrees are pruned once
// a node's distance exceeds the best distance found so far plus the
// maximum number of mutations that could still appear below it.
func PlaceQuery(t *Tree, querySubs []Mutation) PlacementResult {
	queryByKey := make(map[mutKey]Mutation, len(querySubs))
	for _, m := range querySubs {
		queryByKey[mutKey{Pos: m.Pos, Qry: m.Qry}] = m
	}

	bestID := -1
	bestD := -1

	stack := []int{t.rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := t.nodes[id]

		d := symmetricDifference(queryByKey, node.mutSet)
		if bestID == -1 || better(d, bestD, node, t.nodes[bestID]) {
			bestD = d
			bestID = id
		}

		if bestID != -1 && d > bestD+node.MaxAdditionalBelow {
			continue
		}
		stack = append(stack, node.Children...)
	}

	best := t.nodes[bestID]
	var private []Mutation
	for k, m := range queryByKey {
		if _, ok := best.mutSet[k]; !ok {
			private = append(private, m)
		}
	}
	sort.Slice(private, func(i, j int) bool { return private[i].Pos < private[j].Pos })

	return PlacementResult{NearestNodeID: bestID, PrivateMutations: private}
}

func symmetricDifference(query map[mutKey]Mutation, node map[mutKey]struct{}) int {
	d := 0
	for k := range query {
		if _, ok := node[k]; !ok {
			d++
		}
	}
	for k := range node {
		if _, ok := query[k]; !ok {
			d++
		}
	}
	return d
}

func better(d, bestD int, candidate, current *Node) bool {
	if d != bestD {
		return d < bestD
	}
	if candidate.Depth != current.Depth {
		return candidate.Depth > current.Depth
	}
	return candidate.Clade < current.Clade
}
