// Package gene holds the Gene/GeneMap data model (§3): the coding regions
// the translator and amino-acid differ walk against the reference.
package gene

import "fmt"

// Strand is the coding strand of a gene relative to the reference.
type Strand byte

const (
	Forward Strand = '+'
	Reverse Strand = '-'
)

// Gene describes one coding region of the reference.
type Gene struct {
	Name   string // unique key
	Start  int    // 0-based, inclusive
	End    int    // 0-based, exclusive
	Strand Strand
	Frame  int // 0, 1, or 2
}

// Length returns End - Start.
func (g Gene) Length() int {
	return g.End - g.Start
}

// Validate checks the invariants from §3: 0 <= start < end <= refLen, and
// (per the Open Question pinned in §9) that the gene's length is a multiple
// of 3 — a non-multiple-of-3 gene is treated as a gene-map error rather than
// silently truncated.
func (g Gene) Validate(refLen int) error {
	if !(0 <= g.Start && g.Start < g.End && g.End <= refLen) {
		return &InvalidGeneError{Name: g.Name, Reason: fmt.Sprintf("range [%d, %d) out of bounds for reference of length %d", g.Start, g.End, refLen)}
	}
	if g.Length()%3 != 0 {
		return &InvalidGeneError{Name: g.Name, Reason: fmt.Sprintf("length %d is not a multiple of 3", g.Length())}
	}
	if g.Strand != Forward && g.Strand != Reverse {
		return &InvalidGeneError{Name: g.Name, Reason: fmt.Sprintf("unknown strand %q", byte(g.Strand))}
	}
	if g.Frame < 0 || g.Frame > 2 {
		return &InvalidGeneError{Name: g.Name, Reason: fmt.Sprintf("invalid frame %d", g.Frame)}
	}
	return nil
}

// InvalidGeneError is a fatal error (malformed gene map, §7): it aborts the
// whole run rather than being attached to a single query.
type InvalidGeneError struct {
	Name   string
	Reason string
}

func (e *InvalidGeneError) Error() string {
	return fmt.Sprintf("invalid gene %q: %s", e.Name, e.Reason)
}

// Map is a mapping from gene name to Gene. Iteration order is irrelevant to
// correctness; Names() returns a stable (insertion) order for reporting.
type Map struct {
	genes map[string]Gene
	order []string
}

// NewMap builds a Map from a slice of genes, validating each against refLen.
func NewMap(genes []Gene, refLen int) (Map, error) {
	m := Map{genes: make(map[string]Gene, len(genes))}
	for _, g := range genes {
		if err := g.Validate(refLen); err != nil {
			return Map{}, err
		}
		if _, exists := m.genes[g.Name]; exists {
			return Map{}, &InvalidGeneError{Name: g.Name, Reason: "duplicate gene name"}
		}
		m.genes[g.Name] = g
		m.order = append(m.order, g.Name)
	}
	return m, nil
}

// Get returns the gene with the given name.
func (m Map) Get(name string) (Gene, bool) {
	g, ok := m.genes[name]
	return g, ok
}

// Names returns gene names in a stable order: insertion order, which for
// the genemap loader is the order of the records in the file.
func (m Map) Names() []string {
	return m.order
}

// Len returns the number of genes in the map.
func (m Map) Len() int {
	return len(m.genes)
}

// Each calls fn for every gene in stable order.
func (m Map) Each(fn func(Gene)) {
	for _, name := range m.order {
		fn(m.genes[name])
	}
}
