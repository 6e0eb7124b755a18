package tree

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nextgenomics/nextplace/internal/errs"
	"github.com/nextgenomics/nextplace/internal/seq"
)

// Mutation is a single nucleotide substitution expressed 0-based internally
// (§6 "Mutation string grammar"): ref letter, position, query letter.
type Mutation struct {
	Ref seq.Nuc
	Pos int
	Qry seq.Nuc
}

func (m Mutation) String() string {
	return fmt.Sprintf("%c%d%c", m.Ref.Char(), m.Pos+1, m.Qry.Char())
}

// nucMutationRe matches the wire grammar `[A-Z-]\d{1,10}[A-Z-]`,
// case-insensitive, grounded on the regex-dispatch technique of the
// teacher's variant_spec.go and on the original's parseMutation.cpp.
var nucMutationRe = regexp.MustCompile(`^([A-Za-z-])(\d{1,10})([A-Za-z-])$`)

// ParseMutation parses one `A123T`-style mutation string. Positions are
// 1-based on the wire and converted to 0-based internally.
func ParseMutation(raw string) (Mutation, error) {
	trimmed := strings.TrimSpace(raw)
	m := nucMutationRe.FindStringSubmatch(trimmed)
	if m == nil {
		return Mutation{}, &errs.InvalidMutationFormat{Raw: raw}
	}

	refChar := strings.ToUpper(m[1])[0]
	qryChar := strings.ToUpper(m[3])[0]

	pos1, err := strconv.Atoi(m[2])
	if err != nil || pos1 < 1 {
		return Mutation{}, &errs.InvalidMutationFormat{Raw: raw}
	}

	ref, err := seq.NucFromChar(refChar)
	if err != nil {
		return Mutation{}, &errs.InvalidMutationFormat{Raw: raw}
	}
	qry, err := seq.NucFromChar(qryChar)
	if err != nil {
		return Mutation{}, &errs.InvalidMutationFormat{Raw: raw}
	}

	return Mutation{Ref: ref, Pos: pos1 - 1, Qry: qry}, nil
}

// ParseMutationList parses a comma-separated mutation string, e.g.
// "A123T,G456C", as used in tree-node labels.
func ParseMutationList(raw string) ([]Mutation, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]Mutation, 0, len(parts))
	for _, part := range parts {
		m, err := ParseMutation(part)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
