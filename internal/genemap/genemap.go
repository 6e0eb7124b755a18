// Package genemap parses the GFF-like gene-map external collaborator named
// in §6, producing a gene.Map. This is I/O and attribute-string glue, not
// part of the analysis core; it is grounded on the teacher's GTF attribute
// parser (internal/cache/gtf_loader.go), generalized to accept both the
// `key "value"` GTF syntax and the `key=value` GFF3 syntax.
package genemap

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nextgenomics/nextplace/internal/gene"
)

// Parse reads gene-map records from r and builds a gene.Map against a
// reference of length refLen. Only records with feature "gene" or "CDS" are
// considered; 1-based inclusive coordinates are converted to 0-based
// half-open. Lines beginning with '#' are ignored.
func Parse(r io.Reader, refLen int) (gene.Map, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var genes []gene.Gene
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		g, ok, err := parseRecord(line)
		if err != nil {
			return gene.Map{}, fmt.Errorf("gene map line %d: %w", lineNo, err)
		}
		if !ok {
			continue
		}
		genes = append(genes, g)
	}
	if err := scanner.Err(); err != nil {
		return gene.Map{}, fmt.Errorf("read gene map: %w", err)
	}

	return gene.NewMap(genes, refLen)
}

func parseRecord(line string) (gene.Gene, bool, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return gene.Gene{}, false, nil
	}

	feature := fields[2]
	if feature != "gene" && feature != "CDS" {
		return gene.Gene{}, false, nil
	}

	start1, err := strconv.Atoi(fields[3])
	if err != nil {
		return gene.Gene{}, false, fmt.Errorf("parse start: %w", err)
	}
	end1, err := strconv.Atoi(fields[4])
	if err != nil {
		return gene.Gene{}, false, fmt.Errorf("parse end: %w", err)
	}

	strandField := fields[6]
	var strand gene.Strand
	switch strandField {
	case "+":
		strand = gene.Forward
	case "-":
		strand = gene.Reverse
	default:
		return gene.Gene{}, false, fmt.Errorf("unknown strand %q", strandField)
	}

	frame := 0
	if fields[7] != "." {
		f, err := strconv.Atoi(fields[7])
		if err == nil {
			frame = f
		}
	}

	attrs := parseAttributes(fields[8])
	name := attrs["gene_name"]
	if name == "" {
		name = attrs["gene_id"]
	}
	if name == "" {
		return gene.Gene{}, false, fmt.Errorf("record missing gene_name/gene_id attribute")
	}

	return gene.Gene{
		Name:   name,
		Start:  start1 - 1,
		End:    end1,
		Strand: strand,
		Frame:  frame,
	}, true, nil
}

// parseAttributes accepts both the GTF `key "value"; key2 "value2";` form
// and the GFF3 `key=value;key2=value2` form in the same attribute column.
func parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)
	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if idx := strings.IndexByte(part, '='); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			value := strings.TrimSpace(part[idx+1:])
			attrs[key] = strings.Trim(value, "\"")
			continue
		}

		idx := strings.IndexByte(part, ' ')
		if idx == -1 {
			continue
		}
		key := part[:idx]
		value := strings.TrimSpace(part[idx+1:])
		attrs[key] = strings.Trim(value, "\"")
	}
	return attrs
}
