// Package treestore caches the parsed reference tree in DuckDB so repeat
// runs against the same tree file skip re-parsing and re-walking the JSON
// document. Grounded on internal/duckdb/store.go's schema-on-open pattern
// and internal/duckdb/transcript_cache.go's fingerprint-gated cache
// invalidation, repurposed from transcript caching to tree-node caching.
package treestore

import (
	"database/sql"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/nextgenomics/nextplace/internal/tree"
)

// Store manages a DuckDB-backed cache of one reference tree.
type Store struct {
	db *sql.DB
}

// Open opens or creates a DuckDB database at path ("" for in-memory) and
// ensures the tree_nodes/tree_meta schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open treestore: %w", err)
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure treestore schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS tree_nodes (
		id BIGINT PRIMARY KEY,
		parent_id BIGINT,
		label VARCHAR,
		clade VARCHAR,
		mutations VARCHAR
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS tree_meta (key VARCHAR PRIMARY KEY, value VARCHAR)`)
	return err
}

// Fingerprint identifies the source tree file version the cache was built
// from, mirroring duckdb.FileFingerprint's size+modtime validity check.
type Fingerprint struct {
	Size    int64
	ModTime time.Time
}

// FingerprintOf stats path and builds its Fingerprint.
func FingerprintOf(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Valid reports whether the cached tree matches fp.
func (s *Store) Valid(fp Fingerprint) bool {
	var sizeStr, modStr string
	if err := s.db.QueryRow(`SELECT value FROM tree_meta WHERE key = 'size'`).Scan(&sizeStr); err != nil {
		return false
	}
	if err := s.db.QueryRow(`SELECT value FROM tree_meta WHERE key = 'modtime'`).Scan(&modStr); err != nil {
		return false
	}
	return sizeStr == strconv.FormatInt(fp.Size, 10) && modStr == fp.ModTime.UTC().Format(time.RFC3339Nano)
}

// Save replaces the cached tree with t's current contents.
func (s *Store) Save(t *tree.Tree, fp Fingerprint) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tree save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tree_nodes`); err != nil {
		return fmt.Errorf("clear tree_nodes: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tree_nodes (id, parent_id, label, clade, mutations) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare tree_nodes insert: %w", err)
	}
	defer stmt.Close()

	for id := 0; id < t.Len(); id++ {
		n := t.Node(id)
		if _, err := stmt.Exec(id, n.ParentID, n.Label, n.Clade, mutationsToString(n.Mutations)); err != nil {
			return fmt.Errorf("insert tree node %d: %w", id, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO tree_meta (key, value) VALUES ('size', ?)`, strconv.FormatInt(fp.Size, 10)); err != nil {
		return fmt.Errorf("write size fingerprint: %w", err)
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO tree_meta (key, value) VALUES ('modtime', ?)`, fp.ModTime.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("write modtime fingerprint: %w", err)
	}

	return tx.Commit()
}

// Load reconstructs a Tree from the cache. Rows are processed in ID order,
// which Save's insertion order guarantees places every parent before its
// children.
func (s *Store) Load() (*tree.Tree, error) {
	rows, err := s.db.Query(`SELECT id, parent_id, label, clade, mutations FROM tree_nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tree_nodes: %w", err)
	}
	defer rows.Close()

	type row struct {
		id, parentID int
		label        string
		clade        string
		mutations    string
	}
	var loaded []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.parentID, &r.label, &r.clade, &r.mutations); err != nil {
			return nil, fmt.Errorf("scan tree_nodes row: %w", err)
		}
		loaded = append(loaded, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(loaded, func(i, j int) bool { return loaded[i].id < loaded[j].id })

	t := tree.NewTree()
	for _, r := range loaded {
		mutations, err := tree.ParseMutationList(r.mutations)
		if err != nil {
			return nil, fmt.Errorf("tree node %d: %w", r.id, err)
		}
		id := t.AddNode(r.parentID, r.label, r.clade, mutations)
		if id != r.id {
			return nil, fmt.Errorf("tree node id mismatch: expected %d got %d (cache corrupt)", r.id, id)
		}
	}
	t.Finalize()
	return t, nil
}

func mutationsToString(mutations []tree.Mutation) string {
	out := ""
	for i, m := range mutations {
		if i > 0 {
			out += ","
		}
		out += m.String()
	}
	return out
}
