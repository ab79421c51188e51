//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the directory itself for new databases.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	// Ensure parent directory exists (KuzuDB creates the leaf directory).
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database %s: %w", path, err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Order matters: node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Fragment(
		id STRING,
		position INT64,
		text STRING,
		length INT64,
		PRIMARY KEY(id)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Contig(
		name STRING,
		ordinal INT64,
		density DOUBLE,
		sequence STRING,
		PRIMARY KEY(name)
	)`,
	`CREATE REL TABLE IF NOT EXISTS OVERLAPS(FROM Fragment TO Fragment, score INT64, shift INT64)`,
	`CREATE REL TABLE IF NOT EXISTS CONTAINS(FROM Fragment TO Fragment, score INT64, shift INT64)`,
	`CREATE REL TABLE IF NOT EXISTS BELONGS_TO(FROM Fragment TO Contig)`,
}

// InitSchema creates all node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// AddFragment inserts a Fragment node.
func (s *KuzuStore) AddFragment(_ context.Context, node FragmentNode) error {
	return s.exec(
		"CREATE (f:Fragment {id: $id, position: $pos, text: $text, length: $len})",
		map[string]any{
			"id":   node.ID,
			"pos":  int64(node.Position),
			"text": node.Text,
			"len":  int64(node.Length),
		},
	)
}

// AddContig inserts a Contig node. Membership is stored through BELONGS
// edges added separately. Each contig records its insertion ordinal so that
// GetContigs returns contigs in the order they were added.
func (s *KuzuStore) AddContig(_ context.Context, node ContigNode) error {
	ordinal, err := s.countTable("Contig")
	if err != nil {
		return err
	}
	return s.exec(
		"CREATE (c:Contig {name: $name, ordinal: $ord, density: $density, sequence: $seq})",
		map[string]any{
			"name":    node.Name,
			"ord":     int64(ordinal),
			"density": node.Density,
			"seq":     node.Sequence,
		},
	)
}

// AddEdge inserts a relationship edge between two nodes.
// The Cypher statement is chosen based on the EdgeKind.
func (s *KuzuStore) AddEdge(_ context.Context, edge Edge) error {
	switch edge.Kind {
	case EdgeKindOverlaps, EdgeKindContains:
		cypher := fmt.Sprintf(`MATCH (a:Fragment {id: $src}), (b:Fragment {id: $dst})
				CREATE (a)-[:%s {score: $score, shift: $shift}]->(b)`, relTable(edge.Kind))
		return s.exec(cypher, map[string]any{
			"src":   edge.SourceID,
			"dst":   edge.TargetID,
			"score": int64(edge.Score),
			"shift": int64(edge.Offset),
		})
	case EdgeKindBelongs:
		return s.exec(`MATCH (a:Fragment {id: $src}), (b:Contig {name: $dst})
				CREATE (a)-[:BELONGS_TO]->(b)`, map[string]any{
			"src": edge.SourceID,
			"dst": edge.TargetID,
		})
	default:
		return fmt.Errorf("kuzu: unsupported edge kind: %s", edge.Kind)
	}
}

// relTable maps an edge kind to its relationship table name.
func relTable(kind EdgeKind) string {
	if kind == EdgeKindBelongs {
		return "BELONGS_TO"
	}
	return string(kind)
}

// ---------- Read operations ----------

// GetFragment retrieves a single Fragment node by ID, or returns nil if not found.
func (s *KuzuStore) GetFragment(_ context.Context, id string) (*FragmentNode, error) {
	rows, err := s.query(
		"MATCH (f:Fragment {id: $id}) RETURN f.id, f.position, f.text, f.length",
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToFragment(rows[0]), nil
}

// ListFragments returns all Fragment nodes ordered by position.
func (s *KuzuStore) ListFragments(_ context.Context) ([]FragmentNode, error) {
	rows, err := s.query(
		"MATCH (f:Fragment) RETURN f.id, f.position, f.text, f.length ORDER BY f.position",
		nil,
	)
	if err != nil {
		return nil, err
	}
	out := make([]FragmentNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, *rowToFragment(r))
	}
	return out, nil
}

// GetOverlaps returns the OVERLAPS and CONTAINS edges leaving (downstream) or
// arriving at (upstream) the given fragment.
func (s *KuzuStore) GetOverlaps(_ context.Context, id string, dir Direction) ([]Edge, error) {
	var pattern string
	switch dir {
	case DirectionDownstream:
		pattern = "MATCH (a:Fragment {id: $id})-[r:%s]->(b:Fragment) RETURN a.id, b.id, r.score, r.shift"
	case DirectionUpstream:
		pattern = "MATCH (a:Fragment)-[r:%s]->(b:Fragment {id: $id}) RETURN a.id, b.id, r.score, r.shift"
	default:
		return nil, fmt.Errorf("kuzu: unknown direction: %s", dir)
	}

	var edges []Edge
	for _, kind := range []EdgeKind{EdgeKindOverlaps, EdgeKindContains} {
		rows, err := s.query(fmt.Sprintf(pattern, relTable(kind)), map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			edges = append(edges, rowToEdge(r, kind))
		}
	}
	return edges, nil
}

// GetContigs returns all Contig nodes in insertion order, with members in
// input order.
func (s *KuzuStore) GetContigs(_ context.Context) ([]ContigNode, error) {
	rows, err := s.query(
		"MATCH (c:Contig) RETURN c.name, c.density, c.sequence ORDER BY c.ordinal",
		nil,
	)
	if err != nil {
		return nil, err
	}
	out := make([]ContigNode, 0, len(rows))
	for _, r := range rows {
		name := toString(r[0])

		// Fetch contig members via BELONGS_TO edges.
		memberRows, err := s.query(
			"MATCH (f:Fragment)-[:BELONGS_TO]->(c:Contig {name: $name}) RETURN f.id ORDER BY f.position",
			map[string]any{"name": name},
		)
		if err != nil {
			return nil, err
		}
		members := make([]string, 0, len(memberRows))
		for _, mr := range memberRows {
			members = append(members, toString(mr[0]))
		}

		out = append(out, ContigNode{
			Name:     name,
			Density:  toFloat64(r[1]),
			Sequence: toString(r[2]),
			Members:  members,
		})
	}
	return out, nil
}

// ---------- Edge enumeration ----------

// GetAllEdges returns all edges across all relationship tables.
func (s *KuzuStore) GetAllEdges(_ context.Context) ([]Edge, error) {
	type relQuery struct {
		cypher string
		kind   EdgeKind
	}

	queries := []relQuery{
		{"MATCH (a:Fragment)-[r:OVERLAPS]->(b:Fragment) RETURN a.id, b.id, r.score, r.shift", EdgeKindOverlaps},
		{"MATCH (a:Fragment)-[r:CONTAINS]->(b:Fragment) RETURN a.id, b.id, r.score, r.shift", EdgeKindContains},
		{"MATCH (a:Fragment)-[:BELONGS_TO]->(b:Contig) RETURN a.id, b.name, 0, 0", EdgeKindBelongs},
	}

	var edges []Edge
	for _, q := range queries {
		rows, err := s.query(q.cypher, nil)
		if err != nil {
			// Table may not exist yet; skip.
			continue
		}
		for _, r := range rows {
			edges = append(edges, rowToEdge(r, q.kind))
		}
	}
	return edges, nil
}

// ---------- Stats ----------

// Stats returns counts of all node and edge tables.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	fragments, err := s.countTable("Fragment")
	if err != nil {
		return nil, err
	}
	contigs, err := s.countTable("Contig")
	if err != nil {
		return nil, err
	}
	edges, err := s.countEdges()
	if err != nil {
		return nil, err
	}
	return &GraphStats{
		FragmentCount: fragments,
		ContigCount:   contigs,
		EdgeCount:     edges,
	}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// countTable returns the number of rows in a node table.
func (s *KuzuStore) countTable(table string) (int, error) {
	// Table name is a fixed internal constant, not user input.
	cypher := fmt.Sprintf("MATCH (n:%s) RETURN count(n)", table)
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// countEdges returns the total number of edges across all relationship tables.
func (s *KuzuStore) countEdges() (int, error) {
	tables := []string{"OVERLAPS", "CONTAINS", "BELONGS_TO"}
	total := 0
	for _, t := range tables {
		cypher := fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r)", t)
		rows, err := s.query(cypher, nil)
		if err != nil {
			// Table may not exist yet; treat as zero.
			continue
		}
		if len(rows) > 0 && len(rows[0]) > 0 {
			total += toInt(rows[0][0])
		}
	}
	return total, nil
}

// rowToFragment converts a 4-column result row into a FragmentNode.
// Column order: id, position, text, length.
func rowToFragment(r []any) *FragmentNode {
	return &FragmentNode{
		ID:       toString(r[0]),
		Position: toInt(r[1]),
		Text:     toString(r[2]),
		Length:   toInt(r[3]),
	}
}

// rowToEdge converts a 4-column result row into an Edge.
// Column order: source, target, score, shift.
func rowToEdge(r []any, kind EdgeKind) Edge {
	return Edge{
		SourceID: toString(r[0]),
		TargetID: toString(r[1]),
		Kind:     kind,
		Score:    toInt(r[2]),
		Offset:   toInt(r[3]),
	}
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).
// These helpers safely coerce any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
