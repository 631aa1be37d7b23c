package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// NodeRow is one persisted AST node row.
type NodeRow struct {
	Project         string `json:"-"`
	File            string `json:"file"`
	NodeID          int64  `json:"node_id"`
	ParentID        int64  `json:"parent_id"`
	NativeType      string `json:"native_type"`
	SemanticType    int64  `json:"semantic_type"`
	Name            string `json:"name,omitempty"`
	Flags           int64  `json:"universal_flags"`
	StartByte       int64  `json:"start_byte"`
	EndByte         int64  `json:"end_byte"`
	StartLine       int64  `json:"start_line"`
	StartCol        int64  `json:"start_col"`
	EndLine         int64  `json:"end_line"`
	EndCol          int64  `json:"end_col"`
	Depth           int64  `json:"depth"`
	SiblingIndex    int64  `json:"sibling_index"`
	ChildCount      int64  `json:"child_count"`
	DescendantCount int64  `json:"descendant_count"`
}

const nodeCols = `project, file, node_id, parent_id, native_type, semantic_type, name, universal_flags,
	start_byte, end_byte, start_line, start_col, end_line, end_col,
	depth, sibling_index, child_count, descendant_count`

// Formula-derived batch size: SQLite has a 999 bind variable limit.
const numNodeCols = 18
const nodesBatchSize = 999 / numNodeCols // = 55

// InsertNodeBatch inserts node rows in batched multi-row INSERTs.
// Rows for a file are written once per index pass, so plain INSERT
// suffices; re-indexing deletes the file's rows first.
func (s *Store) InsertNodeBatch(rows []NodeRow) error {
	for i := 0; i < len(rows); i += nodesBatchSize {
		end := i + nodesBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := s.insertNodeChunk(rows[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) insertNodeChunk(batch []NodeRow) error {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ast_nodes (" + nodeCols + ") VALUES ")

	args := make([]any, 0, len(batch)*numNodeCols)
	for i, n := range batch {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString("(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)")
		args = append(args,
			n.Project, n.File, n.NodeID, n.ParentID, n.NativeType, n.SemanticType, n.Name, n.Flags,
			n.StartByte, n.EndByte, n.StartLine, n.StartCol, n.EndLine, n.EndCol,
			n.Depth, n.SiblingIndex, n.ChildCount, n.DescendantCount)
	}
	if _, err := s.q.Exec(sb.String(), args...); err != nil {
		return fmt.Errorf("insert node batch: %w", err)
	}
	return nil
}

// GetNode returns one node row, or nil if absent.
func (s *Store) GetNode(project, file string, nodeID int64) (*NodeRow, error) {
	row := s.q.QueryRow("SELECT "+nodeCols+" FROM ast_nodes WHERE project=? AND file=? AND node_id=?",
		project, file, nodeID)
	n, err := scanNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return n, err
}

// NodesByFile returns all rows of a file in node_id order.
func (s *Store) NodesByFile(project, file string) ([]NodeRow, error) {
	rows, err := s.q.Query("SELECT "+nodeCols+" FROM ast_nodes WHERE project=? AND file=? ORDER BY node_id",
		project, file)
	if err != nil {
		return nil, fmt.Errorf("nodes by file: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

// Subtree returns a node and all of its descendants. Pre-order IDs make
// the subtree a contiguous range, so this is a single range scan.
func (s *Store) Subtree(project, file string, rootID int64) ([]NodeRow, error) {
	root, err := s.GetNode(project, file, rootID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}
	rows, err := s.q.Query("SELECT "+nodeCols+` FROM ast_nodes
		WHERE project=? AND file=? AND node_id BETWEEN ? AND ? ORDER BY node_id`,
		project, file, rootID, rootID+root.DescendantCount)
	if err != nil {
		return nil, fmt.Errorf("subtree: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

// DefinitionQuery filters FindDefinitions. Zero values mean "any",
// except SemanticType: 0 is a real code (LITERAL_NUMBER), so the type
// filter is only applied when HasType is set.
type DefinitionQuery struct {
	Project      string
	Name         string // exact definition name
	SemanticType int64  // exact code, applied only when HasType
	HasType      bool
	File         string
	Limit        int
}

// definitionRange is the contiguous DEFINITION code range 0x70-0x7F.
const (
	definitionLow  = 0x70
	definitionHigh = 0x7F
)

// FindDefinitions returns definition rows matching the query.
func (s *Store) FindDefinitions(q DefinitionQuery) ([]NodeRow, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + nodeCols + " FROM ast_nodes WHERE project=?")
	args := []any{q.Project}

	if q.HasType {
		sb.WriteString(" AND semantic_type=?")
		args = append(args, q.SemanticType)
	} else {
		sb.WriteString(" AND semantic_type BETWEEN ? AND ?")
		args = append(args, definitionLow, definitionHigh)
	}
	if q.Name != "" {
		sb.WriteString(" AND name=?")
		args = append(args, q.Name)
	}
	if q.File != "" {
		sb.WriteString(" AND file=?")
		args = append(args, q.File)
	}
	sb.WriteString(" ORDER BY file, node_id")
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	sb.WriteString(" LIMIT ?")
	args = append(args, limit)

	rows, err := s.q.Query(sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("find definitions: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

// CountNodes returns the number of node rows in a project.
func (s *Store) CountNodes(project string) (int64, error) {
	var count int64
	err := s.q.QueryRow("SELECT COUNT(*) FROM ast_nodes WHERE project=?", project).Scan(&count)
	return count, err
}

// TypeHistogram is one semantic type with its row count.
type TypeHistogram struct {
	SemanticType int64  `json:"semantic_type"`
	Name         string `json:"name"`
	Count        int64  `json:"count"`
}

// TypeCounts returns per-semantic-type row counts, most frequent first.
// Names are filled in by the caller from the taxonomy manifest.
func (s *Store) TypeCounts(project string) ([]TypeHistogram, error) {
	rows, err := s.q.Query(`SELECT semantic_type, COUNT(*) as cnt FROM ast_nodes
		WHERE project=? GROUP BY semantic_type ORDER BY cnt DESC`, project)
	if err != nil {
		return nil, fmt.Errorf("type counts: %w", err)
	}
	defer rows.Close()
	var out []TypeHistogram
	for rows.Next() {
		var h TypeHistogram
		if err := rows.Scan(&h.SemanticType, &h.Count); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNodeInto(sc rowScanner, n *NodeRow) error {
	return sc.Scan(&n.Project, &n.File, &n.NodeID, &n.ParentID, &n.NativeType, &n.SemanticType, &n.Name, &n.Flags,
		&n.StartByte, &n.EndByte, &n.StartLine, &n.StartCol, &n.EndLine, &n.EndCol,
		&n.Depth, &n.SiblingIndex, &n.ChildCount, &n.DescendantCount)
}

func scanNode(row *sql.Row) (*NodeRow, error) {
	var n NodeRow
	if err := scanNodeInto(row, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func scanNodes(rows *sql.Rows) ([]NodeRow, error) {
	var out []NodeRow
	for rows.Next() {
		var n NodeRow
		if err := scanNodeInto(rows, &n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
