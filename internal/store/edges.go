package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// EdgeRow is one persisted heritage edge.
type EdgeRow struct {
	Project  string `json:"-"`
	File     string `json:"file"`
	SourceID int64  `json:"source_id"`
	TargetID int64  `json:"target_id"`
	Kind     string `json:"kind"`
}

// edgesBatchSize is the max rows per batch INSERT (5 cols x 150 = 750 vars < 999).
const edgesBatchSize = 150

// InsertEdgeBatch inserts edge rows in batched multi-row INSERTs.
func (s *Store) InsertEdgeBatch(rows []EdgeRow) error {
	for i := 0; i < len(rows); i += edgesBatchSize {
		end := i + edgesBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := s.insertEdgeChunk(rows[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) insertEdgeChunk(batch []EdgeRow) error {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ast_edges (project, file, source_id, target_id, kind) VALUES ")
	args := make([]any, 0, len(batch)*5)
	for i, e := range batch {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString("(?,?,?,?,?)")
		args = append(args, e.Project, e.File, e.SourceID, e.TargetID, e.Kind)
	}
	if _, err := s.q.Exec(sb.String(), args...); err != nil {
		return fmt.Errorf("insert edge batch: %w", err)
	}
	return nil
}

// EdgesByFile returns all edges recorded for a file.
func (s *Store) EdgesByFile(project, file string) ([]EdgeRow, error) {
	rows, err := s.q.Query(`SELECT project, file, source_id, target_id, kind FROM ast_edges
		WHERE project=? AND file=? ORDER BY source_id, target_id`, project, file)
	if err != nil {
		return nil, fmt.Errorf("edges by file: %w", err)
	}
	defer rows.Close()
	return scanEdges(rows)
}

// EdgesByKind returns all edges of one kind in a project.
func (s *Store) EdgesByKind(project, kind string) ([]EdgeRow, error) {
	rows, err := s.q.Query(`SELECT project, file, source_id, target_id, kind FROM ast_edges
		WHERE project=? AND kind=? ORDER BY file, source_id`, project, kind)
	if err != nil {
		return nil, fmt.Errorf("edges by kind: %w", err)
	}
	defer rows.Close()
	return scanEdges(rows)
}

// EdgesFromNode returns a definition's outgoing edges.
func (s *Store) EdgesFromNode(project, file string, sourceID int64) ([]EdgeRow, error) {
	rows, err := s.q.Query(`SELECT project, file, source_id, target_id, kind FROM ast_edges
		WHERE project=? AND file=? AND source_id=? ORDER BY target_id`, project, file, sourceID)
	if err != nil {
		return nil, fmt.Errorf("edges from node: %w", err)
	}
	defer rows.Close()
	return scanEdges(rows)
}

// EdgeKindCounts returns per-kind edge counts for a project.
func (s *Store) EdgeKindCounts(project string) (map[string]int64, error) {
	rows, err := s.q.Query(`SELECT kind, COUNT(*) FROM ast_edges
		WHERE project=? GROUP BY kind`, project)
	if err != nil {
		return nil, fmt.Errorf("edge kind counts: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		out[kind] = count
	}
	return out, rows.Err()
}

func scanEdges(rows *sql.Rows) ([]EdgeRow, error) {
	var out []EdgeRow
	for rows.Next() {
		var e EdgeRow
		if err := rows.Scan(&e.Project, &e.File, &e.SourceID, &e.TargetID, &e.Kind); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
