package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Project is one indexed repository.
type Project struct {
	Name      string `json:"name"`
	RootPath  string `json:"root_path"`
	IndexedAt string `json:"indexed_at"`
}

// FileRecord is one indexed source file with its content hash.
type FileRecord struct {
	Project   string `json:"-"`
	RelPath   string `json:"path"`
	Language  string `json:"language"`
	Hash      string `json:"hash"`
	NodeCount int64  `json:"node_count"`
}

// UpsertProject records a project and its indexing timestamp.
func (s *Store) UpsertProject(name, rootPath string) error {
	_, err := s.q.Exec(`
		INSERT INTO projects (name, root_path, indexed_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET root_path=excluded.root_path, indexed_at=excluded.indexed_at`,
		name, rootPath, Now())
	if err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}
	return nil
}

// GetProject returns a project by name, or nil if not indexed.
func (s *Store) GetProject(name string) (*Project, error) {
	var p Project
	err := s.q.QueryRow("SELECT name, root_path, indexed_at FROM projects WHERE name=?", name).
		Scan(&p.Name, &p.RootPath, &p.IndexedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// ListProjects returns all indexed projects.
func (s *Store) ListProjects() ([]Project, error) {
	rows, err := s.q.Query("SELECT name, root_path, indexed_at FROM projects ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.Name, &p.RootPath, &p.IndexedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpsertFile records a file's language, hash, and row count.
func (s *Store) UpsertFile(f FileRecord) error {
	_, err := s.q.Exec(`
		INSERT INTO files (project, rel_path, language, hash, node_count) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project, rel_path) DO UPDATE SET
			language=excluded.language, hash=excluded.hash, node_count=excluded.node_count`,
		f.Project, f.RelPath, f.Language, f.Hash, f.NodeCount)
	if err != nil {
		return fmt.Errorf("upsert file: %w", err)
	}
	return nil
}

// FileHashes returns rel_path → hash for all files in a project.
func (s *Store) FileHashes(project string) (map[string]string, error) {
	rows, err := s.q.Query("SELECT rel_path, hash FROM files WHERE project=?", project)
	if err != nil {
		return nil, fmt.Errorf("file hashes: %w", err)
	}
	defer rows.Close()
	hashes := map[string]string{}
	for rows.Next() {
		var rel, hash string
		if err := rows.Scan(&rel, &hash); err != nil {
			return nil, err
		}
		hashes[rel] = hash
	}
	return hashes, rows.Err()
}

// ListFiles returns all file records for a project.
func (s *Store) ListFiles(project string) ([]FileRecord, error) {
	rows, err := s.q.Query("SELECT project, rel_path, language, hash, node_count FROM files WHERE project=? ORDER BY rel_path", project)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()
	var out []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.Project, &f.RelPath, &f.Language, &f.Hash, &f.NodeCount); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// DeleteFile removes a file's record and all of its node and edge rows.
func (s *Store) DeleteFile(project, relPath string) error {
	for _, q := range []string{
		"DELETE FROM ast_nodes WHERE project=? AND file=?",
		"DELETE FROM ast_edges WHERE project=? AND file=?",
		"DELETE FROM files WHERE project=? AND rel_path=?",
	} {
		if _, err := s.q.Exec(q, project, relPath); err != nil {
			return fmt.Errorf("delete file rows: %w", err)
		}
	}
	return nil
}

// DeleteProject removes a project and all of its rows.
func (s *Store) DeleteProject(project string) error {
	for _, q := range []string{
		"DELETE FROM ast_nodes WHERE project=?",
		"DELETE FROM ast_edges WHERE project=?",
		"DELETE FROM projects WHERE name=?",
	} {
		if _, err := s.q.Exec(q, project); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
	}
	return nil
}
