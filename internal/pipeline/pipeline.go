// Package pipeline orchestrates repository indexing: discover source
// files, normalize each one, and project the node tables into the
// store in a single transaction. Content hashes make re-runs
// incremental; unchanged files are skipped entirely.
package pipeline

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/DeusData/semantic-ast-mcp/internal/discover"
	"github.com/DeusData/semantic-ast-mcp/internal/normalize"
	"github.com/DeusData/semantic-ast-mcp/internal/store"
)

// Pipeline indexes one repository into one project.
type Pipeline struct {
	ctx         context.Context
	Store       *store.Store
	RepoPath    string
	ProjectName string
}

// Stats summarizes one pipeline run.
type Stats struct {
	Files     int   `json:"files"`
	Skipped   int   `json:"skipped"`
	Deleted   int   `json:"deleted"`
	Nodes     int64 `json:"nodes"`
	Edges     int64 `json:"edges"`
	ElapsedMS int64 `json:"elapsed_ms"`
}

// New creates a new Pipeline.
func New(ctx context.Context, s *store.Store, repoPath string) *Pipeline {
	return &Pipeline{
		ctx:         ctx,
		Store:       s,
		RepoPath:    repoPath,
		ProjectName: ProjectNameFromPath(repoPath),
	}
}

// ProjectNameFromPath derives a unique project name from an absolute path
// by replacing path separators with dashes and trimming the leading dash.
func ProjectNameFromPath(absPath string) string {
	cleaned := filepath.ToSlash(filepath.Clean(absPath))
	name := strings.ReplaceAll(cleaned, "/", "-")
	name = strings.TrimLeft(name, "-")
	if name == "" {
		return "root"
	}
	return name
}

func (p *Pipeline) checkCancel() error {
	return p.ctx.Err()
}

// Run indexes the repository. Files whose stored hash matches their
// current content are skipped; files that vanished since the last run
// are removed from the store.
func (p *Pipeline) Run() (*Stats, error) {
	started := time.Now()
	slog.Info("pipeline.start", "project", p.ProjectName, "path", p.RepoPath)

	if err := p.checkCancel(); err != nil {
		return nil, err
	}

	files, err := discover.Discover(p.ctx, p.RepoPath, nil)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	slog.Info("pipeline.discovered", "files", len(files))

	t := time.Now()
	changed, unchanged, err := p.classifyFiles(files)
	if err != nil {
		return nil, err
	}
	deleted := p.deletedFiles(files)
	slog.Info("pass.timing", "pass", "classify", "elapsed", time.Since(t),
		"changed", len(changed), "unchanged", len(unchanged), "deleted", len(deleted))

	stats := &Stats{Files: len(changed), Skipped: len(unchanged), Deleted: len(deleted)}
	if len(changed) == 0 && len(deleted) == 0 {
		slog.Info("pipeline.noop", "reason", "no_changes")
		stats.ElapsedMS = time.Since(started).Milliseconds()
		return stats, nil
	}

	if err := p.checkCancel(); err != nil {
		return nil, err
	}

	t = time.Now()
	results, err := p.normalizeFiles(changed)
	if err != nil {
		return nil, err
	}
	slog.Info("pass.timing", "pass", "normalize", "elapsed", time.Since(t))

	if err := p.checkCancel(); err != nil {
		return nil, err
	}

	t = time.Now()
	err = p.Store.WithTransaction(func(tx *store.Store) error {
		if err := tx.UpsertProject(p.ProjectName, p.RepoPath); err != nil {
			return fmt.Errorf("upsert project: %w", err)
		}
		for _, rel := range deleted {
			if err := tx.DeleteFile(p.ProjectName, rel); err != nil {
				return err
			}
		}
		for _, r := range results {
			if err := p.projectFile(tx, r); err != nil {
				return fmt.Errorf("project %s: %w", r.file.RelPath, err)
			}
			stats.Nodes += int64(len(r.table.Nodes))
			stats.Edges += int64(len(r.table.Edges))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("pass.timing", "pass", "project", "elapsed", time.Since(t))

	stats.ElapsedMS = time.Since(started).Milliseconds()
	slog.Info("pipeline.done", "files", stats.Files, "nodes", stats.Nodes, "edges", stats.Edges)
	return stats, nil
}

type fileResult struct {
	file  discover.FileInfo
	hash  string
	table *normalize.NodeTable
}

// normalizeFiles parses and normalizes changed files with one goroutine
// per file, bounded by CPU count. Each file is fully independent.
func (p *Pipeline) normalizeFiles(files []discover.FileInfo) ([]fileResult, error) {
	results := make([]*fileResult, len(files))

	g, gctx := errgroup.WithContext(p.ctx)
	g.SetLimit(runtime.NumCPU())
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			source, err := os.ReadFile(f.Path)
			if err != nil {
				// A file that vanished mid-run is skipped, not fatal.
				slog.Warn("pipeline.read_failed", "path", f.RelPath, "err", err)
				return nil
			}
			table, err := normalize.Normalize(source, f.Language)
			if err != nil {
				slog.Warn("pipeline.normalize_failed", "path", f.RelPath, "err", err)
				return nil
			}
			results[i] = &fileResult{file: f, hash: hashBytes(source), table: table}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]fileResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// projectFile replaces one file's rows inside the transaction.
func (p *Pipeline) projectFile(tx *store.Store, r fileResult) error {
	if err := tx.DeleteFile(p.ProjectName, r.file.RelPath); err != nil {
		return err
	}
	if err := tx.InsertNodeBatch(nodeRows(p.ProjectName, r.file.RelPath, r.table)); err != nil {
		return err
	}
	if err := tx.InsertEdgeBatch(edgeRows(p.ProjectName, r.file.RelPath, r.table)); err != nil {
		return err
	}
	return tx.UpsertFile(store.FileRecord{
		Project:   p.ProjectName,
		RelPath:   r.file.RelPath,
		Language:  string(r.file.Language),
		Hash:      r.hash,
		NodeCount: int64(len(r.table.Nodes)),
	})
}

// classifyFiles splits files into changed and unchanged using stored
// hashes. Hashing fans out across CPUs; a hash failure counts the file
// as changed so it gets re-read on the write path.
func (p *Pipeline) classifyFiles(files []discover.FileInfo) (changed, unchanged []discover.FileInfo, err error) {
	stored, err := p.Store.FileHashes(p.ProjectName)
	if err != nil {
		return nil, nil, fmt.Errorf("stored hashes: %w", err)
	}
	if len(stored) == 0 {
		return files, nil, nil
	}

	hashes := make([]string, len(files))
	numWorkers := runtime.NumCPU()
	if numWorkers > len(files) {
		numWorkers = len(files)
	}
	g := new(errgroup.Group)
	g.SetLimit(numWorkers)
	for i, f := range files {
		g.Go(func() error {
			hashes[i], _ = fileHash(f.Path)
			return nil
		})
	}
	_ = g.Wait()

	for i, f := range files {
		if hashes[i] != "" && stored[f.RelPath] == hashes[i] {
			unchanged = append(unchanged, f)
		} else {
			changed = append(changed, f)
		}
	}
	return changed, unchanged, nil
}

// deletedFiles returns stored rel paths no longer present on disk.
func (p *Pipeline) deletedFiles(files []discover.FileInfo) []string {
	stored, err := p.Store.FileHashes(p.ProjectName)
	if err != nil || len(stored) == 0 {
		return nil
	}
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f.RelPath] = true
	}
	var gone []string
	for rel := range stored {
		if !present[rel] {
			gone = append(gone, rel)
		}
	}
	return gone
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashBytes(b []byte) string {
	h := xxh3.New()
	_, _ = h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}
