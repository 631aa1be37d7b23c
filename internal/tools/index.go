package tools

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/semantic-ast-mcp/internal/pipeline"
)

func (s *Server) handleIndexRepository(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	repoPath := getStringArg(args, "repo_path")
	if repoPath == "" {
		return errResult("repo_path is required"), nil
	}
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return errResult(fmt.Sprintf("invalid path: %v", err)), nil
	}

	// Lock to prevent concurrent indexing runs
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	p := pipeline.New(ctx, s.store, absPath)
	stats, err := p.Run()
	if err != nil {
		return errResult(fmt.Sprintf("indexing failed: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"project": p.ProjectName,
		"stats":   stats,
	}), nil
}

// ReindexProject re-runs the pipeline for an already-indexed project.
// Used by the file watcher; shares the index lock with index_repository.
func (s *Server) ReindexProject(ctx context.Context, _, rootPath string) error {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	_, err := pipeline.New(ctx, s.store, rootPath).Run()
	return err
}
