package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleListProjects(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.store.ListProjects()
	if err != nil {
		return errResult(fmt.Sprintf("list projects: %v", err)), nil
	}

	out := make([]map[string]any, 0, len(projects))
	for _, p := range projects {
		count, err := s.store.CountNodes(p.Name)
		if err != nil {
			return errResult(fmt.Sprintf("count nodes for %s: %v", p.Name, err)), nil
		}
		out = append(out, map[string]any{
			"name":       p.Name,
			"root_path":  p.RootPath,
			"indexed_at": p.IndexedAt,
			"node_count": count,
		})
	}
	return jsonResult(map[string]any{"projects": out}), nil
}

func (s *Server) handleDeleteProject(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	name := getStringArg(args, "project_name")
	if name == "" {
		return errResult("project_name is required"), nil
	}
	p, err := s.store.GetProject(name)
	if err != nil {
		return errResult(fmt.Sprintf("lookup project: %v", err)), nil
	}
	if p == nil {
		return errResult(fmt.Sprintf("project not found: %s", name)), nil
	}

	if err := s.store.DeleteProject(name); err != nil {
		return errResult(fmt.Sprintf("delete failed: %v", err)), nil
	}
	return jsonResult(map[string]any{
		"deleted": name,
	}), nil
}
