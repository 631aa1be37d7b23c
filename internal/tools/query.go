package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/semantic-ast-mcp/internal/fqn"
	"github.com/DeusData/semantic-ast-mcp/internal/semtype"
	"github.com/DeusData/semantic-ast-mcp/internal/store"
)

func (s *Server) handleFindDefinitions(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	project := getStringArg(args, "project")
	if project == "" {
		return errResult("project is required"), nil
	}
	if p, err := s.store.GetProject(project); err != nil {
		return errResult(fmt.Sprintf("lookup project: %v", err)), nil
	} else if p == nil {
		return errResult(fmt.Sprintf("project not indexed: %s", project)), nil
	}

	q := store.DefinitionQuery{
		Project: project,
		Name:    getStringArg(args, "name"),
		File:    getStringArg(args, "file"),
		Limit:   getIntArg(args, "limit", 100),
	}
	if typeName := getStringArg(args, "semantic_type"); typeName != "" {
		code, ok := semtype.Lookup(typeName)
		if !ok {
			return errResult(fmt.Sprintf("unknown semantic type: %s (use semantic_types for the full list)", typeName)), nil
		}
		q.SemanticType = int64(code)
		q.HasType = true
	}

	defs, err := s.store.FindDefinitions(q)
	if err != nil {
		return errResult(fmt.Sprintf("query failed: %v", err)), nil
	}

	results := make([]map[string]any, 0, len(defs))
	for _, d := range defs {
		row := definitionJSON(d)
		if d.Name != "" {
			row["qualified_name"] = fqn.Compute(project, d.File, d.Name)
		}
		results = append(results, row)
	}
	return jsonResult(map[string]any{
		"project": project,
		"count":   len(results),
		"results": results,
	}), nil
}

func (s *Server) handleGetSubtree(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	project := getStringArg(args, "project")
	file := getStringArg(args, "file")
	if project == "" || file == "" {
		return errResult("project and file are required"), nil
	}
	nodeID := getIntArg(args, "node_id", -1)
	if nodeID < 0 {
		return errResult("node_id is required"), nil
	}

	nodes, err := s.store.Subtree(project, file, int64(nodeID))
	if err != nil {
		return errResult(fmt.Sprintf("subtree query failed: %v", err)), nil
	}
	if nodes == nil {
		return errResult(fmt.Sprintf("node %d not found in %s", nodeID, file)), nil
	}
	edges, err := s.store.EdgesFromNode(project, file, int64(nodeID))
	if err != nil {
		return errResult(fmt.Sprintf("edge query failed: %v", err)), nil
	}

	rows := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, definitionJSON(n))
	}
	return jsonResult(map[string]any{
		"project": project,
		"file":    file,
		"root_id": nodeID,
		"count":   len(rows),
		"nodes":   rows,
		"edges":   edges,
	}), nil
}

// definitionJSON renders a stored node row with its semantic type and
// flags decoded into names.
func definitionJSON(n store.NodeRow) map[string]any {
	return map[string]any{
		"file":             n.File,
		"node_id":          n.NodeID,
		"parent_id":        n.ParentID,
		"native_type":      n.NativeType,
		"semantic_type":    n.SemanticType,
		"semantic_name":    semtype.Name(semtype.Code(n.SemanticType)),
		"name":             n.Name,
		"flags":            flagNamesOf(n.Flags),
		"start_line":       n.StartLine,
		"end_line":         n.EndLine,
		"depth":            n.Depth,
		"child_count":      n.ChildCount,
		"descendant_count": n.DescendantCount,
	}
}
