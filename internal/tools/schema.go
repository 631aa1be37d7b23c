package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/semantic-ast-mcp/internal/lang"
	"github.com/DeusData/semantic-ast-mcp/internal/semtype"
)

func (s *Server) handleSemanticTypes(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	manifest := semtype.Manifest()
	types := make([]map[string]any, 0, len(manifest))
	for _, e := range manifest {
		types = append(types, map[string]any{
			"code":       uint8(e.Code),
			"name":       e.Name,
			"kind":       e.Kind,
			"super_kind": semtype.SuperKindNameOf(e.Code),
		})
	}
	return jsonResult(map[string]any{
		"types": types,
		"flags": lang.AllFlagNames(),
		"edges": []string{
			string(lang.EdgeExtends),
			string(lang.EdgeImplements),
			string(lang.EdgeMixesIn),
		},
	}), nil
}

func (s *Server) handleSupportedLanguages(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	languages := make([]map[string]any, 0, len(lang.AllLanguages()))
	for _, l := range lang.AllLanguages() {
		spec := lang.ForLanguage(l)
		if spec == nil {
			continue
		}
		languages = append(languages, map[string]any{
			"language":   string(l),
			"extensions": spec.FileExtensions,
		})
	}
	return jsonResult(map[string]any{"languages": languages}), nil
}

func (s *Server) handleGetSchema(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	project := getStringArg(args, "project")
	if project == "" {
		return errResult("project is required"), nil
	}
	p, err := s.store.GetProject(project)
	if err != nil {
		return errResult(fmt.Sprintf("lookup project: %v", err)), nil
	}
	if p == nil {
		return errResult(fmt.Sprintf("project not indexed: %s", project)), nil
	}

	files, err := s.store.ListFiles(project)
	if err != nil {
		return errResult(fmt.Sprintf("list files: %v", err)), nil
	}
	byLanguage := make(map[string]int64)
	var totalNodes int64
	for _, f := range files {
		byLanguage[f.Language]++
		totalNodes += f.NodeCount
	}

	counts, err := s.store.TypeCounts(project)
	if err != nil {
		return errResult(fmt.Sprintf("type counts: %v", err)), nil
	}
	for i := range counts {
		counts[i].Name = semtype.Name(semtype.Code(counts[i].SemanticType))
	}

	edgeCounts, err := s.store.EdgeKindCounts(project)
	if err != nil {
		return errResult(fmt.Sprintf("edge counts: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"project":           p,
		"files":             len(files),
		"files_by_language": byLanguage,
		"total_nodes":       totalNodes,
		"nodes_by_type":     counts,
		"edges_by_kind":     edgeCounts,
	}), nil
}

// flagNamesOf decodes a stored flag bitset into its names.
func flagNamesOf(bits int64) []string {
	return lang.Flag(bits).Names()
}
