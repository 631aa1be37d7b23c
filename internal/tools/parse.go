package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/semantic-ast-mcp/internal/lang"
	"github.com/DeusData/semantic-ast-mcp/internal/normalize"
	"github.com/DeusData/semantic-ast-mcp/internal/semtype"
)

// nodeJSON is the wire shape of one node row in parse_file output.
type nodeJSON struct {
	ID              int32    `json:"id"`
	ParentID        int32    `json:"parent_id"`
	NativeType      string   `json:"native_type"`
	SemanticType    uint8    `json:"semantic_type"`
	SemanticName    string   `json:"semantic_name"`
	Name            string   `json:"name,omitempty"`
	Flags           []string `json:"flags,omitempty"`
	StartByte       uint32   `json:"start_byte"`
	EndByte         uint32   `json:"end_byte"`
	StartLine       uint32   `json:"start_line"`
	EndLine         uint32   `json:"end_line"`
	Depth           uint32   `json:"depth"`
	ChildCount      uint32   `json:"child_count"`
	DescendantCount uint32   `json:"descendant_count"`
}

type edgeJSON struct {
	Source int32  `json:"source"`
	Target int32  `json:"target"`
	Kind   string `json:"kind"`
}

func (s *Server) handleParseFile(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	path := getStringArg(args, "path")
	if path == "" {
		return errResult("path is required"), nil
	}
	includeTokens := getBoolArg(args, "include_tokens")
	maxNodes := getIntArg(args, "max_nodes", 2000)

	l, ok := lang.LanguageForExtension(filepath.Ext(path))
	if !ok {
		return errResult(fmt.Sprintf("unsupported file extension: %s", filepath.Ext(path))), nil
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return errResult(fmt.Sprintf("read file: %v", err)), nil
	}
	table, err := normalize.Normalize(source, l)
	if err != nil {
		return errResult(fmt.Sprintf("normalize: %v", err)), nil
	}

	nodes := make([]nodeJSON, 0, len(table.Nodes))
	truncated := false
	for _, n := range table.Nodes {
		if !includeTokens && isTokenRow(n.Type) {
			continue
		}
		if len(nodes) >= maxNodes {
			truncated = true
			break
		}
		nodes = append(nodes, nodeJSON{
			ID:              n.ID,
			ParentID:        n.ParentID,
			NativeType:      n.NativeType,
			SemanticType:    uint8(n.Type),
			SemanticName:    semtype.Name(n.Type),
			Name:            n.Name,
			Flags:           n.Flags.Names(),
			StartByte:       n.StartByte,
			EndByte:         n.EndByte,
			StartLine:       n.StartLine,
			EndLine:         n.EndLine,
			Depth:           n.Depth,
			ChildCount:      n.ChildCount,
			DescendantCount: n.DescendantCount,
		})
	}
	edges := make([]edgeJSON, 0, len(table.Edges))
	for _, e := range table.Edges {
		edges = append(edges, edgeJSON{Source: e.Source, Target: e.Target, Kind: string(e.Kind)})
	}

	return jsonResult(map[string]any{
		"language":    table.Language,
		"total_nodes": len(table.Nodes),
		"truncated":   truncated,
		"nodes":       nodes,
		"edges":       edges,
	}), nil
}

// isTokenRow reports whether a row is keyword/punctuation noise for
// structural views.
func isTokenRow(c semtype.Code) bool {
	switch semtype.SuperTypeOf(c) {
	case semtype.NameKeyword, semtype.ParserPunctuation, semtype.ParserDelimiter, semtype.ParserSyntax:
		return true
	}
	return false
}
