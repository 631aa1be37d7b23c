// Package tools exposes the normalization service over MCP.
package tools

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/semantic-ast-mcp/internal/store"
)

// Server wraps the MCP server with tool handlers.
type Server struct {
	mcp     *mcp.Server
	store   *store.Store
	indexMu sync.Mutex // one indexing run at a time
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(s *store.Store) *Server {
	srv := &Server{
		store: s,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "semantic-ast-mcp",
				Version: "0.1.0",
			},
			nil,
		),
	}
	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) registerTools() {
	// 1. parse_file
	s.mcp.AddTool(&mcp.Tool{
		Name:        "parse_file",
		Description: "Parse one source file and return its flattened semantic node table: pre-order node IDs, parent links, native and semantic types, names, universal flags, spans, and heritage edges (EXTENDS/IMPLEMENTS/MIXES_IN). Nothing is persisted.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Path to the source file (language detected from extension)"
				},
				"include_tokens": {
					"type": "boolean",
					"description": "Include keyword/punctuation token rows (default: false, structural rows only)"
				},
				"max_nodes": {
					"type": "integer",
					"description": "Maximum rows to return (default 2000)"
				}
			},
			"required": ["path"]
		}`),
	}, s.handleParseFile)

	// 2. index_repository
	s.mcp.AddTool(&mcp.Tool{
		Name:        "index_repository",
		Description: "Index a repository: discover source files, normalize each into the semantic node table, and persist nodes, edges, and content hashes. Re-runs are incremental; unchanged files are skipped.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"repo_path": {
					"type": "string",
					"description": "Absolute path to the repository to index"
				}
			},
			"required": ["repo_path"]
		}`),
	}, s.handleIndexRepository)

	// 3. find_definitions
	s.mcp.AddTool(&mcp.Tool{
		Name:        "find_definitions",
		Description: "Find definition rows (classes, functions, methods, fields, enums, mixins, ...) in an indexed project. Filter by semantic type name, definition name, or file.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {
					"type": "string",
					"description": "Project name (from index_repository)"
				},
				"semantic_type": {
					"type": "string",
					"description": "Semantic type name, e.g. DEFINITION_CLASS, DEFINITION_METHOD. Omit for all definitions."
				},
				"name": {
					"type": "string",
					"description": "Exact definition name, e.g. 'ServiceAnimal'"
				},
				"file": {
					"type": "string",
					"description": "Restrict to one file (project-relative path)"
				},
				"limit": {
					"type": "integer",
					"description": "Max results (default 100)"
				}
			},
			"required": ["project"]
		}`),
	}, s.handleFindDefinitions)

	// 4. get_subtree
	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_subtree",
		Description: "Return a node and all of its descendants from an indexed file, plus the node's outgoing heritage edges. Pre-order IDs make this a single range scan.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {
					"type": "string",
					"description": "Project name"
				},
				"file": {
					"type": "string",
					"description": "Project-relative file path"
				},
				"node_id": {
					"type": "integer",
					"description": "Root node ID of the subtree"
				}
			},
			"required": ["project", "file", "node_id"]
		}`),
	}, s.handleGetSubtree)

	// 5. semantic_types
	s.mcp.AddTool(&mcp.Tool{
		Name:        "semantic_types",
		Description: "Return the complete semantic type taxonomy: every 8-bit code with its name, kind, and super kind, plus the universal flag names. Use to interpret semantic_type and universal_flags values.",
		InputSchema: json.RawMessage(`{"type": "object"}`),
	}, s.handleSemanticTypes)

	// 6. supported_languages
	s.mcp.AddTool(&mcp.Tool{
		Name:        "supported_languages",
		Description: "List the supported languages and the file extensions routed to each.",
		InputSchema: json.RawMessage(`{"type": "object"}`),
	}, s.handleSupportedLanguages)

	// 7. get_schema
	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_schema",
		Description: "Return an overview of an indexed project: file count per language, node count per semantic type, and edge count per kind.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {
					"type": "string",
					"description": "Project name"
				}
			},
			"required": ["project"]
		}`),
	}, s.handleGetSchema)

	// 8. list_projects
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_projects",
		Description: "List all indexed projects with their indexed_at timestamp, root path, and node counts.",
		InputSchema: json.RawMessage(`{"type": "object"}`),
	}, s.handleListProjects)

	// 9. delete_project
	s.mcp.AddTool(&mcp.Tool{
		Name:        "delete_project",
		Description: "Delete an indexed project and all its rows (nodes, edges, file hashes). This action is irreversible.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project_name": {
					"type": "string",
					"description": "Name of the project to delete"
				}
			},
			"required": ["project_name"]
		}`),
	}, s.handleDeleteProject)
}

// jsonResult marshals data to JSON and returns as tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// errResult returns a tool result indicating an error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if req.Params.Arguments == nil || len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

// getStringArg extracts a string argument from parsed args.
func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// getIntArg extracts an integer argument with a default value.
func getIntArg(args map[string]any, key string, defaultVal int) int {
	v, ok := args[key]
	if !ok {
		return defaultVal
	}
	f, ok := v.(float64) // JSON numbers decode as float64
	if !ok {
		return defaultVal
	}
	return int(f)
}

// getBoolArg extracts a boolean argument from parsed args.
func getBoolArg(args map[string]any, key string) bool {
	v, ok := args[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		return false
	}
	return b
}
