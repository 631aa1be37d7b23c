package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/semantic-ast-mcp/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return NewServer(s)
}

func callReq(args string) *mcp.CallToolRequest {
	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(args)},
	}
}

// resultJSON fails the test on an error result and decodes the payload.
func resultJSON(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	text := res.Content[0].(*mcp.TextContent).Text
	if res.IsError {
		t.Fatalf("tool returned error: %s", text)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		t.Fatalf("result is not JSON: %v\n%s", err, text)
	}
	return m
}

func writeTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	java := "class Widget extends Base { void spin() {} }\nclass Base { }\n"
	if err := os.WriteFile(filepath.Join(dir, "Widget.java"), []byte(java), 0o600); err != nil {
		t.Fatal(err)
	}
	py := "class Helper:\n    def run(self):\n        pass\n"
	if err := os.WriteFile(filepath.Join(dir, "util.py"), []byte(py), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

// indexTestRepo runs index_repository and returns the project name.
func indexTestRepo(t *testing.T, srv *Server, dir string) string {
	t.Helper()
	res, err := srv.handleIndexRepository(context.Background(),
		callReq(fmt.Sprintf(`{"repo_path": %q}`, dir)))
	if err != nil {
		t.Fatal(err)
	}
	m := resultJSON(t, res)
	project, _ := m["project"].(string)
	if project == "" {
		t.Fatalf("no project name in index result: %v", m)
	}
	return project
}

func TestParseFileTool(t *testing.T) {
	srv := newTestServer(t)
	dir := writeTestRepo(t)
	path := filepath.Join(dir, "Widget.java")

	res, err := srv.handleParseFile(context.Background(), callReq(fmt.Sprintf(`{"path": %q}`, path)))
	if err != nil {
		t.Fatal(err)
	}
	m := resultJSON(t, res)
	if m["language"] != "java" {
		t.Errorf("language = %v, want java", m["language"])
	}
	structural := len(m["nodes"].([]any))
	if structural == 0 {
		t.Fatal("no nodes returned")
	}

	res, err = srv.handleParseFile(context.Background(),
		callReq(fmt.Sprintf(`{"path": %q, "include_tokens": true}`, path)))
	if err != nil {
		t.Fatal(err)
	}
	withTokens := len(resultJSON(t, res)["nodes"].([]any))
	if withTokens <= structural {
		t.Errorf("include_tokens returned %d rows, structural view %d; want more", withTokens, structural)
	}
}

func TestParseFileMaxNodes(t *testing.T) {
	srv := newTestServer(t)
	dir := writeTestRepo(t)
	path := filepath.Join(dir, "Widget.java")

	res, err := srv.handleParseFile(context.Background(),
		callReq(fmt.Sprintf(`{"path": %q, "max_nodes": 3}`, path)))
	if err != nil {
		t.Fatal(err)
	}
	m := resultJSON(t, res)
	if n := len(m["nodes"].([]any)); n != 3 {
		t.Errorf("nodes = %d, want 3", n)
	}
	if m["truncated"] != true {
		t.Error("expected truncated=true")
	}
}

func TestParseFileUnsupportedExtension(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleParseFile(context.Background(), callReq(`{"path": "notes.txt"}`))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected error result for unsupported extension")
	}
}

func TestFindDefinitionsTool(t *testing.T) {
	srv := newTestServer(t)
	project := indexTestRepo(t, srv, writeTestRepo(t))

	res, err := srv.handleFindDefinitions(context.Background(),
		callReq(fmt.Sprintf(`{"project": %q, "semantic_type": "DEFINITION_CLASS", "name": "Widget"}`, project)))
	if err != nil {
		t.Fatal(err)
	}
	m := resultJSON(t, res)
	if m["count"].(float64) != 1 {
		t.Fatalf("count = %v, want 1", m["count"])
	}
	row := m["results"].([]any)[0].(map[string]any)
	if row["name"] != "Widget" || row["semantic_name"] != "DEFINITION_CLASS" {
		t.Errorf("unexpected row: %v", row)
	}
}

func TestFindDefinitionsZeroValuedType(t *testing.T) {
	srv := newTestServer(t)
	project := indexTestRepo(t, srv, writeTestRepo(t))

	// LITERAL_NUMBER is code 0x00; the filter must still apply instead
	// of falling back to the all-definitions range.
	res, err := srv.handleFindDefinitions(context.Background(),
		callReq(fmt.Sprintf(`{"project": %q, "semantic_type": "LITERAL_NUMBER"}`, project)))
	if err != nil {
		t.Fatal(err)
	}
	m := resultJSON(t, res)
	if m["count"].(float64) != 0 {
		t.Fatalf("count = %v, want 0 literal rows", m["count"])
	}
}

func TestFindDefinitionsUnknownType(t *testing.T) {
	srv := newTestServer(t)
	project := indexTestRepo(t, srv, writeTestRepo(t))

	res, err := srv.handleFindDefinitions(context.Background(),
		callReq(fmt.Sprintf(`{"project": %q, "semantic_type": "DEFINITION_GIZMO"}`, project)))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected error result for unknown semantic type")
	}
}

func TestFindDefinitionsMissingProject(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleFindDefinitions(context.Background(), callReq(`{"project": "ghost"}`))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected error result for unindexed project")
	}
}

func TestGetSubtreeTool(t *testing.T) {
	srv := newTestServer(t)
	project := indexTestRepo(t, srv, writeTestRepo(t))

	res, err := srv.handleFindDefinitions(context.Background(),
		callReq(fmt.Sprintf(`{"project": %q, "name": "Widget"}`, project)))
	if err != nil {
		t.Fatal(err)
	}
	row := resultJSON(t, res)["results"].([]any)[0].(map[string]any)
	nodeID := int(row["node_id"].(float64))
	descendants := int(row["descendant_count"].(float64))
	file := row["file"].(string)

	res, err = srv.handleGetSubtree(context.Background(),
		callReq(fmt.Sprintf(`{"project": %q, "file": %q, "node_id": %d}`, project, file, nodeID)))
	if err != nil {
		t.Fatal(err)
	}
	m := resultJSON(t, res)
	if got := int(m["count"].(float64)); got != descendants+1 {
		t.Errorf("subtree rows = %d, want %d", got, descendants+1)
	}
}

func TestGetSubtreeMissingNode(t *testing.T) {
	srv := newTestServer(t)
	project := indexTestRepo(t, srv, writeTestRepo(t))

	res, err := srv.handleGetSubtree(context.Background(),
		callReq(fmt.Sprintf(`{"project": %q, "file": "Widget.java", "node_id": 99999}`, project)))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected error result for missing node")
	}
}

func TestSemanticTypesTool(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleSemanticTypes(context.Background(), callReq(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	m := resultJSON(t, res)
	if n := len(m["types"].([]any)); n != 73 {
		t.Errorf("manifest size = %d, want 73", n)
	}
	if n := len(m["flags"].([]any)); n != 9 {
		t.Errorf("flag count = %d, want 9", n)
	}
	if n := len(m["edges"].([]any)); n != 3 {
		t.Errorf("edge kinds = %d, want 3", n)
	}
}

func TestSupportedLanguagesTool(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleSupportedLanguages(context.Background(), callReq(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	m := resultJSON(t, res)
	if n := len(m["languages"].([]any)); n != 8 {
		t.Errorf("languages = %d, want 8", n)
	}
}

func TestGetSchemaTool(t *testing.T) {
	srv := newTestServer(t)
	project := indexTestRepo(t, srv, writeTestRepo(t))

	res, err := srv.handleGetSchema(context.Background(), callReq(fmt.Sprintf(`{"project": %q}`, project)))
	if err != nil {
		t.Fatal(err)
	}
	m := resultJSON(t, res)
	if m["files"].(float64) != 2 {
		t.Errorf("files = %v, want 2", m["files"])
	}
	byLang := m["files_by_language"].(map[string]any)
	if byLang["java"].(float64) != 1 || byLang["python"].(float64) != 1 {
		t.Errorf("files_by_language = %v", byLang)
	}
	edges := m["edges_by_kind"].(map[string]any)
	if edges["EXTENDS"].(float64) != 1 {
		t.Errorf("edges_by_kind = %v, want 1 EXTENDS", edges)
	}
}

func TestListAndDeleteProject(t *testing.T) {
	srv := newTestServer(t)
	project := indexTestRepo(t, srv, writeTestRepo(t))

	res, err := srv.handleListProjects(context.Background(), callReq(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	projects := resultJSON(t, res)["projects"].([]any)
	if len(projects) != 1 {
		t.Fatalf("projects = %d, want 1", len(projects))
	}
	entry := projects[0].(map[string]any)
	if entry["name"] != project || entry["node_count"].(float64) == 0 {
		t.Errorf("unexpected project entry: %v", entry)
	}

	res, err = srv.handleDeleteProject(context.Background(),
		callReq(fmt.Sprintf(`{"project_name": %q}`, project)))
	if err != nil {
		t.Fatal(err)
	}
	resultJSON(t, res)

	res, err = srv.handleListProjects(context.Background(), callReq(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if projects := resultJSON(t, res)["projects"].([]any); len(projects) != 0 {
		t.Errorf("projects after delete = %d, want 0", len(projects))
	}
}

func TestDeleteProjectMissing(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleDeleteProject(context.Background(), callReq(`{"project_name": "ghost"}`))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected error result for missing project")
	}
}
