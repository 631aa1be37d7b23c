package store

import (
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedFile writes a small synthetic node table: a module root holding a
// class definition whose subtree is rows 1-3, plus a trailing sibling.
func seedFile(t *testing.T, s *Store, project, file string) {
	t.Helper()
	if err := s.UpsertProject(project, "/tmp/"+project); err != nil {
		t.Fatalf("UpsertProject: %v", err)
	}
	if err := s.UpsertFile(FileRecord{Project: project, RelPath: file, Language: "java", Hash: "h1", NodeCount: 5}); err != nil {
		t.Fatalf("UpsertFile: %v", err)
	}
	nodes := []NodeRow{
		{Project: project, File: file, NodeID: 0, ParentID: -1, NativeType: "program", SemanticType: 0x7C, DescendantCount: 4, ChildCount: 2},
		{Project: project, File: file, NodeID: 1, ParentID: 0, NativeType: "class_declaration", SemanticType: 0x78, Name: "Widget", Depth: 1, DescendantCount: 2, ChildCount: 2},
		{Project: project, File: file, NodeID: 2, ParentID: 1, NativeType: "identifier", SemanticType: 0x14, Name: "Widget", Depth: 2},
		{Project: project, File: file, NodeID: 3, ParentID: 1, NativeType: "superclass", SemanticType: 0xEC, Depth: 2, SiblingIndex: 1},
		{Project: project, File: file, NodeID: 4, ParentID: 0, NativeType: "line_comment", SemanticType: 0xC0, Depth: 1, SiblingIndex: 1},
	}
	if err := s.InsertNodeBatch(nodes); err != nil {
		t.Fatalf("InsertNodeBatch: %v", err)
	}
	if err := s.InsertEdgeBatch([]EdgeRow{
		{Project: project, File: file, SourceID: 1, TargetID: 3, Kind: "EXTENDS"},
	}); err != nil {
		t.Fatalf("InsertEdgeBatch: %v", err)
	}
}

func TestProjectAndFileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	seedFile(t, s, "demo", "src/Widget.java")

	p, err := s.GetProject("demo")
	if err != nil || p == nil {
		t.Fatalf("GetProject: %v, %v", p, err)
	}
	if p.RootPath != "/tmp/demo" || p.IndexedAt == "" {
		t.Errorf("unexpected project: %+v", p)
	}

	hashes, err := s.FileHashes("demo")
	if err != nil {
		t.Fatalf("FileHashes: %v", err)
	}
	if hashes["src/Widget.java"] != "h1" {
		t.Errorf("hashes = %v", hashes)
	}

	missing, err := s.GetProject("nope")
	if err != nil || missing != nil {
		t.Errorf("missing project should be nil, nil; got %v, %v", missing, err)
	}
}

func TestNodesByFileOrdered(t *testing.T) {
	s := openTestStore(t)
	seedFile(t, s, "demo", "a.java")

	rows, err := s.NodesByFile("demo", "a.java")
	if err != nil {
		t.Fatalf("NodesByFile: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	for i, r := range rows {
		if r.NodeID != int64(i) {
			t.Errorf("row %d has node_id %d", i, r.NodeID)
		}
	}
}

func TestSubtreeRange(t *testing.T) {
	s := openTestStore(t)
	seedFile(t, s, "demo", "a.java")

	sub, err := s.Subtree("demo", "a.java", 1)
	if err != nil {
		t.Fatalf("Subtree: %v", err)
	}
	if len(sub) != 3 {
		t.Fatalf("subtree of node 1: got %d rows, want 3", len(sub))
	}
	if sub[0].NodeID != 1 || sub[2].NodeID != 3 {
		t.Errorf("subtree range = [%d, %d]", sub[0].NodeID, sub[2].NodeID)
	}

	none, err := s.Subtree("demo", "a.java", 99)
	if err != nil {
		t.Fatalf("Subtree(99): %v", err)
	}
	if none != nil {
		t.Errorf("missing root should return nil, got %d rows", len(none))
	}
}

func TestFindDefinitions(t *testing.T) {
	s := openTestStore(t)
	seedFile(t, s, "demo", "a.java")

	defs, err := s.FindDefinitions(DefinitionQuery{Project: "demo"})
	if err != nil {
		t.Fatalf("FindDefinitions: %v", err)
	}
	// program (DEFINITION_MODULE) and the class.
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2", len(defs))
	}

	classes, err := s.FindDefinitions(DefinitionQuery{Project: "demo", SemanticType: 0x78, HasType: true})
	if err != nil {
		t.Fatalf("FindDefinitions class: %v", err)
	}
	if len(classes) != 1 || classes[0].Name != "Widget" {
		t.Errorf("class query = %+v", classes)
	}

	named, err := s.FindDefinitions(DefinitionQuery{Project: "demo", Name: "Widget"})
	if err != nil {
		t.Fatalf("FindDefinitions name: %v", err)
	}
	if len(named) != 1 {
		t.Errorf("name query got %d rows", len(named))
	}

	// Code 0 (LITERAL_NUMBER) is a real filter, not the "any" default.
	literals, err := s.FindDefinitions(DefinitionQuery{Project: "demo", SemanticType: 0x00, HasType: true})
	if err != nil {
		t.Fatalf("FindDefinitions literal: %v", err)
	}
	if len(literals) != 0 {
		t.Errorf("literal query got %d rows, want 0", len(literals))
	}
}

func TestEdges(t *testing.T) {
	s := openTestStore(t)
	seedFile(t, s, "demo", "a.java")

	edges, err := s.EdgesByKind("demo", "EXTENDS")
	if err != nil {
		t.Fatalf("EdgesByKind: %v", err)
	}
	if len(edges) != 1 || edges[0].SourceID != 1 || edges[0].TargetID != 3 {
		t.Errorf("edges = %+v", edges)
	}

	out, err := s.EdgesFromNode("demo", "a.java", 1)
	if err != nil {
		t.Fatalf("EdgesFromNode: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("outgoing edges = %+v", out)
	}
}

func TestTypeCounts(t *testing.T) {
	s := openTestStore(t)
	seedFile(t, s, "demo", "a.java")

	counts, err := s.TypeCounts("demo")
	if err != nil {
		t.Fatalf("TypeCounts: %v", err)
	}
	total := int64(0)
	for _, h := range counts {
		total += h.Count
	}
	if total != 5 {
		t.Errorf("histogram total = %d, want 5", total)
	}
}

func TestDeleteFileAndProject(t *testing.T) {
	s := openTestStore(t)
	seedFile(t, s, "demo", "a.java")
	seedFile(t, s, "demo", "b.java")

	if err := s.DeleteFile("demo", "a.java"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	n, err := s.CountNodes("demo")
	if err != nil || n != 5 {
		t.Errorf("after file delete: %d nodes, err %v", n, err)
	}

	if err := s.DeleteProject("demo"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	n, _ = s.CountNodes("demo")
	if n != 0 {
		t.Errorf("after project delete: %d nodes", n)
	}
	files, _ := s.ListFiles("demo")
	if len(files) != 0 {
		t.Errorf("files not cascaded: %+v", files)
	}
}

func TestWithTransactionRollback(t *testing.T) {
	s := openTestStore(t)
	seedFile(t, s, "demo", "a.java")

	sentinel := errors.New("boom")
	err := s.WithTransaction(func(tx *Store) error {
		if err := tx.DeleteProject("demo"); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	n, _ := s.CountNodes("demo")
	if n != 5 {
		t.Errorf("rollback lost rows: %d", n)
	}
}

func TestLargeBatchInsert(t *testing.T) {
	s := openTestStore(t)
	if err := s.UpsertProject("big", "/tmp/big"); err != nil {
		t.Fatal(err)
	}
	// Enough rows to span several insert chunks.
	rows := make([]NodeRow, 500)
	for i := range rows {
		rows[i] = NodeRow{Project: "big", File: "f.go", NodeID: int64(i), ParentID: int64(i) - 1, NativeType: "x", SemanticType: 0xF0}
	}
	if err := s.InsertNodeBatch(rows); err != nil {
		t.Fatalf("InsertNodeBatch: %v", err)
	}
	n, err := s.CountNodes("big")
	if err != nil || n != 500 {
		t.Errorf("count = %d, err %v", n, err)
	}
}
