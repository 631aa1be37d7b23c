package normalize

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/DeusData/semantic-ast-mcp/internal/lang"
	"github.com/DeusData/semantic-ast-mcp/internal/semtype"
)

func mustNormalize(t *testing.T, source string, l lang.Language) *NodeTable {
	t.Helper()
	table, err := Normalize([]byte(source), l)
	if err != nil {
		t.Fatalf("Normalize(%s): %v", l, err)
	}
	return table
}

func loadFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", path))
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return string(data)
}

func findDef(t *testing.T, table *NodeTable, code semtype.Code, name string) *Node {
	t.Helper()
	for i := range table.Nodes {
		n := &table.Nodes[i]
		if n.Type == code && n.Name == name {
			return n
		}
	}
	t.Fatalf("no %s node named %q", semtype.Name(code), name)
	return nil
}

func edgesFrom(table *NodeTable, source int32, kind lang.EdgeKind) []Edge {
	var out []Edge
	for _, e := range table.Edges {
		if e.Source == source && e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestNormalizeInvariants(t *testing.T) {
	sources := map[lang.Language]string{
		lang.Java:   "class A { void m() { int x = 1; } }",
		lang.Python: "class A:\n    def m(self):\n        return 1\n",
		lang.Ruby:   "class A\n  def m\n    1\n  end\nend\n",
		lang.Go:     "package p\n\nfunc m() int { return 1 }\n",
	}
	for l, src := range sources {
		t.Run(string(l), func(t *testing.T) {
			table := mustNormalize(t, src, l)
			if len(table.Nodes) == 0 {
				t.Fatal("empty node table")
			}
			root := table.Nodes[0]
			if root.ID != 0 || root.ParentID != RootParentID || root.Depth != 0 {
				t.Errorf("bad root row: %+v", root)
			}
			for i, n := range table.Nodes {
				if n.ID != int32(i) {
					t.Fatalf("node %d has ID %d, want contiguous pre-order", i, n.ID)
				}
				if n.ID > 0 {
					if n.ParentID < 0 || n.ParentID >= n.ID {
						t.Errorf("node %d: parent %d is not an earlier row", n.ID, n.ParentID)
					}
					p := table.Nodes[n.ParentID]
					if n.StartByte < p.StartByte || n.EndByte > p.EndByte {
						t.Errorf("node %d span [%d,%d) escapes parent [%d,%d)", n.ID, n.StartByte, n.EndByte, p.StartByte, p.EndByte)
					}
					if n.Depth != p.Depth+1 {
						t.Errorf("node %d depth %d, parent depth %d", n.ID, n.Depth, p.Depth)
					}
				}
				last := n.ID + int32(n.DescendantCount)
				if last >= int32(len(table.Nodes)) {
					t.Errorf("node %d descendant count %d overruns table", n.ID, n.DescendantCount)
				}
			}
			// Every non-root row must fall inside its ancestor's ID range.
			for _, n := range table.Nodes[1:] {
				p := table.Nodes[n.ParentID]
				if n.ID > p.ID+int32(p.DescendantCount) {
					t.Errorf("node %d outside parent %d subtree range", n.ID, p.ID)
				}
			}
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	src := loadFixture(t, filepath.Join("java", "Inheritance.java"))
	a := mustNormalize(t, src, lang.Java)
	b := mustNormalize(t, src, lang.Java)
	if !reflect.DeepEqual(a, b) {
		t.Error("two normalizations of identical input differ")
	}
}

func TestCrossLanguageClass(t *testing.T) {
	tests := []struct {
		lang   lang.Language
		source string
	}{
		{lang.Java, "class Widget { }"},
		{lang.Dart, "class Widget { }"},
		{lang.Ruby, "class Widget\nend\n"},
		{lang.TypeScript, "class Widget { }"},
		{lang.JavaScript, "class Widget { }"},
		{lang.Python, "class Widget:\n    pass\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			table := mustNormalize(t, tt.source, tt.lang)
			var classes []Node
			for _, n := range table.Nodes {
				if n.Type == semtype.DefinitionClass {
					classes = append(classes, n)
				}
			}
			if len(classes) != 1 {
				t.Fatalf("expected exactly 1 DEFINITION_CLASS, got %d", len(classes))
			}
			if classes[0].Name != "Widget" {
				t.Errorf("class name = %q, want Widget", classes[0].Name)
			}
		})
	}
}

func TestJavaInheritanceEdges(t *testing.T) {
	src := loadFixture(t, filepath.Join("java", "Inheritance.java"))
	table := mustNormalize(t, src, lang.Java)

	service := findDef(t, table, semtype.DefinitionClass, "ServiceAnimal")
	ext := edgesFrom(table, service.ID, lang.EdgeExtends)
	if len(ext) != 1 {
		t.Fatalf("ServiceAnimal: expected 1 EXTENDS edge, got %d", len(ext))
	}
	target := table.Nodes[ext[0].Target]
	if target.Name != "Dog" {
		t.Errorf("EXTENDS target = %q, want Dog", target.Name)
	}
	if !semtype.IsReference(target.Type) {
		t.Errorf("EXTENDS target type %s is not a reference", semtype.Name(target.Type))
	}

	impl := edgesFrom(table, service.ID, lang.EdgeImplements)
	if len(impl) != 2 {
		t.Fatalf("ServiceAnimal: expected 2 IMPLEMENTS edges, got %d", len(impl))
	}
	got := map[string]bool{}
	for _, e := range impl {
		got[table.Nodes[e.Target].Name] = true
	}
	if !got["Runnable"] || !got["Serializable"] {
		t.Errorf("IMPLEMENTS targets = %v, want Runnable and Serializable", got)
	}

	breed := findDef(t, table, semtype.DefinitionEnum, "DogBreed")
	if n := len(edgesFrom(table, breed.ID, lang.EdgeImplements)); n != 1 {
		t.Errorf("DogBreed: expected 1 IMPLEMENTS edge, got %d", n)
	}

	athlete := findDef(t, table, semtype.DefinitionInterface, "Athlete")
	if n := len(edgesFrom(table, athlete.ID, lang.EdgeExtends)); n != 2 {
		t.Errorf("Athlete: expected 2 EXTENDS edges, got %d", n)
	}
}

func TestJavaModifierFlags(t *testing.T) {
	src := loadFixture(t, filepath.Join("java", "Inheritance.java"))
	table := mustNormalize(t, src, lang.Java)

	animal := findDef(t, table, semtype.DefinitionClass, "Animal")
	if !animal.Flags.Has(lang.FlagAbstract) {
		t.Error("abstract class Animal missing IS_ABSTRACT")
	}

	var speaks []Node
	for _, n := range table.Nodes {
		if n.Type == semtype.DefinitionMethod && n.Name == "speak" {
			speaks = append(speaks, n)
		}
	}
	if len(speaks) != 3 {
		t.Fatalf("expected 3 speak methods, got %d", len(speaks))
	}
	var overridden int
	for _, m := range speaks {
		if !m.Flags.Has(lang.FlagPublic) {
			t.Errorf("speak at node %d missing IS_PUBLIC", m.ID)
		}
		if m.Flags.Has(lang.FlagOverride) {
			overridden++
		}
	}
	if overridden != 2 {
		t.Errorf("expected 2 @Override speak methods, got %d", overridden)
	}
}

func TestRubyVisibilityFold(t *testing.T) {
	src := loadFixture(t, filepath.Join("ruby", "visibility.rb"))
	table := mustNormalize(t, src, lang.Ruby)

	want := map[string]lang.Flag{
		"balance":     lang.FlagPublic,
		"ledger":      lang.FlagPrivate,
		"audit_trail": lang.FlagPrivate,
		"reconcile":   lang.FlagProtected,
	}
	for name, flag := range want {
		m := findDef(t, table, semtype.DefinitionMethod, name)
		if m.Flags&lang.FlagVisibility != flag {
			t.Errorf("%s: visibility flags %v, want %v", name, (m.Flags & lang.FlagVisibility).Names(), flag.Names())
		}
	}
}

func TestRubyMixinEdges(t *testing.T) {
	src := "module Logging\nend\n\nclass Account\n  include Logging\n  extend Comparable\n\n  def save\n    persist Record\n  end\nend\n"
	table := mustNormalize(t, src, lang.Ruby)

	account := findDef(t, table, semtype.DefinitionClass, "Account")
	mixins := edgesFrom(table, account.ID, lang.EdgeMixesIn)
	if len(mixins) != 2 {
		t.Fatalf("Account: expected 2 MIXES_IN edges, got %d", len(mixins))
	}
	got := map[string]bool{}
	for _, e := range mixins {
		got[table.Nodes[e.Target].Name] = true
	}
	if !got["Logging"] || !got["Comparable"] {
		t.Errorf("MIXES_IN targets = %v, want Logging and Comparable", got)
	}

	// An ordinary call with a constant argument is not a mixin.
	for _, e := range table.Edges {
		if table.Nodes[e.Target].Name == "Record" {
			t.Errorf("call argument Record produced a %s edge", e.Kind)
		}
	}
}

func TestDartMixinAndEdges(t *testing.T) {
	src := loadFixture(t, filepath.Join("dart", "shapes.dart"))
	table := mustNormalize(t, src, lang.Dart)

	logging := findDef(t, table, semtype.DefinitionMixin, "Logging")
	if logging.Type == semtype.DefinitionClass {
		t.Error("mixin classified as class")
	}

	circle := findDef(t, table, semtype.DefinitionClass, "Circle")
	checks := []struct {
		kind   lang.EdgeKind
		target string
	}{
		{lang.EdgeExtends, "Shape"},
		{lang.EdgeMixesIn, "Logging"},
		{lang.EdgeImplements, "Comparable"},
	}
	for _, c := range checks {
		edges := edgesFrom(table, circle.ID, c.kind)
		if len(edges) != 1 {
			t.Errorf("Circle: expected 1 %s edge, got %d", c.kind, len(edges))
			continue
		}
		if got := table.Nodes[edges[0].Target].Name; got != c.target {
			t.Errorf("Circle %s target = %q, want %q", c.kind, got, c.target)
		}
	}
}

func TestDartAsyncFlag(t *testing.T) {
	src := loadFixture(t, filepath.Join("dart", "shapes.dart"))
	table := mustNormalize(t, src, lang.Dart)

	refresh := findDef(t, table, semtype.DefinitionMethod, "refresh")
	if !refresh.Flags.Has(lang.FlagAsync) {
		t.Errorf("async method refresh: flags %v, want IS_ASYNC", refresh.Flags.Names())
	}

	area := findDef(t, table, semtype.DefinitionMethod, "area")
	if area.Flags.Has(lang.FlagAsync) {
		t.Errorf("synchronous method area carries IS_ASYNC: %v", area.Flags.Names())
	}

	// The marker modifies the method, never the body rows around it.
	for _, n := range table.Nodes {
		if semtype.KindOf(n.Type) == semtype.KindOrganization && n.Flags.Has(lang.FlagAsync) {
			t.Errorf("organization row %d (%s) carries IS_ASYNC", n.ID, n.NativeType)
		}
	}
}

func TestUnderscorePrivacy(t *testing.T) {
	src := "class Store:\n    def get(self):\n        pass\n\n    def _evict(self):\n        pass\n\n    def __init__(self):\n        pass\n"
	table := mustNormalize(t, src, lang.Python)

	get := findDef(t, table, semtype.DefinitionFunction, "get")
	if !get.Flags.Has(lang.FlagPublic) {
		t.Error("get should derive IS_PUBLIC")
	}
	evict := findDef(t, table, semtype.DefinitionFunction, "_evict")
	if !evict.Flags.Has(lang.FlagPrivate) {
		t.Error("_evict should derive IS_PRIVATE")
	}
	init := findDef(t, table, semtype.DefinitionFunction, "__init__")
	if init.Flags&lang.FlagVisibility != 0 {
		t.Errorf("__init__ should stay unflagged, got %v", init.Flags.Names())
	}
}

func TestPythonDecoratorFlags(t *testing.T) {
	src := "class Util:\n    @staticmethod\n    def stamp():\n        pass\n"
	table := mustNormalize(t, src, lang.Python)
	stamp := findDef(t, table, semtype.DefinitionFunction, "stamp")
	if !stamp.Flags.Has(lang.FlagStatic) {
		t.Errorf("@staticmethod should set IS_STATIC, got %v", stamp.Flags.Names())
	}
}

func TestGoExportConvention(t *testing.T) {
	src := "package p\n\nfunc Public() {}\n\nfunc hidden() {}\n"
	table := mustNormalize(t, src, lang.Go)

	pub := findDef(t, table, semtype.DefinitionFunction, "Public")
	if !pub.Flags.Has(lang.FlagExported) || !pub.Flags.Has(lang.FlagPublic) {
		t.Errorf("Public: flags %v, want exported+public", pub.Flags.Names())
	}
	hid := findDef(t, table, semtype.DefinitionFunction, "hidden")
	if !hid.Flags.Has(lang.FlagPrivate) {
		t.Errorf("hidden: flags %v, want private", hid.Flags.Names())
	}
}

func TestGoStructInterfaceSplit(t *testing.T) {
	src := "package p\n\ntype Box struct{}\n\ntype Opener interface{}\n\ntype ID = int64\n"
	table := mustNormalize(t, src, lang.Go)
	findDef(t, table, semtype.DefinitionClass, "Box")
	findDef(t, table, semtype.DefinitionInterface, "Opener")
}

func TestKeywordAndPunctuationTokens(t *testing.T) {
	table := mustNormalize(t, "class A { }", lang.Java)

	var sawKeyword, sawPunct bool
	for _, n := range table.Nodes {
		switch n.NativeType {
		case "class":
			if n.Type != semtype.NameKeyword || !n.Flags.Has(lang.FlagKeyword) {
				t.Errorf("class token: type %s flags %v", semtype.Name(n.Type), n.Flags.Names())
			}
			sawKeyword = true
		case "{":
			if n.Type != semtype.ParserPunctuation {
				t.Errorf("brace token: type %s", semtype.Name(n.Type))
			}
			sawPunct = true
		}
	}
	if !sawKeyword || !sawPunct {
		t.Error("expected both keyword and punctuation tokens in output")
	}
}

func TestMalformedSourceDegrades(t *testing.T) {
	table := mustNormalize(t, "class { def broken(((\nend", lang.Ruby)
	if len(table.Nodes) == 0 {
		t.Fatal("malformed source produced no rows")
	}
	var unknown int
	for _, n := range table.Nodes {
		if n.Type == semtype.Unknown {
			unknown++
		}
	}
	if unknown == 0 {
		t.Error("expected UNKNOWN rows for error nodes")
	}
}

func TestUnsupportedLanguage(t *testing.T) {
	if _, err := Normalize([]byte("x"), lang.Language("cobol")); err == nil {
		t.Error("expected error for unsupported language")
	}
}
