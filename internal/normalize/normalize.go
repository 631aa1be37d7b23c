// Package normalize flattens a native tree-sitter parse tree into the
// language-independent node table.
//
// One traversal produces everything: pre-order IDs, parent links, spans,
// structure counters, semantic types, extracted names, and heritage
// edges. The output is deterministic for identical input bytes; nothing
// here keeps state between calls.
package normalize

import (
	"fmt"
	"log/slog"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/semantic-ast-mcp/internal/lang"
	"github.com/DeusData/semantic-ast-mcp/internal/parser"
	"github.com/DeusData/semantic-ast-mcp/internal/semtype"
)

// RootParentID is the parent sentinel of the root row. Using -1 instead
// of NULL keeps the parent column non-nullable and joins total.
const RootParentID int32 = -1

// Node is one row of the flattened table. IDs are pre-order and
// contiguous from 0, so a subtree is exactly the ID range
// [ID, ID+DescendantCount].
type Node struct {
	ID              int32
	ParentID        int32
	NativeType      string
	Type            semtype.Code
	Name            string
	Flags           lang.Flag
	StartByte       uint32
	EndByte         uint32
	StartLine       uint32
	StartCol        uint32
	EndLine         uint32
	EndCol          uint32
	Depth           uint32
	SiblingIndex    uint32
	ChildCount      uint32
	DescendantCount uint32
}

// Edge is a typed relation from a definition node to the node naming
// what it extends, implements, or mixes in. The target is the reference
// inside the heritage clause, not the resolved definition; resolution
// is a downstream concern.
type Edge struct {
	Source int32
	Target int32
	Kind   lang.EdgeKind
}

// NodeTable is the result of normalizing one source file.
type NodeTable struct {
	Language lang.Language
	Nodes    []Node
	Edges    []Edge
}

// Normalize parses source and flattens the tree. Malformed input never
// fails: ERROR and MISSING nodes become UNKNOWN rows and their children
// are still visited. An error means the language is unsupported or the
// parser itself gave up.
func Normalize(source []byte, l lang.Language) (*NodeTable, error) {
	spec := lang.ForLanguage(l)
	if spec == nil {
		return nil, fmt.Errorf("no adapter for language %s", l)
	}
	tree, err := parser.Parse(l, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l, err)
	}
	defer tree.Close()

	w := &walker{source: source, spec: spec}
	w.visit(tree.RootNode(), RootParentID, 0, 0, "", nil, nil)

	t := &NodeTable{Language: l, Nodes: w.nodes, Edges: w.edges}
	deriveFlags(t, spec)
	slog.Debug("normalize.done", "language", l, "nodes", len(t.Nodes), "edges", len(t.Edges))
	return t, nil
}

// clauseFrame is an active heritage clause during traversal. The
// innermost frame wins, so a Dart mixins clause nested inside the
// superclass clause claims its own targets.
type clauseFrame struct {
	edge   lang.EdgeKind
	source int32
}

type walker struct {
	source []byte
	spec   *lang.AdapterSpec
	nodes  []Node
	edges  []Edge
}

// visit flattens one node and its subtree, returning the last ID
// assigned within the subtree.
func (w *walker) visit(n *tree_sitter.Node, parentID int32, depth, siblingIndex uint32, parentKind string, clause *clauseFrame, pendingAnnotations []string) int32 {
	id := int32(len(w.nodes))
	kind := n.Kind()

	var code semtype.Code
	var flags lang.Flag
	var name string

	switch {
	case n.IsError() || n.IsMissing():
		code = semtype.Unknown
	default:
		ctx := lang.LocalContext{
			ParentKind: parentKind,
			Named:      n.IsNamed(),
		}
		ctx.Modifiers, ctx.Annotations = w.collectLocal(n)
		ctx.Annotations = append(ctx.Annotations, pendingAnnotations...)
		code, flags = w.spec.Map(kind, ctx)

		if m, ok := w.spec.Mappings[kind]; ok {
			if m.ByChild != nil {
				if c, ok := w.spec.ChildOverride(kind, namedChildKinds(n)); ok {
					code = c
				}
			}
			name = w.extractName(n, m.Name)
		}
	}

	// A definition entering scope becomes the source of any heritage
	// clause found among its children.
	curDef := w.currentDef(parentID)
	if semtype.IsDefinition(code) {
		curDef = id
	}

	childClause := clause
	if rule, ok := w.spec.HeritageFor(kind, parentKind); ok && curDef >= 0 && w.methodMatches(n, rule) {
		childClause = &clauseFrame{edge: rule.Edge, source: curDef}
	} else if clause != nil && (kind == "type_arguments" || kind == "type_parameters") {
		// Generic arguments name type parameters, not supertypes.
		childClause = nil
	} else if clause != nil && w.spec.IsTypeRef(kind) {
		w.edges = append(w.edges, Edge{Source: clause.source, Target: id, Kind: clause.edge})
		// The outermost reference in a clause is the target; nested
		// type names inside it (generic arguments) are not.
		childClause = nil
	}

	start := n.StartPosition()
	end := n.EndPosition()
	w.nodes = append(w.nodes, Node{
		ID:           id,
		ParentID:     parentID,
		NativeType:   kind,
		Type:         code,
		Name:         name,
		Flags:        flags,
		StartByte:    uint32(n.StartByte()),
		EndByte:      uint32(n.EndByte()),
		StartLine:    uint32(start.Row),
		StartCol:     uint32(start.Column),
		EndLine:      uint32(end.Row),
		EndCol:       uint32(end.Column),
		Depth:        depth,
		SiblingIndex: siblingIndex,
		ChildCount:   uint32(n.ChildCount()),
	})

	// Decorator siblings annotate the next definition sibling (Python
	// decorated_definition, TypeScript decorators).
	var siblingAnnotations []string
	last := id
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		last = w.visit(child, id, depth+1, uint32(i), kind, childClause, siblingAnnotations)
		ck := child.Kind()
		if w.spec.IsAnnotationKind(ck) {
			if an := w.annotationName(child); an != "" {
				siblingAnnotations = append(siblingAnnotations, an)
			}
		} else if child.IsNamed() {
			siblingAnnotations = nil
		}
	}
	w.nodes[id].DescendantCount = uint32(last - id)
	return last
}

// methodMatches applies a heritage rule's method restriction: rules for
// call-shaped clauses only fire when the called method is one of the
// declared spellings. Rules without a restriction always match.
func (w *walker) methodMatches(n *tree_sitter.Node, rule lang.HeritageRule) bool {
	if rule.MethodField == "" {
		return true
	}
	m := n.ChildByFieldName(rule.MethodField)
	if m == nil {
		return false
	}
	called := parser.NodeText(m, w.source)
	for _, want := range rule.Methods {
		if called == want {
			return true
		}
	}
	return false
}

// currentDef walks the already-emitted parent chain to the nearest
// definition row. The chain is short (tree depth) and already in memory.
func (w *walker) currentDef(parentID int32) int32 {
	for p := parentID; p >= 0; p = w.nodes[p].ParentID {
		if semtype.IsDefinition(w.nodes[p].Type) {
			return p
		}
	}
	return -1
}

// collectLocal gathers modifier tokens and annotation names visible on
// the node itself: anonymous child tokens, children of modifier
// containers, and direct annotation children.
func (w *walker) collectLocal(n *tree_sitter.Node) (mods, anns []string) {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		ck := child.Kind()
		switch {
		case w.spec.IsModifierContainer(ck):
			for j := uint(0); j < child.ChildCount(); j++ {
				inner := child.Child(j)
				if inner == nil {
					continue
				}
				ik := inner.Kind()
				if w.spec.IsAnnotationKind(ik) {
					if an := w.annotationName(inner); an != "" {
						anns = append(anns, an)
					}
				} else if !inner.IsNamed() {
					mods = append(mods, ik)
				}
			}
		case w.spec.IsAnnotationKind(ck):
			if an := w.annotationName(child); an != "" {
				anns = append(anns, an)
			}
		case !child.IsNamed():
			mods = append(mods, ck)
		}
	}
	return mods, anns
}

// annotationName extracts the simple name of an annotation or decorator
// node, without the sigil.
func (w *walker) annotationName(n *tree_sitter.Node) string {
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		return trimSigil(parser.NodeText(nameNode, w.source))
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child != nil {
			return trimSigil(parser.NodeText(child, w.source))
		}
	}
	return trimSigil(parser.NodeText(n, w.source))
}

func trimSigil(s string) string {
	s = strings.TrimPrefix(s, "@")
	// Qualified decorators like functools.wraps flag by simple name.
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	// Drop call arguments of parameterized decorators.
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	return s
}

func (w *walker) extractName(n *tree_sitter.Node, rule lang.NameRule) string {
	target := n
	if rule.ChildKind != "" {
		target = firstChildOfKind(n, rule.ChildKind)
		if target == nil {
			return ""
		}
		if rule.Field == "" {
			return parser.NodeText(target, w.source)
		}
	}
	if rule.Field != "" {
		f := target.ChildByFieldName(rule.Field)
		if f == nil {
			return ""
		}
		return parser.NodeText(f, w.source)
	}
	if rule.Self {
		return parser.NodeText(n, w.source)
	}
	return ""
}

func firstChildOfKind(n *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

func namedChildKinds(n *tree_sitter.Node) []string {
	count := n.NamedChildCount()
	kinds := make([]string, 0, count)
	for i := uint(0); i < count; i++ {
		if child := n.NamedChild(i); child != nil {
			kinds = append(kinds, child.Kind())
		}
	}
	return kinds
}
