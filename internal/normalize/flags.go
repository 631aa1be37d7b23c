package normalize

import (
	"strings"

	"github.com/DeusData/semantic-ast-mcp/internal/lang"
	"github.com/DeusData/semantic-ast-mcp/internal/semtype"
)

var visibilityKeywords = map[string]lang.Flag{
	"public":    lang.FlagPublic,
	"private":   lang.FlagPrivate,
	"protected": lang.FlagProtected,
}

// deriveFlags runs the sibling-order and naming rules that need the
// finished table: Ruby-style visibility folding, Dart-style async
// bodies, and name conventions. Explicit modifiers always win; derived
// visibility only fills rows whose visibility bits are still empty.
func deriveFlags(t *NodeTable, spec *lang.AdapterSpec) {
	if spec.Fold != nil {
		foldVisibility(t, spec)
	}
	if spec.Async != nil {
		deriveAsyncSibling(t, spec)
	}
	switch spec.Convention {
	case lang.ConventionUnderscorePrivate:
		applyUnderscorePrivate(t)
	case lang.ConventionUpperExported:
		applyUpperExported(t)
	}
}

// foldVisibility applies the stateful keyword rule: a bare visibility
// keyword in a fold body changes every later definition sibling until
// the next keyword. Rows are in pre-order, so direct children of one
// body appear in increasing ID order and a single scan suffices.
func foldVisibility(t *NodeTable, spec *lang.AdapterSpec) {
	bodies := map[int32]bool{}
	state := map[int32]lang.Flag{}
	bodyKinds := map[string]bool{}
	for _, k := range spec.Fold.BodyKinds {
		bodyKinds[k] = true
	}

	for i := range t.Nodes {
		n := &t.Nodes[i]
		if bodyKinds[n.NativeType] {
			bodies[n.ID] = true
			continue
		}
		if !bodies[n.ParentID] {
			continue
		}
		if n.NativeType == spec.Fold.KeywordKind {
			if f, ok := visibilityKeywords[n.Name]; ok {
				state[n.ParentID] = f
				continue
			}
		}
		if !semtype.IsDefinition(n.Type) || n.Flags&lang.FlagVisibility != 0 {
			continue
		}
		f, ok := state[n.ParentID]
		if !ok {
			f = spec.Fold.Default
		}
		n.Flags |= f
	}
}

// deriveAsyncSibling attributes async marker tokens to the definition
// they modify. The marker is a direct child of a body node that is a
// sibling of the signature, so the flag belongs to the nearest
// preceding callable definition under the same parent, never to the
// body row itself.
func deriveAsyncSibling(t *NodeTable, spec *lang.AdapterSpec) {
	markers := map[string]bool{}
	for _, m := range spec.Async.Markers {
		markers[m] = true
	}

	for i := range t.Nodes {
		n := &t.Nodes[i]
		if !markers[n.NativeType] || n.ParentID < 0 {
			continue
		}
		body := &t.Nodes[n.ParentID]
		if body.NativeType != spec.Async.BodyKind {
			continue
		}
		// Rows are in pre-order: the signature sibling precedes the
		// body, and no sibling can precede their shared parent.
		for id := body.ID - 1; id > body.ParentID; id-- {
			sib := &t.Nodes[id]
			if sib.ParentID != body.ParentID {
				continue
			}
			if isCallableDefinition(sib.Type) {
				sib.Flags |= lang.FlagAsync
				break
			}
		}
	}
}

// isCallableDefinition reports whether the code is a definition that
// can carry a body: function, method, constructor, or accessor.
func isCallableDefinition(c semtype.Code) bool {
	return c >= semtype.DefinitionFunction && c <= semtype.DefinitionAccessor
}

// applyUnderscorePrivate marks definitions whose name starts with a
// single underscore private, everything else public. Dunder names keep
// their language meaning and are left alone.
func applyUnderscorePrivate(t *NodeTable) {
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if !semtype.IsDefinition(n.Type) || n.Name == "" || n.Flags&lang.FlagVisibility != 0 {
			continue
		}
		if strings.HasPrefix(n.Name, "__") && strings.HasSuffix(n.Name, "__") {
			continue
		}
		if strings.HasPrefix(n.Name, "_") {
			n.Flags |= lang.FlagPrivate
		} else {
			n.Flags |= lang.FlagPublic
		}
	}
}

// applyUpperExported marks definitions with an upper-case initial
// exported and public, the rest private.
func applyUpperExported(t *NodeTable) {
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if !semtype.IsDefinition(n.Type) || n.Name == "" || n.Flags&lang.FlagVisibility != 0 {
			continue
		}
		r := rune(n.Name[0])
		if r >= 'A' && r <= 'Z' {
			n.Flags |= lang.FlagPublic | lang.FlagExported
		} else {
			n.Flags |= lang.FlagPrivate
		}
	}
}
