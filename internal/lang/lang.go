// Package lang holds the per-language adapter tables that map native
// tree-sitter node kinds onto the cross-language semantic taxonomy.
//
// An adapter is data, not code: adding a language means authoring one
// AdapterSpec and registering it from an init function. The registry is
// populated at process start and never mutated afterward, so concurrent
// reads need no synchronization.
package lang

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/DeusData/semantic-ast-mcp/internal/semtype"
)

// Language represents a supported programming language.
type Language string

const (
	Java       Language = "java"
	Dart       Language = "dart"
	Ruby       Language = "ruby"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	JavaScript Language = "javascript"
	Python     Language = "python"
	Go         Language = "go"
)

// AllLanguages returns all supported languages.
func AllLanguages() []Language {
	return []Language{Java, Dart, Ruby, TypeScript, TSX, JavaScript, Python, Go}
}

// EdgeKind is a typed relation between a definition node and a
// referenced type node. Every inheritance shape (single extends,
// multiple implements, extends+with+implements) reduces to these three
// kinds instead of multiplying semantic types.
type EdgeKind string

const (
	EdgeExtends    EdgeKind = "EXTENDS"
	EdgeImplements EdgeKind = "IMPLEMENTS"
	EdgeMixesIn    EdgeKind = "MIXES_IN"
)

// Flag is a bitset of cross-language predicates, independent of the
// primary semantic type. Absence of a flag means "unknown/not
// applicable", never an error.
type Flag uint16

const (
	FlagKeyword Flag = 1 << iota
	FlagPublic
	FlagPrivate
	FlagProtected
	FlagStatic
	FlagAbstract
	FlagAsync
	FlagExported
	FlagOverride
)

// FlagVisibility masks the mutually exclusive visibility tri-state.
const FlagVisibility = FlagPublic | FlagPrivate | FlagProtected

var flagNames = []struct {
	f    Flag
	name string
}{
	{FlagKeyword, "IS_KEYWORD"},
	{FlagPublic, "IS_PUBLIC"},
	{FlagPrivate, "IS_PRIVATE"},
	{FlagProtected, "IS_PROTECTED"},
	{FlagStatic, "IS_STATIC"},
	{FlagAbstract, "IS_ABSTRACT"},
	{FlagAsync, "IS_ASYNC"},
	{FlagExported, "IS_EXPORTED"},
	{FlagOverride, "IS_OVERRIDE"},
}

// AllFlagNames returns every flag name in declaration order.
func AllFlagNames() []string {
	out := make([]string, len(flagNames))
	for i, fn := range flagNames {
		out[i] = fn.name
	}
	return out
}

// Has reports whether all bits of x are set.
func (f Flag) Has(x Flag) bool { return f&x == x }

// Names returns the set flag names in declaration order.
func (f Flag) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if f.Has(fn.f) {
			out = append(out, fn.name)
		}
	}
	return out
}

// NameRule declares how the display name of a node is extracted.
// At most one of Field/ChildKind/Self is used; when both Field and
// ChildKind are set, the rule descends into the first child of that
// kind and reads its field (Dart method_signature wrapping
// function_signature needs this).
type NameRule struct {
	Field     string // tree-sitter field name on the node
	ChildKind string // first direct child of this native kind
	Self      bool   // the node's own source text
}

// Mapping is one row of an adapter table: what a native kind means.
type Mapping struct {
	Type  semtype.Code
	Name  NameRule
	Flags Flag // static contribution, independent of context
	// ByChild overrides Type when a direct named child of the given
	// kind is present (Go type_spec is a class when its body is a
	// struct_type, an interface when it is an interface_type).
	ByChild map[string]semtype.Code
}

// HeritageRule maps a native clause kind to an edge kind. ParentKind,
// when set, restricts the rule to clauses appearing directly under that
// native kind (Python superclasses are a plain argument_list and must
// not match call arguments). MethodField/Methods restrict the rule to
// call-shaped clauses invoking one of the named methods: Ruby mixins
// are ordinary `include`/`prepend`/`extend` calls in a class body, not
// a dedicated grammar clause.
type HeritageRule struct {
	ClauseKind  string
	ParentKind  string
	Edge        EdgeKind
	MethodField string   // tree-sitter field naming the called method
	Methods     []string // method spellings the rule accepts
}

// NameConvention is a language-wide visibility/export rule derived from
// the declared identifier itself.
type NameConvention uint8

const (
	ConventionNone NameConvention = iota
	// ConventionUnderscorePrivate marks definitions whose name starts
	// with '_' private, all others public (Dart, Python).
	ConventionUnderscorePrivate
	// ConventionUpperExported marks definitions with an upper-case
	// initial exported+public, all others private (Go).
	ConventionUpperExported
)

// VisibilityFold declares the Ruby-style stateful sibling rule: a bare
// visibility keyword in a body changes the visibility of every later
// definition sibling until the next keyword or end of body. The fold
// itself runs in the flag deriver; the adapter only declares where it
// applies.
type VisibilityFold struct {
	BodyKinds   []string // native kinds whose direct children are folded
	KeywordKind string   // native kind of the bare keyword node
	Default     Flag     // visibility applied before any keyword is seen
}

// AsyncSibling declares where a language's async marker token lives
// when it is not a modifier of the definition node itself. In Dart the
// marker sits inside a function_body that is a *sibling* of the
// signature node, so attribution needs the finished table and runs in
// the flag deriver, not in Map.
type AsyncSibling struct {
	BodyKind string   // native kind of the body holding the marker
	Markers  []string // marker token kinds ("async", "async*")
}

// LocalContext carries the locally visible structural facts an adapter
// may consult: the parent's native kind, whether the node is named, and
// the modifier tokens / annotation names present on the node itself.
// Nothing here requires sibling lookahead or multi-level ancestry.
type LocalContext struct {
	ParentKind  string
	Named       bool
	Modifiers   []string
	Annotations []string
}

// AdapterSpec is the complete data-driven definition of one language.
type AdapterSpec struct {
	Language       Language
	FileExtensions []string

	// Mappings is the native kind table. It need not be exhaustive:
	// Map is total regardless (see below).
	Mappings map[string]Mapping

	// ModifierContainers lists native kinds whose child tokens count
	// as modifiers of the parent node (Java "modifiers").
	ModifierContainers []string
	// ModifierFlags maps a modifier token kind to the flag it sets.
	ModifierFlags map[string]Flag
	// AnnotationKinds lists native kinds that are annotations or
	// decorators; AnnotationFlags maps their simple names to flags
	// (Java @Override, Python @staticmethod).
	AnnotationKinds []string
	AnnotationFlags map[string]Flag

	// Heritage declares which clause kinds produce typed edges, and
	// TypeRefKinds which descendant kinds inside a clause are targets.
	Heritage     []HeritageRule
	TypeRefKinds []string

	Fold       *VisibilityFold
	Convention NameConvention
	Async      *AsyncSibling

	// ExportParents lists parent kinds that mark a definition
	// exported (TypeScript export_statement).
	ExportParents []string

	annotationKindSet map[string]bool
	modContainerSet   map[string]bool
	typeRefSet        map[string]bool
	exportParentSet   map[string]bool
}

// Map resolves a native kind plus local context to a semantic type and
// flag contribution. The mapping is total: it never fails. Anonymous
// tokens classify as keywords or punctuation by shape before the table
// is consulted, because grammars reuse spellings across named and
// anonymous nodes (the Ruby "class" keyword token has the same kind
// string as the named class node). Unmapped named kinds resolve to
// UNKNOWN and are logged once per distinct kind so gaps are
// discoverable without breaking a parse.
func (s *AdapterSpec) Map(nativeType string, ctx LocalContext) (semtype.Code, Flag) {
	if !ctx.Named {
		if isAlphabetic(nativeType) {
			return semtype.NameKeyword, FlagKeyword
		}
		return semtype.ParserPunctuation, 0
	}
	m, ok := s.Mappings[nativeType]
	if !ok {
		s.logUnmapped(nativeType)
		return semtype.Unknown, 0
	}

	code := m.Type
	flags := m.Flags
	for _, mod := range ctx.Modifiers {
		flags |= s.ModifierFlags[mod]
	}
	for _, ann := range ctx.Annotations {
		flags |= s.AnnotationFlags[ann]
	}
	if semtype.IsDefinition(code) && s.exportParentSet[ctx.ParentKind] {
		flags |= FlagExported
	}
	return code, flags
}

// ChildOverride resolves a ByChild refinement for a mapped kind, given
// the set of direct named child kinds. Returns the base type when no
// override applies.
func (s *AdapterSpec) ChildOverride(nativeType string, childKinds []string) (semtype.Code, bool) {
	m, ok := s.Mappings[nativeType]
	if !ok || m.ByChild == nil {
		return semtype.Unknown, false
	}
	for _, ck := range childKinds {
		if c, ok := m.ByChild[ck]; ok {
			return c, true
		}
	}
	return semtype.Unknown, false
}

// IsModifierContainer reports whether child tokens of this kind count
// as modifiers of its parent.
func (s *AdapterSpec) IsModifierContainer(kind string) bool { return s.modContainerSet[kind] }

// IsAnnotationKind reports whether the kind is an annotation/decorator.
func (s *AdapterSpec) IsAnnotationKind(kind string) bool { return s.annotationKindSet[kind] }

// IsTypeRef reports whether the kind can be a heritage edge target.
func (s *AdapterSpec) IsTypeRef(kind string) bool { return s.typeRefSet[kind] }

// HeritageFor returns the rule for a clause kind under the given
// parent, if any matches. Rules carrying a method restriction still
// need the caller to check the called method against rule.Methods.
func (s *AdapterSpec) HeritageFor(clauseKind, parentKind string) (HeritageRule, bool) {
	for _, h := range s.Heritage {
		if h.ClauseKind != clauseKind {
			continue
		}
		if h.ParentKind != "" && h.ParentKind != parentKind {
			continue
		}
		return h, true
	}
	return HeritageRule{}, false
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '_' {
			return false
		}
	}
	return true
}

// unmapped tracks distinct unrecognized named kinds per language, for
// the observability hook: log once, count always.
var (
	unmappedSeen  sync.Map // "lang/kind" -> struct{}
	unmappedCount atomic.Int64
)

func (s *AdapterSpec) logUnmapped(nativeType string) {
	unmappedCount.Add(1)
	key := string(s.Language) + "/" + nativeType
	if _, loaded := unmappedSeen.LoadOrStore(key, struct{}{}); !loaded {
		slog.Warn("adapter.unmapped_kind", "language", s.Language, "native_type", nativeType)
	}
}

// UnmappedKindCount returns the total number of unmapped-kind
// resolutions since process start.
func UnmappedKindCount() int64 { return unmappedCount.Load() }

// registry maps file extensions and languages to adapter specs.
// Populated from init functions only.
var (
	registry   = map[string]*AdapterSpec{}
	byLanguage = map[Language]*AdapterSpec{}
)

// Register adds an AdapterSpec to the global registry.
func Register(spec *AdapterSpec) {
	spec.annotationKindSet = toSet(spec.AnnotationKinds)
	spec.modContainerSet = toSet(spec.ModifierContainers)
	spec.typeRefSet = toSet(spec.TypeRefKinds)
	spec.exportParentSet = toSet(spec.ExportParents)
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
	byLanguage[spec.Language] = spec
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

// ForExtension returns the AdapterSpec for a file extension (e.g. ".rb").
func ForExtension(ext string) *AdapterSpec {
	return registry[ext]
}

// ForLanguage returns the AdapterSpec for a language.
func ForLanguage(lang Language) *AdapterSpec {
	return byLanguage[lang]
}

// LanguageForExtension returns the Language for a file extension.
func LanguageForExtension(ext string) (Language, bool) {
	spec := registry[ext]
	if spec == nil {
		return "", false
	}
	return spec.Language, true
}
