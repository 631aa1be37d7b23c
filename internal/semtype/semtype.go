// Package semtype defines the 8-bit cross-language semantic type space.
//
// Byte layout: [ss kk tt ll]
//
//	ss = super kind (bits 7-6): DATA_STRUCTURE=00, COMPUTATION=01,
//	     CONTROL_EFFECTS=10, META_EXTERNAL=11
//	kk = kind (bits 5-4): 4 kinds within each super kind
//	tt = super type (bits 3-2): 4 variants within each kind
//	ll = subtype (bits 1-0): fine-grained variant, assigned only within
//	     the DEFINITION kind (0x70-0x7F), zero elsewhere
//
// The numeric values are a wire contract consumed by downstream queries:
// codes within one kind are contiguous, so "all definitions" is the range
// 0x70-0x7F and never a list of comparisons. Widening beyond 8 bits or
// reordering existing codes is a compatibility break.
package semtype

// Code is an 8-bit semantic type.
type Code uint8

// Super kinds (bits 7-6).
const (
	SuperDataStructure  Code = 0x00
	SuperComputation    Code = 0x40
	SuperControlEffects Code = 0x80
	SuperMetaExternal   Code = 0xC0
)

// Kinds (bits 7-4).
const (
	KindLiteral        Code = 0x00
	KindName           Code = 0x10
	KindPattern        Code = 0x20
	KindType           Code = 0x30
	KindOperator       Code = 0x40
	KindComputation    Code = 0x50
	KindTransform      Code = 0x60
	KindDefinition     Code = 0x70
	KindExecution      Code = 0x80
	KindFlowControl    Code = 0x90
	KindErrorHandling  Code = 0xA0
	KindOrganization   Code = 0xB0
	KindMetadata       Code = 0xC0
	KindExternal       Code = 0xD0
	KindParserSpecific Code = 0xE0
	KindReserved       Code = 0xF0
)

// LITERAL super types.
const (
	LiteralNumber     Code = KindLiteral | 0x00
	LiteralString     Code = KindLiteral | 0x04
	LiteralAtomic     Code = KindLiteral | 0x08
	LiteralStructured Code = KindLiteral | 0x0C
)

// NAME super types.
const (
	NameKeyword    Code = KindName | 0x00
	NameIdentifier Code = KindName | 0x04
	NameQualified  Code = KindName | 0x08
	NameScoped     Code = KindName | 0x0C
)

// PATTERN super types.
const (
	PatternDestructure Code = KindPattern | 0x00
	PatternMatch       Code = KindPattern | 0x04
	PatternTemplate    Code = KindPattern | 0x08
	PatternGuard       Code = KindPattern | 0x0C
)

// TYPE super types.
const (
	TypePrimitive Code = KindType | 0x00
	TypeComposite Code = KindType | 0x04
	TypeReference Code = KindType | 0x08
	TypeGeneric   Code = KindType | 0x0C
)

// OPERATOR super types.
const (
	OperatorArithmetic Code = KindOperator | 0x00
	OperatorLogical    Code = KindOperator | 0x04
	OperatorComparison Code = KindOperator | 0x08
	OperatorAssignment Code = KindOperator | 0x0C
)

// COMPUTATION super types.
const (
	ComputationCall       Code = KindComputation | 0x00
	ComputationAccess     Code = KindComputation | 0x04
	ComputationExpression Code = KindComputation | 0x08
	ComputationLambda     Code = KindComputation | 0x0C
)

// TRANSFORM super types.
const (
	TransformQuery       Code = KindTransform | 0x00
	TransformIteration   Code = KindTransform | 0x04
	TransformProjection  Code = KindTransform | 0x08
	TransformAggregation Code = KindTransform | 0x0C
)

// DEFINITION codes. The ll bits are assigned here, making every
// definition subcategory a distinct code in the contiguous 0x70-0x7F
// range. Mixins keep their own code: folding them into DEFINITION_CLASS
// would make "all classes" queries wrong, since mixins are applied via
// `with` and never instantiated.
const (
	DefinitionFunction    Code = KindDefinition | 0x00
	DefinitionMethod      Code = KindDefinition | 0x01
	DefinitionConstructor Code = KindDefinition | 0x02
	DefinitionAccessor    Code = KindDefinition | 0x03
	DefinitionVariable    Code = KindDefinition | 0x04
	DefinitionConstant    Code = KindDefinition | 0x05
	DefinitionField       Code = KindDefinition | 0x06
	DefinitionEnumMember  Code = KindDefinition | 0x07
	DefinitionClass       Code = KindDefinition | 0x08
	DefinitionInterface   Code = KindDefinition | 0x09
	DefinitionEnum        Code = KindDefinition | 0x0A
	DefinitionMixin       Code = KindDefinition | 0x0B
	DefinitionModule      Code = KindDefinition | 0x0C
	DefinitionTypeAlias   Code = KindDefinition | 0x0D
	DefinitionPackage     Code = KindDefinition | 0x0E
	DefinitionParameter   Code = KindDefinition | 0x0F
)

// EXECUTION super types.
const (
	ExecutionStatement   Code = KindExecution | 0x00
	ExecutionDeclaration Code = KindExecution | 0x04
	ExecutionInvocation  Code = KindExecution | 0x08
	ExecutionMutation    Code = KindExecution | 0x0C
)

// FLOW_CONTROL super types.
const (
	FlowConditional Code = KindFlowControl | 0x00
	FlowLoop        Code = KindFlowControl | 0x04
	FlowJump        Code = KindFlowControl | 0x08
	FlowSync        Code = KindFlowControl | 0x0C
)

// ERROR_HANDLING super types.
const (
	ErrorTry     Code = KindErrorHandling | 0x00
	ErrorCatch   Code = KindErrorHandling | 0x04
	ErrorThrow   Code = KindErrorHandling | 0x08
	ErrorFinally Code = KindErrorHandling | 0x0C
)

// ORGANIZATION super types.
const (
	OrganizationBlock     Code = KindOrganization | 0x00
	OrganizationList      Code = KindOrganization | 0x04
	OrganizationSection   Code = KindOrganization | 0x08
	OrganizationContainer Code = KindOrganization | 0x0C
)

// METADATA super types.
const (
	MetadataComment    Code = KindMetadata | 0x00
	MetadataAnnotation Code = KindMetadata | 0x04
	MetadataDirective  Code = KindMetadata | 0x08
	MetadataDebug      Code = KindMetadata | 0x0C
)

// EXTERNAL super types.
const (
	ExternalImport  Code = KindExternal | 0x00
	ExternalExport  Code = KindExternal | 0x04
	ExternalForeign Code = KindExternal | 0x08
	ExternalEmbed   Code = KindExternal | 0x0C
)

// PARSER_SPECIFIC super types.
const (
	ParserPunctuation Code = KindParserSpecific | 0x00
	ParserDelimiter   Code = KindParserSpecific | 0x04
	ParserSyntax      Code = KindParserSpecific | 0x08
	ParserConstruct   Code = KindParserSpecific | 0x0C
)

// Unknown is the total-mapping fallback: every native kind no adapter
// recognizes resolves here, never to an error.
const Unknown Code = KindReserved | 0x00

// KindOf returns the kind bits of a code.
func KindOf(c Code) Code { return c & 0xF0 }

// SuperKindOf returns the super-kind bits of a code.
func SuperKindOf(c Code) Code { return c & 0xC0 }

// SuperTypeOf returns the code with the ll bits cleared.
func SuperTypeOf(c Code) Code { return c & 0xFC }

// IsDefinition reports whether the code introduces a named entity.
func IsDefinition(c Code) bool { return KindOf(c) == KindDefinition }

// IsCall reports whether the code is a call expression.
func IsCall(c Code) bool { return SuperTypeOf(c) == ComputationCall }

// IsControlFlow reports whether the code is in the FLOW_CONTROL kind.
func IsControlFlow(c Code) bool { return KindOf(c) == KindFlowControl }

// IsLiteral reports whether the code is in the LITERAL kind.
func IsLiteral(c Code) bool { return KindOf(c) == KindLiteral }

// IsComment reports whether the code is comment/documentation trivia.
func IsComment(c Code) bool { return SuperTypeOf(c) == MetadataComment }

// IsReference reports whether the code is a use of a name or type,
// as opposed to its definition. Keywords are not references.
func IsReference(c Code) bool {
	k := KindOf(c)
	return (k == KindName && SuperTypeOf(c) != NameKeyword) || k == KindType
}

// IsValid reports whether the code has a registered name.
func IsValid(c Code) bool { return names[c] != "" }

// Name returns the registered name of a code. Codes carrying unassigned
// ll bits fall back to their super-type name; unregistered codes return
// the empty string.
func Name(c Code) string {
	if n := names[c]; n != "" {
		return n
	}
	return names[SuperTypeOf(c)]
}

// KindNameOf returns the name of the code's kind.
func KindNameOf(c Code) string { return kindNames[c>>4] }

// SuperKindNameOf returns the name of the code's super kind.
func SuperKindNameOf(c Code) string { return superKindNames[c>>6] }

// Lookup returns the code registered under a name, or (Unknown, false).
func Lookup(name string) (Code, bool) {
	c, ok := byName[name]
	if !ok {
		return Unknown, false
	}
	return c, true
}

// Entry is one row of the taxonomy manifest.
type Entry struct {
	Code Code   `json:"code"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Manifest returns every registered code in ascending numeric order, so
// callers can render human-readable categories without hardcoding the
// encoding.
func Manifest() []Entry {
	out := make([]Entry, 0, len(byName))
	for c := 0; c < 256; c++ {
		code := Code(c)
		if names[code] == "" {
			continue
		}
		out = append(out, Entry{Code: code, Name: names[code], Kind: KindNameOf(code)})
	}
	return out
}
