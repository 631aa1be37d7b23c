package semtype

import "fmt"

var (
	names          [256]string
	byName         = map[string]Code{}
	kindNames      [16]string
	superKindNames [4]string
)

// register assigns a name to a code. Collisions are a build-time
// failure: the table is populated once at init and never afterward,
// so a duplicate means two taxonomy entries claim the same code.
func register(c Code, name string) {
	if names[c] != "" {
		panic(fmt.Sprintf("semtype: code 0x%02X already registered as %s, cannot register %s", uint8(c), names[c], name))
	}
	if _, ok := byName[name]; ok {
		panic(fmt.Sprintf("semtype: name %s already registered", name))
	}
	names[c] = name
	byName[name] = c
}

func init() {
	superKindNames = [4]string{"DATA_STRUCTURE", "COMPUTATION", "CONTROL_EFFECTS", "META_EXTERNAL"}
	kindNames = [16]string{
		"LITERAL", "NAME", "PATTERN", "TYPE",
		"OPERATOR", "COMPUTATION", "TRANSFORM", "DEFINITION",
		"EXECUTION", "FLOW_CONTROL", "ERROR_HANDLING", "ORGANIZATION",
		"METADATA", "EXTERNAL", "PARSER_SPECIFIC", "RESERVED",
	}

	register(LiteralNumber, "LITERAL_NUMBER")
	register(LiteralString, "LITERAL_STRING")
	register(LiteralAtomic, "LITERAL_ATOMIC")
	register(LiteralStructured, "LITERAL_STRUCTURED")

	register(NameKeyword, "NAME_KEYWORD")
	register(NameIdentifier, "NAME_IDENTIFIER")
	register(NameQualified, "NAME_QUALIFIED")
	register(NameScoped, "NAME_SCOPED")

	register(PatternDestructure, "PATTERN_DESTRUCTURE")
	register(PatternMatch, "PATTERN_MATCH")
	register(PatternTemplate, "PATTERN_TEMPLATE")
	register(PatternGuard, "PATTERN_GUARD")

	register(TypePrimitive, "TYPE_PRIMITIVE")
	register(TypeComposite, "TYPE_COMPOSITE")
	register(TypeReference, "TYPE_REFERENCE")
	register(TypeGeneric, "TYPE_GENERIC")

	register(OperatorArithmetic, "OPERATOR_ARITHMETIC")
	register(OperatorLogical, "OPERATOR_LOGICAL")
	register(OperatorComparison, "OPERATOR_COMPARISON")
	register(OperatorAssignment, "OPERATOR_ASSIGNMENT")

	register(ComputationCall, "COMPUTATION_CALL")
	register(ComputationAccess, "COMPUTATION_ACCESS")
	register(ComputationExpression, "COMPUTATION_EXPRESSION")
	register(ComputationLambda, "COMPUTATION_LAMBDA")

	register(TransformQuery, "TRANSFORM_QUERY")
	register(TransformIteration, "TRANSFORM_ITERATION")
	register(TransformProjection, "TRANSFORM_PROJECTION")
	register(TransformAggregation, "TRANSFORM_AGGREGATION")

	register(DefinitionFunction, "DEFINITION_FUNCTION")
	register(DefinitionMethod, "DEFINITION_METHOD")
	register(DefinitionConstructor, "DEFINITION_CONSTRUCTOR")
	register(DefinitionAccessor, "DEFINITION_ACCESSOR")
	register(DefinitionVariable, "DEFINITION_VARIABLE")
	register(DefinitionConstant, "DEFINITION_CONSTANT")
	register(DefinitionField, "DEFINITION_FIELD")
	register(DefinitionEnumMember, "DEFINITION_ENUM_MEMBER")
	register(DefinitionClass, "DEFINITION_CLASS")
	register(DefinitionInterface, "DEFINITION_INTERFACE")
	register(DefinitionEnum, "DEFINITION_ENUM")
	register(DefinitionMixin, "DEFINITION_MIXIN")
	register(DefinitionModule, "DEFINITION_MODULE")
	register(DefinitionTypeAlias, "DEFINITION_TYPE_ALIAS")
	register(DefinitionPackage, "DEFINITION_PACKAGE")
	register(DefinitionParameter, "DEFINITION_PARAMETER")

	register(ExecutionStatement, "EXECUTION_STATEMENT")
	register(ExecutionDeclaration, "EXECUTION_DECLARATION")
	register(ExecutionInvocation, "EXECUTION_INVOCATION")
	register(ExecutionMutation, "EXECUTION_MUTATION")

	register(FlowConditional, "FLOW_CONDITIONAL")
	register(FlowLoop, "FLOW_LOOP")
	register(FlowJump, "FLOW_JUMP")
	register(FlowSync, "FLOW_SYNC")

	register(ErrorTry, "ERROR_TRY")
	register(ErrorCatch, "ERROR_CATCH")
	register(ErrorThrow, "ERROR_THROW")
	register(ErrorFinally, "ERROR_FINALLY")

	register(OrganizationBlock, "ORGANIZATION_BLOCK")
	register(OrganizationList, "ORGANIZATION_LIST")
	register(OrganizationSection, "ORGANIZATION_SECTION")
	register(OrganizationContainer, "ORGANIZATION_CONTAINER")

	register(MetadataComment, "METADATA_COMMENT")
	register(MetadataAnnotation, "METADATA_ANNOTATION")
	register(MetadataDirective, "METADATA_DIRECTIVE")
	register(MetadataDebug, "METADATA_DEBUG")

	register(ExternalImport, "EXTERNAL_IMPORT")
	register(ExternalExport, "EXTERNAL_EXPORT")
	register(ExternalForeign, "EXTERNAL_FOREIGN")
	register(ExternalEmbed, "EXTERNAL_EMBED")

	register(ParserPunctuation, "PARSER_PUNCTUATION")
	register(ParserDelimiter, "PARSER_DELIMITER")
	register(ParserSyntax, "PARSER_SYNTAX")
	register(ParserConstruct, "PARSER_CONSTRUCT")

	register(Unknown, "UNKNOWN")
}
