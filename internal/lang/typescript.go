package lang

import "github.com/DeusData/semantic-ast-mcp/internal/semtype"

// tsMappings returns the mapping table shared by the TypeScript and TSX
// adapters. TSX layers the JSX node kinds on top.
func tsMappings() map[string]Mapping {
	return map[string]Mapping{
		"program": {Type: semtype.DefinitionModule},

		"import_statement": {Type: semtype.ExternalImport},
		"export_statement": {Type: semtype.ExternalExport},

		"class_declaration":          {Type: semtype.DefinitionClass, Name: NameRule{Field: "name"}},
		"abstract_class_declaration": {Type: semtype.DefinitionClass, Name: NameRule{Field: "name"}, Flags: FlagAbstract},
		"interface_declaration":      {Type: semtype.DefinitionInterface, Name: NameRule{Field: "name"}},
		"enum_declaration":           {Type: semtype.DefinitionEnum, Name: NameRule{Field: "name"}},
		"enum_assignment":            {Type: semtype.DefinitionEnumMember, Name: NameRule{Field: "name"}},
		"type_alias_declaration":     {Type: semtype.DefinitionTypeAlias, Name: NameRule{Field: "name"}},
		"internal_module":            {Type: semtype.DefinitionModule, Name: NameRule{Field: "name"}},
		"module":                     {Type: semtype.DefinitionModule, Name: NameRule{Field: "name"}},

		"function_declaration":      {Type: semtype.DefinitionFunction, Name: NameRule{Field: "name"}},
		"generator_function_declaration": {Type: semtype.DefinitionFunction, Name: NameRule{Field: "name"}},
		"method_definition":         {Type: semtype.DefinitionMethod, Name: NameRule{Field: "name"}},
		"method_signature":          {Type: semtype.DefinitionMethod, Name: NameRule{Field: "name"}},
		"abstract_method_signature": {Type: semtype.DefinitionMethod, Name: NameRule{Field: "name"}, Flags: FlagAbstract},
		"public_field_definition":   {Type: semtype.DefinitionField, Name: NameRule{Field: "name"}},
		"property_signature":        {Type: semtype.DefinitionField, Name: NameRule{Field: "name"}},
		"variable_declarator":       {Type: semtype.DefinitionVariable, Name: NameRule{Field: "name"}},
		"lexical_declaration":       {Type: semtype.ExecutionDeclaration},
		"variable_declaration":      {Type: semtype.ExecutionDeclaration},
		"required_parameter":        {Type: semtype.DefinitionParameter},
		"optional_parameter":        {Type: semtype.DefinitionParameter},
		"formal_parameters":         {Type: semtype.OrganizationList},

		"identifier":                 {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
		"property_identifier":        {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
		"shorthand_property_identifier": {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
		"type_identifier":            {Type: semtype.TypeReference, Name: NameRule{Self: true}},
		"predefined_type":            {Type: semtype.TypePrimitive, Name: NameRule{Self: true}},
		"nested_identifier":          {Type: semtype.NameQualified, Name: NameRule{Self: true}},
		"nested_type_identifier":     {Type: semtype.TypeReference, Name: NameRule{Self: true}},
		"generic_type":               {Type: semtype.TypeGeneric},
		"union_type":                 {Type: semtype.TypeComposite},
		"intersection_type":          {Type: semtype.TypeComposite},
		"object_type":                {Type: semtype.TypeComposite},
		"array_type":                 {Type: semtype.TypeComposite},
		"type_annotation":            {Type: semtype.ParserConstruct},
		"type_arguments":             {Type: semtype.OrganizationList},
		"type_parameters":            {Type: semtype.OrganizationList},
		"this":                       {Type: semtype.NameScoped, Name: NameRule{Self: true}},
		"super":                      {Type: semtype.NameScoped, Name: NameRule{Self: true}},

		"call_expression":       {Type: semtype.ComputationCall, Name: NameRule{Field: "function"}},
		"new_expression":        {Type: semtype.ComputationCall, Name: NameRule{Field: "constructor"}},
		"member_expression":     {Type: semtype.ComputationAccess, Name: NameRule{Field: "property"}},
		"subscript_expression":  {Type: semtype.ComputationAccess},
		"arrow_function":        {Type: semtype.ComputationLambda},
		"function_expression":   {Type: semtype.ComputationLambda},
		"binary_expression":     {Type: semtype.ComputationExpression},
		"unary_expression":      {Type: semtype.ComputationExpression},
		"ternary_expression":    {Type: semtype.ComputationExpression},
		"as_expression":         {Type: semtype.ComputationExpression},
		"await_expression":      {Type: semtype.FlowSync},
		"assignment_expression": {Type: semtype.OperatorAssignment},
		"augmented_assignment_expression": {Type: semtype.OperatorAssignment},
		"update_expression":     {Type: semtype.OperatorArithmetic},

		"number":            {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
		"string":            {Type: semtype.LiteralString},
		"template_string":   {Type: semtype.PatternTemplate},
		"template_substitution": {Type: semtype.PatternTemplate},
		"regex":             {Type: semtype.PatternMatch},
		"true":              {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
		"false":             {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
		"null":              {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
		"undefined":         {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
		"array":             {Type: semtype.LiteralStructured},
		"object":            {Type: semtype.LiteralStructured},
		"pair":              {Type: semtype.OrganizationList},

		"if_statement":       {Type: semtype.FlowConditional},
		"switch_statement":   {Type: semtype.FlowConditional},
		"switch_case":        {Type: semtype.FlowConditional},
		"for_statement":      {Type: semtype.FlowLoop},
		"for_in_statement":   {Type: semtype.FlowLoop},
		"while_statement":    {Type: semtype.FlowLoop},
		"do_statement":       {Type: semtype.FlowLoop},
		"return_statement":   {Type: semtype.FlowJump},
		"break_statement":    {Type: semtype.FlowJump},
		"continue_statement": {Type: semtype.FlowJump},
		"yield_expression":   {Type: semtype.FlowSync},

		"try_statement":   {Type: semtype.ErrorTry},
		"catch_clause":    {Type: semtype.ErrorCatch},
		"finally_clause":  {Type: semtype.ErrorFinally},
		"throw_statement": {Type: semtype.ErrorThrow},

		"statement_block": {Type: semtype.OrganizationBlock},
		"class_body":      {Type: semtype.OrganizationBlock},
		"enum_body":       {Type: semtype.OrganizationBlock},
		"arguments":       {Type: semtype.OrganizationList},

		"class_heritage":       {Type: semtype.ParserConstruct},
		"extends_clause":       {Type: semtype.ParserConstruct},
		"extends_type_clause":  {Type: semtype.ParserConstruct},
		"implements_clause":    {Type: semtype.ParserConstruct},
		"decorator":            {Type: semtype.MetadataAnnotation, Name: NameRule{ChildKind: "identifier"}},
		"accessibility_modifier": {Type: semtype.ParserSyntax},
		"comment":              {Type: semtype.MetadataComment},
		"expression_statement": {Type: semtype.ExecutionStatement},
	}
}

func tsModifierFlags() map[string]Flag {
	return map[string]Flag{
		"public":    FlagPublic,
		"private":   FlagPrivate,
		"protected": FlagProtected,
		"static":    FlagStatic,
		"abstract":  FlagAbstract,
		"async":     FlagAsync,
		"override":  FlagOverride,
	}
}

func init() {
	Register(&AdapterSpec{
		Language:           TypeScript,
		FileExtensions:     []string{".ts", ".mts", ".cts"},
		Mappings:           tsMappings(),
		ModifierContainers: []string{"accessibility_modifier"},
		ModifierFlags:      tsModifierFlags(),
		AnnotationKinds:    []string{"decorator"},
		AnnotationFlags:    map[string]Flag{},
		Heritage: []HeritageRule{
			{ClauseKind: "extends_clause", Edge: EdgeExtends},
			{ClauseKind: "extends_type_clause", Edge: EdgeExtends},
			{ClauseKind: "implements_clause", Edge: EdgeImplements},
		},
		TypeRefKinds:  []string{"type_identifier", "nested_type_identifier", "generic_type", "identifier"},
		ExportParents: []string{"export_statement"},
	})
}
