package lang

import "github.com/DeusData/semantic-ast-mcp/internal/semtype"

func init() {
	Register(&AdapterSpec{
		Language:       Dart,
		FileExtensions: []string{".dart"},
		Mappings: map[string]Mapping{
			"program": {Type: semtype.DefinitionModule},

			"class_definition":      {Type: semtype.DefinitionClass, Name: NameRule{Field: "name"}},
			"mixin_declaration":     {Type: semtype.DefinitionMixin, Name: NameRule{ChildKind: "identifier"}},
			"enum_declaration":      {Type: semtype.DefinitionEnum, Name: NameRule{Field: "name"}},
			"enum_constant":         {Type: semtype.DefinitionEnumMember, Name: NameRule{ChildKind: "identifier"}},
			"extension_declaration": {Type: semtype.DefinitionTypeAlias, Name: NameRule{Field: "name"}},
			"type_alias":            {Type: semtype.DefinitionTypeAlias, Name: NameRule{ChildKind: "type_identifier"}},

			// Dart wraps a signature node around the body; methods carry a
			// nested function_signature that owns the name field.
			"function_signature":            {Type: semtype.DefinitionFunction, Name: NameRule{Field: "name"}},
			"method_signature":              {Type: semtype.DefinitionMethod, Name: NameRule{ChildKind: "function_signature", Field: "name"}},
			"getter_signature":              {Type: semtype.DefinitionAccessor, Name: NameRule{Field: "name"}},
			"setter_signature":              {Type: semtype.DefinitionAccessor, Name: NameRule{Field: "name"}},
			"constructor_signature":         {Type: semtype.DefinitionConstructor, Name: NameRule{Field: "name"}},
			"factory_constructor_signature": {Type: semtype.DefinitionConstructor, Name: NameRule{ChildKind: "identifier"}},

			"initialized_variable_definition": {Type: semtype.DefinitionVariable, Name: NameRule{Field: "name"}},
			"initialized_identifier":          {Type: semtype.DefinitionVariable, Name: NameRule{ChildKind: "identifier"}},
			"declaration":                     {Type: semtype.ExecutionDeclaration},
			"local_variable_declaration":      {Type: semtype.ExecutionDeclaration},
			"formal_parameter":                {Type: semtype.DefinitionParameter, Name: NameRule{ChildKind: "identifier"}},
			"formal_parameter_list":           {Type: semtype.OrganizationList},

			"import_or_export":      {Type: semtype.ExternalImport},
			"library_name":          {Type: semtype.DefinitionPackage},
			"part_directive":        {Type: semtype.ExternalImport},
			"part_of_directive":     {Type: semtype.ExternalImport},

			"identifier":      {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
			"type_identifier": {Type: semtype.TypeReference, Name: NameRule{Self: true}},
			"scoped_identifier": {Type: semtype.NameQualified, Name: NameRule{Self: true}},
			"type_arguments":  {Type: semtype.OrganizationList},
			"this":            {Type: semtype.NameScoped, Name: NameRule{Self: true}},
			"super":           {Type: semtype.NameScoped, Name: NameRule{Self: true}},

			"selector":                      {Type: semtype.ComputationAccess},
			"unconditional_assignable_selector": {Type: semtype.ComputationAccess},
			"argument_part":                 {Type: semtype.ComputationCall},
			"arguments":                     {Type: semtype.OrganizationList},
			"function_expression":           {Type: semtype.ComputationLambda},
			"function_body":                 {Type: semtype.OrganizationBlock},
			"function_expression_body":      {Type: semtype.OrganizationBlock},
			"assignment_expression":         {Type: semtype.OperatorAssignment},
			"binary_expression":             {Type: semtype.ComputationExpression},
			"unary_expression":              {Type: semtype.ComputationExpression},
			"conditional_expression":        {Type: semtype.ComputationExpression},
			"await_expression":              {Type: semtype.FlowSync},
			"cascade_section":               {Type: semtype.ComputationAccess},

			"decimal_integer_literal":        {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"hex_integer_literal":            {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"decimal_floating_point_literal": {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"string_literal":                 {Type: semtype.LiteralString},
			"true":                           {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"false":                          {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"null_literal":                   {Type: semtype.LiteralAtomic},
			"list_literal":                   {Type: semtype.LiteralStructured},
			"set_or_map_literal":             {Type: semtype.LiteralStructured},
			"string_interpolation":           {Type: semtype.PatternTemplate},

			"if_statement":     {Type: semtype.FlowConditional},
			"switch_statement": {Type: semtype.FlowConditional},
			"switch_block":     {Type: semtype.OrganizationBlock},
			"for_statement":    {Type: semtype.FlowLoop},
			"while_statement":  {Type: semtype.FlowLoop},
			"do_statement":     {Type: semtype.FlowLoop},
			"return_statement": {Type: semtype.FlowJump},
			"break_statement":  {Type: semtype.FlowJump},
			"continue_statement": {Type: semtype.FlowJump},
			"yield_statement":  {Type: semtype.FlowSync},

			"try_statement":   {Type: semtype.ErrorTry},
			"catch_clause":    {Type: semtype.ErrorCatch},
			"on_part":         {Type: semtype.ErrorCatch},
			"finally_clause":  {Type: semtype.ErrorFinally},
			"throw_expression": {Type: semtype.ErrorThrow},

			"block":      {Type: semtype.OrganizationBlock},
			"class_body": {Type: semtype.OrganizationBlock},
			"enum_body":  {Type: semtype.OrganizationBlock},
			"extension_body": {Type: semtype.OrganizationBlock},

			"superclass":  {Type: semtype.ParserConstruct},
			"mixins":      {Type: semtype.ParserConstruct},
			"interfaces":  {Type: semtype.ParserConstruct},
			"annotation":  {Type: semtype.MetadataAnnotation, Name: NameRule{ChildKind: "identifier"}},
			"marker_annotation": {Type: semtype.MetadataAnnotation, Name: NameRule{ChildKind: "identifier"}},
			"comment":               {Type: semtype.MetadataComment},
			"documentation_comment": {Type: semtype.MetadataComment},
			"expression_statement":  {Type: semtype.ExecutionStatement},
		},
		ModifierFlags: map[string]Flag{
			"static":   FlagStatic,
			"abstract": FlagAbstract,
		},
		// The async marker is a token inside the function_body, which is
		// a sibling of the signature node, not a child of it.
		Async: &AsyncSibling{
			BodyKind: "function_body",
			Markers:  []string{"async", "async*"},
		},
		AnnotationKinds: []string{"annotation", "marker_annotation"},
		AnnotationFlags: map[string]Flag{
			"override": FlagOverride,
		},
		Heritage: []HeritageRule{
			{ClauseKind: "superclass", Edge: EdgeExtends},
			{ClauseKind: "mixins", Edge: EdgeMixesIn},
			{ClauseKind: "interfaces", Edge: EdgeImplements},
		},
		TypeRefKinds: []string{"type_identifier"},
		Convention:   ConventionUnderscorePrivate,
	})
}
