package lang

import "github.com/DeusData/semantic-ast-mcp/internal/semtype"

func init() {
	Register(&AdapterSpec{
		Language:       Java,
		FileExtensions: []string{".java"},
		Mappings: map[string]Mapping{
			"program":             {Type: semtype.DefinitionModule},
			"package_declaration": {Type: semtype.DefinitionPackage, Name: NameRule{ChildKind: "scoped_identifier"}},
			"import_declaration":  {Type: semtype.ExternalImport, Name: NameRule{ChildKind: "scoped_identifier"}},

			"class_declaration":           {Type: semtype.DefinitionClass, Name: NameRule{Field: "name"}},
			"interface_declaration":       {Type: semtype.DefinitionInterface, Name: NameRule{Field: "name"}},
			"enum_declaration":            {Type: semtype.DefinitionEnum, Name: NameRule{Field: "name"}},
			"record_declaration":          {Type: semtype.DefinitionClass, Name: NameRule{Field: "name"}},
			"annotation_type_declaration": {Type: semtype.DefinitionInterface, Name: NameRule{Field: "name"}},
			"enum_constant":               {Type: semtype.DefinitionEnumMember, Name: NameRule{Field: "name"}},

			"method_declaration":         {Type: semtype.DefinitionMethod, Name: NameRule{Field: "name"}},
			"constructor_declaration":    {Type: semtype.DefinitionConstructor, Name: NameRule{Field: "name"}},
			"field_declaration":          {Type: semtype.DefinitionField},
			"variable_declarator":        {Type: semtype.DefinitionVariable, Name: NameRule{Field: "name"}},
			"formal_parameter":           {Type: semtype.DefinitionParameter, Name: NameRule{Field: "name"}},
			"local_variable_declaration": {Type: semtype.ExecutionDeclaration},
			"static_initializer":         {Type: semtype.OrganizationBlock},

			"identifier":             {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
			"type_identifier":        {Type: semtype.TypeReference, Name: NameRule{Self: true}},
			"scoped_type_identifier": {Type: semtype.TypeReference, Name: NameRule{Self: true}},
			"scoped_identifier":      {Type: semtype.NameQualified, Name: NameRule{Self: true}},
			"generic_type":           {Type: semtype.TypeGeneric},
			"this":                   {Type: semtype.NameScoped, Name: NameRule{Self: true}},
			"super":                  {Type: semtype.NameScoped, Name: NameRule{Self: true}},

			"method_invocation":          {Type: semtype.ComputationCall, Name: NameRule{Field: "name"}},
			"object_creation_expression": {Type: semtype.ComputationCall, Name: NameRule{ChildKind: "type_identifier"}},
			"field_access":               {Type: semtype.ComputationAccess, Name: NameRule{Field: "field"}},
			"array_access":               {Type: semtype.ComputationAccess},
			"lambda_expression":          {Type: semtype.ComputationLambda},
			"method_reference":           {Type: semtype.ComputationLambda},
			"binary_expression":          {Type: semtype.ComputationExpression},
			"unary_expression":           {Type: semtype.ComputationExpression},
			"update_expression":          {Type: semtype.OperatorArithmetic},
			"cast_expression":            {Type: semtype.ComputationExpression},
			"ternary_expression":         {Type: semtype.ComputationExpression},
			"instanceof_expression":      {Type: semtype.OperatorComparison},
			"assignment_expression":      {Type: semtype.OperatorAssignment},

			"decimal_integer_literal":        {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"hex_integer_literal":            {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"octal_integer_literal":          {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"binary_integer_literal":         {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"decimal_floating_point_literal": {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"string_literal":                 {Type: semtype.LiteralString},
			"character_literal":              {Type: semtype.LiteralString},
			"text_block":                     {Type: semtype.LiteralString},
			"true":                           {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"false":                          {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"null_literal":                   {Type: semtype.LiteralAtomic},
			"array_initializer":              {Type: semtype.LiteralStructured},

			"if_statement":           {Type: semtype.FlowConditional},
			"switch_expression":      {Type: semtype.FlowConditional},
			"for_statement":          {Type: semtype.FlowLoop},
			"enhanced_for_statement": {Type: semtype.FlowLoop},
			"while_statement":        {Type: semtype.FlowLoop},
			"do_statement":           {Type: semtype.FlowLoop},
			"return_statement":       {Type: semtype.FlowJump},
			"break_statement":        {Type: semtype.FlowJump},
			"continue_statement":     {Type: semtype.FlowJump},
			"yield_statement":        {Type: semtype.FlowSync},
			"synchronized_statement": {Type: semtype.FlowSync},

			"try_statement":                {Type: semtype.ErrorTry},
			"try_with_resources_statement": {Type: semtype.ErrorTry},
			"catch_clause":                 {Type: semtype.ErrorCatch},
			"finally_clause":               {Type: semtype.ErrorFinally},
			"throw_statement":              {Type: semtype.ErrorThrow},

			"block":             {Type: semtype.OrganizationBlock},
			"class_body":        {Type: semtype.OrganizationBlock},
			"interface_body":    {Type: semtype.OrganizationBlock},
			"enum_body":         {Type: semtype.OrganizationBlock},
			"constructor_body":  {Type: semtype.OrganizationBlock},
			"switch_block":      {Type: semtype.OrganizationBlock},
			"argument_list":     {Type: semtype.OrganizationList},
			"formal_parameters": {Type: semtype.OrganizationList},
			"type_arguments":    {Type: semtype.OrganizationList},
			"type_parameters":   {Type: semtype.OrganizationList},
			"type_list":         {Type: semtype.OrganizationList},

			"modifiers":            {Type: semtype.ParserSyntax},
			"superclass":           {Type: semtype.ParserConstruct},
			"super_interfaces":     {Type: semtype.ParserConstruct},
			"extends_interfaces":   {Type: semtype.ParserConstruct},
			"marker_annotation":    {Type: semtype.MetadataAnnotation, Name: NameRule{Field: "name"}},
			"annotation":           {Type: semtype.MetadataAnnotation, Name: NameRule{Field: "name"}},
			"line_comment":         {Type: semtype.MetadataComment},
			"block_comment":        {Type: semtype.MetadataComment},
			"expression_statement": {Type: semtype.ExecutionStatement},
		},
		ModifierContainers: []string{"modifiers"},
		ModifierFlags: map[string]Flag{
			"public":    FlagPublic,
			"private":   FlagPrivate,
			"protected": FlagProtected,
			"static":    FlagStatic,
			"abstract":  FlagAbstract,
		},
		AnnotationKinds: []string{"marker_annotation", "annotation"},
		AnnotationFlags: map[string]Flag{
			"Override": FlagOverride,
		},
		Heritage: []HeritageRule{
			{ClauseKind: "superclass", Edge: EdgeExtends},
			{ClauseKind: "super_interfaces", Edge: EdgeImplements},
			{ClauseKind: "extends_interfaces", Edge: EdgeExtends},
		},
		TypeRefKinds: []string{"type_identifier", "scoped_type_identifier", "generic_type"},
	})
}
