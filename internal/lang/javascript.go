package lang

import "github.com/DeusData/semantic-ast-mcp/internal/semtype"

func init() {
	Register(&AdapterSpec{
		Language:       JavaScript,
		FileExtensions: []string{".js", ".mjs", ".cjs", ".jsx"},
		Mappings: map[string]Mapping{
			"program": {Type: semtype.DefinitionModule},

			"import_statement": {Type: semtype.ExternalImport},
			"export_statement": {Type: semtype.ExternalExport},

			"class_declaration": {Type: semtype.DefinitionClass, Name: NameRule{Field: "name"}},
			"class":             {Type: semtype.DefinitionClass, Name: NameRule{Field: "name"}},

			"function_declaration":           {Type: semtype.DefinitionFunction, Name: NameRule{Field: "name"}},
			"generator_function_declaration": {Type: semtype.DefinitionFunction, Name: NameRule{Field: "name"}},
			"method_definition":              {Type: semtype.DefinitionMethod, Name: NameRule{Field: "name"}},
			"field_definition":               {Type: semtype.DefinitionField, Name: NameRule{Field: "property"}},
			"variable_declarator":            {Type: semtype.DefinitionVariable, Name: NameRule{Field: "name"}},
			"lexical_declaration":            {Type: semtype.ExecutionDeclaration},
			"variable_declaration":           {Type: semtype.ExecutionDeclaration},
			"formal_parameters":              {Type: semtype.OrganizationList},

			"identifier":                    {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
			"property_identifier":           {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
			"shorthand_property_identifier": {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
			"private_property_identifier":   {Type: semtype.NameIdentifier, Name: NameRule{Self: true}, Flags: FlagPrivate},
			"this":                          {Type: semtype.NameScoped, Name: NameRule{Self: true}},
			"super":                         {Type: semtype.NameScoped, Name: NameRule{Self: true}},

			"call_expression":                 {Type: semtype.ComputationCall, Name: NameRule{Field: "function"}},
			"new_expression":                  {Type: semtype.ComputationCall, Name: NameRule{Field: "constructor"}},
			"member_expression":               {Type: semtype.ComputationAccess, Name: NameRule{Field: "property"}},
			"subscript_expression":            {Type: semtype.ComputationAccess},
			"arrow_function":                  {Type: semtype.ComputationLambda},
			"function_expression":             {Type: semtype.ComputationLambda},
			"binary_expression":               {Type: semtype.ComputationExpression},
			"unary_expression":                {Type: semtype.ComputationExpression},
			"ternary_expression":              {Type: semtype.ComputationExpression},
			"await_expression":                {Type: semtype.FlowSync},
			"assignment_expression":           {Type: semtype.OperatorAssignment},
			"augmented_assignment_expression": {Type: semtype.OperatorAssignment},
			"update_expression":               {Type: semtype.OperatorArithmetic},

			"number":                {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"string":                {Type: semtype.LiteralString},
			"template_string":       {Type: semtype.PatternTemplate},
			"template_substitution": {Type: semtype.PatternTemplate},
			"regex":                 {Type: semtype.PatternMatch},
			"true":                  {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"false":                 {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"null":                  {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"undefined":             {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"array":                 {Type: semtype.LiteralStructured},
			"object":                {Type: semtype.LiteralStructured},
			"pair":                  {Type: semtype.OrganizationList},

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
			"arguments":       {Type: semtype.OrganizationList},

			"class_heritage":       {Type: semtype.ParserConstruct},
			"decorator":            {Type: semtype.MetadataAnnotation, Name: NameRule{ChildKind: "identifier"}},
			"comment":              {Type: semtype.MetadataComment},
			"expression_statement": {Type: semtype.ExecutionStatement},

			"jsx_element":              {Type: semtype.ExternalEmbed},
			"jsx_self_closing_element": {Type: semtype.ExternalEmbed},
			"jsx_fragment":             {Type: semtype.ExternalEmbed},
			"jsx_opening_element":      {Type: semtype.ParserConstruct, Name: NameRule{Field: "name"}},
			"jsx_closing_element":      {Type: semtype.ParserConstruct, Name: NameRule{Field: "name"}},
			"jsx_attribute":            {Type: semtype.MetadataAnnotation, Name: NameRule{ChildKind: "property_identifier"}},
			"jsx_expression":           {Type: semtype.PatternTemplate},
			"jsx_text":                 {Type: semtype.LiteralString},
		},
		ModifierFlags: map[string]Flag{
			"static": FlagStatic,
			"async":  FlagAsync,
		},
		AnnotationKinds: []string{"decorator"},
		AnnotationFlags: map[string]Flag{},
		Heritage: []HeritageRule{
			// JavaScript has no implements; the heritage clause is the
			// extends expression itself.
			{ClauseKind: "class_heritage", Edge: EdgeExtends},
		},
		TypeRefKinds:  []string{"identifier", "member_expression"},
		ExportParents: []string{"export_statement"},
	})
}
