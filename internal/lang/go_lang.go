package lang

import "github.com/DeusData/semantic-ast-mcp/internal/semtype"

func init() {
	Register(&AdapterSpec{
		Language:       Go,
		FileExtensions: []string{".go"},
		Mappings: map[string]Mapping{
			"source_file":        {Type: semtype.DefinitionModule},
			"package_clause":     {Type: semtype.DefinitionPackage, Name: NameRule{ChildKind: "package_identifier"}},
			"import_declaration": {Type: semtype.ExternalImport},
			"import_spec":        {Type: semtype.ExternalImport},

			"function_declaration": {Type: semtype.DefinitionFunction, Name: NameRule{Field: "name"}},
			"method_declaration":   {Type: semtype.DefinitionMethod, Name: NameRule{Field: "name"}},
			"func_literal":         {Type: semtype.ComputationLambda},
			"type_declaration":     {Type: semtype.ExecutionDeclaration},
			"type_spec": {
				Type: semtype.DefinitionTypeAlias,
				Name: NameRule{Field: "name"},
				ByChild: map[string]semtype.Code{
					"struct_type":    semtype.DefinitionClass,
					"interface_type": semtype.DefinitionInterface,
				},
			},
			"type_alias":        {Type: semtype.DefinitionTypeAlias, Name: NameRule{Field: "name"}},
			"var_declaration":   {Type: semtype.ExecutionDeclaration},
			"const_declaration": {Type: semtype.ExecutionDeclaration},
			"var_spec":          {Type: semtype.DefinitionVariable, Name: NameRule{ChildKind: "identifier"}},
			"const_spec":        {Type: semtype.DefinitionConstant, Name: NameRule{ChildKind: "identifier"}},
			"field_declaration": {Type: semtype.DefinitionField, Name: NameRule{ChildKind: "field_identifier"}},
			"parameter_declaration":          {Type: semtype.DefinitionParameter, Name: NameRule{ChildKind: "identifier"}},
			"variadic_parameter_declaration": {Type: semtype.DefinitionParameter, Name: NameRule{ChildKind: "identifier"}},
			"parameter_list":                 {Type: semtype.OrganizationList},
			"short_var_declaration":          {Type: semtype.ExecutionDeclaration},

			"identifier":         {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
			"field_identifier":   {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
			"package_identifier": {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
			"blank_identifier":   {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
			"type_identifier":    {Type: semtype.TypeReference, Name: NameRule{Self: true}},
			"qualified_type":     {Type: semtype.TypeReference, Name: NameRule{Self: true}},
			"pointer_type":       {Type: semtype.TypeComposite},
			"slice_type":         {Type: semtype.TypeComposite},
			"array_type":         {Type: semtype.TypeComposite},
			"map_type":           {Type: semtype.TypeComposite},
			"channel_type":       {Type: semtype.TypeComposite},
			"function_type":      {Type: semtype.TypeComposite},
			"struct_type":        {Type: semtype.TypeComposite},
			"interface_type":     {Type: semtype.TypeComposite},
			"generic_type":       {Type: semtype.TypeGeneric},
			"type_arguments":     {Type: semtype.OrganizationList},
			"type_parameter_list": {Type: semtype.OrganizationList},

			"call_expression":      {Type: semtype.ComputationCall, Name: NameRule{Field: "function"}},
			"selector_expression":  {Type: semtype.ComputationAccess, Name: NameRule{Field: "field"}},
			"index_expression":     {Type: semtype.ComputationAccess},
			"binary_expression":    {Type: semtype.ComputationExpression},
			"unary_expression":     {Type: semtype.ComputationExpression},
			"type_assertion_expression": {Type: semtype.ComputationExpression},
			"type_conversion_expression": {Type: semtype.ComputationExpression},
			"assignment_statement": {Type: semtype.OperatorAssignment},
			"inc_statement":        {Type: semtype.OperatorArithmetic},
			"dec_statement":        {Type: semtype.OperatorArithmetic},

			"int_literal":              {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"float_literal":            {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"imaginary_literal":        {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"rune_literal":             {Type: semtype.LiteralString, Name: NameRule{Self: true}},
			"interpreted_string_literal": {Type: semtype.LiteralString},
			"raw_string_literal":         {Type: semtype.LiteralString},
			"true":              {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"false":             {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"nil":               {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"composite_literal": {Type: semtype.LiteralStructured},
			"literal_value":     {Type: semtype.LiteralStructured},
			"keyed_element":     {Type: semtype.OrganizationList},

			"if_statement":          {Type: semtype.FlowConditional},
			"expression_switch_statement": {Type: semtype.FlowConditional},
			"type_switch_statement": {Type: semtype.FlowConditional},
			"expression_case":       {Type: semtype.FlowConditional},
			"type_case":             {Type: semtype.FlowConditional},
			"default_case":          {Type: semtype.FlowConditional},
			"select_statement":      {Type: semtype.FlowSync},
			"communication_case":    {Type: semtype.FlowSync},
			"for_statement":         {Type: semtype.FlowLoop},
			"range_clause":          {Type: semtype.FlowLoop},
			"return_statement":      {Type: semtype.FlowJump},
			"break_statement":       {Type: semtype.FlowJump},
			"continue_statement":    {Type: semtype.FlowJump},
			"goto_statement":        {Type: semtype.FlowJump},
			"fallthrough_statement": {Type: semtype.FlowJump},
			"go_statement":          {Type: semtype.FlowSync},
			"defer_statement":       {Type: semtype.ErrorFinally},
			"send_statement":        {Type: semtype.FlowSync},
			"labeled_statement":     {Type: semtype.ExecutionStatement},

			"block":              {Type: semtype.OrganizationBlock},
			"field_declaration_list": {Type: semtype.OrganizationBlock},
			"argument_list":      {Type: semtype.OrganizationList},
			"expression_list":    {Type: semtype.OrganizationList},

			"comment":              {Type: semtype.MetadataComment},
			"expression_statement": {Type: semtype.ExecutionStatement},
		},
		TypeRefKinds: []string{"type_identifier", "qualified_type"},
		Convention:   ConventionUpperExported,
	})
}
