package lang

import "github.com/DeusData/semantic-ast-mcp/internal/semtype"

func init() {
	Register(&AdapterSpec{
		Language:       Python,
		FileExtensions: []string{".py"},
		Mappings: map[string]Mapping{
			"module": {Type: semtype.DefinitionModule},

			"import_statement":      {Type: semtype.ExternalImport},
			"import_from_statement": {Type: semtype.ExternalImport},
			"future_import_statement": {Type: semtype.ExternalImport},

			"class_definition":    {Type: semtype.DefinitionClass, Name: NameRule{Field: "name"}},
			"function_definition": {Type: semtype.DefinitionFunction, Name: NameRule{Field: "name"}},
			// Grouping wrapper around decorators plus the definition they
			// decorate; the flag deriver reads through it.
			"decorated_definition": {Type: semtype.ParserConstruct},
			"parameters":           {Type: semtype.OrganizationList},
			"default_parameter":    {Type: semtype.DefinitionParameter, Name: NameRule{Field: "name"}},
			"typed_parameter":      {Type: semtype.DefinitionParameter, Name: NameRule{ChildKind: "identifier"}},
			"typed_default_parameter": {Type: semtype.DefinitionParameter, Name: NameRule{Field: "name"}},
			"global_statement":     {Type: semtype.ExecutionDeclaration},
			"nonlocal_statement":   {Type: semtype.ExecutionDeclaration},

			"identifier": {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
			"attribute":  {Type: semtype.ComputationAccess, Name: NameRule{Field: "attribute"}},
			"dotted_name": {Type: semtype.NameQualified, Name: NameRule{Self: true}},
			"type":        {Type: semtype.TypeReference},

			"call":                  {Type: semtype.ComputationCall, Name: NameRule{Field: "function"}},
			"subscript":             {Type: semtype.ComputationAccess},
			"lambda":                {Type: semtype.ComputationLambda},
			"binary_operator":       {Type: semtype.ComputationExpression},
			"unary_operator":        {Type: semtype.ComputationExpression},
			"boolean_operator":      {Type: semtype.OperatorLogical},
			"comparison_operator":   {Type: semtype.OperatorComparison},
			"conditional_expression": {Type: semtype.ComputationExpression},
			"assignment":            {Type: semtype.OperatorAssignment},
			"augmented_assignment":  {Type: semtype.OperatorAssignment},
			"await":                 {Type: semtype.FlowSync},
			"list_comprehension":       {Type: semtype.TransformIteration},
			"dictionary_comprehension": {Type: semtype.TransformIteration},
			"set_comprehension":        {Type: semtype.TransformIteration},
			"generator_expression":     {Type: semtype.TransformIteration},

			"integer":              {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"float":                {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"string":               {Type: semtype.LiteralString},
			"string_content":       {Type: semtype.LiteralString},
			"interpolation":        {Type: semtype.PatternTemplate},
			"true":                 {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"false":                {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"none":                 {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"list":                 {Type: semtype.LiteralStructured},
			"tuple":                {Type: semtype.LiteralStructured},
			"dictionary":           {Type: semtype.LiteralStructured},
			"set":                  {Type: semtype.LiteralStructured},
			"pair":                 {Type: semtype.OrganizationList},
			"pattern_list":         {Type: semtype.PatternDestructure},
			"tuple_pattern":        {Type: semtype.PatternDestructure},
			"list_pattern":         {Type: semtype.PatternDestructure},

			"if_statement":    {Type: semtype.FlowConditional},
			"elif_clause":     {Type: semtype.FlowConditional},
			"else_clause":     {Type: semtype.FlowConditional},
			"match_statement": {Type: semtype.FlowConditional},
			"case_clause":     {Type: semtype.PatternMatch},
			"for_statement":   {Type: semtype.FlowLoop},
			"while_statement": {Type: semtype.FlowLoop},
			"return_statement":   {Type: semtype.FlowJump},
			"break_statement":    {Type: semtype.FlowJump},
			"continue_statement": {Type: semtype.FlowJump},
			"pass_statement":     {Type: semtype.ExecutionStatement},
			"yield":              {Type: semtype.FlowSync},
			"with_statement":     {Type: semtype.FlowSync},

			"try_statement":   {Type: semtype.ErrorTry},
			"except_clause":   {Type: semtype.ErrorCatch},
			"finally_clause":  {Type: semtype.ErrorFinally},
			"raise_statement": {Type: semtype.ErrorThrow},
			"assert_statement": {Type: semtype.MetadataDebug},

			"block":         {Type: semtype.OrganizationBlock},
			"argument_list": {Type: semtype.OrganizationList},
			"keyword_argument": {Type: semtype.OrganizationList},

			"decorator":            {Type: semtype.MetadataAnnotation, Name: NameRule{ChildKind: "identifier"}},
			"comment":              {Type: semtype.MetadataComment},
			"expression_statement": {Type: semtype.ExecutionStatement},
		},
		ModifierFlags: map[string]Flag{
			"async": FlagAsync,
		},
		AnnotationKinds: []string{"decorator"},
		AnnotationFlags: map[string]Flag{
			"staticmethod":   FlagStatic,
			"abstractmethod": FlagAbstract,
			"override":       FlagOverride,
		},
		Heritage: []HeritageRule{
			// Superclasses are a plain argument_list directly under the
			// class_definition; the parent restriction keeps call
			// arguments from matching.
			{ClauseKind: "argument_list", ParentKind: "class_definition", Edge: EdgeExtends},
		},
		TypeRefKinds: []string{"identifier", "attribute"},
		Convention:   ConventionUnderscorePrivate,
	})
}
