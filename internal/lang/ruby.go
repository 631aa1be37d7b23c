package lang

import "github.com/DeusData/semantic-ast-mcp/internal/semtype"

func init() {
	Register(&AdapterSpec{
		Language:       Ruby,
		FileExtensions: []string{".rb"},
		Mappings: map[string]Mapping{
			"program": {Type: semtype.DefinitionModule},

			"class":            {Type: semtype.DefinitionClass, Name: NameRule{ChildKind: "constant"}},
			"module":           {Type: semtype.DefinitionModule, Name: NameRule{ChildKind: "constant"}},
			"singleton_class":  {Type: semtype.DefinitionClass},
			"method":           {Type: semtype.DefinitionMethod, Name: NameRule{Field: "name"}},
			"singleton_method": {Type: semtype.DefinitionMethod, Name: NameRule{Field: "name"}},
			"method_parameters": {Type: semtype.OrganizationList},
			"block_parameters":  {Type: semtype.OrganizationList},
			"optional_parameter": {Type: semtype.DefinitionParameter, Name: NameRule{Field: "name"}},
			"keyword_parameter":  {Type: semtype.DefinitionParameter, Name: NameRule{Field: "name"}},
			"splat_parameter":    {Type: semtype.DefinitionParameter, Name: NameRule{Field: "name"}},

			"body_statement": {Type: semtype.OrganizationBlock},
			"superclass":     {Type: semtype.ParserConstruct},
			"do_block":       {Type: semtype.ComputationLambda},
			"block":          {Type: semtype.ComputationLambda},
			"lambda":         {Type: semtype.ComputationLambda},

			"identifier":        {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
			"constant":          {Type: semtype.NameIdentifier, Name: NameRule{Self: true}},
			"instance_variable": {Type: semtype.NameScoped, Name: NameRule{Self: true}},
			"class_variable":    {Type: semtype.NameScoped, Name: NameRule{Self: true}},
			"global_variable":   {Type: semtype.NameScoped, Name: NameRule{Self: true}},
			"scope_resolution":  {Type: semtype.NameQualified, Name: NameRule{Self: true}},
			"self":              {Type: semtype.NameScoped, Name: NameRule{Self: true}},

			"call":                {Type: semtype.ComputationCall, Name: NameRule{Field: "method"}},
			"command_call":        {Type: semtype.ComputationCall, Name: NameRule{Field: "method"}},
			"element_reference":   {Type: semtype.ComputationAccess},
			"binary":              {Type: semtype.ComputationExpression},
			"unary":               {Type: semtype.ComputationExpression},
			"conditional":         {Type: semtype.ComputationExpression},
			"assignment":          {Type: semtype.OperatorAssignment},
			"operator_assignment": {Type: semtype.OperatorAssignment},

			"integer":          {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"float":            {Type: semtype.LiteralNumber, Name: NameRule{Self: true}},
			"string":           {Type: semtype.LiteralString},
			"string_content":   {Type: semtype.LiteralString},
			"heredoc_body":     {Type: semtype.LiteralString},
			"simple_symbol":    {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"true":             {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"false":            {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"nil":              {Type: semtype.LiteralAtomic, Name: NameRule{Self: true}},
			"array":            {Type: semtype.LiteralStructured},
			"hash":             {Type: semtype.LiteralStructured},
			"pair":             {Type: semtype.OrganizationList},
			"interpolation":    {Type: semtype.PatternTemplate},

			"if":       {Type: semtype.FlowConditional},
			"unless":   {Type: semtype.FlowConditional},
			"elsif":    {Type: semtype.FlowConditional},
			"else":     {Type: semtype.FlowConditional},
			"case":     {Type: semtype.FlowConditional},
			"when":     {Type: semtype.FlowConditional},
			"then":     {Type: semtype.OrganizationBlock},
			"while":    {Type: semtype.FlowLoop},
			"until":    {Type: semtype.FlowLoop},
			"for":      {Type: semtype.FlowLoop},
			"return":   {Type: semtype.FlowJump},
			"break":    {Type: semtype.FlowJump},
			"next":     {Type: semtype.FlowJump},
			"redo":     {Type: semtype.FlowJump},
			"yield":    {Type: semtype.FlowSync},

			"begin":  {Type: semtype.ErrorTry},
			"rescue": {Type: semtype.ErrorCatch},
			"ensure": {Type: semtype.ErrorFinally},
			"retry":  {Type: semtype.FlowJump},

			"comment":       {Type: semtype.MetadataComment},
			"argument_list": {Type: semtype.OrganizationList},
		},
		Heritage: []HeritageRule{
			{ClauseKind: "superclass", Edge: EdgeExtends},
			// Mixins are plain method calls in the class body.
			{
				ClauseKind:  "call",
				ParentKind:  "body_statement",
				Edge:        EdgeMixesIn,
				MethodField: "method",
				Methods:     []string{"include", "prepend", "extend"},
			},
		},
		TypeRefKinds: []string{"constant", "scope_resolution"},
		Fold: &VisibilityFold{
			BodyKinds:   []string{"body_statement"},
			KeywordKind: "identifier",
			Default:     FlagPublic,
		},
	})
}
