package lang

import "github.com/DeusData/semantic-ast-mcp/internal/semtype"

func init() {
	m := tsMappings()
	// JSX sits outside the host language's own syntax; embedded markup
	// classifies as EXTERNAL_EMBED rather than expressions.
	m["jsx_element"] = Mapping{Type: semtype.ExternalEmbed}
	m["jsx_self_closing_element"] = Mapping{Type: semtype.ExternalEmbed}
	m["jsx_fragment"] = Mapping{Type: semtype.ExternalEmbed}
	m["jsx_opening_element"] = Mapping{Type: semtype.ParserConstruct, Name: NameRule{Field: "name"}}
	m["jsx_closing_element"] = Mapping{Type: semtype.ParserConstruct, Name: NameRule{Field: "name"}}
	m["jsx_attribute"] = Mapping{Type: semtype.MetadataAnnotation, Name: NameRule{ChildKind: "property_identifier"}}
	m["jsx_expression"] = Mapping{Type: semtype.PatternTemplate}
	m["jsx_text"] = Mapping{Type: semtype.LiteralString}

	Register(&AdapterSpec{
		Language:           TSX,
		FileExtensions:     []string{".tsx"},
		Mappings:           m,
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
