package extract

import (
	"fmt"
	"strings"
)

// Metadata is the per-file metadata record emitted alongside the canonical
// text. Structures and dependencies are flattened to plain maps so the
// record can be serialized without knowledge of the extractor types.
type Metadata struct {
	FileType      string           `json:"file_type,omitempty"`
	Structures    []StructureMeta  `json:"structures,omitempty"`
	Dependencies  []map[string]any `json:"dependencies,omitempty"`
	Relationships []any            `json:"relationships"`
	Error         string           `json:"error,omitempty"`
}

// StructureMeta is the flattened form of a Structure.
type StructureMeta struct {
	Type    string         `json:"type"`
	Name    string         `json:"name"`
	Details map[string]any `json:"details"`
}

// Extraction is the single emission produced for one file: canonical
// indexable text plus its metadata record. Error emissions carry empty
// content and a populated Metadata.Error.
type Extraction struct {
	Content  string
	Metadata Metadata
}

// Render flattens a ParseResult into its canonical text and metadata
// record. The text form is one header line per structure followed by
// indented attribute lines, then one header line per dependency followed by
// its attributes except the literal type key.
func Render(res *ParseResult) Extraction {
	var sb strings.Builder

	for _, s := range res.Structures {
		fmt.Fprintf(&sb, "[%s] %s\n", s.Kind, s.Name)
		for _, attr := range s.Attrs {
			fmt.Fprintf(&sb, "  %s: %s\n", attr.Key, formatValue(attr.Value))
		}
	}

	for _, d := range res.Dependencies {
		kind := d.Kind
		if kind == "" {
			kind = "unknown"
		}
		fmt.Fprintf(&sb, "[dependency] %s\n", kind)
		for _, attr := range d.attrPairs() {
			fmt.Fprintf(&sb, "  %s: %s\n", attr.Key, formatValue(attr.Value))
		}
	}

	return Extraction{
		Content:  strings.TrimRight(sb.String(), "\n"),
		Metadata: metadataFor(res),
	}
}

// metadataFor builds the metadata record for a successful extraction.
func metadataFor(res *ParseResult) Metadata {
	meta := Metadata{
		FileType:      res.FileType,
		Structures:    make([]StructureMeta, 0, len(res.Structures)),
		Dependencies:  make([]map[string]any, 0, len(res.Dependencies)),
		Relationships: []any{},
	}

	for _, s := range res.Structures {
		meta.Structures = append(meta.Structures, StructureMeta{
			Type:    string(s.Kind),
			Name:    s.Name,
			Details: attrsToMap(s.Attrs),
		})
	}

	for _, d := range res.Dependencies {
		dep := map[string]any{"type": d.Kind}
		for _, attr := range d.attrPairs() {
			dep[attr.Key] = attr.Value
		}
		meta.Dependencies = append(meta.Dependencies, dep)
	}

	return meta
}

// attrsToMap converts an ordered attribute list to a plain map, recursing
// into nested attribute lists such as image properties.
func attrsToMap(attrs Attrs) map[string]any {
	m := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		if nested, ok := attr.Value.(Attrs); ok {
			m[attr.Key] = attrsToMap(nested)
			continue
		}
		m[attr.Key] = attr.Value
	}
	return m
}

// formatValue renders an attribute value for the canonical text form.
// Nested attribute lists and string slices get a stable bracketed form.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return "[" + strings.Join(val, ", ") + "]"
	case Attrs:
		parts := make([]string, 0, len(val))
		for _, attr := range val {
			parts = append(parts, fmt.Sprintf("%s: %s", attr.Key, formatValue(attr.Value)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", val)
	}
}
