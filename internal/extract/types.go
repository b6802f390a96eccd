package extract

// StructureKind identifies the type of a named unit extracted from a
// build-tree source file. The set is closed: extractors never invent kinds.
type StructureKind string

const (
	KindFunction       StructureKind = "function"
	KindVariable       StructureKind = "variable"
	KindExport         StructureKind = "export"
	KindPackageVersion StructureKind = "package_version"
	KindEval           StructureKind = "eval"
	KindUBootEnv       StructureKind = "uboot_env"
	KindBootCommand    StructureKind = "boot_command"
	KindLoadCommand    StructureKind = "load_command"
	KindConfigOption   StructureKind = "config_option"
	KindImage          StructureKind = "image"
	KindInclude        StructureKind = "include"
	KindClass          StructureKind = "class"
	KindError          StructureKind = "error"
)

// Dependency kinds. These appear as the "type" attribute of an edge and are
// excluded from the attribute lines of the canonical rendering.
const (
	DepSource     = "source"
	DepPackage    = "package_dependency"
	DepImport     = "import"
	DepImportFrom = "import_from"
	DepDepends    = "depends"
)

// Attr is a single key/value attribute of a structure.
type Attr struct {
	Key   string
	Value any
}

// Attrs is an insertion-ordered attribute list. Canonical rendering walks
// attributes in the order they were set, so extraction output is
// deterministic across runs.
type Attrs []Attr

// Get returns the value for key and whether it was present.
func (a Attrs) Get(key string) (any, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return nil, false
}

// Set replaces the value for key if present, otherwise appends it.
func (a *Attrs) Set(key string, value any) {
	for i := range *a {
		if (*a)[i].Key == key {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attr{Key: key, Value: value})
}

// Structure is a named, typed unit of extracted meaning from a source file.
// Name is non-empty except for synthetic "error" structures.
type Structure struct {
	Kind  StructureKind
	Name  string
	Attrs Attrs
	Line  int
}

// Dependency is a directed relation between two identifiers found in a
// file. From and To are free-text: edges may reference names never defined
// in this file, and no referential integrity is enforced.
type Dependency struct {
	Kind string
	From string
	To   string

	// Per-kind payload. Path is set for shell sourcing, Module and Names
	// for from-imports.
	Path   string
	Module string
	Names  []string

	Line int
}

// attrPairs returns the edge attributes in rendering order, using the
// attribute names each dependency kind carries on the wire. The kind itself
// is excluded: the renderer emits it in the header line.
func (d Dependency) attrPairs() Attrs {
	switch d.Kind {
	case DepSource:
		return Attrs{{Key: "path", Value: d.Path}, {Key: "line", Value: d.Line}}
	case DepImport:
		return Attrs{{Key: "name", Value: d.To}}
	case DepImportFrom:
		return Attrs{{Key: "module", Value: d.Module}, {Key: "names", Value: d.Names}}
	default:
		// package_dependency, depends, and any future from/to edge.
		return Attrs{{Key: "from", Value: d.From}, {Key: "to", Value: d.To}}
	}
}

// ParseResult is the uniform output of one extractor run over one file.
// Structures and Dependencies are in document order. Relationships is
// reserved for cross-file resolution and is always empty.
type ParseResult struct {
	FileType      string
	Structures    []Structure
	Dependencies  []Dependency
	Relationships []any
}

// ParseRequest carries one file through the ingestion chain. It is created
// once per file and discarded after the result is emitted.
type ParseRequest struct {
	Path    string
	Content []byte

	// RepoType, when non-empty, overrides path-based classification.
	RepoType string
}
