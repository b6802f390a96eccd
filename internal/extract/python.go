package extract

import (
	"context"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// pythonExtractor parses Python sources into a syntax tree and walks every
// node once, in pre-order, so structures and edges come out in document
// order. This is the one grammar with genuine parsing work: everything else
// in the build tree is line-oriented.
type pythonExtractor struct {
	language *sitter.Language
}

func newPythonExtractor() *pythonExtractor {
	return &pythonExtractor{
		language: sitter.NewLanguage(python.Language()),
	}
}

func (e *pythonExtractor) Extract(ctx context.Context, content []byte) (*ParseResult, error) {
	res := &ParseResult{
		FileType:      "python",
		Structures:    []Structure{},
		Dependencies:  []Dependency{},
		Relationships: []any{},
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.language)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return syntaxErrorResult(res), nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		// A syntax error yields a single synthetic structure and zero
		// dependencies so the surrounding batch continues.
		return syntaxErrorResult(res), nil
	}

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "function_definition":
			e.extractFunction(n, content, res)
		case "class_definition":
			e.extractClass(n, content, res)
		case "import_statement":
			e.extractImport(n, content, res)
		case "import_from_statement":
			e.extractImportFrom(n, content, res)
		}
		return true
	})

	return res, nil
}

func syntaxErrorResult(res *ParseResult) *ParseResult {
	res.Structures = []Structure{{
		Kind: KindError,
		Name: "syntax_error",
		Attrs: Attrs{
			{Key: "message", Value: "Invalid Python syntax"},
		},
	}}
	res.Dependencies = []Dependency{}
	return res
}

// extractFunction records a function (or method) definition with its formal
// parameter names and any simple name-only decorators.
func (e *pythonExtractor) extractFunction(node *sitter.Node, source []byte, res *ParseResult) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	res.Structures = append(res.Structures, Structure{
		Kind: KindFunction,
		Name: nodeText(nameNode, source),
		Line: int(node.StartPosition().Row) + 1,
		Attrs: Attrs{
			{Key: "args", Value: parameterNames(node.ChildByFieldName("parameters"), source)},
			{Key: "decorators", Value: decoratorNames(node, source)},
		},
	})
}

// extractClass records a class definition with its direct base names and
// the names of methods defined directly in its body.
func (e *pythonExtractor) extractClass(node *sitter.Node, source []byte, res *ParseResult) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	bases := []string{}
	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := uint(0); i < supers.ChildCount(); i++ {
			child := supers.Child(i)
			// Only simple name bases; dotted or subscripted bases are
			// skipped, matching the name-only contract.
			if child.Kind() == "identifier" {
				bases = append(bases, nodeText(child, source))
			}
		}
	}

	methods := []string{}
	if body := node.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			child := body.Child(i)
			fn := child
			if child.Kind() == "decorated_definition" {
				fn = child.ChildByFieldName("definition")
			}
			if fn != nil && fn.Kind() == "function_definition" {
				if name := fn.ChildByFieldName("name"); name != nil {
					methods = append(methods, nodeText(name, source))
				}
			}
		}
	}

	res.Structures = append(res.Structures, Structure{
		Kind: KindClass,
		Name: nodeText(nameNode, source),
		Line: int(node.StartPosition().Row) + 1,
		Attrs: Attrs{
			{Key: "bases", Value: bases},
			{Key: "methods", Value: methods},
		},
	})
}

// extractImport emits one edge per imported module of a plain import.
func (e *pythonExtractor) extractImport(node *sitter.Node, source []byte, res *ParseResult) {
	line := int(node.StartPosition().Row) + 1
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		var name string
		switch child.Kind() {
		case "dotted_name":
			name = nodeText(child, source)
		case "aliased_import":
			// The edge names the module, not its alias.
			if mod := child.ChildByFieldName("name"); mod != nil {
				name = nodeText(mod, source)
			}
		}
		if name != "" {
			res.Dependencies = append(res.Dependencies, Dependency{
				Kind: DepImport,
				To:   name,
				Line: line,
			})
		}
	}
}

// extractImportFrom emits one edge carrying the source module plus the list
// of imported symbols.
func (e *pythonExtractor) extractImportFrom(node *sitter.Node, source []byte, res *ParseResult) {
	moduleNode := node.ChildByFieldName("module_name")
	var module string
	if moduleNode != nil {
		module = nodeText(moduleNode, source)
	}

	names := []string{}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			names = append(names, nodeText(child, source))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				names = append(names, nodeText(name, source))
			}
		case "wildcard_import":
			names = append(names, "*")
		}
	}

	res.Dependencies = append(res.Dependencies, Dependency{
		Kind:   DepImportFrom,
		To:     module,
		Module: module,
		Names:  names,
		Line:   int(node.StartPosition().Row) + 1,
	})
}

// parameterNames collects formal parameter names, skipping *args/**kwargs
// splats and bare separators.
func parameterNames(params *sitter.Node, source []byte) []string {
	names := []string{}
	if params == nil {
		return names
	}

	for i := uint(0); i < params.ChildCount(); i++ {
		child := params.Child(i)
		switch child.Kind() {
		case "identifier":
			names = append(names, nodeText(child, source))
		case "typed_parameter":
			if id := firstChildOfKind(child, "identifier"); id != nil {
				names = append(names, nodeText(id, source))
			}
		case "default_parameter", "typed_default_parameter":
			if name := child.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
				names = append(names, nodeText(name, source))
			}
		}
	}
	return names
}

// decoratorNames returns the simple name-only decorators of a function
// definition. Call or attribute decorators are skipped.
func decoratorNames(fn *sitter.Node, source []byte) []string {
	names := []string{}
	parent := fn.Parent()
	if parent == nil || parent.Kind() != "decorated_definition" {
		return names
	}

	for i := uint(0); i < parent.ChildCount(); i++ {
		child := parent.Child(i)
		if child.Kind() != "decorator" {
			continue
		}
		if id := firstChildOfKind(child, "identifier"); id != nil {
			names = append(names, nodeText(id, source))
		}
	}
	return names
}

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// firstChildOfKind finds the first child node with the given kind.
func firstChildOfKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// walkTree recursively walks a tree in pre-order and calls the visitor for
// each node. Returning false from the visitor prunes the subtree.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walkTree(node.Child(i), visitor)
	}
}
