package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Render:
// - Canonical text is one [kind] name header per structure, then indented
//   "key: value" lines in attribute order
// - Dependency headers use [dependency] kind; the type key never repeats in
//   the attribute lines
// - String slices and nested attribute lists get stable bracketed forms
// - Metadata mirrors the result as flattened maps
// - Rendering the same result twice gives identical output

func TestRender_CanonicalText(t *testing.T) {
	t.Parallel()

	res := &ParseResult{
		FileType: "shell",
		Structures: []Structure{
			{
				Kind: KindFunction,
				Name: "setup",
				Line: 1,
				Attrs: Attrs{
					{Key: "line", Value: 1},
					{Key: "commands", Value: []string{}},
				},
			},
			{
				Kind: KindVariable,
				Name: "FOO",
				Line: 2,
				Attrs: Attrs{
					{Key: "value", Value: "bar"},
					{Key: "line", Value: 2},
					{Key: "scope", Value: "setup"},
				},
			},
		},
		Dependencies: []Dependency{
			{Kind: DepSource, Path: "./common.sh", To: "./common.sh", Line: 3},
		},
		Relationships: []any{},
	}

	got := Render(res)

	want := `[function] setup
  line: 1
  commands: []
[variable] FOO
  value: bar
  line: 2
  scope: setup
[dependency] source
  path: ./common.sh
  line: 3`
	assert.Equal(t, want, got.Content)

	// Deterministic across calls.
	again := Render(res)
	assert.Equal(t, got.Content, again.Content)
}

func TestRender_Metadata(t *testing.T) {
	t.Parallel()

	res := &ParseResult{
		FileType: "genimage",
		Structures: []Structure{
			{
				Kind: KindImage,
				Name: "sdcard.img",
				Line: 1,
				Attrs: Attrs{
					{Key: "line", Value: 1},
					{Key: "properties", Value: Attrs{{Key: "size", Value: "256M"}}},
				},
			},
		},
		Dependencies: []Dependency{
			{Kind: DepImportFrom, To: "sys", Module: "sys", Names: []string{"path"}, Line: 2},
		},
		Relationships: []any{},
	}

	got := Render(res)

	assert.Equal(t, "genimage", got.Metadata.FileType)
	assert.Empty(t, got.Metadata.Error)

	require.Len(t, got.Metadata.Structures, 1)
	s := got.Metadata.Structures[0]
	assert.Equal(t, "image", s.Type)
	assert.Equal(t, "sdcard.img", s.Name)
	assert.Equal(t, map[string]any{
		"line":       1,
		"properties": map[string]any{"size": "256M"},
	}, s.Details)

	require.Len(t, got.Metadata.Dependencies, 1)
	assert.Equal(t, map[string]any{
		"type":   "import_from",
		"module": "sys",
		"names":  []string{"path"},
	}, got.Metadata.Dependencies[0])

	assert.Equal(t, []any{}, got.Metadata.Relationships)
}

func TestRender_NestedAttrsInText(t *testing.T) {
	t.Parallel()

	res := &ParseResult{
		FileType: "genimage",
		Structures: []Structure{
			{
				Kind: KindImage,
				Name: "boot.vfat",
				Attrs: Attrs{
					{Key: "properties", Value: Attrs{{Key: "size", Value: "32M"}}},
				},
			},
		},
		Relationships: []any{},
	}

	got := Render(res)
	assert.Equal(t, "[image] boot.vfat\n  properties: {size: 32M}", got.Content)
}

func TestRender_EmptyResult(t *testing.T) {
	t.Parallel()

	res := &ParseResult{
		FileType:      "makefile",
		Structures:    []Structure{},
		Dependencies:  []Dependency{},
		Relationships: []any{},
	}

	got := Render(res)
	assert.Equal(t, "", got.Content)
	assert.Empty(t, got.Metadata.Structures)
	assert.Empty(t, got.Metadata.Dependencies)
}
