package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsight/buildsight/internal/extract"
)

// Test Plan for Builder:
// - Edges from parse results accumulate into one directed graph
// - Edges with no From originate from the file path
// - Empty To identifiers and self-edges are skipped
// - Duplicate edges across files do not error or double-count
// - MostDepended ranks by dependent count, ties broken by name
// - Dependents lists the incoming neighbors of one identifier

func TestBuilder_AddResultAndStats(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	mk := &extract.ParseResult{
		Dependencies: []extract.Dependency{
			{Kind: extract.DepPackage, From: "LIBFOO", To: "libbar"},
			{Kind: extract.DepPackage, From: "LIBFOO", To: "host-pkgconf"},
		},
	}
	require.NoError(t, b.AddResult("package/libfoo/libfoo.mk", mk))

	sh := &extract.ParseResult{
		Dependencies: []extract.Dependency{
			{Kind: extract.DepSource, To: "./common.sh"}, // From empty: file is the origin
			{Kind: extract.DepSource, To: ""},            // skipped
		},
	}
	require.NoError(t, b.AddResult("scripts/build.sh", sh))

	vertices, edges, err := b.Stats()
	require.NoError(t, err)
	assert.Equal(t, 5, vertices)
	assert.Equal(t, 3, edges)
}

func TestBuilder_SkipsSelfAndDuplicateEdges(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	res := &extract.ParseResult{
		Dependencies: []extract.Dependency{
			{Kind: extract.DepDepends, From: "A", To: "A"}, // self-edge
			{Kind: extract.DepDepends, From: "A", To: "B"},
			{Kind: extract.DepDepends, From: "A", To: "B"}, // duplicate
		},
	}
	require.NoError(t, b.AddResult("Config.in", res))

	vertices, edges, err := b.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, vertices)
	assert.Equal(t, 1, edges)
}

func TestBuilder_MostDependedAndDependents(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	res := &extract.ParseResult{
		Dependencies: []extract.Dependency{
			{Kind: extract.DepPackage, From: "LIBFOO", To: "libssl"},
			{Kind: extract.DepPackage, From: "LIBBAR", To: "libssl"},
			{Kind: extract.DepPackage, From: "LIBBAR", To: "zlib"},
			{Kind: extract.DepPackage, From: "LIBBAZ", To: "zlib"},
			{Kind: extract.DepPackage, From: "LIBFOO", To: "ncurses"},
		},
	}
	require.NoError(t, b.AddResult("packages.mk", res))

	top, err := b.MostDepended(2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	// libssl and zlib both have two dependents; names break the tie.
	assert.Equal(t, DegreeEntry{Name: "libssl", Degree: 2}, top[0])
	assert.Equal(t, DegreeEntry{Name: "zlib", Degree: 2}, top[1])

	deps, err := b.Dependents("zlib")
	require.NoError(t, err)
	assert.Equal(t, []string{"LIBBAR", "LIBBAZ"}, deps)

	none, err := b.Dependents("missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}
