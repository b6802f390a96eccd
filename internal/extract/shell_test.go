package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for shellExtractor:
// - Extract function definitions with empty command lists
// - Extract UPPER_SNAKE variable assignments with value, line, and scope
// - Extract exports with line and scope
// - Extract ". path" sourcing as dependency edges
// - Scope is "global" before the first function and sticks to the last
//   function header afterwards
// - Lowercase assignments and plain commands produce nothing

func TestShellExtractor_Extract(t *testing.T) {
	t.Parallel()

	script := `#!/bin/bash
FOO=bar
setup() {
	BAR=baz
	export PATH
	. ./common.sh
}
lowercase=skipped
`

	e := newShellExtractor()
	res, err := e.Extract(context.Background(), []byte(script))
	require.NoError(t, err)

	assert.Equal(t, "shell", res.FileType)
	require.Len(t, res.Structures, 4)

	foo := res.Structures[0]
	assert.Equal(t, KindVariable, foo.Kind)
	assert.Equal(t, "FOO", foo.Name)
	value, _ := foo.Attrs.Get("value")
	assert.Equal(t, "bar", value)
	scope, _ := foo.Attrs.Get("scope")
	assert.Equal(t, "global", scope)
	assert.Equal(t, 2, foo.Line)

	fn := res.Structures[1]
	assert.Equal(t, KindFunction, fn.Kind)
	assert.Equal(t, "setup", fn.Name)
	commands, _ := fn.Attrs.Get("commands")
	assert.Equal(t, []string{}, commands)

	bar := res.Structures[2]
	assert.Equal(t, KindVariable, bar.Kind)
	assert.Equal(t, "BAR", bar.Name)
	scope, _ = bar.Attrs.Get("scope")
	assert.Equal(t, "setup", scope)

	exp := res.Structures[3]
	assert.Equal(t, KindExport, exp.Kind)
	assert.Equal(t, "PATH", exp.Name)
	scope, _ = exp.Attrs.Get("scope")
	assert.Equal(t, "setup", scope)

	require.Len(t, res.Dependencies, 1)
	dep := res.Dependencies[0]
	assert.Equal(t, DepSource, dep.Kind)
	assert.Equal(t, "./common.sh", dep.Path)
	assert.Equal(t, 6, dep.Line)
}

func TestShellExtractor_ScopeSticksAfterFunction(t *testing.T) {
	t.Parallel()

	// The scanner cannot see the closing brace of a function, so the scope
	// of a top-level assignment after one is the last function's name.
	script := `setup() {
	A=1
}
B=2
`

	e := newShellExtractor()
	res, err := e.Extract(context.Background(), []byte(script))
	require.NoError(t, err)

	require.Len(t, res.Structures, 3)
	scope, _ := res.Structures[2].Attrs.Get("scope")
	assert.Equal(t, "setup", scope)
}

func TestShellExtractor_EmptyInput(t *testing.T) {
	t.Parallel()

	e := newShellExtractor()
	res, err := e.Extract(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, res.Structures)
	assert.Empty(t, res.Dependencies)
	assert.Equal(t, []any{}, res.Relationships)
}
