package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsight/buildsight/internal/classify"
)

// Test Plan for Registry and Set:
// - Home Assistant OS and Buildroot tags resolve to the same extractor set
// - Unknown tags resolve to nothing, letting callers fall back to text
// - Suffix dispatch is case-insensitive and covers all six grammars
// - An unrecognized suffix yields ErrUnsupportedType with its exact message
// - Collaborator handles passed at construction are kept on the set

func TestRegistry_ForRepo(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Providers{})

	ha, ok := r.ForRepo(classify.RepoHomeAssistant)
	require.True(t, ok)
	br, ok := r.ForRepo(classify.RepoBuildroot)
	require.True(t, ok)
	assert.Same(t, ha, br)

	_, ok = r.ForRepo(classify.RepoUnknown)
	assert.False(t, ok)
}

func TestSet_SuffixDispatch(t *testing.T) {
	t.Parallel()

	set := newBuildTreeSet(Providers{})
	ctx := context.Background()

	tests := []struct {
		path     string
		fileType string
	}{
		{"scripts/build.sh", "shell"},
		{"package/libfoo/libfoo.mk", "makefile"},
		{"support/gen.py", "python"},
		{"boot/boot.ush", "uboot_script"},
		{"package/libfoo/Config.in", "config_in"},
		{"board/genimage.cfg", "genimage"},
		{"board/GENIMAGE.CFG", "genimage"}, // suffix match is case-insensitive
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			res, err := set.Extract(ctx, tt.path, []byte(""))
			require.NoError(t, err)
			assert.Equal(t, tt.fileType, res.FileType)
		})
	}
}

func TestSet_KeepsProviders(t *testing.T) {
	t.Parallel()

	type dbHandle struct{ name string }
	handle := &dbHandle{name: "units"}

	set := newBuildTreeSet(Providers{Database: handle})
	assert.Same(t, handle, set.providers.Database)

	r := NewRegistry(Providers{Database: handle})
	got, ok := r.ForRepo(classify.RepoBuildroot)
	require.True(t, ok)
	assert.Same(t, handle, got.providers.Database)
}

func TestSet_UnsupportedSuffix(t *testing.T) {
	t.Parallel()

	set := newBuildTreeSet(Providers{})

	_, err := set.Extract(context.Background(), "README.txt", []byte("hello"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Equal(t, "Unsupported file type", err.Error())

	_, err = set.Extract(context.Background(), "Makefile", []byte(""))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
