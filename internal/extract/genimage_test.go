package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for genimageExtractor:
// - Extract image definitions with quotes stripped from the name
// - Attach size lines to the open image's property map
// - Extract include(...) lines as independent structures
// - A size line before any image definition is ignored
// - A later image definition moves the attachment point

func TestGenimageExtractor_Extract(t *testing.T) {
	t.Parallel()

	content := `size = 64M
image sdcard.img {
	hdimage {
	}
	size = 256M
}
include("partitions.cfg")
`

	e := newGenimageExtractor()
	res, err := e.Extract(context.Background(), []byte(content))
	require.NoError(t, err)

	assert.Equal(t, "genimage", res.FileType)
	require.Len(t, res.Structures, 2)

	img := res.Structures[0]
	assert.Equal(t, KindImage, img.Kind)
	assert.Equal(t, "sdcard.img", img.Name)
	assert.Equal(t, 2, img.Line)

	props, ok := img.Attrs.Get("properties")
	require.True(t, ok)
	properties, ok := props.(Attrs)
	require.True(t, ok)
	size, _ := properties.Get("size")
	assert.Equal(t, "256M", size)

	inc := res.Structures[1]
	assert.Equal(t, KindInclude, inc.Kind)
	assert.Equal(t, "partitions.cfg", inc.Name)
	assert.Equal(t, 7, inc.Line)
}

func TestGenimageExtractor_QuotedImageName(t *testing.T) {
	t.Parallel()

	content := `image "boot.vfat" {
	size = "32M"
}
`

	e := newGenimageExtractor()
	res, err := e.Extract(context.Background(), []byte(content))
	require.NoError(t, err)

	require.Len(t, res.Structures, 1)
	assert.Equal(t, "boot.vfat", res.Structures[0].Name)

	props, _ := res.Structures[0].Attrs.Get("properties")
	size, _ := props.(Attrs).Get("size")
	assert.Equal(t, "32M", size)
}

func TestGenimageExtractor_SizeAttachesToLatestImage(t *testing.T) {
	t.Parallel()

	content := `image first.img {
}
image second.img {
	size = 8M
}
`

	e := newGenimageExtractor()
	res, err := e.Extract(context.Background(), []byte(content))
	require.NoError(t, err)

	require.Len(t, res.Structures, 2)

	firstProps, _ := res.Structures[0].Attrs.Get("properties")
	assert.Empty(t, firstProps.(Attrs))

	secondProps, _ := res.Structures[1].Attrs.Get("properties")
	size, _ := secondProps.(Attrs).Get("size")
	assert.Equal(t, "8M", size)
}
