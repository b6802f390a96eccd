package extract

import (
	"context"
	"regexp"
	"strings"
)

// genimageExtractor scans genimage disk-layout configs (.cfg). An image
// definition opens a "current image" context; later size lines attach to
// the open image's property map through a direct index into the result,
// and include lines become independent structures.
type genimageExtractor struct {
	imageDef *regexp.Regexp
	sizeDef  *regexp.Regexp
	include  *regexp.Regexp
}

func newGenimageExtractor() *genimageExtractor {
	return &genimageExtractor{
		imageDef: regexp.MustCompile(`^image\s+(["'].*?["']|\S+)\s*\{`),
		sizeDef:  regexp.MustCompile(`^\s*size\s*=\s*(["'].*?["']|\S+)`),
		include:  regexp.MustCompile(`^\s*include\(["'](.*?)["']\)`),
	}
}

func (e *genimageExtractor) Extract(ctx context.Context, content []byte) (*ParseResult, error) {
	res := &ParseResult{
		FileType:      "genimage",
		Structures:    []Structure{},
		Dependencies:  []Dependency{},
		Relationships: []any{},
	}

	// Index of the currently open image in res.Structures, -1 when none.
	currentImage := -1

	for lineNum, line := range strings.Split(string(content), "\n") {
		if err := checkCancel(ctx, lineNum); err != nil {
			return nil, err
		}
		num := lineNum + 1

		if m := e.imageDef.FindStringSubmatch(line); m != nil {
			res.Structures = append(res.Structures, Structure{
				Kind: KindImage,
				Name: strings.Trim(m[1], `"'`),
				Line: num,
				Attrs: Attrs{
					{Key: "line", Value: num},
					{Key: "properties", Value: Attrs{}},
				},
			})
			currentImage = len(res.Structures) - 1
		} else if m := e.sizeDef.FindStringSubmatch(line); currentImage >= 0 && m != nil {
			// Both conditions are explicit: an image must be open AND the
			// line must match the size pattern.
			img := &res.Structures[currentImage]
			props, _ := img.Attrs.Get("properties")
			p, _ := props.(Attrs)
			p.Set("size", strings.Trim(m[1], `"'`))
			img.Attrs.Set("properties", p)
		} else if m := e.include.FindStringSubmatch(line); m != nil {
			res.Structures = append(res.Structures, Structure{
				Kind: KindInclude,
				Name: m[1],
				Line: num,
				Attrs: Attrs{
					{Key: "line", Value: num},
				},
			})
		}
	}

	return res, nil
}
