package extract

import (
	"context"
	"regexp"
	"strings"
)

// makefileExtractor scans Buildroot-style package descriptors (.mk). It
// recognizes PKG_VERSION assignments, whitespace-separated dependency
// lists, and $(eval $(...)) macro invocations.
type makefileExtractor struct {
	patterns map[string]*regexp.Regexp
}

func newMakefileExtractor() *makefileExtractor {
	return &makefileExtractor{
		// package_site, package_license, and variable are in the grammar
		// table but not dispatched into structures.
		patterns: map[string]*regexp.Regexp{
			"package_def":     regexp.MustCompile(`^(\w+)_VERSION\s*=\s*(.*)$`),
			"package_site":    regexp.MustCompile(`^(\w+)_SITE\s*=\s*(.*)$`),
			"package_license": regexp.MustCompile(`^(\w+)_LICENSE\s*=\s*(.*)$`),
			"package_deps":    regexp.MustCompile(`^(\w+)_DEPENDENCIES\s*=\s*(.*)$`),
			"eval":            regexp.MustCompile(`\$\(eval\s+\$\((.*?)\)\)`),
			"variable":        regexp.MustCompile(`^([A-Z_][A-Z0-9_]*)\s*[?:]?=\s*(.*?)$`),
		},
	}
}

func (e *makefileExtractor) Extract(ctx context.Context, content []byte) (*ParseResult, error) {
	res := &ParseResult{
		FileType:      "makefile",
		Structures:    []Structure{},
		Dependencies:  []Dependency{},
		Relationships: []any{},
	}

	for lineNum, raw := range strings.Split(string(content), "\n") {
		if err := checkCancel(ctx, lineNum); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(raw)
		num := lineNum + 1

		if m := e.patterns["package_def"].FindStringSubmatch(line); m != nil {
			res.Structures = append(res.Structures, Structure{
				Kind: KindPackageVersion,
				Name: m[1],
				Line: num,
				Attrs: Attrs{
					{Key: "version", Value: m[2]},
					{Key: "line", Value: num},
				},
			})
		} else if m := e.patterns["package_deps"].FindStringSubmatch(line); m != nil {
			// One edge per whitespace-separated token.
			for _, dep := range strings.Fields(m[2]) {
				res.Dependencies = append(res.Dependencies, Dependency{
					Kind: DepPackage,
					From: m[1],
					To:   dep,
					Line: num,
				})
			}
		} else if m := e.patterns["eval"].FindStringSubmatch(line); m != nil {
			res.Structures = append(res.Structures, Structure{
				Kind: KindEval,
				Name: m[1],
				Line: num,
				Attrs: Attrs{
					{Key: "line", Value: num},
					{Key: "full_eval", Value: m[0]},
				},
			})
		}
	}

	return res, nil
}
