package extract

import (
	"context"
	"regexp"
	"strings"
)

// ubootExtractor scans U-Boot boot scripts (.ush). It recognizes setenv
// assignments, the bootz/booti commands, and load commands with their
// device, address, and filename operands.
type ubootExtractor struct {
	patterns map[string]*regexp.Regexp
}

func newUBootExtractor() *ubootExtractor {
	return &ubootExtractor{
		// partition and conditional are in the grammar table but not
		// dispatched into structures.
		patterns: map[string]*regexp.Regexp{
			"env_var":     regexp.MustCompile(`setenv\s+(\w+)\s+"?([^"]+)"?`),
			"boot_cmd":    regexp.MustCompile(`^(boot[zi])\s+(.*)$`),
			"load_cmd":    regexp.MustCompile(`(fat)?load\s+(\w+)\s+(\$\{.*?\})\s+(\$\{.*?\})\s+(.*)`),
			"partition":   regexp.MustCompile(`part\s+(start|number)\s+(\$\{.*?\})\s+(\$\{.*?\})\s+(\w+)`),
			"conditional": regexp.MustCompile(`if\s+([^;]+);\s*then`),
		},
	}
}

func (e *ubootExtractor) Extract(ctx context.Context, content []byte) (*ParseResult, error) {
	res := &ParseResult{
		FileType:      "uboot_script",
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

		if m := e.patterns["env_var"].FindStringSubmatch(line); m != nil {
			res.Structures = append(res.Structures, Structure{
				Kind: KindUBootEnv,
				Name: m[1],
				Line: num,
				Attrs: Attrs{
					{Key: "value", Value: m[2]},
					{Key: "line", Value: num},
				},
			})
		} else if m := e.patterns["boot_cmd"].FindStringSubmatch(line); m != nil {
			res.Structures = append(res.Structures, Structure{
				Kind: KindBootCommand,
				Name: m[1],
				Line: num,
				Attrs: Attrs{
					{Key: "parameters", Value: m[2]},
					{Key: "line", Value: num},
				},
			})
		} else if m := e.patterns["load_cmd"].FindStringSubmatch(line); m != nil {
			// The name is the optional "fat" prefix when present, else
			// "load". The prefix alone is the historical wire name for the
			// fatload variant.
			name := m[1]
			if name == "" {
				name = "load"
			}
			res.Structures = append(res.Structures, Structure{
				Kind: KindLoadCommand,
				Name: name,
				Line: num,
				Attrs: Attrs{
					{Key: "device", Value: m[2]},
					{Key: "address", Value: m[3]},
					{Key: "file", Value: m[5]},
					{Key: "line", Value: num},
				},
			})
		}
	}

	return res, nil
}
