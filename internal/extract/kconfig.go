package extract

import (
	"context"
	"regexp"
	"strings"
)

// kconfigExtractor scans Kconfig-style option descriptors (Config.in). The
// document is split into option blocks: a block opens at an unindented
// "config NAME" line and runs until the next unindented line. Within a
// block it detects a boolean prompt, a single "depends on" edge, and a
// help-text block.
type kconfigExtractor struct {
	header  *regexp.Regexp
	boolDef *regexp.Regexp
	depends *regexp.Regexp
	helpDef *regexp.Regexp
}

func newKconfigExtractor() *kconfigExtractor {
	return &kconfigExtractor{
		header:  regexp.MustCompile(`^config\s+(\w+)\s*$`),
		boolDef: regexp.MustCompile(`bool\s+"([^"]+)"`),
		depends: regexp.MustCompile(`depends\s+on\s+(.+)$`),
		helpDef: regexp.MustCompile(`^\s*help\s*$`),
	}
}

// block is one option block: its name, header line, and body lines.
type kconfigBlock struct {
	name string
	line int
	body []string
}

func (e *kconfigExtractor) Extract(ctx context.Context, content []byte) (*ParseResult, error) {
	res := &ParseResult{
		FileType:      "config_in",
		Structures:    []Structure{},
		Dependencies:  []Dependency{},
		Relationships: []any{},
	}

	for _, blk := range e.splitBlocks(string(content)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		details := Attrs{{Key: "type", Value: "unknown"}}

		body := strings.Join(blk.body, "\n")
		if m := e.boolDef.FindStringSubmatch(body); m != nil {
			details.Set("type", "bool")
			details.Set("prompt", m[1])
		}

		for i, line := range blk.body {
			if m := e.depends.FindStringSubmatch(line); m != nil {
				res.Dependencies = append(res.Dependencies, Dependency{
					Kind: DepDepends,
					From: blk.name,
					To:   strings.TrimSpace(m[1]),
					Line: blk.line + i + 1,
				})
				break // one depends edge per block
			}
		}

		if help := e.helpText(blk.body); help != "" {
			details.Set("help", help)
		}

		res.Structures = append(res.Structures, Structure{
			Kind:  KindConfigOption,
			Name:  blk.name,
			Line:  blk.line,
			Attrs: details,
		})
	}

	return res, nil
}

// splitBlocks scans the document once and returns the option blocks in
// document order. A block's body ends at the next unindented line, which is
// also where the next block may begin.
func (e *kconfigExtractor) splitBlocks(content string) []kconfigBlock {
	var blocks []kconfigBlock
	var current *kconfigBlock

	for lineNum, line := range strings.Split(content, "\n") {
		if m := e.header.FindStringSubmatch(strings.TrimRight(line, " \t")); m != nil {
			blocks = append(blocks, kconfigBlock{name: m[1], line: lineNum + 1})
			current = &blocks[len(blocks)-1]
			continue
		}

		unindented := len(line) > 0 && line[0] != ' ' && line[0] != '\t'
		if unindented {
			current = nil
			continue
		}
		if current != nil {
			current.body = append(current.body, line)
		}
	}

	return blocks
}

// helpText returns the trimmed help block: the indented lines following a
// bare "help" line, up to the end of the option body.
func (e *kconfigExtractor) helpText(body []string) string {
	for i, line := range body {
		if e.helpDef.MatchString(line) {
			var sb strings.Builder
			for _, helpLine := range body[i+1:] {
				sb.WriteString(helpLine)
				sb.WriteString("\n")
			}
			return strings.TrimSpace(sb.String())
		}
	}
	return ""
}
