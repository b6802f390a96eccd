package extract

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/buildsight/buildsight/internal/classify"
)

// ErrUnsupportedType is returned when a repository's extractor set has no
// grammar for a file's suffix. The message is part of the emission contract:
// error records carry it verbatim.
var ErrUnsupportedType = errors.New("Unsupported file type")

// Extractor consumes raw file content and produces a ParseResult. Extractors
// are stateless across calls: compiled pattern tables are built once at
// construction and read-only afterwards, so one instance is safe to share.
type Extractor interface {
	Extract(ctx context.Context, content []byte) (*ParseResult, error)
}

// Providers carries shared collaborator handles through extractor
// construction. The current grammars do not consult them; they exist so
// future extractors can enrich results with storage or model lookups
// without changing the registry shape.
type Providers struct {
	Database any
	LLM      any
}

// Set is one repository's family of extractors, keyed by file suffix. The
// collaborator handles it was constructed with are kept for extractors that
// enrich results with storage or model lookups.
type Set struct {
	providers Providers
	bySuffix  map[string]Extractor
}

// ForSuffix returns the extractor for a suffix such as ".mk", or false when
// the suffix has no grammar in this set.
func (s *Set) ForSuffix(suffix string) (Extractor, bool) {
	e, ok := s.bySuffix[strings.ToLower(suffix)]
	return e, ok
}

// Extract dispatches content to the extractor matching the path's suffix.
// An unrecognized suffix yields ErrUnsupportedType, never a panic.
func (s *Set) Extract(ctx context.Context, path string, content []byte) (*ParseResult, error) {
	e, ok := s.ForSuffix(filepath.Ext(path))
	if !ok {
		return nil, ErrUnsupportedType
	}
	return e.Extract(ctx, content)
}

// newBuildTreeSet constructs the extractor family for embedded-OS build
// trees. One instance covers all six grammars; pattern tables compile here
// and are immutable afterwards.
func newBuildTreeSet(p Providers) *Set {
	return &Set{
		providers: p,
		bySuffix: map[string]Extractor{
			".sh":  newShellExtractor(),
			".mk":  newMakefileExtractor(),
			".py":  newPythonExtractor(),
			".ush": newUBootExtractor(),
			".in":  newKconfigExtractor(),
			".cfg": newGenimageExtractor(),
		},
	}
}

// Registry is the closed repository-tag to extractor-set table, built once
// at startup. Lookup of an unmapped tag reports "none available" rather
// than raising, so callers can fall back to plain-text extraction.
type Registry struct {
	sets map[classify.RepoType]*Set
}

// NewRegistry builds the dispatch table. Home Assistant OS and Buildroot
// trees share one grammar family: HAOS's build system is Buildroot-derived
// and uses the same file formats.
func NewRegistry(p Providers) *Registry {
	buildTree := newBuildTreeSet(p)
	return &Registry{
		sets: map[classify.RepoType]*Set{
			classify.RepoHomeAssistant: buildTree,
			classify.RepoBuildroot:     buildTree,
		},
	}
}

// ForRepo returns the extractor set for a repository tag, or false when no
// set is registered for it.
func (r *Registry) ForRepo(repo classify.RepoType) (*Set, bool) {
	s, ok := r.sets[repo]
	return s, ok
}
