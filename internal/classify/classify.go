package classify

import "strings"

// RepoType is a coarse tag selecting which structural grammar family
// applies to a file. "unknown" is a valid terminal result, not a failure.
type RepoType string

const (
	RepoHomeAssistant RepoType = "home-assistant"
	RepoBuildroot     RepoType = "buildroot"
	RepoUnknown       RepoType = "unknown"
)

// markers maps lowercase path substrings to repository types. Matching is
// pure substring containment against the full path; first hit wins in the
// order listed here.
var markers = []struct {
	substr string
	repo   RepoType
}{
	{"home-assistant", RepoHomeAssistant},
	{"hassio", RepoHomeAssistant},
	{"homeassistant", RepoHomeAssistant},
	{"buildroot", RepoBuildroot},
}

// Classifier maps file paths to repository types.
type Classifier struct{}

// NewClassifier creates a path-based repository classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Detect returns the repository type for a path. It never errors: paths
// without a known marker classify as RepoUnknown.
func (c *Classifier) Detect(path string) RepoType {
	lower := strings.ToLower(path)
	for _, m := range markers {
		if strings.Contains(lower, m.substr) {
			return m.repo
		}
	}
	return RepoUnknown
}
