// Package rule holds the pure predicates evaluated against a commit.
package rule

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const (
	// AnonymousPrefix marks accounts that cannot be held responsible for a change
	AnonymousPrefix = "anonymous"

	// BoilerplateTitlePrefix is the default title of web-editor commits
	BoilerplateTitlePrefix = "Update csrankings-"

	// NoScholarPage is the sentinel for faculty without a Google Scholar profile
	NoScholarPage = "NOSCHOLARPAGE"
)

// DefaultAllowedFiles are the dataset files a contribution may touch
var DefaultAllowedFiles = []string{
	`csrankings-[a-z]\.csv`,
	`country-info\.csv`,
	`old/industry\.csv`,
	`old/other\.csv`,
	`old/emeritus\.csv`,
	`old/rip\.csv`,
}

var scholarIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{7}AAAAJ$`)

// ValidAccount reports whether account is not anonymous
func ValidAccount(account string) bool {
	return !strings.HasPrefix(account, AnonymousPrefix)
}

// ReasonableTitle reports whether title is more than the web editor's default
func ReasonableTitle(title string) bool {
	return !strings.HasPrefix(title, BoilerplateTitlePrefix)
}

// ValidScholarID reports whether id is the sentinel or a Google Scholar user ID
func ValidScholarID(id string) bool {
	if id == NoScholarPage {
		return true
	}
	return scholarIDPattern.MatchString(id)
}

// IsCSV reports whether path names a CSV file
func IsCSV(path string) bool {
	return strings.HasSuffix(path, ".csv")
}

// FileScope matches modified paths against the allowed dataset files
type FileScope struct {
	allowed []*regexp.Regexp
}

// NewFileScope compiles the allowed path patterns. Each pattern must match
// the whole path.
func NewFileScope(patterns []string) (*FileScope, error) {
	scope := &FileScope{}
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid allowed file pattern", goerr.V("pattern", p))
		}
		scope.allowed = append(scope.allowed, re)
	}
	return scope, nil
}

// Violations returns the CSV paths that match no allowed pattern, in input
// order. Non-CSV paths are not checked.
func (s *FileScope) Violations(paths []string) []string {
	var violations []string
	for _, path := range paths {
		if !IsCSV(path) {
			continue
		}
		if !s.allows(path) {
			violations = append(violations, path)
		}
	}
	return violations
}

func (s *FileScope) allows(path string) bool {
	for _, re := range s.allowed {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// EligibleFaculty is the extension point for inclusion criteria keyed on the
// homepage. Every homepage is currently eligible.
func EligibleFaculty(homepage string) bool {
	return true
}
