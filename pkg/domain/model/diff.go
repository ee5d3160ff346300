package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/types"
)

// ChangeKind classifies one line inside a diff chunk
type ChangeKind string

const (
	ChangeAdded     ChangeKind = "AddedLine"
	ChangeDeleted   ChangeKind = "DeletedLine"
	ChangeUnchanged ChangeKind = "UnchangedLine"
)

// ParseChangeKind converts a wire tag into a ChangeKind
func ParseChangeKind(s string) (ChangeKind, error) {
	switch kind := ChangeKind(s); kind {
	case ChangeAdded, ChangeDeleted, ChangeUnchanged:
		return kind, nil
	default:
		return "", goerr.New("unknown change type",
			goerr.T(types.ErrTagMalformedDiff),
			goerr.V("type", s),
		)
	}
}

// DiffDocument is the structured representation of a set of file changes
type DiffDocument struct {
	Files []FileDiff `json:"files"`
}

// UnmarshalJSON accepts both {"files": [...]} and a bare array of files
func (d *DiffDocument) UnmarshalJSON(data []byte) error {
	var files []FileDiff
	if err := json.Unmarshal(data, &files); err == nil {
		d.Files = files
		return nil
	}

	type alias DiffDocument
	var doc alias
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*d = DiffDocument(doc)
	return nil
}

// FileDiff holds the chunks of a single file
type FileDiff struct {
	Path   string  `json:"path"`
	Chunks []Chunk `json:"chunks"`
}

// Chunk is an ordered run of change entries
type Chunk struct {
	Changes []ChangeEntry `json:"changes"`
}

// ChangeEntry is one line of a chunk as it appears on the wire
type ChangeEntry struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ChangeRecord is a classified line change
type ChangeRecord struct {
	Kind    ChangeKind
	Content string
}

// FileChanges maps a file path to its ordered line changes. A path present
// with an empty slice was touched without line changes.
type FileChanges map[string][]ChangeRecord

// Paths returns the set of touched paths
func (fc FileChanges) Paths() map[string]struct{} {
	paths := make(map[string]struct{}, len(fc))
	for p := range fc {
		paths[p] = struct{}{}
	}
	return paths
}

// Touched reports whether path appears in the change set
func (fc FileChanges) Touched(path string) bool {
	_, ok := fc[path]
	return ok
}

// Added returns the content of added lines for path in order
func (fc FileChanges) Added(path string) []string {
	var lines []string
	for _, rec := range fc[path] {
		if rec.Kind == ChangeAdded {
			lines = append(lines, rec.Content)
		}
	}
	return lines
}
