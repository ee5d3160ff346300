// Package diff turns structured diff documents into per-file line changes.
package diff

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
)

// Extract maps each file path to its added and deleted lines in document
// order. Unchanged lines are dropped. A file without chunks maps to an empty
// slice so that it stays distinguishable from a file that is not mentioned.
func Extract(doc *model.DiffDocument) (model.FileChanges, error) {
	changes := make(model.FileChanges)
	if doc == nil {
		return changes, nil
	}

	for _, file := range doc.Files {
		records, ok := changes[file.Path]
		if !ok {
			records = []model.ChangeRecord{}
		}

		for ci, chunk := range file.Chunks {
			for li, entry := range chunk.Changes {
				kind, err := model.ParseChangeKind(entry.Type)
				if err != nil {
					return nil, goerr.Wrap(err, "invalid change entry",
						goerr.V("path", file.Path),
						goerr.V("chunk", ci),
						goerr.V("change", li),
					)
				}
				if kind == model.ChangeUnchanged {
					continue
				}
				records = append(records, model.ChangeRecord{Kind: kind, Content: entry.Content})
			}
		}

		changes[file.Path] = records
	}

	return changes, nil
}

// ChangedLines returns the content of the added and deleted lines of path
func ChangedLines(changes model.FileChanges, path string) []string {
	records := changes[path]
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, rec.Content)
	}
	return lines
}
