package diff

import (
	"strings"

	"github.com/m-mizutani/rankguard/pkg/domain/model"
)

// FromPatch classifies the lines of a unified patch, as returned by the
// GitHub pull request files API, into the diff document shape. Each "@@"
// header opens a new chunk. Only the line prefix is interpreted.
func FromPatch(path, patch string) model.FileDiff {
	file := model.FileDiff{Path: path}
	if patch == "" {
		return file
	}

	var current *model.Chunk
	for _, line := range strings.Split(patch, "\n") {
		if strings.HasPrefix(line, "@@") {
			file.Chunks = append(file.Chunks, model.Chunk{})
			current = &file.Chunks[len(file.Chunks)-1]
			continue
		}
		if current == nil || line == "" || strings.HasPrefix(line, `\`) {
			continue
		}

		var kind model.ChangeKind
		switch line[0] {
		case '+':
			kind = model.ChangeAdded
		case '-':
			kind = model.ChangeDeleted
		case ' ':
			kind = model.ChangeUnchanged
		default:
			continue
		}

		current.Changes = append(current.Changes, model.ChangeEntry{
			Type:    string(kind),
			Content: strings.TrimSuffix(line[1:], "\r"),
		})
	}

	return file
}
