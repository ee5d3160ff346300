package diff_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/rankguard/pkg/domain/diff"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
	"github.com/m-mizutani/rankguard/pkg/domain/types"
)

func change(kind model.ChangeKind, content string) model.ChangeEntry {
	return model.ChangeEntry{Type: string(kind), Content: content}
}

func TestExtract(t *testing.T) {
	doc := &model.DiffDocument{
		Files: []model.FileDiff{
			{
				Path: "csrankings-a.csv",
				Chunks: []model.Chunk{
					{Changes: []model.ChangeEntry{
						change(model.ChangeUnchanged, "name,affiliation,homepage,scholarid"),
						change(model.ChangeDeleted, "Old Row,Univ,https://old.example.com,NOSCHOLARPAGE"),
						change(model.ChangeAdded, "New Row,Univ,https://new.example.com,NOSCHOLARPAGE"),
					}},
					{Changes: []model.ChangeEntry{
						change(model.ChangeUnchanged, "context"),
						change(model.ChangeAdded, "Second,Univ,https://second.example.com,NOSCHOLARPAGE"),
					}},
				},
			},
			{
				Path: "country-info.csv",
			},
		},
	}

	changes, err := diff.Extract(doc)
	gt.NoError(t, err)

	gt.Equal(t, len(changes), 2)
	gt.Equal(t, changes["csrankings-a.csv"], []model.ChangeRecord{
		{Kind: model.ChangeDeleted, Content: "Old Row,Univ,https://old.example.com,NOSCHOLARPAGE"},
		{Kind: model.ChangeAdded, Content: "New Row,Univ,https://new.example.com,NOSCHOLARPAGE"},
		{Kind: model.ChangeAdded, Content: "Second,Univ,https://second.example.com,NOSCHOLARPAGE"},
	})

	t.Run("file without chunks is present with no records", func(t *testing.T) {
		records, ok := changes["country-info.csv"]
		gt.True(t, ok)
		gt.V(t, records).NotNil()
		gt.A(t, records).Length(0)
		gt.True(t, changes.Touched("country-info.csv"))
		gt.False(t, changes.Touched("old/rip.csv"))
	})

	t.Run("added lines", func(t *testing.T) {
		gt.Equal(t, changes.Added("csrankings-a.csv"), []string{
			"New Row,Univ,https://new.example.com,NOSCHOLARPAGE",
			"Second,Univ,https://second.example.com,NOSCHOLARPAGE",
		})
	})

	t.Run("changed lines", func(t *testing.T) {
		gt.A(t, diff.ChangedLines(changes, "csrankings-a.csv")).Length(3)
		gt.A(t, diff.ChangedLines(changes, "missing.csv")).Length(0)
	})

	t.Run("repeated calls yield the same result", func(t *testing.T) {
		again, err := diff.Extract(doc)
		gt.NoError(t, err)
		gt.Equal(t, again, changes)
	})
}

func TestExtract_RepeatedPathKeepsDocumentOrder(t *testing.T) {
	doc := &model.DiffDocument{
		Files: []model.FileDiff{
			{Path: "a.csv", Chunks: []model.Chunk{{Changes: []model.ChangeEntry{change(model.ChangeAdded, "1")}}}},
			{Path: "a.csv", Chunks: []model.Chunk{{Changes: []model.ChangeEntry{change(model.ChangeDeleted, "2")}}}},
		},
	}

	changes, err := diff.Extract(doc)
	gt.NoError(t, err)
	gt.Equal(t, diff.ChangedLines(changes, "a.csv"), []string{"1", "2"})
}

func TestExtract_UnknownType(t *testing.T) {
	doc := &model.DiffDocument{
		Files: []model.FileDiff{
			{Path: "a.csv", Chunks: []model.Chunk{{Changes: []model.ChangeEntry{
				{Type: "ModifiedLine", Content: "x"},
			}}}},
		},
	}

	changes, err := diff.Extract(doc)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagMalformedDiff))
	gt.V(t, changes).Nil()
}

func TestExtract_NilDocument(t *testing.T) {
	changes, err := diff.Extract(nil)
	gt.NoError(t, err)
	gt.Equal(t, len(changes), 0)
}
