package diff_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/rankguard/pkg/domain/diff"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
)

func TestFromPatch(t *testing.T) {
	patch := "@@ -10,3 +10,4 @@ name,affiliation,homepage,scholarid\n" +
		" Alice,Univ A,https://alice.example.com,NOSCHOLARPAGE\n" +
		"-Bob,Univ B,http://bob.example.com,NOSCHOLARPAGE\n" +
		"+Bob,Univ B,https://bob.example.com,NOSCHOLARPAGE\n" +
		"+Carol,Univ C,https://carol.example.com,abcdefgAAAAJ\n" +
		"@@ -40,2 +41,2 @@\n" +
		" Zed,Univ Z,https://zed.example.com,NOSCHOLARPAGE\n" +
		"+Dave,Univ D,https://dave.example.com,NOSCHOLARPAGE\n" +
		"\\ No newline at end of file"

	file := diff.FromPatch("csrankings-b.csv", patch)
	gt.Equal(t, file.Path, "csrankings-b.csv")
	gt.A(t, file.Chunks).Length(2)
	gt.A(t, file.Chunks[0].Changes).Length(4)
	gt.A(t, file.Chunks[1].Changes).Length(2)

	changes, err := diff.Extract(&model.DiffDocument{Files: []model.FileDiff{file}})
	gt.NoError(t, err)
	gt.Equal(t, changes.Added("csrankings-b.csv"), []string{
		"Bob,Univ B,https://bob.example.com,NOSCHOLARPAGE",
		"Carol,Univ C,https://carol.example.com,abcdefgAAAAJ",
		"Dave,Univ D,https://dave.example.com,NOSCHOLARPAGE",
	})
}

func TestFromPatch_Empty(t *testing.T) {
	file := diff.FromPatch("image.png", "")
	gt.A(t, file.Chunks).Length(0)

	changes, err := diff.Extract(&model.DiffDocument{Files: []model.FileDiff{file}})
	gt.NoError(t, err)
	gt.True(t, changes.Touched("image.png"))
}
