package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/rankguard/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// ListPullRequestFiles returns every file changed by the pull request
	ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]*model.PullRequestFile, error)

	// DownloadFile returns the content of path at ref
	DownloadFile(ctx context.Context, owner, repo, ref, path string) (io.ReadCloser, error)

	// CreateComment creates a comment on a pull request or issue
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
}
