package github

import (
	"context"
	"io"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/interfaces"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
)

// maxListPages bounds pagination; GitHub stops listing PR files after 3000
const maxListPages = 30

type client struct {
	githubClient *github.Client
}

// NewClient creates a new GitHub client with App authentication
func NewClient(appID, installationID int64, privateKey []byte) (interfaces.GitHubClient, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.V("app_id", appID),
			goerr.V("installation_id", installationID),
		)
	}

	return &client{
		githubClient: github.NewClient(&http.Client{Transport: itr}),
	}, nil
}

// NewClientWithToken creates a GitHub client authenticated by a personal or
// GitHub Actions token
func NewClientWithToken(token string) interfaces.GitHubClient {
	return &client{
		githubClient: github.NewClient(nil).WithAuthToken(token),
	}
}

// NewClientFromGitHub wraps an already configured go-github client
func NewClientFromGitHub(githubClient *github.Client) interfaces.GitHubClient {
	return &client{githubClient: githubClient}
}

// ListPullRequestFiles returns every file changed by the pull request
func (c *client) ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]*model.PullRequestFile, error) {
	var files []*model.PullRequestFile

	opts := &github.ListOptions{PerPage: 100}
	for page := 0; page < maxListPages; page++ {
		commitFiles, resp, err := c.githubClient.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list pull request files",
				goerr.V("owner", owner),
				goerr.V("repo", repo),
				goerr.V("number", number),
			)
		}

		for _, f := range commitFiles {
			files = append(files, &model.PullRequestFile{
				Filename: f.GetFilename(),
				Status:   f.GetStatus(),
				Patch:    f.GetPatch(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

// DownloadFile returns the content of path at ref
func (c *client) DownloadFile(ctx context.Context, owner, repo, ref, path string) (io.ReadCloser, error) {
	rc, _, err := c.githubClient.Repositories.DownloadContents(ctx, owner, repo, path, &github.RepositoryContentGetOptions{
		Ref: ref,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download file",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("ref", ref),
			goerr.V("path", path),
		)
	}

	return rc, nil
}

// CreateComment creates a comment on a pull request or issue
func (c *client) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	_, _, err := c.githubClient.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create comment",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("number", number),
		)
	}
	return nil
}
