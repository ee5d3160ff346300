package usecase

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/diff"
	"github.com/m-mizutani/rankguard/pkg/domain/interfaces"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
)

type pullRequestUseCase struct {
	githubClient   interfaces.GitHubClient
	verifier       interfaces.ExternalVerifier
	validationOpts []ValidationOption
	comment        bool
}

// PullRequestOption is a functional option for the pull request use case
type PullRequestOption func(*pullRequestUseCase)

// WithComment enables posting the report as a pull request comment
func WithComment(enabled bool) PullRequestOption {
	return func(uc *pullRequestUseCase) {
		uc.comment = enabled
	}
}

// WithValidationOptions passes options to the validation of every entry
func WithValidationOptions(opts ...ValidationOption) PullRequestOption {
	return func(uc *pullRequestUseCase) {
		uc.validationOpts = append(uc.validationOpts, opts...)
	}
}

// NewPullRequest creates a new PullRequestUseCase instance
func NewPullRequest(
	githubClient interfaces.GitHubClient,
	verifier interfaces.ExternalVerifier,
	opts ...PullRequestOption,
) interfaces.PullRequestUseCase {
	uc := &pullRequestUseCase{
		githubClient: githubClient,
		verifier:     verifier,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ValidatePullRequest validates every faculty entry added by the pull request.
// Commit-level fields (account, title, modified files) come from the pull
// request; entry fields come from the added CSV rows.
func (uc *pullRequestUseCase) ValidatePullRequest(ctx context.Context, pr *model.PullRequest) (*model.Report, error) {
	logger := ctxlog.From(ctx).With(
		"owner", pr.Owner,
		"repo", pr.Repo,
		"number", pr.Number,
	)
	ctx = ctxlog.With(ctx, logger)

	logger.Info("Validating pull request", "title", pr.Title, "author", pr.Author, "head_sha", pr.HeadSHA)

	files, err := uc.githubClient.ListPullRequestFiles(ctx, pr.Owner, pr.Repo, pr.Number)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list pull request files")
	}

	doc := &model.DiffDocument{}
	modified := make([]string, 0, len(files))
	removed := make(map[string]bool)
	for _, f := range files {
		modified = append(modified, f.Filename)
		doc.Files = append(doc.Files, diff.FromPatch(f.Filename, f.Patch))
		if f.Status == "removed" {
			removed[f.Filename] = true
		}
	}

	changes, err := diff.Extract(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract pull request changes")
	}

	// Removed files cannot be read at the head commit
	readable := make(model.FileChanges, len(changes))
	for path, records := range changes {
		if !removed[path] {
			readable[path] = records
		}
	}

	source := newCachedFiles(&remoteFiles{client: uc.githubClient, owner: pr.Owner, repo: pr.Repo, ref: pr.HeadSHA})
	validation := NewValidation(uc.verifier, source, uc.validationOpts...)

	change := &model.Change{
		Author:        model.Author{Account: pr.Author},
		Title:         pr.Title,
		ModifiedFiles: modified,
	}
	report, err := ValidateEntries(ctx, validation, change, readable)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to validate pull request")
	}

	logger.Info("Pull request validation completed", "valid", report.Valid(), "entries", len(report.Entries))

	if uc.comment && needsComment(report) {
		if err := uc.githubClient.CreateComment(ctx, pr.Owner, pr.Repo, pr.Number, FormatReport(report)); err != nil {
			logger.Error("Failed to post comment", "error", err)
			return report, goerr.Wrap(err, "failed to post comment")
		}
		logger.Info("Successfully posted comment to PR")
	}

	return report, nil
}

// needsComment is false for a change that adds no entry and passes, such as
// a documentation fix
func needsComment(report *model.Report) bool {
	return len(report.Entries) > 0 || !report.Valid()
}

// remoteFiles reads dataset files from the pull request head commit
type remoteFiles struct {
	client interfaces.GitHubClient
	owner  string
	repo   string
	ref    string
}

func (f *remoteFiles) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return f.client.DownloadFile(ctx, f.owner, f.repo, f.ref, path)
}

// cachedFiles reads each path from the underlying source once. Every entry
// of a pull request checks the same files at the same commit.
type cachedFiles struct {
	source interfaces.FileSource

	mu    sync.Mutex
	files map[string]cachedFile
}

type cachedFile struct {
	data []byte
	err  error
}

func newCachedFiles(source interfaces.FileSource) *cachedFiles {
	return &cachedFiles{source: source, files: make(map[string]cachedFile)}
}

func (c *cachedFiles) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.files[path]
	if !ok {
		f.data, f.err = c.read(ctx, path)
		c.files[path] = f
	}
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func (c *cachedFiles) read(ctx context.Context, path string) ([]byte, error) {
	r, err := c.source.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file", goerr.V("path", path))
	}
	return data, nil
}
