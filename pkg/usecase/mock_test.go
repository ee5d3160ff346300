package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/m-mizutani/rankguard/pkg/domain/model"
)

// mockVerifier is a mock implementation of ExternalVerifier
type mockVerifier struct {
	probeFunc           func(ctx context.Context, url string) bool
	completionCountFunc func(ctx context.Context, name string) int

	mu       sync.Mutex
	probed   []string
	lookedUp []string
}

func (m *mockVerifier) Probe(ctx context.Context, url string) bool {
	m.mu.Lock()
	m.probed = append(m.probed, url)
	m.mu.Unlock()

	if m.probeFunc != nil {
		return m.probeFunc(ctx, url)
	}
	return true
}

func (m *mockVerifier) CompletionCount(ctx context.Context, name string) int {
	m.mu.Lock()
	m.lookedUp = append(m.lookedUp, name)
	m.mu.Unlock()

	if m.completionCountFunc != nil {
		return m.completionCountFunc(ctx, name)
	}
	return 1
}

// memoryFiles is an in-memory FileSource that tracks open handles
type memoryFiles struct {
	files map[string]string

	mu     sync.Mutex
	opened []string
	open   int
}

func newMemoryFiles(files map[string]string) *memoryFiles {
	return &memoryFiles{files: files}
}

func (m *memoryFiles) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, errors.New("file not found: " + path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = append(m.opened, path)
	m.open++
	return &trackedReader{Reader: bytes.NewReader([]byte(content)), owner: m}, nil
}

func (m *memoryFiles) openHandles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

type trackedReader struct {
	io.Reader
	owner *memoryFiles
}

func (r *trackedReader) Close() error {
	r.owner.mu.Lock()
	defer r.owner.mu.Unlock()
	r.owner.open--
	return nil
}

const cleanCSV = "name,affiliation,homepage,scholarid\n" +
	"Emery D. Berger,University of Massachusetts Amherst,https://emeryberger.com,dbfeR3YAAAAJ\n"

// goodCommit is a contribution that passes every check
func goodCommit() *model.Commit {
	return &model.Commit{
		Author:          model.Author{Account: "john_doe"},
		Title:           "Add Emery to csrankings-a.csv",
		ModifiedFiles:   []string{"csrankings-a.csv"},
		Homepage:        "https://www.emeryberger.com",
		GoogleScholarID: "dbfeR3YAAAAJ",
		Name:            "Emery D. Berger",
	}
}

// badCommit is a contribution several checks reject
func badCommit() *model.Commit {
	return &model.Commit{
		Author:          model.Author{Account: "john_doe"},
		Title:           "Update csrankings-a.csv",
		ModifiedFiles:   []string{"csrankings-a.csv"},
		Homepage:        "https://www.emerybergen.com",
		GoogleScholarID: "dbfeR3YAAAAJ",
		Name:            "Wei Zhang",
	}
}

// mockGitHubClient is a mock implementation of GitHubClient
type mockGitHubClient struct {
	listFunc     func(ctx context.Context, owner, repo string, number int) ([]*model.PullRequestFile, error)
	downloadFunc func(ctx context.Context, owner, repo, ref, path string) (io.ReadCloser, error)
	commentFunc  func(ctx context.Context, owner, repo string, number int, body string) error

	mu         sync.Mutex
	downloaded []string
	comments   []string
}

func (m *mockGitHubClient) ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]*model.PullRequestFile, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, owner, repo, number)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockGitHubClient) DownloadFile(ctx context.Context, owner, repo, ref, path string) (io.ReadCloser, error) {
	m.mu.Lock()
	m.downloaded = append(m.downloaded, ref+":"+path)
	m.mu.Unlock()

	if m.downloadFunc != nil {
		return m.downloadFunc(ctx, owner, repo, ref, path)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockGitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	m.mu.Lock()
	m.comments = append(m.comments, body)
	m.mu.Unlock()

	if m.commentFunc != nil {
		return m.commentFunc(ctx, owner, repo, number, body)
	}
	return nil
}

// serveFiles answers DownloadFile from an in-memory map
func serveFiles(files map[string]string) func(ctx context.Context, owner, repo, ref, path string) (io.ReadCloser, error) {
	return func(ctx context.Context, owner, repo, ref, path string) (io.ReadCloser, error) {
		content, ok := files[path]
		if !ok {
			return nil, errors.New("file not found: " + path)
		}
		return io.NopCloser(bytes.NewReader([]byte(content))), nil
	}
}
