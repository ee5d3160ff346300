package interfaces

import (
	"context"
	"io"
)

// ExternalVerifier wraps the externally verified facts the validation needs.
// Both methods map every failure (timeout, network error, unexpected status,
// unparsable body) to their negative result instead of returning an error:
// an unreachable service reads as "not verified", never as a crash.
type ExternalVerifier interface {
	// Probe reports whether url answers a GET with a 2xx status
	Probe(ctx context.Context, url string) bool

	// CompletionCount returns the number of DBLP author entries matching
	// name, or 0 when there is none or the lookup failed
	CompletionCount(ctx context.Context, name string) int
}

// FileSource opens dataset files by repository-relative path
type FileSource interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
