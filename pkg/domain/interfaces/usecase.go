package interfaces

import (
	"context"

	"github.com/m-mizutani/rankguard/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// ValidationUseCase evaluates the check battery against a commit
type ValidationUseCase interface {
	// Validate runs every check and returns the verdict. changes may be nil;
	// when set, only modified files present in changes are format-checked.
	// An error is returned only for malformed input.
	Validate(ctx context.Context, commit *model.Commit, changes model.FileChanges) (*model.Verdict, error)

	// ValidateChange runs only the commit-level checks. It is used when a
	// change adds no faculty entry.
	ValidateChange(ctx context.Context, change *model.Change, changes model.FileChanges) (*model.Verdict, error)
}

// PullRequestUseCase validates the faculty entries added by a pull request
type PullRequestUseCase interface {
	ValidatePullRequest(ctx context.Context, pr *model.PullRequest) (*model.Report, error)
}
