package github

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/interfaces"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
	"github.com/m-mizutani/rankguard/pkg/domain/types"
)

// EventProcessor processes GitHub events
type EventProcessor struct {
	pullRequestUC interfaces.PullRequestUseCase
}

// NewEventProcessor creates a new GitHub event processor
func NewEventProcessor(pullRequestUC interfaces.PullRequestUseCase) *EventProcessor {
	return &EventProcessor{
		pullRequestUC: pullRequestUC,
	}
}

// ProcessEvent processes a GitHub event. The returned report is nil when
// the event does not trigger a validation.
func (p *EventProcessor) ProcessEvent(ctx context.Context, eventType string, payload any) (*model.Report, error) {
	logger := ctxlog.From(ctx)

	switch eventType {
	case string(model.EventTypePullRequest):
		return p.processPullRequestEvent(ctx, payload)
	default:
		logger.Info("Ignoring unsupported event type", "event_type", eventType)
		return nil, nil
	}
}

func (p *EventProcessor) processPullRequestEvent(ctx context.Context, payload any) (*model.Report, error) {
	logger := ctxlog.From(ctx)

	event, ok := payload.(*github.PullRequestEvent)
	if !ok {
		logger.Warn("Invalid pull request event payload")
		return nil, nil
	}

	if !model.IsValidatedAction(event.GetAction()) {
		logger.Info("Ignoring pull request event with non-validated action",
			"action", event.GetAction(),
		)
		return nil, nil
	}

	pr, err := PullRequestFromEvent(event)
	if err != nil {
		logger.Error("Failed to extract pull request info", "error", err)
		return nil, err
	}

	logger.Info("Processing pull request event",
		"owner", pr.Owner,
		"repo", pr.Repo,
		"number", pr.Number,
		"head_sha", pr.HeadSHA,
	)

	report, err := p.pullRequestUC.ValidatePullRequest(ctx, pr)
	if err != nil {
		return report, goerr.Wrap(err, "failed to validate pull request",
			goerr.V("owner", pr.Owner),
			goerr.V("repo", pr.Repo),
			goerr.V("number", pr.Number),
		)
	}

	logger.Info("Successfully processed pull request",
		"owner", pr.Owner,
		"repo", pr.Repo,
		"number", pr.Number,
		"entries", len(report.Entries),
		"valid", report.Valid(),
	)

	return report, nil
}

// PullRequestFromEvent extracts the pull request information from a GitHub
// pull_request event
func PullRequestFromEvent(event *github.PullRequestEvent) (*model.PullRequest, error) {
	if event.GetRepo() == nil {
		return nil, goerr.New("missing repository information in pull request event", goerr.T(types.ErrTagMalformedInput))
	}
	if event.GetPullRequest() == nil {
		return nil, goerr.New("missing pull request information in pull request event", goerr.T(types.ErrTagMalformedInput))
	}

	// Get*() helpers are nil-safe
	pr := &model.PullRequest{
		Owner:   event.GetRepo().GetOwner().GetLogin(),
		Repo:    event.GetRepo().GetName(),
		Number:  event.GetPullRequest().GetNumber(),
		Title:   event.GetPullRequest().GetTitle(),
		Author:  event.GetPullRequest().GetUser().GetLogin(),
		HeadSHA: event.GetPullRequest().GetHead().GetSHA(),
	}
	if pr.Number == 0 {
		pr.Number = event.GetNumber()
	}

	if pr.Owner == "" || pr.Repo == "" || pr.Number == 0 || pr.HeadSHA == "" {
		return nil, goerr.New("missing required fields in pull request event",
			goerr.T(types.ErrTagMalformedInput),
			goerr.V("owner", pr.Owner),
			goerr.V("repo", pr.Repo),
			goerr.V("number", pr.Number),
			goerr.V("head_sha", pr.HeadSHA),
		)
	}

	return pr, nil
}
