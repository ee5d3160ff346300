package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/rankguard/pkg/domain/interfaces"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
	"github.com/m-mizutani/rankguard/pkg/utils/async"
)

type webhookUseCase struct {
	pullRequestUC interfaces.PullRequestUseCase
}

// NewWebhook creates a new instance of WebhookUseCase. A nil pullRequestUC
// only logs events.
func NewWebhook(pullRequestUC interfaces.PullRequestUseCase) *webhookUseCase {
	return &webhookUseCase{pullRequestUC: pullRequestUC}
}

// ProcessEvent processes a webhook event. Validation runs asynchronously so
// that GitHub gets its response within the delivery timeout.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
		"supported", event.IsSupportedEvent(),
	)

	if !event.IsSupportedEvent() {
		logger.Warn("Unsupported event received",
			"type", event.Type,
			"action", event.Action,
		)
		return nil
	}

	if event.PullRequest == nil {
		logger.Warn("Pull request event without pull request information", "id", event.ID)
		return nil
	}

	if uc.pullRequestUC == nil {
		return nil
	}

	pr := event.PullRequest
	ctx = ctxlog.With(ctx, logger.With("delivery_id", event.ID))
	async.Dispatch(ctx, func(ctx context.Context) error {
		_, err := uc.pullRequestUC.ValidatePullRequest(ctx, pr)
		return err
	})

	return nil
}
