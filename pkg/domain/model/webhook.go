package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePullRequest WebhookEventType = "pull_request"
	EventTypePing        WebhookEventType = "ping"
	EventTypeUnknown     WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Action     string           // Event action (e.g., opened, synchronize)
	Repository string           // Repository full name
	Sender     string           // Sender username
	ReceivedAt time.Time        // Time when the event was received
	RawPayload []byte           // Raw JSON payload

	// PullRequest is set for pull_request events carrying a complete pull request
	PullRequest *PullRequest
}

// IsSupportedEvent reports whether the event should trigger a validation.
// Any push to the pull request branch re-runs it.
func (e *WebhookEvent) IsSupportedEvent() bool {
	if e.Type != EventTypePullRequest {
		return false
	}
	return IsValidatedAction(e.Action)
}

// IsValidatedAction reports whether a pull_request action changes the content under review
func IsValidatedAction(action string) bool {
	switch action {
	case "opened", "synchronize", "reopened":
		return true
	default:
		return false
	}
}

// HealthStatus is served by the health endpoint
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
