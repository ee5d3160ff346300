package http

import (
	"context"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/rankguard/pkg/domain/interfaces"
)

type config struct {
	addr          string
	webhookSecret string
	maxBodyBytes  int64
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithWebhookSecret sets the webhook secret
func WithWebhookSecret(secret string) Option {
	return func(c *config) {
		c.webhookSecret = secret
	}
}

// WithMaxBodyBytes limits the size of a webhook delivery
func WithMaxBodyBytes(n int64) Option {
	return func(c *config) {
		c.maxBodyBytes = n
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates the webhook server. Routes:
//
//	GET  /health
//	POST /hooks/github/app
func NewServer(
	ctx context.Context,
	webhookUC interfaces.WebhookUseCase,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr:         "localhost:8080",
		maxBodyBytes: 25 << 20, // GitHub caps payloads at 25MB
	}
	for _, opt := range opts {
		opt(cfg)
	}

	sentryHandler := sentryhttp.New(sentryhttp.Options{Repanic: true})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(sentryHandler.Handle)
	router.Use(middleware.RequestSize(cfg.maxBodyBytes))

	router.Get("/health", handleHealth)

	webhookHandler := NewWebhookHandler(cfg.webhookSecret, webhookUC)
	router.Post("/hooks/github/app", webhookHandler.Handle)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
