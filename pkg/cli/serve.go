package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/cli/config"
	controller "github.com/m-mizutani/rankguard/pkg/controller/http"
	"github.com/m-mizutani/rankguard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		githubCfg   config.GitHub
		verifierCfg config.Verifier
		rulesCfg    config.Rules
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, githubCfg.WebhookFlags()...)
	flags = append(flags, verifierCfg.Flags()...)
	flags = append(flags, rulesCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the GitHub webhook server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting rankguard server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("github", githubCfg),
			)

			githubClient, err := githubCfg.NewClient()
			if err != nil {
				return err
			}

			scope, err := rulesCfg.FileScope()
			if err != nil {
				return err
			}

			pullRequestUC := usecase.NewPullRequest(
				githubClient,
				verifierCfg.New(),
				usecase.WithComment(true),
				usecase.WithValidationOptions(usecase.WithFileScope(scope)),
			)
			webhookUC := usecase.NewWebhook(pullRequestUC)

			server, err := controller.NewServer(
				ctx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
