package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/cli/config"
	"github.com/m-mizutani/rankguard/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application. A .env file in the working directory, if
// present, provides environment defaults.
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		logger    *slog.Logger
		flush     = func() {}
	)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return goerr.Wrap(err, "failed to load .env file")
	}

	app := &cli.Command{
		Name:    types.ServiceName,
		Usage:   "Sanity checks for csrankings faculty contributions",
		Version: types.Version,
		Flags:   append(loggerCfg.Flags(), sentryCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)

			sentryFlush, err := sentryCfg.Configure()
			if err != nil {
				return nil, err
			}
			flush = sentryFlush
			if sentryCfg.Enabled() {
				ctx = sentry.SetHubOnContext(ctx, sentry.CurrentHub().Clone())
				logger.Debug("Sentry enabled", "environment", sentryCfg.Environment)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdValidate(),
			cmdDiff(),
			cmdTranslate(),
			cmdAction(),
			cmdServe(),
		},
	}

	err := app.Run(ctx, args)
	defer flush()

	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		// A failed check is a verdict, not a crash
		if !goerr.HasTag(err, types.ErrTagInvalidCommit) {
			sentry.CaptureException(err)
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
