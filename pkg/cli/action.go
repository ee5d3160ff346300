package cli

import (
	"context"
	"os"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/cli/config"
	githubcontroller "github.com/m-mizutani/rankguard/pkg/controller/github"
	"github.com/m-mizutani/rankguard/pkg/domain/types"
	"github.com/m-mizutani/rankguard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdAction() *cli.Command {
	var (
		githubCfg   config.GitHub
		verifierCfg config.Verifier
		rulesCfg    config.Rules
		eventName   string
		eventPath   string
		comment     bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "event-name",
			Usage:       "GitHub event name",
			Destination: &eventName,
			Sources:     cli.EnvVars("GITHUB_EVENT_NAME"),
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "event-path",
			Usage:       "Path to the GitHub event payload",
			Destination: &eventPath,
			Sources:     cli.EnvVars("GITHUB_EVENT_PATH"),
			Required:    true,
		},
		&cli.BoolFlag{
			Name:        "comment",
			Usage:       "Post the report as a pull request comment",
			Destination: &comment,
			Sources:     cli.EnvVars("RANKGUARD_COMMENT"),
		},
	}
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, verifierCfg.Flags()...)
	flags = append(flags, rulesCfg.Flags()...)

	return &cli.Command{
		Name:  "action",
		Usage: "Validate the pull request of a GitHub Actions run",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			data, err := os.ReadFile(eventPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read event payload", goerr.V("path", eventPath))
			}

			payload, err := github.ParseWebHook(eventName, data)
			if err != nil {
				return goerr.Wrap(err, "failed to parse event payload",
					goerr.T(types.ErrTagMalformedInput),
					goerr.V("event", eventName),
				)
			}

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
				usecase.WithComment(comment),
				usecase.WithValidationOptions(usecase.WithFileScope(scope)),
			)

			report, err := githubcontroller.NewEventProcessor(pullRequestUC).ProcessEvent(ctx, eventName, payload)
			if err != nil {
				return err
			}
			if report == nil {
				logger.Info("Event does not trigger a validation", "event", eventName)
				return nil
			}

			printReport(c.Root().Writer, report)

			if !report.Valid() {
				return goerr.New("pull request failed sanity checks", goerr.T(types.ErrTagInvalidCommit))
			}
			return nil
		},
	}
}
