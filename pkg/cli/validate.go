package cli

import (
	"context"
	"encoding/json"
	"os"
	"sort"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/cli/config"
	"github.com/m-mizutani/rankguard/pkg/domain/diff"
	"github.com/m-mizutani/rankguard/pkg/domain/interfaces"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
	"github.com/m-mizutani/rankguard/pkg/domain/types"
	"github.com/m-mizutani/rankguard/pkg/infra/fs"
	"github.com/m-mizutani/rankguard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var (
		verifierCfg config.Verifier
		rulesCfg    config.Rules
		commitFile  string
		diffFiles   []string
		repoDir     string
		commit      model.Commit
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "commit",
			Usage:       "Path to a commit JSON file",
			Destination: &commitFile,
			Sources:     cli.EnvVars("RANKGUARD_COMMIT"),
		},
		&cli.StringSliceFlag{
			Name:        "diff",
			Usage:       "Path to a diff JSON document (repeatable)",
			Destination: &diffFiles,
		},
		&cli.StringFlag{
			Name:        "repo-dir",
			Usage:       "Working tree the modified files are read from",
			Value:       ".",
			Destination: &repoDir,
			Sources:     cli.EnvVars("RANKGUARD_REPO_DIR"),
		},
		&cli.StringFlag{
			Name:        "account",
			Usage:       "Commit author account",
			Destination: &commit.Author.Account,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Commit title",
			Destination: &commit.Title,
		},
		&cli.StringFlag{
			Name:        "homepage",
			Usage:       "Faculty homepage URL",
			Destination: &commit.Homepage,
		},
		&cli.StringFlag{
			Name:        "scholar-id",
			Usage:       "Google Scholar ID or NOSCHOLARPAGE",
			Destination: &commit.GoogleScholarID,
		},
		&cli.StringFlag{
			Name:        "name",
			Usage:       "Faculty name as listed in DBLP",
			Destination: &commit.Name,
		},
	}
	flags = append(flags, verifierCfg.Flags()...)
	flags = append(flags, rulesCfg.Flags()...)

	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate a contribution",
		ArgsUsage: "[modified files...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			input, err := loadCommit(commitFile, &commit, c.Args().Slice())
			if err != nil {
				return err
			}

			changes, err := loadChanges(diffFiles)
			if err != nil {
				return err
			}

			scope, err := rulesCfg.FileScope()
			if err != nil {
				return err
			}

			validation := usecase.NewValidation(
				verifierCfg.New(),
				fs.NewLocal(repoDir),
				usecase.WithFileScope(scope),
			)

			report, err := runValidation(ctx, validation, input, changes)
			if err != nil {
				return err
			}

			logger.Debug("Validation finished", "entries", len(report.Entries), "valid", report.Valid())
			printReport(c.Root().Writer, report)

			if !report.Valid() {
				return goerr.New("contribution failed sanity checks", goerr.T(types.ErrTagInvalidCommit))
			}
			return nil
		},
	}
}

// loadCommit merges the commit file, the flags and the positional modified
// files. Flags override the file.
func loadCommit(path string, flags *model.Commit, modified []string) (*model.Commit, error) {
	commit := &model.Commit{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read commit file", goerr.V("path", path))
		}
		if err := json.Unmarshal(data, commit); err != nil {
			return nil, goerr.Wrap(err, "failed to decode commit file",
				goerr.T(types.ErrTagMalformedInput),
				goerr.V("path", path),
			)
		}
	}

	override := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	override(&commit.Author.Account, flags.Author.Account)
	override(&commit.Title, flags.Title)
	override(&commit.Homepage, flags.Homepage)
	override(&commit.GoogleScholarID, flags.GoogleScholarID)
	override(&commit.Name, flags.Name)
	commit.ModifiedFiles = append(commit.ModifiedFiles, modified...)

	return commit, nil
}

// loadChanges parses and merges diff documents. It returns nil without files.
func loadChanges(paths []string) (model.FileChanges, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	merged := model.FileChanges{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read diff file", goerr.V("path", path))
		}

		doc, err := diff.Parse(data)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid diff file", goerr.V("path", path))
		}

		changes, err := diff.Extract(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid diff file", goerr.V("path", path))
		}

		for p, records := range changes {
			merged[p] = append(merged[p], records...)
		}
	}

	return merged, nil
}

// runValidation validates the commit itself when it names a faculty member,
// otherwise every faculty row added by the diff
func runValidation(ctx context.Context, validation interfaces.ValidationUseCase, commit *model.Commit, changes model.FileChanges) (*model.Report, error) {
	report := &model.Report{}

	if commit.Name != "" {
		verdict, err := validation.Validate(ctx, commit, changes)
		if err != nil {
			return nil, err
		}
		report.Entries = append(report.Entries, model.EntryVerdict{
			Entry: model.FacultyEntry{
				Name:      commit.Name,
				Homepage:  commit.Homepage,
				ScholarID: commit.GoogleScholarID,
			},
			Verdict: verdict,
		})
		return report, nil
	}

	if changes == nil {
		return nil, goerr.New("nothing to validate: set --name or pass --diff", goerr.T(types.ErrTagMalformedInput))
	}

	modified := commit.ModifiedFiles
	if len(modified) == 0 {
		for path := range changes.Paths() {
			modified = append(modified, path)
		}
		sort.Strings(modified)
	}

	change := &model.Change{
		Author:        commit.Author,
		Title:         commit.Title,
		ModifiedFiles: modified,
	}
	return usecase.ValidateEntries(ctx, validation, change, changes)
}
