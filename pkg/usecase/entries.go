package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/interfaces"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
)

var facultyFilePattern = regexp.MustCompile(`^csrankings-[a-z]\.csv$`)

// FacultyEntries returns the faculty rows added to csrankings-<letter>.csv
// files, ordered by path and then by position in the diff. Rows that cannot
// be parsed are logged and skipped; the formatting check reports them.
func FacultyEntries(ctx context.Context, changes model.FileChanges) []model.FacultyEntry {
	logger := ctxlog.From(ctx)

	paths := make([]string, 0, len(changes))
	for path := range changes {
		if facultyFilePattern.MatchString(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	var entries []model.FacultyEntry
	for _, path := range paths {
		for _, line := range changes.Added(path) {
			entry, ok, err := model.ParseFacultyLine(path, line)
			if err != nil {
				logger.Warn("Skipping unparsable faculty row", "path", path, "error", err)
				continue
			}
			if !ok {
				logger.Debug("Skipping header row", "path", path)
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries
}

// ValidateEntries validates every faculty row added by changes as a commit
// sharing the commit-level fields of change. A row with empty required
// columns gets an input diagnostic instead of aborting the other rows. When
// no row is added, only the commit-level checks run and their verdict is
// stored in Report.Change.
func ValidateEntries(ctx context.Context, validation interfaces.ValidationUseCase, change *model.Change, changes model.FileChanges) (*model.Report, error) {
	logger := ctxlog.From(ctx)
	entries := FacultyEntries(ctx, changes)
	report := &model.Report{}

	if len(entries) == 0 {
		verdict, err := validation.ValidateChange(ctx, change, changes)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to validate change")
		}
		report.Change = verdict
		return report, nil
	}

	for _, entry := range entries {
		if missing := entry.MissingFields(); len(missing) > 0 {
			logger.Info("Faculty row has empty required columns", "path", entry.Path, "missing", missing)
			report.Entries = append(report.Entries, model.EntryVerdict{
				Entry: entry,
				Verdict: model.NewVerdict([]model.Diagnostic{{
					Check: model.CheckInput,
					Message: fmt.Sprintf("Invalid row (%s) in %s: empty %s. Please fill in every column.",
						entry.Name, entry.Path, strings.Join(missing, ", ")),
				}}),
			})
			continue
		}

		commit := entry.Commit(change.Author.Account, change.Title, change.ModifiedFiles)
		verdict, err := validation.Validate(ctx, commit, changes)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to validate faculty entry",
				goerr.V("path", entry.Path),
				goerr.V("name", entry.Name),
			)
		}
		report.Entries = append(report.Entries, model.EntryVerdict{Entry: entry, Verdict: verdict})
	}

	return report, nil
}
