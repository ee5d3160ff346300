package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/dblp"
	"github.com/m-mizutani/rankguard/pkg/domain/interfaces"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
	"github.com/m-mizutani/rankguard/pkg/domain/rule"
	"golang.org/x/sync/errgroup"
)

type validationUseCase struct {
	verifier interfaces.ExternalVerifier
	files    interfaces.FileSource
	scope    *rule.FileScope
}

// ValidationOption is a functional option for the validation use case
type ValidationOption func(*validationUseCase)

// WithFileScope replaces the default allowed-file patterns
func WithFileScope(scope *rule.FileScope) ValidationOption {
	return func(uc *validationUseCase) {
		uc.scope = scope
	}
}

// NewValidation creates the validation use case. files is used by the
// formatting check to read modified CSV files.
func NewValidation(verifier interfaces.ExternalVerifier, files interfaces.FileSource, opts ...ValidationOption) interfaces.ValidationUseCase {
	uc := &validationUseCase{
		verifier: verifier,
		files:    files,
		scope:    defaultFileScope(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func defaultFileScope() *rule.FileScope {
	scope, err := rule.NewFileScope(rule.DefaultAllowedFiles)
	if err != nil {
		panic(err)
	}
	return scope
}

// Validate runs all checks in their fixed order. Every check runs even
// after a failure so that the verdict lists every problem at once.
func (uc *validationUseCase) Validate(ctx context.Context, commit *model.Commit, changes model.FileChanges) (*model.Verdict, error) {
	if err := commit.Validate(); err != nil {
		return nil, err
	}

	logger := ctxlog.From(ctx).With("run_id", uuid.NewString(), "name", commit.Name)
	ctx = ctxlog.With(ctx, logger)

	// The two external calls do not depend on each other
	var (
		homepageOK  bool
		completions int
		g           errgroup.Group
	)
	g.Go(func() error {
		homepageOK = uc.verifier.Probe(ctx, commit.Homepage)
		return nil
	})
	g.Go(func() error {
		completions = uc.verifier.CompletionCount(ctx, commit.Name)
		return nil
	})

	diags := uc.changeDiagnostics(ctx, commit.Change(), changes)
	fail := func(check model.CheckName, format string, args ...any) {
		diags = append(diags, model.Diagnostic{Check: check, Message: fmt.Sprintf(format, args...)})
	}

	if err := g.Wait(); err != nil {
		return nil, goerr.Wrap(err, "external checks failed")
	}

	if !homepageOK {
		fail(model.CheckHomepage, "Invalid homepage URL (%s). Please provide a correct URL.", commit.Homepage)
	}

	if !rule.ValidScholarID(commit.GoogleScholarID) {
		fail(model.CheckScholarID, "Invalid Google Scholar ID (%s). Please provide a valid identifier.", commit.GoogleScholarID)
	}

	key := dblp.Translate(commit.Name)
	switch {
	case completions < 1:
		fail(model.CheckNameMatch, "Invalid name (%s): no match in DBLP. Please ensure it matches the DBLP entry (%s).",
			commit.Name, key.URL)
	case completions > 1:
		fail(model.CheckNameMatch, "Invalid name (%s): ambiguous, %d DBLP entries match. This may be a disambiguation entry; check %s.",
			commit.Name, completions, key.URL)
	}

	if !rule.EligibleFaculty(commit.Homepage) {
		fail(model.CheckEligibility, "Invalid faculty inclusion (%s). Please ensure the faculty meets the criteria.", commit.Homepage)
	}

	verdict := model.NewVerdict(diags)
	logger.Info("Validation completed",
		"valid", verdict.Valid,
		"failed_checks", len(verdict.Diagnostics),
		"completions", completions,
		"dblp_url", key.URL,
	)

	return verdict, nil
}

// ValidateChange runs the commit-level checks (account, title, file scope
// and formatting) for a change that adds no faculty entry
func (uc *validationUseCase) ValidateChange(ctx context.Context, change *model.Change, changes model.FileChanges) (*model.Verdict, error) {
	if err := change.Validate(); err != nil {
		return nil, err
	}

	logger := ctxlog.From(ctx).With("run_id", uuid.NewString())
	ctx = ctxlog.With(ctx, logger)

	verdict := model.NewVerdict(uc.changeDiagnostics(ctx, change, changes))
	logger.Info("Change validation completed",
		"valid", verdict.Valid,
		"failed_checks", len(verdict.Diagnostics),
	)
	return verdict, nil
}

// changeDiagnostics runs checks 1 to 4, which depend only on the
// commit-level fields
func (uc *validationUseCase) changeDiagnostics(ctx context.Context, change *model.Change, changes model.FileChanges) []model.Diagnostic {
	logger := ctxlog.From(ctx)

	var diags []model.Diagnostic
	fail := func(check model.CheckName, format string, args ...any) {
		diags = append(diags, model.Diagnostic{Check: check, Message: fmt.Sprintf(format, args...)})
	}

	if !rule.ValidAccount(change.Author.Account) {
		fail(model.CheckAccount, "Invalid account (%s). Please use a non-anonymous account.", change.Author.Account)
	}

	if !rule.ReasonableTitle(change.Title) {
		fail(model.CheckTitle, "Invalid commit title (%q). Please provide a more descriptive title.", change.Title)
	}

	if violations := uc.scope.Violations(change.ModifiedFiles); len(violations) > 0 {
		fail(model.CheckFileScope, "Invalid file modification (%s). Please only modify allowed CSV files.",
			strings.Join(violations, ", "))
	}

	var spaced, unreadable []string
	for _, path := range formattingTargets(change.ModifiedFiles, changes) {
		if err := uc.checkFormatting(ctx, path); err != nil {
			logger.Debug("Formatting check failed", "path", path, "error", err)
			if errors.Is(err, rule.ErrSpaceAfterComma) {
				spaced = append(spaced, path)
			} else {
				unreadable = append(unreadable, path)
			}
		}
	}
	if len(spaced) > 0 || len(unreadable) > 0 {
		var parts []string
		if len(spaced) > 0 {
			parts = append(parts, fmt.Sprintf("Invalid file (%s). Please ensure there are no spaces after commas.",
				strings.Join(spaced, ", ")))
		}
		if len(unreadable) > 0 {
			parts = append(parts, fmt.Sprintf("Invalid file (%s). It could not be read as CSV.",
				strings.Join(unreadable, ", ")))
		}
		fail(model.CheckFormatting, "%s", strings.Join(parts, " "))
	}

	return diags
}

// checkFormatting reads one file. The handle is released before returning.
func (uc *validationUseCase) checkFormatting(ctx context.Context, path string) error {
	r, err := uc.files.Open(ctx, path)
	if err != nil {
		return goerr.Wrap(err, "failed to open file", goerr.V("path", path))
	}
	defer r.Close()

	return rule.CheckFormatting(r)
}

// formattingTargets selects the CSV files to read. With a change set, files
// the diff does not mention are skipped.
func formattingTargets(modified []string, changes model.FileChanges) []string {
	var targets []string
	for _, path := range modified {
		if !rule.IsCSV(path) {
			continue
		}
		if changes != nil && !changes.Touched(path) {
			continue
		}
		targets = append(targets, path)
	}
	return targets
}
