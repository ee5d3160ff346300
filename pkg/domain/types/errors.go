package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagMalformedInput marks a contract violation by the caller, such as a
	// commit record without a required field. Validation of that commit aborts.
	ErrTagMalformedInput = goerr.NewTag("malformed_input")

	// ErrTagMalformedDiff marks a diff document that does not follow the
	// file/chunk/change shape or carries an unknown change type.
	ErrTagMalformedDiff = goerr.NewTag("malformed_diff")

	// ErrTagExternalUnavailable marks a failed homepage probe or DBLP lookup.
	// It never leaves the verifier; it is mapped to a negative result there.
	ErrTagExternalUnavailable = goerr.NewTag("external_unavailable")

	// ErrTagInvalidCommit is returned by the CLI when the verdict is negative
	// so that the process exits with a non-zero status.
	ErrTagInvalidCommit = goerr.NewTag("invalid_commit")
)
