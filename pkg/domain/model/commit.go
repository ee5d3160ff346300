package model

import (
	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/types"
)

// Author identifies the platform account that proposed the change
type Author struct {
	Account string `json:"account" validate:"required"`
}

// Commit is the metadata bundle describing one proposed dataset change.
// It is treated as immutable once constructed.
type Commit struct {
	Author          Author   `json:"author" validate:"required"`
	Title           string   `json:"title"`
	ModifiedFiles   []string `json:"modified_files"`
	Homepage        string   `json:"homepage" validate:"required"`
	GoogleScholarID string   `json:"google_scholar_id" validate:"required"`
	Name            string   `json:"name" validate:"required"`
}

// Change is the commit-level part of a contribution, checked once even
// when the change adds no faculty entry
type Change struct {
	Author        Author   `json:"author" validate:"required"`
	Title         string   `json:"title"`
	ModifiedFiles []string `json:"modified_files"`
}

// Change returns the commit-level fields of c
func (c *Commit) Change() *Change {
	return &Change{
		Author:        c.Author,
		Title:         c.Title,
		ModifiedFiles: c.ModifiedFiles,
	}
}

var commitValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that all required fields are present
func (c *Commit) Validate() error {
	if c == nil {
		return goerr.New("commit is nil", goerr.T(types.ErrTagMalformedInput))
	}

	return validateRequired(c, "commit is missing required fields")
}

// Validate checks that the author account is present
func (c *Change) Validate() error {
	if c == nil {
		return goerr.New("change is nil", goerr.T(types.ErrTagMalformedInput))
	}

	return validateRequired(c, "change is missing required fields")
}

func validateRequired(v any, msg string) error {
	if err := commitValidator.Struct(v); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace())
			}
		}
		return goerr.Wrap(err, msg,
			goerr.T(types.ErrTagMalformedInput),
			goerr.V("fields", fields),
		)
	}
	return nil
}
