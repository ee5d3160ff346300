package model_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
	"github.com/m-mizutani/rankguard/pkg/domain/types"
)

func validCommit() *model.Commit {
	return &model.Commit{
		Author:          model.Author{Account: "john_doe"},
		Title:           "Add Emery to csrankings-a.csv",
		ModifiedFiles:   []string{"csrankings-a.csv"},
		Homepage:        "https://www.emeryberger.com",
		GoogleScholarID: "dbfeR3YAAAAJ",
		Name:            "Emery D. Berger",
	}
}

func TestCommit_Validate(t *testing.T) {
	t.Run("complete commit", func(t *testing.T) {
		gt.NoError(t, validCommit().Validate())
	})

	t.Run("empty title and no files are allowed", func(t *testing.T) {
		c := validCommit()
		c.Title = ""
		c.ModifiedFiles = nil
		gt.NoError(t, c.Validate())
	})

	tests := []struct {
		name   string
		modify func(c *model.Commit)
	}{
		{name: "missing account", modify: func(c *model.Commit) { c.Author.Account = "" }},
		{name: "missing homepage", modify: func(c *model.Commit) { c.Homepage = "" }},
		{name: "missing scholar id", modify: func(c *model.Commit) { c.GoogleScholarID = "" }},
		{name: "missing name", modify: func(c *model.Commit) { c.Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCommit()
			tt.modify(c)
			err := c.Validate()
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, types.ErrTagMalformedInput))
		})
	}

	t.Run("nil commit", func(t *testing.T) {
		var c *model.Commit
		err := c.Validate()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagMalformedInput))
	})
}

func TestChange_Validate(t *testing.T) {
	change := validCommit().Change()
	gt.NoError(t, change.Validate())
	gt.Equal(t, change.ModifiedFiles, []string{"csrankings-a.csv"})

	change.Author.Account = ""
	err := change.Validate()
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagMalformedInput))

	var nilChange *model.Change
	gt.True(t, goerr.HasTag(nilChange.Validate(), types.ErrTagMalformedInput))
}
