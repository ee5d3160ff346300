package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/rule"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Rules points at an optional TOML file overriding the check rules:
//
//	allowed_files = ['csrankings-[a-z]\.csv', 'country-info\.csv']
type Rules struct {
	Path string
}

// RulesFile is the TOML document read from Rules.Path
type RulesFile struct {
	AllowedFiles []string `toml:"allowed_files"`
}

// Flags returns CLI flags for the rules file
func (c *Rules) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "rules",
			Usage:       "Path to a TOML rules file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("RANKGUARD_RULES"),
		},
	}
}

// FileScope returns the allowed file scope. Without a rules file, or when
// the file leaves allowed_files unset, the default dataset files are used.
func (c *Rules) FileScope() (*rule.FileScope, error) {
	patterns := rule.DefaultAllowedFiles

	if c.Path != "" {
		data, err := os.ReadFile(c.Path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read rules file", goerr.V("path", c.Path))
		}

		var file RulesFile
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, goerr.Wrap(err, "failed to parse rules file", goerr.V("path", c.Path))
		}
		if file.AllowedFiles != nil {
			patterns = file.AllowedFiles
		}
	}

	scope, err := rule.NewFileScope(patterns)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid rules", goerr.V("path", c.Path))
	}
	return scope, nil
}
