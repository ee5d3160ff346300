package config

import (
	"time"

	"github.com/m-mizutani/rankguard/pkg/infra/external"
	"github.com/urfave/cli/v3"
)

// Verifier holds settings of the homepage probe and DBLP lookup
type Verifier struct {
	Endpoint  string
	Timeout   time.Duration
	UserAgent string
}

// Flags returns CLI flags for the external verifier
func (c *Verifier) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dblp-endpoint",
			Usage:       "DBLP publication search API endpoint",
			Value:       external.DefaultSearchEndpoint,
			Destination: &c.Endpoint,
			Sources:     cli.EnvVars("RANKGUARD_DBLP_ENDPOINT"),
		},
		&cli.DurationFlag{
			Name:        "verifier-timeout",
			Usage:       "Timeout of each homepage probe and DBLP lookup",
			Value:       external.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("RANKGUARD_VERIFIER_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "user-agent",
			Usage:       "User-Agent header of outgoing requests",
			Value:       external.DefaultUserAgent,
			Destination: &c.UserAgent,
			Sources:     cli.EnvVars("RANKGUARD_USER_AGENT"),
		},
	}
}

// New creates the verifier. Unset values keep the verifier defaults.
func (c *Verifier) New() *external.Verifier {
	var opts []external.Option
	if c.Endpoint != "" {
		opts = append(opts, external.WithSearchEndpoint(c.Endpoint))
	}
	if c.Timeout > 0 {
		opts = append(opts, external.WithTimeout(c.Timeout))
	}
	if c.UserAgent != "" {
		opts = append(opts, external.WithUserAgent(c.UserAgent))
	}
	return external.New(opts...)
}
