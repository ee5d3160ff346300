package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/rankguard/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub credentials. Either a GitHub App (ID, installation ID
// and private key) or a token authenticates API calls.
type GitHub struct {
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	PrivateKeyFile string
	Token          string `masq:"secret"`
	WebhookSecret  string `masq:"secret"`
}

// Flags returns CLI flags for GitHub API credentials
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("RANKGUARD_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("RANKGUARD_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("RANKGUARD_GITHUB_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-private-key-file",
			Usage:       "Path to GitHub App private key file",
			Destination: &c.PrivateKeyFile,
			Sources:     cli.EnvVars("RANKGUARD_GITHUB_PRIVATE_KEY_FILE"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token, used when no GitHub App is configured",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RANKGUARD_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
	}
}

// WebhookFlags returns the flag for the webhook secret
func (c *GitHub) WebhookFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("RANKGUARD_GITHUB_WEBHOOK_SECRET"),
		},
	}
}

// HasApp reports whether GitHub App credentials are configured
func (c *GitHub) HasApp() bool {
	return c.AppID != 0 && c.InstallationID != 0 && (c.PrivateKey != "" || c.PrivateKeyFile != "")
}

// NewClient creates a GitHub client, preferring GitHub App credentials
func (c *GitHub) NewClient() (interfaces.GitHubClient, error) {
	if c.HasApp() {
		key, err := c.privateKey()
		if err != nil {
			return nil, err
		}
		client, err := githubinfra.NewClient(c.AppID, c.InstallationID, key)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub App client",
				goerr.V("app_id", c.AppID),
				goerr.V("installation_id", c.InstallationID),
			)
		}
		return client, nil
	}

	if c.Token != "" {
		return githubinfra.NewClientWithToken(c.Token), nil
	}

	return nil, goerr.New("GitHub credentials are not configured: set a GitHub App or a token")
}

func (c *GitHub) privateKey() ([]byte, error) {
	if c.PrivateKey != "" {
		return []byte(c.PrivateKey), nil
	}

	key, err := os.ReadFile(c.PrivateKeyFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read GitHub App private key", goerr.V("path", c.PrivateKeyFile))
	}
	return key, nil
}
