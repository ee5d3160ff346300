package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/rankguard/pkg/cli/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRules_FileScope(t *testing.T) {
	t.Run("default scope without rules file", func(t *testing.T) {
		rules := &config.Rules{}
		scope, err := rules.FileScope()
		gt.NoError(t, err)
		gt.A(t, scope.Violations([]string{"csrankings-a.csv", "old/rip.csv"})).Length(0)
		gt.Equal(t, scope.Violations([]string{"csrankings.csv"}), []string{"csrankings.csv"})
	})

	t.Run("allowed files from TOML", func(t *testing.T) {
		path := writeFile(t, "rules.toml", `allowed_files = ['faculty-[a-z]\.csv']`+"\n")
		rules := &config.Rules{Path: path}
		scope, err := rules.FileScope()
		gt.NoError(t, err)
		gt.A(t, scope.Violations([]string{"faculty-a.csv"})).Length(0)
		gt.Equal(t, scope.Violations([]string{"csrankings-a.csv"}), []string{"csrankings-a.csv"})
	})

	t.Run("empty TOML keeps defaults", func(t *testing.T) {
		path := writeFile(t, "rules.toml", "# nothing\n")
		rules := &config.Rules{Path: path}
		scope, err := rules.FileScope()
		gt.NoError(t, err)
		gt.A(t, scope.Violations([]string{"csrankings-z.csv"})).Length(0)
	})

	t.Run("missing file", func(t *testing.T) {
		rules := &config.Rules{Path: filepath.Join(t.TempDir(), "missing.toml")}
		_, err := rules.FileScope()
		gt.Error(t, err)
	})

	t.Run("broken TOML", func(t *testing.T) {
		path := writeFile(t, "rules.toml", "allowed_files = [\n")
		rules := &config.Rules{Path: path}
		_, err := rules.FileScope()
		gt.Error(t, err)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		path := writeFile(t, "rules.toml", `allowed_files = ['csrankings-[a-z\.csv']`+"\n")
		rules := &config.Rules{Path: path}
		_, err := rules.FileScope()
		gt.Error(t, err)
	})
}

func TestGitHub_NewClient(t *testing.T) {
	t.Run("token", func(t *testing.T) {
		cfg := &config.GitHub{Token: "ghp_test"}
		gt.False(t, cfg.HasApp())
		client, err := cfg.NewClient()
		gt.NoError(t, err)
		gt.V(t, client).NotNil()
	})

	t.Run("no credentials", func(t *testing.T) {
		cfg := &config.GitHub{}
		_, err := cfg.NewClient()
		gt.Error(t, err)
	})

	t.Run("missing private key file", func(t *testing.T) {
		cfg := &config.GitHub{
			AppID:          1,
			InstallationID: 2,
			PrivateKeyFile: filepath.Join(t.TempDir(), "missing.pem"),
		}
		gt.True(t, cfg.HasApp())
		_, err := cfg.NewClient()
		gt.Error(t, err)
	})

	t.Run("invalid private key", func(t *testing.T) {
		cfg := &config.GitHub{
			AppID:          1,
			InstallationID: 2,
			PrivateKey:     "not a pem",
		}
		_, err := cfg.NewClient()
		gt.Error(t, err)
	})
}

func TestSentry_Configure(t *testing.T) {
	cfg := &config.Sentry{}
	gt.False(t, cfg.Enabled())

	flush, err := cfg.Configure()
	gt.NoError(t, err)
	flush()
}

func TestVerifier_New(t *testing.T) {
	cfg := &config.Verifier{Endpoint: "http://localhost:0/search", UserAgent: "test"}
	gt.V(t, cfg.New()).NotNil()
}
