package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/aoi-dev/shiprel/pkg/domain/model"
	"github.com/aoi-dev/shiprel/pkg/infra/github"
)

// GitHub holds GitHub endpoint and credential configuration
type GitHub struct {
	Repo           string // "owner/name"
	Host           string // empty for github.com
	Token          string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Target repository as owner/name",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("SHIPREL_REPO"),
		},
		&cli.StringFlag{
			Name:        "host",
			Usage:       "GitHub Enterprise host (empty for github.com)",
			Destination: &c.Host,
			Sources:     cli.EnvVars("SHIPREL_HOST"),
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "GitHub personal access token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("SHIPREL_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID (alternative to token)",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("SHIPREL_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("SHIPREL_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "Path to GitHub App private key file",
			Destination: &c.PrivateKeyPath,
			Sources:     cli.EnvVars("SHIPREL_GITHUB_PRIVATE_KEY"),
		},
	}
}

// Coordinates parses the owner/name repository reference
func (c *GitHub) Coordinates() (*model.RepoCoordinates, error) {
	parts := strings.SplitN(c.Repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, goerr.New("repository must be specified as owner/name", goerr.V("repo", c.Repo))
	}

	return &model.RepoCoordinates{
		Host:  c.Host,
		Owner: parts[0],
		Repo:  parts[1],
	}, nil
}

// Credential builds the client credential from the configured auth method
func (c *GitHub) Credential() (github.Credential, error) {
	if c.Token != "" {
		return github.Credential{Token: c.Token}, nil
	}

	if c.AppID == 0 {
		return github.Credential{}, goerr.New("either a token or GitHub App credentials are required")
	}

	key, err := os.ReadFile(c.PrivateKeyPath)
	if err != nil {
		return github.Credential{}, goerr.Wrap(err, "failed to read GitHub App private key",
			goerr.V("path", c.PrivateKeyPath))
	}

	return github.Credential{
		AppID:          c.AppID,
		InstallationID: c.InstallationID,
		PrivateKey:     key,
	}, nil
}
