package github

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/aoi-dev/shiprel/pkg/domain/interfaces"
	"github.com/aoi-dev/shiprel/pkg/domain/model"
)

// Credential selects how the client authenticates: a personal access token,
// or GitHub App installation credentials. Token wins when both are set.
type Credential struct {
	Token          string
	AppID          int64
	InstallationID int64
	PrivateKey     []byte
}

// fingerprint distinguishes credentials for client caching without keeping
// the secret in a readable form longer than needed
func (c Credential) fingerprint() string {
	if c.Token != "" {
		return "token:" + c.Token
	}
	return fmt.Sprintf("app:%d:%d", c.AppID, c.InstallationID)
}

type client struct {
	gh *github.Client
}

// NewClient creates an authenticated client for the given API host. An empty
// host means github.com; any other host is treated as a GitHub Enterprise
// instance with the /api/v3 path convention.
func NewClient(host string, cred Credential) (interfaces.ReleaseClient, error) {
	var gh *github.Client

	switch {
	case cred.Token != "":
		gh = github.NewClient(nil).WithAuthToken(cred.Token)
	case cred.AppID != 0:
		itr, err := ghinstallation.New(http.DefaultTransport, cred.AppID, cred.InstallationID, cred.PrivateKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub App transport")
		}
		gh = github.NewClient(&http.Client{Transport: itr})
	default:
		return nil, goerr.New("no GitHub credential provided")
	}

	if host != "" {
		baseURL := fmt.Sprintf("https://%s/api/v3/", host)
		uploadURL := fmt.Sprintf("https://%s/api/uploads/", host)

		var err error
		gh, err = gh.WithEnterpriseURLs(baseURL, uploadURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure enterprise endpoint", goerr.V("host", host))
		}
	}

	return &client{gh: gh}, nil
}

// GetReleaseByTag looks up an existing release by its tag name
func (c *client) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*model.ReleaseRecord, error) {
	rel, _, err := c.gh.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get release by tag",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("tag", tag))
	}
	return toRecord(rel), nil
}

// CreateRelease creates a new tagged release
func (c *client) CreateRelease(ctx context.Context, owner, repo string, params *model.ReleaseParams) (*model.ReleaseRecord, error) {
	rel, _, err := c.gh.Repositories.CreateRelease(ctx, owner, repo, &github.RepositoryRelease{
		TagName:    github.Ptr(params.TagName),
		Name:       github.Ptr(params.Name),
		Body:       github.Ptr(params.Body),
		Prerelease: github.Ptr(params.Prerelease),
		Draft:      github.Ptr(params.Draft),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("tag", params.TagName))
	}
	return toRecord(rel), nil
}

// UploadAsset attaches a local file to an existing release
func (c *client) UploadAsset(ctx context.Context, owner, repo string, releaseID int64, path, name string) (*model.UploadedAsset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open asset file", goerr.V("path", path))
	}
	defer f.Close()

	asset, _, err := c.gh.Repositories.UploadReleaseAsset(ctx, owner, repo, releaseID, &github.UploadOptions{
		Name: name,
	}, f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload release asset",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("name", name))
	}

	return &model.UploadedAsset{
		Name: asset.GetName(),
		URL:  asset.GetBrowserDownloadURL(),
	}, nil
}

func toRecord(rel *github.RepositoryRelease) *model.ReleaseRecord {
	return &model.ReleaseRecord{
		ID:      rel.GetID(),
		TagName: rel.GetTagName(),
		URL:     rel.GetHTMLURL(),
	}
}
