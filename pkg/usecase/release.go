package usecase

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"

	"github.com/aoi-dev/shiprel/pkg/domain/interfaces"
	"github.com/aoi-dev/shiprel/pkg/domain/model"
	"github.com/aoi-dev/shiprel/pkg/utils/retry"
)

type publisher struct {
	source    interfaces.ClientSource
	find      interfaces.FileFinder
	dryRun    bool
	retryOpts []retry.Option
}

// PublisherOption is a functional option for the publisher
type PublisherOption func(*publisher)

// WithDryRun makes every operation log its intent and return without any
// remote call or file discovery
func WithDryRun(dryRun bool) PublisherOption {
	return func(p *publisher) {
		p.dryRun = dryRun
	}
}

// WithFileFinder overrides the asset discovery collaborator
func WithFileFinder(find interfaces.FileFinder) PublisherOption {
	return func(p *publisher) {
		p.find = find
	}
}

// WithRetryOptions passes options through to the retry executor wrapping
// every remote call
func WithRetryOptions(opts ...retry.Option) PublisherOption {
	return func(p *publisher) {
		p.retryOpts = opts
	}
}

// NewPublisher creates a new instance of Publisher. Clients are obtained
// through source so handles are shared across operations against the same
// host.
func NewPublisher(source interfaces.ClientSource, opts ...PublisherOption) interfaces.Publisher {
	p := &publisher{
		source: source,
		find:   filepath.Glob,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish resolves or creates the release, then uploads assets against it.
// Asset upload is never attempted without a valid release identifier.
func (p *publisher) Publish(ctx context.Context, repo *model.RepoCoordinates, req *model.ReleaseRequest, patterns []string) ([]model.UploadedAsset, error) {
	rel, err := p.ResolveOrCreateRelease(ctx, repo, req)
	if err != nil {
		return nil, err
	}

	return p.PublishAssets(ctx, repo, rel, patterns)
}

// ResolveOrCreateRelease finds the release for the request's tag, falling
// back to creating it when the lookup fails for any reason. The lookup
// error is discarded once the fallback is attempted; if creation also
// fails, creation's classified error is the operation's error.
func (p *publisher) ResolveOrCreateRelease(ctx context.Context, repo *model.RepoCoordinates, req *model.ReleaseRequest) (*model.ReleaseRecord, error) {
	logger := ctxlog.From(ctx)
	tag := req.TagName()

	if p.dryRun {
		logger.Info("DRY-RUN: would resolve or create release",
			"owner", repo.Owner,
			"repo", repo.Repo,
			"tag", tag,
		)
		return &model.ReleaseRecord{TagName: tag}, nil
	}

	client, err := p.source(repo.Host)
	if err != nil {
		return nil, err
	}

	rel, lookupErr := retry.Do(ctx, "getReleaseByTag", func(ctx context.Context) (*model.ReleaseRecord, error) {
		return client.GetReleaseByTag(ctx, repo.Owner, repo.Repo, tag)
	}, p.retryOpts...)
	if lookupErr == nil {
		logger.Info("found existing release",
			"tag", rel.TagName,
			"release_id", rel.ID,
		)
		return rel, nil
	}

	// A transient lookup failure also lands here; creating in that case
	// can produce a duplicate release if the tag already existed.
	var ce *retry.ClassifiedError
	if errors.As(lookupErr, &ce) && ce.StatusCode != http.StatusNotFound {
		logger.Debug("release lookup failed without a definitive not-found, creating anyway",
			"tag", tag,
			"error", lookupErr,
		)
	} else {
		logger.Debug("release not found, creating", "tag", tag)
	}

	params := req.Params()
	created, createErr := retry.Do(ctx, "createRelease", func(ctx context.Context) (*model.ReleaseRecord, error) {
		return client.CreateRelease(ctx, repo.Owner, repo.Repo, params)
	}, p.retryOpts...)
	if createErr != nil {
		return nil, createErr
	}

	logger.Info("created release",
		"tag", created.TagName,
		"release_id", created.ID,
		"url", created.URL,
	)
	return created, nil
}
