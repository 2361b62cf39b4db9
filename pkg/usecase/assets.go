package usecase

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/aoi-dev/shiprel/pkg/domain/model"
	"github.com/aoi-dev/shiprel/pkg/utils/async"
	"github.com/aoi-dev/shiprel/pkg/utils/retry"
)

// PublishAssets uploads every file matched by patterns to the release,
// concurrently. The operation succeeds only if all uploads succeed; the
// first failure becomes the operation's error, but sibling uploads that
// already started run to completion.
func (p *publisher) PublishAssets(ctx context.Context, repo *model.RepoCoordinates, rel *model.ReleaseRecord, patterns []string) ([]model.UploadedAsset, error) {
	logger := ctxlog.From(ctx)

	if len(patterns) == 0 {
		logger.Debug("no asset patterns configured, skipping upload")
		return nil, nil
	}

	if p.dryRun {
		logger.Info("DRY-RUN: would upload assets",
			"patterns", patterns,
			"tag", rel.TagName,
		)
		return nil, nil
	}

	paths, err := p.resolvePatterns(ctx, patterns)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return []model.UploadedAsset{}, nil
	}

	client, err := p.source(repo.Host)
	if err != nil {
		return nil, err
	}

	type job struct {
		index  int
		upload *model.AssetUpload
	}

	jobs := make([]job, 0, len(paths))
	for i, path := range paths {
		jobs = append(jobs, job{index: i, upload: model.NewAssetUpload(rel.ID, path)})
	}

	results := make([]model.UploadedAsset, len(jobs))
	err = async.All(ctx, jobs, func(ctx context.Context, j job) error {
		asset, err := retry.Do(ctx, "uploadAsset", func(ctx context.Context) (*model.UploadedAsset, error) {
			return client.UploadAsset(ctx, repo.Owner, repo.Repo, j.upload.ReleaseID, j.upload.Path, j.upload.Name)
		}, p.retryOpts...)
		if err != nil {
			logger.Error("failed to upload asset",
				"path", j.upload.Path,
				"name", j.upload.Name,
				"error", err,
			)
			return err
		}

		logger.Info("uploaded asset", "name", asset.Name, "url", asset.URL)
		results[j.index] = *asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// resolvePatterns expands asset patterns through the file discovery
// collaborator. An empty match is not an error; it is reported once, with
// enough context to debug the pattern.
func (p *publisher) resolvePatterns(ctx context.Context, patterns []string) ([]string, error) {
	logger := ctxlog.From(ctx)

	var paths []string
	for _, pattern := range patterns {
		matched, err := p.find(pattern)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve asset pattern", goerr.V("pattern", pattern))
		}
		paths = append(paths, matched...)
	}

	if len(paths) == 0 {
		wd, _ := os.Getwd()
		logger.Warn("asset patterns matched no files",
			"patterns", patterns,
			"working_dir", wd,
		)
	}

	return paths, nil
}
