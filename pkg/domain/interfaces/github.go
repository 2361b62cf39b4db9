package interfaces

import (
	"context"

	"github.com/aoi-dev/shiprel/pkg/domain/model"
)

// ReleaseClient defines the release operations consumed from the hosting
// service. Implementations return raw transport errors; classification is
// the caller's concern.
type ReleaseClient interface {
	// GetReleaseByTag looks up an existing release by its tag name
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*model.ReleaseRecord, error)

	// CreateRelease creates a new tagged release
	CreateRelease(ctx context.Context, owner, repo string, params *model.ReleaseParams) (*model.ReleaseRecord, error)

	// UploadAsset attaches a local file to an existing release
	UploadAsset(ctx context.Context, owner, repo string, releaseID int64, path, name string) (*model.UploadedAsset, error)
}
