package interfaces

import (
	"context"

	"github.com/aoi-dev/shiprel/pkg/domain/model"
)

// Publisher defines the release publishing operations
type Publisher interface {
	// Publish resolves or creates the release, then uploads assets against it
	Publish(ctx context.Context, repo *model.RepoCoordinates, req *model.ReleaseRequest, patterns []string) ([]model.UploadedAsset, error)

	// ResolveOrCreateRelease finds the release for the request's tag, or
	// creates it if the lookup fails
	ResolveOrCreateRelease(ctx context.Context, repo *model.RepoCoordinates, req *model.ReleaseRequest) (*model.ReleaseRecord, error)

	// PublishAssets uploads every file matched by patterns to the release
	PublishAssets(ctx context.Context, repo *model.RepoCoordinates, rel *model.ReleaseRecord, patterns []string) ([]model.UploadedAsset, error)
}

// FileFinder resolves a glob pattern to concrete file paths. Matching
// semantics belong to the collaborator, not to the publishing core.
type FileFinder func(pattern string) ([]string, error)

// ClientSource returns the client handle for an API host. Implementations
// cache handles per (host, credential) pair; callers must not assume a
// fresh handle per call.
type ClientSource func(host string) (ReleaseClient, error)
