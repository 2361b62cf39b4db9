package model

import "path/filepath"

// AssetUpload describes a single file to attach to a release
type AssetUpload struct {
	ReleaseID int64  // Release the asset belongs to
	Path      string // Local file path
	Name      string // Display name shown on the release page
}

// NewAssetUpload builds an upload request for path, using the file's
// basename as the display name
func NewAssetUpload(releaseID int64, path string) *AssetUpload {
	return &AssetUpload{
		ReleaseID: releaseID,
		Path:      path,
		Name:      filepath.Base(path),
	}
}

// UploadedAsset is the remote service's record of an attached asset
type UploadedAsset struct {
	Name string // Asset display name
	URL  string // Browser download location
}
