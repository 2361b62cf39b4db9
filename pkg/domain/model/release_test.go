package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/aoi-dev/shiprel/pkg/domain/model"
)

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     string
		version  string
		expected string
	}{
		{
			name:     "plain placeholder",
			tmpl:     "v{version}",
			version:  "1.2.3",
			expected: "v1.2.3",
		},
		{
			name:     "placeholder in the middle",
			tmpl:     "release-{version}-stable",
			version:  "2.0",
			expected: "release-2.0-stable",
		},
		{
			name:     "no placeholder",
			tmpl:     "nightly",
			version:  "1.0.0",
			expected: "nightly",
		},
		{
			name:     "repeated placeholder",
			tmpl:     "{version}/{version}",
			version:  "3",
			expected: "3/3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.String(t, model.RenderTemplate(tt.tmpl, tt.version)).Equal(tt.expected)
		})
	}
}

func TestReleaseRequest_Defaults(t *testing.T) {
	req := &model.ReleaseRequest{Version: "1.2.3"}

	gt.String(t, req.TagName()).Equal("v1.2.3")
	gt.String(t, req.ReleaseName()).Equal("1.2.3")
}

func TestReleaseRequest_Params(t *testing.T) {
	req := &model.ReleaseRequest{
		Version:      "0.9.0",
		TagTemplate:  "rel/{version}",
		NameTemplate: "Release {version}",
		Notes:        "fixes",
		Prerelease:   true,
		Draft:        true,
	}

	params := req.Params()
	gt.String(t, params.TagName).Equal("rel/0.9.0")
	gt.String(t, params.Name).Equal("Release 0.9.0")
	gt.String(t, params.Body).Equal("fixes")
	gt.Value(t, params.Prerelease).Equal(true)
	gt.Value(t, params.Draft).Equal(true)
}

func TestNewAssetUpload(t *testing.T) {
	up := model.NewAssetUpload(42, "dist/linux/app-1.0.0.tar.gz")

	gt.Number(t, up.ReleaseID).Equal(int64(42))
	gt.String(t, up.Path).Equal("dist/linux/app-1.0.0.tar.gz")
	gt.String(t, up.Name).Equal("app-1.0.0.tar.gz")
}
