package model

import "strings"

// Default templates applied when the caller leaves them empty.
// The {version} placeholder is replaced with the release version.
const (
	DefaultTagTemplate  = "v{version}"
	DefaultNameTemplate = "{version}"
)

// RepoCoordinates identifies the remote repository. Immutable, supplied by
// the caller; Host is empty for github.com and a bare hostname for a
// GitHub Enterprise instance.
type RepoCoordinates struct {
	Host  string // API host, "" means github.com
	Owner string // Repository owner
	Repo  string // Repository name
}

// ReleaseRequest describes the release to resolve or create
type ReleaseRequest struct {
	Version      string // Release version, interpolated into templates
	TagTemplate  string // Tag name template, e.g. "v{version}"
	NameTemplate string // Release name template
	Notes        string // Changelog body attached to a created release
	Prerelease   bool   // Mark the release as a prerelease
	Draft        bool   // Create the release as a draft
}

// TagName renders the tag template with the request version
func (r *ReleaseRequest) TagName() string {
	tmpl := r.TagTemplate
	if tmpl == "" {
		tmpl = DefaultTagTemplate
	}
	return RenderTemplate(tmpl, r.Version)
}

// ReleaseName renders the release name template with the request version
func (r *ReleaseRequest) ReleaseName() string {
	tmpl := r.NameTemplate
	if tmpl == "" {
		tmpl = DefaultNameTemplate
	}
	return RenderTemplate(tmpl, r.Version)
}

// Params interpolates the request templates into concrete creation parameters
func (r *ReleaseRequest) Params() *ReleaseParams {
	return &ReleaseParams{
		TagName:    r.TagName(),
		Name:       r.ReleaseName(),
		Body:       r.Notes,
		Prerelease: r.Prerelease,
		Draft:      r.Draft,
	}
}

// ReleaseParams carries the already-interpolated values for a release
// creation call
type ReleaseParams struct {
	TagName    string
	Name       string
	Body       string
	Prerelease bool
	Draft      bool
}

// ReleaseRecord is the remote service's representation of a tagged release
type ReleaseRecord struct {
	ID      int64  // Opaque identifier used for asset attachment
	TagName string // Tag the release points at
	URL     string // HTML location of the release
}

// RenderTemplate replaces every {version} placeholder in tmpl with version
func RenderTemplate(tmpl, version string) string {
	return strings.ReplaceAll(tmpl, "{version}", version)
}
