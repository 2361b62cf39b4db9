package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/aoi-dev/shiprel/pkg/domain/model"
)

// Release holds release content configuration
type Release struct {
	Version      string
	TagTemplate  string
	NameTemplate string
	Notes        string
	NotesFile    string
	Prerelease   bool
	Draft        bool
	Assets       []string
	DryRun       bool
}

// Flags returns CLI flags for release configuration
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "version",
			Usage:       "Release version, interpolated into tag and name templates",
			Required:    true,
			Destination: &c.Version,
			Sources:     cli.EnvVars("SHIPREL_VERSION"),
		},
		&cli.StringFlag{
			Name:        "tag-template",
			Usage:       "Tag name template, {version} is replaced",
			Destination: &c.TagTemplate,
			Sources:     cli.EnvVars("SHIPREL_TAG_TEMPLATE"),
		},
		&cli.StringFlag{
			Name:        "name-template",
			Usage:       "Release name template, {version} is replaced",
			Destination: &c.NameTemplate,
			Sources:     cli.EnvVars("SHIPREL_NAME_TEMPLATE"),
		},
		&cli.StringFlag{
			Name:        "notes",
			Usage:       "Changelog body for a created release",
			Destination: &c.Notes,
			Sources:     cli.EnvVars("SHIPREL_NOTES"),
		},
		&cli.StringFlag{
			Name:        "notes-file",
			Usage:       "Read the changelog body from a file",
			Destination: &c.NotesFile,
			Sources:     cli.EnvVars("SHIPREL_NOTES_FILE"),
		},
		&cli.BoolFlag{
			Name:        "prerelease",
			Usage:       "Mark the release as a prerelease",
			Destination: &c.Prerelease,
			Sources:     cli.EnvVars("SHIPREL_PRERELEASE"),
		},
		&cli.BoolFlag{
			Name:        "draft",
			Usage:       "Create the release as a draft",
			Destination: &c.Draft,
			Sources:     cli.EnvVars("SHIPREL_DRAFT"),
		},
		&cli.StringSliceFlag{
			Name:        "assets",
			Usage:       "Glob pattern of asset files to upload (repeatable)",
			Destination: &c.Assets,
			Sources:     cli.EnvVars("SHIPREL_ASSETS"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Log intended actions without any remote call",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("SHIPREL_DRY_RUN"),
		},
	}
}

// Request builds the release request, reading the notes file when one is
// configured. An explicit --notes value wins over the file.
func (c *Release) Request() (*model.ReleaseRequest, error) {
	notes := c.Notes
	if notes == "" && c.NotesFile != "" {
		data, err := os.ReadFile(c.NotesFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read notes file", goerr.V("path", c.NotesFile))
		}
		notes = string(data)
	}

	return &model.ReleaseRequest{
		Version:      c.Version,
		TagTemplate:  c.TagTemplate,
		NameTemplate: c.NameTemplate,
		Notes:        notes,
		Prerelease:   c.Prerelease,
		Draft:        c.Draft,
	}, nil
}
