package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/aoi-dev/shiprel/pkg/cli/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shiprel.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
repo = "aoi-dev/shiprel"
host = "ghe.example.com"
tag_template = "rel/{version}"
prerelease = true
assets = ["dist/*.tar.gz", "dist/*.zip"]
`)

	f, err := config.LoadFile(path)
	gt.NoError(t, err)
	gt.String(t, f.Repo).Equal("aoi-dev/shiprel")
	gt.String(t, f.Host).Equal("ghe.example.com")
	gt.String(t, f.TagTemplate).Equal("rel/{version}")
	gt.Value(t, f.Prerelease).Equal(true)
	gt.Array(t, f.Assets).Equal([]string{"dist/*.tar.gz", "dist/*.zip"})
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := config.LoadFile("/no/such/file.toml")
	gt.Error(t, err)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := writeConfig(t, `repo = [broken`)

	_, err := config.LoadFile(path)
	gt.Error(t, err)
}

func TestFile_ApplyTo(t *testing.T) {
	f := &config.File{
		Repo:        "aoi-dev/shiprel",
		TagTemplate: "rel/{version}",
		Assets:      []string{"dist/*"},
		Draft:       true,
	}

	t.Run("fills empty flags", func(t *testing.T) {
		gh := &config.GitHub{}
		rel := &config.Release{}
		f.ApplyTo(gh, rel)

		gt.String(t, gh.Repo).Equal("aoi-dev/shiprel")
		gt.String(t, rel.TagTemplate).Equal("rel/{version}")
		gt.Array(t, rel.Assets).Equal([]string{"dist/*"})
		gt.Value(t, rel.Draft).Equal(true)
	})

	t.Run("flags take precedence", func(t *testing.T) {
		gh := &config.GitHub{Repo: "other/repo"}
		rel := &config.Release{TagTemplate: "v{version}", Assets: []string{"build/*"}}
		f.ApplyTo(gh, rel)

		gt.String(t, gh.Repo).Equal("other/repo")
		gt.String(t, rel.TagTemplate).Equal("v{version}")
		gt.Array(t, rel.Assets).Equal([]string{"build/*"})
	})
}

func TestGitHub_Coordinates(t *testing.T) {
	gh := &config.GitHub{Repo: "aoi-dev/shiprel", Host: "ghe.example.com"}

	repo, err := gh.Coordinates()
	gt.NoError(t, err)
	gt.String(t, repo.Owner).Equal("aoi-dev")
	gt.String(t, repo.Repo).Equal("shiprel")
	gt.String(t, repo.Host).Equal("ghe.example.com")

	for _, invalid := range []string{"", "justowner", "/name", "owner/"} {
		gh := &config.GitHub{Repo: invalid}
		_, err := gh.Coordinates()
		gt.Error(t, err)
	}
}

func TestRelease_Request(t *testing.T) {
	notesPath := filepath.Join(t.TempDir(), "CHANGELOG.md")
	gt.NoError(t, os.WriteFile(notesPath, []byte("## 1.0.0\n- first"), 0600))

	t.Run("notes from file", func(t *testing.T) {
		c := &config.Release{Version: "1.0.0", NotesFile: notesPath}
		req, err := c.Request()
		gt.NoError(t, err)
		gt.String(t, req.Notes).Equal("## 1.0.0\n- first")
	})

	t.Run("inline notes win over file", func(t *testing.T) {
		c := &config.Release{Version: "1.0.0", Notes: "inline", NotesFile: notesPath}
		req, err := c.Request()
		gt.NoError(t, err)
		gt.String(t, req.Notes).Equal("inline")
	})

	t.Run("missing notes file", func(t *testing.T) {
		c := &config.Release{Version: "1.0.0", NotesFile: "/no/such/notes.md"}
		_, err := c.Request()
		gt.Error(t, err)
	})
}
