package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// File is an optional TOML configuration file supplying defaults for
// repository and release settings. Flag and environment values take
// precedence over file values.
type File struct {
	Repo         string   `toml:"repo"`
	Host         string   `toml:"host"`
	TagTemplate  string   `toml:"tag_template"`
	NameTemplate string   `toml:"name_template"`
	NotesFile    string   `toml:"notes_file"`
	Prerelease   bool     `toml:"prerelease"`
	Draft        bool     `toml:"draft"`
	Assets       []string `toml:"assets"`
}

// LoadFile reads and parses a TOML config file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &f, nil
}

// ApplyTo fills in settings the flags left empty. Boolean file values only
// apply when true; there is no way to override a true flag back to false
// from the file, which keeps flag precedence unambiguous.
func (f *File) ApplyTo(gh *GitHub, rel *Release) {
	if gh.Repo == "" {
		gh.Repo = f.Repo
	}
	if gh.Host == "" {
		gh.Host = f.Host
	}
	if rel.TagTemplate == "" {
		rel.TagTemplate = f.TagTemplate
	}
	if rel.NameTemplate == "" {
		rel.NameTemplate = f.NameTemplate
	}
	if rel.NotesFile == "" {
		rel.NotesFile = f.NotesFile
	}
	if f.Prerelease {
		rel.Prerelease = true
	}
	if f.Draft {
		rel.Draft = true
	}
	if len(rel.Assets) == 0 {
		rel.Assets = f.Assets
	}
}
