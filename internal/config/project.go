package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Project represents the top-level funpipe.yml configuration.
type Project struct {
	// Name is the project name, used only for display.
	Name string `yaml:"name,omitempty"`

	// Requires is an optional semver constraint on the tool version
	// (e.g. ">= 0.4", "~0.4.1"). Checking fails when the running tool
	// does not satisfy it.
	Requires string `yaml:"requires,omitempty"`

	// Warnings toggles individual warning groups. All groups default to on.
	Warnings Warnings `yaml:"warnings,omitempty"`
}

// Warnings holds per-group warning switches.
type Warnings struct {
	// Unreachable controls warnings for code that follows an aborting
	// expression.
	Unreachable *bool `yaml:"unreachable,omitempty"`

	// Todo controls warnings for todo/panic placeholders used as pipeline
	// targets.
	Todo *bool `yaml:"todo,omitempty"`
}

// UnreachableEnabled reports whether unreachable-code warnings are on.
func (w Warnings) UnreachableEnabled() bool {
	return w.Unreachable == nil || *w.Unreachable
}

// TodoEnabled reports whether placeholder warnings are on.
func (w Warnings) TodoEnabled() bool {
	return w.Todo == nil || *w.Todo
}

// LoadProject reads and parses a funpipe.yml file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseProject(data, path)
}

// ParseProject parses funpipe.yml content from bytes. Unknown keys are
// rejected, so a misspelled toggle fails instead of being ignored. An empty
// manifest is valid and means all defaults. The path argument is used only
// for error messages.
func ParseProject(data []byte, path string) (*Project, error) {
	var p Project
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.validate(path); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindProject searches for funpipe.yml starting from dir and walking up to
// parent directories, similar to how .gitignore is found. Returns the path to
// the manifest and nil error if found, or empty string and nil error if not.
func FindProject(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ManifestFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the manifest for semantic errors.
func (p *Project) validate(path string) error {
	if p.Requires == "" {
		return nil
	}
	c, err := semver.NewConstraint(p.Requires)
	if err != nil {
		return fmt.Errorf("%s: invalid requires constraint %q: %w", path, p.Requires, err)
	}
	v, err := semver.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("parsing tool version %q: %w", Version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%s: requires funpipe %s, this is %s", path, p.Requires, Version)
	}
	return nil
}
