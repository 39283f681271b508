// Package apps manages installed plang applications: app.yml manifests, the
// installed-app index, git installs, registry search and project scaffolding.
package apps

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ManifestFile = "app.yml"
	DefaultMain  = "main.pl"
)

var appNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Manifest represents the parsed contents of app.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Description string
	Main        string
	Authors     []string
}

type manifestFile struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Main        string   `yaml:"main,omitempty"`
	Authors     []string `yaml:"authors,omitempty"`
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses app.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := &Manifest{
		Path:        absPath,
		Name:        strings.TrimSpace(raw.Name),
		Version:     strings.TrimSpace(raw.Version),
		Description: strings.TrimSpace(raw.Description),
		Main:        strings.TrimSpace(raw.Main),
		Authors:     raw.Authors,
	}
	if manifest.Main == "" {
		manifest.Main = DefaultMain
	}
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// WriteManifest serialises m to path.
func WriteManifest(m *Manifest, path string) error {
	raw := manifestFile{
		Name:        m.Name,
		Version:     m.Version,
		Description: m.Description,
		Main:        m.Main,
		Authors:     m.Authors,
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("manifest: marshal %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("manifest: encoder close: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	return nil
}

// Dir is the directory holding the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// MainPath is the absolute path of the entry script.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.Dir(), filepath.FromSlash(m.Main))
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	} else if !appNamePattern.MatchString(m.Name) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("name %q must be lowercase letters, digits, '-' or '_'", m.Name))
	}
	if filepath.IsAbs(m.Main) || strings.HasPrefix(filepath.Clean(filepath.FromSlash(m.Main)), "..") {
		errs.Issues = append(errs.Issues, fmt.Sprintf("main %q must be a path inside the app", m.Main))
	}
	for i, author := range m.Authors {
		if strings.TrimSpace(author) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("authors[%d] must be a non-empty string", i))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
