package apps

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Index records the installed applications.
type Index struct {
	Path string
	Apps []*InstalledApp
}

// InstalledApp is one index entry.
type InstalledApp struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version,omitempty"`
	Description string `yaml:"description,omitempty"`
	Source      string `yaml:"source"`
	Revision    string `yaml:"revision,omitempty"`
	Checksum    string `yaml:"checksum"`
	Dir         string `yaml:"dir"`
	Main        string `yaml:"main"`
	InstalledAt string `yaml:"installed_at"`
}

type indexFile struct {
	Apps []*InstalledApp `yaml:"apps"`
}

// MainPath is the absolute path of the app's entry script.
func (a *InstalledApp) MainPath() string {
	return filepath.Join(a.Dir, filepath.FromSlash(a.Main))
}

// LoadIndex reads the index at path. A missing file is an empty index.
func LoadIndex(path string) (*Index, error) {
	idx := &Index{Path: path}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return idx, nil
		}
		return nil, fmt.Errorf("index: open %s: %w", path, err)
	}
	defer file.Close()

	var raw indexFile
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("index: parse %s: %w", path, err)
	}
	for _, app := range raw.Apps {
		if app != nil {
			idx.Apps = append(idx.Apps, app)
		}
	}
	idx.sort()
	return idx, nil
}

// Write serialises the index back to its path.
func (idx *Index) Write() error {
	if idx.Path == "" {
		return fmt.Errorf("index: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(idx.Path), 0o755); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	idx.sort()
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(indexFile{Apps: idx.Apps}); err != nil {
		return fmt.Errorf("index: marshal %s: %w", idx.Path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("index: encoder close: %w", err)
	}
	if err := os.WriteFile(idx.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("index: write %s: %w", idx.Path, err)
	}
	return nil
}

// Find returns the entry named name, or nil.
func (idx *Index) Find(name string) *InstalledApp {
	for _, app := range idx.Apps {
		if app.Name == name {
			return app
		}
	}
	return nil
}

// Upsert replaces the entry with the same name or adds a new one.
func (idx *Index) Upsert(app *InstalledApp) {
	for i, existing := range idx.Apps {
		if existing.Name == app.Name {
			idx.Apps[i] = app
			return
		}
	}
	idx.Apps = append(idx.Apps, app)
	idx.sort()
}

// Remove drops the entry named name and reports whether it existed.
func (idx *Index) Remove(name string) bool {
	for i, existing := range idx.Apps {
		if existing.Name == name {
			idx.Apps = append(idx.Apps[:i], idx.Apps[i+1:]...)
			return true
		}
	}
	return false
}

func (idx *Index) sort() {
	sort.Slice(idx.Apps, func(i, j int) bool { return idx.Apps[i].Name < idx.Apps[j].Name })
}
