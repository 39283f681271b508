package apps

import (
	"fmt"
	"os"
	"path/filepath"
)

const scaffoldMain = `-- entry point for %s
fn greet(name) {
  print("Hello from ", name, "!")
}

greet(%q)
`

// Scaffold creates a new app directory named name under parent with an app.yml
// and a main.pl, returning the manifest it wrote.
func Scaffold(parent, name string) (*Manifest, error) {
	if !appNamePattern.MatchString(name) {
		return nil, fmt.Errorf("new: invalid app name %q", name)
	}
	dir := filepath.Join(parent, name)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("new: %s already exists", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	manifest := &Manifest{
		Path:        filepath.Join(dir, ManifestFile),
		Name:        name,
		Version:     "0.1.0",
		Description: "A plang application",
		Main:        DefaultMain,
	}
	if err := WriteManifest(manifest, manifest.Path); err != nil {
		return nil, err
	}
	main := fmt.Sprintf(scaffoldMain, name, name)
	if err := os.WriteFile(manifest.MainPath(), []byte(main), 0o644); err != nil {
		return nil, fmt.Errorf("new: write %s: %w", manifest.MainPath(), err)
	}
	return manifest, nil
}
