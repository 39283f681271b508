package apps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotInstalled is returned when an app name is not in the index.
var ErrNotInstalled = errors.New("app not installed")

// ChecksumMismatchError reports an installed app whose files changed after
// installation.
type ChecksumMismatchError struct {
	Name     string
	Expected string
	Actual   string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("app %s: checksum mismatch (index %s, disk %s)", e.Name, short(e.Expected), short(e.Actual))
}

// Store is the on-disk application store rooted at a plang home directory.
type Store struct {
	Home string

	now    func() time.Time
	rename func(oldpath, newpath string) error
}

func NewStore(home string) *Store {
	return &Store{Home: home, now: time.Now, rename: os.Rename}
}

func (s *Store) AppsDir() string {
	return filepath.Join(s.Home, "apps")
}

func (s *Store) IndexPath() string {
	return filepath.Join(s.Home, "index.yml")
}

// List returns the installed apps sorted by name.
func (s *Store) List() ([]*InstalledApp, error) {
	idx, err := LoadIndex(s.IndexPath())
	if err != nil {
		return nil, err
	}
	return idx.Apps, nil
}

// Lookup returns the index entry for name.
func (s *Store) Lookup(name string) (*InstalledApp, error) {
	idx, err := LoadIndex(s.IndexPath())
	if err != nil {
		return nil, err
	}
	app := idx.Find(name)
	if app == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNotInstalled)
	}
	return app, nil
}

// Verify recomputes the checksum of an installed app and compares it with the
// recorded one.
func (s *Store) Verify(name string) (*InstalledApp, error) {
	app, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	actual, err := DirChecksum(app.Dir)
	if err != nil {
		return app, fmt.Errorf("app %s: %w", name, err)
	}
	if actual != app.Checksum {
		return app, &ChecksumMismatchError{Name: name, Expected: app.Checksum, Actual: actual}
	}
	return app, nil
}

// InstallOptions selects what to install.
type InstallOptions struct {
	// Source is a git URL or a local repository path.
	Source string
	// Branch checks out a branch instead of the remote HEAD.
	Branch string
}

// Install clones the source, validates its app.yml and records it in the
// index. Installing an app that is already present replaces it.
func (s *Store) Install(ctx context.Context, opts InstallOptions) (*InstalledApp, error) {
	source := strings.TrimSpace(opts.Source)
	if source == "" {
		return nil, fmt.Errorf("install: source required")
	}
	appsDir := s.AppsDir()
	if err := os.MkdirAll(appsDir, 0o755); err != nil {
		return nil, fmt.Errorf("install: %w", err)
	}

	tmpDir, err := os.MkdirTemp(appsDir, ".install-*")
	if err != nil {
		return nil, fmt.Errorf("install: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }
	if err := os.RemoveAll(tmpDir); err != nil {
		return nil, fmt.Errorf("install: %w", err)
	}

	cloneOpts := &git.CloneOptions{URL: source}
	if branch := strings.TrimSpace(opts.Branch); branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		cloneOpts.SingleBranch = true
	}
	repo, err := git.PlainCloneContext(ctx, tmpDir, false, cloneOpts)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("git clone %s: %w", source, err)
	}
	head, err := repo.Head()
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("git head %s: %w", source, err)
	}

	manifest, err := LoadManifest(filepath.Join(tmpDir, ManifestFile))
	if err != nil {
		cleanup()
		return nil, err
	}
	if _, err := os.Stat(manifest.MainPath()); err != nil {
		cleanup()
		return nil, fmt.Errorf("install %s: main script %s: %w", manifest.Name, manifest.Main, err)
	}

	target := filepath.Join(appsDir, manifest.Name)
	backup := filepath.Join(appsDir, ".previous-"+manifest.Name)
	if err := os.RemoveAll(backup); err != nil {
		cleanup()
		return nil, fmt.Errorf("install %s: %w", manifest.Name, err)
	}
	hadPrevious := false
	if _, err := os.Stat(target); err == nil {
		if err := s.rename(target, backup); err != nil {
			cleanup()
			return nil, fmt.Errorf("install %s: %w", manifest.Name, err)
		}
		hadPrevious = true
	}
	// restore puts the previous install back after a failure past this point.
	restore := func() {
		_ = os.RemoveAll(target)
		if hadPrevious {
			_ = s.rename(backup, target)
		}
	}
	if err := s.rename(tmpDir, target); err != nil {
		cleanup()
		restore()
		return nil, fmt.Errorf("install %s: %w", manifest.Name, err)
	}

	checksum, err := DirChecksum(target)
	if err != nil {
		restore()
		return nil, fmt.Errorf("install %s: %w", manifest.Name, err)
	}
	app := &InstalledApp{
		Name:        manifest.Name,
		Version:     manifest.Version,
		Description: manifest.Description,
		Source:      source,
		Revision:    head.Hash().String(),
		Checksum:    checksum,
		Dir:         target,
		Main:        manifest.Main,
		InstalledAt: s.now().UTC().Format(time.RFC3339),
	}

	idx, err := LoadIndex(s.IndexPath())
	if err != nil {
		restore()
		return nil, err
	}
	idx.Upsert(app)
	if err := idx.Write(); err != nil {
		restore()
		return nil, err
	}
	_ = os.RemoveAll(backup)
	return app, nil
}

// Uninstall removes an app's files and its index entry.
func (s *Store) Uninstall(name string) error {
	idx, err := LoadIndex(s.IndexPath())
	if err != nil {
		return err
	}
	app := idx.Find(name)
	if app == nil {
		return fmt.Errorf("%s: %w", name, ErrNotInstalled)
	}
	if err := os.RemoveAll(app.Dir); err != nil {
		return fmt.Errorf("uninstall %s: %w", name, err)
	}
	idx.Remove(name)
	return idx.Write()
}

func short(checksum string) string {
	if len(checksum) > 12 {
		return checksum[:12]
	}
	return checksum
}
