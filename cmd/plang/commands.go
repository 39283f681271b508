package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/c0d3-dump/plang/pkg/apps"
	"github.com/c0d3-dump/plang/pkg/builtins"
	"github.com/c0d3-dump/plang/pkg/interpreter"
	"github.com/c0d3-dump/plang/pkg/parser"
	"github.com/c0d3-dump/plang/pkg/runtime"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newInterpreter() (*interpreter.Interpreter, error) {
	interp := interpreter.New()
	if err := builtins.Register(interp, nil); err != nil {
		return nil, err
	}
	return interp, nil
}

func (c *cli) store() *apps.Store {
	return apps.NewStore(c.cfg.Home)
}

func (c *cli) runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "plang run expects a single script, app directory, or installed app")
		return 1
	}
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	script, err := c.resolveScript(target)
	if err != nil {
		reportError(err)
		return 1
	}
	return c.executeFile(script)
}

// resolveScript maps a run target to the script to execute: a file as is, a
// directory through its app.yml, anything else through the installed index.
func (c *cli) resolveScript(target string) (string, error) {
	info, err := os.Stat(target)
	switch {
	case err == nil && !info.IsDir():
		return target, nil
	case err == nil:
		manifest, err := apps.LoadManifest(filepath.Join(target, apps.ManifestFile))
		if err != nil {
			return "", err
		}
		c.logger.Printf("app %s %s from %s", manifest.Name, manifest.Version, manifest.Path)
		return manifest.MainPath(), nil
	case !errors.Is(err, os.ErrNotExist):
		return "", err
	}

	app, err := c.store().Verify(target)
	var mismatch *apps.ChecksumMismatchError
	switch {
	case errors.As(err, &mismatch):
		reportWarning("%v", mismatch)
	case errors.Is(err, apps.ErrNotInstalled):
		return "", fmt.Errorf("%s: no such file or installed app", target)
	case err != nil:
		return "", err
	}
	c.logger.Printf("installed app %s %s at %s", app.Name, app.Revision, app.Dir)
	return app.MainPath(), nil
}

func (c *cli) executeFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		reportError(err)
		return 1
	}
	program, err := parser.ParseSource(string(source))
	if err != nil {
		reportParseError(os.Stderr, path, err)
		return 1
	}
	c.logger.Printf("parsed %s: %d statements", path, len(program.Statements))

	interp, err := newInterpreter()
	if err != nil {
		reportError(err)
		return 1
	}
	ctx, stop := signalContext()
	defer stop()

	result, err := interp.Run(ctx, program)
	if err != nil {
		reportRuntimeError(os.Stderr, path, err)
		return 1
	}
	if !runtime.IsVoid(result) {
		c.logger.Printf("%s returned %s", path, builtins.Format(result))
	}
	return 0
}

func (c *cli) checkEntry(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "plang check requires at least one file")
		return 1
	}
	code := 0
	for _, path := range args {
		source, err := os.ReadFile(path)
		if err != nil {
			reportError(err)
			code = 1
			continue
		}
		if _, err := parser.ParseSource(string(source)); err != nil {
			reportParseError(os.Stderr, path, err)
			code = 1
			continue
		}
		fmt.Fprintf(os.Stdout, "%s: %s\n", path, okText("ok"))
	}
	return code
}

func (c *cli) newEntry(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "plang new requires an app name")
		return 1
	}
	manifest, err := apps.Scaffold(".", args[0])
	if err != nil {
		reportError(err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "created %s\n", manifest.Dir())
	return 0
}

func (c *cli) installEntry(args []string) int {
	opts, optind, err := getopt.Getopts(append([]string{"install"}, args...), "b:")
	if err != nil {
		reportError(err)
		return 1
	}
	args = args[optind-1:]
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "plang install requires a git url, repository path, or registry name")
		return 1
	}
	install := apps.InstallOptions{Source: args[0]}
	for _, opt := range opts {
		if opt.Option == 'b' {
			install.Branch = opt.Value
		}
	}

	if looksLikeRegistryName(install.Source) && c.cfg.Registry != "" {
		entry, err := apps.NewRegistry(c.cfg.Registry).Lookup(install.Source)
		if err != nil {
			reportError(err)
			return 1
		}
		c.logger.Printf("registry resolved %s to %s", entry.Name, entry.Source)
		install.Source = entry.Source
	}

	ctx, stop := signalContext()
	defer stop()
	app, err := c.store().Install(ctx, install)
	if err != nil {
		reportError(err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "installed %s %s (%s)\n", app.Name, app.Version, shortRevision(app.Revision))
	return 0
}

func (c *cli) uninstallEntry(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "plang uninstall requires an app name")
		return 1
	}
	if err := c.store().Uninstall(args[0]); err != nil {
		reportError(err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "removed %s\n", args[0])
	return 0
}

func (c *cli) listEntry(args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "plang list takes no arguments")
		return 1
	}
	installed, err := c.store().List()
	if err != nil {
		reportError(err)
		return 1
	}
	for _, app := range installed {
		fmt.Fprintf(os.Stdout, "%-20s %-10s %s  %s\n", app.Name, app.Version, shortRevision(app.Revision), app.Source)
	}
	return 0
}

func (c *cli) searchEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "plang search takes at most one term")
		return 1
	}
	term := ""
	if len(args) == 1 {
		term = args[0]
	}
	matches, err := apps.NewRegistry(c.cfg.Registry).Search(term)
	if err != nil {
		reportError(err)
		return 1
	}
	for _, entry := range matches {
		fmt.Fprintf(os.Stdout, "%-20s %-10s %s\n", entry.Name, entry.Version, entry.Description)
	}
	return 0
}

// looksLikeRegistryName reports whether an install source is a bare name rather
// than a URL or a path on disk.
func looksLikeRegistryName(source string) bool {
	if strings.ContainsAny(source, `/\:@`) || strings.HasPrefix(source, ".") {
		return false
	}
	_, err := os.Stat(source)
	return errors.Is(err, os.ErrNotExist)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
