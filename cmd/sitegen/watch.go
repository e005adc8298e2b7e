package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	sitegen "github.com/alnah/go-sitegen"
	"github.com/alnah/go-sitegen/internal/config"
	"github.com/alnah/go-sitegen/internal/content"
	"github.com/alnah/go-sitegen/internal/logging"
)

// builder is the part of sitegen.Generator watch mode drives.
type builder interface {
	Generate(ctx context.Context) (sitegen.BuildReport, error)
}

// generatedNames are written by the build into watched directories and
// must not trigger another build.
var generatedNames = []string{content.IndexJSON, "manifest.json"}

// watcher rebuilds the site after source changes settle.
type watcher struct {
	fs        *fsnotify.Watcher
	templates string
	log       logging.Logger
}

// watch builds once, then rebuilds after every burst of source changes
// until ctx is canceled. Builds run on the event loop, so they never
// overlap.
func watch(ctx context.Context, cfg *config.Config, b builder, log logging.Logger) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	w := &watcher{fs: fsw, templates: cfg.Path(cfg.Site.TemplatesDir), log: log}
	for _, dir := range watchRoots(cfg) {
		if err := w.addTree(dir); err != nil {
			return err
		}
	}

	if _, err := b.Generate(ctx); err != nil {
		return watchExit(err)
	}
	log.Info("watching for changes", "dirs", len(fsw.WatchList()), "debounce", cfg.WatchDebounce())

	debounce := time.NewTimer(cfg.WatchDebounce())
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("stopped watching")
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			created := ev.Has(fsnotify.Create) && !strings.HasPrefix(filepath.Base(ev.Name), ".") && isDir(ev.Name)
			if created {
				// Files may land in the directory before it is watched.
				if err := w.addTree(ev.Name); err != nil {
					log.Warn("cannot watch new directory", "dir", ev.Name, "error", err)
				}
			}
			if created || w.relevant(ev) {
				log.Debug("source changed", "path", ev.Name, "op", ev.Op.String())
				debounce.Reset(cfg.WatchDebounce())
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)

		case <-debounce.C:
			if _, err := b.Generate(ctx); err != nil {
				return watchExit(err)
			}
		}
	}
}

// watchExit turns cancellation during a build into a clean exit.
func watchExit(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchRoots lists the existing source directories, deduplicated.
// Nested roots are kept; adding a directory twice is harmless.
func watchRoots(cfg *config.Config) []string {
	candidates := []string{
		cfg.Projects.Source,
		cfg.Blog.Source,
		cfg.Research.Source,
		cfg.Research.ItemsDir,
		cfg.Site.TemplatesDir,
	}

	var roots []string
	for _, c := range candidates {
		if c == "" {
			continue
		}
		dir := cfg.Path(c)
		if slices.Contains(roots, dir) || !isDir(dir) {
			continue
		}
		roots = append(roots, dir)
	}
	return roots
}

// addTree watches dir and every directory below it.
func (w *watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

// relevant reports whether ev touches a source: markdown, item JSON, or a
// template. Files the build writes itself are ignored.
func (w *watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") || slices.Contains(generatedNames, name) {
		return false
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".json":
		return true
	case ".html":
		return w.templates != "" && filepath.Dir(ev.Name) == w.templates
	}
	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
