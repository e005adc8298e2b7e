// Command feedsync merges the site owner's Medium feed into the blog
// manifest. It is meant for a scheduler: network and feed problems are
// logged and leave the manifest as it was, and the exit status is zero
// unless the configuration is invalid.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	sitegen "github.com/alnah/go-sitegen"
	"github.com/alnah/go-sitegen/internal/hints"
	"github.com/alnah/go-sitegen/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Exit codes for the feedsync CLI.
const (
	ExitSuccess = 0
	ExitConfig  = 2 // Invalid config; every other failure still exits 0
)

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	os.Exit(run(context.Background(), dir, os.Stderr, nil))
}

// run syncs the feed for the site rooted at dir. A nil logger is built
// from the config's logging section.
func run(ctx context.Context, dir string, stderr io.Writer, log logging.Logger) int {
	cfg, path, err := sitegen.LoadConfig(dir)
	if err != nil {
		fmt.Fprintln(stderr, err.Error()+hints.ForConfigInvalid(path))
		return ExitConfig
	}

	if log == nil {
		p, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitConfig
		}
		log = p.GetLogger("feed")
	}

	syncer, err := sitegen.NewFeedSyncer(cfg,
		sitegen.WithLogger(log),
		sitegen.WithUserAgent(sitegen.UserAgent(Version, cfg.Site.URL)),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitConfig
	}

	start := time.Now()
	report := syncer.Sync(ctx)
	if report.Err != nil {
		log.Warn("feed sync skipped, manifest unchanged", "error", report.Err)
		return ExitSuccess
	}
	log.Debug("feed sync finished", "source", report.Source, "duration", time.Since(start).Round(time.Millisecond))
	return ExitSuccess
}
