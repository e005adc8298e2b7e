package sitegen

import (
	"context"
	"fmt"

	"github.com/alnah/go-sitegen/internal/feed"
)

// FeedSyncer merges the configured feed into the blog manifest.
type FeedSyncer struct {
	syncer *feed.Syncer
}

// NewFeedSyncer creates a FeedSyncer for cfg. Only an unusable
// configuration fails; fetch problems surface in each SyncReport.
func NewFeedSyncer(cfg *Config, opts ...Option) (*FeedSyncer, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	o := buildOptions(opts)

	ua := cfg.Feed.UserAgent
	if ua == "" {
		ua = o.userAgent
	}
	if ua == "" {
		ua = UserAgent("dev", cfg.Site.URL)
	}

	f := cfg.Feed
	syncer, err := feed.NewSyncer(feed.Options{
		FeedURL:           cfg.FeedURL(),
		FallbackURL:       f.FallbackURL,
		ManifestPath:      cfg.Path(f.Manifest),
		BlogURL:           f.BlogURL,
		ImageDir:          cfg.Path(f.ImageDir),
		ImageURLPrefix:    f.ImageURLPrefix,
		Placeholder:       f.Placeholder,
		MaxItems:          f.MaxItems,
		DescriptionLength: f.DescriptionLength,
		DateFormat:        f.DateFormat,
		Concurrency:       f.Concurrency,
		Timeout:           cfg.FeedTimeout(),
		UserAgent:         ua,
		Client:            o.client,
		Logger:            o.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedSetup, err)
	}
	return &FeedSyncer{syncer: syncer}, nil
}

// Sync runs one fetch, merge and write cycle. It never fails: when the
// manifest could not be updated, the report's Err says why.
func (f *FeedSyncer) Sync(ctx context.Context) SyncReport {
	return f.syncer.Sync(ctx)
}
