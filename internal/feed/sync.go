package feed

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/alnah/go-sitegen/internal/dateutil"
	"github.com/alnah/go-sitegen/internal/hints"
	"github.com/alnah/go-sitegen/internal/logging"
	"github.com/alnah/go-sitegen/internal/manifest"
)

// Defaults applied to zero Options fields.
const (
	DefaultMaxItems          = 12
	DefaultDescriptionLength = 220
	DefaultPlaceholder       = "/assets/images/placeholder.svg"
	DefaultTimeout           = 30 * time.Second
	DefaultUserAgent         = "go-sitegen"
	maxConcurrency           = 8
)

// Sources an item set can come from.
const (
	SourceFeed     = "feed"
	SourceFallback = "fallback"
	SourceNone     = "none"
)

// Options configure a Syncer. FeedURL, ManifestPath and ImageDir are
// required; zero values elsewhere take the package defaults.
type Options struct {
	FeedURL      string
	FallbackURL  string // rss2json-compatible endpoint, empty = no fallback
	ManifestPath string
	BlogURL      string // Site path of local posts, for merge keys

	ImageDir       string // Where thumbnails are cached on disk
	ImageURLPrefix string // Site path of ImageDir
	Placeholder    string

	MaxItems          int
	DescriptionLength int
	DateFormat        string
	Concurrency       int // Parallel thumbnail downloads, 0 = from GOMAXPROCS
	Timeout           time.Duration
	UserAgent         string

	Client *http.Client
	Logger logging.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxItems <= 0 {
		o.MaxItems = DefaultMaxItems
	}
	if o.DescriptionLength <= 0 {
		o.DescriptionLength = DefaultDescriptionLength
	}
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	if o.DateFormat == "" {
		o.DateFormat = dateutil.DefaultDateFormat
	}
	if o.Concurrency <= 0 {
		o.Concurrency = min(max(runtime.GOMAXPROCS(0), 1), maxConcurrency)
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.BlogURL == "" {
		o.BlogURL = "/blog"
	}
	return o
}

// Report describes the outcome of one sync.
type Report struct {
	Source    string // SourceFeed, SourceFallback or SourceNone
	Fetched   int    // Remote items after normalization and cap
	Local     int    // Items read from the existing manifest
	Merged    int    // Items written
	Localized int    // Thumbnails pointing at local copies
	Changed   bool   // Whether the manifest file was rewritten
	Err       error  // Why the manifest was left untouched, if it was
}

// Syncer merges a remote feed into a manifest file.
type Syncer struct {
	opts   Options
	client *http.Client
	parser *gofeed.Parser
	log    logging.Logger
}

// NewSyncer creates a Syncer.
func NewSyncer(opts Options) (*Syncer, error) {
	if opts.FeedURL == "" {
		return nil, errors.New("feed: FeedURL is required")
	}
	if opts.ManifestPath == "" {
		return nil, errors.New("feed: ManifestPath is required")
	}
	if opts.ImageDir == "" {
		return nil, errors.New("feed: ImageDir is required")
	}
	opts = opts.withDefaults()

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &Syncer{
		opts:   opts,
		client: client,
		parser: gofeed.NewParser(),
		log:    logging.OrNop(opts.Logger),
	}, nil
}

// Sync runs one fetch, merge and write cycle. It never returns an error:
// when the cycle cannot complete, Report.Err holds the cause and the
// manifest file is left as it was.
func (s *Syncer) Sync(ctx context.Context) Report {
	report := Report{Source: SourceNone}
	fail := func(err error, msg string, hint string) Report {
		report.Err = err
		s.log.Warn(msg+hint, "feed", s.opts.FeedURL, "manifest", s.opts.ManifestPath, "error", err)
		return report
	}

	remote, source, err := s.fetchItems(ctx)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return fail(err, "feed fetch failed, manifest unchanged", hints.ForFeedStatus(statusErr.Code))
		}
		return fail(err, "feed fetch failed, manifest unchanged", hints.ForNetwork(""))
	}
	report.Source = source
	report.Fetched = len(remote)

	local, err := manifest.Read(s.opts.ManifestPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fail(err, "cannot read existing manifest, manifest unchanged", "")
	}
	report.Local = len(local)

	merged := manifest.Merge(local, remote, s.opts.BlogURL)
	manifest.SortByDateDesc(merged, manifest.ItemDate)
	report.Localized = s.localizeThumbnails(ctx, merged)
	report.Merged = len(merged)

	changed, err := manifest.Write(s.opts.ManifestPath, merged)
	if err != nil {
		return fail(err, "cannot write manifest", "")
	}
	report.Changed = changed

	s.log.Info("feed synced",
		"source", report.Source,
		"fetched", report.Fetched,
		"local", report.Local,
		"merged", report.Merged,
		"localized", report.Localized,
		"changed", report.Changed,
	)
	return report
}

// fetchItems reads the primary feed and, when it yields nothing usable,
// the fallback aggregator. A primary transport or status failure aborts
// the sync; fallback failures only mean no remote items.
func (s *Syncer) fetchItems(ctx context.Context) ([]manifest.Item, string, error) {
	body, _, err := s.get(ctx, s.opts.FeedURL, rssAccept, MaxFeedSize)
	if err != nil {
		return nil, "", err
	}

	var items []manifest.Item
	parsed, err := s.parser.Parse(bytes.NewReader(body))
	if err != nil {
		s.log.Warn("feed payload does not parse", "feed", s.opts.FeedURL, "error", err)
	} else {
		items = s.normalize(fromFeed(parsed))
	}
	if len(items) > 0 {
		return items, SourceFeed, nil
	}

	if s.opts.FallbackURL == "" {
		s.log.Warn("feed has no usable entries", "feed", s.opts.FeedURL)
		return nil, SourceNone, nil
	}

	s.log.Warn("feed has no usable entries, trying fallback aggregator", "feed", s.opts.FeedURL)
	entries, err := s.fetchFallback(ctx)
	if err != nil {
		s.log.Warn("fallback aggregator failed", "error", err)
		return nil, SourceNone, nil
	}
	items = s.normalize(entries)
	if len(items) == 0 {
		s.log.Warn("fallback aggregator returned no usable entries", "error", ErrNoEntries)
		return nil, SourceNone, nil
	}
	return items, SourceFallback, nil
}
