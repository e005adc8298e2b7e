package sitegen

import (
	"net/http"
	"time"

	"github.com/alnah/go-sitegen/internal/assets"
	"github.com/alnah/go-sitegen/internal/config"
	"github.com/alnah/go-sitegen/internal/feed"
	"github.com/alnah/go-sitegen/internal/logging"
	"github.com/alnah/go-sitegen/internal/pipeline"
)

// Config is the site layout and behavior. See LoadConfig.
type Config = config.Config

// Logger receives structured log lines as key/value pairs.
type Logger = logging.Logger

// AssetLoader provides page templates and browser scripts.
type AssetLoader = assets.AssetLoader

// HTMLConverter converts a markdown body to an HTML fragment.
type HTMLConverter = pipeline.HTMLConverter

// SyncReport describes the outcome of one feed sync.
type SyncReport = feed.Report

// DefaultConfig returns the built-in site layout.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig reads sitegen.yaml (or .yml) from dir over the defaults.
// path is empty when no file exists.
func LoadConfig(dir string) (cfg *Config, path string, err error) {
	return config.Load(dir)
}

// BuildReport summarizes one Generate run.
type BuildReport struct {
	Projects         int  // Project articles rendered
	ProjectsInjected bool // Whether the projects host page changed
	Pages            int  // Blog and research pages written
	IndexPages       int  // Fallback index pages created
	ResearchItems    int  // Items in the research manifest
	Grids            int  // Grid host pages changed
	Warnings         int
	Duration         time.Duration
}

// Option configures a Generator or FeedSyncer.
type Option func(*options)

type options struct {
	logger    Logger
	loader    AssetLoader
	converter HTMLConverter
	client    *http.Client
	userAgent string
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithAssetLoader replaces the templates directory of the config.
func WithAssetLoader(l AssetLoader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithConverter replaces the goldmark markdown converter.
func WithConverter(c HTMLConverter) Option {
	return func(o *options) {
		o.converter = c
	}
}

// WithHTTPClient sets the client used by feed syncs.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithUserAgent sets the feed client identity when the config has none.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// UserAgent formats the default feed client identity.
func UserAgent(version, siteURL string) string {
	ua := "go-sitegen/" + version
	if siteURL != "" {
		ua += " (+" + siteURL + ")"
	}
	return ua
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrNop(o.logger)
	return o
}
