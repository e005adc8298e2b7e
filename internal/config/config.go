package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-sitegen/internal/dateutil"
	"github.com/alnah/go-sitegen/internal/fileutil"
	"github.com/alnah/go-sitegen/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigParse  = errors.New("failed to parse config")
	ErrFieldTooLong = errors.New("field exceeds maximum length")
	ErrInvalidValue = errors.New("invalid config value")
)

// FileName is the config file looked up in the site root, with a .yaml or
// .yml extension. The file is optional.
const FileName = "sitegen"

// Field length limits.
const (
	MaxPathLength      = 1024
	MaxURLLength       = 2048 // Browser limit
	MaxMarkerLength    = 200
	MaxUsernameLength  = 100
	MaxUserAgentLength = 256
	MaxTitleLength     = 200
)

// Feed defaults. The username is the site owner's Medium handle.
const (
	DefaultFeedUsername      = "markus.koefler11"
	DefaultFeedFallbackURL   = "https://api.rss2json.com/v1/api.json"
	DefaultMaxItems          = 12
	DefaultDescriptionLength = 220
	DefaultPlaceholder       = "/assets/images/placeholder.svg"
	DefaultMarkerStart       = "<!-- MARKER_START -->"
	DefaultMarkerEnd         = "<!-- MARKER_END -->"
)

// Config holds all configuration for a site build and feed sync.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Projects ProjectsConfig `yaml:"projects"`
	Blog     SectionConfig  `yaml:"blog"`
	Research ResearchConfig `yaml:"research"`
	Grids    []GridConfig   `yaml:"grids"`
	Feed     FeedConfig     `yaml:"feed"`
	Watch    WatchConfig    `yaml:"watch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig locates the site on disk. Every other path in the config is
// relative to Root unless absolute.
type SiteConfig struct {
	Root         string `yaml:"root"`
	URL          string `yaml:"url"`          // Public site URL, used in the feed User-Agent
	TemplatesDir string `yaml:"templatesDir"` // Site templates overriding the built-ins
	ScriptsDir   string `yaml:"scriptsDir"`   // Where the grid hydrator is written
	RawHTML      bool   `yaml:"rawHTML"`      // Pass HTML embedded in markdown sources through
}

// SectionConfig describes a directory of markdown pages.
type SectionConfig struct {
	Source   string `yaml:"source"`
	Output   string `yaml:"output"`   // Empty = same as Source
	BaseURL  string `yaml:"baseURL"`  // Site path the pages are served under, e.g. /blogs
	Template string `yaml:"template"` // Page template name
	Title    string `yaml:"title"`    // Title of the fallback index page
}

// ProjectsConfig describes the projects section, injected into a host page.
type ProjectsConfig struct {
	Source      string `yaml:"source"`
	HostPage    string `yaml:"hostPage"`
	MarkerStart string `yaml:"markerStart"`
	MarkerEnd   string `yaml:"markerEnd"`
	Manifest    string `yaml:"manifest"` // Optional project manifest for grids, empty = none
}

// ResearchConfig is a page section plus a manifest built from item files.
type ResearchConfig struct {
	SectionConfig `yaml:",inline"`
	ItemsDir      string `yaml:"itemsDir"`
	Manifest      string `yaml:"manifest"`
}

// GridConfig prerenders a manifest as cards between markers in a host page.
type GridConfig struct {
	HostPage    string `yaml:"hostPage"`
	Manifest    string `yaml:"manifest"`
	Kind        string `yaml:"kind"` // blog, research, projects
	MarkerStart string `yaml:"markerStart"`
	MarkerEnd   string `yaml:"markerEnd"`
}

// FeedConfig drives the external manifest merger.
type FeedConfig struct {
	Username          string `yaml:"username"`
	URL               string `yaml:"url"`         // Empty = derived from Username
	FallbackURL       string `yaml:"fallbackURL"` // rss2json-compatible endpoint, empty = disabled
	Manifest          string `yaml:"manifest"`
	BlogURL           string `yaml:"blogURL"` // Site path of local blog pages, used for merge keys
	ImageDir          string `yaml:"imageDir"`
	ImageURLPrefix    string `yaml:"imageURLPrefix"`
	Placeholder       string `yaml:"placeholder"`
	MaxItems          int    `yaml:"maxItems"`
	DescriptionLength int    `yaml:"descriptionLength"`
	DateFormat        string `yaml:"dateFormat"`
	Timeout           string `yaml:"timeout"`     // Go duration, e.g. 30s
	Concurrency       int    `yaml:"concurrency"` // Thumbnail downloads, 0 = derived from GOMAXPROCS
	UserAgent         string `yaml:"userAgent"`   // Empty = go-sitegen/<version>
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration
}

// LoggingConfig selects log verbosity and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfig returns the layout of the personal site this tool was
// written for. Every value can be overridden by sitegen.yaml.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Root:         ".",
			TemplatesDir: "scripts/templates",
			ScriptsDir:   "assets/js",
			RawHTML:      true,
		},
		Projects: ProjectsConfig{
			Source:      "content/projects",
			HostPage:    "projects.html",
			MarkerStart: DefaultMarkerStart,
			MarkerEnd:   DefaultMarkerEnd,
		},
		Blog: SectionConfig{
			Source:   "blogs",
			BaseURL:  "/blogs",
			Template: "post_template",
			Title:    "index",
		},
		Research: ResearchConfig{
			SectionConfig: SectionConfig{
				Source:   "research",
				BaseURL:  "/research",
				Template: "post_template",
				Title:    "index",
			},
			ItemsDir: "research/items",
			Manifest: "research/manifest.json",
		},
		Feed: FeedConfig{
			Username:          DefaultFeedUsername,
			FallbackURL:       DefaultFeedFallbackURL,
			Manifest:          "blog/manifest.json",
			BlogURL:           "/blog",
			ImageDir:          "assets/images/blog",
			ImageURLPrefix:    "/assets/images/blog",
			Placeholder:       DefaultPlaceholder,
			MaxItems:          DefaultMaxItems,
			DescriptionLength: DefaultDescriptionLength,
			DateFormat:        dateutil.DefaultDateFormat,
			Timeout:           "30s",
		},
		Watch:   WatchConfig{Debounce: "300ms"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads sitegen.yaml (or .yml) from dir over the defaults.
// A missing file is not an error: the defaults are returned and path is empty.
func Load(dir string) (cfg *Config, path string, err error) {
	for _, ext := range []string{".yaml", ".yml"} {
		candidate := filepath.Join(dir, FileName+ext)
		if fileutil.FileExists(candidate) {
			cfg, err := LoadFile(candidate)
			return cfg, candidate, err
		}
	}

	cfg = DefaultConfig()
	if dir != "" && cfg.Site.Root == "." {
		cfg.Site.Root = dir
	}
	return cfg, "", nil
}

// LoadFile reads a config file over the defaults and validates the result.
// A relative site.root is resolved against the file's directory.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if !filepath.IsAbs(cfg.Site.Root) {
		cfg.Site.Root = filepath.Join(filepath.Dir(path), cfg.Site.Root)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Path resolves a config path against the site root.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Site.Root, filepath.FromSlash(p))
}

// FeedURL returns the configured feed URL or the Medium feed of Username.
func (c *Config) FeedURL() string {
	if c.Feed.URL != "" {
		return c.Feed.URL
	}
	return "https://medium.com/feed/@" + c.Feed.Username
}

// FeedTimeout returns the parsed feed timeout. Validate guarantees it parses.
func (c *Config) FeedTimeout() time.Duration {
	d, err := time.ParseDuration(c.Feed.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// WatchDebounce returns the parsed watch debounce delay.
func (c *Config) WatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 300 * time.Millisecond
	}
	return d
}

// OutputDir returns where the section's pages are written.
func (s SectionConfig) OutputDir() string {
	if s.Output != "" {
		return s.Output
	}
	return s.Source
}

// Validate checks lengths, enumerations and ranges.
// Called automatically by LoadFile, but available for library users
// who construct Config manually.
func (c *Config) Validate() error {
	paths := map[string]string{
		"site.root":           c.Site.Root,
		"site.templatesDir":   c.Site.TemplatesDir,
		"site.scriptsDir":     c.Site.ScriptsDir,
		"projects.source":     c.Projects.Source,
		"projects.hostPage":   c.Projects.HostPage,
		"projects.manifest":   c.Projects.Manifest,
		"blog.source":         c.Blog.Source,
		"blog.output":         c.Blog.Output,
		"research.source":     c.Research.Source,
		"research.output":     c.Research.Output,
		"research.itemsDir":   c.Research.ItemsDir,
		"research.manifest":   c.Research.Manifest,
		"feed.manifest":       c.Feed.Manifest,
		"feed.imageDir":       c.Feed.ImageDir,
		"feed.imageURLPrefix": c.Feed.ImageURLPrefix,
	}
	for name, value := range paths {
		if err := validateFieldLength(name, value, MaxPathLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("site.url", c.Site.URL, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("blog.title", c.Blog.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("research.title", c.Research.Title, MaxTitleLength); err != nil {
		return err
	}

	if err := validateMarkers("projects", c.Projects.MarkerStart, c.Projects.MarkerEnd); err != nil {
		return err
	}

	for i, g := range c.Grids {
		field := fmt.Sprintf("grids[%d]", i)
		if g.HostPage == "" || g.Manifest == "" {
			return fmt.Errorf("%w: %s: hostPage and manifest are required", ErrInvalidValue, field)
		}
		switch g.Kind {
		case "blog", "research", "projects":
		default:
			return fmt.Errorf("%w: %s.kind %q (must be blog, research, or projects)", ErrInvalidValue, field, g.Kind)
		}
		if err := validateMarkers(field, g.MarkerStart, g.MarkerEnd); err != nil {
			return err
		}
	}

	if err := c.validateFeed(); err != nil {
		return err
	}

	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("%w: watch.debounce %q", ErrInvalidValue, c.Watch.Debounce)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q (must be console or json)", ErrInvalidValue, c.Logging.Format)
	}

	return nil
}

func (c *Config) validateFeed() error {
	f := c.Feed
	if f.Username == "" && f.URL == "" {
		return fmt.Errorf("%w: feed.username or feed.url is required", ErrInvalidValue)
	}
	if err := validateFieldLength("feed.username", f.Username, MaxUsernameLength); err != nil {
		return err
	}
	for name, value := range map[string]string{
		"feed.url":         f.URL,
		"feed.fallbackURL": f.FallbackURL,
		"feed.placeholder": f.Placeholder,
	} {
		if err := validateFieldLength(name, value, MaxURLLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("feed.userAgent", f.UserAgent, MaxUserAgentLength); err != nil {
		return err
	}
	if f.MaxItems < 1 || f.MaxItems > 100 {
		return fmt.Errorf("%w: feed.maxItems must be between 1 and 100, got %d", ErrInvalidValue, f.MaxItems)
	}
	if f.DescriptionLength < 1 || f.DescriptionLength > 2000 {
		return fmt.Errorf("%w: feed.descriptionLength must be between 1 and 2000, got %d", ErrInvalidValue, f.DescriptionLength)
	}
	if f.Concurrency < 0 || f.Concurrency > 32 {
		return fmt.Errorf("%w: feed.concurrency must be between 0 and 32, got %d", ErrInvalidValue, f.Concurrency)
	}
	if _, err := dateutil.ParseDateFormat(f.DateFormat); err != nil {
		return fmt.Errorf("feed.dateFormat: %w", err)
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil || d <= 0 {
		return fmt.Errorf("%w: feed.timeout %q", ErrInvalidValue, f.Timeout)
	}
	return nil
}

// validateMarkers requires two distinct, non-empty sentinels.
func validateMarkers(field, start, end string) error {
	if start == "" || end == "" {
		return fmt.Errorf("%w: %s markers cannot be empty", ErrInvalidValue, field)
	}
	if start == end {
		return fmt.Errorf("%w: %s start and end markers must differ", ErrInvalidValue, field)
	}
	if err := validateFieldLength(field+".markerStart", start, MaxMarkerLength); err != nil {
		return err
	}
	return validateFieldLength(field+".markerEnd", end, MaxMarkerLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}
