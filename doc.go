// Package sitegen builds a personal site's static content from markdown
// sources and keeps its blog manifest in sync with a remote feed.
//
// # Quick Start
//
// Load the configuration of a site directory and run a build:
//
//	cfg, _, err := sitegen.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gen, err := sitegen.NewGenerator(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := gen.Generate(ctx)
//
// Generate only fails on cancellation. Every content problem (a source
// with broken front matter, a host page without markers, a missing
// template) is logged as a warning, counted in the report, and skipped.
//
// # Build Steps
//
//  1. Project sources are rendered into article fragments and injected
//     between the markers of the projects host page
//  2. Blog and research sources are rendered to one page each, with an
//     index.json and, when missing, a listing index.html
//  3. Research item files are collected into research/manifest.json
//  4. Configured grids are prerendered into their host pages
//  5. The grid hydrator script is written for the browser
//
// # Feed Sync
//
// FeedSyncer merges the Medium feed into the blog manifest. Locally
// curated entries win over remote ones sharing a link, thumbnails are
// mirrored under assets/images/blog, and a failed fetch leaves the
// manifest untouched:
//
//	syncer, err := sitegen.NewFeedSyncer(cfg, sitegen.WithUserAgent(ua))
//	report := syncer.Sync(ctx)
//
// # Configuration
//
// Every setting has a default matching the site layout. An optional
// sitegen.yaml in the site root overrides them:
//
//	feed:
//	  username: someone
//	  timeout: 10s
//	grids:
//	  - hostPage: index.html
//	    manifest: blog/manifest.json
//	    kind: blog
//	    markerStart: "<!-- GRID_START -->"
//	    markerEnd: "<!-- GRID_END -->"
package sitegen
