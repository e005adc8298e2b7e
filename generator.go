package sitegen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/alnah/go-sitegen/internal/assets"
	"github.com/alnah/go-sitegen/internal/config"
	"github.com/alnah/go-sitegen/internal/content"
	"github.com/alnah/go-sitegen/internal/fileutil"
	"github.com/alnah/go-sitegen/internal/grid"
	"github.com/alnah/go-sitegen/internal/hints"
	"github.com/alnah/go-sitegen/internal/manifest"
	"github.com/alnah/go-sitegen/internal/pipeline"
)

// Generator runs the site build. It is not safe for concurrent use;
// serialize calls to Generate.
type Generator struct {
	cfg      *Config
	loader   AssetLoader
	renderer *content.Renderer
	log      *countingLogger
}

// NewGenerator creates a Generator for cfg. Site templates are read from
// cfg.Site.TemplatesDir when it exists, over the built-in defaults.
func NewGenerator(cfg *Config, opts ...Option) (*Generator, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	o := buildOptions(opts)
	log := &countingLogger{Logger: o.logger}

	loader := o.loader
	if loader == nil {
		var err error
		loader, err = siteLoader(cfg, log)
		if err != nil {
			return nil, err
		}
	}

	r := content.NewRenderer(loader, log)
	r.TemplatesDir = cfg.Path(cfg.Site.TemplatesDir)
	switch {
	case o.converter != nil:
		r.Converter = o.converter
	case cfg.Site.RawHTML:
		r.Converter = pipeline.NewGoldmarkConverter(pipeline.WithRawHTML())
	}

	return &Generator{cfg: cfg, loader: loader, renderer: r, log: log}, nil
}

// siteLoader resolves templates from the site's templates directory with
// the built-in ones behind it, or the built-in ones alone when the
// directory does not exist.
func siteLoader(cfg *Config, log Logger) (AssetLoader, error) {
	dir := cfg.Path(cfg.Site.TemplatesDir)
	if dir == "" || !fileutil.DirExists(dir) {
		log.Debug("no site templates directory, using built-in templates", "dir", dir)
		return assets.NewEmbeddedLoader(), nil
	}
	resolver, err := assets.NewAssetResolver(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return resolver, nil
}

// Generate regenerates every derived file of the site. Problems with
// individual sources, templates or host pages are logged and counted as
// warnings; only cancellation of ctx is returned as an error.
func (g *Generator) Generate(ctx context.Context) (BuildReport, error) {
	start := time.Now()
	g.log.reset()

	var report BuildReport
	steps := []struct {
		name string
		run  func(context.Context, *BuildReport) error
	}{
		{"projects", g.buildProjects},
		{"blog", g.sectionStep(g.cfg.Blog, "blog")},
		{"research", g.sectionStep(g.cfg.Research.SectionConfig, "research")},
		{"research items", g.buildResearchItems},
		{"grids", g.buildGrids},
		{"hydrator", g.writeHydrator},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := step.run(ctx, &report); err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			g.log.Warn("build step failed", "step", step.name, "error", err)
		}
	}

	report.Warnings = g.log.warnings()
	report.Duration = time.Since(start)
	g.log.Info("site generated",
		"projects", report.Projects,
		"pages", report.Pages,
		"researchItems", report.ResearchItems,
		"warnings", report.Warnings,
		"duration", report.Duration.Round(time.Millisecond),
	)
	return report, nil
}

func (g *Generator) buildProjects(ctx context.Context, report *BuildReport) error {
	p := g.cfg.Projects
	projects, err := g.renderer.RenderProjects(ctx, g.cfg.Path(p.Source), "")
	if err != nil {
		return err
	}
	if projects == nil {
		return nil
	}
	report.Projects = len(projects)

	if p.HostPage != "" {
		changed, err := g.inject(g.cfg.Path(p.HostPage), content.Markers{Start: p.MarkerStart, End: p.MarkerEnd}, content.ArticlesBlock(projects))
		if err != nil {
			return err
		}
		report.ProjectsInjected = changed
		g.log.Info("injected projects", "path", g.cfg.Path(p.HostPage), "projects", len(projects), "changed", changed)
	}

	if p.Manifest != "" {
		path := g.cfg.Path(p.Manifest)
		if _, err := manifest.Write(path, content.ProjectItems(projects)); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// inject patches a host page. A missing page is skipped quietly; missing
// markers are reported with a hint and leave the page untouched.
func (g *Generator) inject(path string, m content.Markers, block string) (bool, error) {
	changed, err := content.InjectFile(path, m, block)
	switch {
	case errors.Is(err, os.ErrNotExist):
		g.log.Debug("host page missing, skipping injection", "path", path)
		return false, nil
	case errors.Is(err, pipeline.ErrMarkersNotFound):
		g.log.Warn("markers not found, host page left untouched"+hints.ForMarkersNotFound(m.Start, m.End), "path", path)
		return false, nil
	}
	return changed, err
}

func (g *Generator) sectionStep(sc config.SectionConfig, name string) func(context.Context, *BuildReport) error {
	return func(ctx context.Context, report *BuildReport) error {
		if sc.Source == "" {
			return nil
		}
		s := content.Section{
			Name:      name,
			SourceDir: g.cfg.Path(sc.Source),
			OutputDir: g.cfg.Path(sc.OutputDir()),
			BaseURL:   sc.BaseURL,
			Template:  sc.Template,
			Title:     sc.Title,
		}

		pages, err := g.renderer.RenderSection(ctx, s)
		if err != nil {
			return err
		}
		report.Pages += len(pages)

		res, err := g.renderer.WriteIndex(s, pages)
		if err != nil {
			return err
		}
		if res.PageWritten {
			report.IndexPages++
		}
		return nil
	}
}

func (g *Generator) buildResearchItems(_ context.Context, report *BuildReport) error {
	r := g.cfg.Research
	if r.ItemsDir == "" || r.Manifest == "" {
		return nil
	}

	items, err := manifest.CollectItems(g.cfg.Path(r.ItemsDir), g.log)
	if errors.Is(err, os.ErrNotExist) {
		g.log.Debug("no research items directory", "dir", g.cfg.Path(r.ItemsDir))
		return nil
	}
	if err != nil {
		return err
	}

	path := g.cfg.Path(r.Manifest)
	if _, err := manifest.Write(path, items); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	report.ResearchItems = len(items)
	g.log.Info("wrote research manifest", "path", path, "items", len(items))
	return nil
}

func (g *Generator) buildGrids(_ context.Context, report *BuildReport) error {
	for _, gc := range g.cfg.Grids {
		path := g.cfg.Path(gc.Manifest)
		items, err := manifest.Read(path)
		if errors.Is(err, os.ErrNotExist) {
			g.log.Debug("grid manifest missing, skipping", "manifest", path)
			continue
		}
		if err != nil {
			g.log.Warn("skipping grid", "manifest", path, "error", err)
			continue
		}

		r, err := grid.NewRenderer(g.loader, grid.Options{
			Kind:        gc.Kind,
			BlogURL:     g.cfg.Feed.BlogURL,
			Placeholder: g.cfg.Feed.Placeholder,
		})
		if err != nil {
			return err
		}

		changed, err := g.inject(g.cfg.Path(gc.HostPage), content.Markers{Start: gc.MarkerStart, End: gc.MarkerEnd}, r.Render(items))
		if err != nil {
			g.log.Warn("grid injection failed", "host", gc.HostPage, "error", err)
			continue
		}
		if changed {
			report.Grids++
		}
	}
	return nil
}

func (g *Generator) writeHydrator(_ context.Context, _ *BuildReport) error {
	if g.cfg.Site.ScriptsDir == "" {
		return nil
	}
	script, err := g.loader.LoadScript(assets.GridScript)
	if err != nil {
		return err
	}
	path := filepath.Join(g.cfg.Path(g.cfg.Site.ScriptsDir), assets.GridScript+".js")
	changed, err := fileutil.WriteIfChanged(path, []byte(script), 0o644)
	if err != nil {
		return err
	}
	if changed {
		g.log.Debug("wrote grid hydrator", "path", path)
	}
	return nil
}

// countingLogger counts warnings for the build report.
type countingLogger struct {
	Logger
	warns atomic.Int64
}

func (l *countingLogger) Warn(msg string, args ...any) {
	l.warns.Add(1)
	l.Logger.Warn(msg, args...)
}

func (l *countingLogger) warnings() int { return int(l.warns.Load()) }

func (l *countingLogger) reset() { l.warns.Store(0) }
