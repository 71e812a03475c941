// Package generator runs the load, normalize, render and write phases that produce the site.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"berrypedia/internal/config"
	"berrypedia/internal/formatter"
	"berrypedia/internal/loader"
	"berrypedia/internal/logger"
	"berrypedia/internal/models"
	"berrypedia/internal/normalizer"
	"berrypedia/internal/site"
)

// Report describes a finished run.
type Report struct {
	OutputPath  string
	SummaryPath string
	Results     []loader.Result
	Items       []models.Item
	Bytes       int
	Duration    time.Duration
}

// Generator builds the knowledge base document from a configuration.
type Generator struct {
	cfg *config.Config
	log *logger.Logger
	now func() time.Time
}

// New creates a generator. A nil logger discards output.
func New(cfg *config.Config, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Discard()
	}

	return &Generator{cfg: cfg, log: log, now: time.Now}
}

// SetClock replaces the time source used for the document stamp.
func (g *Generator) SetClock(now func() time.Time) {
	g.now = now
}

// SiteOptions maps the configuration onto page options.
func (g *Generator) SiteOptions() site.Options {
	s := g.cfg.Site

	return site.Options{
		GeneratedAt:    g.now(),
		Title:          s.Title,
		Brand:          s.Brand,
		BrandAccent:    s.BrandAccent,
		Lang:           s.Lang,
		Description:    s.Description,
		FooterMarkdown: s.FooterMarkdown,
		SugarRangeMax:  g.cfg.Render.SugarRangeMax,
		Assets: site.AssetURLs{
			Tailwind:    s.Assets.Tailwind,
			FontAwesome: s.Assets.FontAwesome,
			Alpine:      s.Assets.Alpine,
		},
	}
}

// Items loads every configured input and normalizes the merged catalog.
func (g *Generator) Items() ([]models.Item, []loader.Result, error) {
	g.log.Info("Phase 1: Loading catalog files...", "files", len(g.cfg.Input.Files), "strict", g.cfg.Input.Strict)

	ld := loader.NewLoader(g.log, g.cfg.Input.Strict)

	catalog, results, err := ld.LoadCatalog(g.cfg.Input.Files)
	if err != nil {
		return nil, results, fmt.Errorf("load failed: %w", err)
	}

	g.log.Info("Phase 2: Normalizing records...", "categories", len(catalog.Keys), "records", catalog.Len())

	processor := normalizer.NewProcessorWithOptions(normalizer.Options{SanitizeHTML: g.cfg.Render.SanitizeHTML})

	items, err := processor.Process(catalog)
	if err != nil {
		return nil, results, err
	}

	g.log.Info("✅ normalized", "items", len(items))

	return items, results, nil
}

// Run produces the document and, when configured, the markdown summary.
// Nothing is written when loading or normalization fails.
func (g *Generator) Run() (*Report, error) {
	start := time.Now()

	items, results, err := g.Items()
	if err != nil {
		return &Report{Results: results}, err
	}

	g.log.Info("Phase 3: Rendering page...", "asset_version", site.AssetVersion)

	doc, err := site.Render(items, g.SiteOptions())
	if err != nil {
		return &Report{Results: results, Items: items}, err
	}

	if err := WriteFile(g.cfg.Output.Path, doc); err != nil {
		return &Report{Results: results, Items: items}, err
	}

	g.log.Info("💾 wrote document", "path", g.cfg.Output.Path, "bytes", len(doc))

	report := &Report{
		OutputPath: g.cfg.Output.Path,
		Results:    results,
		Items:      items,
		Bytes:      len(doc),
	}

	if g.cfg.Output.SummaryPath != "" {
		summary := formatter.CatalogSummary(g.cfg.Site.Title, items)
		if err := WriteFile(g.cfg.Output.SummaryPath, []byte(summary)); err != nil {
			return report, err
		}

		g.log.Info("💾 wrote summary", "path", g.cfg.Output.SummaryPath)
		report.SummaryPath = g.cfg.Output.SummaryPath
	}

	report.Duration = time.Since(start)

	return report, nil
}

// WriteFile writes data through a temporary file in the same directory so a failed run never
// leaves a truncated document behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return nil
}
