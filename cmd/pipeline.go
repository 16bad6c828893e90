package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"stcatalog/catalog"
	"stcatalog/config"
	"stcatalog/importer"
	"stcatalog/internal/applog"
	"stcatalog/internal/observability"
	"stcatalog/source"
)

// pipeline bundles what fetch, export and serve need to run ingestion.
type pipeline struct {
	cfg      config.Config
	logger   *logrus.Logger
	closer   io.Closer
	sources  []catalog.CategorySource
	ingester *importer.Ingester
}

func (p *pipeline) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

func newPipeline(sourceKind, input string, categoryFilter []string, metrics *observability.Metrics) (*pipeline, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, err
	}

	logger, closer, err := applog.New(applog.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, err
	}

	sources, err := selectCategories(cfg.Categories, categoryFilter)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	src, err := source.ForKind(sourceKind, *cfg, input)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	ingester := importer.NewIngester(src, sources,
		importer.WithLogger(logger),
		importer.WithConcurrency(cfg.Ingest.Concurrency),
		importer.WithMetrics(metrics),
	)

	return &pipeline{cfg: *cfg, logger: logger, closer: closer, sources: sources, ingester: ingester}, nil
}

// selectCategories keeps the configured categories named in filter, in
// configured order. An empty filter keeps all of them.
func selectCategories(all []catalog.CategorySource, filter []string) ([]catalog.CategorySource, error) {
	if len(filter) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(filter))
	for _, name := range filter {
		key := strings.ToUpper(strings.TrimSpace(name))
		if key != "" {
			wanted[key] = true
		}
	}

	selected := make([]catalog.CategorySource, 0, len(wanted))
	for _, src := range all {
		key := strings.ToUpper(string(src.Category))
		if wanted[key] {
			selected = append(selected, src)
			delete(wanted, key)
		}
	}

	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for _, name := range filter {
			if key := strings.ToUpper(strings.TrimSpace(name)); wanted[key] {
				unknown = append(unknown, name)
				delete(wanted, key)
			}
		}
		return nil, fmt.Errorf("unknown category: %s (configured: %s)", strings.Join(unknown, ", "), joinCategories(all))
	}

	return selected, nil
}

func joinCategories(sources []catalog.CategorySource) string {
	names := make([]string, 0, len(sources))
	for _, category := range catalog.Categories(sources) {
		names = append(names, string(category))
	}
	return strings.Join(names, ", ")
}

func printFailures(w io.Writer, result *importer.Result) {
	for _, failure := range result.Failures {
		fmt.Fprintf(w, "Warning: %v\n", failure)
	}
}

func sourceFlagUsage() string {
	return "Catalog source: " + strings.Join(source.SupportedKinds(), "|")
}
