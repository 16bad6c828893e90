package importer

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"stcatalog/catalog"
	"stcatalog/csvgrid"
	"stcatalog/internal/observability"
	"stcatalog/source"
)

// ErrInternal marks a programming fault inside ingestion. Fetch failures and
// data anomalies never surface as errors.
var ErrInternal = errors.New("internal ingestion fault")

type Result struct {
	CategoriesProcessed int
	CategoriesEmpty     int
	CategoriesFailed    int
	RowsRead            int
	RowsMapped          int
	RowsSkipped         int
	Products            []catalog.Product
	Failures            []CategoryFailure
}

// CategoryFailure records a category whose text could not be fetched.
type CategoryFailure struct {
	Category catalog.Category
	Endpoint string
	Err      error
}

func (f CategoryFailure) Error() string {
	return fmt.Sprintf("category %s (endpoint %s): %v", f.Category, f.Endpoint, f.Err)
}

// FailedCategories lists the categories that contributed nothing because
// their fetch failed.
func (r *Result) FailedCategories() []catalog.Category {
	out := make([]catalog.Category, 0, len(r.Failures))
	for _, failure := range r.Failures {
		out = append(out, failure.Category)
	}
	return out
}

type Ingester struct {
	source      source.Source
	sources     []catalog.CategorySource
	logger      logrus.FieldLogger
	concurrency int
	metrics     *observability.Metrics
}

type Option func(*Ingester)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(i *Ingester) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithConcurrency bounds how many categories are fetched at once. Values
// below 1 mean sequential ingestion.
func WithConcurrency(n int) Option {
	return func(i *Ingester) {
		if n < 1 {
			n = 1
		}
		i.concurrency = n
	}
}

func WithMetrics(metrics *observability.Metrics) Option {
	return func(i *Ingester) {
		i.metrics = metrics
	}
}

// NewIngester binds a source to the ordered category table. The table is
// copied; the ingester holds no state between runs.
func NewIngester(src source.Source, sources []catalog.CategorySource, opts ...Option) *Ingester {
	ing := &Ingester{
		source:      src,
		sources:     append([]catalog.CategorySource(nil), sources...),
		logger:      logrus.StandardLogger(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// IngestAll returns every product of every category in table order.
func (i *Ingester) IngestAll(ctx context.Context) ([]catalog.Product, error) {
	result, err := i.Run(ctx)
	if err != nil {
		return nil, err
	}
	return result.Products, nil
}

// Run fetches and maps all categories. Categories may be fetched
// concurrently, but products are always returned in table order, then row
// order. A failed fetch only empties its own category.
func (i *Ingester) Run(ctx context.Context) (*Result, error) {
	i.metrics.RunStarted()

	outcomes := make([]categoryOutcome, len(i.sources))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(i.concurrency)

	for slot, src := range i.sources {
		group.Go(func() (err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					err = fmt.Errorf("%w: category %s: %v\n%s", ErrInternal, src.Category, recovered, debug.Stack())
				}
			}()
			outcomes[slot] = i.ingestCategory(groupCtx, src)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ingestion cancelled: %w", err)
	}

	result := &Result{Products: make([]catalog.Product, 0, 128)}
	for _, outcome := range outcomes {
		switch {
		case outcome.cancelled:
			continue
		case outcome.failure != nil:
			result.CategoriesFailed++
			result.Failures = append(result.Failures, *outcome.failure)
			continue
		case outcome.empty:
			result.CategoriesEmpty++
		}
		result.CategoriesProcessed++
		result.RowsRead += outcome.rowsRead
		result.RowsSkipped += outcome.rowsSkipped
		result.RowsMapped += len(outcome.products)
		result.Products = append(result.Products, outcome.products...)
	}

	return result, nil
}

type categoryOutcome struct {
	products    []catalog.Product
	rowsRead    int
	rowsSkipped int
	empty       bool
	cancelled   bool
	failure     *CategoryFailure
}

func (i *Ingester) ingestCategory(ctx context.Context, src catalog.CategorySource) categoryOutcome {
	logger := i.logger.WithFields(logrus.Fields{
		"category": src.Category,
		"endpoint": src.Endpoint,
	})

	started := time.Now()
	text, err := i.source.FetchCategoryText(ctx, src.Endpoint)
	i.metrics.FetchObserved(string(src.Category), time.Since(started), err)
	if err != nil && ctx.Err() != nil {
		// The run is being abandoned; this is not a transport failure.
		logger.WithError(err).Debug("category fetch cancelled")
		return categoryOutcome{cancelled: true}
	}
	if err != nil {
		logger.WithError(err).Warn("could not read category sheet")
		return categoryOutcome{failure: &CategoryFailure{
			Category: src.Category,
			Endpoint: src.Endpoint,
			Err:      err,
		}}
	}

	header, records := SplitGrid(csvgrid.Parse(text))
	if header == nil {
		logger.Debug("category sheet is empty")
		return categoryOutcome{empty: true}
	}

	cols := ResolveColumns(header)
	outcome := categoryOutcome{
		products: make([]catalog.Product, 0, len(records)),
		rowsRead: len(records),
	}
	for _, record := range records {
		product, skip := MapRecord(src.Category, record, cols)
		if skip != SkipNone {
			outcome.rowsSkipped++
			continue
		}
		outcome.products = append(outcome.products, product)
	}

	i.metrics.RowsObserved(string(src.Category), len(outcome.products), outcome.rowsSkipped)
	logger.WithFields(logrus.Fields{
		"rows":     outcome.rowsRead,
		"products": len(outcome.products),
		"skipped":  outcome.rowsSkipped,
	}).Debug("category ingested")

	return outcome
}
