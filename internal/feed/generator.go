package feed

import (
	"context"
	"fmt"
	"time"

	"promfeed/internal/logger"
	"promfeed/internal/metrics"
	"promfeed/internal/models"

	"github.com/google/uuid"
)

// CatalogSource loads the products a feed is built from.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]models.Product, error)
}

// OfferValidator reports problems with resolved offers. Reported offers are
// still emitted.
type OfferValidator interface {
	ValidateOffers(offers []models.Offer) []error
}

// Override changes the dialect or offer mode of a single run. Zero fields
// keep the configured value.
type Override struct {
	Dialect Dialect
	Mode    OfferMode
}

// ParseOverride validates raw dialect and mode values. Empty strings are allowed.
func ParseOverride(dialect, mode string) (Override, error) {
	var o Override
	var err error
	if dialect != "" {
		if o.Dialect, err = ParseDialect(dialect); err != nil {
			return Override{}, err
		}
	}
	if mode != "" {
		if o.Mode, err = ParseOfferMode(mode); err != nil {
			return Override{}, err
		}
	}
	return o, nil
}

// Result describes one generation run. RunID is set even when the run fails.
type Result struct {
	RunID    string
	Dialect  Dialect
	Products int
	Offers   int
	Data     []byte
}

// Generator runs the whole pipeline: fetch, resolve, validate, encode.
type Generator struct {
	source    CatalogSource
	opts      Options
	validator OfferValidator
	logger    *logger.Logger
}

// NewGenerator builds a generator. validator may be nil.
func NewGenerator(source CatalogSource, opts Options, validator OfferValidator, logger *logger.Logger) *Generator {
	return &Generator{
		source:    source,
		opts:      opts,
		validator: validator,
		logger:    logger,
	}
}

// Generate fetches the catalog and returns the encoded feed. A failed fetch
// aborts the run without producing a partial document.
func (g *Generator) Generate(ctx context.Context, override Override) (Result, error) {
	opts := g.opts
	if override.Dialect != "" {
		opts.Dialect = override.Dialect
	}
	if override.Mode != "" {
		opts.Mode = override.Mode
	}

	res := Result{RunID: uuid.NewString()}
	log := g.logger.With("run_id", res.RunID)
	builder := NewBuilder(opts, log)
	opts = builder.Options()
	res.Dialect = opts.Dialect

	start := time.Now()
	log.Info("Starting feed run (dialect=%s, mode=%s)", opts.Dialect, opts.Mode)

	products, err := g.source.FetchCatalog(ctx)
	if err != nil {
		metrics.FeedRuns.WithLabelValues(string(opts.Dialect), "error").Inc()
		return res, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	res.Products = len(products)

	offers := builder.Offers(products)
	res.Offers = len(offers)

	if g.validator != nil {
		for _, problem := range g.validator.ValidateOffers(offers) {
			metrics.DataQualityWarnings.WithLabelValues("invalid_offer").Inc()
			log.Warn("Offer failed validation: %v", problem)
		}
	}

	data, err := Encode(builder.Document(offers))
	if err != nil {
		metrics.FeedRuns.WithLabelValues(string(opts.Dialect), "error").Inc()
		return res, err
	}
	res.Data = data

	elapsed := time.Since(start)
	metrics.FeedRunDuration.WithLabelValues(string(opts.Dialect)).Observe(elapsed.Seconds())
	metrics.FeedRuns.WithLabelValues(string(opts.Dialect), "success").Inc()
	metrics.FeedOffers.Set(float64(len(offers)))

	log.Info("Feed run finished: %d products, %d offers, %d bytes in %s",
		res.Products, res.Offers, len(data), elapsed.Round(time.Millisecond))
	return res, nil
}
