// Package app wires the feed pipeline from configuration. Every entrypoint
// builds its generator here.
package app

import (
	"net/http"
	"os"
	"time"

	"promfeed/internal/config"
	"promfeed/internal/feed"
	"promfeed/internal/logger"
	"promfeed/internal/services/shopify"
	"promfeed/internal/worker/processors/validation"
)

const retryInterval = 500 * time.Millisecond

// NewLogger builds the process logger from the log settings of cfg.
func NewLogger(cfg *config.Config) *logger.Logger {
	return logger.NewWithWriter(os.Stdout, cfg.LogLevel, cfg.LogFormat)
}

// NewGenerator connects the catalog client, fetcher, builder options and offer
// validator into one generator.
func NewGenerator(cfg *config.Config, log *logger.Logger) (*feed.Generator, error) {
	opts, err := feed.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	client := shopify.NewClient(cfg.ShopifyAPIBaseURL(), cfg.ShopifyAPIToken, log,
		shopify.WithHTTPClient(&http.Client{Timeout: cfg.ShopifyTimeout}),
		shopify.WithRateLimit(cfg.ShopifyRateLimit, cfg.ShopifyRateBurst),
		shopify.WithRetry(cfg.ShopifyMaxRetries, retryInterval),
	)

	fetcher := shopify.NewFetcher(client, log, shopify.FetchOptions{
		Locale:            cfg.FeedLocale,
		Concurrency:       cfg.FeedConcurrency,
		VariantMetafields: cfg.FeedVariantMetafields,
	})

	return feed.NewGenerator(fetcher, opts, validation.New(log), log), nil
}
