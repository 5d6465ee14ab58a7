package feed

import (
	"fmt"

	"promfeed/internal/config"
	"promfeed/internal/feed/resolver"
)

// Dialect selects the root layout of the emitted document.
type Dialect string

const (
	// DialectRSS is a Google Shopping RSS 2.0 channel with g: fields.
	DialectRSS Dialect = "rss"
	// DialectYML is the Prom.ua yml_catalog layout.
	DialectYML Dialect = "yml"
	// DialectHybrid is an rss root wrapping a Prom.ua shop element.
	DialectHybrid Dialect = "hybrid"
)

func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(s); d {
	case DialectRSS, DialectYML, DialectHybrid:
		return d, nil
	}
	return "", fmt.Errorf("unknown feed dialect %q", s)
}

// OfferMode selects whether offers are emitted per product or per variant.
type OfferMode string

const (
	OfferPerProduct OfferMode = "product"
	OfferPerVariant OfferMode = "variant"
)

func ParseOfferMode(s string) (OfferMode, error) {
	switch m := OfferMode(s); m {
	case OfferPerProduct, OfferPerVariant:
		return m, nil
	}
	return "", fmt.Errorf("unknown offer mode %q", s)
}

// ShopInfo is the static header block of the feed.
type ShopInfo struct {
	Name        string
	Company     string
	URL         string
	Description string
}

type Options struct {
	Dialect       Dialect
	Mode          OfferMode
	Shop          ShopInfo
	Currency      string
	Country       string
	Warehouse     string
	DefaultVendor string
	Labels        resolver.Labels
}

// OptionsFromConfig maps the feed settings of cfg. cfg is expected to have
// passed validation.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	dialect, err := ParseDialect(cfg.FeedDialect)
	if err != nil {
		return Options{}, err
	}
	mode, err := ParseOfferMode(cfg.FeedOfferMode)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Dialect: dialect,
		Mode:    mode,
		Shop: ShopInfo{
			Name:        cfg.FeedShopName,
			Company:     cfg.FeedShopCompany,
			URL:         cfg.FeedShopURL,
			Description: cfg.FeedShopDescription,
		},
		Currency:      cfg.FeedCurrency,
		Country:       cfg.FeedCountry,
		Warehouse:     cfg.FeedWarehouse,
		DefaultVendor: cfg.FeedDefaultVendor,
		Labels:        resolver.LabelsFor(cfg.FeedLabels),
	}, nil
}
