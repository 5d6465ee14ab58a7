package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"promfeed/internal/config"
	"promfeed/internal/feed"
	"promfeed/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		LogLevel:          "error",
		LogFormat:         "text",
		ShopifyAPIToken:   "shpat_test",
		ShopifyBaseURL:    baseURL,
		ShopifyTimeout:    5 * time.Second,
		ShopifyRateLimit:  100,
		ShopifyRateBurst:  10,
		FeedDialect:       "yml",
		FeedOfferMode:     "product",
		FeedLocale:        "uk",
		FeedLabels:        "en",
		FeedConcurrency:   2,
		FeedShopName:      "Rubaska",
		FeedShopCompany:   "Rubaska",
		FeedShopURL:       "https://rubaska.com/",
		FeedCurrency:      "UAH",
		FeedCountry:       "Туреччина",
		FeedWarehouse:     "Одеса",
		FeedDefaultVendor: "RUBASKA",
	}
}

func TestNewGeneratorEndToEnd(t *testing.T) {
	var token string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products.json":
			token = r.Header.Get("X-Shopify-Access-Token")
			fmt.Fprint(w, `{"products":[{"id":9999999999,"title":"Shirt A","handle":"shirt-a",
				"images":[{"src":"http://x/1.jpg"}],
				"variants":[{"id":1,"title":"L / Blue / Classic","price":"500","inventory_quantity":3,"sku":""}]}]}`)
		case "/products/9999999999/metafields.json":
			fmt.Fprint(w, `{"metafields":[{"namespace":"custom","key":"product_type","value":"Сорочка"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	gen, err := NewGenerator(testConfig(srv.URL), logger.NewWithWriter(io.Discard, "error", "text"))
	require.NoError(t, err)

	res, err := gen.Generate(context.Background(), feed.Override{})
	require.NoError(t, err)
	assert.Equal(t, "shpat_test", token)
	assert.Equal(t, feed.DialectYML, res.Dialect)
	assert.Equal(t, 1, res.Offers)

	doc := string(res.Data)
	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, doc, `<offer id="1410065411" available="true"`)
	assert.Contains(t, doc, `<vendorCode>1410065411</vendorCode>`)
	assert.Contains(t, doc, `<picture>http://x/1.jpg</picture>`)
	assert.Contains(t, doc, `<url>https://rubaska.com/products/shirt-a</url>`)
	assert.Contains(t, doc, `<categoryId>129880800</categoryId>`)
}

func TestNewGeneratorUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	gen, err := NewGenerator(testConfig(srv.URL), logger.NewWithWriter(io.Discard, "error", "text"))
	require.NoError(t, err)

	res, err := gen.Generate(context.Background(), feed.Override{})
	require.Error(t, err)
	assert.Nil(t, res.Data)
}

func TestNewGeneratorRejectsBadOptions(t *testing.T) {
	cfg := testConfig("http://127.0.0.1")
	cfg.FeedDialect = "csv"

	_, err := NewGenerator(cfg, logger.NewWithWriter(io.Discard, "error", "text"))
	assert.Error(t, err)
}
