package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHOPIFY_API_TOKEN", "shpat_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "676c64", cfg.ShopifyShop)
	assert.Equal(t, "2023-10", cfg.ShopifyAPIVersion)
	assert.Equal(t, 30*time.Second, cfg.ShopifyTimeout)
	assert.Equal(t, "hybrid", cfg.FeedDialect)
	assert.Equal(t, "product", cfg.FeedOfferMode)
	assert.Equal(t, "UAH", cfg.FeedCurrency)
	assert.Equal(t, `Інтернет-магазин "Rubaska"`, cfg.FeedShopName)
	assert.Equal(t, 1, cfg.FeedConcurrency)
	assert.Equal(t, "https://676c64.myshopify.com/admin/api/2023-10", cfg.ShopifyAPIBaseURL())
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("SHOPIFY_API_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidDialect(t *testing.T) {
	t.Setenv("SHOPIFY_API_TOKEN", "shpat_test")
	t.Setenv("FEED_DIALECT", "csv")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FeedDialect")
}

func TestShopifyAPIBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "override wins",
			cfg:  Config{ShopifyBaseURL: "http://127.0.0.1:9000/admin/api/2024-01/"},
			want: "http://127.0.0.1:9000/admin/api/2024-01",
		},
		{
			name: "full domain is trimmed",
			cfg:  Config{ShopifyShop: "demo.myshopify.com", ShopifyAPIVersion: "2024-04"},
			want: "https://demo.myshopify.com/admin/api/2024-04",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ShopifyAPIBaseURL())
		})
	}
}

func TestKafkaBrokerList(t *testing.T) {
	cfg := Config{KafkaBrokers: "a:9092, b:9092,,"}
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokerList())
}
