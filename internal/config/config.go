package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Environment
	Env       string `envconfig:"ENV" default:"development"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`

	// API Configuration
	APIPort string `envconfig:"API_PORT" default:"8080"`
	APIHost string `envconfig:"API_HOST" default:"0.0.0.0"`

	// Shopify
	ShopifyShop       string        `envconfig:"SHOPIFY_SHOP" default:"676c64" validate:"required"`
	ShopifyAPIVersion string        `envconfig:"SHOPIFY_API_VERSION" default:"2023-10" validate:"required"`
	ShopifyAPIToken   string        `envconfig:"SHOPIFY_API_TOKEN" required:"true" validate:"required"`
	ShopifyBaseURL    string        `envconfig:"SHOPIFY_BASE_URL"`
	ShopifyTimeout    time.Duration `envconfig:"SHOPIFY_TIMEOUT" default:"30s" validate:"gt=0"`
	ShopifyRateLimit  float64       `envconfig:"SHOPIFY_RATE_LIMIT" default:"2" validate:"gt=0"`
	ShopifyRateBurst  int           `envconfig:"SHOPIFY_RATE_BURST" default:"4" validate:"gte=1"`
	ShopifyMaxRetries uint          `envconfig:"SHOPIFY_MAX_RETRIES" default:"4"`

	// Feed
	FeedDialect           string `envconfig:"FEED_DIALECT" default:"hybrid" validate:"oneof=rss yml hybrid"`
	FeedOfferMode         string `envconfig:"FEED_OFFER_MODE" default:"product" validate:"oneof=product variant"`
	FeedLocale            string `envconfig:"FEED_LOCALE" default:"uk"`
	FeedLabels            string `envconfig:"FEED_LABELS" default:"uk" validate:"oneof=uk en"`
	FeedConcurrency       int    `envconfig:"FEED_CONCURRENCY" default:"1" validate:"gte=1,lte=32"`
	FeedVariantMetafields bool   `envconfig:"FEED_VARIANT_METAFIELDS" default:"false"`
	FeedOutputPath        string `envconfig:"FEED_OUTPUT_PATH" default:"feed.xml"`
	FeedShopName          string `envconfig:"FEED_SHOP_NAME" default:"Інтернет-магазин \"Rubaska\""`
	FeedShopCompany       string `envconfig:"FEED_SHOP_COMPANY" default:"Rubaska"`
	FeedShopURL           string `envconfig:"FEED_SHOP_URL" default:"https://rubaska.com/" validate:"url"`
	FeedShopDescription   string `envconfig:"FEED_SHOP_DESCRIPTION" default:"Чоловічі сорочки Rubaska"`
	FeedCurrency          string `envconfig:"FEED_CURRENCY" default:"UAH" validate:"len=3"`
	FeedCountry           string `envconfig:"FEED_COUNTRY" default:"Туреччина"`
	FeedWarehouse         string `envconfig:"FEED_WAREHOUSE" default:"Одеса"`
	FeedDefaultVendor     string `envconfig:"FEED_DEFAULT_VENDOR" default:"RUBASKA"`

	// Kafka
	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"feed-requests"`
	KafkaGroupID string `envconfig:"KAFKA_GROUP_ID" default:"promfeed-worker"`
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges that envconfig cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ShopifyAPIBaseURL returns the admin API root, e.g.
// https://676c64.myshopify.com/admin/api/2023-10.
func (c *Config) ShopifyAPIBaseURL() string {
	if c.ShopifyBaseURL != "" {
		return strings.TrimSuffix(c.ShopifyBaseURL, "/")
	}

	shop := strings.TrimSuffix(c.ShopifyShop, ".myshopify.com")
	return fmt.Sprintf("https://%s.myshopify.com/admin/api/%s", shop, c.ShopifyAPIVersion)
}

func (c *Config) KafkaBrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
