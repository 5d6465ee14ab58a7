package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"promfeed/internal/logger"
	"promfeed/internal/metrics"

	"github.com/cenkalti/backoff/v5"
	"github.com/tomnomnom/linkheader"
	"golang.org/x/time/rate"
)

// MaxPageSize is the largest page the products endpoint accepts.
const MaxPageSize = 250

type Client struct {
	baseURL       string
	accessToken   string
	httpClient    *http.Client
	limiter       *rate.Limiter
	maxRetries    uint
	retryInterval time.Duration
	logger        *logger.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit sets the token bucket shared by all requests of the client.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// WithRetry sets how many times a transient failure is retried and the first backoff interval.
func WithRetry(maxRetries uint, initialInterval time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryInterval = initialInterval
	}
}

// NewClient creates a client for the admin REST API rooted at baseURL,
// e.g. https://shop.myshopify.com/admin/api/2023-10.
func NewClient(baseURL, accessToken string, logger *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:       rate.NewLimiter(rate.Limit(2), 4),
		maxRetries:    4,
		retryInterval: 500 * time.Millisecond,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the catalog API.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request %s failed: %d - %s", e.Endpoint, e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth retrying: throttling or a server fault.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// IsNotFound reports whether err wraps a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ListProducts fetches one page of active products. An empty pageInfo requests the first page.
func (c *Client) ListProducts(ctx context.Context, limit int, pageInfo string) (*ProductsPage, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if pageInfo != "" {
		// The cursor already encodes the original filters; repeating them is rejected.
		q.Set("page_info", pageInfo)
	} else {
		q.Set("status", "active")
	}

	var page ProductsPage
	header, err := c.get(ctx, "products", "/products.json", q, &page)
	if err != nil {
		return nil, err
	}

	page.NextPageInfo = nextPageInfo(header.Get("Link"))
	return &page, nil
}

// ProductMetafields fetches the metafields attached to a product.
func (c *Client) ProductMetafields(ctx context.Context, productID int64) ([]Metafield, error) {
	var resp metafieldsResponse
	path := fmt.Sprintf("/products/%d/metafields.json", productID)
	if _, err := c.get(ctx, "product_metafields", path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Metafields == nil {
		return []Metafield{}, nil
	}
	return resp.Metafields, nil
}

// VariantMetafields fetches the metafields attached to a variant.
func (c *Client) VariantMetafields(ctx context.Context, variantID int64) ([]Metafield, error) {
	var resp metafieldsResponse
	path := fmt.Sprintf("/variants/%d/metafields.json", variantID)
	if _, err := c.get(ctx, "variant_metafields", path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Metafields == nil {
		return []Metafield{}, nil
	}
	return resp.Metafields, nil
}

// ProductImages fetches the images of a single product.
func (c *Client) ProductImages(ctx context.Context, productID int64) ([]Image, error) {
	var resp imagesResponse
	path := fmt.Sprintf("/products/%d/images.json", productID)
	if _, err := c.get(ctx, "product_images", path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Images, nil
}

// Translation fetches the localized product fields. Translations are optional:
// any API failure yields an empty Translation and a nil error. Only context
// cancellation is reported.
func (c *Client) Translation(ctx context.Context, productID int64, locale string) (Translation, error) {
	var resp translationResponse
	path := fmt.Sprintf("/translations/products/%d/%s.json", productID, url.PathEscape(locale))
	if _, err := c.get(ctx, "translations", path, nil, &resp); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Translation{}, ctxErr
		}
		c.logger.Debug("No %s translation for product %d: %v", locale, productID, err)
		return Translation{}, nil
	}

	resp.Translation.Title = strings.TrimSpace(resp.Translation.Title)
	resp.Translation.BodyHTML = strings.TrimSpace(resp.Translation.BodyHTML)
	return resp.Translation, nil
}

// get performs a rate-limited GET with retries on throttling, server errors and
// transport failures, decoding a 2xx JSON body into target.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, target interface{}) (http.Header, error) {
	operation := func() (http.Header, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("X-Shopify-Access-Token", c.accessToken)
		req.Header.Set("Accept", "application/json")
		if len(query) > 0 {
			req.URL.RawQuery = query.Encode()
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()

		metrics.UpstreamRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			apiErr := &APIError{
				Endpoint:   endpoint,
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(body)),
				RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
			}
			if !apiErr.Retryable() {
				return nil, backoff.Permanent(apiErr)
			}
			if apiErr.RetryAfter > 0 {
				// The server's delay replaces the exponential interval for this attempt.
				return nil, fmt.Errorf("%w: %w", apiErr, &backoff.RetryAfterError{Duration: apiErr.RetryAfter})
			}
			return nil, apiErr
		}

		if target != nil {
			if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
				return nil, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
			}
		}
		return resp.Header, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxRetries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			metrics.UpstreamRetries.WithLabelValues(endpoint).Inc()
			c.logger.Warn("Retrying %s in %s: %v", endpoint, next, err)
		}),
	)
}

// nextPageInfo extracts the page_info cursor of the rel="next" link.
func nextPageInfo(header string) string {
	if header == "" {
		return ""
	}
	for _, link := range linkheader.Parse(header).FilterByRel("next") {
		u, err := url.Parse(link.URL)
		if err != nil {
			continue
		}
		if info := u.Query().Get("page_info"); info != "" {
			return info
		}
	}
	return ""
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.ParseFloat(value, 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
