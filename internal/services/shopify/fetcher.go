package shopify

import (
	"context"
	"fmt"

	"promfeed/internal/logger"
	"promfeed/internal/models"

	"golang.org/x/sync/errgroup"
)

type FetchOptions struct {
	PageSize          int
	Locale            string
	Concurrency       int
	VariantMetafields bool
}

// Fetcher loads the complete active catalog: the paginated listing followed
// by per-product metafields, translations and, when missing, images.
type Fetcher struct {
	client      *Client
	transformer *Transformer
	logger      *logger.Logger
	opts        FetchOptions
}

func NewFetcher(client *Client, logger *logger.Logger, opts FetchOptions) *Fetcher {
	if opts.PageSize <= 0 || opts.PageSize > MaxPageSize {
		opts.PageSize = MaxPageSize
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Fetcher{
		client:      client,
		transformer: NewTransformer(),
		logger:      logger,
		opts:        opts,
	}
}

// FetchActiveProducts follows the listing cursor until the last page.
func (f *Fetcher) FetchActiveProducts(ctx context.Context) ([]Product, error) {
	var all []Product
	seen := map[string]bool{}
	pageInfo := ""

	for page := 1; ; page++ {
		resp, err := f.client.ListProducts(ctx, f.opts.PageSize, pageInfo)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch products page %d: %w", page, err)
		}
		all = append(all, resp.Products...)
		f.logger.Debug("Fetched products page %d (%d products)", page, len(resp.Products))

		if resp.NextPageInfo == "" {
			break
		}
		if seen[resp.NextPageInfo] {
			return nil, fmt.Errorf("pagination cursor repeated on page %d", page)
		}
		seen[resp.NextPageInfo] = true
		pageInfo = resp.NextPageInfo
	}

	f.logger.Info("Fetched %d active products", len(all))
	return all, nil
}

// FetchCatalog returns every active product with its supplementary data. The
// result order matches the listing order regardless of concurrency.
func (f *Fetcher) FetchCatalog(ctx context.Context) ([]models.Product, error) {
	products, err := f.FetchActiveProducts(ctx)
	if err != nil {
		return nil, err
	}

	catalog := make([]models.Product, len(products))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.Concurrency)

	for i := range products {
		i := i
		g.Go(func() error {
			p, err := f.loadProduct(ctx, &products[i])
			if err != nil {
				return err
			}
			catalog[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (f *Fetcher) loadProduct(ctx context.Context, p *Product) (models.Product, error) {
	metafields, err := f.client.ProductMetafields(ctx, p.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to fetch metafields for product %d: %w", p.ID, err)
	}

	var variantMetafields map[int64][]Metafield
	if f.opts.VariantMetafields {
		variantMetafields = make(map[int64][]Metafield, len(p.Variants))
		for _, v := range p.Variants {
			mfs, err := f.client.VariantMetafields(ctx, v.ID)
			if err != nil {
				return models.Product{}, fmt.Errorf("failed to fetch metafields for variant %d: %w", v.ID, err)
			}
			variantMetafields[v.ID] = mfs
		}
	}

	var translation Translation
	if f.opts.Locale != "" {
		translation, err = f.client.Translation(ctx, p.ID, f.opts.Locale)
		if err != nil {
			return models.Product{}, err
		}
	}

	if len(p.Images) == 0 {
		images, err := f.client.ProductImages(ctx, p.ID)
		if err != nil {
			f.logger.Warn("Failed to fetch images for product %d: %v", p.ID, err)
		} else {
			p.Images = images
		}
	}

	return f.transformer.TransformProduct(p, metafields, variantMetafields, translation), nil
}
