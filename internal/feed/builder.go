package feed

import (
	"net/url"
	"strconv"
	"strings"

	"promfeed/internal/feed/resolver"
	"promfeed/internal/logger"
	"promfeed/internal/metrics"
	"promfeed/internal/models"
)

// Builder turns catalog products into offers and offers into a document of
// the configured dialect.
type Builder struct {
	opts   Options
	logger *logger.Logger
}

func NewBuilder(opts Options, logger *logger.Logger) *Builder {
	if opts.Dialect == "" {
		opts.Dialect = DialectHybrid
	}
	if opts.Mode == "" {
		opts.Mode = OfferPerProduct
	}
	if opts.Labels == (resolver.Labels{}) {
		opts.Labels = resolver.UkrainianLabels
	}
	return &Builder{opts: opts, logger: logger}
}

func (b *Builder) Options() Options {
	return b.opts
}

// Build resolves offers for products and wraps them in a document.
func (b *Builder) Build(products []models.Product) *Document {
	return b.Document(b.Offers(products))
}

// Offers resolves one offer per product (from its first variant) or one per
// variant, depending on the offer mode. Products without variants are skipped.
func (b *Builder) Offers(products []models.Product) []models.Offer {
	offers := make([]models.Offer, 0, len(products))
	for i := range products {
		p := &products[i]
		if len(p.Variants) == 0 {
			b.warn("no_variants", "Skipping product %d (%q): it has no variants", p.ID, p.Title)
			continue
		}

		if b.opts.Mode == OfferPerVariant {
			for j := range p.Variants {
				offers = append(offers, b.offer(p, &p.Variants[j], true))
			}
			continue
		}
		offers = append(offers, b.offer(p, &p.Variants[0], false))
	}
	return offers
}

func (b *Builder) offer(p *models.Product, v *models.Variant, perVariant bool) models.Offer {
	labels := b.opts.Labels

	groupID := strconv.FormatInt(models.SafeID(p.ID), 10)
	id := groupID
	if perVariant {
		id = strconv.FormatInt(models.SafeID(v.ID), 10)
	}

	vt := resolver.DecomposeVariantTitle(v.Title, labels)
	if !vt.Conforms() {
		b.warn("variant_title", "Variant %d of product %d has title %q with %d segments, expected 1-3",
			v.ID, p.ID, v.Title, vt.Segments)
	}

	typeLabel := resolver.ProductTypeLabel(p)
	rule, matched := resolver.ResolveCategory(typeLabel)
	if !matched {
		b.warn("category", "Product %d has unrecognized type %q, using category %s",
			p.ID, typeLabel, rule.CategoryID)
	}

	price, ok := resolver.NormalizePrice(v.Price)
	if !ok {
		b.warn("price", "Variant %d of product %d has invalid price %q", v.ID, p.ID, v.Price)
	}

	vendorCode := v.SKU
	if vendorCode == "" {
		vendorCode = id
	}

	name := strings.TrimSpace(p.Title)
	if name == "" {
		name = labels.DefaultName
	}
	nameUA := strings.TrimSpace(p.TranslatedTitle)
	if nameUA == "" {
		nameUA = name
	}

	vendor := strings.TrimSpace(p.Vendor)
	if vendor == "" {
		vendor = b.opts.DefaultVendor
	}

	model := strings.TrimSpace(v.Title)
	if model == "" {
		model = labels.DefaultModel
	}

	pictures := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		pictures = append(pictures, img.Src)
	}

	var params []models.Param
	params = append(params, resolver.VariantParams(vt)...)
	params = append(params, resolver.LookupSizeMeasurements(vt.Size)...)
	params = append(params, resolver.AttributeParams(v.Metafields, p.Metafields)...)
	params = append(params, resolver.ConstantParams(vt.Size, b.opts.Warehouse, b.opts.Country)...)

	var details []models.ProductDetail
	if matched {
		details = resolver.ProductDetails(rule)
	}

	return models.Offer{
		ID:               id,
		GroupID:          groupID,
		Available:        v.Available(),
		Name:             name,
		NameUA:           nameUA,
		Description:      resolver.PickDescription("", p.BodyHTML, labels.DefaultDescription),
		DescriptionUA:    resolver.PickDescription(p.TranslatedBody, p.BodyHTML, labels.DefaultDescription),
		URL:              b.productURL(p.Handle),
		Pictures:         pictures,
		Video:            strings.TrimSpace(resolver.MetafieldValue(resolver.MetafieldNamespace, resolver.VideoURLKey, v.Metafields, p.Metafields)),
		Price:            price,
		Currency:         b.opts.Currency,
		CategoryID:       rule.CategoryID,
		PortalCategoryID: rule.CategoryID,
		Vendor:           vendor,
		Model:            model,
		VendorCode:       vendorCode,
		Country:          b.opts.Country,
		Params:           params,
		Details:          details,
		Size:             vt.Size,
		Color:            vt.Color,
		Collar:           vt.Collar,
		GroupName:        rule.GroupName,
	}
}

func (b *Builder) productURL(handle string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" || b.opts.Shop.URL == "" {
		return ""
	}
	return strings.TrimSuffix(b.opts.Shop.URL, "/") + "/products/" + url.PathEscape(handle)
}

func (b *Builder) warn(kind, msg string, args ...interface{}) {
	metrics.DataQualityWarnings.WithLabelValues(kind).Inc()
	b.logger.Warn(msg, args...)
}
