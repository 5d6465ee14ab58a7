package shopify

import (
	"strings"

	"promfeed/internal/models"
)

type Transformer struct{}

func NewTransformer() *Transformer {
	return &Transformer{}
}

// TransformProduct converts a Shopify product and its supplementary data to
// the catalog model consumed by the feed builder. variantMetafields is keyed
// by variant id and may be nil.
func (t *Transformer) TransformProduct(p *Product, metafields []Metafield, variantMetafields map[int64][]Metafield, translation Translation) models.Product {
	images := make([]models.Image, 0, len(p.Images))
	for _, img := range p.Images {
		if src := strings.TrimSpace(img.Src); src != "" {
			images = append(images, models.Image{Src: src})
		}
	}

	variants := make([]models.Variant, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = models.Variant{
			ID:                v.ID,
			Title:             v.Title,
			SKU:               strings.TrimSpace(v.Sku),
			Price:             strings.TrimSpace(v.Price),
			InventoryQuantity: v.InventoryQuantity,
			Metafields:        t.TransformMetafields(variantMetafields[v.ID]),
		}
	}

	return models.Product{
		ID:              p.ID,
		Title:           p.Title,
		Handle:          p.Handle,
		Vendor:          p.Vendor,
		BodyHTML:        strings.TrimSpace(p.BodyHTML),
		ProductType:     p.ProductType,
		Images:          images,
		Variants:        variants,
		Metafields:      t.TransformMetafields(metafields),
		TranslatedTitle: translation.Title,
		TranslatedBody:  translation.BodyHTML,
	}
}

// TransformMetafields keeps the upstream order so first-match lookups stay stable.
func (t *Transformer) TransformMetafields(in []Metafield) models.Metafields {
	if len(in) == 0 {
		return nil
	}
	out := make(models.Metafields, len(in))
	for i, mf := range in {
		out[i] = models.Metafield{
			Namespace: mf.Namespace,
			Key:       mf.Key,
			Value:     string(mf.Value),
		}
	}
	return out
}
