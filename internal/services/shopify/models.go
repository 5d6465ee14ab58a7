package shopify

import (
	"bytes"
	"encoding/json"
	"time"
)

// Product represents a Shopify product as returned by products.json
type Product struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	BodyHTML    string     `json:"body_html"`
	Vendor      string     `json:"vendor"`
	ProductType string     `json:"product_type"`
	Handle      string     `json:"handle"`
	Status      string     `json:"status"`
	Tags        string     `json:"tags"`
	Variants    []Variant  `json:"variants"`
	Images      []Image    `json:"images"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`
}

// Variant represents a product variant
type Variant struct {
	ID                int64   `json:"id"`
	ProductID         int64   `json:"product_id"`
	Title             string  `json:"title"`
	Price             string  `json:"price"`
	Sku               string  `json:"sku"`
	Position          int     `json:"position"`
	Option1           *string `json:"option1"`
	Option2           *string `json:"option2"`
	Option3           *string `json:"option3"`
	Barcode           *string `json:"barcode"`
	InventoryQuantity int     `json:"inventory_quantity"`
}

// Image represents a product image
type Image struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Position  int    `json:"position"`
	Src       string `json:"src"`
}

// Metafield represents a namespaced key/value annotation on a product or variant
type Metafield struct {
	ID        int64          `json:"id"`
	Namespace string         `json:"namespace"`
	Key       string         `json:"key"`
	Value     MetafieldValue `json:"value"`
	Type      string         `json:"type"`
	OwnerID   int64          `json:"owner_id"`
}

// MetafieldValue is a metafield value as text. Most types arrive as JSON
// strings, but some (number_integer, boolean) arrive as bare JSON scalars;
// those keep their JSON spelling, e.g. 2 becomes "2".
type MetafieldValue string

func (v *MetafieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*v = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = MetafieldValue(s)
	default:
		*v = MetafieldValue(data)
	}
	return nil
}

// Translation holds the localized fields of a product
type Translation struct {
	Title    string `json:"title"`
	BodyHTML string `json:"body_html"`
}

// ProductsPage is one page of the product listing
type ProductsPage struct {
	Products []Product `json:"products"`
	// NextPageInfo is the cursor for the following page, empty on the last page.
	NextPageInfo string `json:"-"`
}

type metafieldsResponse struct {
	Metafields []Metafield `json:"metafields"`
}

type translationResponse struct {
	Translation Translation `json:"translation"`
}

type imagesResponse struct {
	Images []Image `json:"images"`
}
