package models

// MaxSafeID is the modulus used to fit upstream identifiers into a signed
// 32-bit range for marketplaces that reject larger ids.
const MaxSafeID int64 = 2147483647

// Product is a catalog product with its supplementary data already loaded.
type Product struct {
	ID          int64
	Title       string
	Handle      string
	Vendor      string
	BodyHTML    string
	ProductType string
	Images      []Image
	Variants    []Variant
	Metafields  Metafields

	// Localized copies from the translations endpoint; empty when absent.
	TranslatedTitle string
	TranslatedBody  string
}

type Variant struct {
	ID                int64
	Title             string
	SKU               string
	Price             string
	InventoryQuantity int
	Metafields        Metafields
}

type Image struct {
	Src string
}

// Available reports whether the variant has stock on hand.
func (v Variant) Available() bool {
	return v.InventoryQuantity > 0
}

// SafeID reduces id into the signed 32-bit range.
func SafeID(id int64) int64 {
	return id % MaxSafeID
}

type Metafield struct {
	Namespace string
	Key       string
	Value     string
}

type Metafields []Metafield

// Value returns the first value matching namespace and key exactly, or "".
func (m Metafields) Value(namespace, key string) string {
	value, _ := m.Lookup(namespace, key)
	return value
}

func (m Metafields) Lookup(namespace, key string) (string, bool) {
	for _, mf := range m {
		if mf.Namespace == namespace && mf.Key == key {
			return mf.Value, true
		}
	}
	return "", false
}
