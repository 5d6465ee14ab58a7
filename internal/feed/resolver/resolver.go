// Package resolver derives offer field values from catalog records using the
// static marketplace tables.
package resolver

import (
	"strings"

	"promfeed/internal/models"

	"github.com/shopspring/decimal"
)

const titleSeparator = " / "

// shopifyDefaultTitle is the title the platform gives the only variant of a
// product without options.
const shopifyDefaultTitle = "Default Title"

// ResolveCategory looks label up in the category table. Unknown labels return
// the first rule and false.
func ResolveCategory(label string) (models.CategoryRule, bool) {
	for _, rule := range Categories {
		if rule.Label == label {
			return rule, true
		}
	}
	return Categories[0], false
}

// DistinctCategories returns the table rules with duplicate category ids removed, in table order.
func DistinctCategories() []models.CategoryRule {
	seen := make(map[string]bool, len(Categories))
	out := make([]models.CategoryRule, 0, len(Categories))
	for _, rule := range Categories {
		if seen[rule.CategoryID] {
			continue
		}
		seen[rule.CategoryID] = true
		out = append(out, rule)
	}
	return out
}

// ProductTypeLabel picks the label used for category lookup: the custom
// product_type metafield, else the product's own type.
func ProductTypeLabel(p *models.Product) string {
	if label := strings.TrimSpace(p.Metafields.Value(MetafieldNamespace, ProductTypeKey)); label != "" {
		return label
	}
	return strings.TrimSpace(p.ProductType)
}

// VariantTitle is a decomposed "Size / Color / Collar" variant title.
type VariantTitle struct {
	Size   string
	Color  string
	Collar string
	// Segments is the number of non-empty segments found in the title.
	Segments int
	// PlatformDefault is set for the title the platform gives the only
	// variant of a product without options.
	PlatformDefault bool
}

// Conforms reports whether the title had the expected one to three segments
// or is the platform default title.
func (vt VariantTitle) Conforms() bool {
	return vt.PlatformDefault || (vt.Segments >= 1 && vt.Segments <= 3)
}

// DecomposeVariantTitle splits title on " / " by position: size, color,
// collar. Segments are trimmed after the split. Absent or blank segments take
// the defaults; extra segments are ignored and reported through Segments.
func DecomposeVariantTitle(title string, labels Labels) VariantTitle {
	vt := VariantTitle{
		Size:   DefaultSize,
		Color:  labels.DefaultColor,
		Collar: labels.DefaultCollar,
	}

	if strings.TrimSpace(title) == shopifyDefaultTitle {
		vt.PlatformDefault = true
		return vt
	}

	for i, part := range strings.Split(title, titleSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		vt.Segments++
		switch i {
		case 0:
			vt.Size = part
		case 1:
			vt.Color = part
		case 2:
			vt.Collar = part
		}
	}
	return vt
}

// LookupSizeMeasurements returns the measurement params for size, or nil for
// sizes outside the table.
func LookupSizeMeasurements(size string) []models.Param {
	size = strings.ToUpper(strings.TrimSpace(size))
	for _, sm := range SizeMeasurements {
		if sm.Size == size {
			out := make([]models.Param, len(sm.Params))
			copy(out, sm.Params)
			return out
		}
	}
	return nil
}

// MetafieldValue returns the first value matching namespace and key, searching
// each set in order.
func MetafieldValue(namespace, key string, sets ...models.Metafields) string {
	for _, set := range sets {
		if value, ok := set.Lookup(namespace, key); ok {
			return value
		}
	}
	return ""
}

// PickDescription prefers translated text, then the original, then fallback.
func PickDescription(translated, original, fallback string) string {
	if t := strings.TrimSpace(translated); t != "" {
		return t
	}
	if o := strings.TrimSpace(original); o != "" {
		return o
	}
	return fallback
}

// AttributeParams maps the declared metafield keys to params, skipping empty
// values. Earlier sets take precedence.
func AttributeParams(sets ...models.Metafields) []models.Param {
	var params []models.Param
	for _, field := range AttributeFields {
		value := strings.TrimSpace(MetafieldValue(MetafieldNamespace, field.Key, sets...))
		if value == "" {
			continue
		}
		params = append(params, models.Param{Name: field.Label, Value: value})
	}
	return params
}

// VariantParams returns the color, size and collar params.
func VariantParams(vt VariantTitle) []models.Param {
	return []models.Param{
		{Name: ParamColor, Value: vt.Color},
		{Name: ParamSize, Value: vt.Size},
		{Name: ParamCollar, Value: vt.Collar},
	}
}

// ConstantParams returns the params every offer carries.
func ConstantParams(size, warehouse, country string) []models.Param {
	return []models.Param{
		{Name: ParamIntlSize, Value: size},
		{Name: ParamCondition, Value: ConditionNew},
		{Name: ParamLocation, Value: warehouse},
		{Name: ParamCountryOrigin, Value: country},
	}
}

// ProductDetails returns the marketplace attributes derived from a category rule.
func ProductDetails(rule models.CategoryRule) []models.ProductDetail {
	return []models.ProductDetail{
		{Name: DetailSubdivisionID, Value: rule.SubdivisionID},
		{Name: DetailSubdivisionURL, Value: rule.PortalURL},
		{Name: DetailGroupName, Value: rule.GroupName},
	}
}

// NormalizePrice formats a decimal price string with two fraction digits.
// Unparseable input yields "0.00" and false.
func NormalizePrice(raw string) (string, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero.StringFixed(2), false
	}
	return d.StringFixed(2), true
}
