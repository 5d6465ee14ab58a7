package resolver

import (
	"testing"

	"promfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCategory(t *testing.T) {
	rule, ok := ResolveCategory("Футболка")
	assert.True(t, ok)
	assert.Equal(t, "129880791", rule.CategoryID)
	assert.Equal(t, "35506", rule.SubdivisionID)

	rule, ok = ResolveCategory("Шкарпетки")
	assert.False(t, ok)
	assert.Equal(t, "129880800", rule.CategoryID, "unknown labels fall back to shirts")

	_, ok = ResolveCategory("сорочка")
	assert.False(t, ok, "lookup is case-sensitive")
}

func TestDistinctCategories(t *testing.T) {
	cats := DistinctCategories()
	require.Len(t, cats, 3)
	assert.Equal(t, []string{"129880800", "129880791", "129883725"},
		[]string{cats[0].CategoryID, cats[1].CategoryID, cats[2].CategoryID})
}

func TestProductTypeLabel(t *testing.T) {
	p := &models.Product{ProductType: "Жилет"}
	assert.Equal(t, "Жилет", ProductTypeLabel(p))

	p.Metafields = models.Metafields{{Namespace: "custom", Key: "product_type", Value: " Футболка "}}
	assert.Equal(t, "Футболка", ProductTypeLabel(p))
}

func TestDecomposeVariantTitle(t *testing.T) {
	tests := []struct {
		title    string
		labels   Labels
		want     VariantTitle
		conforms bool
	}{
		{
			title:    "L / Blue / Button-down",
			labels:   EnglishLabels,
			want:     VariantTitle{Size: "L", Color: "Blue", Collar: "Button-down", Segments: 3},
			conforms: true,
		},
		{
			title:    "XL / Білий",
			labels:   UkrainianLabels,
			want:     VariantTitle{Size: "XL", Color: "Білий", Collar: "Класичний", Segments: 2},
			conforms: true,
		},
		{
			title:    "S",
			labels:   EnglishLabels,
			want:     VariantTitle{Size: "S", Color: "Unknown", Collar: "Classic", Segments: 1},
			conforms: true,
		},
		{
			title:  "",
			labels: EnglishLabels,
			want:   VariantTitle{Size: "M", Color: "Unknown", Collar: "Classic"},
		},
		{
			title:    "Default Title",
			labels:   EnglishLabels,
			want:     VariantTitle{Size: "M", Color: "Unknown", Collar: "Classic", PlatformDefault: true},
			conforms: true,
		},
		{
			title:    "L / ",
			labels:   EnglishLabels,
			want:     VariantTitle{Size: "L", Color: "Unknown", Collar: "Classic", Segments: 1},
			conforms: true,
		},
		{
			title:    " XL / Navy / ",
			labels:   EnglishLabels,
			want:     VariantTitle{Size: "XL", Color: "Navy", Collar: "Classic", Segments: 2},
			conforms: true,
		},
		{
			title:  "   ",
			labels: EnglishLabels,
			want:   VariantTitle{Size: "M", Color: "Unknown", Collar: "Classic"},
		},
		{
			title:    "L /  / Stand",
			labels:   EnglishLabels,
			want:     VariantTitle{Size: "L", Color: "Unknown", Collar: "Stand", Segments: 2},
			conforms: true,
		},
		{
			title:  "L / Blue / Classic / Slim",
			labels: EnglishLabels,
			want:   VariantTitle{Size: "L", Color: "Blue", Collar: "Classic", Segments: 4},
		},
		{
			title:    "L/Blue",
			labels:   EnglishLabels,
			want:     VariantTitle{Size: "L/Blue", Color: "Unknown", Collar: "Classic", Segments: 1},
			conforms: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := DecomposeVariantTitle(tt.title, tt.labels)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.conforms, got.Conforms())
		})
	}
}

func TestLookupSizeMeasurements(t *testing.T) {
	params := LookupSizeMeasurements("xl")
	require.Len(t, params, 5)
	assert.Equal(t, models.Param{Name: ParamNeck, Value: "43"}, params[0])
	assert.Equal(t, models.Param{Name: ParamShirtSize, Value: "50"}, params[4])

	assert.Equal(t, params, LookupSizeMeasurements(DecomposeVariantTitle("XL / ", EnglishLabels).Size))

	params[0].Value = "mutated"
	assert.Equal(t, "43", LookupSizeMeasurements("XL")[0].Value, "table must not be mutable through results")

	assert.Empty(t, LookupSizeMeasurements("XS"))
}

func TestMetafieldValue(t *testing.T) {
	variant := models.Metafields{{Namespace: "custom", Key: "style", Value: "Slim"}}
	product := models.Metafields{
		{Namespace: "other", Key: "style", Value: "Wrong"},
		{Namespace: "custom", Key: "style", Value: "Casual"},
		{Namespace: "custom", Key: "style", Value: "Second"},
		{Namespace: "custom", Key: "pockets", Value: "1"},
	}

	assert.Equal(t, "Casual", MetafieldValue("custom", "style", product))
	assert.Equal(t, "Slim", MetafieldValue("custom", "style", variant, product))
	assert.Equal(t, "1", MetafieldValue("custom", "pockets", variant, product))
	assert.Equal(t, "", MetafieldValue("custom", "Style", product))
	assert.Equal(t, "", MetafieldValue("custom", "missing"))
}

func TestPickDescription(t *testing.T) {
	assert.Equal(t, "uk", PickDescription(" uk ", "orig", "none"))
	assert.Equal(t, "orig", PickDescription("  ", "orig", "none"))
	assert.Equal(t, "none", PickDescription("", "", "none"))
}

func TestAttributeParams(t *testing.T) {
	mfs := models.Metafields{
		{Namespace: "custom", Key: "pockets", Value: "Без кишень"},
		{Namespace: "custom", Key: "fabric_type", Value: "Бавовна"},
		{Namespace: "custom", Key: "style", Value: "  "},
	}

	assert.Equal(t, []models.Param{
		{Name: "Тип тканини", Value: "Бавовна"},
		{Name: "Кишені", Value: "Без кишень"},
	}, AttributeParams(mfs), "params follow the declared table order and skip blanks")
}

func TestConstantParams(t *testing.T) {
	params := ConstantParams("L", "Одеса", "Туреччина")
	assert.Equal(t, []models.Param{
		{Name: ParamIntlSize, Value: "L"},
		{Name: ParamCondition, Value: "Новий"},
		{Name: ParamLocation, Value: "Одеса"},
		{Name: ParamCountryOrigin, Value: "Туреччина"},
	}, params)
}

func TestProductDetails(t *testing.T) {
	rule, _ := ResolveCategory("Жилет")
	details := ProductDetails(rule)
	require.Len(t, details, 3)
	assert.Equal(t, "35513", details[0].Value)
	assert.Equal(t, "https://prom.ua/ua/Muzhskie-zhiletki-i-bezrukavki-1", details[1].Value)
	assert.Equal(t, "Святкові жилети", details[2].Value)
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"500", "500.00", true},
		{"1299.9", "1299.90", true},
		{" 12.345 ", "12.35", true},
		{"", "0.00", false},
		{"abc", "0.00", false},
		{"-5", "0.00", false},
	}
	for _, tt := range tests {
		got, ok := NormalizePrice(tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
	}
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, EnglishLabels, LabelsFor("en"))
	assert.Equal(t, UkrainianLabels, LabelsFor("uk"))
	assert.Equal(t, UkrainianLabels, LabelsFor(""))
}
