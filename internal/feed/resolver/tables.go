package resolver

import "promfeed/internal/models"

// MetafieldNamespace is the namespace of every metafield the feed reads.
const MetafieldNamespace = "custom"

const (
	ProductTypeKey = "product_type"
	VideoURLKey    = "video_url"
)

// Categories is the Prom.ua category table. The first entry is the fallback
// for unrecognized product types.
var Categories = []models.CategoryRule{
	{
		Label:         "Сорочка",
		CategoryID:    "129880800",
		ParentID:      "129880784",
		GroupName:     "Чоловічі сорочки",
		PortalURL:     "https://prom.ua/Muzhskie-rubashki",
		SubdivisionID: "348",
	},
	{
		Label:         "Теніска",
		CategoryID:    "129880800",
		ParentID:      "129880784",
		GroupName:     "Чоловічі сорочки",
		PortalURL:     "https://prom.ua/Muzhskie-rubashki",
		SubdivisionID: "348",
	},
	{
		Label:         "Футболка",
		CategoryID:    "129880791",
		ParentID:      "129880784",
		GroupName:     "Чоловічі футболки та майки",
		PortalURL:     "https://prom.ua/Futbolki-muzhskie",
		SubdivisionID: "35506",
	},
	{
		Label:         "Жилет",
		CategoryID:    "129883725",
		ParentID:      "129880784",
		GroupName:     "Святкові жилети",
		PortalURL:     "https://prom.ua/ua/Muzhskie-zhiletki-i-bezrukavki-1",
		SubdivisionID: "35513",
	},
}

// Measurement param names.
const (
	ParamNeck      = "Обхват шиї"
	ParamChest     = "Обхват грудей"
	ParamWaist     = "Обхват талії"
	ParamSleeve    = "Довжина рукава"
	ParamShirtSize = "Розміри чоловічих сорочок"
)

func measurements(neck, chest, waist, sleeve, shirtSize string) []models.Param {
	return []models.Param{
		{Name: ParamNeck, Value: neck},
		{Name: ParamChest, Value: chest},
		{Name: ParamWaist, Value: waist},
		{Name: ParamSleeve, Value: sleeve},
		{Name: ParamShirtSize, Value: shirtSize},
	}
}

var SizeMeasurements = []models.SizeMeasurement{
	{Size: "S", Params: measurements("38", "98", "90", "63", "44")},
	{Size: "M", Params: measurements("39", "104", "96", "64", "46")},
	{Size: "L", Params: measurements("41", "108", "100", "65", "48")},
	{Size: "XL", Params: measurements("43", "112", "108", "66", "50")},
	{Size: "XXL", Params: measurements("45", "120", "112", "67", "52")},
	{Size: "3XL", Params: measurements("46", "126", "124", "68", "54")},
}

// AttributeField binds a param label to the metafield key it is read from.
type AttributeField struct {
	Label string
	Key   string
}

var AttributeFields = []AttributeField{
	{Label: "Тип виробу", Key: "product_type"},
	{Label: "Застежка", Key: "fastening"},
	{Label: "Тип тканини", Key: "fabric_type"},
	{Label: "Тип крою", Key: "cut_type"},
	{Label: "Фасон рукава", Key: "sleeve_style"},
	{Label: "Візерунки і принти", Key: "pattern_and_prints"},
	{Label: "Манжет сорочки", Key: "shirt_cuff"},
	{Label: "Стиль", Key: "style"},
	{Label: "Склад", Key: "fabric_composition"},
	{Label: "Кишені", Key: "pockets"},
}

// Variant and constant param names.
const (
	ParamColor         = "Колір"
	ParamSize          = "Розмір"
	ParamCollar        = "Тип сорочкового коміра"
	ParamIntlSize      = "Міжнародний розмір"
	ParamCondition     = "Стан"
	ParamLocation      = "Де знаходиться товар"
	ParamCountryOrigin = "Країна виробник"

	ConditionNew = "Новий"
)

// Product detail attribute names.
const (
	DetailSubdivisionID  = "Ідентифікатор_підрозділу"
	DetailSubdivisionURL = "Посилання_підрозділу"
	DetailGroupName      = "Назва_групи"
)

// Labels are the fallback texts substituted for missing source data.
type Labels struct {
	DefaultColor       string
	DefaultCollar      string
	DefaultDescription string
	DefaultName        string
	DefaultModel       string
}

// DefaultSize is used when a variant title carries no size segment.
const DefaultSize = "M"

var (
	UkrainianLabels = Labels{
		DefaultColor:       "Невідомо",
		DefaultCollar:      "Класичний",
		DefaultDescription: "Опис відсутній",
		DefaultName:        "Без назви",
		DefaultModel:       "Сорочка Без моделі",
	}
	EnglishLabels = Labels{
		DefaultColor:       "Unknown",
		DefaultCollar:      "Classic",
		DefaultDescription: "Description unavailable",
		DefaultName:        "Untitled",
		DefaultModel:       "Shirt",
	}
)

// LabelsFor returns the label set for a language code, Ukrainian by default.
func LabelsFor(lang string) Labels {
	if lang == "en" {
		return EnglishLabels
	}
	return UkrainianLabels
}
