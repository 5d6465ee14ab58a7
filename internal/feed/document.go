package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"promfeed/internal/feed/resolver"
	"promfeed/internal/models"
)

// GoogleNamespace is bound to the g: prefix in the rss and hybrid dialects.
const GoogleNamespace = "http://base.google.com/ns/1.0"

const (
	offerType         = "vendor.model"
	retailSellingType = "r"
)

// Document is a feed ready to be encoded.
type Document struct {
	Dialect Dialect
	Offers  int
	root    interface{}
}

// Document wraps already resolved offers in the envelope of the configured dialect.
func (b *Builder) Document(offers []models.Offer) *Document {
	doc := &Document{Dialect: b.opts.Dialect, Offers: len(offers)}

	switch b.opts.Dialect {
	case DialectRSS:
		doc.root = b.rssDocument(offers)
	case DialectYML:
		doc.root = ymlCatalog{Shop: b.shopElement(offers, true, false)}
	default:
		doc.root = rssShopDocument{
			Version: "2.0",
			XMLNSG:  GoogleNamespace,
			Shop:    b.shopElement(offers, false, true),
		}
	}
	return doc
}

// Encode serializes doc as UTF-8 with a single XML declaration.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc.root); err != nil {
		return nil, fmt.Errorf("failed to encode %s feed: %w", doc.Dialect, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush %s feed: %w", doc.Dialect, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

type ymlCatalog struct {
	XMLName xml.Name    `xml:"yml_catalog"`
	Shop    shopElement `xml:"shop"`
}

type rssShopDocument struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	XMLNSG  string      `xml:"xmlns:g,attr"`
	Shop    shopElement `xml:"shop"`
}

type shopElement struct {
	Name       string             `xml:"name"`
	Company    string             `xml:"company"`
	URL        string             `xml:"url"`
	Currencies *currenciesElement `xml:"currencies,omitempty"`
	Categories categoriesElement  `xml:"categories"`
	Offers     offersElement      `xml:"offers"`
}

type currenciesElement struct {
	Currency []currencyElement `xml:"currency"`
}

type currencyElement struct {
	ID   string `xml:"id,attr"`
	Rate string `xml:"rate,attr"`
}

type categoriesElement struct {
	Category []categoryElement `xml:"category"`
}

type categoryElement struct {
	ID       string `xml:"id,attr"`
	ParentID string `xml:"parentId,attr,omitempty"`
	Name     string `xml:",chardata"`
}

type offersElement struct {
	Offer []offerElement `xml:"offer"`
}

type offerElement struct {
	ID               string          `xml:"id,attr"`
	Available        string          `xml:"available,attr"`
	InStock          string          `xml:"in_stock,attr"`
	Type             string          `xml:"type,attr"`
	SellingType      string          `xml:"selling_type,attr"`
	GroupID          string          `xml:"group_id,attr"`
	Name             string          `xml:"name"`
	NameUA           string          `xml:"name_ua"`
	Description      cdata           `xml:"description"`
	DescriptionUA    cdata           `xml:"description_ua"`
	URL              string          `xml:"url,omitempty"`
	Pictures         []string        `xml:"picture"`
	Video            string          `xml:"video,omitempty"`
	Price            string          `xml:"price"`
	CurrencyID       string          `xml:"currencyId"`
	CategoryID       string          `xml:"categoryId"`
	PortalCategoryID string          `xml:"portal_category_id"`
	Vendor           string          `xml:"vendor"`
	Model            string          `xml:"model"`
	VendorCode       string          `xml:"vendorCode"`
	Country          string          `xml:"country"`
	Params           []paramElement  `xml:"param"`
	Details          []detailElement `xml:"g:product_detail"`
}

// cdata carries markup through as unparsed character data.
type cdata struct {
	Text string `xml:",cdata"`
}

type paramElement struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type detailElement struct {
	Name  string `xml:"g:attribute_name"`
	Value string `xml:"g:attribute_value"`
}

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	XMLNSG  string     `xml:"xmlns:g,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	ID                   string          `xml:"g:id"`
	ItemGroupID          string          `xml:"g:item_group_id"`
	Title                string          `xml:"g:title"`
	Description          cdata           `xml:"g:description"`
	Link                 string          `xml:"g:link,omitempty"`
	ImageLink            string          `xml:"g:image_link,omitempty"`
	AdditionalImageLinks []string        `xml:"g:additional_image_link"`
	Price                string          `xml:"g:price"`
	Availability         string          `xml:"g:availability"`
	Condition            string          `xml:"g:condition"`
	Brand                string          `xml:"g:brand"`
	MPN                  string          `xml:"g:mpn"`
	ProductType          string          `xml:"g:product_type"`
	Color                string          `xml:"g:color"`
	Size                 string          `xml:"g:size"`
	VideoLink            string          `xml:"g:video_link,omitempty"`
	Details              []detailElement `xml:"g:product_detail"`
}

func (b *Builder) shopElement(offers []models.Offer, withCurrencies, withDetails bool) shopElement {
	shop := shopElement{
		Name:    b.opts.Shop.Name,
		Company: b.opts.Shop.Company,
		URL:     b.opts.Shop.URL,
	}
	if withCurrencies {
		shop.Currencies = &currenciesElement{
			Currency: []currencyElement{{ID: b.opts.Currency, Rate: "1"}},
		}
	}

	for _, rule := range resolver.DistinctCategories() {
		shop.Categories.Category = append(shop.Categories.Category, categoryElement{
			ID:       rule.CategoryID,
			ParentID: rule.ParentID,
			Name:     rule.GroupName,
		})
	}

	shop.Offers.Offer = make([]offerElement, 0, len(offers))
	for i := range offers {
		shop.Offers.Offer = append(shop.Offers.Offer, newOfferElement(&offers[i], withDetails))
	}
	return shop
}

func newOfferElement(o *models.Offer, withDetails bool) offerElement {
	el := offerElement{
		ID:               o.ID,
		Available:        boolAttr(o.Available),
		InStock:          boolAttr(o.Available),
		Type:             offerType,
		SellingType:      retailSellingType,
		GroupID:          o.GroupID,
		Name:             o.Name,
		NameUA:           o.NameUA,
		Description:      cdata{Text: sanitize(o.Description)},
		DescriptionUA:    cdata{Text: sanitize(o.DescriptionUA)},
		URL:              o.URL,
		Pictures:         o.Pictures,
		Video:            o.Video,
		Price:            o.Price,
		CurrencyID:       o.Currency,
		CategoryID:       o.CategoryID,
		PortalCategoryID: o.PortalCategoryID,
		Vendor:           o.Vendor,
		Model:            o.Model,
		VendorCode:       o.VendorCode,
		Country:          o.Country,
	}

	for _, p := range o.Params {
		el.Params = append(el.Params, paramElement{Name: p.Name, Value: p.Value})
	}
	if withDetails {
		el.Details = detailElements(o.Details)
	}
	return el
}

func (b *Builder) rssDocument(offers []models.Offer) rssDocument {
	doc := rssDocument{
		Version: "2.0",
		XMLNSG:  GoogleNamespace,
		Channel: rssChannel{
			Title:       b.opts.Shop.Name,
			Link:        b.opts.Shop.URL,
			Description: b.opts.Shop.Description,
			Items:       make([]rssItem, 0, len(offers)),
		},
	}

	for i := range offers {
		o := &offers[i]
		item := rssItem{
			ID:           o.ID,
			ItemGroupID:  o.GroupID,
			Title:        o.Name,
			Description:  cdata{Text: sanitize(o.Description)},
			Link:         o.URL,
			Price:        o.Price + " " + o.Currency,
			Availability: "out_of_stock",
			Condition:    "new",
			Brand:        o.Vendor,
			MPN:          o.VendorCode,
			ProductType:  o.GroupName,
			Color:        o.Color,
			Size:         o.Size,
			VideoLink:    o.Video,
			Details:      detailElements(o.Details),
		}
		if o.Available {
			item.Availability = "in_stock"
		}
		if len(o.Pictures) > 0 {
			item.ImageLink = o.Pictures[0]
			item.AdditionalImageLinks = o.Pictures[1:]
		}
		doc.Channel.Items = append(doc.Channel.Items, item)
	}
	return doc
}

func detailElements(details []models.ProductDetail) []detailElement {
	var out []detailElement
	for _, d := range details {
		out = append(out, detailElement{Name: d.Name, Value: d.Value})
	}
	return out
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// sanitize drops runes that are not allowed in XML 1.0 character data.
// CDATA sections are written verbatim, so the encoder does not filter them.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		}
		return r
	}, s)
}
