package models

// Offer is one sellable record in the feed. It holds no references back to
// the product it was built from.
type Offer struct {
	ID               string `validate:"required,numeric"`
	GroupID          string `validate:"required"`
	Available        bool
	Name             string `validate:"required"`
	NameUA           string
	Description      string
	DescriptionUA    string
	URL              string `validate:"omitempty,url"`
	Pictures         []string
	Video            string
	Price            string `validate:"required,numeric"`
	Currency         string `validate:"required,len=3"`
	CategoryID       string `validate:"required"`
	PortalCategoryID string
	Vendor           string
	Model            string
	VendorCode       string `validate:"required"`
	Country          string
	Params           []Param
	Details          []ProductDetail

	// Flattened variant attributes, used by dialects without a param list.
	Size      string
	Color     string
	Collar    string
	GroupName string
}

// Param is a named characteristic, rendered as <param name="...">value</param>.
type Param struct {
	Name  string
	Value string
}

// ProductDetail is a marketplace attribute name/value pair.
type ProductDetail struct {
	Name  string
	Value string
}

// Param returns the value of the first param with the given name.
func (o *Offer) Param(name string) (string, bool) {
	for _, p := range o.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}
