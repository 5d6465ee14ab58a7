package models

// CategoryRule maps a product-type label to marketplace category metadata.
type CategoryRule struct {
	Label         string
	CategoryID    string
	ParentID      string
	GroupName     string
	PortalURL     string
	SubdivisionID string
}

// SizeMeasurement lists the body measurements printed for a size label.
type SizeMeasurement struct {
	Size   string
	Params []Param
}
