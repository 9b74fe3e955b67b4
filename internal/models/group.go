package models

// Variant is one SKU inside a variant group. Identity is always the SKU;
// the label is a display convenience.
type Variant struct {
	SKU        string `json:"sku"`
	Label      string `json:"label"`
	Page       int    `json:"page,omitempty"`
	Properties Fields `json:"properties"`
	Attributes Fields `json:"attributes"`
}

// Media is a display asset attached to a group.
type Media struct {
	Role string `json:"role"`
	URL  string `json:"url"`
}

// VariantGroup clusters product records that share one illustration.
// Group metadata is inherited from the first-seen member and immutable
// afterwards; Variants keeps first-seen insertion order. Groups are rebuilt
// from scratch on every pipeline run, never patched incrementally.
type VariantGroup struct {
	GroupID           string    `json:"group_id"`
	Name              string    `json:"name,omitempty"`
	Catalog           string    `json:"catalog"`
	Image             string    `json:"image,omitempty"`
	SourceDoc         string    `json:"source_pdf,omitempty"`
	Brand             string    `json:"brand,omitempty"`
	Material          string    `json:"material,omitempty"`
	Variants          []Variant `json:"variants"`
	VariantCount      int       `json:"variant_count"`
	DefaultVariantSKU string    `json:"default_variant_sku,omitempty"`
	Media             []Media   `json:"media"`
}
