// Package models defines the catalog pipeline's data model.
package models

import "strconv"

// ProductRecord represents one extracted catalog entry. SKU is the primary
// identity; within one catalog a SKU maps to at most one record.
type ProductRecord struct {
	SKU          string `json:"sku"`
	Catalog      string `json:"catalog"`
	Page         int    `json:"page,omitempty"`
	SeriesName   string `json:"series_name,omitempty"`
	SeriesID     string `json:"series_id,omitempty"`
	Type         string `json:"type,omitempty"`
	Name         string `json:"name,omitempty"`
	Brand        string `json:"brand,omitempty"`
	Material     string `json:"material,omitempty"`
	Image        string `json:"image,omitempty"`
	SourceDoc    string `json:"source_pdf,omitempty"`
	Angle        string `json:"angle,omitempty"`
	Application  string `json:"application,omitempty"`
	ProductType  string `json:"product_type,omitempty"`
	CatalogGroup string `json:"catalog_group,omitempty"`
	Description  string `json:"description,omitempty"`

	// Canonical split produced by the normalizer.
	Properties Fields `json:"properties"`
	Attributes Fields `json:"attributes"`

	// Raw holds every field as extracted, for provenance. It is not part
	// of the canonical output.
	Raw Fields `json:"-"`
}

// Flatten returns the record in its flat interchange form: identity fields
// first, then the raw fields in their original order. This is the shape the
// catalog reader consumes, so Flatten and the reader round-trip.
func (r *ProductRecord) Flatten() Fields {
	var out Fields

	out.Set("sku", r.SKU)
	out.Set("catalog", r.Catalog)

	if r.Page > 0 {
		out.Set("page", strconv.Itoa(r.Page))
	}

	scalars := []struct{ key, value string }{
		{"series_name", r.SeriesName},
		{"series_id", r.SeriesID},
		{"type", r.Type},
		{"name", r.Name},
		{"brand", r.Brand},
		{"material", r.Material},
		{"image", r.Image},
		{"source_pdf", r.SourceDoc},
		{"angle", r.Angle},
		{"application", r.Application},
		{"product_type", r.ProductType},
		{"catalog_group", r.CatalogGroup},
		{"description", r.Description},
	}

	for _, s := range scalars {
		if s.value != "" {
			out.Set(s.key, s.value)
		}
	}

	for key, value := range r.Raw.All() {
		out.Set(key, value)
	}

	return out
}

// DisplayName returns the most descriptive name available for the record.
func (r *ProductRecord) DisplayName() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.SeriesName != "":
		return r.SeriesName
	case r.Type != "":
		return r.Type
	default:
		return r.SKU
	}
}
