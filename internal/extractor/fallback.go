package extractor

import (
	"demacat/internal/models"
)

// contextWindow is how many characters around a SKU hit are scanned for
// labeled properties.
const contextWindow = 200

// minSKULength filters out short numeric noise picked up by the scan
// patterns.
const minSKULength = 4

// extractFallback scans free-flowing text for SKU-shaped tokens and collects
// labeled properties from the surrounding context.
func (e *Extractor) extractFallback(in Input) []models.ProductRecord {
	var records []models.ProductRecord
	seen := make(map[string]bool)

	for _, re := range e.skuScan {
		for _, m := range re.FindAllStringSubmatchIndex(in.Text, -1) {
			start, end := m[2], m[3]
			sku := in.Text[start:end]

			if len(sku) < minSKULength || seen[sku] {
				continue
			}
			seen[sku] = true

			rec := models.ProductRecord{
				SKU:        sku,
				Catalog:    in.Catalog,
				SourceDoc:  in.SourceDoc,
				SeriesName: "Unknown",
				Page:       page(start, len(in.Text), in.PageCount),
			}

			e.scanContext(&rec, in.Text, start, end)
			records = append(records, rec)
		}
	}

	return records
}

// scanContext extracts labeled values near one SKU occurrence. Series and
// material hits promote to record fields; everything else lands in Raw.
func (e *Extractor) scanContext(rec *models.ProductRecord, text string, start, end int) {
	lo := max(0, start-contextWindow)
	hi := min(len(text), end+contextWindow)
	ctx := text[lo:hi]

	for _, lp := range e.labels {
		m := lp.re.FindStringSubmatch(ctx)
		if m == nil {
			continue
		}

		value := m[1]
		switch lp.key {
		case "series":
			if rec.SeriesName == "Unknown" {
				rec.SeriesName = value
			}
		case "material":
			if rec.Material == "" {
				rec.Material = value
			}
		case "type":
			if rec.Type == "" {
				rec.Type = value
			}
			rec.Raw.Set(lp.key, value)
		default:
			if _, exists := rec.Raw.Get(lp.key); !exists {
				rec.Raw.Set(lp.key, value)
			}
		}
	}
}
