// Package extractor turns raw catalog text into product records. It tries
// table-structured extraction first and falls back to a pattern scan over
// free-flowing text when no tables are found.
package extractor

import (
	"fmt"
	"regexp"

	"demacat/internal/logger"
	"demacat/internal/models"
)

// Input is one document to extract from.
type Input struct {
	Text      string
	Catalog   string
	SourceDoc string
	PageCount int
}

// Extractor extracts product records from catalog text.
type Extractor struct {
	log *logger.Logger

	cellSplit  *regexp.Regexp
	headerCell *regexp.Regexp
	skuCell    []*regexp.Regexp
	skuScan    []*regexp.Regexp
	labels     []labelPattern
}

type labelPattern struct {
	key string
	re  *regexp.Regexp
}

// New creates an extractor with compiled patterns.
func New(log *logger.Logger) *Extractor {
	return &Extractor{
		log: log,

		// Cells are separated by tabs, runs of two or more spaces, or pipes.
		cellSplit: regexp.MustCompile(`\t|  +|\|`),

		headerCell: regexp.MustCompile(`(?i)^(sku|art|bestelnr|maat|type|prijs|price|size|code|nr)`),

		skuCell: []*regexp.Regexp{
			regexp.MustCompile(`^[A-Z]{2,6}[0-9]{3,8}$`),
			regexp.MustCompile(`^[0-9]{6,12}$`),
		},

		skuScan: []*regexp.Regexp{
			regexp.MustCompile(`\b([A-Z]{2,6}[0-9]{3,8})\b`),
			regexp.MustCompile(`\b([0-9]{6,12})\b`),
			regexp.MustCompile(`(?i)art\.?\s*nr\.?:?\s*([A-Z0-9-]{4,})`),
			regexp.MustCompile(`(?i)bestelnr\.?:?\s*([A-Z0-9-]{4,})`),
		},

		labels: []labelPattern{
			{"maat", regexp.MustCompile(`(?i)maat[:\s]+([0-9][\w.,x/"-]*)`)},
			{"size", regexp.MustCompile(`(?i)size[:\s]+([0-9][\w.,x/"-]*)`)},
			{"diameter", regexp.MustCompile(`(?i)diameter[:\s]+([0-9][\w.,/"-]*)`)},
			{"werkdruk", regexp.MustCompile(`(?i)werkdruk[:\s]+([0-9][\d.,]*\s*bar)`)},
			{"pressure", regexp.MustCompile(`(?i)pressure[:\s]+([0-9][\d.,]*\s*bar)`)},
			{"type", regexp.MustCompile(`(?i)type[:\s]+([A-Za-z0-9][\w./-]*)`)},
			{"material", regexp.MustCompile(`(?i)materiaal[:\s]+([A-Za-z][\w-]*)`)},
			{"material", regexp.MustCompile(`(?i)material[:\s]+([A-Za-z][\w-]*)`)},
			{"series", regexp.MustCompile(`(?i)serie[:\s]+([A-Za-z0-9][\w./-]*)`)},
			{"series", regexp.MustCompile(`(?i)series[:\s]+([A-Za-z0-9][\w./-]*)`)},
		},
	}
}

// Extract extracts product records from one document. Table rows win when
// present; otherwise the fallback scan runs. Records sharing a SKU are merged
// into one, first occurrence winning per field.
func (e *Extractor) Extract(in Input) ([]models.ProductRecord, error) {
	if in.Catalog == "" {
		return nil, fmt.Errorf("extract: catalog identifier is required")
	}

	records := e.extractTables(in)
	method := "table"

	if len(records) == 0 {
		records = e.extractFallback(in)
		method = "fallback"
	}

	records = e.mergeDuplicates(in.Catalog, records)

	e.log.Info("extraction complete",
		"catalog", in.Catalog,
		"method", method,
		"records", len(records))

	return records, nil
}

// mergeDuplicates collapses records that share a SKU. The first occurrence
// keeps its scalar fields; raw fields the first is missing are filled in
// from later occurrences.
func (e *Extractor) mergeDuplicates(catalog string, records []models.ProductRecord) []models.ProductRecord {
	out := make([]models.ProductRecord, 0, len(records))
	byID := make(map[string]int, len(records))

	for _, rec := range records {
		i, ok := byID[rec.SKU]
		if !ok {
			byID[rec.SKU] = len(out)
			out = append(out, rec)
			continue
		}

		kept := &out[i]
		for key, value := range rec.Raw.All() {
			if _, exists := kept.Raw.Get(key); !exists {
				kept.Raw.Set(key, value)
			}
		}

		e.log.Debug("merged duplicate SKU",
			"catalog", catalog,
			"sku", rec.SKU)
	}

	return out
}

// page maps a character offset in the document to a 1-based page number,
// assuming pages are evenly sized.
func page(charIndex, totalChars, pageCount int) int {
	if totalChars <= 0 || pageCount <= 0 {
		return 1
	}

	p := (charIndex*pageCount + totalChars - 1) / totalChars
	if p < 1 {
		return 1
	}
	if p > pageCount {
		return pageCount
	}

	return p
}
