// Package categorizer assigns variant groups to semantic categories by
// keyword matching over the group's descriptive text.
package categorizer

import (
	"strings"

	"demacat/internal/logger"
	"demacat/internal/models"
	"demacat/pkg/textutil"
)

// Uncategorized is the bucket for groups no category claims.
const Uncategorized = "uncategorized"

// Categorizer classifies variant groups.
type Categorizer struct {
	log        *logger.Logger
	categories []models.Category
}

// New creates a categorizer. Category order is priority order: the first
// matching category wins.
func New(categories []models.Category, log *logger.Logger) *Categorizer {
	return &Categorizer{log: log, categories: categories}
}

// Classify returns the key of the first category with a keyword occurring in
// the record's search text, or Uncategorized.
func (c *Categorizer) Classify(rec *models.ProductRecord) string {
	text := searchText(rec)

	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				return cat.Key
			}
		}
	}

	return Uncategorized
}

// ClassifyGroups partitions variant groups by category key. Each group is
// classified through its most descriptive member, so one sparse variant does
// not pull an otherwise well-described group into the uncategorized bucket;
// all variants of a group land in the same category by construction.
func (c *Categorizer) ClassifyGroups(groups []models.VariantGroup, records []models.ProductRecord) map[string][]models.VariantGroup {
	bySKU := make(map[string]*models.ProductRecord, len(records))
	for i := range records {
		bySKU[records[i].Catalog+"\x00"+records[i].SKU] = &records[i]
	}

	out := make(map[string][]models.VariantGroup)

	for _, grp := range groups {
		key := Uncategorized
		if rec := mostDescriptive(&grp, bySKU); rec != nil {
			key = c.Classify(rec)
		}
		out[key] = append(out[key], grp)
	}

	if n := len(out[Uncategorized]); n > 0 {
		c.log.Info("groups left uncategorized", "count", n)
	}

	return out
}

// mostDescriptive picks the member record with the longest search text, ties
// going to the earlier variant. A group without resolvable variants falls
// back to its default variant SKU.
func mostDescriptive(grp *models.VariantGroup, bySKU map[string]*models.ProductRecord) *models.ProductRecord {
	var best *models.ProductRecord
	bestLen := -1

	for i := range grp.Variants {
		rec, ok := bySKU[grp.Catalog+"\x00"+grp.Variants[i].SKU]
		if !ok {
			continue
		}
		if n := len(searchText(rec)); n > bestLen {
			best, bestLen = rec, n
		}
	}

	if best == nil {
		best = bySKU[grp.Catalog+"\x00"+grp.DefaultVariantSKU]
	}

	return best
}

// searchText joins the record fields that carry classification signal. All
// matching is lowercase substring matching.
func searchText(rec *models.ProductRecord) string {
	parts := []string{
		rec.Type,
		rec.ProductType,
		rec.CatalogGroup,
		rec.Application,
		rec.SeriesName,
		rec.SourceDoc,
		rec.Material,
	}
	return strings.ToLower(textutil.NormalizeWhitespace(strings.Join(parts, " ")))
}
