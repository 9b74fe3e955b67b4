// Package grouper clusters product records into variant groups. Records that
// share an illustration belong together; a record without one falls back to
// its name so singletons still form a group of one.
package grouper

import (
	"strconv"

	"demacat/internal/logger"
	"demacat/internal/models"
	"demacat/pkg/textutil"
)

// fallbackKey groups records that have neither image nor name.
const fallbackKey = "no-image"

// Grouper builds variant groups from product records.
type Grouper struct {
	log *logger.Logger
}

// New creates a grouper.
func New(log *logger.Logger) *Grouper {
	return &Grouper{log: log}
}

// Group clusters records into variant groups. Group identity derives from
// the shared image (falling back to name, then a fixed bucket), scoped by
// catalog so identical filenames in different catalogs never collide. Group
// metadata is inherited from the first-seen member; variants keep insertion
// order.
func (g *Grouper) Group(records []models.ProductRecord) []models.VariantGroup {
	var groups []models.VariantGroup

	byKey := make(map[string]int)
	usedIDs := make(map[string]bool)

	for i := range records {
		rec := &records[i]
		key := rec.Catalog + "-" + groupKey(rec)

		idx, ok := byKey[key]
		if !ok {
			idx = len(groups)
			byKey[key] = idx
			groups = append(groups, newGroup(rec, uniqueID(textutil.Sanitize(key), usedIDs)))
		}

		grp := &groups[idx]
		grp.Variants = append(grp.Variants, newVariant(rec, grp))
		grp.VariantCount = len(grp.Variants)

		if grp.DefaultVariantSKU == "" {
			grp.DefaultVariantSKU = rec.SKU
		}
	}

	g.log.Info("grouping complete",
		"records", len(records),
		"groups", len(groups))

	return groups
}

func groupKey(rec *models.ProductRecord) string {
	switch {
	case rec.Image != "":
		return rec.Image
	case rec.Name != "":
		return rec.Name
	default:
		return fallbackKey
	}
}

// uniqueID disambiguates sanitized keys that collide, appending -1, -2, ...
// in first-seen order.
func uniqueID(id string, used map[string]bool) string {
	candidate := id
	for n := 1; used[candidate]; n++ {
		candidate = id + "-" + strconv.Itoa(n)
	}
	used[candidate] = true
	return candidate
}

func newGroup(rec *models.ProductRecord, id string) models.VariantGroup {
	grp := models.VariantGroup{
		GroupID:   id,
		Name:      rec.DisplayName(),
		Catalog:   rec.Catalog,
		Image:     rec.Image,
		SourceDoc: rec.SourceDoc,
		Brand:     rec.Brand,
		Material:  rec.Material,
	}

	if rec.Image != "" {
		grp.Media = []models.Media{{Role: "main", URL: rec.Image}}
	}

	return grp
}

// newVariant builds the display label from the SKU plus the most specific
// secondary descriptor available.
func newVariant(rec *models.ProductRecord, grp *models.VariantGroup) models.Variant {
	label := rec.SKU

	switch {
	case rec.Type != "" && rec.Type != grp.Name:
		label = rec.SKU + " - " + rec.Type
	case rec.Name != "":
		label = rec.SKU + " - " + rec.Name
	}

	return models.Variant{
		SKU:        rec.SKU,
		Label:      label,
		Page:       rec.Page,
		Properties: rec.Properties.Clone(),
		Attributes: rec.Attributes.Clone(),
	}
}
