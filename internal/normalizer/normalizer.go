// Package normalizer resolves raw extracted fields into the canonical
// property/attribute split. Normalization is total: every raw key either
// lands in exactly one bucket or is dropped from the canonical view, and the
// same input always produces the same output.
package normalizer

import (
	"regexp"
	"strings"

	"demacat/internal/config"
	"demacat/internal/logger"
	"demacat/internal/models"
)

// Normalizer applies the configured field split to product records.
type Normalizer struct {
	log *logger.Logger

	properties map[string]bool
	attributes map[string]bool
	suffixes   []string

	positional *regexp.Regexp
	dynamic    *regexp.Regexp
}

// units appended to bare numeric values of well-known keys.
var units = map[string]string{
	"spanning_v":      "V",
	"vermogen_kw":     "kW",
	"vermogen_w":      "W",
	"vermogen_pk":     "pk",
	"debiet_m3_h":     "m3/h",
	"opv_hoogte_m":    "m",
	"opvoerhoogte_m":  "m",
	"aanzuigdiepte_m": "m",
	"aanzuig":         "inch",
	"steek":           "inch",
}

// New creates a normalizer from the configured field tables.
func New(cfg config.NormalizerConfig, log *logger.Logger) *Normalizer {
	n := &Normalizer{
		log:        log,
		properties: make(map[string]bool, len(cfg.PropertyFields)),
		attributes: make(map[string]bool, len(cfg.AttributeFields)),
		suffixes:   cfg.UnitSuffixes,

		positional: regexp.MustCompile(`^col_\d+$`),

		// Suffixed duplicates of known measurement keys (spanning_v_1,
		// spanning_v_1x230v, ...) collapse onto their base key.
		dynamic: regexp.MustCompile(`^(spanning_v|vermogen_kw|vermogen_w|vermogen_pk|debiet_m3_h|opv_hoogte_m|opvoerhoogte_m|type)_\w+$`),
	}

	for _, f := range cfg.PropertyFields {
		n.properties[f] = true
	}
	for _, f := range cfg.AttributeFields {
		n.attributes[f] = true
	}

	return n
}

// Normalize populates the record's Properties and Attributes from its raw
// fields. Raw is left untouched; unclaimed keys simply do not surface in the
// canonical view.
func (n *Normalizer) Normalize(rec *models.ProductRecord) {
	dropped := 0

	for key, value := range rec.Raw.All() {
		key = canonicalKey(key)
		if base := n.collapse(key); base != "" {
			key = base
		}

		value = appendUnit(key, value)

		switch {
		case n.properties[key] || n.positional.MatchString(key) || n.hasUnitSuffix(key):
			if _, exists := rec.Properties.Get(key); !exists {
				rec.Properties.Set(key, value)
			}
		case n.attributes[key]:
			if _, exists := rec.Attributes.Get(key); !exists {
				rec.Attributes.Set(key, value)
			}
		default:
			dropped++
		}
	}

	if dropped > 0 {
		n.log.Debug("dropped unclaimed fields",
			"catalog", rec.Catalog,
			"sku", rec.SKU,
			"count", dropped)
	}
}

// NormalizeAll normalizes a slice of records in place.
func (n *Normalizer) NormalizeAll(records []models.ProductRecord) {
	for i := range records {
		n.Normalize(&records[i])
	}
}

func (n *Normalizer) collapse(key string) string {
	m := n.dynamic.FindStringSubmatch(key)
	if m == nil {
		return ""
	}
	return m[1]
}

func (n *Normalizer) hasUnitSuffix(key string) bool {
	for _, suffix := range n.suffixes {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}

func canonicalKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.ReplaceAll(key, " ", "_")
}

func appendUnit(key, value string) string {
	unit, ok := units[key]
	if !ok || value == "" {
		return value
	}

	if strings.Contains(strings.ToLower(value), strings.ToLower(unit)) {
		return value
	}

	return value + " " + unit
}
