// Package search provides typo-tolerant product search over variant groups.
// Scoring is relative to the query, so scores are comparable within one
// result set but not across queries.
package search

import (
	"sort"
	"strings"

	"demacat/internal/config"
	"demacat/internal/models"
)

// Result is one scored hit.
type Result struct {
	Group         *models.VariantGroup
	Score         float64
	MatchedFields []string
}

// Index searches variant groups.
type Index struct {
	cfg    config.SearchConfig
	groups []models.VariantGroup
	fields []string
}

// DefaultFields are the group fields consulted when none are configured.
var DefaultFields = []string{"name", "group_id", "brand", "material"}

// NewIndex builds a search index over groups. The groups slice is referenced,
// not copied; it must not change while the index is in use.
func NewIndex(groups []models.VariantGroup, cfg config.SearchConfig, fields ...string) *Index {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	return &Index{cfg: cfg, groups: groups, fields: fields}
}

// Len returns the number of indexed groups.
func (idx *Index) Len() int {
	return len(idx.groups)
}

// Search scores every group against the query and returns hits at or above
// the threshold, best first. Ties keep index order. An empty query returns
// the first MaxResults groups with a neutral score and no matched fields.
func (idx *Index) Search(query string) []Result {
	if strings.TrimSpace(query) == "" {
		n := min(len(idx.groups), idx.cfg.MaxResults)
		results := make([]Result, n)
		for i := range n {
			results[i] = Result{Group: &idx.groups[i], Score: 1}
		}
		return results
	}

	queryLower := strings.ToLower(query)
	terms := Tokenize(query)

	var results []Result

	for i := range idx.groups {
		grp := &idx.groups[i]

		var (
			total   float64
			matched []string
		)

		for _, field := range idx.fields {
			value := fieldValue(grp, field)
			if value == "" {
				continue
			}

			score := idx.scoreField(strings.ToLower(value), queryLower, terms)
			if score > 0 {
				total = max(total, score)
				matched = append(matched, field)
			}
		}

		total, matched = idx.scoreVariants(grp, queryLower, terms, total, matched)

		if total >= idx.cfg.Threshold {
			results = append(results, Result{Group: grp, Score: total, MatchedFields: matched})
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if len(results) > idx.cfg.MaxResults {
		results = results[:idx.cfg.MaxResults]
	}

	return results
}

// scoreField scores one field value against the whole query, falling back to
// term-by-term matching with typo tolerance.
func (idx *Index) scoreField(value, queryLower string, terms []string) float64 {
	switch {
	case value == queryLower:
		return 1 * idx.cfg.BoostExact
	case strings.HasPrefix(value, queryLower):
		return 0.95 * idx.cfg.BoostStartsWith
	case strings.Contains(value, queryLower):
		return 0.85
	}

	if len(terms) == 0 {
		return 0
	}

	// termMatches is fractional: a fuzzy hit counts for its similarity,
	// not a full match.
	var termMatches float64

	for _, term := range terms {
		if strings.Contains(value, term) {
			termMatches++
			continue
		}

		for _, word := range strings.Fields(value) {
			if sim := Similarity(word, term); sim > 0.7 {
				termMatches += sim
				break
			}
		}
	}

	if termMatches == 0 {
		return 0
	}

	return 0.5 + 0.4*termMatches/float64(len(terms))
}

// scoreVariants folds variant SKU and label hits into the running score.
func (idx *Index) scoreVariants(grp *models.VariantGroup, queryLower string, terms []string, total float64, matched []string) (float64, []string) {
	for i := range grp.Variants {
		sku := strings.ToLower(grp.Variants[i].SKU)
		label := strings.ToLower(grp.Variants[i].Label)

		switch {
		case sku == queryLower || label == queryLower:
			total = max(total, 1*idx.cfg.BoostExact)
			matched = append(matched, "variants.sku")
		case strings.Contains(sku, queryLower) || strings.Contains(label, queryLower):
			total = max(total, 0.8)
			matched = append(matched, "variants")
		default:
			for _, term := range terms {
				if strings.Contains(sku, term) || strings.Contains(label, term) {
					total = max(total, 0.6)
					matched = append(matched, "variants")
					break
				}
			}
		}
	}

	return total, matched
}

func fieldValue(grp *models.VariantGroup, field string) string {
	switch field {
	case "name":
		return grp.Name
	case "group_id":
		return grp.GroupID
	case "catalog":
		return grp.Catalog
	case "brand":
		return grp.Brand
	case "material":
		return grp.Material
	case "source_pdf":
		return grp.SourceDoc
	default:
		return ""
	}
}
