package search

import (
	"reflect"
	"testing"

	"demacat/internal/config"
	"demacat/internal/models"
)

func testConfig() config.SearchConfig {
	return config.SearchConfig{
		Threshold:       0.3,
		MaxResults:      100,
		BoostExact:      2,
		BoostStartsWith: 1.5,
	}
}

func testGroups() []models.VariantGroup {
	return []models.VariantGroup{
		{
			GroupID: "dema-dompelpomp-dpx",
			Name:    "Dompelpomp DPX",
			Catalog: "pumps",
			Brand:   "Dema",
			Variants: []models.Variant{
				{SKU: "DPX5500", Label: "DPX5500 - Dompelpomp DPX"},
				{SKU: "DPX7500", Label: "DPX7500 - Dompelpomp DPX"},
			},
		},
		{
			GroupID: "dema-slangklem-rvs",
			Name:    "Slangklem RVS",
			Catalog: "clamps",
			Brand:   "Dema",
			Variants: []models.Variant{
				{SKU: "SK2540", Label: "SK2540 - Slangklem RVS"},
			},
		},
		{
			GroupID:  "dema-koppeling-messing",
			Name:     "Koppeling messing",
			Catalog:  "fittings",
			Brand:    "Dema",
			Material: "messing",
			Variants: []models.Variant{
				{SKU: "KM1234", Label: "KM1234 - Koppeling messing"},
			},
		},
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"pomp", "pomp", 1},
		{"Pomp", "pomp", 1},
		{"", "pomp", 0},
		{"dompelpomp", "pomp", 0.9},
		{"pomp", "dompelpomp", 0.9},
	}

	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarityTypoTolerance(t *testing.T) {
	// One substitution in a ten-rune string: 1 - 1/10.
	got := Similarity("dompelpomp", "dompelpamp")
	if got < 0.89 || got > 0.91 {
		t.Errorf("Similarity() = %v, want ~0.9", got)
	}

	// Closer strings never score below farther ones.
	near := Similarity("slangklem", "slangklen")
	far := Similarity("slangklem", "xyzzyxyzz")
	if near <= far {
		t.Errorf("near (%v) should outscore far (%v)", near, far)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"Dompelpomp DPX", []string{"dompelpomp", "dpx"}},
		{"t-stuk 90°", []string{"stuk", "90"}},
		{"  a  ", nil},
		{"", nil},
		{"SK2540", []string{"sk2540"}},
	}

	for _, tt := range tests {
		if got := Tokenize(tt.query); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	idx := NewIndex(testGroups(), testConfig())

	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}

	results := idx.Search("   ")

	if len(results) != 3 {
		t.Fatalf("got %d results, want all 3", len(results))
	}
	for _, r := range results {
		if r.Score != 1 {
			t.Errorf("Score = %v, want 1 for empty query", r.Score)
		}
		if len(r.MatchedFields) != 0 {
			t.Errorf("MatchedFields = %v, want none for empty query", r.MatchedFields)
		}
	}
}

func TestSearchExactNameOutranksPartial(t *testing.T) {
	idx := NewIndex(testGroups(), testConfig())

	results := idx.Search("Dompelpomp DPX")

	if len(results) == 0 {
		t.Fatal("no results")
	}
	if results[0].Group.GroupID != "dema-dompelpomp-dpx" {
		t.Errorf("top result = %q, want dema-dompelpomp-dpx", results[0].Group.GroupID)
	}
	if results[0].Score != 2 {
		t.Errorf("exact match score = %v, want 2 (1 × boost)", results[0].Score)
	}
}

func TestSearchBySKU(t *testing.T) {
	idx := NewIndex(testGroups(), testConfig())

	results := idx.Search("DPX5500")

	if len(results) == 0 {
		t.Fatal("no results")
	}

	top := results[0]
	if top.Group.GroupID != "dema-dompelpomp-dpx" {
		t.Errorf("top result = %q, want the pump group", top.Group.GroupID)
	}
	if top.Score != 2 {
		t.Errorf("exact SKU score = %v, want 2", top.Score)
	}

	found := false
	for _, f := range top.MatchedFields {
		if f == "variants.sku" {
			found = true
		}
	}
	if !found {
		t.Errorf("MatchedFields = %v, want variants.sku", top.MatchedFields)
	}
}

func TestSearchTypoStillMatches(t *testing.T) {
	idx := NewIndex(testGroups(), testConfig())

	// "slangklen" is one substitution off "slangklem".
	results := idx.Search("slangklen")

	found := false
	for _, r := range results {
		if r.Group.GroupID == "dema-slangklem-rvs" {
			found = true
		}
	}
	if !found {
		t.Error("typo query did not match slangklem group")
	}
}

func TestSearchThresholdFiltersMisses(t *testing.T) {
	idx := NewIndex(testGroups(), testConfig())

	results := idx.Search("volslagen onzin zonder treffer")

	for _, r := range results {
		if r.Score < 0.3 {
			t.Errorf("result %q below threshold: %v", r.Group.GroupID, r.Score)
		}
	}
}

func TestSearchMaxResults(t *testing.T) {
	cfg := testConfig()
	cfg.MaxResults = 1

	idx := NewIndex(testGroups(), cfg)

	if got := len(idx.Search("")); got != 1 {
		t.Errorf("empty query returned %d results, want 1", got)
	}
	if got := len(idx.Search("dema")); got > 1 {
		t.Errorf("query returned %d results, want at most 1", got)
	}
}

func TestSearchPartialMatchesStayBelowExactBoost(t *testing.T) {
	groups := []models.VariantGroup{
		{GroupID: "g1", Name: "Submersible Pump"},
		{GroupID: "g2", Name: "Pumping station"},
	}

	idx := NewIndex(groups, testConfig())

	results := idx.Search("pump")

	if len(results) != 2 {
		t.Fatalf("got %d results, want both candidates", len(results))
	}
	for _, r := range results {
		if r.Score < 0.3 {
			t.Errorf("%q below threshold: %v", r.Group.Name, r.Score)
		}
		if r.Score >= 2 {
			t.Errorf("%q reached the exact-match boost (%v) without equaling the query", r.Group.Name, r.Score)
		}
	}
}

func TestSearchStableOrderOnTies(t *testing.T) {
	groups := []models.VariantGroup{
		{GroupID: "g1", Name: "Koppeling messing 25"},
		{GroupID: "g2", Name: "Koppeling messing 32"},
	}

	idx := NewIndex(groups, testConfig())

	results := idx.Search("koppeling messing")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Group.GroupID != "g1" || results[1].Group.GroupID != "g2" {
		t.Errorf("tie order = [%s %s], want input order [g1 g2]",
			results[0].Group.GroupID, results[1].Group.GroupID)
	}
}
