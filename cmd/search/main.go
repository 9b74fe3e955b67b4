// Package main searches a grouped product catalog from the command line.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"demacat/internal/config"
	"demacat/internal/models"
	"demacat/internal/search"
	"demacat/pkg/textutil"
)

func main() {
	groupsPath := flag.String("groups", "products_all_grouped.json", "Path to grouped products JSON")
	threshold := flag.Float64("threshold", 0.3, "Minimum score to include (0-1)")
	maxResults := flag.Int("max", 20, "Maximum number of results")
	flag.Parse()

	query := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(query) == "" {
		fmt.Println("Usage: search [flags] <query terms>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(*groupsPath)
	if err != nil {
		log.Fatalf("Error reading groups file: %v\n", err)
	}

	var groups []models.VariantGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		log.Fatalf("Error parsing groups file: %v\n", err)
	}

	cfg := config.SearchConfig{
		Threshold:       *threshold,
		MaxResults:      *maxResults,
		BoostExact:      2,
		BoostStartsWith: 1.5,
	}

	idx := search.NewIndex(groups, cfg)
	fmt.Printf("📂 Indexed %d groups from %s\n", idx.Len(), *groupsPath)

	results := idx.Search(query)

	if len(results) == 0 {
		fmt.Printf("🔍 No matches for %q\n", query)
		return
	}

	fmt.Printf("🔍 %d matches for %q:\n\n", len(results), query)

	for i, r := range results {
		fmt.Printf("%2d. [%.2f] %s (%s)\n", i+1, r.Score, textutil.Truncate(r.Group.Name, 60), r.Group.GroupID)
		fmt.Printf("    %d variants, default %s\n", r.Group.VariantCount, r.Group.DefaultVariantSKU)
		if len(r.MatchedFields) > 0 {
			fmt.Printf("    matched: %s\n", strings.Join(r.MatchedFields, ", "))
		}
	}
}
