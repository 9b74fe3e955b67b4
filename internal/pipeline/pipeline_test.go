package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"demacat/internal/config"
	"demacat/internal/logger"
	"demacat/internal/models"
	"demacat/pkg/metadata"
)

func testPipeline(t *testing.T) (*Pipeline, string) {
	t.Helper()

	inputDir := t.TempDir()
	outputDir := t.TempDir()

	cfg := config.Default()
	cfg.Pipeline.InputDir = inputDir
	cfg.Pipeline.OutputDir = outputDir
	cfg.Pipeline.Workers = 2

	return New(cfg, logger.New("error", "text", io.Discard)), inputDir
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
}

const pumpsFixture = `[
	{
		"sku": "DPX5500",
		"series_name": "Dompelpomp DPX",
		"image": "img/pomp__DPX5500-DPX7500__v1.webp",
		"maat": "25 mm",
		"spanning_v": "230"
	},
	{
		"sku": "DPX7500",
		"series_name": "Dompelpomp DPX",
		"image": "img/pomp__DPX5500-DPX7500__v1.webp",
		"spanning_v": "400"
	}
]`

const hosesFixture = `[
	{
		"sku": "SL1025",
		"series_name": "Afzuigslang PU",
		"image": "img/slang__SL1025__v1.webp",
		"binnen_dia_mm": "102"
	}
]`

func TestRun(t *testing.T) {
	p, inputDir := testPipeline(t)
	writeFixture(t, inputDir, "pumps.json", pumpsFixture)
	writeFixture(t, inputDir, "hoses.json", hosesFixture)

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(result.Records) != 3 {
		t.Errorf("got %d records, want 3", len(result.Records))
	}

	// Catalogs merge in name order: hoses before pumps.
	if result.Records[0].Catalog != "hoses" {
		t.Errorf("Records[0].Catalog = %q, want hoses", result.Records[0].Catalog)
	}

	if len(result.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(result.Groups))
	}

	// The two pump records share an image, so they share a group.
	var pumpGroup *models.VariantGroup
	for i := range result.Groups {
		if result.Groups[i].Catalog == "pumps" {
			pumpGroup = &result.Groups[i]
		}
	}
	if pumpGroup == nil {
		t.Fatal("no pump group")
	}
	if pumpGroup.VariantCount != 2 {
		t.Errorf("pump group VariantCount = %d, want 2", pumpGroup.VariantCount)
	}

	// Normalization ran before grouping.
	if v, _ := pumpGroup.Variants[0].Properties.Get("spanning_v"); v != "230 V" {
		t.Errorf("spanning_v = %q, want \"230 V\"", v)
	}

	if len(result.ByCategory["pumps"]) != 1 {
		t.Errorf("pumps category has %d groups, want 1", len(result.ByCategory["pumps"]))
	}
	if len(result.ByCategory["hoses"]) != 1 {
		t.Errorf("hoses category has %d groups, want 1", len(result.ByCategory["hoses"]))
	}

	if result.Index.TotalProducts != 3 {
		t.Errorf("Index.TotalProducts = %d, want 3", result.Index.TotalProducts)
	}
	if result.Index.Categories[0].Key != "pumps" {
		t.Errorf("Index.Categories[0].Key = %q, want pumps (most products first)", result.Index.Categories[0].Key)
	}

	if result.Issues.Stats.TotalRecords != 3 {
		t.Errorf("Issues.Stats.TotalRecords = %d, want 3", result.Issues.Stats.TotalRecords)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	p, inputDir := testPipeline(t)
	writeFixture(t, inputDir, "pumps.json", pumpsFixture)
	writeFixture(t, inputDir, "hoses.json", hosesFixture)

	first, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	for range 5 {
		again, err := p.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}

		a, _ := json.Marshal(first.Groups)
		b, _ := json.Marshal(again.Groups)
		if string(a) != string(b) {
			t.Fatal("group output differs between runs")
		}
	}
}

func TestRunMergesDuplicateSKUWithinCatalog(t *testing.T) {
	p, inputDir := testPipeline(t)
	writeFixture(t, inputDir, "pumps.json", `[
		{"sku": "DPX5500", "series_name": "Dompelpomp DPX", "image": "img/pomp__DPX5500__v1.webp", "spanning_v": "230"},
		{"sku": "DPX5500", "series_name": "Dompelpomp DPX", "image": "img/pomp__DPX5500__v1.webp", "vermogen_w": "550"}
	]`)

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1 (duplicate SKU merged)", len(result.Records))
	}

	seen := 0
	for _, grp := range result.Groups {
		for _, v := range grp.Variants {
			if v.SKU == "DPX5500" {
				seen++
			}
		}
	}
	if seen != 1 {
		t.Errorf("SKU appears %d times across group variants, want exactly 1", seen)
	}

	// The merged record carries raw fields from both rows.
	if v, _ := result.Records[0].Properties.Get("vermogen_w"); v != "550 W" {
		t.Errorf("vermogen_w = %q, want \"550 W\" (filled from duplicate row)", v)
	}
}

func TestRunSkipsMalformedCatalog(t *testing.T) {
	p, inputDir := testPipeline(t)
	writeFixture(t, inputDir, "pumps.json", pumpsFixture)
	writeFixture(t, inputDir, "broken.json", `{"not": "an array"`)

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v, one bad file must not abort the batch", err)
	}

	if len(result.Records) != 2 {
		t.Errorf("got %d records, want 2 from the good catalog", len(result.Records))
	}
}

func TestRunEmptyInputDir(t *testing.T) {
	p, _ := testPipeline(t)

	if _, err := p.Run(context.Background()); err == nil {
		t.Error("Run() expected error for empty input dir, got nil")
	}
}

func TestWriteArtifacts(t *testing.T) {
	p, inputDir := testPipeline(t)
	writeFixture(t, inputDir, "pumps.json", pumpsFixture)
	writeFixture(t, inputDir, "hoses.json", hosesFixture)

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	outputDir := t.TempDir()
	if err := p.Write(result, outputDir); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	// All groups file round-trips.
	data, err := os.ReadFile(filepath.Join(outputDir, "products_all_grouped.json"))
	if err != nil {
		t.Fatalf("missing products_all_grouped.json: %v", err)
	}
	var groups []models.VariantGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		t.Fatalf("products_all_grouped.json is not valid JSON: %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("got %d groups in artifact, want 2", len(groups))
	}

	// Per-category files exist for every assigned category.
	for key := range result.ByCategory {
		path := filepath.Join(outputDir, "categories", key+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("missing category file %s: %v", key, err)
			continue
		}
		var cat models.CategoryCatalog
		if err := json.Unmarshal(data, &cat); err != nil {
			t.Errorf("category file %s is not valid JSON: %v", key, err)
		}
		if cat.Category != key {
			t.Errorf("category file %s has Category = %q", key, cat.Category)
		}
	}

	// Index file.
	data, err = os.ReadFile(filepath.Join(outputDir, "categories", "index.json"))
	if err != nil {
		t.Fatalf("missing index.json: %v", err)
	}
	var index models.CategoryIndex
	if err := json.Unmarshal(data, &index); err != nil {
		t.Fatalf("index.json is not valid JSON: %v", err)
	}
	if index.TotalProducts != 3 {
		t.Errorf("index TotalProducts = %d, want 3", index.TotalProducts)
	}

	// Issues file.
	data, err = os.ReadFile(filepath.Join(outputDir, "consistency-issues.json"))
	if err != nil {
		t.Fatalf("missing consistency-issues.json: %v", err)
	}
	var issues models.IssueReport
	if err := json.Unmarshal(data, &issues); err != nil {
		t.Fatalf("consistency-issues.json is not valid JSON: %v", err)
	}

	// Summary is signed and verifies.
	data, err = os.ReadFile(filepath.Join(outputDir, "consistency-summary.md"))
	if err != nil {
		t.Fatalf("missing consistency-summary.md: %v", err)
	}
	ok, err := metadata.Verify(string(data))
	if err != nil {
		t.Fatalf("summary Verify() error: %v", err)
	}
	if !ok {
		t.Error("summary hash does not verify")
	}
}
