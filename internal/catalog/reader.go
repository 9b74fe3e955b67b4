// Package catalog reads raw catalog dumps from disk. Each input file is a
// JSON array of flat records; identity fields are lifted onto the record and
// everything else is kept, in file order, as raw fields for the normalizer.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"demacat/internal/logger"
	"demacat/internal/models"
)

// Reader loads raw catalog files.
type Reader struct {
	log *logger.Logger
}

// NewReader creates a catalog reader.
func NewReader(log *logger.Logger) *Reader {
	return &Reader{log: log}
}

// ListCatalogs returns the catalog names found in dir, one per .json file,
// sorted for deterministic processing order.
func (r *Reader) ListCatalogs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}

	sort.Strings(names)
	return names, nil
}

// ReadCatalog loads one catalog file from dir. Records without a SKU are
// skipped and logged, never fatal; a malformed file is. Rows that repeat a
// SKU are merged into the first occurrence and logged, so a SKU maps to at
// most one record per catalog.
func (r *Reader) ReadCatalog(dir, name string) ([]models.ProductRecord, error) {
	path := filepath.Join(dir, name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", name, err)
	}

	var rows []models.Fields
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", name, err)
	}

	log := r.log.With("catalog", name)

	records := make([]models.ProductRecord, 0, len(rows))
	skipped := 0

	for i, row := range rows {
		rec := liftRecord(row)

		if rec.SKU == "" {
			skipped++
			log.Warn("skipping record without SKU", "index", i)
			continue
		}

		if rec.Catalog == "" {
			rec.Catalog = name
		}

		records = append(records, rec)
	}

	records, merged := mergeDuplicates(records, log)

	log.Info("catalog loaded",
		"records", len(records),
		"skipped", skipped,
		"merged", merged)

	return records, nil
}

// mergeDuplicates collapses rows that repeat a SKU within one file. The first
// row keeps its fields; raw fields it is missing are filled in from later
// rows.
func mergeDuplicates(records []models.ProductRecord, log *logger.Logger) ([]models.ProductRecord, int) {
	out := make([]models.ProductRecord, 0, len(records))
	byID := make(map[string]int, len(records))
	merged := 0

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

		merged++
		log.Warn("merged duplicate SKU", "sku", rec.SKU)
	}

	return out, merged
}

// identity fields lifted off the raw row onto the record itself.
var scalarFields = map[string]func(*models.ProductRecord, string){
	"sku":           func(r *models.ProductRecord, v string) { r.SKU = v },
	"catalog":       func(r *models.ProductRecord, v string) { r.Catalog = v },
	"series_name":   func(r *models.ProductRecord, v string) { r.SeriesName = v },
	"series_id":     func(r *models.ProductRecord, v string) { r.SeriesID = v },
	"type":          func(r *models.ProductRecord, v string) { r.Type = v },
	"name":          func(r *models.ProductRecord, v string) { r.Name = v },
	"brand":         func(r *models.ProductRecord, v string) { r.Brand = v },
	"material":      func(r *models.ProductRecord, v string) { r.Material = v },
	"image":         func(r *models.ProductRecord, v string) { r.Image = v },
	"source_pdf":    func(r *models.ProductRecord, v string) { r.SourceDoc = v },
	"angle":         func(r *models.ProductRecord, v string) { r.Angle = v },
	"application":   func(r *models.ProductRecord, v string) { r.Application = v },
	"product_type":  func(r *models.ProductRecord, v string) { r.ProductType = v },
	"catalog_group": func(r *models.ProductRecord, v string) { r.CatalogGroup = v },
	"description":   func(r *models.ProductRecord, v string) { r.Description = v },
}

func liftRecord(row models.Fields) models.ProductRecord {
	var rec models.ProductRecord

	for key, value := range row.All() {
		if set, ok := scalarFields[key]; ok {
			set(&rec, value)
			continue
		}

		if key == "page" {
			if p, err := strconv.Atoi(value); err == nil {
				rec.Page = p
			}
			continue
		}

		rec.Raw.Set(key, value)
	}

	return rec
}
