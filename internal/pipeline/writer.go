package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"demacat/internal/models"
	"demacat/internal/report"
)

// Artifact filenames under the output directory.
const (
	allGroupsFile = "products_all_grouped.json"
	categoriesDir = "categories"
	indexFile     = "index.json"
	issuesFile    = "consistency-issues.json"
	summaryFile   = "consistency-summary.md"
	generatorName = "demacat-pipeline"
)

// Write materializes all run artifacts under outputDir. Files are complete
// replacements; nothing is patched in place.
func (p *Pipeline) Write(result *Result, outputDir string) error {
	if err := os.MkdirAll(filepath.Join(outputDir, categoriesDir), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeJSON(filepath.Join(outputDir, allGroupsFile), result.Groups); err != nil {
		return err
	}

	for key, groups := range result.ByCategory {
		cat := p.categoryCatalog(key, groups)
		if err := writeJSON(filepath.Join(outputDir, categoriesDir, key+".json"), cat); err != nil {
			return err
		}
	}

	if err := writeJSON(filepath.Join(outputDir, categoriesDir, indexFile), result.Index); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(outputDir, issuesFile), result.Issues); err != nil {
		return err
	}

	summary := report.Summary(result.Index, result.Issues, generatorName)
	if err := os.WriteFile(filepath.Join(outputDir, summaryFile), []byte(summary), 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	p.log.Info("artifacts written",
		"output_dir", outputDir,
		"groups", len(result.Groups),
		"categories", len(result.ByCategory))

	return nil
}

func (p *Pipeline) categoryCatalog(key string, groups []models.VariantGroup) models.CategoryCatalog {
	cat := models.CategoryCatalog{
		Category: key,
		Name:     key,
		Groups:   groups,
	}

	for _, c := range p.cfg.Categories {
		if c.Key == key {
			cat.Name = c.Name
			cat.Icon = c.Icon
			cat.Description = c.Description
			break
		}
	}

	cat.TotalGroups = len(groups)
	for _, grp := range groups {
		cat.TotalProducts += grp.VariantCount
	}

	return cat
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	return nil
}
