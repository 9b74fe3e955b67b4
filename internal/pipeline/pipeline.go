// Package pipeline wires the full reconciliation run: read raw catalogs,
// normalize, group, categorize, validate, and write artifacts. Catalogs are
// independent until grouping, so reading and normalizing fan out per catalog;
// everything after the merge is sequential and deterministic.
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"demacat/internal/catalog"
	"demacat/internal/categorizer"
	"demacat/internal/config"
	"demacat/internal/consistency"
	"demacat/internal/grouper"
	"demacat/internal/logger"
	"demacat/internal/models"
	"demacat/internal/normalizer"
)

// Result holds everything one pipeline run produced.
type Result struct {
	Records    []models.ProductRecord
	Groups     []models.VariantGroup
	ByCategory map[string][]models.VariantGroup
	Index      models.CategoryIndex
	Issues     models.IssueReport
}

// Pipeline runs the catalog reconciliation stages.
type Pipeline struct {
	cfg *config.Config
	log *logger.Logger

	reader      *catalog.Reader
	normalizer  *normalizer.Normalizer
	grouper     *grouper.Grouper
	categorizer *categorizer.Categorizer
	validator   *consistency.Validator
}

// New assembles a pipeline from configuration.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		log: log,

		reader:      catalog.NewReader(log),
		normalizer:  normalizer.New(cfg.Normalizer, log),
		grouper:     grouper.New(log),
		categorizer: categorizer.New(cfg.Categories, log),
		validator:   consistency.New(cfg.Pipeline.Validation, log),
	}
}

// Run executes the pipeline over every catalog in the input directory.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	names, err := p.reader.ListCatalogs(p.cfg.Pipeline.InputDir)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("no catalogs found in %s", p.cfg.Pipeline.InputDir)
	}

	records, err := p.loadAll(ctx, names)
	if err != nil {
		return nil, err
	}

	groups := p.grouper.Group(records)
	byCategory := p.categorizer.ClassifyGroups(groups, records)
	index := p.buildIndex(byCategory)
	issues := p.validator.Validate(records)

	return &Result{
		Records:    records,
		Groups:     groups,
		ByCategory: byCategory,
		Index:      index,
		Issues:     issues,
	}, nil
}

// loadAll reads and normalizes catalogs concurrently, then merges them in
// name order so the merged slice is stable regardless of scheduling.
func (p *Pipeline) loadAll(ctx context.Context, names []string) ([]models.ProductRecord, error) {
	// Each goroutine owns one slot, so no lock is needed.
	perCatalog := make([][]models.ProductRecord, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Pipeline.Workers)

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			records, err := p.reader.ReadCatalog(p.cfg.Pipeline.InputDir, name)
			if err != nil {
				// One bad catalog never aborts the batch.
				p.log.Error("skipping unreadable catalog",
					"catalog", name,
					"error", err)
				return nil
			}

			p.normalizer.NormalizeAll(records)
			perCatalog[i] = records

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []models.ProductRecord
	for _, records := range perCatalog {
		merged = append(merged, records...)
	}

	return merged, nil
}

// buildIndex computes per-category product and group counts, sorted by
// product count descending with the key as tiebreak.
func (p *Pipeline) buildIndex(byCategory map[string][]models.VariantGroup) models.CategoryIndex {
	meta := make(map[string]models.Category, len(p.cfg.Categories))
	for _, cat := range p.cfg.Categories {
		meta[cat.Key] = cat
	}
	meta[categorizer.Uncategorized] = models.Category{
		Key:  categorizer.Uncategorized,
		Name: "Uncategorized",
	}

	var index models.CategoryIndex

	for key, groups := range byCategory {
		products := 0
		for _, grp := range groups {
			products += grp.VariantCount
		}

		cat := meta[key]
		index.Categories = append(index.Categories, models.CategoryStat{
			Key:         key,
			Name:        cat.Name,
			Products:    products,
			Groups:      len(groups),
			Icon:        cat.Icon,
			Description: cat.Description,
		})
		index.TotalProducts += products
	}

	sort.Slice(index.Categories, func(a, b int) bool {
		if index.Categories[a].Products != index.Categories[b].Products {
			return index.Categories[a].Products > index.Categories[b].Products
		}
		return index.Categories[a].Key < index.Categories[b].Key
	})

	return index
}
