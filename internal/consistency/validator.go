// Package consistency cross-checks independently derived readings of the
// same logical attribute on product records: the bend angle encoded in a
// series, a SKU, and an image path must agree, and a record's SKU should
// appear in the image it is mapped to. Findings are advisory, the validator
// never mutates records.
package consistency

import (
	"fmt"

	"demacat/internal/config"
	"demacat/internal/logger"
	"demacat/internal/models"
)

// Validator runs the configured consistency checks.
type Validator struct {
	log *logger.Logger
	cfg config.ValidationConfig
}

// New creates a validator.
func New(cfg config.ValidationConfig, log *logger.Logger) *Validator {
	return &Validator{log: log, cfg: cfg}
}

// Validate checks all records and returns the issue report. Checks are
// independent; one record can raise several issues.
func (v *Validator) Validate(records []models.ProductRecord) models.IssueReport {
	report := models.IssueReport{Issues: []models.ConsistencyIssue{}}

	for i := range records {
		rec := &records[i]
		report.Stats.TotalRecords++

		if rec.Image != "" {
			report.Stats.RecordsWithImages++
		}

		if v.cfg.CheckAngles {
			report.Issues = append(report.Issues, v.checkAngles(rec)...)
		}

		if v.cfg.CheckSKUMapping {
			report.Issues = append(report.Issues, v.checkSKUMapping(rec, &report.Stats)...)
		}
	}

	for _, issue := range report.Issues {
		switch issue.Severity {
		case models.SeverityCritical:
			report.Stats.Critical++
		case models.SeverityWarning:
			report.Stats.Warnings++
		}
	}

	v.log.Info("validation complete",
		"records", report.Stats.TotalRecords,
		"issues", len(report.Issues),
		"critical", report.Stats.Critical,
		"warnings", report.Stats.Warnings)

	return report
}

// checkAngles compares the angle readings on one bend-piece record, one
// issue per disagreeing pair of available sources. Records that are not bend
// pieces or claim no angle are skipped; image checks additionally need an
// image.
func (v *Validator) checkAngles(rec *models.ProductRecord) []models.ConsistencyIssue {
	if !isAngled(rec) {
		return nil
	}

	seriesAngle := angleFromSeries(rec)
	if seriesAngle == 0 {
		return nil
	}

	skuAngle := angleFromSKU(rec.SKU)
	imageAngle := angleFromImagePath(rec.Image)

	var issues []models.ConsistencyIssue

	if imageAngle != 0 && imageAngle != seriesAngle {
		issues = append(issues, models.ConsistencyIssue{
			Kind:        models.ImageSeriesMismatch,
			Severity:    models.SeverityCritical,
			Catalog:     rec.Catalog,
			SKU:         rec.SKU,
			SeriesName:  rec.SeriesName,
			SeriesAngle: seriesAngle,
			ImageAngle:  imageAngle,
			Image:       rec.Image,
			Message:     fmt.Sprintf("Image shows %d° but product series is %d°", imageAngle, seriesAngle),
		})
	}

	for _, imgSKU := range skusFromImagePath(rec.Image) {
		imgSKUAngle := angleFromSKU(imgSKU)
		if imgSKUAngle != 0 && imageAngle != 0 && imgSKUAngle != imageAngle {
			issues = append(issues, models.ConsistencyIssue{
				Kind:           models.ImageSKUAngleMismatch,
				Severity:       models.SeverityWarning,
				Catalog:        rec.Catalog,
				SKU:            rec.SKU,
				ImageSKU:       imgSKU,
				ImageSKUAngle:  imgSKUAngle,
				ImagePathAngle: imageAngle,
				Image:          rec.Image,
				Message:        fmt.Sprintf("Image filename contains SKU %s (%d°) but image path indicates %d°", imgSKU, imgSKUAngle, imageAngle),
			})
		}
	}

	if skuAngle != 0 && skuAngle != seriesAngle {
		issues = append(issues, models.ConsistencyIssue{
			Kind:        models.SKUSeriesMismatch,
			Severity:    models.SeverityCritical,
			Catalog:     rec.Catalog,
			SKU:         rec.SKU,
			SKUAngle:    skuAngle,
			SeriesAngle: seriesAngle,
			SeriesName:  rec.SeriesName,
			Message:     fmt.Sprintf("SKU %s ends with %d° but series is %d°", rec.SKU, skuAngle, seriesAngle),
		})
	}

	return issues
}

// checkSKUMapping verifies the record's SKU appears in its image. A miss
// within the right series is a warning; a miss in a foreign table is
// critical.
func (v *Validator) checkSKUMapping(rec *models.ProductRecord, stats *models.IssueStats) []models.ConsistencyIssue {
	if rec.SKU == "" || rec.Image == "" {
		return nil
	}

	if skuInImage(rec.SKU, rec.Image) {
		return nil
	}

	stats.SKUNotInImage++

	matches := seriesMatchesImage(rec, rec.Image)

	severity := models.SeverityCritical
	message := fmt.Sprintf("SKU %s not in image filename and series doesn't match", rec.SKU)
	if matches {
		severity = models.SeverityWarning
		message = fmt.Sprintf("SKU %s not in image filename, but series matches", rec.SKU)
	}

	return []models.ConsistencyIssue{{
		Kind:          models.SKUNotInImage,
		Severity:      severity,
		Catalog:       rec.Catalog,
		SKU:           rec.SKU,
		SeriesID:      rec.SeriesID,
		SeriesName:    rec.SeriesName,
		Image:         rec.Image,
		ImageSKUs:     skusFromImagePath(rec.Image),
		SeriesMatches: matches,
		Message:       message,
	}}
}
