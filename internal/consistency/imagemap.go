package consistency

import (
	"path"
	"regexp"
	"strings"

	"demacat/internal/models"
)

// Image filenames embed the SKUs of the table they illustrate:
//
//	abs-bocht-90__ABSB02090-ABSB02590-ABSB03290__v1.webp
//	pomp-specials__huishoudelijk-landbouw-in__02350025-X1106034.webp
var (
	skuSegmentVersioned = regexp.MustCompile(`(?i)__([A-Z0-9][A-Z0-9+-]+)__v\d+\.webp$`)
	skuSegmentPlain     = regexp.MustCompile(`(?i)__([A-Z0-9][A-Z0-9+-]+)\.webp$`)
)

// skusFromImagePath extracts the SKU list embedded in an image filename,
// uppercased. Empty when the filename carries none.
func skusFromImagePath(imagePath string) []string {
	if imagePath == "" {
		return nil
	}

	filename := path.Base(imagePath)

	m := skuSegmentVersioned.FindStringSubmatch(filename)
	if m == nil {
		m = skuSegmentPlain.FindStringSubmatch(filename)
	}
	if m == nil {
		return nil
	}

	var skus []string
	for _, s := range strings.Split(m[1], "-") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			skus = append(skus, s)
		}
	}

	return skus
}

// skuInImage reports whether the SKU plausibly belongs to the image: a
// direct hit in the embedded list, a partial hit either way (filenames
// sometimes truncate SKUs), or a plain substring of the path.
func skuInImage(sku, imagePath string) bool {
	if sku == "" || imagePath == "" {
		return false
	}

	upper := strings.ToUpper(sku)

	for _, imgSKU := range skusFromImagePath(imagePath) {
		if imgSKU == upper ||
			strings.Contains(imgSKU, upper) ||
			strings.Contains(upper, imgSKU) {
			return true
		}
	}

	return strings.Contains(strings.ToUpper(imagePath), upper)
}

// seriesMatchesImage reports whether the record's series identifier appears
// in the image filename. Used to soften SKU mismatches within the right
// table.
func seriesMatchesImage(rec *models.ProductRecord, imagePath string) bool {
	if imagePath == "" || rec.SeriesID == "" {
		return false
	}

	filename := strings.ToLower(path.Base(imagePath))

	parts := strings.Split(strings.ToLower(rec.SeriesID), "__")
	seriesPart := parts[len(parts)-1]

	return seriesPart != "" && strings.Contains(filename, seriesPart)
}
