package consistency

import (
	"regexp"
	"strconv"
	"strings"

	"demacat/internal/models"
)

// Known bend angles, in probe order.
var angleOrder = []int{90, 45, 30, 60}

var (
	trailingDigits = regexp.MustCompile(`(\d{2})$`)
	firstNumber    = regexp.MustCompile(`(\d+)`)
)

// angleFromImagePath reads the bend angle encoded in an image path, 0 when
// none is found.
func angleFromImagePath(imagePath string) int {
	if imagePath == "" {
		return 0
	}
	lower := strings.ToLower(imagePath)

	for _, a := range angleOrder {
		s := strconv.Itoa(a)
		if strings.Contains(lower, "bocht-"+s) ||
			strings.Contains(lower, "bocht_"+s) ||
			strings.Contains(lower, "-"+s+"__") ||
			strings.Contains(lower, "_"+s+"_") {
			return a
		}
	}

	return 0
}

// angleFromSKU reads the angle from a SKU's trailing two digits, 0 when they
// are not a known bend angle.
func angleFromSKU(sku string) int {
	m := trailingDigits.FindStringSubmatch(strings.ToUpper(sku))
	if m == nil {
		return 0
	}

	angle, _ := strconv.Atoi(m[1])
	for _, a := range angleOrder {
		if angle == a {
			return a
		}
	}

	return 0
}

// angleFromSeries reads the angle a record claims for itself: an explicit
// angle field wins, then the first known angle token in the series name or
// series ID.
func angleFromSeries(rec *models.ProductRecord) int {
	if rec.Angle != "" {
		if m := firstNumber.FindStringSubmatch(rec.Angle); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n
		}
	}

	for _, text := range []string{strings.ToLower(rec.SeriesName), strings.ToLower(rec.SeriesID)} {
		for _, a := range angleOrder {
			if strings.Contains(text, strconv.Itoa(a)) {
				return a
			}
		}
	}

	return 0
}

// isAngled reports whether the record describes a bend piece. Only those
// carry angle semantics worth checking.
func isAngled(rec *models.ProductRecord) bool {
	return strings.Contains(strings.ToLower(rec.SeriesName), "bocht") ||
		strings.Contains(strings.ToLower(rec.SeriesID), "bocht")
}
