package models

// IssueKind identifies a class of consistency mismatch.
type IssueKind string

// Consistency issue kinds.
const (
	// ImageSeriesMismatch: angle derived from the image path disagrees
	// with the angle derived from the series.
	ImageSeriesMismatch IssueKind = "IMAGE_SERIES_MISMATCH"
	// SKUSeriesMismatch: angle encoded in the SKU disagrees with the
	// angle derived from the series.
	SKUSeriesMismatch IssueKind = "SKU_SERIES_MISMATCH"
	// ImageSKUAngleMismatch: a SKU embedded in the image filename encodes
	// an angle that disagrees with the image path's own angle token.
	ImageSKUAngleMismatch IssueKind = "IMAGE_SKU_ANGLE_MISMATCH"
	// SKUNotInImage: the record's SKU does not appear in the image
	// filename's embedded SKU list.
	SKUNotInImage IssueKind = "SKU_NOT_IN_IMAGE"
)

// Severity of a consistency issue.
type Severity string

// Issue severities.
const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// ConsistencyIssue is a detected disagreement between independently derived
// readings of the same logical attribute on one record. Issues are produced
// fresh on each validator run and only ever reported, never acted on
// automatically.
type ConsistencyIssue struct {
	Kind       IssueKind `json:"type"`
	Severity   Severity  `json:"severity"`
	Catalog    string    `json:"catalog"`
	SKU        string    `json:"sku"`
	SeriesID   string    `json:"series_id,omitempty"`
	SeriesName string    `json:"series_name,omitempty"`
	Image      string    `json:"image,omitempty"`

	SeriesAngle    int `json:"series_angle,omitempty"`
	SKUAngle       int `json:"sku_angle,omitempty"`
	ImageAngle     int `json:"image_angle,omitempty"`
	ImageSKUAngle  int `json:"image_sku_angle,omitempty"`
	ImagePathAngle int `json:"image_path_angle,omitempty"`

	ImageSKU      string   `json:"image_sku,omitempty"`
	ImageSKUs     []string `json:"image_skus,omitempty"`
	SeriesMatches bool     `json:"series_matches,omitempty"`

	Message string `json:"message"`
}

// IssueStats aggregates validator counters across one run.
type IssueStats struct {
	TotalRecords      int `json:"total_records"`
	RecordsWithImages int `json:"records_with_images"`
	SKUNotInImage     int `json:"sku_not_in_image"`
	Critical          int `json:"critical"`
	Warnings          int `json:"warnings"`
}

// IssueReport is the consistency report artifact.
type IssueReport struct {
	Issues []ConsistencyIssue `json:"issues"`
	Stats  IssueStats         `json:"stats"`
}
