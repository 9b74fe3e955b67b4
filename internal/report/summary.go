// Package report renders the human-readable pipeline summary.
package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"demacat/internal/models"
	"demacat/pkg/metadata"
)

// Summary renders the consistency and category summary as signed markdown.
// Issues are deduplicated per image and message so repeated table rows do
// not drown the report.
func Summary(index models.CategoryIndex, issues models.IssueReport, generator string) string {
	var sb strings.Builder

	sb.WriteString("# Catalog Summary\n\n")

	writeCategoryTable(&sb, index)
	writeIssueStats(&sb, issues.Stats)
	writeIssues(&sb, issues.Issues)

	return metadata.Sign(sb.String(), generator)
}

func writeCategoryTable(sb *strings.Builder, index models.CategoryIndex) {
	sb.WriteString("## Categories\n\n")
	fmt.Fprintf(sb, "Total products: %d\n\n", index.TotalProducts)

	rows := make([][]string, 0, len(index.Categories))
	for _, cat := range index.Categories {
		rows = append(rows, []string{
			cat.Name,
			fmt.Sprintf("%d", cat.Products),
			fmt.Sprintf("%d", cat.Groups),
		})
	}

	writeTable(sb, []string{"Category", "Products", "Groups"}, rows)
	sb.WriteString("\n")
}

func writeIssueStats(sb *strings.Builder, stats models.IssueStats) {
	sb.WriteString("## Validation\n\n")

	rows := [][]string{
		{"Total records", fmt.Sprintf("%d", stats.TotalRecords)},
		{"Records with images", fmt.Sprintf("%d", stats.RecordsWithImages)},
		{"SKU not in image filename", fmt.Sprintf("%d", stats.SKUNotInImage)},
		{"Critical issues", fmt.Sprintf("%d", stats.Critical)},
		{"Warnings", fmt.Sprintf("%d", stats.Warnings)},
	}

	writeTable(sb, []string{"Metric", "Count"}, rows)
	sb.WriteString("\n")
}

func writeIssues(sb *strings.Builder, issues []models.ConsistencyIssue) {
	if len(issues) == 0 {
		sb.WriteString("No consistency issues found.\n")
		return
	}

	byKind := make(map[models.IssueKind][]models.ConsistencyIssue)
	var kinds []models.IssueKind

	for _, issue := range issues {
		if _, ok := byKind[issue.Kind]; !ok {
			kinds = append(kinds, issue.Kind)
		}
		byKind[issue.Kind] = append(byKind[issue.Kind], issue)
	}

	for _, kind := range kinds {
		group := byKind[kind]
		fmt.Fprintf(sb, "## %s (%d issues)\n\n", kind, len(group))

		seen := make(map[string]bool)

		for _, issue := range group {
			key := issue.Image + "|" + issue.Message
			if seen[key] {
				continue
			}
			seen[key] = true

			fmt.Fprintf(sb, "- %s\n", issue.Message)
			fmt.Fprintf(sb, "  - Catalog: %s\n", issue.Catalog)
			fmt.Fprintf(sb, "  - SKU: %s\n", issue.SKU)
			if issue.SeriesName != "" {
				fmt.Fprintf(sb, "  - Series: %s\n", issue.SeriesName)
			}
			if issue.Image != "" {
				fmt.Fprintf(sb, "  - Image: %s\n", issue.Image)
			}
		}

		sb.WriteString("\n")
	}
}

// writeTable renders an aligned markdown table. Widths use display width so
// columns line up even with non-ASCII content.
func writeTable(sb *strings.Builder, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i, w := range widths {
			content := ""
			if i < len(cells) {
				content = cells[i]
			}
			sb.WriteString(" ")
			sb.WriteString(content)
			if pad := w - runewidth.StringWidth(content); pad > 0 {
				sb.WriteString(strings.Repeat(" ", pad))
			}
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(headers)

	sb.WriteString("|")
	for _, w := range widths {
		sb.WriteString(" " + strings.Repeat("-", w) + " |")
	}
	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}
}
