package extractor

import (
	"strconv"
	"strings"

	"demacat/internal/models"
)

// minTableCells is the cell count at which a line counts as tabular.
const minTableCells = 3

type tableRow struct {
	cells  []string
	offset int
}

// extractTables finds contiguous blocks of tabular lines and extracts one
// record per data row that carries a recognizable SKU cell.
func (e *Extractor) extractTables(in Input) []models.ProductRecord {
	var (
		records []models.ProductRecord
		block   []tableRow
		offset  int
	)

	flush := func() {
		if len(block) > 0 {
			records = append(records, e.extractBlock(in, block)...)
			block = block[:0]
		}
	}

	for _, line := range strings.SplitAfter(in.Text, "\n") {
		cells := e.splitCells(line)
		if len(cells) >= minTableCells {
			block = append(block, tableRow{cells: cells, offset: offset})
		} else {
			flush()
		}
		offset += len(line)
	}
	flush()

	return records
}

// extractBlock processes one tabular block. The first row containing a
// header-like cell fixes the column count; rows after it that are at most
// one cell short are treated as data rows.
func (e *Extractor) extractBlock(in Input, block []tableRow) []models.ProductRecord {
	headerIdx := -1
	columnCount := 0

	for i, row := range block {
		for _, cell := range row.cells {
			if e.headerCell.MatchString(cell) {
				headerIdx = i
				columnCount = len(row.cells)
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}

	if headerIdx < 0 {
		return nil
	}

	var records []models.ProductRecord

	for _, row := range block[headerIdx+1:] {
		if len(row.cells) < columnCount-1 {
			continue
		}

		skuIdx := e.findSKUCell(row.cells)
		if skuIdx < 0 {
			continue
		}

		rec := models.ProductRecord{
			SKU:        row.cells[skuIdx],
			Catalog:    in.Catalog,
			SourceDoc:  in.SourceDoc,
			SeriesName: "Unknown",
			Page:       page(row.offset, len(in.Text), in.PageCount),
		}

		// Remaining cells are kept positionally; the normalizer resolves
		// them into canonical properties.
		for i, cell := range row.cells {
			if i == skuIdx {
				continue
			}
			rec.Raw.Set("col_"+strconv.Itoa(i), cell)
		}

		records = append(records, rec)
	}

	return records
}

func (e *Extractor) splitCells(line string) []string {
	var cells []string
	for _, cell := range e.cellSplit.Split(strings.TrimRight(line, "\n"), -1) {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

func (e *Extractor) findSKUCell(cells []string) int {
	for i, cell := range cells {
		for _, re := range e.skuCell {
			if re.MatchString(cell) {
				return i
			}
		}
	}
	return -1
}
