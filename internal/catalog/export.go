package catalog

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"unipos/internal"
)

// ExportXLSX writes the catalog as a spreadsheet for human review, one row
// per entry, grouped by source.
func ExportXLSX(c Catalog, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	writeRow(f, sheet, 1, []any{"source", "item_id", "name", "category"})

	r := 2
	for _, source := range internal.Sources() {
		for _, id := range c.SortedIDs(source) {
			entry := c[source][id]
			writeRow(f, sheet, r, []any{string(source), id, entry.Name, entry.Category})
			r++
		}
	}

	return saveXLSX(f, outputPath)
}

// ExportReportXLSX writes verification findings as a spreadsheet, one row per
// finding.
func ExportReportXLSX(rep Report, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	writeRow(f, sheet, 1, []any{"source", "finding", "item_id", "detail"})

	r := 2
	for _, source := range internal.Sources() {
		sr := rep[source]
		for _, e := range sr.IDErrors {
			writeRow(f, sheet, r, []any{string(source), "id_error", e.ItemID, e.Reason})
			r++
		}
		for _, e := range sr.CategoryErrors {
			writeRow(f, sheet, r, []any{string(source), "category_error", e.ItemID, "source " + e.SourceCategory + " != catalog " + e.CatalogCategory})
			r++
		}
		for _, e := range sr.Missing {
			writeRow(f, sheet, r, []any{string(source), "missing", e.ItemID, e.Name})
			r++
		}
	}

	return saveXLSX(f, outputPath)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func saveXLSX(f *excelize.File, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
