// Package extract walks each vendor's export structure and produces
// deduplicated item name and category maps keyed by the vendor's native item
// id. Extractors are pure single-pass functions: a malformed record is
// skipped, a missing export file is a hard error.
package extract

import (
	"encoding/json"
	"fmt"
	"os"

	"unipos/internal/pos"
)

// Items holds one source's deduplicated raw item data.
type Items struct {
	Names      map[string]string
	Categories map[string]string
}

func newItems() Items {
	return Items{
		Names:      map[string]string{},
		Categories: map[string]string{},
	}
}

// SquareItems additionally carries variation labels and the set of variation
// ids actually transacted; the Square catalog lists items never sold.
type SquareItems struct {
	Items
	VariationNames map[string]string
	UsedIDs        map[string]struct{}
}

// Extractions bundles fresh extraction output across all sources.
type Extractions struct {
	DoorDash Items
	Square   SquareItems
	Toast    Items
}

// All extracts every source from the standard export layout under dir.
func All(dir string) (Extractions, error) {
	dd, err := DoorDash(pos.DoorDashOrdersFile(dir))
	if err != nil {
		return Extractions{}, err
	}
	sq, err := Square(pos.SquareCatalogFile(dir), pos.SquareOrdersFile(dir))
	if err != nil {
		return Extractions{}, err
	}
	toast, err := Toast(pos.ToastExportFile(dir))
	if err != nil {
		return Extractions{}, err
	}
	return Extractions{DoorDash: dd, Square: sq, Toast: toast}, nil
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
