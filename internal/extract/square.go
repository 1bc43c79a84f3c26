package extract

import "unipos/internal/pos"

// Square extracts item data from the Square catalog and orders exports. Each
// catalog ITEM expands into its variations; a variation inherits the parent's
// base name and category and carries its own label. The used-id set collects
// variation ids actually transacted so unsold catalog items can be excluded
// downstream.
func Square(catalogPath, ordersPath string) (SquareItems, error) {
	var catalog pos.SquareCatalog
	if err := readJSON(catalogPath, &catalog); err != nil {
		return SquareItems{}, err
	}
	var orders pos.SquareOrdersExport
	if err := readJSON(ordersPath, &orders); err != nil {
		return SquareItems{}, err
	}
	return squareItems(catalog, orders), nil
}

func squareItems(catalog pos.SquareCatalog, orders pos.SquareOrdersExport) SquareItems {
	categoryByID := map[string]string{}
	for _, obj := range catalog.Objects {
		if obj.Type == "CATEGORY" && obj.CategoryData != nil {
			categoryByID[obj.ID] = obj.CategoryData.Name
		}
	}

	out := SquareItems{
		Items:          newItems(),
		VariationNames: map[string]string{},
		UsedIDs:        map[string]struct{}{},
	}
	for _, obj := range catalog.Objects {
		if obj.Type != "ITEM" || obj.ItemData == nil {
			continue
		}
		base := obj.ItemData.Name
		category := categoryByID[obj.ItemData.CategoryID]

		for _, variation := range obj.ItemData.Variations {
			if variation.ID == "" {
				continue
			}
			out.Names[variation.ID] = base
			out.Categories[variation.ID] = category
			label := ""
			if variation.ItemVariationData != nil {
				label = variation.ItemVariationData.Name
			}
			out.VariationNames[variation.ID] = label
		}
	}

	for _, order := range orders.Orders {
		for _, line := range order.LineItems {
			if line.CatalogObjectID != "" {
				out.UsedIDs[line.CatalogObjectID] = struct{}{}
			}
		}
	}
	return out
}
