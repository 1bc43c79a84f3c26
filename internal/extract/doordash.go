package extract

import "unipos/internal/pos"

// DoorDash extracts item data from a DoorDash orders export. Items are nested
// under orders; the first occurrence of an item id keeps its name and
// category.
func DoorDash(path string) (Items, error) {
	var export pos.DoorDashExport
	if err := readJSON(path, &export); err != nil {
		return Items{}, err
	}
	return doorDashItems(export), nil
}

func doorDashItems(export pos.DoorDashExport) Items {
	items := newItems()
	for _, order := range export.Orders {
		for _, line := range order.OrderItems {
			if line.ItemID == "" {
				continue
			}
			if _, seen := items.Names[line.ItemID]; seen {
				continue
			}
			items.Names[line.ItemID] = line.Name
			items.Categories[line.ItemID] = line.Category
		}
	}
	return items
}
