package extract

import "unipos/internal/pos"

// Toast extracts item data from a Toast export, walking orders -> checks ->
// selections. The display name takes precedence over the nested item name;
// selections without an item guid are skipped; first occurrence wins.
func Toast(path string) (Items, error) {
	var export pos.ToastExport
	if err := readJSON(path, &export); err != nil {
		return Items{}, err
	}
	return toastItems(export), nil
}

func toastItems(export pos.ToastExport) Items {
	items := newItems()
	for _, order := range export.Orders {
		for _, check := range order.Checks {
			for _, sel := range check.Selections {
				if sel.Item == nil || sel.Item.GUID == "" {
					continue
				}
				guid := sel.Item.GUID
				if _, seen := items.Names[guid]; seen {
					continue
				}
				name := sel.DisplayName
				if name == "" {
					name = sel.Item.Name
				}
				items.Names[guid] = name
				category := ""
				if sel.ItemGroup != nil {
					category = sel.ItemGroup.Name
				}
				items.Categories[guid] = category
			}
		}
	}
	return items
}
