package transform

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"unipos/internal"
	"unipos/internal/pos"
)

// OrderItems maps order line items into the order_items table. Item names and
// categories come from the catalog, never from the raw record; Square unit
// prices come from the vendor catalog with an integer-division fallback.
func (r *Runner) OrderItems() (internal.Counts, error) {
	var counts internal.Counts

	orders, err := r.db.OrderLookup()
	if err != nil {
		return counts, err
	}
	prices := squarePrices(pos.SquareCatalogFile(r.sourcesDir))

	rows, err := r.db.RawByType(internal.EntityOrder)
	if err != nil {
		return counts, err
	}

	var records []internal.OrderItemRow
	for _, row := range rows {
		items, err := r.orderItemRows(row, orders, prices)
		if err != nil {
			fmt.Printf("[ERROR] %s order items: %v\n", row.Source, err)
			counts.Errors++
			continue
		}
		records = append(records, items...)
		counts.Add(row.Source, len(items))
	}

	if _, err := r.db.UpsertOrderItems(records); err != nil {
		fmt.Printf("[WARNING] order_items batch upsert failed: %v\n", err)
		return internal.Counts{Errors: counts.Errors}, nil
	}
	return counts, nil
}

func (r *Runner) orderItemRows(raw internal.RawRecord, orders map[internal.SourceRef]string, prices map[string]int64) ([]internal.OrderItemRow, error) {
	switch raw.Source {
	case internal.SourceDoorDash:
		order, err := decodeRaw[pos.DoorDashOrder](raw)
		if err != nil {
			return nil, err
		}
		orderID, ok := orders[internal.SourceRef{Source: raw.Source, ID: order.ExternalDeliveryID}]
		if !ok {
			return nil, fmt.Errorf("unknown order %q", order.ExternalDeliveryID)
		}
		items := make([]internal.OrderItemRow, 0, len(order.OrderItems))
		for _, line := range order.OrderItems {
			name, category := r.itemInfo(raw.Source, line.ItemID)
			items = append(items, internal.OrderItemRow{
				OrderItemID:       newID(),
				OrderID:           orderID,
				Source:            raw.Source,
				SourceOrderItemID: order.ExternalDeliveryID + "_" + line.ItemID,
				ItemName:          name,
				Quantity:          line.Quantity,
				UnitPrice:         line.UnitPrice,
				TotalPrice:        line.Quantity * line.UnitPrice,
				Category:          category,
			})
		}
		return items, nil
	case internal.SourceSquare:
		order, err := decodeRaw[pos.SquareOrder](raw)
		if err != nil {
			return nil, err
		}
		orderID, ok := orders[internal.SourceRef{Source: raw.Source, ID: order.ID}]
		if !ok {
			return nil, fmt.Errorf("unknown order %q", order.ID)
		}
		items := make([]internal.OrderItemRow, 0, len(order.LineItems))
		for _, line := range order.LineItems {
			qty, err := strconv.ParseInt(line.Quantity, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("order %s line %s: bad quantity %q", order.ID, line.UID, line.Quantity)
			}
			total := line.GrossSalesMoney.Cents()
			unit := prices[line.CatalogObjectID]
			if unit == 0 && qty > 0 {
				// No catalog price: derive from the line total. Integer
				// division truncates fractional cents, matching historical
				// figures.
				unit = total / qty
			}
			name, category := r.itemInfo(raw.Source, line.CatalogObjectID)
			items = append(items, internal.OrderItemRow{
				OrderItemID:       newID(),
				OrderID:           orderID,
				Source:            raw.Source,
				SourceOrderItemID: line.UID,
				ItemName:          name,
				Quantity:          qty,
				UnitPrice:         unit,
				TotalPrice:        total,
				Category:          category,
			})
		}
		return items, nil
	case internal.SourceToast:
		order, err := decodeRaw[pos.ToastOrder](raw)
		if err != nil {
			return nil, err
		}
		orderID, ok := orders[internal.SourceRef{Source: raw.Source, ID: order.GUID}]
		if !ok {
			return nil, fmt.Errorf("unknown order %q", order.GUID)
		}
		var items []internal.OrderItemRow
		for _, check := range order.Checks {
			for _, sel := range check.Selections {
				if sel.Item == nil || sel.Item.GUID == "" {
					continue
				}
				qty := int64(sel.Quantity)
				var unit int64
				if qty > 0 {
					unit = sel.Price / qty
				}
				name, category := r.itemInfo(raw.Source, sel.Item.GUID)
				items = append(items, internal.OrderItemRow{
					OrderItemID:       newID(),
					OrderID:           orderID,
					Source:            raw.Source,
					SourceOrderItemID: sel.GUID,
					ItemName:          name,
					Quantity:          qty,
					UnitPrice:         unit,
					TotalPrice:        sel.Price,
					Category:          category,
				})
			}
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unknown source %q", raw.Source)
	}
}

// squarePrices builds the variation id -> unit price map from the Square
// catalog export. A missing file yields an empty map; prices then fall back
// to line-total division.
func squarePrices(path string) map[string]int64 {
	raw, err := os.ReadFile(path)
	if err != nil {
		return map[string]int64{}
	}
	var catalog pos.SquareCatalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return map[string]int64{}
	}

	prices := map[string]int64{}
	for _, obj := range catalog.Objects {
		if obj.Type != "ITEM" || obj.ItemData == nil {
			continue
		}
		for _, variation := range obj.ItemData.Variations {
			if variation.ItemVariationData == nil {
				continue
			}
			prices[variation.ID] = variation.ItemVariationData.PriceMoney.Cents()
		}
	}
	return prices
}
