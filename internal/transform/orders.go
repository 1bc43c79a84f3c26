package transform

import (
	"fmt"

	"unipos/internal"
	"unipos/internal/pos"
)

// Orders maps staged order entities into the orders table. The location
// lookup is built once up front; an order referencing an unknown location is
// a record-level error.
func (r *Runner) Orders() (internal.Counts, error) {
	var counts internal.Counts

	locations, err := r.db.LocationLookup()
	if err != nil {
		return counts, err
	}
	rows, err := r.db.RawByType(internal.EntityOrder)
	if err != nil {
		return counts, err
	}

	records := make([]internal.OrderRow, 0, len(rows))
	for _, row := range rows {
		rec, err := r.orderRow(row, locations)
		if err != nil {
			fmt.Printf("[ERROR] %s order %s: %v\n", row.Source, row.EntityID, err)
			counts.Errors++
			continue
		}
		records = append(records, rec)
		counts.Add(row.Source, 1)
	}

	if _, err := r.db.UpsertOrders(records); err != nil {
		fmt.Printf("[WARNING] orders batch upsert failed: %v\n", err)
		return internal.Counts{Errors: counts.Errors}, nil
	}
	return counts, nil
}

func (r *Runner) orderRow(raw internal.RawRecord, locations map[internal.SourceRef]string) (internal.OrderRow, error) {
	switch raw.Source {
	case internal.SourceDoorDash:
		order, err := decodeRaw[pos.DoorDashOrder](raw)
		if err != nil {
			return internal.OrderRow{}, err
		}
		locationID, ok := locations[internal.SourceRef{Source: raw.Source, ID: order.StoreID}]
		if !ok {
			return internal.OrderRow{}, fmt.Errorf("unknown location %q", order.StoreID)
		}
		return internal.OrderRow{
			OrderID:           newID(),
			LocationID:        locationID,
			Source:            raw.Source,
			SourceOrderID:     order.ExternalDeliveryID,
			CreatedAt:         order.CreatedAt,
			ClosedAt:          firstNonEmpty(order.DeliveryTime, order.PickupTime, order.CreatedAt),
			Status:            mapStatus(raw.Source, order.OrderStatus),
			FulfillmentMethod: mapFulfillment(raw.Source, order.OrderFulfillmentMethod),
			Subtotal:          order.OrderSubtotal,
			TaxAmount:         order.TaxAmount,
			TipAmount:         order.DasherTip,
			TotalAmount:       order.TotalChargedToConsumer,
		}, nil
	case internal.SourceSquare:
		order, err := decodeRaw[pos.SquareOrder](raw)
		if err != nil {
			return internal.OrderRow{}, err
		}
		locationID, ok := locations[internal.SourceRef{Source: raw.Source, ID: order.LocationID}]
		if !ok {
			return internal.OrderRow{}, fmt.Errorf("unknown location %q", order.LocationID)
		}
		var subtotal int64
		for _, line := range order.LineItems {
			subtotal += line.GrossSalesMoney.Cents()
		}
		fulfillment := ""
		if len(order.Fulfillments) > 0 {
			fulfillment = order.Fulfillments[0].Type
		}
		return internal.OrderRow{
			OrderID:           newID(),
			LocationID:        locationID,
			Source:            raw.Source,
			SourceOrderID:     order.ID,
			CreatedAt:         order.CreatedAt,
			ClosedAt:          order.ClosedAt,
			Status:            mapStatus(raw.Source, order.State),
			FulfillmentMethod: mapFulfillment(raw.Source, fulfillment),
			Subtotal:          subtotal,
			TaxAmount:         order.TotalTaxMoney.Cents(),
			TipAmount:         order.TotalTipMoney.Cents(),
			TotalAmount:       order.TotalMoney.Cents(),
		}, nil
	case internal.SourceToast:
		order, err := decodeRaw[pos.ToastOrder](raw)
		if err != nil {
			return internal.OrderRow{}, err
		}
		locationID, ok := locations[internal.SourceRef{Source: raw.Source, ID: order.RestaurantGUID}]
		if !ok {
			return internal.OrderRow{}, fmt.Errorf("unknown location %q", order.RestaurantGUID)
		}
		var subtotal, tax, tip, total int64
		for _, check := range order.Checks {
			subtotal += check.Amount
			tax += check.TaxAmount
			tip += check.TipAmount
			total += check.TotalAmount
		}
		behavior := ""
		if order.DiningOption != nil {
			behavior = order.DiningOption.Behavior
		}
		return internal.OrderRow{
			OrderID:           newID(),
			LocationID:        locationID,
			Source:            raw.Source,
			SourceOrderID:     order.GUID,
			CreatedAt:         order.OpenedDate,
			ClosedAt:          firstNonEmpty(order.ClosedDate, order.PaidDate),
			Status:            toastStatus(order.Voided, order.Deleted),
			FulfillmentMethod: mapFulfillment(raw.Source, behavior),
			Subtotal:          subtotal,
			TaxAmount:         tax,
			TipAmount:         tip,
			TotalAmount:       total,
		}, nil
	default:
		return internal.OrderRow{}, fmt.Errorf("unknown source %q", raw.Source)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
