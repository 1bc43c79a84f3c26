package transform

import (
	"fmt"

	"unipos/internal"
	"unipos/internal/pos"
)

// Metadata enriches persisted orders with source-specific fields (fees,
// payment details, vendor dates) stored as a JSON document on the order row.
// Orders yielding no metadata are counted but not updated.
func (r *Runner) Metadata() (internal.Counts, error) {
	var counts internal.Counts

	orders, err := r.db.OrderLookup()
	if err != nil {
		return counts, err
	}
	payments, err := r.squarePaymentLookup()
	if err != nil {
		return counts, err
	}

	rows, err := r.db.RawByType(internal.EntityOrder)
	if err != nil {
		return counts, err
	}

	type update struct {
		orderID string
		meta    map[string]any
	}
	var updates []update

	for _, row := range rows {
		orderID, meta, err := r.orderMetadata(row, orders, payments)
		if err != nil {
			fmt.Printf("[ERROR] %s metadata: %v\n", row.Source, err)
			counts.Errors++
			continue
		}
		if len(meta) > 0 {
			updates = append(updates, update{orderID: orderID, meta: meta})
		}
		counts.Add(row.Source, 1)
	}

	for _, u := range updates {
		if err := r.db.UpdateOrderMetadata(u.orderID, u.meta); err != nil {
			fmt.Printf("[WARNING] metadata update failed for order %s: %v\n", u.orderID, err)
			counts.Errors++
		}
	}
	return counts, nil
}

func (r *Runner) orderMetadata(raw internal.RawRecord, orders map[internal.SourceRef]string, payments map[string]pos.SquarePayment) (string, map[string]any, error) {
	orderID, ok := orders[internal.SourceRef{Source: raw.Source, ID: raw.EntityID}]
	if !ok {
		return "", nil, fmt.Errorf("unknown order %q", raw.EntityID)
	}

	switch raw.Source {
	case internal.SourceDoorDash:
		order, err := decodeRaw[pos.DoorDashOrder](raw)
		if err != nil {
			return "", nil, err
		}
		return orderID, doorDashMetadata(order), nil
	case internal.SourceSquare:
		payment, ok := payments[raw.EntityID]
		if !ok {
			return orderID, nil, nil
		}
		return orderID, squareMetadata(payment), nil
	case internal.SourceToast:
		order, err := decodeRaw[pos.ToastOrder](raw)
		if err != nil {
			return "", nil, err
		}
		return orderID, toastMetadata(order), nil
	default:
		return "", nil, fmt.Errorf("unknown source %q", raw.Source)
	}
}

func doorDashMetadata(order pos.DoorDashOrder) map[string]any {
	meta := map[string]any{}
	setInt := func(key string, v *int64) {
		if v != nil {
			meta[key] = *v
		}
	}
	setInt("delivery_fee", order.DeliveryFee)
	setInt("service_fee", order.ServiceFee)
	setInt("commission", order.Commission)
	setInt("merchant_payout", order.MerchantPayout)
	if order.PickupTime != "" {
		meta["pickup_time"] = order.PickupTime
	}
	if order.DeliveryTime != "" {
		meta["delivery_time"] = order.DeliveryTime
	}
	if order.ContainsAlcohol != nil {
		meta["contains_alcohol"] = *order.ContainsAlcohol
	}
	if order.IsCatering != nil {
		meta["is_catering"] = *order.IsCatering
	}
	return meta
}

func squareMetadata(payment pos.SquarePayment) map[string]any {
	meta := map[string]any{}
	if payment.SourceType != "" {
		meta["payment_type"] = mapPaymentType(internal.SourceSquare, payment.SourceType)
	}
	if payment.SourceType == "CARD" && payment.CardDetails != nil {
		if payment.CardDetails.Card != nil && payment.CardDetails.Card.CardBrand != "" {
			meta["card_brand"] = cardBrand(payment.CardDetails.Card.CardBrand)
		}
		if payment.CardDetails.EntryMethod != "" {
			meta["entry_method"] = payment.CardDetails.EntryMethod
		}
	}
	return meta
}

// toastMetadata takes payment details from the first check's first payment;
// Toast exports repeat them across checks.
func toastMetadata(order pos.ToastOrder) map[string]any {
	meta := map[string]any{}
	if order.PaidDate != "" {
		meta["paid_date"] = order.PaidDate
	}
	if order.BusinessDate != 0 {
		meta["business_date"] = order.BusinessDate
	}
	if len(order.Checks) > 0 && len(order.Checks[0].Payments) > 0 {
		payment := order.Checks[0].Payments[0]
		if payment.Type != "" {
			meta["payment_type"] = mapPaymentType(internal.SourceToast, payment.Type)
		}
		if payment.CardType != "" {
			meta["card_brand"] = cardBrand(payment.CardType)
		}
	}
	return meta
}

// squarePaymentLookup maps square order id -> payment from staged payment
// entities, built once per stage.
func (r *Runner) squarePaymentLookup() (map[string]pos.SquarePayment, error) {
	rows, err := r.db.RawBySourceType(internal.SourceSquare, internal.EntityPayment)
	if err != nil {
		return nil, err
	}
	out := make(map[string]pos.SquarePayment, len(rows))
	for _, row := range rows {
		payment, err := decodeRaw[pos.SquarePayment](row)
		if err != nil {
			fmt.Printf("[WARNING] skipping payment %s: %v\n", row.EntityID, err)
			continue
		}
		if payment.OrderID != "" {
			out[payment.OrderID] = payment
		}
	}
	return out, nil
}
