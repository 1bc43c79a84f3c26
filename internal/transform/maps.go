package transform

import (
	"strings"

	"unipos/internal"
)

// Fixed per-source value mappings into the normalized schema vocabulary.
// Values absent from a table pass through (lower-cased for status).

var statusMap = map[internal.Source]map[string]string{
	internal.SourceDoorDash: {
		"DELIVERED": "completed",
		"PICKED_UP": "completed",
		"CANCELLED": "cancelled",
	},
	internal.SourceSquare: {
		"COMPLETED": "completed",
		"CANCELED":  "cancelled",
	},
}

var fulfillmentMap = map[internal.Source]map[string]string{
	internal.SourceDoorDash: {"MERCHANT_DELIVERY": "DELIVERY"},
	internal.SourceSquare:   {"SHIPMENT": "DELIVERY"},
	internal.SourceToast:    {"TO_GO": "PICKUP", "TAKE_OUT": "PICKUP"},
}

var paymentTypeMap = map[internal.Source]map[string]string{
	internal.SourceToast: {"CREDIT": "CARD"},
}

func mapStatus(source internal.Source, value string) string {
	if mapped, ok := statusMap[source][value]; ok {
		return mapped
	}
	if value == "" {
		return "completed"
	}
	return strings.ToLower(value)
}

// toastStatus derives an order status from Toast's voided/deleted flags;
// Toast has no single status field.
func toastStatus(voided, deleted bool) string {
	if voided {
		return "voided"
	}
	if deleted {
		return "deleted"
	}
	return "completed"
}

func mapFulfillment(source internal.Source, value string) string {
	if mapped, ok := fulfillmentMap[source][value]; ok {
		return mapped
	}
	return value
}

func mapPaymentType(source internal.Source, value string) string {
	if mapped, ok := paymentTypeMap[source][value]; ok {
		return mapped
	}
	return value
}

func cardBrand(value string) string {
	return strings.ToUpper(value)
}
