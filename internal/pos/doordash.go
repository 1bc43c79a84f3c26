// Package pos declares the decoded shapes of each vendor's export files.
// Field names are vendor contracts; amounts are integer minor-currency units.
package pos

type DoorDashExport struct {
	Stores []DoorDashStore `json:"stores"`
	Orders []DoorDashOrder `json:"orders"`
}

type DoorDashStore struct {
	StoreID  string          `json:"store_id"`
	Name     string          `json:"name"`
	Timezone string          `json:"timezone"`
	Address  DoorDashAddress `json:"address"`
}

type DoorDashAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type DoorDashOrder struct {
	ExternalDeliveryID     string              `json:"external_delivery_id"`
	StoreID                string              `json:"store_id"`
	CreatedAt              string              `json:"created_at"`
	PickupTime             string              `json:"pickup_time"`
	DeliveryTime           string              `json:"delivery_time"`
	OrderStatus            string              `json:"order_status"`
	OrderFulfillmentMethod string              `json:"order_fulfillment_method"`
	OrderSubtotal          int64               `json:"order_subtotal"`
	TaxAmount              int64               `json:"tax_amount"`
	DasherTip              int64               `json:"dasher_tip"`
	TotalChargedToConsumer int64               `json:"total_charged_to_consumer"`
	DeliveryFee            *int64              `json:"delivery_fee"`
	ServiceFee             *int64              `json:"service_fee"`
	Commission             *int64              `json:"commission"`
	MerchantPayout         *int64              `json:"merchant_payout"`
	ContainsAlcohol        *bool               `json:"contains_alcohol"`
	IsCatering             *bool               `json:"is_catering"`
	OrderItems             []DoorDashOrderItem `json:"order_items"`
}

type DoorDashOrderItem struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}
