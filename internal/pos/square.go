package pos

type SquareCatalog struct {
	Objects []SquareCatalogObject `json:"objects"`
}

type SquareCatalogObject struct {
	Type         string              `json:"type"`
	ID           string              `json:"id"`
	CategoryData *SquareCategoryData `json:"category_data"`
	ItemData     *SquareItemData     `json:"item_data"`
}

type SquareCategoryData struct {
	Name string `json:"name"`
}

type SquareItemData struct {
	Name       string            `json:"name"`
	CategoryID string            `json:"category_id"`
	Variations []SquareVariation `json:"variations"`
}

type SquareVariation struct {
	ID                string                   `json:"id"`
	ItemVariationData *SquareItemVariationData `json:"item_variation_data"`
}

type SquareItemVariationData struct {
	Name       string       `json:"name"`
	PriceMoney *SquareMoney `json:"price_money"`
}

type SquareMoney struct {
	Amount int64 `json:"amount"`
}

func (m *SquareMoney) Cents() int64 {
	if m == nil {
		return 0
	}
	return m.Amount
}

type SquareOrdersExport struct {
	Orders []SquareOrder `json:"orders"`
}

type SquareOrder struct {
	ID            string              `json:"id"`
	LocationID    string              `json:"location_id"`
	State         string              `json:"state"`
	CreatedAt     string              `json:"created_at"`
	ClosedAt      string              `json:"closed_at"`
	LineItems     []SquareLineItem    `json:"line_items"`
	Fulfillments  []SquareFulfillment `json:"fulfillments"`
	TotalTaxMoney *SquareMoney        `json:"total_tax_money"`
	TotalTipMoney *SquareMoney        `json:"total_tip_money"`
	TotalMoney    *SquareMoney        `json:"total_money"`
}

// Square encodes line item quantity as a string.
type SquareLineItem struct {
	UID             string       `json:"uid"`
	CatalogObjectID string       `json:"catalog_object_id"`
	Quantity        string       `json:"quantity"`
	GrossSalesMoney *SquareMoney `json:"gross_sales_money"`
}

type SquareFulfillment struct {
	Type string `json:"type"`
}

type SquareLocationsExport struct {
	Locations []SquareLocation `json:"locations"`
}

type SquareLocation struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Timezone string        `json:"timezone"`
	Address  SquareAddress `json:"address"`
}

type SquareAddress struct {
	AddressLine1                 string `json:"address_line_1"`
	Locality                     string `json:"locality"`
	AdministrativeDistrictLevel1 string `json:"administrative_district_level_1"`
	PostalCode                   string `json:"postal_code"`
	Country                      string `json:"country"`
}

type SquarePaymentsExport struct {
	Payments []SquarePayment `json:"payments"`
}

type SquarePayment struct {
	ID          string             `json:"id"`
	OrderID     string             `json:"order_id"`
	SourceType  string             `json:"source_type"`
	CardDetails *SquareCardDetails `json:"card_details"`
}

type SquareCardDetails struct {
	EntryMethod string      `json:"entry_method"`
	Card        *SquareCard `json:"card"`
}

type SquareCard struct {
	CardBrand string `json:"card_brand"`
}
