package pos

type ToastExport struct {
	Locations []ToastLocation `json:"locations"`
	Orders    []ToastOrder    `json:"orders"`
}

type ToastLocation struct {
	GUID     string       `json:"guid"`
	Name     string       `json:"name"`
	Timezone string       `json:"timezone"`
	Address  ToastAddress `json:"address"`
}

type ToastAddress struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

type ToastOrder struct {
	GUID           string             `json:"guid"`
	RestaurantGUID string             `json:"restaurantGuid"`
	OpenedDate     string             `json:"openedDate"`
	ClosedDate     string             `json:"closedDate"`
	PaidDate       string             `json:"paidDate"`
	BusinessDate   int64              `json:"businessDate"`
	Voided         bool               `json:"voided"`
	Deleted        bool               `json:"deleted"`
	DiningOption   *ToastDiningOption `json:"diningOption"`
	Checks         []ToastCheck       `json:"checks"`
}

type ToastDiningOption struct {
	Behavior string `json:"behavior"`
}

type ToastCheck struct {
	GUID        string           `json:"guid"`
	Amount      int64            `json:"amount"`
	TaxAmount   int64            `json:"taxAmount"`
	TipAmount   int64            `json:"tipAmount"`
	TotalAmount int64            `json:"totalAmount"`
	Payments    []ToastPayment   `json:"payments"`
	Selections  []ToastSelection `json:"selections"`
}

type ToastPayment struct {
	Type     string `json:"type"`
	CardType string `json:"cardType"`
}

// ToastSelection is one ordered line. The display name may override the
// nested item's name; item identity always comes from the item guid.
type ToastSelection struct {
	GUID        string          `json:"guid"`
	DisplayName string          `json:"displayName"`
	Quantity    float64         `json:"quantity"`
	Price       int64           `json:"price"`
	Item        *ToastItemRef   `json:"item"`
	ItemGroup   *ToastItemGroup `json:"itemGroup"`
}

type ToastItemRef struct {
	GUID string `json:"guid"`
	Name string `json:"name"`
}

type ToastItemGroup struct {
	Name string `json:"name"`
}
