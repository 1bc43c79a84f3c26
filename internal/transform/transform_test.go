package transform

import (
	"path/filepath"
	"testing"

	"unipos/internal"
	"unipos/internal/catalog"
	"unipos/internal/config"
	"unipos/internal/storage"
)

func newTestRunner(t *testing.T) (*Runner, *storage.DB) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cat := catalog.New()
	cat[internal.SourceDoorDash]["dd-i1"] = internal.CatalogEntry{Name: "French Fries", Category: "Sides"}
	cat[internal.SourceSquare]["sq-v1"] = internal.CatalogEntry{Name: "Cheeseburger Double", Category: "Entrees"}
	cat[internal.SourceToast]["t-i1"] = internal.CatalogEntry{Name: "Coca Cola Large", Category: "Beverages"}

	cfg := config.Config{AccountID: "acct-test", SourcesDir: t.TempDir()}
	return NewRunner(db, cat, cfg), db
}

func stageFixtures(t *testing.T, db *storage.DB) {
	t.Helper()
	records := []internal.RawRecord{
		{Source: internal.SourceDoorDash, EntityType: internal.EntityLocation, EntityID: "s1",
			Data: []byte(`{"store_id":"s1","name":"Downtown","timezone":"America/Chicago","address":{"street":"1 Main St","city":"Austin","state":"TX","zip_code":"78701","country":"US"}}`)},
		{Source: internal.SourceDoorDash, EntityType: internal.EntityLocation, EntityID: "bad",
			Data: []byte(`{}`)},
		{Source: internal.SourceSquare, EntityType: internal.EntityLocation, EntityID: "sq-l1",
			Data: []byte(`{"id":"sq-l1","name":"Uptown","timezone":"America/Chicago","address":{"address_line_1":"2 Oak Ave","locality":"Austin","administrative_district_level_1":"TX","postal_code":"78702","country":"US"}}`)},
		{Source: internal.SourceToast, EntityType: internal.EntityLocation, EntityID: "t-l1",
			Data: []byte(`{"guid":"t-l1","name":"Midtown","timezone":"America/Chicago","address":{"line1":"3 Elm St","city":"Austin","state":"TX","zip":"78703","country":"US"}}`)},

		{Source: internal.SourceDoorDash, EntityType: internal.EntityOrder, EntityID: "d1",
			Data: []byte(`{"external_delivery_id":"d1","store_id":"s1","created_at":"2025-01-01T10:00:00Z","delivery_time":"2025-01-01T10:40:00Z","order_status":"DELIVERED","order_fulfillment_method":"MERCHANT_DELIVERY","order_subtotal":598,"tax_amount":50,"dasher_tip":100,"total_charged_to_consumer":748,"delivery_fee":299,"order_items":[{"item_id":"dd-i1","name":"Fries","quantity":2,"unit_price":299}]}`)},
		{Source: internal.SourceDoorDash, EntityType: internal.EntityOrder, EntityID: "d2",
			Data: []byte(`{"external_delivery_id":"d2","store_id":"missing"}`)},
		{Source: internal.SourceSquare, EntityType: internal.EntityOrder, EntityID: "sq-o1",
			Data: []byte(`{"id":"sq-o1","location_id":"sq-l1","state":"COMPLETED","created_at":"2025-01-01T11:00:00Z","closed_at":"2025-01-01T11:10:00Z","line_items":[{"uid":"sq-li1","catalog_object_id":"sq-v1","quantity":"2","gross_sales_money":{"amount":700}}],"fulfillments":[{"type":"PICKUP"}],"total_tax_money":{"amount":60},"total_tip_money":{"amount":0},"total_money":{"amount":760}}`)},
		{Source: internal.SourceToast, EntityType: internal.EntityOrder, EntityID: "t-o1",
			Data: []byte(`{"guid":"t-o1","restaurantGuid":"t-l1","openedDate":"2025-01-01T12:00:00Z","paidDate":"2025-01-01T12:30:00Z","businessDate":20250101,"voided":false,"deleted":false,"diningOption":{"behavior":"TAKE_OUT"},"checks":[{"amount":500,"taxAmount":40,"tipAmount":0,"totalAmount":540,"payments":[{"type":"CREDIT","cardType":"visa"}],"selections":[{"guid":"t-s1","displayName":"Large Coke","quantity":2,"price":500,"item":{"guid":"t-i1"}}]}]}`)},

		{Source: internal.SourceSquare, EntityType: internal.EntityPayment, EntityID: "sq-p1",
			Data: []byte(`{"id":"sq-p1","order_id":"sq-o1","source_type":"CARD","card_details":{"entry_method":"KEYED","card":{"card_brand":"visa"}}}`)},
	}
	if _, err := db.UpsertRawRecords(records); err != nil {
		t.Fatal(err)
	}
}

func TestPipeline(t *testing.T) {
	runner, db := newTestRunner(t)
	stageFixtures(t, db)

	counts, err := runner.Locations()
	if err != nil {
		t.Fatalf("locations: %v", err)
	}
	// The record without a store_id fails; the others land.
	if counts.DoorDash != 1 || counts.Square != 1 || counts.Toast != 1 || counts.Errors != 1 {
		t.Fatalf("location counts: %+v", counts)
	}

	counts, err = runner.Orders()
	if err != nil {
		t.Fatalf("orders: %v", err)
	}
	// d2 references an unknown store and is isolated as a record error.
	if counts.DoorDash != 1 || counts.Square != 1 || counts.Toast != 1 || counts.Errors != 1 {
		t.Fatalf("order counts: %+v", counts)
	}

	counts, err = runner.OrderItems()
	if err != nil {
		t.Fatalf("order items: %v", err)
	}
	if counts.DoorDash != 1 || counts.Square != 1 || counts.Toast != 1 || counts.Errors != 1 {
		t.Fatalf("order item counts: %+v", counts)
	}

	counts, err = runner.Metadata()
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if counts.Total() != 3 || counts.Errors != 1 {
		t.Fatalf("metadata counts: %+v", counts)
	}

	orders, err := db.OrderLookup()
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 3 {
		t.Fatalf("got %d persisted orders want 3", len(orders))
	}

	sqID := orders[internal.SourceRef{Source: internal.SourceSquare, ID: "sq-o1"}]
	meta, err := db.OrderMetadata(sqID)
	if err != nil {
		t.Fatal(err)
	}
	if meta["payment_type"] != "CARD" || meta["card_brand"] != "VISA" || meta["entry_method"] != "KEYED" {
		t.Fatalf("square metadata: %v", meta)
	}

	toastID := orders[internal.SourceRef{Source: internal.SourceToast, ID: "t-o1"}]
	meta, err = db.OrderMetadata(toastID)
	if err != nil {
		t.Fatal(err)
	}
	if meta["payment_type"] != "CARD" || meta["card_brand"] != "VISA" {
		t.Fatalf("toast metadata: %v", meta)
	}
	if meta["paid_date"] != "2025-01-01T12:30:00Z" {
		t.Fatalf("toast metadata: %v", meta)
	}

	ddID := orders[internal.SourceRef{Source: internal.SourceDoorDash, ID: "d1"}]
	meta, err = db.OrderMetadata(ddID)
	if err != nil {
		t.Fatal(err)
	}
	if meta["delivery_fee"] != float64(299) || meta["delivery_time"] != "2025-01-01T10:40:00Z" {
		t.Fatalf("doordash metadata: %v", meta)
	}
}

func TestOrderItemDetails(t *testing.T) {
	runner, db := newTestRunner(t)
	stageFixtures(t, db)

	if _, err := runner.Locations(); err != nil {
		t.Fatal(err)
	}
	if _, err := runner.Orders(); err != nil {
		t.Fatal(err)
	}
	if _, err := runner.OrderItems(); err != nil {
		t.Fatal(err)
	}

	orders, err := db.OrderLookup()
	if err != nil {
		t.Fatal(err)
	}

	rows, err := db.RawByType(internal.EntityOrder)
	if err != nil {
		t.Fatal(err)
	}
	prices := map[string]int64{}
	byKey := map[string]internal.OrderItemRow{}
	for _, row := range rows {
		items, err := runner.orderItemRows(row, orders, prices)
		if err != nil {
			continue
		}
		for _, item := range items {
			byKey[item.SourceOrderItemID] = item
		}
	}

	dd := byKey["d1_dd-i1"]
	if dd.ItemName != "French Fries" || dd.Category != "Sides" {
		t.Fatalf("doordash item should use catalog name: %+v", dd)
	}
	if dd.Quantity != 2 || dd.UnitPrice != 299 || dd.TotalPrice != 598 {
		t.Fatalf("doordash money: %+v", dd)
	}

	// Without a vendor price the Square unit price derives from the line total.
	sq := byKey["sq-li1"]
	if sq.ItemName != "Cheeseburger Double" || sq.UnitPrice != 350 || sq.TotalPrice != 700 {
		t.Fatalf("square item: %+v", sq)
	}

	toast := byKey["t-s1"]
	if toast.ItemName != "Coca Cola Large" || toast.UnitPrice != 250 || toast.Quantity != 2 {
		t.Fatalf("toast item: %+v", toast)
	}
}

func TestRunnerAll(t *testing.T) {
	runner, db := newTestRunner(t)
	stageFixtures(t, db)

	results, err := runner.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d stage results want 4", len(results))
	}
	for _, name := range []string{"locations", "orders", "order_items", "metadata"} {
		if _, ok := results[name]; !ok {
			t.Fatalf("stage %s missing from results", name)
		}
	}

	orders, err := db.OrderLookup()
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 3 {
		t.Fatalf("got %d persisted orders want 3", len(orders))
	}
}
