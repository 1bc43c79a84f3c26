package storage

import (
	"path/filepath"
	"testing"

	"unipos/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUpsertRawRecords(t *testing.T) {
	db := openTestDB(t)

	records := []internal.RawRecord{
		{Source: internal.SourceToast, EntityType: internal.EntityOrder, EntityID: "o-1", Data: []byte(`{"guid":"o-1","v":1}`)},
		{Source: internal.SourceToast, EntityType: internal.EntityOrder, EntityID: "o-2", Data: []byte(`{"guid":"o-2"}`)},
	}
	if n, err := db.UpsertRawRecords(records); err != nil || n != 2 {
		t.Fatalf("got (%d, %v) want (2, nil)", n, err)
	}

	// Re-staging replaces the payload, never duplicates the row.
	records[0].Data = []byte(`{"guid":"o-1","v":2}`)
	if n, err := db.UpsertRawRecords(records[:1]); err != nil || n != 1 {
		t.Fatalf("got (%d, %v) want (1, nil)", n, err)
	}

	rows, err := db.RawBySourceType(internal.SourceToast, internal.EntityOrder)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows want 2", len(rows))
	}
	if string(rows[0].Data) != `{"guid":"o-1","v":2}` {
		t.Fatalf("payload not replaced: %s", rows[0].Data)
	}
}

func TestUpsertLocationsPreservesInternalID(t *testing.T) {
	db := openTestDB(t)

	row := internal.LocationRow{
		LocationID: "loc-internal-1", AccountID: "acct", Source: internal.SourceSquare,
		SourceLocationID: "sq-loc-1", Name: "Downtown",
	}
	if _, err := db.UpsertLocations([]internal.LocationRow{row}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	row.LocationID = "loc-internal-2"
	row.Name = "Downtown Renamed"
	if _, err := db.UpsertLocations([]internal.LocationRow{row}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	lookup, err := db.LocationLookup()
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(lookup) != 1 {
		t.Fatalf("got %d locations want 1", len(lookup))
	}
	got := lookup[internal.SourceRef{Source: internal.SourceSquare, ID: "sq-loc-1"}]
	if got != "loc-internal-1" {
		t.Fatalf("internal id not preserved on conflict: got %q", got)
	}
}

func TestOrderMetadataRoundTrip(t *testing.T) {
	db := openTestDB(t)

	loc := internal.LocationRow{LocationID: "loc-1", AccountID: "acct", Source: internal.SourceToast, SourceLocationID: "t-loc"}
	if _, err := db.UpsertLocations([]internal.LocationRow{loc}); err != nil {
		t.Fatal(err)
	}
	order := internal.OrderRow{
		OrderID: "ord-1", LocationID: "loc-1", Source: internal.SourceToast,
		SourceOrderID: "t-ord", CreatedAt: "2025-01-01T00:00:00Z", Status: "completed",
	}
	if _, err := db.UpsertOrders([]internal.OrderRow{order}); err != nil {
		t.Fatal(err)
	}

	meta, err := db.OrderMetadata("ord-1")
	if err != nil {
		t.Fatalf("read unset: %v", err)
	}
	if meta != nil {
		t.Fatalf("expected nil metadata before enrichment, got %v", meta)
	}

	if err := db.UpdateOrderMetadata("ord-1", map[string]any{"payment_type": "card", "business_date": float64(20250101)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	meta, err = db.OrderMetadata("ord-1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if meta["payment_type"] != "card" {
		t.Fatalf("got %v", meta)
	}
	if meta["business_date"] != float64(20250101) {
		t.Fatalf("got %v", meta["business_date"])
	}
}

func TestOrderItemsUpsert(t *testing.T) {
	db := openTestDB(t)

	item := internal.OrderItemRow{
		OrderItemID: "oi-1", OrderID: "ord-1", Source: internal.SourceDoorDash,
		SourceOrderItemID: "dd-ord_item-1", ItemName: "French Fries",
		Quantity: 2, UnitPrice: 299, TotalPrice: 598, Category: "Sides",
	}
	if n, err := db.UpsertOrderItems([]internal.OrderItemRow{item}); err != nil || n != 1 {
		t.Fatalf("got (%d, %v)", n, err)
	}

	item.OrderItemID = "oi-2"
	item.Quantity = 3
	item.TotalPrice = 897
	if _, err := db.UpsertOrderItems([]internal.OrderItemRow{item}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM order_items`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("got %d rows want 1", count)
	}
	var id string
	var qty int64
	if err := db.conn.QueryRow(`SELECT order_item_id, quantity FROM order_items`).Scan(&id, &qty); err != nil {
		t.Fatal(err)
	}
	if id != "oi-1" || qty != 3 {
		t.Fatalf("got id=%q qty=%d want id=oi-1 qty=3", id, qty)
	}
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)

	v, err := db.GetMeta("last_ingest")
	if err != nil || v != nil {
		t.Fatalf("got (%v, %v) want (nil, nil)", v, err)
	}
	if err := db.SetMeta("last_ingest", "2025-01-01"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetMeta("last_ingest", "2025-01-02"); err != nil {
		t.Fatal(err)
	}
	v, err = db.GetMeta("last_ingest")
	if err != nil || v == nil || *v != "2025-01-02" {
		t.Fatalf("got (%v, %v)", v, err)
	}
}
