// Package storage is the persistence collaborator: an embedded SQLite
// database holding the raw staging records and the normalized relational
// tables. All writes are idempotent upserts on natural keys so repeated runs
// over the same source data converge rather than duplicate.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"unipos/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS raw_data (
  source_name TEXT NOT NULL,
  entity_type TEXT NOT NULL,
  source_entity_id TEXT NOT NULL,
  data TEXT NOT NULL,
  loadedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (source_name, entity_type, source_entity_id)
);

CREATE TABLE IF NOT EXISTS locations (
  location_id TEXT PRIMARY KEY,
  account_id TEXT NOT NULL,
  source_name TEXT NOT NULL,
  source_location_id TEXT NOT NULL,
  name TEXT NOT NULL,
  address_line_1 TEXT NOT NULL,
  city TEXT NOT NULL,
  state TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  country TEXT NOT NULL,
  timezone TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (source_name, source_location_id)
);

CREATE TABLE IF NOT EXISTS orders (
  order_id TEXT PRIMARY KEY,
  location_id TEXT NOT NULL,
  source_name TEXT NOT NULL,
  source_order_id TEXT NOT NULL,
  created_at TEXT NOT NULL,
  closed_at TEXT,
  status TEXT NOT NULL,
  fulfillment_method TEXT,
  subtotal INTEGER NOT NULL,
  tax_amount INTEGER NOT NULL,
  tip_amount INTEGER NOT NULL,
  total_amount INTEGER NOT NULL,
  metadata TEXT,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (source_name, source_order_id),
  FOREIGN KEY (location_id) REFERENCES locations(location_id)
);

CREATE TABLE IF NOT EXISTS order_items (
  order_item_id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  source_name TEXT NOT NULL,
  source_order_item_id TEXT NOT NULL,
  item_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price INTEGER NOT NULL,
  total_price INTEGER NOT NULL,
  category TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (source_name, source_order_item_id),
  FOREIGN KEY (order_id) REFERENCES orders(order_id)
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  stage TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS meta (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// UpsertRawRecords stages source entities byte-for-byte, one transaction per
// batch. Returns the number of records written.
func (d *DB) UpsertRawRecords(records []internal.RawRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO raw_data (source_name, entity_type, source_entity_id, data, loadedAt)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(source_name, entity_type, source_entity_id) DO UPDATE SET
  data=excluded.data,
  loadedAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(string(r.Source), r.EntityType, r.EntityID, string(r.Data)); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

// RawByType returns all staged records of one entity type across sources.
func (d *DB) RawByType(entityType string) ([]internal.RawRecord, error) {
	return d.listRaw(`
SELECT source_name, entity_type, source_entity_id, data
FROM raw_data WHERE entity_type = ?
ORDER BY source_name, source_entity_id
`, entityType)
}

// RawBySourceType returns staged records of one entity type for one source.
func (d *DB) RawBySourceType(source internal.Source, entityType string) ([]internal.RawRecord, error) {
	return d.listRaw(`
SELECT source_name, entity_type, source_entity_id, data
FROM raw_data WHERE source_name = ? AND entity_type = ?
ORDER BY source_entity_id
`, string(source), entityType)
}

func (d *DB) listRaw(query string, args ...any) ([]internal.RawRecord, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RawRecord
	for rows.Next() {
		var rec internal.RawRecord
		var source, data string
		if err := rows.Scan(&source, &rec.EntityType, &rec.EntityID, &data); err != nil {
			return nil, err
		}
		rec.Source = internal.Source(source)
		rec.Data = []byte(data)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// UpsertLocations writes a batch of location rows. On conflict the existing
// internal location_id is preserved so downstream references stay stable.
func (d *DB) UpsertLocations(records []internal.LocationRow) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO locations (
  location_id, account_id, source_name, source_location_id, name,
  address_line_1, city, state, postal_code, country, timezone, updatedAt
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(source_name, source_location_id) DO UPDATE SET
  account_id=excluded.account_id,
  name=excluded.name,
  address_line_1=excluded.address_line_1,
  city=excluded.city,
  state=excluded.state,
  postal_code=excluded.postal_code,
  country=excluded.country,
  timezone=excluded.timezone,
  updatedAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			r.LocationID, r.AccountID, string(r.Source), r.SourceLocationID, r.Name,
			r.AddressLine1, r.City, r.State, r.PostalCode, r.Country, r.Timezone,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (d *DB) UpsertOrders(records []internal.OrderRow) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO orders (
  order_id, location_id, source_name, source_order_id, created_at, closed_at,
  status, fulfillment_method, subtotal, tax_amount, tip_amount, total_amount, updatedAt
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(source_name, source_order_id) DO UPDATE SET
  location_id=excluded.location_id,
  created_at=excluded.created_at,
  closed_at=excluded.closed_at,
  status=excluded.status,
  fulfillment_method=excluded.fulfillment_method,
  subtotal=excluded.subtotal,
  tax_amount=excluded.tax_amount,
  tip_amount=excluded.tip_amount,
  total_amount=excluded.total_amount,
  updatedAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			r.OrderID, r.LocationID, string(r.Source), r.SourceOrderID, r.CreatedAt, r.ClosedAt,
			r.Status, r.FulfillmentMethod, r.Subtotal, r.TaxAmount, r.TipAmount, r.TotalAmount,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (d *DB) UpsertOrderItems(records []internal.OrderItemRow) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO order_items (
  order_item_id, order_id, source_name, source_order_item_id, item_name,
  quantity, unit_price, total_price, category, updatedAt
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(source_name, source_order_item_id) DO UPDATE SET
  order_id=excluded.order_id,
  item_name=excluded.item_name,
  quantity=excluded.quantity,
  unit_price=excluded.unit_price,
  total_price=excluded.total_price,
  category=excluded.category,
  updatedAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			r.OrderItemID, r.OrderID, string(r.Source), r.SourceOrderItemID, r.ItemName,
			r.Quantity, r.UnitPrice, r.TotalPrice, r.Category,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

// LocationLookup builds the (source, source_location_id) -> location_id map
// once so transformers can resolve references in O(1).
func (d *DB) LocationLookup() (map[internal.SourceRef]string, error) {
	return d.lookup(`SELECT source_name, source_location_id, location_id FROM locations`)
}

// OrderLookup builds the (source, source_order_id) -> order_id map once.
func (d *DB) OrderLookup() (map[internal.SourceRef]string, error) {
	return d.lookup(`SELECT source_name, source_order_id, order_id FROM orders`)
}

func (d *DB) lookup(query string) (map[internal.SourceRef]string, error) {
	rows, err := d.conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[internal.SourceRef]string{}
	for rows.Next() {
		var source, sourceID, id string
		if err := rows.Scan(&source, &sourceID, &id); err != nil {
			return nil, err
		}
		out[internal.SourceRef{Source: internal.Source(source), ID: sourceID}] = id
	}
	return out, rows.Err()
}

// UpdateOrderMetadata stores source-specific enrichment on one order.
func (d *DB) UpdateOrderMetadata(orderID string, meta map[string]any) error {
	blob, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(`UPDATE orders SET metadata = ?, updatedAt = CURRENT_TIMESTAMP WHERE order_id = ?`, string(blob), orderID)
	return err
}

// OrderMetadata reads back one order's metadata, nil when unset.
func (d *DB) OrderMetadata(orderID string) (map[string]any, error) {
	var blob sql.NullString
	err := d.conn.QueryRow(`SELECT metadata FROM orders WHERE order_id = ?`, orderID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !blob.Valid {
		return nil, nil
	}
	var meta map[string]any
	if err := json.Unmarshal([]byte(blob.String), &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// InsertRun records one pipeline stage invocation and its counts.
func (d *DB) InsertRun(stage string, counts internal.Counts) error {
	blob, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (stage, countsJson) VALUES (?, ?)`, stage, string(blob))
	return err
}

func (d *DB) SetMeta(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO meta (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMeta(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
