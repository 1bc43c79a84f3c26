// Package staging loads vendor export files wholesale into the raw_data
// table. Payloads are stored byte-for-byte as read so the original JSON stays
// available for audit independent of the normalized tables.
package staging

import (
	"encoding/json"
	"fmt"
	"os"

	"unipos/internal"
	"unipos/internal/pos"
	"unipos/internal/storage"
)

type Loader struct {
	db *storage.DB
}

func NewLoader(db *storage.DB) *Loader {
	return &Loader{db: db}
}

// SourceCounts reports how many entities of each type were staged.
type SourceCounts struct {
	Locations int
	Orders    int
	Payments  int
}

type Result map[internal.Source]SourceCounts

// LoadAll stages every source found under dir. A failed or missing source is
// reported with a warning and zero counts; the remaining sources still load.
func (l *Loader) LoadAll(dir string) Result {
	result := Result{}

	fmt.Println("[1/3] doordash...")
	if counts, err := l.LoadDoorDash(pos.DoorDashOrdersFile(dir)); err != nil {
		fmt.Printf("  [WARNING] %v\n", err)
		result[internal.SourceDoorDash] = SourceCounts{}
	} else {
		result[internal.SourceDoorDash] = counts
	}

	fmt.Println("[2/3] square...")
	if counts, err := l.LoadSquare(dir); err != nil {
		fmt.Printf("  [WARNING] %v\n", err)
		result[internal.SourceSquare] = SourceCounts{}
	} else {
		result[internal.SourceSquare] = counts
	}

	fmt.Println("[3/3] toast...")
	if counts, err := l.LoadToast(pos.ToastExportFile(dir)); err != nil {
		fmt.Printf("  [WARNING] %v\n", err)
		result[internal.SourceToast] = SourceCounts{}
	} else {
		result[internal.SourceToast] = counts
	}

	return result
}

// LoadDoorDash stages stores and orders from the DoorDash export.
func (l *Loader) LoadDoorDash(path string) (SourceCounts, error) {
	var export struct {
		Stores []json.RawMessage `json:"stores"`
		Orders []json.RawMessage `json:"orders"`
	}
	if err := readRawJSON(path, &export); err != nil {
		return SourceCounts{}, err
	}

	return SourceCounts{
		Locations: l.stage(internal.SourceDoorDash, internal.EntityLocation, export.Stores, "store_id"),
		Orders:    l.stage(internal.SourceDoorDash, internal.EntityOrder, export.Orders, "external_delivery_id"),
	}, nil
}

// LoadSquare stages locations, orders, and payments from the Square export
// directory. Individual missing files stage zero entities.
func (l *Loader) LoadSquare(dir string) (SourceCounts, error) {
	counts := SourceCounts{}

	var locations struct {
		Locations []json.RawMessage `json:"locations"`
	}
	if err := readRawJSON(pos.SquareLocationsFile(dir), &locations); err == nil {
		counts.Locations = l.stage(internal.SourceSquare, internal.EntityLocation, locations.Locations, "id")
	} else if !os.IsNotExist(err) {
		return SourceCounts{}, err
	}

	var orders struct {
		Orders []json.RawMessage `json:"orders"`
	}
	if err := readRawJSON(pos.SquareOrdersFile(dir), &orders); err == nil {
		counts.Orders = l.stage(internal.SourceSquare, internal.EntityOrder, orders.Orders, "id")
	} else if !os.IsNotExist(err) {
		return SourceCounts{}, err
	}

	var payments struct {
		Payments []json.RawMessage `json:"payments"`
	}
	if err := readRawJSON(pos.SquarePaymentsFile(dir), &payments); err == nil {
		counts.Payments = l.stage(internal.SourceSquare, internal.EntityPayment, payments.Payments, "id")
	} else if !os.IsNotExist(err) {
		return SourceCounts{}, err
	}

	return counts, nil
}

// LoadToast stages locations and orders from the Toast export.
func (l *Loader) LoadToast(path string) (SourceCounts, error) {
	var export struct {
		Locations []json.RawMessage `json:"locations"`
		Orders    []json.RawMessage `json:"orders"`
	}
	if err := readRawJSON(path, &export); err != nil {
		return SourceCounts{}, err
	}

	return SourceCounts{
		Locations: l.stage(internal.SourceToast, internal.EntityLocation, export.Locations, "guid"),
		Orders:    l.stage(internal.SourceToast, internal.EntityOrder, export.Orders, "guid"),
	}, nil
}

// stage upserts one batch of entities. Entities without an id are skipped; a
// failed batch write is logged and reported as zero records persisted so the
// run can be retried wholesale.
func (l *Loader) stage(source internal.Source, entityType string, entities []json.RawMessage, idField string) int {
	records := make([]internal.RawRecord, 0, len(entities))
	for _, entity := range entities {
		id := rawStringField(entity, idField)
		if id == "" {
			continue
		}
		records = append(records, internal.RawRecord{
			Source:     source,
			EntityType: entityType,
			EntityID:   id,
			Data:       entity,
		})
	}

	count, err := l.db.UpsertRawRecords(records)
	if err != nil {
		fmt.Printf("  [WARNING] batch upsert failed for %s/%s: %v\n", source, entityType, err)
		return 0
	}
	return count
}

func rawStringField(raw json.RawMessage, field string) string {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(m[field], &s); err != nil {
		return ""
	}
	return s
}

func readRawJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
