package internal

import "fmt"

// Source identifies one of the point-of-sale platforms feeding the pipeline.
type Source string

const (
	SourceDoorDash Source = "doordash"
	SourceSquare   Source = "square"
	SourceToast    Source = "toast"
)

// Sources returns all known sources in stable reporting order.
func Sources() []Source {
	return []Source{SourceDoorDash, SourceSquare, SourceToast}
}

func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceDoorDash, SourceSquare, SourceToast:
		return Source(s), nil
	default:
		return "", fmt.Errorf("unknown source: %q", s)
	}
}

// Entity types held in the raw staging table.
const (
	EntityLocation = "location"
	EntityOrder    = "order"
	EntityPayment  = "payment"
)

// CatalogEntry is one normalized item in the catalog. Name and Category are
// always normalizer output, never raw vendor strings.
type CatalogEntry struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// SourceRef keys a record by its origin platform and native identifier.
type SourceRef struct {
	Source Source
	ID     string
}

// Counts tallies per-source successes and record-level failures for one stage.
type Counts struct {
	DoorDash int `json:"doordash"`
	Square   int `json:"square"`
	Toast    int `json:"toast"`
	Errors   int `json:"errors"`
}

func (c *Counts) Add(s Source, n int) {
	switch s {
	case SourceDoorDash:
		c.DoorDash += n
	case SourceSquare:
		c.Square += n
	case SourceToast:
		c.Toast += n
	}
}

func (c Counts) Of(s Source) int {
	switch s {
	case SourceDoorDash:
		return c.DoorDash
	case SourceSquare:
		return c.Square
	case SourceToast:
		return c.Toast
	}
	return 0
}

// Total is the number of successfully processed records across sources.
func (c Counts) Total() int {
	return c.DoorDash + c.Square + c.Toast
}

func (c Counts) String() string {
	return fmt.Sprintf("doordash=%d square=%d toast=%d errors=%d", c.DoorDash, c.Square, c.Toast, c.Errors)
}

// RawRecord is one staged source entity, payload kept byte-for-byte as read.
type RawRecord struct {
	Source     Source
	EntityType string
	EntityID   string
	Data       []byte
}

type LocationRow struct {
	LocationID       string
	AccountID        string
	Source           Source
	SourceLocationID string
	Name             string
	AddressLine1     string
	City             string
	State            string
	PostalCode       string
	Country          string
	Timezone         string
}

type OrderRow struct {
	OrderID           string
	LocationID        string
	Source            Source
	SourceOrderID     string
	CreatedAt         string
	ClosedAt          string
	Status            string
	FulfillmentMethod string
	Subtotal          int64
	TaxAmount         int64
	TipAmount         int64
	TotalAmount       int64
}

type OrderItemRow struct {
	OrderItemID       string
	OrderID           string
	Source            Source
	SourceOrderItemID string
	ItemName          string
	Quantity          int64
	UnitPrice         int64
	TotalPrice        int64
	Category          string
}
