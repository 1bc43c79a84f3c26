// Package transform populates the normalized relational schema from staged
// raw records and the item catalog. Stages run in dependency order: locations
// before orders before order items before metadata, because each later stage
// resolves ids persisted by an earlier one. A malformed record is counted and
// skipped, never fatal to the batch.
package transform

import (
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"

	"unipos/internal"
	"unipos/internal/catalog"
	"unipos/internal/config"
	"unipos/internal/storage"
)

type Runner struct {
	db         *storage.DB
	catalog    catalog.Catalog
	accountID  string
	sourcesDir string
}

func NewRunner(db *storage.DB, cat catalog.Catalog, cfg config.Config) *Runner {
	return &Runner{
		db:         db,
		catalog:    cat,
		accountID:  cfg.AccountID,
		sourcesDir: cfg.SourcesDir,
	}
}

type Stage struct {
	Name string
	Run  func() (internal.Counts, error)
}

// Stages returns the pipeline stages in dependency order.
func (r *Runner) Stages() []Stage {
	return []Stage{
		{Name: "locations", Run: r.Locations},
		{Name: "orders", Run: r.Orders},
		{Name: "order_items", Run: r.OrderItems},
		{Name: "metadata", Run: r.Metadata},
	}
}

// All runs every stage in order, printing per-stage summaries and recording
// each invocation. A stage-level failure (e.g. the staging table cannot be
// read) aborts the remaining stages; record-level errors do not.
func (r *Runner) All() (map[string]internal.Counts, error) {
	stages := r.Stages()
	results := make(map[string]internal.Counts, len(stages))

	for i, stage := range stages {
		fmt.Printf("[%d/%d] %s...\n", i+1, len(stages), stage.Name)
		counts, err := stage.Run()
		if err != nil {
			return results, fmt.Errorf("stage %s: %w", stage.Name, err)
		}
		results[stage.Name] = counts
		_ = r.db.InsertRun(stage.Name, counts)
		fmt.Printf("[OK] %d %s (%s)\n", counts.Total(), stage.Name, counts)
	}

	return results, nil
}

// itemInfo resolves an item's normalized name and category from the catalog.
// Unknown items keep an empty name and the Unknown category rather than
// leaking raw vendor strings into the schema.
func (r *Runner) itemInfo(source internal.Source, itemID string) (string, string) {
	entry, ok := r.catalog.Lookup(source, itemID)
	if !ok {
		return "", "Unknown"
	}
	return entry.Name, entry.Category
}

func newID() string {
	return ulid.Make().String()
}

func decodeRaw[T any](rec internal.RawRecord) (T, error) {
	var v T
	if err := json.Unmarshal(rec.Data, &v); err != nil {
		return v, fmt.Errorf("decode %s %s %s: %w", rec.Source, rec.EntityType, rec.EntityID, err)
	}
	return v, nil
}
