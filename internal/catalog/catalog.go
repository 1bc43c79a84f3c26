// Package catalog builds, persists, and verifies the vendor-partitioned item
// catalog: the durable mapping from each source's native item id to a
// normalized display name and category.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"unipos/internal"
)

// Catalog maps each source to its items keyed by the vendor's native item id.
// Ids are never re-keyed or translated; they are what joins catalog entries
// back to raw records.
type Catalog map[internal.Source]map[string]internal.CatalogEntry

// commentKey is a non-id sentinel carrying a human-readable note per vendor
// section of the JSON artifact. Consumers iterating entries must skip it.
const commentKey = "_comment"

var comments = map[internal.Source]string{
	internal.SourceDoorDash: "Maps DoorDash item IDs to normalized names.",
	internal.SourceSquare:   "Maps Square item IDs to normalized names.",
	internal.SourceToast:    "Maps Toast item IDs to normalized names.",
}

func New() Catalog {
	c := Catalog{}
	for _, s := range internal.Sources() {
		c[s] = map[string]internal.CatalogEntry{}
	}
	return c
}

func (c Catalog) Lookup(source internal.Source, itemID string) (internal.CatalogEntry, bool) {
	entry, ok := c[source][itemID]
	return entry, ok
}

// Count returns the number of catalog entries for one source.
func (c Catalog) Count(source internal.Source) int {
	return len(c[source])
}

func (c Catalog) Total() int {
	total := 0
	for _, entries := range c {
		total += len(entries)
	}
	return total
}

// SortedIDs returns one source's item ids in stable order.
func (c Catalog) SortedIDs(source internal.Source) []string {
	ids := make([]string, 0, len(c[source]))
	for id := range c[source] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Load reads a catalog artifact, skipping the per-source comment sentinels.
func Load(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var sections map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	c := New()
	for name, section := range sections {
		source, err := internal.ParseSource(name)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
		for id, blob := range section {
			if id == commentKey {
				continue
			}
			var entry internal.CatalogEntry
			if err := json.Unmarshal(blob, &entry); err != nil {
				return nil, fmt.Errorf("catalog %s: entry %s/%s: %w", path, name, id, err)
			}
			c[source][id] = entry
		}
	}
	return c, nil
}

// Save writes the catalog artifact. Output is deterministic for identical
// input: map keys marshal sorted, so repeated builds produce byte-identical
// files.
func Save(c Catalog, path string) error {
	sections := map[string]map[string]any{}
	for _, source := range internal.Sources() {
		section := map[string]any{commentKey: comments[source]}
		for id, entry := range c[source] {
			section[id] = entry
		}
		sections[string(source)] = section
	}

	blob, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return err
	}
	blob = append(blob, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o644)
}
