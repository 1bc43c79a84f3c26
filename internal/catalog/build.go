package catalog

import (
	"unipos/internal"
	"unipos/internal/extract"
	"unipos/internal/normalize"
)

// Build assembles the item catalog from fresh source extractions. Every name
// and category passes through the normalizer; Square entries are limited to
// variation ids actually transacted and carry a variation suffix when the
// label changes product identity. Sources are never merged with each other.
func Build(ext extract.Extractions) Catalog {
	c := New()

	for id, name := range ext.DoorDash.Names {
		c[internal.SourceDoorDash][id] = internal.CatalogEntry{
			Name:     normalize.NormalizeItemName(name),
			Category: normalize.NormalizeCategoryName(ext.DoorDash.Categories[id]),
		}
	}

	for id := range ext.Square.UsedIDs {
		name, ok := ext.Square.Names[id]
		if !ok {
			continue
		}
		base := normalize.NormalizeItemName(name)
		suffix := normalize.VariationSuffix(ext.Square.VariationNames[id], base)
		c[internal.SourceSquare][id] = internal.CatalogEntry{
			Name:     base + suffix,
			Category: normalize.NormalizeCategoryName(ext.Square.Categories[id]),
		}
	}

	for id, name := range ext.Toast.Names {
		c[internal.SourceToast][id] = internal.CatalogEntry{
			Name:     normalize.NormalizeItemName(name),
			Category: normalize.NormalizeCategoryName(ext.Toast.Categories[id]),
		}
	}

	return c
}
