package catalog

import (
	"sort"

	"unipos/internal"
	"unipos/internal/extract"
	"unipos/internal/normalize"
)

// IDError is a catalog entry whose id no longer exists in fresh source data.
type IDError struct {
	ItemID string
	Reason string
}

// CategoryError is a catalog entry whose stored category no longer matches
// the normalized fresh source category.
type CategoryError struct {
	ItemID          string
	SourceCategory  string
	CatalogCategory string
}

// MissingEntry is a fresh source id absent from the catalog.
type MissingEntry struct {
	ItemID string
	Name   string
}

type SourceReport struct {
	IDErrors       []IDError
	CategoryErrors []CategoryError
	Missing        []MissingEntry
}

func (r SourceReport) Clean() bool {
	return len(r.IDErrors) == 0 && len(r.CategoryErrors) == 0 && len(r.Missing) == 0
}

// Report holds verification findings per source. Findings are diagnostic
// only; verification never mutates the catalog.
type Report map[internal.Source]SourceReport

// Verdict classifies an overall verification outcome.
type Verdict int

const (
	VerdictClean Verdict = iota
	VerdictCategoryIssues
	VerdictBroken
)

func (v Verdict) String() string {
	switch v {
	case VerdictClean:
		return "all ids and categories are correct and complete"
	case VerdictCategoryIssues:
		return "ids correct, but there are category errors"
	default:
		return "there are issues to fix"
	}
}

func (r Report) Totals() (idErrors, categoryErrors, missing int) {
	for _, rep := range r {
		idErrors += len(rep.IDErrors)
		categoryErrors += len(rep.CategoryErrors)
		missing += len(rep.Missing)
	}
	return
}

func (r Report) Verdict() Verdict {
	idErrors, categoryErrors, missing := r.Totals()
	if idErrors == 0 && missing == 0 {
		if categoryErrors == 0 {
			return VerdictClean
		}
		return VerdictCategoryIssues
	}
	return VerdictBroken
}

// Verify cross-checks a built catalog against fresh extraction output,
// detecting drift in the source data since the catalog was built. For Square
// the id-space is the used-in-orders set rather than the full catalog set.
func Verify(c Catalog, ext extract.Extractions) Report {
	return Report{
		internal.SourceDoorDash: verifySource(c[internal.SourceDoorDash], ext.DoorDash, nil),
		internal.SourceSquare:   verifySource(c[internal.SourceSquare], ext.Square.Items, ext.Square.UsedIDs),
		internal.SourceToast:    verifySource(c[internal.SourceToast], ext.Toast, nil),
	}
}

// verifySource is a set-based O(n) check: catalog ids are looked up in the
// fresh id-space, then the complement (fresh minus catalog) is computed once.
func verifySource(entries map[string]internal.CatalogEntry, items extract.Items, validIDs map[string]struct{}) SourceReport {
	var rep SourceReport

	checkIDs := validIDs
	if checkIDs == nil {
		checkIDs = make(map[string]struct{}, len(items.Names))
		for id := range items.Names {
			checkIDs[id] = struct{}{}
		}
	}

	for _, id := range sortedKeys(entries) {
		entry := entries[id]
		if validIDs != nil {
			if _, ok := validIDs[id]; !ok {
				rep.IDErrors = append(rep.IDErrors, IDError{ItemID: id, Reason: "not found in orders"})
				continue
			}
		}
		if _, ok := items.Names[id]; !ok {
			rep.IDErrors = append(rep.IDErrors, IDError{ItemID: id, Reason: "not found in source"})
			continue
		}
		if entry.Category == "" {
			continue
		}
		fresh := normalize.NormalizeCategoryName(items.Categories[id])
		if fresh != entry.Category {
			rep.CategoryErrors = append(rep.CategoryErrors, CategoryError{
				ItemID:          id,
				SourceCategory:  items.Categories[id],
				CatalogCategory: entry.Category,
			})
		}
	}

	for _, id := range sortedSet(checkIDs) {
		if _, ok := entries[id]; !ok {
			rep.Missing = append(rep.Missing, MissingEntry{ItemID: id, Name: items.Names[id]})
		}
	}

	return rep
}

func sortedKeys(m map[string]internal.CatalogEntry) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedSet(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
