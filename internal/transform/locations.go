package transform

import (
	"fmt"

	"unipos/internal"
	"unipos/internal/pos"
)

// Locations maps staged location entities into the locations table.
func (r *Runner) Locations() (internal.Counts, error) {
	var counts internal.Counts

	rows, err := r.db.RawByType(internal.EntityLocation)
	if err != nil {
		return counts, err
	}

	records := make([]internal.LocationRow, 0, len(rows))
	for _, row := range rows {
		rec, err := r.locationRow(row)
		if err != nil {
			fmt.Printf("[ERROR] %s location: %v\n", row.Source, err)
			counts.Errors++
			continue
		}
		records = append(records, rec)
		counts.Add(row.Source, 1)
	}

	if _, err := r.db.UpsertLocations(records); err != nil {
		fmt.Printf("[WARNING] locations batch upsert failed: %v\n", err)
		return internal.Counts{Errors: counts.Errors}, nil
	}
	return counts, nil
}

func (r *Runner) locationRow(raw internal.RawRecord) (internal.LocationRow, error) {
	switch raw.Source {
	case internal.SourceDoorDash:
		store, err := decodeRaw[pos.DoorDashStore](raw)
		if err != nil {
			return internal.LocationRow{}, err
		}
		if store.StoreID == "" {
			return internal.LocationRow{}, fmt.Errorf("missing store_id")
		}
		return internal.LocationRow{
			LocationID:       newID(),
			AccountID:        r.accountID,
			Source:           raw.Source,
			SourceLocationID: store.StoreID,
			Name:             store.Name,
			AddressLine1:     store.Address.Street,
			City:             store.Address.City,
			State:            store.Address.State,
			PostalCode:       store.Address.ZipCode,
			Country:          store.Address.Country,
			Timezone:         store.Timezone,
		}, nil
	case internal.SourceSquare:
		loc, err := decodeRaw[pos.SquareLocation](raw)
		if err != nil {
			return internal.LocationRow{}, err
		}
		if loc.ID == "" {
			return internal.LocationRow{}, fmt.Errorf("missing id")
		}
		return internal.LocationRow{
			LocationID:       newID(),
			AccountID:        r.accountID,
			Source:           raw.Source,
			SourceLocationID: loc.ID,
			Name:             loc.Name,
			AddressLine1:     loc.Address.AddressLine1,
			City:             loc.Address.Locality,
			State:            loc.Address.AdministrativeDistrictLevel1,
			PostalCode:       loc.Address.PostalCode,
			Country:          loc.Address.Country,
			Timezone:         loc.Timezone,
		}, nil
	case internal.SourceToast:
		loc, err := decodeRaw[pos.ToastLocation](raw)
		if err != nil {
			return internal.LocationRow{}, err
		}
		if loc.GUID == "" {
			return internal.LocationRow{}, fmt.Errorf("missing guid")
		}
		return internal.LocationRow{
			LocationID:       newID(),
			AccountID:        r.accountID,
			Source:           raw.Source,
			SourceLocationID: loc.GUID,
			Name:             loc.Name,
			AddressLine1:     loc.Address.Line1,
			City:             loc.Address.City,
			State:            loc.Address.State,
			PostalCode:       loc.Address.Zip,
			Country:          loc.Address.Country,
			Timezone:         loc.Timezone,
		}, nil
	default:
		return internal.LocationRow{}, fmt.Errorf("unknown source %q", raw.Source)
	}
}
