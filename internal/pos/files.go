package pos

import "path/filepath"

// Export file layout under the sources directory. Names are fixed by the
// vendor export jobs.

func DoorDashOrdersFile(dir string) string {
	return filepath.Join(dir, "doordash_orders.json")
}

func SquareCatalogFile(dir string) string {
	return filepath.Join(dir, "square", "catalog.json")
}

func SquareOrdersFile(dir string) string {
	return filepath.Join(dir, "square", "orders.json")
}

func SquareLocationsFile(dir string) string {
	return filepath.Join(dir, "square", "locations.json")
}

func SquarePaymentsFile(dir string) string {
	return filepath.Join(dir, "square", "payments.json")
}

func ToastExportFile(dir string) string {
	return filepath.Join(dir, "toast_pos_export.json")
}
