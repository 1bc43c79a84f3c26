package normalize

import (
	"regexp"
	"strings"
)

var rePiece = regexp.MustCompile(`(\d+)\s*piece`)

// VariationSuffix derives the display suffix for a vendor SKU variation given
// its label and the normalized base item name. A suffix is attached only when
// the variation changes the product's identity for ordering analytics; sizes
// and doubles on unrelated items collapse into the base name. First match
// wins.
func VariationSuffix(label, baseName string) string {
	if label == "" || label == "Regular" {
		return ""
	}
	if label == "Double" && (strings.Contains(baseName, "Burger") || strings.Contains(baseName, "Espresso")) {
		return " Double"
	}
	if m := rePiece.FindStringSubmatch(label); m != nil {
		return " " + m[1] + "pc"
	}
	if label == "Large" && strings.Contains(baseName, "Fries") {
		return " Large"
	}
	return ""
}
