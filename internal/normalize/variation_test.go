package normalize

import "testing"

func TestVariationSuffix(t *testing.T) {
	cases := []struct {
		name  string
		label string
		base  string
		want  string
	}{
		{name: "empty label", label: "", base: "Cheeseburger", want: ""},
		{name: "regular collapses", label: "Regular", base: "French Fries", want: ""},
		{name: "double burger", label: "Double", base: "Grilled Burger", want: " Double"},
		{name: "double espresso", label: "Double", base: "Shot Espresso", want: " Double"},
		{name: "double needs capitalized burger", label: "Double", base: "Cheeseburger", want: ""},
		{name: "double elsewhere collapses", label: "Double", base: "French Fries", want: ""},
		{name: "piece count", label: "3 piece", base: "Chicken Tenders", want: " 3pc"},
		{name: "piece count no space", label: "6piece", base: "Chicken Wings", want: " 6pc"},
		{name: "large fries", label: "Large", base: "French Fries", want: " Large"},
		{name: "large elsewhere collapses", label: "Large", base: "Coca Cola", want: ""},
		{name: "unrecognized collapses", label: "Spicy", base: "Chicken Sandwich", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := VariationSuffix(tc.label, tc.base)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
