package normalize

import "testing"

func TestNormalizeItemName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "typos", input: "Griled Chiken Sandwhich", want: "Grilled Chicken Sandwich"},
		{name: "abbreviations and hyphen", input: "dbl Shot Espresso - Lg", want: "Double Shot Espresso Large"},
		{name: "ampersand", input: "Mac & Cheese", want: "Mac and Cheese"},
		{name: "count token", input: "12PC Chicken Wings", want: "12pc Chicken Wings"},
		{name: "pcs suffix", input: "6pcs Nuggets", want: "6pc Nuggets"},
		{name: "acronym preserved", input: "BBQ Ribs", want: "BBQ Ribs"},
		{name: "fries fix", input: "Fries", want: "French Fries"},
		{name: "fries fix with size", input: "Fries Large", want: "French Fries Large"},
		{name: "coke fix moves size", input: "Large Coke", want: "Coca Cola Large"},
		{name: "coke fix plain", input: "Coke", want: "Coca Cola"},
		{name: "coca cola untouched", input: "Coca Cola Large", want: "Coca Cola Large"},
		{name: "hashbrowns fix", input: "Hashbrowns", want: "Hash Browns"},
		{name: "lowercase conjunction", input: "fish AND chips", want: "Fish AND Chips"},
		{name: "conjunction mid name", input: "fish and chips", want: "Fish and Chips"},
		{name: "whitespace collapse", input: "  iced   coffe  ", want: "Iced Coffee"},
		{name: "empty", input: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeItemName(tc.input)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeItemNameIdempotent(t *testing.T) {
	inputs := []string{
		"Griled Chiken Sandwhich",
		"dbl Shot Espresso - Lg",
		"Large Coke",
		"Fries",
		"Hashbrowns",
		"12PC Chicken Wings",
		"Mac & Cheese",
	}
	for _, input := range inputs {
		once := NormalizeItemName(input)
		twice := NormalizeItemName(once)
		if once != twice {
			t.Fatalf("%q: first pass %q, second pass %q", input, once, twice)
		}
	}
}

func TestNormalizeCategoryName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "emoji and fix", input: "🍔 ENTREES", want: "Entrees"},
		{name: "spelling fix", input: "Appitizers", want: "Appetizers"},
		{name: "passthrough", input: "Beverages", want: "Beverages"},
		{name: "empty", input: "", want: "Unknown"},
		{name: "whitespace only", input: "   ", want: "Unknown"},
		{name: "emoji only", input: "🍰", want: "Unknown"},
		{name: "whitespace collapse", input: "Hot   Drinks", want: "Hot Drinks"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeCategoryName(tc.input)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
