package normalize

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

type rulesFile struct {
	NameTypos      map[string]string `yaml:"name_typos"`
	Abbreviations  map[string]string `yaml:"abbreviations"`
	CategoryFixes  map[string]string `yaml:"category_fixes"`
	LowercaseWords []string          `yaml:"lowercase_words"`
	Emoji          string            `yaml:"emoji"`
}

type replacement struct {
	re   *regexp.Regexp
	with string
}

// ruleSet holds the pre-compiled correction tables. Normalization runs over
// every catalog item on every build, so patterns are compiled exactly once.
type ruleSet struct {
	typos         []replacement
	abbreviations []replacement
	categoryFixes map[string]string
	lowercase     map[string]struct{}
	emojiRe       *regexp.Regexp
}

var rules = mustLoadRules()

func mustLoadRules() *ruleSet {
	rs, err := loadRules(rulesYAML)
	if err != nil {
		panic(fmt.Sprintf("normalize: embedded rules: %v", err))
	}
	return rs
}

func loadRules(raw []byte) (*ruleSet, error) {
	var f rulesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}

	rs := &ruleSet{
		typos:         compileWordRules(f.NameTypos, false),
		abbreviations: compileWordRules(f.Abbreviations, true),
		categoryFixes: f.CategoryFixes,
		lowercase:     make(map[string]struct{}, len(f.LowercaseWords)),
	}
	for _, w := range f.LowercaseWords {
		rs.lowercase[w] = struct{}{}
	}
	if f.Emoji != "" {
		rs.emojiRe = regexp.MustCompile(`[` + regexp.QuoteMeta(f.Emoji) + `]+\s*`)
	}
	return rs, nil
}

// compileWordRules sorts keys longest first so multi-word entries are not
// partially shadowed by shorter ones, then compiles whole-word patterns.
func compileWordRules(table map[string]string, ignoreCase bool) []replacement {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	out := make([]replacement, 0, len(keys))
	for _, k := range keys {
		pattern := `\b` + regexp.QuoteMeta(k) + `\b`
		if ignoreCase {
			pattern = `(?i)` + pattern
		}
		out = append(out, replacement{re: regexp.MustCompile(pattern), with: table[k]})
	}
	return out
}
