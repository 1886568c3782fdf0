package assistant

import (
	"regexp"
	"strings"
)

// Category is one of the fixed topical buckets a question can land in.
type Category string

const (
	CategoryDeity     Category = "deity"
	CategoryMessiah   Category = "messiah"
	CategorySpirit    Category = "spirit"
	CategorySalvation Category = "salvation"
	CategoryPrayer    Category = "prayer"
	CategoryFaith     Category = "faith"
	CategoryLove      Category = "love"
	CategorySin       Category = "sin"
	CategoryAfterlife Category = "afterlife"
	CategoryCommunity Category = "community"
	CategoryProphecy  Category = "prophecy"
	CategoryGeneral   Category = "general"
)

type classifierRule struct {
	pattern  *regexp.Regexp
	category Category
}

// classifierRules is evaluated top to bottom, first match wins. Order is part
// of the contract: "espirito santo" must be tested before a bare "santo"
// pattern would be, "jesus cristo" before generic deity terms, and so on.
// Patterns are matched against the normalized (lower-cased, diacritics-free)
// question, hence "oracao" rather than "oração".
var classifierRules = []classifierRule{
	{regexp.MustCompile(`\bespirito santo\b|\bholy spirit\b|\bdons?\b`), CategorySpirit},
	{regexp.MustCompile(`\bjesus\b|\bcristo\b|\bmessias\b|\bchrist\b|\bmessiah\b`), CategoryMessiah},
	{regexp.MustCompile(`\bdeus\b|\bgod\b|\btrindade\b|\btrinity\b|\bcriador\b`), CategoryDeity},
	{regexp.MustCompile(`\bsalvacao\b|\bsalvo\b|\bsalva\b|\bsalvation\b|\bredencao\b|\bgraca\b`), CategorySalvation},
	{regexp.MustCompile(`\boracao\b|\borar\b|\brezar\b|\bpray(er|ing)?\b|\bjejum\b`), CategoryPrayer},
	{regexp.MustCompile(`\bfe\b|\bfaith\b|\bcrer\b|\bacreditar\b|\bconfiar\b`), CategoryFaith},
	{regexp.MustCompile(`\bamor\b|\bamar\b|\blove\b|\bperdao\b|\bperdoar\b|\bforgiv`), CategoryLove},
	{regexp.MustCompile(`\bpecados?\b|\bsins?\b|\btentacao\b|\btemptation\b`), CategorySin},
	{regexp.MustCompile(`\bceu\b|\binferno\b|\bheaven\b|\bhell\b|\bmorte\b|\beternidade\b|\beternal?\b`), CategoryAfterlife},
	{regexp.MustCompile(`\bigreja\b|\bchurch\b|\bcomunidade\b|\bcommunity\b|\bbatismo\b|\bceia\b`), CategoryCommunity},
	{regexp.MustCompile(`\bprofecia\b|\bprophecy\b|\bapocalipse\b|\brevelation\b|\bvolta de\b`), CategoryProphecy},
}

// Classify maps a question to its category by first-match-wins over the
// ordered rule list; anything unmatched is general. Input is lower-cased
// before matching so callers may pass raw or normalized text.
func Classify(text string) Category {
	lowered := strings.ToLower(text)
	for _, rule := range classifierRules {
		if rule.pattern.MatchString(lowered) {
			return rule.category
		}
	}
	return CategoryGeneral
}
