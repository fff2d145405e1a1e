package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"tripgen/internal/planner"
)

// KeywordExtractor is the offline extractor: pattern matching over the
// request text. It never fails; anything it cannot find is left empty.
type KeywordExtractor struct{}

func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

func (KeywordExtractor) Extract(_ context.Context, text string) (planner.Preferences, error) {
	return planner.Preferences{
		Categories: extractCategories(text),
		Location:   extractLocation(text),
		Duration:   extractDayCount(text),
		Pace:       extractPace(text),
		Budget:     extractBudget(text),
	}, nil
}

var (
	dayDigitsPattern = regexp.MustCompile(`\b(\d{1,2})[\s-]*(?:days?|nights?)\b`)
	dayWordsPattern  = regexp.MustCompile(`\b(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen)[\s-]*(?:days?|nights?)\b`)
	weekPattern      = regexp.MustCompile(`\b(a|one|two)?\s*weeks?\b`)

	// capitalised place name after a preposition, e.g. "in Paris, France"
	locationPattern = regexp.MustCompile(`\b(?:to|in|visit|visiting|around|near|explore|exploring)\s+([A-Z][\p{L}'.-]*(?:,?\s+[A-Z][\p{L}'.-]*)*)`)

	wordPattern = regexp.MustCompile(`\p{L}+`)
)

var writtenNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
}

// extractDayCount returns 0 when the text names no duration.
func extractDayCount(text string) int {
	lower := strings.ToLower(text)

	if m := dayDigitsPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	if m := dayWordsPattern.FindStringSubmatch(lower); m != nil {
		return writtenNumbers[m[1]]
	}
	if strings.Contains(lower, "long weekend") {
		return 3
	}
	if strings.Contains(lower, "weekend") {
		return 2
	}
	if strings.Contains(lower, "fortnight") {
		return 14
	}
	if m := weekPattern.FindStringSubmatch(lower); m != nil {
		if m[1] == "two" {
			return 14
		}
		return 7
	}
	return 0
}

func extractLocation(text string) string {
	m := locationPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	loc := strings.TrimRight(strings.TrimSpace(m[1]), ".,")
	if len(loc) < 2 || len(loc) > 60 {
		return ""
	}
	return loc
}

type categoryRule struct {
	category string
	keywords []string
}

// Checked in order; a request mentioning several interests gets all of them
// in this order. A keyword matches a whole word or its plural; a trailing *
// matches any word with that prefix.
var categoryRules = []categoryRule{
	{"museums", []string{"museum"}},
	{"art galleries", []string{"gallery", "galleries", "art", "painting"}},
	{"historic sites", []string{"histor*", "castle", "monument", "ruins", "heritage", "landmark"}},
	{"churches", []string{"church", "cathedral", "temple", "pagoda", "mosque", "basilica"}},
	{"parks", []string{"park", "garden", "nature", "outdoor"}},
	{"hiking trails", []string{"hike", "hiking", "trek", "trekking", "trail", "mountain"}},
	{"beaches", []string{"beach", "coast", "seaside"}},
	{"markets", []string{"market", "shopping", "shop", "souvenir", "bazaar"}},
	{"theaters", []string{"theater", "theatre", "opera", "concert", "show"}},
	{"nightlife", []string{"nightlife", "club", "bar", "pub"}},
	{"zoos", []string{"zoo", "aquarium", "wildlife"}},
}

func extractCategories(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	var out []string
	for _, rule := range categoryRules {
		if anyWordMatches(words, rule.keywords) {
			out = append(out, rule.category)
		}
	}
	return out
}

func anyWordMatches(words, keywords []string) bool {
	for _, w := range words {
		for _, k := range keywords {
			if prefix, ok := strings.CutSuffix(k, "*"); ok {
				if strings.HasPrefix(w, prefix) {
					return true
				}
				continue
			}
			if w == k || w == k+"s" || w == k+"es" {
				return true
			}
		}
	}
	return false
}

func extractPace(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "relax", "slow", "leisure", "chill", "easy-going", "laid back", "laid-back"):
		return "relaxed"
	case containsAny(lower, "packed", "busy", "as much as possible", "action-packed", "fast-paced", "intense"):
		return "packed"
	}
	return ""
}

func extractBudget(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "cheap", "budget", "affordable", "backpack", "low cost", "inexpensive"):
		return "low"
	case containsAny(lower, "luxury", "luxurious", "upscale", "fancy", "splurge", "high-end", "high end"):
		return "high"
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
