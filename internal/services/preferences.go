package services

import (
	"context"
	"strings"

	"tripgen/internal/planner"
)

// PreferenceExtractor turns a free-text request into structured preferences.
// Implementations may leave fields empty; NormalizePreferences fills them.
type PreferenceExtractor interface {
	Extract(ctx context.Context, text string) (planner.Preferences, error)
}

type PreferenceDefaults struct {
	Categories []string
	Location   string
	Duration   int
	Pace       string
	Budget     string
	MaxDays    int
}

// DefaultPreferences is the bundle used when extraction fails outright.
func (d PreferenceDefaults) DefaultPreferences() planner.Preferences {
	return planner.Preferences{
		Categories: append([]string(nil), d.Categories...),
		Location:   d.Location,
		Duration:   d.Duration,
		Pace:       d.Pace,
		Budget:     d.Budget,
	}
}

func (d PreferenceDefaults) withFallbacks() PreferenceDefaults {
	if len(d.Categories) == 0 {
		d.Categories = []string{"museums", "parks", "historic sites"}
	}
	if d.Location == "" {
		d.Location = "New York, NY"
	}
	if d.Duration <= 0 {
		d.Duration = 3
	}
	if d.Pace == "" {
		d.Pace = "moderate"
	}
	if d.Budget == "" {
		d.Budget = "moderate"
	}
	if d.MaxDays <= 0 {
		d.MaxDays = 14
	}
	return d
}

// NormalizePreferences trims and dedupes categories and fills every empty
// field from d. Duration ends up in [1, d.MaxDays].
func NormalizePreferences(p planner.Preferences, d PreferenceDefaults) planner.Preferences {
	d = d.withFallbacks()

	seen := make(map[string]bool, len(p.Categories))
	cats := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		cats = append(cats, c)
	}
	if len(cats) == 0 {
		cats = append(cats, d.Categories...)
	}
	p.Categories = cats

	p.Location = strings.TrimSpace(p.Location)
	if p.Location == "" {
		p.Location = d.Location
	}

	if p.Duration <= 0 {
		p.Duration = d.Duration
	}
	if p.Duration > d.MaxDays {
		p.Duration = d.MaxDays
	}

	p.Pace = strings.ToLower(strings.TrimSpace(p.Pace))
	if p.Pace == "" {
		p.Pace = d.Pace
	}
	p.Budget = strings.ToLower(strings.TrimSpace(p.Budget))
	if p.Budget == "" {
		p.Budget = d.Budget
	}
	return p
}

// extractedPreferences is the JSON shape both LLM extractors are asked for.
type extractedPreferences struct {
	Categories []string `json:"categories"`
	Location   string   `json:"location"`
	Duration   int      `json:"duration"`
	Pace       string   `json:"pace"`
	Budget     string   `json:"budget"`
}

func (e extractedPreferences) toPreferences() planner.Preferences {
	return planner.Preferences{
		Categories: e.Categories,
		Location:   e.Location,
		Duration:   e.Duration,
		Pace:       e.Pace,
		Budget:     e.Budget,
	}
}

const extractionInstruction = `Extract travel preferences from the user's request.
Return JSON only, matching exactly:
{"categories": ["museums", "parks"], "location": "City, Region", "duration": 3, "pace": "relaxed|moderate|packed", "budget": "low|moderate|high"}
Rules:
- categories are short plural place types a places search understands (museums, parks, art galleries, historic sites, markets, beaches, nightlife). Do not include meals.
- duration is the number of days, 1 if not stated, 2 for a weekend, 7 for a week.
- Use empty strings for anything not mentioned.
No comments, no markdown.`
