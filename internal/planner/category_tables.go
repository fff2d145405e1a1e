package planner

import "strings"

// Category names are free text, so every lookup below is an ordered list of
// substring predicates evaluated top to bottom. The first match wins and the
// order of the entries is significant ("art museum" must hit museum before art).

type categoryMatcher func(category string) bool

func containsAny(keywords ...string) categoryMatcher {
	return func(category string) bool {
		for _, k := range keywords {
			if strings.Contains(category, k) {
				return true
			}
		}
		return false
	}
}

type hourRule struct {
	match categoryMatcher
	hour  float64
}

type minuteRule struct {
	match   categoryMatcher
	minutes int
}

type closedDaysRule struct {
	match  categoryMatcher
	closed []int // 0=Sunday .. 6=Saturday
}

var mealKeywords = []string{
	"restaurant", "cafe", "café", "coffee", "food", "dining", "bar", "bistro",
	"bakery", "pizzeria", "pizza", "brasserie", "diner", "eatery", "pub",
	"tavern", "deli", "steakhouse", "trattoria", "brewery", "wine", "breakfast",
	"brunch",
}

const (
	defaultOpenHour  = 9.0
	defaultCloseHour = 18.0
)

var openHourRules = []hourRule{
	{containsAny("bakery", "cafe", "café", "coffee"), 7},
	{containsAny("breakfast", "brunch"), 7},
	{containsAny("bar", "wine", "pub", "nightlife"), 16},
	{containsAny("restaurant"), 11},
	{containsAny("museum", "gallery", "cultural", "historic"), 10},
	{containsAny("cinema", "theater", "theatre", "entertainment"), 14},
	{containsAny("park", "garden", "outdoor"), 6},
}

var closeHourRules = []hourRule{
	{containsAny("bakery"), 15},
	{containsAny("cafe", "café", "coffee"), 19},
	{containsAny("bar", "wine", "pub", "nightlife"), 24},
	{containsAny("restaurant"), 22},
	{containsAny("museum", "gallery"), 17},
	{containsAny("cinema", "theater", "theatre"), 23},
	{containsAny("park", "garden"), 22},
}

// Restaurants are never ruled out by category alone; a missing schedule
// should not starve the meal slots.
var closedDaysRules = []closedDaysRule{
	{containsAny("restaurant", "bistro"), nil},
	{containsAny("museum", "gallery"), []int{1}},
	{containsAny("bar", "nightlife", "club", "pub"), []int{0, 1}},
	{containsAny("government", "bank"), []int{0, 6}},
}

const (
	defaultBreakfastMinutes = 45
	defaultLunchMinutes     = 90
	defaultDinnerMinutes    = 120
	defaultActivityMinutes  = 90
)

var breakfastMinuteRules = []minuteRule{
	{containsAny("bakery"), 15},
	{containsAny("cafe", "café", "coffee"), 30},
}

var lunchMinuteRules = []minuteRule{
	{containsAny("fast", "salad"), 30},
	{containsAny("bistro", "cafe", "café"), 60},
}

var dinnerMinuteRules = []minuteRule{
	{containsAny("bar", "wine"), 120},
	{containsAny("bistro"), 90},
}

var activityMinuteRules = []minuteRule{
	{containsAny("museum"), 180},
	{containsAny("gallery"), 120},
	{containsAny("historic", "cultural"), 150},
	{containsAny("cinema", "theater", "theatre"), 150},
	{containsAny("opera"), 180},
	{containsAny("park", "garden"), 90},
	{containsAny("market", "shopping"), 120},
	{containsAny("cafe", "café", "coffee"), 45},
	{containsAny("art"), 60},
}

func lookupHour(rules []hourRule, category string, def float64) float64 {
	category = strings.ToLower(category)
	for _, r := range rules {
		if r.match(category) {
			return r.hour
		}
	}
	return def
}

func lookupMinutes(rules []minuteRule, category string, def int) int {
	category = strings.ToLower(category)
	for _, r := range rules {
		if r.match(category) {
			return r.minutes
		}
	}
	return def
}

// activityDuration returns the minutes spent at a venue in the given slot.
func activityDuration(slot SlotType, category string) int {
	switch slot {
	case SlotBreakfast:
		return lookupMinutes(breakfastMinuteRules, category, defaultBreakfastMinutes)
	case SlotLunch:
		return lookupMinutes(lunchMinuteRules, category, defaultLunchMinutes)
	case SlotDinner:
		return lookupMinutes(dinnerMinuteRules, category, defaultDinnerMinutes)
	default:
		return lookupMinutes(activityMinuteRules, category, defaultActivityMinutes)
	}
}
