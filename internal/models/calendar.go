package models

import (
	"cmp"
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var monthLayouts = []string{
	"2006-01",
	"2006-01-02",
	"Jan-2006",
	"January-2006",
	"Jan 2006",
	"January 2006",
	"01/2006",
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// MonthRank maps a month label to a sortable number: 1-12 for bare month
// names, year*100+month for dated labels such as "2024-03" or "Mar-2024".
func MonthRank(label string) (int, bool) {
	label = strings.TrimSpace(label)
	if m, ok := monthNames[strings.ToLower(label)]; ok {
		return int(m), true
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, label); err == nil {
			return t.Year()*100 + int(t.Month()), true
		}
	}
	return 0, false
}

// WeekdayRank maps a day label to 0 (Sunday) through 6 (Saturday).
func WeekdayRank(label string) (int, bool) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(label))]
	return int(d), ok
}

// CompareMonths orders month labels chronologically. Labels that are not
// recognised as months sort after the recognised ones, alphabetically.
func CompareMonths(a, b string) int {
	return compareRanked(a, b, MonthRank)
}

// CompareWeekdays orders day labels Sunday through Saturday, unknown labels last.
func CompareWeekdays(a, b string) int {
	return compareRanked(a, b, WeekdayRank)
}

func compareRanked(a, b string, rank func(string) (int, bool)) int {
	ra, okA := rank(a)
	rb, okB := rank(b)
	switch {
	case okA && okB:
		if c := cmp.Compare(ra, rb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
