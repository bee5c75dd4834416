package rapla

import "time"

// weekdays lists the German weekday abbreviations used by the calendar, with
// their distance from Monday. This is a fixed table, not a locale parser.
var weekdays = [...]struct {
	token  string
	offset int
}{
	{"Mo", 0},
	{"Di", 1},
	{"Mi", 2},
	{"Do", 3},
	{"Fr", 4},
	{"Sa", 5},
	{"So", 6},
}

// ResolveWeekday returns the date of the weekday token in the week starting
// at monday. Tokens are case-sensitive.
func ResolveWeekday(monday time.Time, token string) (time.Time, bool) {
	for _, w := range weekdays {
		if w.token == token {
			return Date(monday).AddDate(0, 0, w.offset), true
		}
	}
	return time.Time{}, false
}
