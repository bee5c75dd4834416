package rapla

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the textual form of calendar dates on the command line and in
// exported files.
const DateLayout = "2006-01-02"

// Clock is a time of day as printed in the calendar tooltips.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ParseClock parses H:MM, HH:MM or HH:MM:SS.
func ParseClock(s string) (Clock, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Clock{}, false
	}
	if n := len(parts[0]); n < 1 || n > 2 {
		return Clock{}, false
	}
	for _, p := range parts[1:] {
		if len(p) != 2 {
			return Clock{}, false
		}
	}

	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Clock{}, false
		}
		v[i] = n
	}

	c := Clock{Hour: v[0], Minute: v[1], Second: v[2]}
	if c.Hour > 23 || c.Minute > 59 || c.Second > 59 {
		return Clock{}, false
	}
	return c, true
}

// String formats c as HH:MM, or HH:MM:SS if it has seconds.
func (c Clock) String() string {
	if c.Second != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
	}
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the instant of c on the calendar date d in loc.
func (c Clock) On(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour, c.Minute, c.Second, 0, loc)
}

// Lesson is a single scheduled lesson. The calendar has no multi-day
// lessons, so EndDate always equals StartDate.
type Lesson struct {
	Title     string
	StartDate time.Time
	EndDate   time.Time
	StartTime Clock
	EndTime   Clock
	Presenter string
	Room      string
}

func (l Lesson) Start(loc *time.Location) time.Time {
	return l.StartTime.On(l.StartDate, loc)
}

func (l Lesson) End(loc *time.Location) time.Time {
	return l.EndTime.On(l.EndDate, loc)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// Date strips the clock and zone from t, leaving a UTC midnight.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MondayOf returns the Monday on or before t.
func MondayOf(t time.Time) time.Time {
	d := Date(t)
	return d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From  time.Time
	Until time.Time
}

func (r DateRange) Contains(d time.Time) bool {
	d = Date(d)
	return !d.Before(Date(r.From)) && !d.After(Date(r.Until))
}

func (r DateRange) String() string {
	return r.From.Format(DateLayout) + ".." + r.Until.Format(DateLayout)
}
