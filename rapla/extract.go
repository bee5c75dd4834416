package rapla

import (
	"regexp"
	"strings"
)

// e.g. "Mo 08:15-11:30 wöchentlich"
var dayTimePattern = regexp.MustCompile(`^([A-Za-z]{2})\S* (\d{1,2}:\d{2}(?::\d{2})?)-(\d{1,2}:\d{2}(?::\d{2})?)`)

// ParseDayTime extracts the weekday token and the time range from the
// tooltip line that describes when a lesson takes place.
func ParseDayTime(text string) (weekday string, start, end Clock, ok bool) {
	m := dayTimePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", Clock{}, Clock{}, false
	}
	if start, ok = ParseClock(m[2]); !ok {
		return "", Clock{}, Clock{}, false
	}
	if end, ok = ParseClock(m[3]); !ok {
		return "", Clock{}, Clock{}, false
	}
	return m[1], start, end, true
}

// DefaultRoomPrefix is the prefix room resources carry at the institution the
// tool was written for.
const DefaultRoomPrefix = "RB"

// RoomExtractor picks the room out of a comma-separated resource list. Only
// resources starting with a fixed prefix are recognized as rooms.
type RoomExtractor struct {
	pattern *regexp.Regexp
}

// NewRoomExtractor matches resources starting with prefix, or with
// DefaultRoomPrefix if prefix is empty.
func NewRoomExtractor(prefix string) RoomExtractor {
	if prefix == "" {
		prefix = DefaultRoomPrefix
	}
	return RoomExtractor{
		pattern: regexp.MustCompile(`(?:^|[^\pL\pN])(` + regexp.QuoteMeta(prefix) + `[^,]*)`),
	}
}

// Extract returns the first room in text, or "" if there is none.
func (r RoomExtractor) Extract(text string) string {
	if r.pattern == nil {
		r = NewRoomExtractor("")
	}
	m := r.pattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

var presenterPattern = regexp.MustCompile(`^([^,]*),([^,]*)`)

// ExtractPresenter turns "Surname, Prename[, ...]" into "Prename Surname". It
// returns "" if text has no comma or either name is empty.
func ExtractPresenter(text string) string {
	m := presenterPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return ""
	}
	surname, prename := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	if surname == "" || prename == "" {
		return ""
	}
	return prename + " " + surname
}
