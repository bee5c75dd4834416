package rapla

import "time"

// Outcome is the verdict on a single tooltip.
type Outcome int

const (
	Accepted Outcome = iota
	OutOfRange
	Unparsable
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case OutOfRange:
		return "out of range"
	case Unparsable:
		return "unparsable"
	default:
		return "unknown"
	}
}

// Parser turns tooltips into lessons.
type Parser struct {
	Rooms RoomExtractor
}

// NewParser returns a parser that takes rooms from resources starting with
// roomPrefix.
func NewParser(roomPrefix string) *Parser {
	return &Parser{Rooms: NewRoomExtractor(roomPrefix)}
}

// Parse interprets f as a lesson in the week starting at monday. The error is
// an *UnparsableError and is only set together with Unparsable.
func (p *Parser) Parse(f Fragment, monday time.Time, r DateRange) (Lesson, Outcome, error) {
	title := f.cell(1)
	token, start, end, ok := ParseDayTime(f.When)
	if !ok {
		return Lesson{}, Unparsable, &UnparsableError{Title: title, Text: f.When, Reason: "no weekday and time range"}
	}

	date, ok := ResolveWeekday(monday, token)
	if !ok {
		return Lesson{}, Unparsable, &UnparsableError{Title: title, Text: f.When, Reason: "unknown weekday " + token}
	}
	if !r.Contains(date) {
		return Lesson{}, OutOfRange, nil
	}
	if len(f.Cells) < 3 {
		return Lesson{}, Unparsable, &UnparsableError{Title: title, Text: f.When, Reason: "tooltip has too few cells"}
	}
	room := p.Rooms.Extract(f.cell(len(f.Cells) - 3))
	presenter := ExtractPresenter(f.cell(len(f.Cells) - 1))

	return Lesson{
		Title:     title,
		StartDate: date,
		EndDate:   date,
		StartTime: start,
		EndTime:   end,
		Presenter: presenter,
		Room:      room,
	}, Accepted, nil
}
