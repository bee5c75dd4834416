package export

import (
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"rapla2csv/rapla"
)

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/rapla/rapla"))

// ICS writes an iCalendar file with one event per lesson.
type ICS struct {
	// Location is the zone of the lesson times. Defaults to UTC.
	Location *time.Location

	// Now stamps the events. Defaults to time.Now.
	Now func() time.Time
}

func (f ICS) Encode(w io.Writer, lessons []rapla.Lesson) error {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	stamp := now()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//rapla2csv//Rapla Export//EN")
	cal.SetXWRTimezone(loc.String())

	for _, l := range lessons {
		start, end := l.Start(loc), l.End(loc)

		ev := cal.AddEvent(eventUID(l, start))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(l.Title)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		if l.Room != "" {
			ev.SetLocation(l.Room)
		}
		if l.Presenter != "" {
			ev.SetDescription(l.Presenter)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// eventUID is the same for a lesson in every export.
func eventUID(l rapla.Lesson, start time.Time) string {
	name := l.Title + "\x00" + start.UTC().Format(time.RFC3339) + "\x00" + l.Room
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@rapla2csv"
}
