package rapla

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Request is a validated extraction request.
type Request struct {
	Range DateRange
	Link  Link
}

// NewRequest checks the range and normalizes the link. It does not touch the
// network.
func NewRequest(from, until time.Time, rawLink string) (Request, error) {
	from, until = Date(from), Date(until)
	if from.After(until) {
		return Request{}, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, from.Format(DateLayout), until.Format(DateLayout))
	}
	link, err := ParseLink(rawLink)
	if err != nil {
		return Request{}, err
	}
	return Request{Range: DateRange{From: from, Until: until}, Link: link}, nil
}

// Stats counts what a crawl did with the tooltips it saw. Tooltips outside the
// requested range are not part of Total.
type Stats struct {
	Total      int
	Skipped    int
	OutOfRange int
}

func (s Stats) Accepted() int {
	return s.Total - s.Skipped
}

func (s Stats) String() string {
	return fmt.Sprintf("%d lessons extracted, %d lessons skipped", s.Accepted(), s.Skipped)
}

// Result is everything a crawl produced. Lessons are ordered by week, then by
// their position in the week view.
type Result struct {
	Lessons []Lesson
	Stats   Stats
	Weeks   int
}

// Crawler walks a date range one week view at a time.
type Crawler struct {
	Fetcher WeekFetcher
	Parser  *Parser
	Log     log.FieldLogger
}

// Crawl fetches every week overlapping req.Range. A failed fetch stops the
// crawl; the lessons of the weeks before it are returned along with the
// error.
func (c *Crawler) Crawl(req Request) (*Result, error) {
	logger := c.Log
	if logger == nil {
		logger = log.StandardLogger()
	}
	parser := c.Parser
	if parser == nil {
		parser = NewParser("")
	}

	res := &Result{}
	for monday := MondayOf(req.Range.From); !monday.After(req.Range.Until); monday = monday.AddDate(0, 0, 7) {
		wlog := logger.WithField("week", monday.Format(DateLayout))

		fragments, err := c.Fetcher.FetchWeek(req.Link, monday)
		if err != nil {
			if !errors.Is(err, ErrFetchFailed) {
				err = &FetchError{Week: monday, URL: req.Link.WithWeek(monday), Err: err}
			}
			wlog.WithError(err).Error("Aborting crawl")
			return res, err
		}
		res.Weeks++
		wlog.WithField("fragments", len(fragments)).Debug("Fetched week")

		for _, f := range fragments {
			lesson, outcome, err := parser.Parse(f, monday, req.Range)
			switch outcome {
			case Accepted:
				res.Stats.Total++
				res.Lessons = append(res.Lessons, lesson)
			case OutOfRange:
				res.Stats.OutOfRange++
			case Unparsable:
				res.Stats.Total++
				res.Stats.Skipped++
				wlog.Warn("Skipping ", err)
			}
		}
	}
	return res, nil
}
