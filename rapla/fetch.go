package rapla

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"
)

// TooltipSelector matches the elements holding one lesson each.
const TooltipSelector = ".tooltip"

// Fragment is the text content of one tooltip.
type Fragment struct {
	// When is the text of the tooltip's second child, e.g.
	// "Mo 08:15-11:30 wöchentlich".
	When string

	// Cells are the texts of the tooltip's table cells in document order.
	Cells []string
}

func (f Fragment) cell(i int) string {
	if i < 0 || i >= len(f.Cells) {
		return ""
	}
	return f.Cells[i]
}

// FragmentsFromDocument returns every tooltip below s in document order.
func FragmentsFromDocument(s *goquery.Selection) []Fragment {
	var fragments []Fragment
	s.Find(TooltipSelector).Each(func(_ int, t *goquery.Selection) {
		f := Fragment{When: cleanText(t.Children().Eq(1).Text())}
		t.Find("td").Each(func(_ int, td *goquery.Selection) {
			f.Cells = append(f.Cells, cleanText(td.Text()))
		})
		fragments = append(fragments, f)
	})
	return fragments
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// WeekFetcher returns the tooltips of the week view containing a date.
type WeekFetcher interface {
	FetchWeek(link Link, monday time.Time) ([]Fragment, error)
}

type CollectorOptions struct {
	// Timeout bounds every request. Zero keeps the colly default.
	Timeout time.Duration

	UserAgent string

	// CacheDir enables colly's on-disk response cache.
	CacheDir string

	// Delay is waited between two requests.
	Delay time.Duration
}

// Collector fetches week views with colly. It is not safe for concurrent use.
type Collector struct {
	c         *colly.Collector
	fragments []Fragment
}

func NewCollector(opts CollectorOptions) (*Collector, error) {
	options := []colly.CollectorOption{colly.AllowURLRevisit()}
	if opts.UserAgent != "" {
		options = append(options, colly.UserAgent(opts.UserAgent))
	}
	if opts.CacheDir != "" {
		options = append(options, colly.CacheDir(opts.CacheDir))
	}

	col := &Collector{c: colly.NewCollector(options...)}
	if opts.Timeout > 0 {
		col.c.SetRequestTimeout(opts.Timeout)
	}
	if opts.Delay > 0 {
		if err := col.c.Limit(&colly.LimitRule{DomainGlob: "*", Delay: opts.Delay}); err != nil {
			return nil, err
		}
	}

	col.c.OnRequest(func(r *colly.Request) {
		log.Debug("Request: ", r.URL.String())
	})
	col.c.OnResponse(func(r *colly.Response) {
		log.Debug("Response Code: ", r.StatusCode)
	})
	col.c.OnHTML("html", func(e *colly.HTMLElement) {
		col.fragments = append(col.fragments, FragmentsFromDocument(e.DOM)...)
	})
	return col, nil
}

// FetchWeek fetches the week view starting at monday. Failures are returned
// as *FetchError.
func (c *Collector) FetchWeek(link Link, monday time.Time) ([]Fragment, error) {
	u := link.WithWeek(monday)
	c.fragments = nil
	if err := c.c.Visit(u); err != nil {
		c.fragments = nil
		return nil, &FetchError{Week: monday, URL: u, Err: err}
	}
	fragments := c.fragments
	c.fragments = nil
	return fragments, nil
}
