package rapla

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// LinkForm is the way a link identifies its calendar.
type LinkForm int

const (
	KeyForm LinkForm = iota + 1
	TripleForm
)

var tripleParams = []string{"page", "user", "file"}

// Link is a normalized calendar link. It only carries the parameters that
// identify the calendar; the displayed week is selected with WithWeek.
type Link struct {
	base   url.URL
	params url.Values
	form   LinkForm
}

// ParseLink validates raw and drops every query parameter that does not
// identify the calendar. A key wins over a page/user/file triple. Parameters
// with empty values count as missing.
func ParseLink(raw string) (Link, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Link{}, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return Link{}, fmt.Errorf("%w: %q is not an absolute url", ErrInvalidLink, raw)
	}

	q := u.Query()
	l := Link{base: *u, params: url.Values{}}
	l.base.RawQuery = ""
	l.base.Fragment = ""

	if key := q.Get("key"); key != "" {
		l.params.Set("key", key)
		l.form = KeyForm
		return l, nil
	}

	for _, name := range tripleParams {
		v := q.Get(name)
		if v == "" {
			return Link{}, fmt.Errorf("%w: %q has neither a key nor page, user and file parameters", ErrInvalidLink, raw)
		}
		l.params.Set(name, v)
	}
	l.form = TripleForm
	return l, nil
}

// Form reports which parameters identify the calendar.
func (l Link) Form() LinkForm {
	return l.form
}

// String returns the normalized link without week parameters.
func (l Link) String() string {
	u := l.base
	u.RawQuery = l.params.Encode()
	return u.String()
}

// WithWeek returns the URL of the week view containing d.
func (l Link) WithWeek(d time.Time) string {
	q := url.Values{}
	for k, v := range l.params {
		q[k] = append([]string(nil), v...)
	}
	q.Set("day", strconv.Itoa(d.Day()))
	q.Set("month", strconv.Itoa(int(d.Month())))
	q.Set("year", strconv.Itoa(d.Year()))

	u := l.base
	u.RawQuery = q.Encode()
	return u.String()
}
