package rapla

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidLink  = errors.New("invalid rapla link")
	ErrInvalidRange = errors.New("invalid date range")
	ErrFetchFailed  = errors.New("fetch failed")
)

// FetchError aborts a crawl. It matches ErrFetchFailed.
type FetchError struct {
	Week time.Time
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch week of %s (%s): %v", e.Week.Format(DateLayout), e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// UnparsableError describes a tooltip that could not be turned into a lesson.
// Crawls skip such tooltips and keep going.
type UnparsableError struct {
	Title  string
	Text   string
	Reason string
}

func (e *UnparsableError) Error() string {
	return fmt.Sprintf("lesson %q: %s: %q", e.Title, e.Reason, e.Text)
}
