package export

import (
	"bufio"
	"io"
	"strings"

	"rapla2csv/rapla"
)

const csvHeader = "Subject,Start Date,Start Time,End Date,End Time,Description,Location"

// CSV is the comma-separated layout calendar programs import: text columns
// are always quoted, dates and times never are, lines end in CRLF.
type CSV struct{}

func (CSV) Encode(w io.Writer, lessons []rapla.Lesson) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(csvHeader + "\r\n")
	for _, l := range lessons {
		bw.WriteString(strings.Join([]string{
			quote(l.Title),
			l.StartDate.Format(rapla.DateLayout),
			l.StartTime.String(),
			l.EndDate.Format(rapla.DateLayout),
			l.EndTime.String(),
			quote(l.Presenter),
			quote(l.Room),
		}, ",") + "\r\n")
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
