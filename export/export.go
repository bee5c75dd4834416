// Package export serializes extracted lessons for calendar software.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"rapla2csv/rapla"
)

// ErrNothingToExport is returned when there are no lessons to write.
var ErrNothingToExport = errors.New("nothing to export")

// Format encodes lessons in a calendar file format.
type Format interface {
	Encode(w io.Writer, lessons []rapla.Lesson) error
}

// FormatByName returns the format for "csv" or "ics". loc is the time zone
// the lesson times are in; it only matters for formats with absolute times.
func FormatByName(name string, loc *time.Location) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "csv":
		return CSV{}, nil
	case "ics", "ical":
		return ICS{Location: loc}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", name)
	}
}

// WriteFile encodes lessons with f and replaces the file at path. Nothing is
// written if lessons is empty.
func WriteFile(path string, f Format, lessons []rapla.Lesson) error {
	if len(lessons) == 0 {
		return ErrNothingToExport
	}

	var buf bytes.Buffer
	if err := f.Encode(&buf, lessons); err != nil {
		return fmt.Errorf("encode lessons: %w", err)
	}

	_, statErr := os.Stat(path)
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if errors.Is(statErr, os.ErrNotExist) {
		// temp files are created private
		if err := os.Chmod(path, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
