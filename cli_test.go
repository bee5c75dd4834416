package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapla2csv/export"
	"rapla2csv/rapla"
)

const lessonPage = `<!DOCTYPE html>
<html><body><table class="week_table"><tr><td>
<div class="tooltip">
  <strong>Vorlesung</strong>
  <div>%s</div>
  <table>
    <tr><td>Titel:</td><td>%s</td></tr>
    <tr><td>Ressourcen:</td><td>RB221, PC3</td></tr>
    <tr><td>Personen:</td><td>Schmidt, Jan</td></tr>
  </table>
</div>
</td></tr></table></body></html>`

type calendarServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests int
}

// newCalendarServer serves one lesson on Monday 2024-10-14 and fails every
// week in broken.
func newCalendarServer(t *testing.T, broken ...string) *calendarServer {
	t.Helper()
	cs := &calendarServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.mu.Lock()
		cs.requests++
		cs.mu.Unlock()

		q := r.URL.Query()
		week := fmt.Sprintf("%s-%s-%s", q.Get("year"), q.Get("month"), q.Get("day"))
		for _, b := range broken {
			if week == b {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch week {
		case "2024-10-14":
			fmt.Fprintf(w, lessonPage, "Mo 08:15-11:30 wöchentlich", "Algorithms")
		case "2024-10-21":
			fmt.Fprintf(w, lessonPage, "Di 09:00-10:30 wöchentlich", "Datenbanken")
		default:
			fmt.Fprint(w, "<html><body></body></html>")
		}
	}))
	t.Cleanup(cs.Close)
	return cs
}

func (cs *calendarServer) link() string {
	return cs.URL + "/rapla?key=abc&today=Heute"
}

func (cs *calendarServer) requestCount() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.requests
}

// execute runs the root command with a private config file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("timezone: UTC\n"), 0644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	for _, flag := range []string{"--version", "-v"} {
		out, err := execute(t, flag)
		assert.NoError(t, err)
		assert.Equal(t, "rapla2csv version "+version, strings.TrimSpace(out))
	}
}

func TestHelpFlag(t *testing.T) {
	out, err := execute(t, "-h")
	assert.NoError(t, err)
	for _, flag := range []string{"--from", "--until", "--link", "--output", "--format", "--preview"} {
		assert.Contains(t, out, flag)
	}
}

func TestMissingRequiredFlags(t *testing.T) {
	_, err := execute(t, "-f", "2024-10-14")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestInvalidArgumentsAbortBeforeFetching(t *testing.T) {
	cs := newCalendarServer(t)
	out := filepath.Join(t.TempDir(), "rapla.csv")

	for _, tc := range []struct {
		Args []string
		Err  error
	}{
		{[]string{"-f", "14.10.2024", "-u", "2024-10-20", "-l", cs.link()}, nil},
		{[]string{"-f", "2024-10-14", "-u", "2024-13-01", "-l", cs.link()}, nil},
		{[]string{"-f", "2024-10-20", "-u", "2024-10-14", "-l", cs.link()}, rapla.ErrInvalidRange},
		{[]string{"-f", "2024-10-14", "-u", "2024-10-20", "-l", cs.URL + "/rapla?page=calendar&user=x"}, rapla.ErrInvalidLink},
		{[]string{"-f", "2024-10-14", "-u", "2024-10-20", "-l", cs.link(), "--format", "xlsx"}, nil},
	} {
		_, err := execute(t, append(tc.Args, "-o", out)...)
		require.Error(t, err, "%v", tc.Args)
		if tc.Err != nil {
			assert.True(t, errors.Is(err, tc.Err), "%v: %v", tc.Args, err)
		}
	}
	assert.Zero(t, cs.requestCount())
	assert.NoFileExists(t, out)
}

func TestExtractAndExportCSV(t *testing.T) {
	cs := newCalendarServer(t)
	path := filepath.Join(t.TempDir(), "lessons.csv")

	out, err := execute(t, "-f", "2024-10-14", "-u", "2024-10-20", "-l", cs.link(), "-o", path)
	require.NoError(t, err)

	assert.Contains(t, out, "1 lessons extracted, 0 lessons skipped")
	assert.Contains(t, out, "Export done: "+path)
	assert.Equal(t, 1, cs.requestCount())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Subject,Start Date,Start Time,End Date,End Time,Description,Location\r\n"+
		"\"Algorithms\",2024-10-14,08:15,2024-10-14,11:30,\"Jan Schmidt\",\"RB221\"\r\n", string(data))
}

func TestExtractAndExportICS(t *testing.T) {
	cs := newCalendarServer(t)
	path := filepath.Join(t.TempDir(), "lessons.ics")

	_, err := execute(t, "-f", "2024-10-14", "-u", "2024-10-27", "-l", cs.link(), "-o", path, "--format", "ics")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "BEGIN:VEVENT"))
	assert.Contains(t, string(data), "DTSTART:20241014T081500Z")
	assert.Contains(t, string(data), "DTSTART:20241022T090000Z")
}

func TestNothingToExport(t *testing.T) {
	cs := newCalendarServer(t)
	path := filepath.Join(t.TempDir(), "rapla.csv")

	out, err := execute(t, "-f", "2024-11-04", "-u", "2024-11-10", "-l", cs.link(), "-o", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, export.ErrNothingToExport))
	assert.Contains(t, out, "0 lessons extracted, 0 lessons skipped")
	assert.NoFileExists(t, path)
}

func TestFetchFailureExportsEarlierWeeks(t *testing.T) {
	cs := newCalendarServer(t, "2024-10-21")
	path := filepath.Join(t.TempDir(), "rapla.csv")

	out, err := execute(t, "-f", "2024-10-14", "-u", "2024-11-03", "-l", cs.link(), "-o", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rapla.ErrFetchFailed))
	assert.Contains(t, err.Error(), "2024-10-21")

	assert.Contains(t, out, "1 lessons extracted, 0 lessons skipped")
	assert.Equal(t, 2, cs.requestCount())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Algorithms"`)
}

func TestFetchFailureOfOnlyWeek(t *testing.T) {
	cs := newCalendarServer(t, "2024-10-14")
	path := filepath.Join(t.TempDir(), "rapla.csv")

	out, err := execute(t, "-f", "2024-10-14", "-u", "2024-10-20", "-l", cs.link(), "-o", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rapla.ErrFetchFailed), "%v", err)
	assert.Contains(t, err.Error(), "2024-10-14")

	assert.Contains(t, out, "0 lessons extracted, 0 lessons skipped")
	assert.NotContains(t, out, "Export done")
	assert.NoFileExists(t, path)
}

func TestPreviewCancelled(t *testing.T) {
	cs := newCalendarServer(t)
	path := filepath.Join(t.TempDir(), "rapla.csv")

	var previewed []rapla.Lesson
	preview = func(lessons []rapla.Lesson) (bool, error) {
		previewed = lessons
		return false, nil
	}
	t.Cleanup(func() { preview = runPreview })

	_, err := execute(t, "-f", "2024-10-14", "-u", "2024-10-20", "-l", cs.link(), "-o", path, "--preview")
	require.NoError(t, err)
	require.Len(t, previewed, 1)
	assert.NoFileExists(t, path)
}

func TestPreviewConfirmed(t *testing.T) {
	cs := newCalendarServer(t)
	path := filepath.Join(t.TempDir(), "rapla.csv")

	preview = func(lessons []rapla.Lesson) (bool, error) { return true, nil }
	t.Cleanup(func() { preview = runPreview })

	_, err := execute(t, "-f", "2024-10-14", "-u", "2024-10-20", "-l", cs.link(), "-o", path, "--preview")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestConfigFileSetsDefaults(t *testing.T) {
	cs := newCalendarServer(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "from-config.ics")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf("output: %q\nformat: ics\ntimezone: UTC\n", path)), 0644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "-f", "2024-10-14", "-u", "2024-10-20", "-l", cs.link()})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
}
