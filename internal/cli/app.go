package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"timeflow/internal/api"
	"timeflow/internal/config"
	"timeflow/internal/domain"
	"timeflow/internal/errors"
)

// App bundles what every command handler needs: the session API, the
// configuration, and the output stream (swappable in tests).
type App struct {
	api    *api.API
	config *config.Config
	out    io.Writer
}

// NewApp creates an app writing to stdout.
func NewApp(apiInstance *api.API, cfg *config.Config) *App {
	return &App{api: apiInstance, config: cfg, out: os.Stdout}
}

// NewAppWithOutput creates an app writing to the given stream.
func NewAppWithOutput(apiInstance *api.API, cfg *config.Config, out io.Writer) *App {
	return &App{api: apiInstance, config: cfg, out: out}
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// parseLocalTime accepts "2006-01-02 15:04" or "2006-01-02 15:04:05" in
// the local zone and returns epoch milliseconds.
func parseLocalTime(value string) (int64, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, errors.NewInvalidInputError("time", value, `expected "YYYY-MM-DD HH:MM"`)
}

// parseLocalDay accepts "2006-01-02" in the local zone.
func parseLocalDay(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, errors.NewInvalidInputError("date", value, `expected "YYYY-MM-DD"`)
	}
	return t, nil
}

// projectLabel renders "Client / Project" for an entry, falling back to the
// raw project id when the reference dangles.
func (a *App) projectLabel(projectID string) string {
	for _, project := range a.api.Projects() {
		if project.ID != projectID {
			continue
		}
		for _, client := range a.api.Clients() {
			if client.ID == project.ClientID {
				return client.Name + " / " + project.Name
			}
		}
		return project.Name
	}
	return projectID
}

func (a *App) printEntry(entry *domain.TimeEntry) {
	start := time.UnixMilli(entry.StartTime).Format("2006-01-02 15:04:05")
	if entry.Running() {
		a.printf("%s  %s  %s  (running since %s)\n", entry.ID, a.projectLabel(entry.ProjectID), entry.Description, start)
		return
	}
	a.printf("%s  %s  %s  %s  %s\n", entry.ID, a.projectLabel(entry.ProjectID), entry.Description, start,
		domain.FormatClock(entry.DurationMillis()))
}
