package cli

import (
	"context"
	"os"
	"time"

	"timeflow/internal/api"
	"timeflow/internal/domain"
	"timeflow/internal/errors"
	"timeflow/internal/store"
)

// ReportCommand prints totals grouped by client or project
type ReportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints a report for the given period ("day", "week", "month", or
// "" for everything), grouped by client unless byProject is set.
func (c *ReportCommand) Execute(ctx context.Context, period string, byProject bool) error {
	filter, err := filterForPeriod(period, time.Now())
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if byProject {
		totals := c.app.api.ReportByProject(filter)
		if len(totals) == 0 {
			c.app.println("Nothing tracked")
			return nil
		}
		for _, total := range totals {
			c.app.printf("%-30s %-20s %10s  %s  (%d entries)\n", total.Name, total.ClientName,
				domain.FormatClock(total.TotalMillis), domain.FormatHours(total.TotalMillis), total.Entries)
		}
	} else {
		totals := c.app.api.ReportByClient(filter)
		if len(totals) == 0 {
			c.app.println("Nothing tracked")
			return nil
		}
		for _, total := range totals {
			c.app.printf("%-30s %10s  %s  (%d entries)\n", total.Name,
				domain.FormatClock(total.TotalMillis), domain.FormatHours(total.TotalMillis), total.Entries)
		}
	}

	c.app.printf("Total: %s\n", domain.FormatClock(c.app.api.TotalDuration(filter)))
	return nil
}

// CalendarCommand prints per-day totals
type CalendarCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCalendarCommand creates a new calendar command handler
func NewCalendarCommand(app *App) *CalendarCommand {
	return &CalendarCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints day totals for the given period ("day", "week", "month").
func (c *CalendarCommand) Execute(ctx context.Context, period string) error {
	if period == "" {
		period = "week"
	}
	filter, err := filterForPeriod(period, time.Now())
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	days := c.app.api.ReportByDay(filter)
	if len(days) == 0 {
		c.app.println("Nothing tracked")
		return nil
	}
	for _, day := range days {
		c.app.printf("%s  %10s  (%d entries)\n", day.Day, domain.FormatClock(day.TotalMillis), day.Entries)
	}
	return nil
}

// ExportCommand writes the CSV export
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute writes CSV for the period to the given file, or to the app's
// output stream when path is empty.
func (c *ExportCommand) Execute(ctx context.Context, period, path string) error {
	filter, err := filterForPeriod(period, time.Now())
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	out := c.app.out
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return c.errorHandler.Handle("export entries", err)
		}
		defer file.Close()
		out = file
	}

	if err := c.app.api.ExportCSV(out, filter); err != nil {
		return c.errorHandler.Handle("export entries", err)
	}
	if path != "" {
		c.app.printf("Exported to %s\n", path)
	}
	return nil
}

func filterForPeriod(period string, now time.Time) (store.Filter, error) {
	switch period {
	case "":
		return store.Filter{}, nil
	case "day":
		return api.FilterForDay(now), nil
	case "week":
		return api.FilterForWeek(now), nil
	case "month":
		return api.FilterForMonth(now), nil
	default:
		return store.Filter{}, errors.NewInvalidInputError("period", period, "expected day, week, or month")
	}
}
