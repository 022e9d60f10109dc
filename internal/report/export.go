package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"timeflow/internal/domain"
)

// ExportRow is one line of the CSV export, already rendered to strings.
type ExportRow struct {
	Date        string // dd/mm/yyyy of the start time
	Client      string
	Project     string
	Description string // raw text; quoting happens at write time
	Start       string // dd/mm/yyyy hh:mm:ss
	End         string
	Hours       string // decimal hours, two places
}

// csvHeader matches the columns the export has always used.
const csvHeader = "Fecha,Cliente,Proyecto,Descripción,Hora Inicio,Hora Fin,Duración (horas)"

// utf8BOM lets spreadsheet applications detect the encoding.
const utf8BOM = "\ufeff"

// ExportRows renders entries into export rows, preserving input order.
// Running entries are skipped; unresolvable references fall back to the
// unknown bucket.
func ExportRows(entries []domain.TimeEntry, projects []domain.Project, clients []domain.Client) []ExportRow {
	projectsByID := indexProjects(projects)
	clientsByID := indexClients(clients)

	var rows []ExportRow
	for _, entry := range entries {
		if entry.Running() {
			continue
		}

		projectName := UnknownLabel
		clientName := UnknownLabel
		if project, ok := projectsByID[entry.ProjectID]; ok {
			projectName = project.Name
			if client, ok := clientsByID[project.ClientID]; ok {
				clientName = client.Name
			}
		}

		start := time.UnixMilli(entry.StartTime)
		end := time.UnixMilli(*entry.EndTime)
		rows = append(rows, ExportRow{
			Date:        formatDate(start),
			Client:      clientName,
			Project:     projectName,
			Description: entry.Description,
			Start:       formatDateTime(start),
			End:         formatDateTime(end),
			Hours:       fmt.Sprintf("%.2f", domain.Hours(entry.DurationMillis())),
		})
	}
	return rows
}

// WriteCSV writes the export with a UTF-8 BOM and the fixed header. The
// description column is always double-quoted, with embedded quotes doubled;
// the remaining columns never contain commas or quotes.
func WriteCSV(w io.Writer, rows []ExportRow) error {
	if _, err := io.WriteString(w, utf8BOM+csvHeader+"\n"); err != nil {
		return err
	}
	for _, row := range rows {
		line := strings.Join([]string{
			row.Date,
			row.Client,
			row.Project,
			quoteField(row.Description),
			row.Start,
			row.End,
			row.Hours,
		}, ",")
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func formatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}
