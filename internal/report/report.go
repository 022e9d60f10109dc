package report

import (
	"sort"
	"time"

	"timeflow/internal/domain"
)

// UnknownLabel is the bucket name for entries whose project or client can
// no longer be resolved. Deleting a client or project leaves its entries in
// place, so reports must always have somewhere to put them.
const UnknownLabel = "Desconocido"

// ClientTotal is the tracked time attributed to one client.
type ClientTotal struct {
	ClientID    string
	Name        string
	TotalMillis int64
	Entries     int
}

// ProjectTotal is the tracked time attributed to one project.
type ProjectTotal struct {
	ProjectID   string
	Name        string
	ClientName  string
	Color       string
	TotalMillis int64
	Entries     int
}

// DayTotal is the tracked time within one local calendar day.
type DayTotal struct {
	Day         string // "2006-01-02"
	TotalMillis int64
	Entries     int
}

// TotalDuration sums the duration of the given entries in milliseconds.
// Running entries contribute nothing.
func TotalDuration(entries []domain.TimeEntry) int64 {
	var total int64
	for _, entry := range entries {
		total += entry.DurationMillis()
	}
	return total
}

// GroupByClient buckets tracked time per client. Entries whose project or
// client cannot be resolved land in the unknown bucket. Zero buckets are
// dropped and the result is ordered by total descending, then name.
func GroupByClient(entries []domain.TimeEntry, projects []domain.Project, clients []domain.Client) []ClientTotal {
	projectsByID := indexProjects(projects)
	clientsByID := indexClients(clients)

	totals := make(map[string]*ClientTotal)
	for _, entry := range entries {
		duration := entry.DurationMillis()
		if duration == 0 {
			continue
		}

		clientID := ""
		name := UnknownLabel
		if project, ok := projectsByID[entry.ProjectID]; ok {
			if client, ok := clientsByID[project.ClientID]; ok {
				clientID = client.ID
				name = client.Name
			}
		}

		bucket, ok := totals[clientID]
		if !ok {
			bucket = &ClientTotal{ClientID: clientID, Name: name}
			totals[clientID] = bucket
		}
		bucket.TotalMillis += duration
		bucket.Entries++
	}

	out := make([]ClientTotal, 0, len(totals))
	for _, bucket := range totals {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalMillis != out[j].TotalMillis {
			return out[i].TotalMillis > out[j].TotalMillis
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// GroupByProject buckets tracked time per project, carrying the client name
// and project color for presentation. Zero buckets are dropped and the
// result is ordered by total descending, then name.
func GroupByProject(entries []domain.TimeEntry, projects []domain.Project, clients []domain.Client) []ProjectTotal {
	projectsByID := indexProjects(projects)
	clientsByID := indexClients(clients)

	totals := make(map[string]*ProjectTotal)
	for _, entry := range entries {
		duration := entry.DurationMillis()
		if duration == 0 {
			continue
		}

		bucket, ok := totals[entry.ProjectID]
		if !ok {
			bucket = &ProjectTotal{ProjectID: entry.ProjectID, Name: UnknownLabel, ClientName: UnknownLabel}
			if project, pok := projectsByID[entry.ProjectID]; pok {
				bucket.Name = project.Name
				bucket.Color = project.Color
				if client, cok := clientsByID[project.ClientID]; cok {
					bucket.ClientName = client.Name
				}
			}
			totals[entry.ProjectID] = bucket
		}
		bucket.TotalMillis += duration
		bucket.Entries++
	}

	out := make([]ProjectTotal, 0, len(totals))
	for _, bucket := range totals {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalMillis != out[j].TotalMillis {
			return out[i].TotalMillis > out[j].TotalMillis
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// GroupByDay buckets tracked time by the local calendar day each entry
// started in, ordered chronologically. Zero buckets are dropped.
func GroupByDay(entries []domain.TimeEntry) []DayTotal {
	totals := make(map[string]*DayTotal)
	for _, entry := range entries {
		duration := entry.DurationMillis()
		if duration == 0 {
			continue
		}

		day := time.UnixMilli(entry.StartTime).Format("2006-01-02")
		bucket, ok := totals[day]
		if !ok {
			bucket = &DayTotal{Day: day}
			totals[day] = bucket
		}
		bucket.TotalMillis += duration
		bucket.Entries++
	}

	out := make([]DayTotal, 0, len(totals))
	for _, bucket := range totals {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

func indexProjects(projects []domain.Project) map[string]domain.Project {
	byID := make(map[string]domain.Project, len(projects))
	for _, project := range projects {
		byID[project.ID] = project
	}
	return byID
}

func indexClients(clients []domain.Client) map[string]domain.Client {
	byID := make(map[string]domain.Client, len(clients))
	for _, client := range clients {
		byID[client.ID] = client
	}
	return byID
}
