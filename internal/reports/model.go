package reports

// Export formats
const (
	FormatCSV   = "csv"
	FormatPDF   = "pdf"
	FormatExcel = "excel"
)

// EventStats is the per-event enrollment summary shown to organizers.
type EventStats struct {
	EventID         string `json:"event_id"`
	Title           string `json:"title"`
	TotalEnrollment int    `json:"totalEnrollment"`
	ScannedIn       int    `json:"scannedIn"`
}

// OrganizerAnalytics aggregates everything an organizer sees on their
// dashboard.
type OrganizerAnalytics struct {
	TotalEventsOrganized int          `json:"totalEventsOrganized"`
	AllTimeEnrollments   int          `json:"allTimeEnrollments"`
	IndividualEventStats []EventStats `json:"individualEventsStats"`
}
