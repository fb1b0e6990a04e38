package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/eventful-api/eventful-backend/internal/auth"
	"github.com/eventful-api/eventful-backend/utils"
)

type fakeStatsRepo struct {
	stats map[string][]EventStats
}

func (f *fakeStatsRepo) EventStatsByOrganizer(ctx context.Context, organizerID string) ([]EventStats, error) {
	return f.stats[organizerID], nil
}

func TestGetOrganizerAnalytics(t *testing.T) {
	ctx := context.Background()
	repo := &fakeStatsRepo{stats: map[string][]EventStats{
		"org-1": {
			{EventID: "ev-1", Title: "GopherCon", TotalEnrollment: 120, ScannedIn: 95},
			{EventID: "ev-2", Title: "Meetup", TotalEnrollment: 30, ScannedIn: 28},
		},
	}}
	svc := NewService(repo)

	t.Run("aggregates totals", func(t *testing.T) {
		got, err := svc.GetOrganizerAnalytics(ctx, auth.Caller{ID: "org-1", Role: auth.RoleOrganizer}, "org-1")
		if err != nil {
			t.Fatalf("GetOrganizerAnalytics: %v", err)
		}
		if got.TotalEventsOrganized != 2 {
			t.Errorf("TotalEventsOrganized = %d, want 2", got.TotalEventsOrganized)
		}
		if got.AllTimeEnrollments != 150 {
			t.Errorf("AllTimeEnrollments = %d, want 150", got.AllTimeEnrollments)
		}
	})

	t.Run("another organizer's analytics are off limits", func(t *testing.T) {
		_, err := svc.GetOrganizerAnalytics(ctx, auth.Caller{ID: "org-2", Role: auth.RoleOrganizer}, "org-1")
		var apiErr *utils.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
			t.Fatalf("error = %v, want 403", err)
		}
	})
}

func TestExportOrganizerAnalytics(t *testing.T) {
	ctx := context.Background()
	repo := &fakeStatsRepo{stats: map[string][]EventStats{
		"org-1": {{EventID: "ev-1", Title: "GopherCon", TotalEnrollment: 120, ScannedIn: 95}},
	}}
	svc := NewService(repo)
	caller := auth.Caller{ID: "org-1", Role: auth.RoleOrganizer}

	t.Run("csv", func(t *testing.T) {
		data, filename, contentType, err := svc.ExportOrganizerAnalytics(ctx, caller, "org-1", FormatCSV)
		if err != nil {
			t.Fatalf("export csv: %v", err)
		}
		if contentType != "text/csv" {
			t.Errorf("contentType = %q, want text/csv", contentType)
		}
		if !strings.HasSuffix(filename, ".csv") {
			t.Errorf("filename = %q, want .csv suffix", filename)
		}

		rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			t.Fatalf("parse csv: %v", err)
		}
		// header + one event row
		if len(rows) < 2 {
			t.Fatalf("csv has %d rows, want at least 2", len(rows))
		}
	})

	t.Run("pdf", func(t *testing.T) {
		data, _, contentType, err := svc.ExportOrganizerAnalytics(ctx, caller, "org-1", FormatPDF)
		if err != nil {
			t.Fatalf("export pdf: %v", err)
		}
		if contentType != "application/pdf" {
			t.Errorf("contentType = %q, want application/pdf", contentType)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Error("pdf output missing %PDF header")
		}
	})

	t.Run("excel", func(t *testing.T) {
		data, filename, _, err := svc.ExportOrganizerAnalytics(ctx, caller, "org-1", FormatExcel)
		if err != nil {
			t.Fatalf("export excel: %v", err)
		}
		if len(data) == 0 {
			t.Error("excel output is empty")
		}
		if !strings.HasSuffix(filename, ".xlsx") {
			t.Errorf("filename = %q, want .xlsx suffix", filename)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, _, err := svc.ExportOrganizerAnalytics(ctx, caller, "org-1", "docx")
		var apiErr *utils.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
			t.Fatalf("error = %v, want 400", err)
		}
	})
}
