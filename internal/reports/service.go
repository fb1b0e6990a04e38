package reports

import (
	"context"

	"github.com/eventful-api/eventful-backend/internal/auth"
	"github.com/eventful-api/eventful-backend/utils"
)

type Service struct {
	Repo     Repository
	Exporter ReportExporter
}

func NewService(r Repository) *Service {
	return &Service{
		Repo:     r,
		Exporter: NewReportExporter(),
	}
}

// GetOrganizerAnalytics returns the dashboard stats for one organizer.
// Organizers can only look at their own numbers.
func (s *Service) GetOrganizerAnalytics(ctx context.Context, caller auth.Caller, organizerID string) (*OrganizerAnalytics, error) {
	if !auth.OwnsEvent(caller, organizerID) {
		return nil, utils.Forbidden("Not authorized to access this route")
	}

	stats, err := s.Repo.EventStatsByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	analytics := &OrganizerAnalytics{
		TotalEventsOrganized: len(stats),
		IndividualEventStats: stats,
	}
	for _, st := range stats {
		analytics.AllTimeEnrollments += st.TotalEnrollment
	}
	return analytics, nil
}

// ExportOrganizerAnalytics renders the analytics as csv, pdf or excel.
func (s *Service) ExportOrganizerAnalytics(ctx context.Context, caller auth.Caller, organizerID, format string) ([]byte, string, string, error) {
	analytics, err := s.GetOrganizerAnalytics(ctx, caller, organizerID)
	if err != nil {
		return nil, "", "", err
	}
	return s.Exporter.Export(format, *analytics)
}
