package reports

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	EventStatsByOrganizer(ctx context.Context, organizerID string) ([]EventStats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) EventStatsByOrganizer(ctx context.Context, organizerID string) ([]EventStats, error) {
	var stats []EventStats

	query := `
SELECT events.id AS event_id,
       events.title,
       COUNT(enrollments.id) AS total_enrollment,
       COUNT(enrollments.id) FILTER (WHERE enrollments.qr_code_scanned) AS scanned_in
FROM events
LEFT JOIN enrollments ON enrollments.event_id = events.id
WHERE events.organizer_id = ?
GROUP BY events.id, events.title
ORDER BY events.title`

	err := r.db.WithContext(ctx).Raw(query, organizerID).Scan(&stats).Error
	return stats, err
}
