package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// SelectDueReminders returns every enrollment whose reminder time has
	// passed and has not been dispatched yet, joined with the attendee's
	// email and the event details. Lookup only, no mutation.
	SelectDueReminders(ctx context.Context, now time.Time) ([]ReminderJob, error)

	// MarkReminderSent stamps the dispatched marker. The IS NULL guard
	// makes the stamp first-writer-wins, so a reminder is never recorded
	// as dispatched twice.
	MarkReminderSent(ctx context.Context, enrollmentID string, at time.Time) (bool, error)

	CreateLog(ctx context.Context, log *NotificationLog) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SelectDueReminders(ctx context.Context, now time.Time) ([]ReminderJob, error) {
	var jobs []ReminderJob
	err := r.db.WithContext(ctx).
		Table("enrollments").
		Select(`enrollments.id AS enrollment_id,
			users.email AS user_email,
			users.name AS user_name,
			events.title AS event_title,
			events."when" AS event_when`).
		Joins("JOIN users ON users.id = enrollments.user_id").
		Joins("JOIN events ON events.id = enrollments.event_id").
		Where("enrollments.when_to_remind <= ? AND enrollments.reminder_sent_at IS NULL", now).
		Order("enrollments.when_to_remind ASC").
		Scan(&jobs).Error
	return jobs, err
}

func (r *repository) MarkReminderSent(ctx context.Context, enrollmentID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Table("enrollments").
		Where("id = ? AND reminder_sent_at IS NULL", enrollmentID).
		Update("reminder_sent_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CreateLog(ctx context.Context, log *NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
