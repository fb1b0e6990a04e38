package event

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors the service maps onto the API error taxonomy.
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrSoldOut            = errors.New("event sold out")
	ErrAlreadyEnrolled    = errors.New("user already enrolled")
)

type Repository interface {
	CreateEvent(ctx context.Context, e *Event) error
	GetEventByID(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	UpdateEvent(ctx context.Context, e *Event) error
	DeleteEvent(ctx context.Context, id string) error
	ListEventsByOrganizer(ctx context.Context, organizerID string) ([]Event, error)

	HasEnrollment(ctx context.Context, userID, eventID string) (bool, error)
	GetEnrollmentByID(ctx context.Context, id string) (*Enrollment, error)
	GetEnrollmentWithEvent(ctx context.Context, id string) (*Enrollment, error)
	ListEnrollmentsByEvent(ctx context.Context, eventID string) ([]Enrollment, error)

	// CreateEnrollment inserts the enrollment and takes one ticket as a
	// single unit of work. The decrement is a conditional UPDATE checked
	// by affected-row count, so two racing enrolls cannot both take the
	// last ticket.
	CreateEnrollment(ctx context.Context, enr *Enrollment) error

	// DeleteEnrollment removes the enrollment and refunds exactly one
	// ticket to its event, again as a single unit of work.
	DeleteEnrollment(ctx context.Context, id string) error

	MarkQRCodeScanned(ctx context.Context, enrollmentID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ===========================
// 🎯 Events

func (r *repository) CreateEvent(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) GetEventByID(ctx context.Context, id string) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).Order("\"when\" ASC").Find(&events).Error
	return events, err
}

func (r *repository) ListEventsByOrganizer(ctx context.Context, organizerID string) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("\"when\" ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) UpdateEvent(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) DeleteEvent(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Event{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// ===========================
// 🎟 Enrollments

func (r *repository) HasEnrollment(ctx context.Context, userID, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Enrollment{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) GetEnrollmentByID(ctx context.Context, id string) (*Enrollment, error) {
	var enr Enrollment
	err := r.db.WithContext(ctx).First(&enr, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &enr, nil
}

func (r *repository) GetEnrollmentWithEvent(ctx context.Context, id string) (*Enrollment, error) {
	var enr Enrollment
	err := r.db.WithContext(ctx).Preload("Event").First(&enr, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &enr, nil
}

func (r *repository) ListEnrollmentsByEvent(ctx context.Context, eventID string) ([]Enrollment, error) {
	var enrollments []Enrollment
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("enrollment_date ASC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *repository) CreateEnrollment(ctx context.Context, enr *Enrollment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional decrement: only succeeds while tickets remain. This
		// is the oversell guard; it must stay a single UPDATE so it holds
		// across multiple stateless instances.
		res := tx.Model(&Event{}).
			Where("id = ? AND available_tickets > 0", enr.EventID).
			UpdateColumn("available_tickets", gorm.Expr("available_tickets - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSoldOut
		}

		if err := tx.Create(enr).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyEnrolled
			}
			return err
		}
		return nil
	})
}

func (r *repository) DeleteEnrollment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var enr Enrollment
		if err := tx.First(&enr, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		res := tx.Delete(&Enrollment{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// A concurrent cancel got here first; nothing to refund.
			return ErrEnrollmentNotFound
		}

		return tx.Model(&Event{}).
			Where("id = ?", enr.EventID).
			UpdateColumn("available_tickets", gorm.Expr("available_tickets + 1")).Error
	})
}

func (r *repository) MarkQRCodeScanned(ctx context.Context, enrollmentID string) error {
	res := r.db.WithContext(ctx).
		Model(&Enrollment{}).
		Where("id = ?", enrollmentID).
		Update("qr_code_scanned", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEnrollmentNotFound
	}
	return nil
}
