package event

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event status values
const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
)

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string    `gorm:"type:varchar(255);not null" json:"title"`
	Description      string    `gorm:"type:text" json:"description"`
	Venue            string    `gorm:"type:varchar(255);not null" json:"venue"`
	When             time.Time `gorm:"not null;index" json:"when"`
	AvailableTickets int       `gorm:"not null" json:"availableTickets"`
	EventStatus      string    `gorm:"type:varchar(20);not null;default:'pending'" json:"eventStatus"`
	Category         string    `gorm:"type:varchar(100)" json:"category"`
	OrganizerID      string    `gorm:"type:uuid;not null;index" json:"organizerId"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ============================
// 🔷 GORM Enrollment Model
//
// (user_id, event_id) is unique while the enrollment is active; the
// composite index is the last line of defense against duplicate enrolls
// racing past the service-level check.
type Enrollment struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         string     `gorm:"type:uuid;not null;index:idx_user_event,unique" json:"userId"`
	EventID        string     `gorm:"type:uuid;not null;index:idx_user_event,unique" json:"eventId"`
	EnrollmentDate time.Time  `gorm:"autoCreateTime" json:"enrollmentDate"`
	WhenToRemind   *time.Time `gorm:"index" json:"whenToRemind,omitempty"`
	ReminderSentAt *time.Time `json:"reminderSentAt,omitempty"`
	QRCodeScanned  bool       `gorm:"default:false" json:"QRCodeScanned"`

	Event Event `gorm:"foreignKey:EventID" json:"-"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description" binding:"required"`
	Venue            string `json:"venue" binding:"required"`
	When             string `json:"when" binding:"required"` // RFC 3339
	AvailableTickets int    `json:"availableTickets" binding:"required,min=1"`
	EventStatus      string `json:"eventStatus,omitempty"`
	Category         string `json:"category" binding:"required"`
}

// ============================
// 🟠 Update Event Request
type UpdateEventRequest struct {
	Title            *string `json:"title,omitempty"`
	Description      *string `json:"description,omitempty"`
	Venue            *string `json:"venue,omitempty"`
	When             *string `json:"when,omitempty"`
	AvailableTickets *int    `json:"availableTickets,omitempty"`
	EventStatus      *string `json:"eventStatus,omitempty"`
	Category         *string `json:"category,omitempty"`
}

// ============================
// 🟢 Enroll Request
type EnrollRequest struct {
	WhenToRemind string `json:"whenToRemind" binding:"required"` // e.g. "2 hours"
}
