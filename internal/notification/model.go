package notification

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationLog - each actual message sent
type NotificationLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Channel    string         `gorm:"size:20;not null" json:"channel"` // email
	Kind       string         `gorm:"size:30;not null" json:"kind"`    // reminder, enrollment_confirmation
	Subject    string         `gorm:"size:255" json:"subject,omitempty"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Recipients datatypes.JSON `gorm:"type:jsonb;not null" json:"recipients"`
	Status     string         `gorm:"size:20;default:'pending'" json:"status"`
	Error      *string        `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// ReminderJob is one due reminder joined with everything needed to
// compose the email: the attendee's address and the event details.
type ReminderJob struct {
	EnrollmentID string    `json:"enrollment_id"`
	UserEmail    string    `json:"user_email"`
	UserName     string    `json:"user_name"`
	EventTitle   string    `json:"event_title"`
	EventWhen    time.Time `json:"event_when"`
}

// EnrollmentMessage is the Kafka payload published when an attendee
// enrolls; the consumer turns it into a confirmation email.
type EnrollmentMessage struct {
	EnrollmentID string    `json:"enrollment_id"`
	UserEmail    string    `json:"user_email"`
	UserName     string    `json:"user_name"`
	EventTitle   string    `json:"event_title"`
	EventWhen    time.Time `json:"event_when"`
}
