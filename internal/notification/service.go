package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/eventful-api/eventful-backend/utils"
)

const sendTimeout = 10 * time.Second

type Service interface {
	// SendDueReminders runs one sweep: select everything due, dispatch
	// each reminder, mark the ones that went out. A single failed
	// delivery never aborts the rest of the batch.
	SendDueReminders(ctx context.Context) (sent, failed int, err error)

	// PublishEnrollmentConfirmation hands the confirmation off to Kafka;
	// the consumer side delivers the email.
	PublishEnrollmentConfirmation(ctx context.Context, msg EnrollmentMessage) error

	HandleEnrollmentMessage(ctx context.Context, msg EnrollmentMessage) error
}

type service struct {
	repo  Repository
	email Channel

	publish func(ctx context.Context, key string, value []byte) error
	now     func() time.Time
}

func NewService(repo Repository, email Channel) Service {
	return &service{
		repo:    repo,
		email:   email,
		publish: utils.PublishMessage,
		now:     time.Now,
	}
}

// ===========================
// ⏰ Reminder sweep

func (s *service) SendDueReminders(ctx context.Context) (int, int, error) {
	jobs, err := s.repo.SelectDueReminders(ctx, s.now())
	if err != nil {
		return 0, 0, fmt.Errorf("select due reminders: %w", err)
	}

	sent, failed := 0, 0
	for _, job := range jobs {
		// Cancellation is honored between items: the in-flight dispatch
		// finishes, the rest of the batch waits for the next sweep.
		if ctx.Err() != nil {
			return sent, failed, ctx.Err()
		}

		if err := s.dispatchReminder(ctx, job); err != nil {
			log.Printf("⚠️ reminder for enrollment %s failed: %v", job.EnrollmentID, err)
			failed++
			continue
		}
		sent++
	}
	return sent, failed, nil
}

func (s *service) dispatchReminder(ctx context.Context, job ReminderJob) error {
	subject := fmt.Sprintf("Reminder: %s", job.EventTitle)
	body := fmt.Sprintf(
		"Hello %s,\n\nThis is a reminder that %s starts at %s.\n\nSee you there!",
		job.UserName, job.EventTitle, job.EventWhen.Format(time.RFC1123),
	)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	err := s.email.Send(sendCtx, []string{job.UserEmail}, subject, body)
	s.logDelivery(sendCtx, "reminder", subject, body, []string{job.UserEmail}, err)
	if err != nil {
		// Not marked: the reminder stays selectable for the next sweep.
		return err
	}

	marked, err := s.repo.MarkReminderSent(sendCtx, job.EnrollmentID, s.now())
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	if !marked {
		log.Printf("reminder for enrollment %s already marked by another sweep", job.EnrollmentID)
	}
	return nil
}

// ===========================
// 📨 Enrollment confirmations (Kafka fan-out)

func (s *service) PublishEnrollmentConfirmation(ctx context.Context, msg EnrollmentMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.publish(ctx, msg.EnrollmentID, payload)
}

func (s *service) HandleEnrollmentMessage(ctx context.Context, msg EnrollmentMessage) error {
	subject := fmt.Sprintf("You're enrolled: %s", msg.EventTitle)
	body := fmt.Sprintf(
		"Hello %s,\n\nYou are enrolled in %s starting at %s. Your QR code is available in the app.",
		msg.UserName, msg.EventTitle, msg.EventWhen.Format(time.RFC1123),
	)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	err := s.email.Send(sendCtx, []string{msg.UserEmail}, subject, body)
	s.logDelivery(sendCtx, "enrollment_confirmation", subject, body, []string{msg.UserEmail}, err)
	return err
}

func (s *service) logDelivery(ctx context.Context, kind, subject, body string, recipients []string, sendErr error) {
	recipientsJSON, err := json.Marshal(recipients)
	if err != nil {
		return
	}

	entry := &NotificationLog{
		Channel:    "email",
		Kind:       kind,
		Subject:    subject,
		Body:       body,
		Recipients: recipientsJSON,
		Status:     "sent",
	}
	if sendErr != nil {
		entry.Status = "failed"
		msg := sendErr.Error()
		entry.Error = &msg
	}

	if err := s.repo.CreateLog(ctx, entry); err != nil {
		log.Printf("⚠️ failed to record notification log: %v", err)
	}
}
