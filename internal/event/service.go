package event

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/eventful-api/eventful-backend/config"
	"github.com/eventful-api/eventful-backend/internal/auth"
	"github.com/eventful-api/eventful-backend/internal/notification"
	"github.com/eventful-api/eventful-backend/utils"
	"gorm.io/gorm"
)

const (
	eventsCacheKey = "eventful:events"
	eventsCacheTTL = 60 * time.Second
)

// UserDirectory is the slice of the auth store the enrollment flow
// needs. An unknown id is reported as gorm.ErrRecordNotFound; any other
// error means the store itself failed.
type UserDirectory interface {
	FindUserByID(ctx context.Context, id string) (*auth.User, error)
}

// Service wraps business logic for events, enrollments and check-in.
type Service struct {
	Repo     Repository
	Users    UserDirectory
	NotifSvc notification.Service

	baseURL     string
	allowRescan bool

	now func() time.Time

	// invalidateCache drops the cached event list. Every write that
	// changes what GET /events returns, ticket counts included, must
	// go through it.
	invalidateCache func(ctx context.Context)
}

func NewService(r Repository, users UserDirectory, cfg *config.Config) *Service {
	return &Service{
		Repo:        r,
		Users:       users,
		baseURL:     cfg.BaseURL,
		allowRescan: cfg.CheckinAllowRescan,
		now:         time.Now,
		invalidateCache: func(ctx context.Context) {
			utils.CacheDelete(ctx, eventsCacheKey)
		},
	}
}

// ===========================
// 🎯 Event CRUD

func (s *Service) CreateEvent(ctx context.Context, caller auth.Caller, req *CreateEventRequest) (*Event, error) {
	if !auth.CanPublishEvents(caller) {
		return nil, utils.Forbidden("Unauthorized to create events")
	}

	when, err := time.Parse(time.RFC3339, req.When)
	if err != nil {
		return nil, utils.BadRequest("invalid when format, use RFC 3339")
	}

	status := req.EventStatus
	if status == "" {
		status = StatusPending
	}
	if status != StatusPending && status != StatusScheduled && status != StatusCompleted {
		return nil, utils.BadRequest("invalid event status")
	}

	e := &Event{
		Title:            req.Title,
		Description:      req.Description,
		Venue:            req.Venue,
		When:             when,
		AvailableTickets: req.AvailableTickets,
		EventStatus:      status,
		Category:         req.Category,
		OrganizerID:      caller.ID,
	}
	if err := s.Repo.CreateEvent(ctx, e); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return e, nil
}

func (s *Service) GetAllEvents(ctx context.Context) ([]Event, error) {
	if cached := utils.CacheGet(ctx, eventsCacheKey); cached != "" {
		var events []Event
		if err := json.Unmarshal([]byte(cached), &events); err == nil {
			return events, nil
		}
	}

	events, err := s.Repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, utils.NotFound("No events scheduled")
	}

	if payload, err := json.Marshal(events); err == nil {
		utils.CacheSet(ctx, eventsCacheKey, string(payload), eventsCacheTTL)
	}
	return events, nil
}

func (s *Service) GetEvent(ctx context.Context, id string) (*Event, error) {
	e, err := s.Repo.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, utils.NotFound("Event does not exist")
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) UpdateEvent(ctx context.Context, caller auth.Caller, eventID string, req *UpdateEventRequest) (*Event, error) {
	e, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !auth.OwnsEvent(caller, e.OrganizerID) {
		return nil, utils.Forbidden("Unauthorized to make this change")
	}

	if req.When != nil {
		when, err := time.Parse(time.RFC3339, *req.When)
		if err != nil {
			return nil, utils.BadRequest("invalid when format, use RFC 3339")
		}
		e.When = when
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Venue != nil {
		e.Venue = *req.Venue
	}
	if req.AvailableTickets != nil {
		if *req.AvailableTickets < 0 {
			return nil, utils.BadRequest("availableTickets cannot be negative")
		}
		e.AvailableTickets = *req.AvailableTickets
	}
	if req.EventStatus != nil {
		status := *req.EventStatus
		if status != StatusPending && status != StatusScheduled && status != StatusCompleted {
			return nil, utils.BadRequest("invalid event status")
		}
		e.EventStatus = status
	}
	if req.Category != nil {
		e.Category = *req.Category
	}

	if err := s.Repo.UpdateEvent(ctx, e); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return e, nil
}

func (s *Service) CancelEvent(ctx context.Context, caller auth.Caller, eventID string) error {
	e, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}

	if !auth.OwnsEvent(caller, e.OrganizerID) {
		return utils.Forbidden("Unauthorized to make this change")
	}

	if err := s.Repo.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return utils.NotFound("Event does not exist")
		}
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// ===========================
// 🎟 Enrollment Engine

// EnrollUser reserves one ticket for the caller and schedules a reminder
// derived from whenToRemind ("2 hours", "1 week", ...).
func (s *Service) EnrollUser(ctx context.Context, caller auth.Caller, eventID, whenToRemind string) (*Enrollment, error) {
	if !auth.CanEnroll(caller) {
		return nil, utils.Forbidden("Unauthorized to enroll")
	}

	e, err := s.Repo.GetEventByID(ctx, eventID)
	if err != nil && !errors.Is(err, ErrEventNotFound) {
		return nil, err
	}

	user, uerr := s.Users.FindUserByID(ctx, caller.ID)
	if uerr != nil && !errors.Is(uerr, gorm.ErrRecordNotFound) {
		// Store trouble, not a bad identifier: surface it as-is so the
		// caller sees a retryable 500 instead of a validation failure.
		return nil, uerr
	}
	if e == nil || uerr != nil {
		return nil, utils.UnprocessableEntity("Invalid Event/User")
	}

	if e.AvailableTickets <= 0 {
		return nil, utils.UnprocessableEntity("Event sold out")
	}

	enrolled, err := s.Repo.HasEnrollment(ctx, caller.ID, eventID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, utils.Conflict("User already enrolled in this event")
	}

	remindAt, err := ComputeReminderTime(e.When, whenToRemind)
	if err != nil {
		return nil, err
	}
	if !remindAt.After(s.now()) {
		return nil, utils.BadRequest("reminder time is in the past")
	}

	enr := &Enrollment{
		UserID:       caller.ID,
		EventID:      eventID,
		WhenToRemind: &remindAt,
	}
	if err := s.Repo.CreateEnrollment(ctx, enr); err != nil {
		switch {
		case errors.Is(err, ErrSoldOut):
			return nil, utils.UnprocessableEntity("Event sold out")
		case errors.Is(err, ErrAlreadyEnrolled):
			return nil, utils.Conflict("User already enrolled in this event")
		default:
			return nil, err
		}
	}

	// The reservation changed the event's ticket count.
	s.invalidateCache(ctx)

	if s.NotifSvc != nil {
		msg := notification.EnrollmentMessage{
			EnrollmentID: enr.ID,
			UserEmail:    user.Email,
			UserName:     user.Name,
			EventTitle:   e.Title,
			EventWhen:    e.When,
		}
		if err := s.NotifSvc.PublishEnrollmentConfirmation(ctx, msg); err != nil {
			log.Printf("⚠️ failed to publish enrollment confirmation for %s: %v", enr.ID, err)
		}
	}

	return enr, nil
}

// CancelEnrollment deletes the caller's enrollment and refunds its ticket.
func (s *Service) CancelEnrollment(ctx context.Context, caller auth.Caller, enrollmentID string) error {
	if !auth.CanEnroll(caller) {
		return utils.Forbidden("Unauthorized to cancel enrollments")
	}

	enr, err := s.Repo.GetEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, ErrEnrollmentNotFound) {
			return utils.NotFound("Enrollment not found")
		}
		return err
	}

	if !auth.OwnsEnrollment(caller, enr.UserID) {
		return utils.Unauthorized("Enrollment does not belong to this user")
	}

	if err := s.Repo.DeleteEnrollment(ctx, enrollmentID); err != nil {
		if errors.Is(err, ErrEnrollmentNotFound) {
			return utils.NotFound("Enrollment not found")
		}
		return err
	}

	// The refund changed the event's ticket count.
	s.invalidateCache(ctx)
	return nil
}

// ===========================
// ✅ Check-in Validator
//
// No role guard here: check-in is triggered by a kiosk scanning the
// enrollment's QR code, not by an authenticated attendee session.

func (s *Service) CheckInUser(ctx context.Context, eventID, userID, enrollmentID string) error {
	enr, err := s.Repo.GetEnrollmentWithEvent(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, ErrEnrollmentNotFound) {
			return utils.NotFound("Invalid enrollment")
		}
		return err
	}

	// Both identifiers must match the enrollment; a ticket for a
	// different event or a different attendee is rejected.
	if enr.EventID != eventID || enr.UserID != userID {
		return utils.Unauthorized("Invalid enrollment")
	}

	if !sameCalendarDay(s.now(), enr.Event.When) {
		return utils.BadRequest("Cannot check in before/after event date")
	}

	if enr.QRCodeScanned && !s.allowRescan {
		return utils.Conflict("User already checked in")
	}

	if err := s.Repo.MarkQRCodeScanned(ctx, enrollmentID); err != nil {
		if errors.Is(err, ErrEnrollmentNotFound) {
			return utils.NotFound("Invalid enrollment")
		}
		return err
	}
	return nil
}

// EnrollmentQRCode renders the PNG the attendee presents at the door.
// The payload is the canonical check-in URL for this enrollment.
func (s *Service) EnrollmentQRCode(ctx context.Context, caller auth.Caller, enrollmentID string) ([]byte, error) {
	enr, err := s.Repo.GetEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, ErrEnrollmentNotFound) {
			return nil, utils.NotFound("Enrollment not found")
		}
		return nil, err
	}

	if !auth.OwnsEnrollment(caller, enr.UserID) {
		return nil, utils.Unauthorized("Enrollment does not belong to this user")
	}

	url := utils.CheckinURL(s.baseURL, enr.EventID, enr.UserID, enr.ID)
	return utils.GenerateQRCodePNG(url)
}

// sameCalendarDay compares calendar days in UTC, ignoring time of day.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
