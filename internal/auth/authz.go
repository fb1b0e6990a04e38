package auth

// Authorization predicates. Every operation answers its access question
// through one of these instead of comparing role strings inline, so the
// rules can be tested on their own.

// CanEnroll reports whether the caller may enroll in events or manage
// their own enrollments. Only attendees can.
func CanEnroll(c Caller) bool {
	return c.Role == RoleUser
}

// CanPublishEvents reports whether the caller may create events.
func CanPublishEvents(c Caller) bool {
	return c.Role == RoleOrganizer
}

// OwnsEnrollment reports whether the caller is the attendee the
// enrollment belongs to.
func OwnsEnrollment(c Caller, enrollmentUserID string) bool {
	return c.Role == RoleUser && c.ID == enrollmentUserID
}

// OwnsEvent reports whether the caller is the organizer that created
// the event. Event ownership is immutable after creation.
func OwnsEvent(c Caller, eventOrganizerID string) bool {
	return c.Role == RoleOrganizer && c.ID == eventOrganizerID
}
