package event

import (
	"strconv"
	"strings"
	"time"

	"github.com/eventful-api/eventful-backend/utils"
)

// reminderUnits maps the accepted offset units to their duration.
// Singular and plural forms are both accepted, case-insensitively.
var reminderUnits = map[string]time.Duration{
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
	"week":   7 * 24 * time.Hour,
}

// ComputeReminderTime resolves a relative offset expression such as
// "2 hours" or "1 week" into the absolute instant the reminder should
// fire: eventStart minus the offset.
func ComputeReminderTime(eventStart time.Time, offsetExpression string) (time.Time, error) {
	fields := strings.Fields(strings.TrimSpace(offsetExpression))
	if len(fields) != 2 {
		return time.Time{}, utils.BadRequest("invalid reminder offset, expected \"<number> <unit>\"")
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return time.Time{}, utils.BadRequest("invalid reminder offset, expected \"<number> <unit>\"")
	}

	unit := strings.ToLower(fields[1])
	unit = strings.TrimSuffix(unit, "s")

	d, ok := reminderUnits[unit]
	if !ok {
		return time.Time{}, utils.BadRequest("invalid reminder unit")
	}

	return eventStart.Add(-time.Duration(n) * d), nil
}
