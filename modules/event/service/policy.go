package service

import (
	"context"

	calentity "appointments-api/modules/calendar/entity"
	"appointments-api/modules/event/entity"
	"appointments-api/modules/event/repository"

	"github.com/google/uuid"
)

// PermissionFunc decides whether a user may edit an event (or, with a nil
// event, create one). Supplied at module init; the default only requires
// an authenticated user.
type PermissionFunc func(event *entity.Event, userID uuid.UUID) bool

// DefaultCheckPermission grants edit rights to any authenticated user.
func DefaultCheckPermission(event *entity.Event, userID uuid.UUID) bool {
	return userID != uuid.Nil
}

// EventSelector scopes the events a caller sees for a calendar. Supplied
// at module init so deployments can filter by privacy or merge calendars.
type EventSelector interface {
	SelectEvents(ctx context.Context, calendar *calentity.Calendar) ([]entity.Event, error)
}

// CalendarEventSelector is the default selector: every event on the
// calendar, in insertion order.
type CalendarEventSelector struct {
	Events repository.EventRepositoryInterface
}

func NewCalendarEventSelector(events repository.EventRepositoryInterface) *CalendarEventSelector {
	return &CalendarEventSelector{Events: events}
}

func (s *CalendarEventSelector) SelectEvents(ctx context.Context, calendar *calentity.Calendar) ([]entity.Event, error) {
	return s.Events.GetEventsByCalendarID(ctx, calendar.ID)
}
