package entity

import (
	"time"

	"github.com/google/uuid"
)

// Well-known relation distinctions. The column is free text on purpose:
// callers may tag relations however they like.
const (
	DistinctionCreator   = "creator"
	DistinctionAttendee  = "attendee"
	DistinctionOrganiser = "organiser"
)

// EventRelation ties a user to an event with a free-text distinction.
// Duplicates are allowed (an event has many attendees).
type EventRelation struct {
	ID          uuid.UUID `db:"id" json:"id"`
	EventID     uuid.UUID `db:"event_id" json:"event_id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Distinction string    `db:"distinction" json:"distinction"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
