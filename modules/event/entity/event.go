package entity

import (
	"time"

	"appointments-api/core/entity"

	"github.com/google/uuid"
)

// Event is the recurring definition: every occurrence repeats its
// start/end time-of-day and duration.
type Event struct {
	entity.BaseEntity
	CalendarID  uuid.UUID  `db:"calendar_id" json:"calendar_id"`
	CreatorID   uuid.UUID  `db:"creator_id" json:"creator_id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description,omitempty"`
	Start       time.Time  `db:"start_time" json:"start"`
	End         time.Time  `db:"end_time" json:"end"`
	RuleID      *uuid.UUID `db:"rule_id" json:"rule_id,omitempty"`
	// EndRecurringPeriod is the exclusive upper bound on recurrence.
	// Nil means the rule repeats without its own bound.
	EndRecurringPeriod *time.Time `db:"end_recurring_period" json:"end_recurring_period,omitempty"`
}

// Duration is invariant across all of the event's occurrences.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}
