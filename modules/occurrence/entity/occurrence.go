package entity

import (
	"time"

	"github.com/google/uuid"
)

// Occurrence is one concrete time slot of an event, logically keyed by
// (event_id, original_start). A row exists only once the slot has been
// modified (moved, annotated or cancelled); until then occurrences are
// virtual and computed on the fly.
type Occurrence struct {
	ID          uuid.UUID `db:"id" json:"id"`
	EventID     uuid.UUID `db:"event_id" json:"event_id"`
	Title       *string   `db:"title" json:"title,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	Start       time.Time `db:"start_time" json:"start"`
	End         time.Time `db:"end_time" json:"end"`
	// OriginalStart/OriginalEnd anchor the occurrence to the slot the
	// event's rule generated; moving the occurrence never changes them.
	OriginalStart time.Time `db:"original_start" json:"original_start"`
	OriginalEnd   time.Time `db:"original_end" json:"original_end"`
	Cancelled     bool      `db:"cancelled" json:"cancelled"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Virtual builds the unpersisted occurrence for a generated start time.
func Virtual(eventID uuid.UUID, start time.Time, duration time.Duration) Occurrence {
	end := start.Add(duration)
	return Occurrence{
		EventID:       eventID,
		Start:         start,
		End:           end,
		OriginalStart: start,
		OriginalEnd:   end,
	}
}

// Persisted reports whether a row backs this occurrence.
func (o *Occurrence) Persisted() bool {
	return o.ID != uuid.Nil
}

// Moved reports whether the occurrence was rescheduled away from its
// generated slot.
func (o *Occurrence) Moved() bool {
	return !o.Start.Equal(o.OriginalStart) || !o.End.Equal(o.OriginalEnd)
}
