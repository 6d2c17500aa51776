package entity

import (
	"time"

	"appointments-api/core/entity"

	"github.com/google/uuid"
)

// Well-known relation distinctions. The column is free text; callers may
// use their own tags.
const (
	DistinctionOwner = "owner"
)

// Calendar groups events under a unique, URL-safe slug.
type Calendar struct {
	entity.BaseEntity
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// CalendarRelation ties a user to a calendar with a free-text distinction.
// Inheritable relations also apply to the calendar's events.
type CalendarRelation struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CalendarID  uuid.UUID `db:"calendar_id" json:"calendar_id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Distinction string    `db:"distinction" json:"distinction"`
	Inheritable bool      `db:"inheritable" json:"inheritable"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
