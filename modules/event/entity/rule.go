package entity

import (
	"time"

	"appointments-api/core/entity"
)

// Frequency of a recurrence rule
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
)

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Rule describes how an event repeats: frequency plus interval, optionally
// bounded by a fixed count or an until date.
type Rule struct {
	entity.BaseEntity
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description,omitempty"`
	Frequency   Frequency  `db:"frequency" json:"frequency"`
	Interval    int        `db:"interval_count" json:"interval"`
	Count       *int       `db:"occurrence_count" json:"count,omitempty"`
	Until       *time.Time `db:"until" json:"until,omitempty"`
}
