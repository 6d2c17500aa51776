package service

import (
	"fmt"
	"time"
)

// Kind names a period granularity
type Kind string

const (
	KindDay   Kind = "day"
	KindWeek  Kind = "week"
	KindMonth Kind = "month"
	KindYear  Kind = "year"
)

// ParseKind validates a granularity string
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDay, KindWeek, KindMonth, KindYear:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown period kind %q", s)
}

// Window is the half-open [Start, End) span of one period. firstDay is
// the weekday that begins a week, 0=Sunday .. 6=Saturday; it only affects
// week windows but travels with the window so Next and Prev stay
// consistent.
type Window struct {
	Kind     Kind
	Start    time.Time
	End      time.Time
	firstDay int
}

// NewWindow computes the period window containing ref.
func NewWindow(kind Kind, ref time.Time, firstDay int) Window {
	loc := ref.Location()
	var start, end time.Time

	switch kind {
	case KindDay:
		start = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 1)
	case KindWeek:
		midnight := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)
		delta := (int(ref.Weekday()) - firstDay + 7) % 7
		start = midnight.AddDate(0, 0, -delta)
		end = start.AddDate(0, 0, 7)
	case KindMonth:
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
	case KindYear:
		start = time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0)
	}

	return Window{Kind: kind, Start: start, End: end, firstDay: firstDay}
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Next returns the window immediately after this one
func (w Window) Next() Window {
	return NewWindow(w.Kind, w.End, w.firstDay)
}

// Prev returns the window immediately before this one
func (w Window) Prev() Window {
	return NewWindow(w.Kind, w.Start.Add(-time.Nanosecond), w.firstDay)
}

// Name is a human label for the window: the weekday for a day, the month
// name for a month, and so on.
func (w Window) Name() string {
	switch w.Kind {
	case KindDay:
		return w.Start.Weekday().String()
	case KindWeek:
		return "Week of " + w.Start.Format("January 2, 2006")
	case KindMonth:
		return w.Start.Month().String()
	case KindYear:
		return w.Start.Format("2006")
	}
	return ""
}
