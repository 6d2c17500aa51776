package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"appointments-api/modules/event/entity"
	"appointments-api/modules/event/repository"
	occentity "appointments-api/modules/occurrence/entity"
	occrepository "appointments-api/modules/occurrence/repository"
)

// ErrNoOccurrence is returned when a date is not a valid occurrence start
// for the event.
var ErrNoOccurrence = errors.New("no occurrence at that start time")

// OccurrenceFinder turns an event plus its rule into the occurrences of a
// window, substituting persisted overrides for the virtual instances they
// shadow.
type OccurrenceFinder struct {
	Events      repository.EventRepositoryInterface
	Occurrences occrepository.OccurrenceRepositoryInterface
}

func NewOccurrenceFinder(events repository.EventRepositoryInterface, occurrences occrepository.OccurrenceRepositoryInterface) *OccurrenceFinder {
	return &OccurrenceFinder{Events: events, Occurrences: occurrences}
}

// OccurrencesBetween returns the event's occurrences in
// [rangeStart, rangeEnd), ascending by original start. Each candidate the
// rule generates becomes a virtual occurrence unless a persisted row for
// the same original start overrides it.
func (f *OccurrenceFinder) OccurrencesBetween(ctx context.Context, event *entity.Event, rangeStart, rangeEnd time.Time) ([]occentity.Occurrence, error) {
	rule, err := f.ruleOf(ctx, event)
	if err != nil {
		return nil, err
	}

	candidates, err := CandidateStarts(event, rule, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	persisted, err := f.Occurrences.ListByEventBetween(ctx, event.ID, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	overrides := make(map[int64]occentity.Occurrence, len(persisted))
	for _, occ := range persisted {
		overrides[occ.OriginalStart.UnixNano()] = occ
	}

	duration := event.Duration()
	out := make([]occentity.Occurrence, 0, len(candidates))
	for _, start := range candidates {
		if occ, ok := overrides[start.UnixNano()]; ok {
			fillFromEvent(&occ, event)
			out = append(out, occ)
			continue
		}
		occ := occentity.Virtual(event.ID, start, duration)
		fillFromEvent(&occ, event)
		out = append(out, occ)
	}
	return out, nil
}

// Occurrence resolves the single occurrence anchored at originalStart:
// the persisted override when one exists, else the virtual instance when
// originalStart is a start the rule generates. ErrNoOccurrence otherwise.
func (f *OccurrenceFinder) Occurrence(ctx context.Context, event *entity.Event, originalStart time.Time) (*occentity.Occurrence, error) {
	persisted, err := f.Occurrences.GetByEventAndOriginalStart(ctx, event.ID, originalStart)
	if err != nil {
		return nil, err
	}
	if persisted != nil {
		fillFromEvent(persisted, event)
		return persisted, nil
	}

	rule, err := f.ruleOf(ctx, event)
	if err != nil {
		return nil, err
	}

	ok, err := IsCandidateStart(event, rule, originalStart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoOccurrence
	}

	occ := occentity.Virtual(event.ID, originalStart, event.Duration())
	fillFromEvent(&occ, event)
	return &occ, nil
}

// OccurrencesAfter merges the occurrences of several events into one
// ascending sequence starting at or after the given instant, looking
// ahead at most horizon. Ties keep the events' input order.
func (f *OccurrenceFinder) OccurrencesAfter(ctx context.Context, events []entity.Event, after time.Time, horizon time.Duration) ([]occentity.Occurrence, error) {
	return f.MergedOccurrences(ctx, events, after, after.Add(horizon))
}

// MergedOccurrences is the multi-event variant of OccurrencesBetween:
// one ascending-by-start sequence, stable across events.
func (f *OccurrenceFinder) MergedOccurrences(ctx context.Context, events []entity.Event, rangeStart, rangeEnd time.Time) ([]occentity.Occurrence, error) {
	var merged []occentity.Occurrence
	for i := range events {
		occurrences, err := f.OccurrencesBetween(ctx, &events[i], rangeStart, rangeEnd)
		if err != nil {
			return nil, err
		}
		merged = append(merged, occurrences...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start.Before(merged[j].Start)
	})
	return merged, nil
}

func (f *OccurrenceFinder) ruleOf(ctx context.Context, event *entity.Event) (*entity.Rule, error) {
	if event.RuleID == nil {
		return nil, nil
	}
	return f.Events.GetRuleByID(ctx, *event.RuleID)
}

// fillFromEvent defaults the occurrence's display fields to the event's
// when the row carries no override.
func fillFromEvent(occ *occentity.Occurrence, event *entity.Event) {
	if occ.Title == nil {
		title := event.Title
		occ.Title = &title
	}
	if occ.Description == nil && event.Description != nil {
		desc := *event.Description
		occ.Description = &desc
	}
}
