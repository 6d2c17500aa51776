package service

import (
	"context"
	"testing"
	"time"

	"appointments-api/modules/event/entity"
	occentity "appointments-api/modules/occurrence/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func weeklyFixture(t *testing.T) (*OccurrenceFinder, *fakeEventRepo, *fakeOccurrenceRepo, *entity.Event) {
	t.Helper()

	events := newFakeEventRepo()
	occurrences := newFakeOccurrenceRepo()

	rule := events.addRule(&entity.Rule{Name: "weekly", Frequency: entity.FrequencyWeekly, Interval: 1})
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	event := events.addEvent(&entity.Event{
		Title:  "Standup",
		Start:  start,
		End:    start.Add(30 * time.Minute),
		RuleID: &rule.ID,
	})

	return NewOccurrenceFinder(events, occurrences), events, occurrences, event
}

func TestOccurrencesBetween_Virtual(t *testing.T) {
	t.Parallel()

	finder, _, _, event := weeklyFixture(t)

	got, err := finder.OccurrencesBetween(context.Background(), event, event.Start, event.Start.AddDate(0, 0, 28))
	require.NoError(t, err)
	require.Len(t, got, 4)

	for i, occ := range got {
		want := event.Start.AddDate(0, 0, 7*i)
		assert.True(t, occ.Start.Equal(want), "occurrence %d start", i)
		assert.True(t, occ.OriginalStart.Equal(want), "occurrence %d original start", i)
		assert.True(t, occ.End.Equal(want.Add(30*time.Minute)), "occurrence %d end", i)
		assert.False(t, occ.Persisted())
		require.NotNil(t, occ.Title)
		assert.Equal(t, "Standup", *occ.Title)
	}
}

func TestOccurrencesBetween_PersistedOverrideWins(t *testing.T) {
	t.Parallel()

	finder, _, occurrences, event := weeklyFixture(t)

	// Move the second occurrence two hours later, with a custom title.
	slot := event.Start.AddDate(0, 0, 7)
	moved := occentity.Virtual(event.ID, slot, event.Duration())
	moved.Start = slot.Add(2 * time.Hour)
	moved.End = moved.Start.Add(30 * time.Minute)
	moved.Title = strPtr("Standup (moved)")
	_, created, err := occurrences.GetOrCreate(context.Background(), &moved)
	require.NoError(t, err)
	require.True(t, created)

	got, err := finder.OccurrencesBetween(context.Background(), event, event.Start, event.Start.AddDate(0, 0, 21))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.False(t, got[0].Persisted())
	assert.True(t, got[1].Persisted())
	assert.True(t, got[1].Moved())
	assert.True(t, got[1].Start.Equal(slot.Add(2*time.Hour)))
	assert.True(t, got[1].OriginalStart.Equal(slot))
	assert.Equal(t, "Standup (moved)", *got[1].Title)
	assert.False(t, got[2].Persisted())
}

func TestOccurrencesBetween_CancelledStaysListed(t *testing.T) {
	t.Parallel()

	finder, _, occurrences, event := weeklyFixture(t)

	slot := event.Start.AddDate(0, 0, 14)
	cancelled := occentity.Virtual(event.ID, slot, event.Duration())
	cancelled.Cancelled = true
	_, _, err := occurrences.GetOrCreate(context.Background(), &cancelled)
	require.NoError(t, err)

	got, err := finder.OccurrencesBetween(context.Background(), event, event.Start, event.Start.AddDate(0, 0, 21))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[2].Cancelled)
}

func TestOccurrence_ResolvesPersistedThenVirtual(t *testing.T) {
	t.Parallel()

	finder, _, occurrences, event := weeklyFixture(t)
	ctx := context.Background()

	slot := event.Start.AddDate(0, 0, 7)

	// Virtual while nothing is persisted.
	occ, err := finder.Occurrence(ctx, event, slot)
	require.NoError(t, err)
	assert.False(t, occ.Persisted())
	assert.True(t, occ.Start.Equal(slot))

	// Materialize, then the persisted row wins.
	persisted, _, err := occurrences.GetOrCreate(ctx, occ)
	require.NoError(t, err)

	again, err := finder.Occurrence(ctx, event, slot)
	require.NoError(t, err)
	assert.True(t, again.Persisted())
	assert.Equal(t, persisted.ID, again.ID)
}

func TestOccurrence_UnknownStart(t *testing.T) {
	t.Parallel()

	finder, _, _, event := weeklyFixture(t)

	_, err := finder.Occurrence(context.Background(), event, event.Start.Add(3*time.Hour))
	assert.ErrorIs(t, err, ErrNoOccurrence)
}

func TestMergedOccurrences_StableAcrossEvents(t *testing.T) {
	t.Parallel()

	events := newFakeEventRepo()
	occurrences := newFakeOccurrenceRepo()
	finder := NewOccurrenceFinder(events, occurrences)

	calendarID := uuid.New()
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	// Two one-off events at the same instant; merge order must follow the
	// input order.
	first := events.addEvent(&entity.Event{CalendarID: calendarID, Title: "first", Start: start, End: start.Add(time.Hour)})
	second := events.addEvent(&entity.Event{CalendarID: calendarID, Title: "second", Start: start, End: start.Add(time.Hour)})
	earlier := events.addEvent(&entity.Event{CalendarID: calendarID, Title: "earlier", Start: start.Add(-time.Hour), End: start})

	got, err := finder.MergedOccurrences(context.Background(),
		[]entity.Event{*first, *second, *earlier}, start.AddDate(0, 0, -1), start.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "earlier", *got[0].Title)
	assert.Equal(t, "first", *got[1].Title)
	assert.Equal(t, "second", *got[2].Title)
}

func TestOccurrencesAfter_Horizon(t *testing.T) {
	t.Parallel()

	finder, _, _, event := weeklyFixture(t)

	after := event.Start.Add(time.Minute)
	got, err := finder.OccurrencesAfter(context.Background(), []entity.Event{*event}, after, 15*24*time.Hour)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Start.Equal(event.Start.AddDate(0, 0, 7)))
	assert.True(t, got[1].Start.Equal(event.Start.AddDate(0, 0, 14)))
}
