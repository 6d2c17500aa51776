package service

import (
	"testing"
	"time"

	"appointments-api/modules/event/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestCandidateStarts_NoRule(t *testing.T) {
	t.Parallel()

	start := time.Date(2008, 10, 30, 9, 21, 57, 0, time.UTC)
	event := &entity.Event{Start: start, End: start.Add(time.Hour)}

	got, err := CandidateStarts(event, nil, start.AddDate(0, 0, -1), start.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Equal(start))

	got, err = CandidateStarts(event, nil, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCandidateStarts_WindowStartExclusiveEnd(t *testing.T) {
	t.Parallel()

	start := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	event := &entity.Event{Start: start, End: start.Add(time.Hour)}

	// The event's start sits exactly on the window end; half-open means
	// it is excluded.
	got, err := CandidateStarts(event, nil, start.AddDate(0, 0, -7), start)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCandidateStarts_WeeklyInterval(t *testing.T) {
	t.Parallel()

	start := time.Date(2008, 1, 5, 8, 0, 0, 0, time.UTC)
	event := &entity.Event{Start: start, End: start.Add(time.Hour)}
	rule := &entity.Rule{Frequency: entity.FrequencyWeekly, Interval: 2}

	got, err := CandidateStarts(event, rule, start, start.AddDate(0, 0, 57))
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, c := range got {
		want := start.AddDate(0, 0, 14*i)
		assert.True(t, c.Equal(want), "candidate %d: got %v, want %v", i, c, want)
	}
}

func TestCandidateStarts_CountLimit(t *testing.T) {
	t.Parallel()

	start := time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)
	event := &entity.Event{Start: start, End: start.Add(30 * time.Minute)}
	rule := &entity.Rule{Frequency: entity.FrequencyDaily, Interval: 1, Count: intPtr(3)}

	got, err := CandidateStarts(event, rule, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestCandidateStarts_UntilLimit(t *testing.T) {
	t.Parallel()

	start := time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)
	until := start.AddDate(0, 0, 4)
	event := &entity.Event{Start: start, End: start.Add(30 * time.Minute)}
	rule := &entity.Rule{Frequency: entity.FrequencyDaily, Interval: 1, Until: &until}

	got, err := CandidateStarts(event, rule, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	// Until is inclusive in RFC 5545 terms: days 1 through 5.
	assert.Len(t, got, 5)
}

func TestCandidateStarts_EndRecurringPeriodTruncates(t *testing.T) {
	t.Parallel()

	start := time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)
	cutoff := start.AddDate(0, 0, 3)
	event := &entity.Event{Start: start, End: start.Add(30 * time.Minute), EndRecurringPeriod: &cutoff}
	rule := &entity.Rule{Frequency: entity.FrequencyDaily, Interval: 1}

	got, err := CandidateStarts(event, rule, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	// The cutoff is exclusive: days 1, 2, 3 survive, day 4 starts exactly
	// at the cutoff and is dropped.
	require.Len(t, got, 3)
	assert.True(t, got[2].Equal(start.AddDate(0, 0, 2)))
}

func TestCandidateStarts_EmptyWindow(t *testing.T) {
	t.Parallel()

	start := time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)
	event := &entity.Event{Start: start, End: start.Add(time.Hour)}

	got, err := CandidateStarts(event, nil, start, start)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIsCandidateStart(t *testing.T) {
	t.Parallel()

	start := time.Date(2008, 1, 5, 8, 0, 0, 0, time.UTC)
	event := &entity.Event{Start: start, End: start.Add(time.Hour)}
	rule := &entity.Rule{Frequency: entity.FrequencyWeekly, Interval: 1}

	ok, err := IsCandidateStart(event, rule, start.AddDate(0, 0, 21))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsCandidateStart(event, rule, start.AddDate(0, 0, 20))
	require.NoError(t, err)
	assert.False(t, ok)

	// Off by an hour is not an occurrence start.
	ok, err = IsCandidateStart(event, rule, start.AddDate(0, 0, 7).Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsCandidateStart_NoRule(t *testing.T) {
	t.Parallel()

	start := time.Date(2008, 1, 5, 8, 0, 0, 0, time.UTC)
	event := &entity.Event{Start: start, End: start.Add(time.Hour)}

	ok, err := IsCandidateStart(event, nil, start)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsCandidateStart(event, nil, start.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsCandidateStart_AfterEndRecurringPeriod(t *testing.T) {
	t.Parallel()

	start := time.Date(2008, 1, 5, 8, 0, 0, 0, time.UTC)
	cutoff := start.AddDate(0, 0, 14)
	event := &entity.Event{Start: start, End: start.Add(time.Hour), EndRecurringPeriod: &cutoff}
	rule := &entity.Rule{Frequency: entity.FrequencyWeekly, Interval: 1}

	ok, err := IsCandidateStart(event, rule, start.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.True(t, ok)

	// The cutoff itself is excluded.
	ok, err = IsCandidateStart(event, rule, cutoff)
	require.NoError(t, err)
	assert.False(t, ok)
}
