package service

import (
	"context"
	"testing"
	"time"

	"appointments-api/core/config"
	"appointments-api/core/errors"
	"appointments-api/core/params"
	calentity "appointments-api/modules/calendar/entity"
	"appointments-api/modules/event/dto"
	"appointments-api/modules/event/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCalendarRepo serves one calendar by slug
type fakeCalendarRepo struct {
	calendar *calentity.Calendar
}

func (f *fakeCalendarRepo) CreateCalendar(_ context.Context, c *calentity.Calendar) (*calentity.Calendar, error) {
	return c, nil
}

func (f *fakeCalendarRepo) GetCalendarByID(_ context.Context, _ uuid.UUID) (*calentity.Calendar, error) {
	return f.calendar, nil
}

func (f *fakeCalendarRepo) GetCalendarBySlug(_ context.Context, slug string) (*calentity.Calendar, error) {
	if f.calendar != nil && f.calendar.Slug == slug {
		return f.calendar, nil
	}
	return nil, nil
}

func (f *fakeCalendarRepo) ListCalendars(_ context.Context, _ params.QueryParams) ([]calentity.Calendar, int, error) {
	return nil, 0, nil
}

func (f *fakeCalendarRepo) UpdateCalendar(_ context.Context, _ *calentity.Calendar) error { return nil }
func (f *fakeCalendarRepo) DeleteCalendar(_ context.Context, _ uuid.UUID) error           { return nil }

func (f *fakeCalendarRepo) CreateRelation(_ context.Context, r *calentity.CalendarRelation) (*calentity.CalendarRelation, error) {
	return r, nil
}

func (f *fakeCalendarRepo) GetRelationsByDistinction(_ context.Context, _ uuid.UUID, _ string) ([]calentity.CalendarRelation, error) {
	return nil, nil
}

func serviceFixture(t *testing.T) (EventServiceInterface, *fakeEventRepo) {
	t.Helper()

	calendar := &calentity.Calendar{Name: "Clinic", Slug: "clinic"}
	calendar.ID = uuid.New()

	events := newFakeEventRepo()
	occurrences := newFakeOccurrenceRepo()
	finder := NewOccurrenceFinder(events, occurrences)
	cfg := &config.AppointmentsConfig{EventDuration: 30}

	svc := NewEventService(events, &fakeCalendarRepo{calendar: calendar}, finder, cfg, nil)
	return svc, events
}

func TestCreateEvent_DefaultEndAndCreatorRelation(t *testing.T) {
	t.Parallel()

	svc, events := serviceFixture(t)
	creatorID := uuid.New()
	start := time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)

	got, appErr := svc.CreateEvent(context.Background(), creatorID, "clinic", &dto.CreateEventRequest{
		Title: "Intake",
		Start: start,
	})
	require.Nil(t, appErr)

	assert.True(t, got.End.Equal(start.Add(30*time.Minute)), "end defaults to the configured duration")
	assert.Equal(t, creatorID.String(), got.CreatorID)

	eventID, err := uuid.Parse(got.ID)
	require.NoError(t, err)
	relations, err := events.GetRelationsByDistinction(context.Background(), eventID, entity.DistinctionCreator)
	require.NoError(t, err)
	require.Len(t, relations, 1)
	assert.Equal(t, creatorID, relations[0].UserID)
}

func TestCreateEvent_UnknownCalendar(t *testing.T) {
	t.Parallel()

	svc, _ := serviceFixture(t)

	_, appErr := svc.CreateEvent(context.Background(), uuid.New(), "missing", &dto.CreateEventRequest{
		Title: "Intake",
		Start: time.Now(),
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestCreateEvent_RejectsInvertedSpan(t *testing.T) {
	t.Parallel()

	svc, _ := serviceFixture(t)
	start := time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	_, appErr := svc.CreateEvent(context.Background(), uuid.New(), "clinic", &dto.CreateEventRequest{
		Title: "Intake",
		Start: start,
		End:   &end,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCreateEvent_UnknownRule(t *testing.T) {
	t.Parallel()

	svc, _ := serviceFixture(t)

	_, appErr := svc.CreateEvent(context.Background(), uuid.New(), "clinic", &dto.CreateEventRequest{
		Title:  "Intake",
		Start:  time.Now(),
		RuleID: uuid.NewString(),
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestUpdateEvent_RequiresPermission(t *testing.T) {
	t.Parallel()

	svc, events := serviceFixture(t)
	start := time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)
	event := events.addEvent(&entity.Event{Title: "Intake", Start: start, End: start.Add(time.Hour)})

	_, appErr := svc.UpdateEvent(context.Background(), event.ID, uuid.Nil, &dto.UpdateEventRequest{Title: "Renamed"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestUpdateEvent_ClearsRule(t *testing.T) {
	t.Parallel()

	svc, events := serviceFixture(t)
	rule := events.addRule(&entity.Rule{Name: "daily", Frequency: entity.FrequencyDaily, Interval: 1})
	start := time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)
	event := events.addEvent(&entity.Event{Title: "Intake", Start: start, End: start.Add(time.Hour), RuleID: &rule.ID})

	empty := ""
	got, appErr := svc.UpdateEvent(context.Background(), event.ID, uuid.New(), &dto.UpdateEventRequest{RuleID: &empty})
	require.Nil(t, appErr)
	assert.Empty(t, got.RuleID)
}

func TestDeleteEvent(t *testing.T) {
	t.Parallel()

	svc, events := serviceFixture(t)
	start := time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)
	event := events.addEvent(&entity.Event{Title: "Intake", Start: start, End: start.Add(time.Hour)})

	appErr := svc.DeleteEvent(context.Background(), event.ID, uuid.New())
	require.Nil(t, appErr)

	_, appErr = svc.GetEventByID(context.Background(), event.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestCreateRule_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := serviceFixture(t)
	ctx := context.Background()

	_, appErr := svc.CreateRule(ctx, &dto.CreateRuleRequest{Name: "bad", Frequency: "HOURLY"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	got, appErr := svc.CreateRule(ctx, &dto.CreateRuleRequest{Name: "weekly", Frequency: "WEEKLY"})
	require.Nil(t, appErr)
	assert.Equal(t, 1, got.Interval, "interval defaults to 1")
}

func TestGetOccurrencesEndpoint(t *testing.T) {
	t.Parallel()

	svc, events := serviceFixture(t)
	rule := events.addRule(&entity.Rule{Name: "daily", Frequency: entity.FrequencyDaily, Interval: 1})
	start := time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)
	event := events.addEvent(&entity.Event{Title: "Intake", Start: start, End: start.Add(time.Hour), RuleID: &rule.ID})

	got, appErr := svc.GetOccurrences(context.Background(), event.ID, start, start.AddDate(0, 0, 3))
	require.Nil(t, appErr)
	require.Len(t, got, 3)
	assert.Equal(t, "Intake", got[0].Title)
	assert.False(t, got[0].Persisted)
}
