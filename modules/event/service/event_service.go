package service

import (
	"context"
	"time"

	"appointments-api/core/config"
	"appointments-api/core/constants"
	"appointments-api/core/errors"
	"appointments-api/core/params"
	calrepository "appointments-api/modules/calendar/repository"
	"appointments-api/modules/event/dto"
	"appointments-api/modules/event/entity"
	"appointments-api/modules/event/repository"
	occdto "appointments-api/modules/occurrence/dto"

	"github.com/google/uuid"
)

// EventService handles event business logic
type EventService struct {
	repo      repository.EventRepositoryInterface
	calendars calrepository.CalendarRepositoryInterface
	finder    *OccurrenceFinder
	cfg       *config.AppointmentsConfig
	canEdit   PermissionFunc
}

// EventServiceInterface defines the service contract
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, creatorID uuid.UUID, calendarSlug string, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEventByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError)
	ListEvents(ctx context.Context, calendarSlug string, qp params.QueryParams, date *time.Time) (*dto.PaginatedEventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) *errors.AppError

	GetOccurrences(ctx context.Context, eventID uuid.UUID, rangeStart, rangeEnd time.Time) ([]occdto.OccurrenceResponse, *errors.AppError)

	CreateRule(ctx context.Context, req *dto.CreateRuleRequest) (*dto.RuleResponse, *errors.AppError)
	GetRuleByID(ctx context.Context, id uuid.UUID) (*dto.RuleResponse, *errors.AppError)
	ListRules(ctx context.Context) ([]dto.RuleResponse, *errors.AppError)

	CreateRelation(ctx context.Context, eventID uuid.UUID, req *dto.CreateEventRelationRequest) (*dto.EventRelationResponse, *errors.AppError)
	GetRelations(ctx context.Context, eventID uuid.UUID, distinction string) ([]dto.EventRelationResponse, *errors.AppError)
}

// NewEventService creates a new event service
func NewEventService(
	repo repository.EventRepositoryInterface,
	calendars calrepository.CalendarRepositoryInterface,
	finder *OccurrenceFinder,
	cfg *config.AppointmentsConfig,
	canEdit PermissionFunc,
) EventServiceInterface {
	if canEdit == nil {
		canEdit = DefaultCheckPermission
	}
	return &EventService{
		repo:      repo,
		calendars: calendars,
		finder:    finder,
		cfg:       cfg,
		canEdit:   canEdit,
	}
}

// CreateEvent creates an event on a calendar. The creator also gets a
// "creator" relation row.
func (s *EventService) CreateEvent(ctx context.Context, creatorID uuid.UUID, calendarSlug string, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if !s.canEdit(nil, creatorID) {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not allowed to create events", nil)
	}

	calendar, err := s.calendars.GetCalendarBySlug(ctx, calendarSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get calendar", err)
	}
	if calendar == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Calendar not found", nil)
	}

	if req.Title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Event title is required", nil)
	}
	if req.Start.IsZero() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Event start is required", nil)
	}

	end := req.Start.Add(time.Duration(s.cfg.EventDuration) * time.Minute)
	if req.End != nil {
		end = *req.End
	}
	if end.Before(req.Start) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Event end must not precede its start", nil)
	}

	event := &entity.Event{
		CalendarID:         calendar.ID,
		CreatorID:          creatorID,
		Title:              req.Title,
		Start:              req.Start,
		End:                end,
		EndRecurringPeriod: req.EndRecurringPeriod,
	}
	if req.Description != "" {
		event.Description = &req.Description
	}
	if req.RuleID != "" {
		ruleID, parseErr := uuid.Parse(req.RuleID)
		if parseErr != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid rule ID", parseErr)
		}
		rule, ruleErr := s.repo.GetRuleByID(ctx, ruleID)
		if ruleErr != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get rule", ruleErr)
		}
		if rule == nil {
			return nil, errors.NewAppError(errors.ErrNotFound, "Rule not found", nil)
		}
		event.RuleID = &ruleID
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create event", err)
	}

	if _, err := s.repo.CreateRelation(ctx, &entity.EventRelation{
		EventID:     created.ID,
		UserID:      creatorID,
		Distinction: entity.DistinctionCreator,
	}); err != nil {
		// The event exists; a missing creator relation is recoverable.
		return dto.ToEventResponse(created), nil
	}

	return dto.ToEventResponse(created), nil
}

// GetEventByID retrieves an event
func (s *EventService) GetEventByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, appErr := s.mustGetEvent(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToEventResponse(event), nil
}

// ListEvents returns a page of a calendar's events, optionally filtered
// to those whose span contains the given instant.
func (s *EventService) ListEvents(ctx context.Context, calendarSlug string, qp params.QueryParams, date *time.Time) (*dto.PaginatedEventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	calendar, err := s.calendars.GetCalendarBySlug(ctx, calendarSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get calendar", err)
	}
	if calendar == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Calendar not found", nil)
	}

	qp = qp.Normalize()
	events, total, err := s.repo.ListEvents(ctx, calendar.ID, qp, date)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list events", err)
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *dto.ToEventResponse(&events[i]))
	}

	return &dto.PaginatedEventResponse{
		Events:     result,
		PageNumber: qp.PageNumber,
		PageSize:   qp.PageSize,
		Total:      total,
	}, nil
}

// UpdateEvent updates event details after a permission check
func (s *EventService) UpdateEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, appErr := s.mustGetEvent(ctx, eventID)
	if appErr != nil {
		return nil, appErr
	}
	if !s.canEdit(event, userID) {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not allowed to edit this event", nil)
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != "" {
		event.Description = &req.Description
	}
	if req.Start != nil {
		event.Start = *req.Start
	}
	if req.End != nil {
		event.End = *req.End
	}
	if req.RuleID != nil {
		if *req.RuleID == "" {
			event.RuleID = nil
		} else {
			ruleID, parseErr := uuid.Parse(*req.RuleID)
			if parseErr != nil {
				return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid rule ID", parseErr)
			}
			event.RuleID = &ruleID
		}
	}
	if req.EndRecurringPeriod != nil {
		event.EndRecurringPeriod = req.EndRecurringPeriod
	}

	if event.End.Before(event.Start) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Event end must not precede its start", nil)
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update event", err)
	}

	return dto.ToEventResponse(event), nil
}

// DeleteEvent removes an event after a permission check; occurrences and
// relations cascade.
func (s *EventService) DeleteEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, appErr := s.mustGetEvent(ctx, eventID)
	if appErr != nil {
		return appErr
	}
	if !s.canEdit(event, userID) {
		return errors.NewAppError(errors.ErrForbidden, "Not allowed to delete this event", nil)
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete event", err)
	}
	return nil
}

// GetOccurrences returns the event's occurrences in [rangeStart, rangeEnd)
func (s *EventService) GetOccurrences(ctx context.Context, eventID uuid.UUID, rangeStart, rangeEnd time.Time) ([]occdto.OccurrenceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, appErr := s.mustGetEvent(ctx, eventID)
	if appErr != nil {
		return nil, appErr
	}

	occurrences, err := s.finder.OccurrencesBetween(ctx, event, rangeStart, rangeEnd)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to compute occurrences", err)
	}

	return occdto.ToOccurrenceResponses(occurrences), nil
}

// ===================== Rules =====================

func (s *EventService) CreateRule(ctx context.Context, req *dto.CreateRuleRequest) (*dto.RuleResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if req.Name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Rule name is required", nil)
	}
	frequency := entity.Frequency(req.Frequency)
	if !frequency.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Frequency must be DAILY, WEEKLY, MONTHLY or YEARLY", nil)
	}
	interval := req.Interval
	if interval == 0 {
		interval = 1
	}
	if interval < 1 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Interval must be at least 1", nil)
	}
	if req.Count != nil && *req.Count < 1 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Count must be at least 1", nil)
	}

	rule := &entity.Rule{
		Name:      req.Name,
		Frequency: frequency,
		Interval:  interval,
		Count:     req.Count,
		Until:     req.Until,
	}
	if req.Description != "" {
		rule.Description = &req.Description
	}

	created, err := s.repo.CreateRule(ctx, rule)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create rule", err)
	}

	return dto.ToRuleResponse(created), nil
}

func (s *EventService) GetRuleByID(ctx context.Context, id uuid.UUID) (*dto.RuleResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	rule, err := s.repo.GetRuleByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get rule", err)
	}
	if rule == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Rule not found", nil)
	}

	return dto.ToRuleResponse(rule), nil
}

func (s *EventService) ListRules(ctx context.Context) ([]dto.RuleResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	rules, err := s.repo.ListRules(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list rules", err)
	}

	result := make([]dto.RuleResponse, 0, len(rules))
	for i := range rules {
		result = append(result, *dto.ToRuleResponse(&rules[i]))
	}
	return result, nil
}

// ===================== Relations =====================

func (s *EventService) CreateRelation(ctx context.Context, eventID uuid.UUID, req *dto.CreateEventRelationRequest) (*dto.EventRelationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.mustGetEvent(ctx, eventID); appErr != nil {
		return nil, appErr
	}

	userID, parseErr := uuid.Parse(req.UserID)
	if parseErr != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid user ID", parseErr)
	}
	if req.Distinction == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Distinction is required", nil)
	}

	created, err := s.repo.CreateRelation(ctx, &entity.EventRelation{
		EventID:     eventID,
		UserID:      userID,
		Distinction: req.Distinction,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create relation", err)
	}

	return dto.ToEventRelationResponse(created), nil
}

func (s *EventService) GetRelations(ctx context.Context, eventID uuid.UUID, distinction string) ([]dto.EventRelationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.mustGetEvent(ctx, eventID); appErr != nil {
		return nil, appErr
	}

	relations, err := s.repo.GetRelationsByDistinction(ctx, eventID, distinction)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get relations", err)
	}

	result := make([]dto.EventRelationResponse, 0, len(relations))
	for i := range relations {
		result = append(result, *dto.ToEventRelationResponse(&relations[i]))
	}
	return result, nil
}

func (s *EventService) mustGetEvent(ctx context.Context, id uuid.UUID) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return event, nil
}
