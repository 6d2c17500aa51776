package service

import (
	"context"
	"fmt"

	"appointments-api/core/constants"
	"appointments-api/core/errors"
	"appointments-api/core/params"
	"appointments-api/modules/calendar/dto"
	"appointments-api/modules/calendar/entity"
	"appointments-api/modules/calendar/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// CalendarService handles calendar business logic
type CalendarService struct {
	repo repository.CalendarRepositoryInterface
}

// CalendarServiceInterface defines the service contract
type CalendarServiceInterface interface {
	CreateCalendar(ctx context.Context, req *dto.CreateCalendarRequest) (*dto.CalendarResponse, *errors.AppError)
	GetCalendarBySlug(ctx context.Context, slug string) (*dto.CalendarResponse, *errors.AppError)
	ListCalendars(ctx context.Context, params params.QueryParams) (*dto.PaginatedCalendarResponse, *errors.AppError)
	UpdateCalendar(ctx context.Context, slug string, req *dto.UpdateCalendarRequest) (*dto.CalendarResponse, *errors.AppError)
	DeleteCalendar(ctx context.Context, slug string) *errors.AppError
	CreateRelation(ctx context.Context, slug string, req *dto.CreateCalendarRelationRequest) (*dto.CalendarRelationResponse, *errors.AppError)
	GetRelations(ctx context.Context, slug string, distinction string) ([]dto.CalendarRelationResponse, *errors.AppError)
}

// NewCalendarService creates a new calendar service
func NewCalendarService(repo repository.CalendarRepositoryInterface) CalendarServiceInterface {
	return &CalendarService{repo: repo}
}

// CreateCalendar creates a calendar with a unique, URL-safe slug derived
// from its name unless an explicit slug was supplied.
func (s *CalendarService) CreateCalendar(ctx context.Context, req *dto.CreateCalendarRequest) (*dto.CalendarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if req.Name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Calendar name is required", nil)
	}

	base := req.Slug
	if base == "" {
		base = req.Name
	}
	candidate := slug.Make(base)
	if candidate == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Calendar name produces an empty slug", nil)
	}

	// Probe for collisions, suffixing until free.
	final := candidate
	for i := 2; ; i++ {
		existing, err := s.repo.GetCalendarBySlug(ctx, final)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check slug", err)
		}
		if existing == nil {
			break
		}
		final = fmt.Sprintf("%s-%d", candidate, i)
	}

	created, err := s.repo.CreateCalendar(ctx, &entity.Calendar{Name: req.Name, Slug: final})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create calendar", err)
	}

	return dto.ToCalendarResponse(created), nil
}

// GetCalendarBySlug retrieves a calendar by slug
func (s *CalendarService) GetCalendarBySlug(ctx context.Context, calSlug string) (*dto.CalendarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	calendar, err := s.repo.GetCalendarBySlug(ctx, calSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get calendar", err)
	}
	if calendar == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Calendar not found", nil)
	}

	return dto.ToCalendarResponse(calendar), nil
}

// ListCalendars returns a page of calendars
func (s *CalendarService) ListCalendars(ctx context.Context, qp params.QueryParams) (*dto.PaginatedCalendarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	qp = qp.Normalize()
	calendars, total, err := s.repo.ListCalendars(ctx, qp)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list calendars", err)
	}

	result := make([]dto.CalendarResponse, 0, len(calendars))
	for i := range calendars {
		result = append(result, *dto.ToCalendarResponse(&calendars[i]))
	}

	return &dto.PaginatedCalendarResponse{
		Calendars:  result,
		PageNumber: qp.PageNumber,
		PageSize:   qp.PageSize,
		Total:      total,
	}, nil
}

// UpdateCalendar renames a calendar; the slug is stable once assigned.
func (s *CalendarService) UpdateCalendar(ctx context.Context, calSlug string, req *dto.UpdateCalendarRequest) (*dto.CalendarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	calendar, err := s.repo.GetCalendarBySlug(ctx, calSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get calendar", err)
	}
	if calendar == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Calendar not found", nil)
	}

	if req.Name != "" {
		calendar.Name = req.Name
	}
	if err := s.repo.UpdateCalendar(ctx, calendar); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update calendar", err)
	}

	return dto.ToCalendarResponse(calendar), nil
}

// DeleteCalendar removes a calendar; events, occurrences and relations go
// with it through the cascade.
func (s *CalendarService) DeleteCalendar(ctx context.Context, calSlug string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	calendar, err := s.repo.GetCalendarBySlug(ctx, calSlug)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to get calendar", err)
	}
	if calendar == nil {
		return errors.NewAppError(errors.ErrNotFound, "Calendar not found", nil)
	}

	if err := s.repo.DeleteCalendar(ctx, calendar.ID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete calendar", err)
	}
	return nil
}

// CreateRelation attaches a user to a calendar with a distinction
func (s *CalendarService) CreateRelation(ctx context.Context, calSlug string, req *dto.CreateCalendarRelationRequest) (*dto.CalendarRelationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	calendar, err := s.repo.GetCalendarBySlug(ctx, calSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get calendar", err)
	}
	if calendar == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Calendar not found", nil)
	}

	userID, parseErr := uuid.Parse(req.UserID)
	if parseErr != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid user ID", parseErr)
	}
	if req.Distinction == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Distinction is required", nil)
	}

	inheritable := true
	if req.Inheritable != nil {
		inheritable = *req.Inheritable
	}

	created, err := s.repo.CreateRelation(ctx, &entity.CalendarRelation{
		CalendarID:  calendar.ID,
		UserID:      userID,
		Distinction: req.Distinction,
		Inheritable: inheritable,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create relation", err)
	}

	return dto.ToCalendarRelationResponse(created), nil
}

// GetRelations lists a calendar's relations filtered by distinction
func (s *CalendarService) GetRelations(ctx context.Context, calSlug string, distinction string) ([]dto.CalendarRelationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	calendar, err := s.repo.GetCalendarBySlug(ctx, calSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get calendar", err)
	}
	if calendar == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Calendar not found", nil)
	}

	relations, err := s.repo.GetRelationsByDistinction(ctx, calendar.ID, distinction)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get relations", err)
	}

	result := make([]dto.CalendarRelationResponse, 0, len(relations))
	for i := range relations {
		result = append(result, *dto.ToCalendarRelationResponse(&relations[i]))
	}
	return result, nil
}
