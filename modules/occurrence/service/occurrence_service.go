package service

import (
	"context"
	"time"

	"appointments-api/core/config"
	"appointments-api/core/constants"
	"appointments-api/core/errors"
	evrepository "appointments-api/modules/event/repository"
	evservice "appointments-api/modules/event/service"
	"appointments-api/modules/occurrence/dto"
	"appointments-api/modules/occurrence/entity"
	"appointments-api/modules/occurrence/repository"

	"github.com/google/uuid"
)

// OccurrenceService handles single-occurrence operations: lookup, cancel
// and move. Mutations materialize virtual occurrences on demand.
type OccurrenceService struct {
	events  evrepository.EventRepositoryInterface
	repo    repository.OccurrenceRepositoryInterface
	finder  *evservice.OccurrenceFinder
	cfg     *config.AppointmentsConfig
	canEdit evservice.PermissionFunc
}

// OccurrenceServiceInterface defines the service contract
type OccurrenceServiceInterface interface {
	GetOccurrenceByID(ctx context.Context, id uuid.UUID) (*dto.OccurrenceResponse, *errors.AppError)
	GetOccurrence(ctx context.Context, eventID uuid.UUID, originalStart time.Time) (*dto.OccurrenceResponse, *errors.AppError)
	CancelOccurrence(ctx context.Context, eventID uuid.UUID, originalStart time.Time, userID uuid.UUID) (*dto.CancelOccurrenceResponse, *errors.AppError)
	MoveOccurrence(ctx context.Context, eventID uuid.UUID, originalStart time.Time, userID uuid.UUID, req *dto.MoveOccurrenceRequest) (*dto.OccurrenceResponse, *errors.AppError)
}

// NewOccurrenceService creates a new occurrence service
func NewOccurrenceService(
	events evrepository.EventRepositoryInterface,
	repo repository.OccurrenceRepositoryInterface,
	finder *evservice.OccurrenceFinder,
	cfg *config.AppointmentsConfig,
	canEdit evservice.PermissionFunc,
) OccurrenceServiceInterface {
	if canEdit == nil {
		canEdit = evservice.DefaultCheckPermission
	}
	return &OccurrenceService{
		events:  events,
		repo:    repo,
		finder:  finder,
		cfg:     cfg,
		canEdit: canEdit,
	}
}

// GetOccurrenceByID retrieves a persisted occurrence
func (s *OccurrenceService) GetOccurrenceByID(ctx context.Context, id uuid.UUID) (*dto.OccurrenceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	occ, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get occurrence", err)
	}
	if occ == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Occurrence not found", nil)
	}

	return dto.ToOccurrenceResponse(occ), nil
}

// GetOccurrence resolves the occurrence anchored at originalStart, virtual
// or persisted.
func (s *OccurrenceService) GetOccurrence(ctx context.Context, eventID uuid.UUID, originalStart time.Time) (*dto.OccurrenceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	occ, appErr := s.resolve(ctx, eventID, originalStart)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToOccurrenceResponse(occ), nil
}

// CancelOccurrence marks one occurrence cancelled, materializing it first
// when it is still virtual. Cancelling an already-cancelled occurrence is
// a no-op.
func (s *OccurrenceService) CancelOccurrence(ctx context.Context, eventID uuid.UUID, originalStart time.Time, userID uuid.UUID) (*dto.CancelOccurrenceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	occ, appErr := s.materialize(ctx, eventID, originalStart, userID)
	if appErr != nil {
		return nil, appErr
	}

	if !occ.Cancelled {
		occ.Cancelled = true
		if err := s.repo.Update(ctx, occ); err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to cancel occurrence", err)
		}
	}

	return &dto.CancelOccurrenceResponse{
		Occurrence: *dto.ToOccurrenceResponse(occ),
		Redirect:   s.cfg.OccurrenceCancelRedirect,
	}, nil
}

// MoveOccurrence reschedules one occurrence (optionally overriding its
// title and description). The original slot is untouched so the
// occurrence stays addressable by it.
func (s *OccurrenceService) MoveOccurrence(ctx context.Context, eventID uuid.UUID, originalStart time.Time, userID uuid.UUID, req *dto.MoveOccurrenceRequest) (*dto.OccurrenceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if req.Start.IsZero() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "New start is required", nil)
	}

	occ, appErr := s.materialize(ctx, eventID, originalStart, userID)
	if appErr != nil {
		return nil, appErr
	}

	duration := occ.End.Sub(occ.Start)
	occ.Start = req.Start
	occ.End = req.Start.Add(duration)
	if req.End != nil {
		occ.End = *req.End
	}
	if occ.End.Before(occ.Start) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Occurrence end must not precede its start", nil)
	}
	if req.Title != nil {
		occ.Title = req.Title
	}
	if req.Description != nil {
		occ.Description = req.Description
	}

	if err := s.repo.Update(ctx, occ); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to move occurrence", err)
	}

	return dto.ToOccurrenceResponse(occ), nil
}

// resolve finds the occurrence at originalStart without persisting it.
func (s *OccurrenceService) resolve(ctx context.Context, eventID uuid.UUID, originalStart time.Time) (*entity.Occurrence, *errors.AppError) {
	event, err := s.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	occ, err := s.finder.Occurrence(ctx, event, originalStart)
	if err == evservice.ErrNoOccurrence {
		return nil, errors.NewAppError(errors.ErrNotFound, "No occurrence at that start time", nil)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to resolve occurrence", err)
	}
	return occ, nil
}

// materialize resolves the occurrence and guarantees a persisted row,
// after checking the caller may edit the event.
func (s *OccurrenceService) materialize(ctx context.Context, eventID uuid.UUID, originalStart time.Time, userID uuid.UUID) (*entity.Occurrence, *errors.AppError) {
	event, err := s.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if !s.canEdit(event, userID) {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not allowed to edit this event's occurrences", nil)
	}

	occ, ferr := s.finder.Occurrence(ctx, event, originalStart)
	if ferr == evservice.ErrNoOccurrence {
		return nil, errors.NewAppError(errors.ErrNotFound, "No occurrence at that start time", nil)
	}
	if ferr != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to resolve occurrence", ferr)
	}
	if occ.Persisted() {
		return occ, nil
	}

	persisted, _, perr := s.repo.GetOrCreate(ctx, occ)
	if perr != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to materialize occurrence", perr)
	}
	return persisted, nil
}
