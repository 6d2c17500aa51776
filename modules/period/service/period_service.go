package service

import (
	"context"
	"time"

	"appointments-api/core/config"
	"appointments-api/core/constants"
	"appointments-api/core/errors"
	calrepository "appointments-api/modules/calendar/repository"
	evservice "appointments-api/modules/event/service"
	occdto "appointments-api/modules/occurrence/dto"
	occentity "appointments-api/modules/occurrence/entity"
	"appointments-api/modules/period/dto"
)

// Occurrence statuses relative to the request time
const (
	StatusCancelled = "cancelled"
	StatusEnded     = "ended"
	StatusStarted   = "started"
	StatusUpcoming  = "upcoming"
)

// PeriodService renders calendar periods: a window of a calendar's merged
// occurrences, each classified against the request time.
type PeriodService struct {
	calendars calrepository.CalendarRepositoryInterface
	selector  evservice.EventSelector
	finder    *evservice.OccurrenceFinder
	cfg       *config.AppointmentsConfig

	// now is swappable for tests
	now func() time.Time
}

// PeriodServiceInterface defines the service contract
type PeriodServiceInterface interface {
	GetPeriod(ctx context.Context, calendarSlug string, kind Kind, ref time.Time) (*dto.PeriodResponse, *errors.AppError)
	HasOccurrences(ctx context.Context, calendarSlug string, kind Kind, ref time.Time) (bool, *errors.AppError)
}

// NewPeriodService creates a new period service
func NewPeriodService(
	calendars calrepository.CalendarRepositoryInterface,
	selector evservice.EventSelector,
	finder *evservice.OccurrenceFinder,
	cfg *config.AppointmentsConfig,
) *PeriodService {
	return &PeriodService{
		calendars: calendars,
		selector:  selector,
		finder:    finder,
		cfg:       cfg,
		now:       time.Now,
	}
}

// GetPeriod computes the period containing ref and classifies every
// occurrence of the calendar's events inside it. Cancelled occurrences
// are dropped unless the configuration shows them.
func (s *PeriodService) GetPeriod(ctx context.Context, calendarSlug string, kind Kind, ref time.Time) (*dto.PeriodResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	window, occurrences, appErr := s.windowOccurrences(ctx, calendarSlug, kind, ref)
	if appErr != nil {
		return nil, appErr
	}

	now := s.now()
	classified := make([]dto.ClassifiedOccurrence, 0, len(occurrences))
	for i := range occurrences {
		status, keep := s.Classify(&occurrences[i], now)
		if !keep {
			continue
		}
		classified = append(classified, dto.ClassifiedOccurrence{
			Occurrence: *occdto.ToOccurrenceResponse(&occurrences[i]),
			Status:     status,
		})
	}

	return &dto.PeriodResponse{
		Kind:        string(window.Kind),
		Name:        window.Name(),
		Start:       window.Start,
		End:         window.End,
		Occurrences: classified,
		NextStart:   window.Next().Start,
		PrevStart:   window.Prev().Start,
	}, nil
}

// HasOccurrences reports whether the period containing ref holds any
// occurrence at all, cancelled ones included.
func (s *PeriodService) HasOccurrences(ctx context.Context, calendarSlug string, kind Kind, ref time.Time) (bool, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	_, occurrences, appErr := s.windowOccurrences(ctx, calendarSlug, kind, ref)
	if appErr != nil {
		return false, appErr
	}
	return len(occurrences) > 0, nil
}

// Classify returns an occurrence's status against now. The second return
// is false when the occurrence should not be shown.
func (s *PeriodService) Classify(occ *occentity.Occurrence, now time.Time) (string, bool) {
	if occ.Cancelled {
		if !s.cfg.ShowCancelledOccurrences {
			return "", false
		}
		return StatusCancelled, true
	}
	if !occ.End.After(now) {
		return StatusEnded, true
	}
	if !occ.Start.After(now) {
		return StatusStarted, true
	}
	return StatusUpcoming, true
}

func (s *PeriodService) windowOccurrences(ctx context.Context, calendarSlug string, kind Kind, ref time.Time) (Window, []occentity.Occurrence, *errors.AppError) {
	calendar, err := s.calendars.GetCalendarBySlug(ctx, calendarSlug)
	if err != nil {
		return Window{}, nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get calendar", err)
	}
	if calendar == nil {
		return Window{}, nil, errors.NewAppError(errors.ErrNotFound, "Calendar not found", nil)
	}

	events, err := s.selector.SelectEvents(ctx, calendar)
	if err != nil {
		return Window{}, nil, errors.NewAppError(errors.ErrGetFailed, "Failed to select events", err)
	}

	window := NewWindow(kind, ref, s.cfg.FirstDayOfWeek)
	occurrences, err := s.finder.MergedOccurrences(ctx, events, window.Start, window.End)
	if err != nil {
		return Window{}, nil, errors.NewAppError(errors.ErrGetFailed, "Failed to compute occurrences", err)
	}

	return window, occurrences, nil
}
