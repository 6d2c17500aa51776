package repository

import (
	"context"
	"database/sql"

	"appointments-api/core/database"
	"appointments-api/core/logger"
	"appointments-api/core/params"
	"appointments-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// CalendarRepositoryInterface defines the repository contract
type CalendarRepositoryInterface interface {
	CreateCalendar(ctx context.Context, calendar *entity.Calendar) (*entity.Calendar, error)
	GetCalendarByID(ctx context.Context, id uuid.UUID) (*entity.Calendar, error)
	GetCalendarBySlug(ctx context.Context, slug string) (*entity.Calendar, error)
	ListCalendars(ctx context.Context, params params.QueryParams) ([]entity.Calendar, int, error)
	UpdateCalendar(ctx context.Context, calendar *entity.Calendar) error
	DeleteCalendar(ctx context.Context, id uuid.UUID) error

	CreateRelation(ctx context.Context, relation *entity.CalendarRelation) (*entity.CalendarRelation, error)
	GetRelationsByDistinction(ctx context.Context, calendarID uuid.UUID, distinction string) ([]entity.CalendarRelation, error)
}

// CalendarRepository handles calendar database operations
type CalendarRepository struct {
	DB database.IDatabase
}

// NewCalendarRepository creates a new repository instance
func NewCalendarRepository(db database.IDatabase) *CalendarRepository {
	return &CalendarRepository{DB: db}
}

// ===================== Calendar CRUD =====================

func (r *CalendarRepository) CreateCalendar(ctx context.Context, calendar *entity.Calendar) (*entity.Calendar, error) {
	query := `
		INSERT INTO calendars (name, slug)
		VALUES ($1, $2)
		RETURNING id, name, slug, created_at, updated_at
	`

	var created entity.Calendar
	err := r.DB.GetContext(ctx, &created, query, calendar.Name, calendar.Slug)
	if err != nil {
		logger.Error("CalendarRepository:CreateCalendar", err)
		return nil, err
	}

	return &created, nil
}

func (r *CalendarRepository) GetCalendarByID(ctx context.Context, id uuid.UUID) (*entity.Calendar, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM calendars WHERE id = $1`

	var calendar entity.Calendar
	err := r.DB.GetContext(ctx, &calendar, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CalendarRepository:GetCalendarByID", err)
		return nil, err
	}

	return &calendar, nil
}

func (r *CalendarRepository) GetCalendarBySlug(ctx context.Context, slug string) (*entity.Calendar, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM calendars WHERE slug = $1`

	var calendar entity.Calendar
	err := r.DB.GetContext(ctx, &calendar, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CalendarRepository:GetCalendarBySlug", err)
		return nil, err
	}

	return &calendar, nil
}

func (r *CalendarRepository) ListCalendars(ctx context.Context, params params.QueryParams) ([]entity.Calendar, int, error) {
	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM calendars`); err != nil {
		logger.Error("CalendarRepository:ListCalendars:Count", err)
		return nil, 0, err
	}

	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM calendars
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	var calendars []entity.Calendar
	err := r.DB.SelectContext(ctx, &calendars, query, params.PageSize, params.Offset())
	if err != nil {
		logger.Error("CalendarRepository:ListCalendars", err)
		return nil, 0, err
	}

	return calendars, total, nil
}

func (r *CalendarRepository) UpdateCalendar(ctx context.Context, calendar *entity.Calendar) error {
	query := `UPDATE calendars SET name = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, calendar.ID, calendar.Name)
	if err != nil {
		logger.Error("CalendarRepository:UpdateCalendar", err)
		return err
	}
	return nil
}

func (r *CalendarRepository) DeleteCalendar(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM calendars WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("CalendarRepository:DeleteCalendar", err)
		return err
	}
	return nil
}

// ===================== Relations =====================

func (r *CalendarRepository) CreateRelation(ctx context.Context, relation *entity.CalendarRelation) (*entity.CalendarRelation, error) {
	query := `
		INSERT INTO calendar_relations (calendar_id, user_id, distinction, inheritable)
		VALUES ($1, $2, $3, $4)
		RETURNING id, calendar_id, user_id, distinction, inheritable, created_at
	`

	var created entity.CalendarRelation
	err := r.DB.GetContext(ctx, &created, query,
		relation.CalendarID, relation.UserID, relation.Distinction, relation.Inheritable)
	if err != nil {
		logger.Error("CalendarRepository:CreateRelation", err)
		return nil, err
	}

	return &created, nil
}

func (r *CalendarRepository) GetRelationsByDistinction(ctx context.Context, calendarID uuid.UUID, distinction string) ([]entity.CalendarRelation, error) {
	query := `
		SELECT id, calendar_id, user_id, distinction, inheritable, created_at
		FROM calendar_relations
		WHERE calendar_id = $1 AND distinction = $2
		ORDER BY created_at
	`

	var relations []entity.CalendarRelation
	err := r.DB.SelectContext(ctx, &relations, query, calendarID, distinction)
	if err != nil {
		logger.Error("CalendarRepository:GetRelationsByDistinction", err)
		return nil, err
	}

	return relations, nil
}
