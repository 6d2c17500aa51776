package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"appointments-api/core/database"
	"appointments-api/core/logger"
	"appointments-api/core/params"
	"appointments-api/modules/event/entity"

	"github.com/google/uuid"
)

// EventRepositoryInterface defines the repository contract
type EventRepositoryInterface interface {
	// Event CRUD
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventsByCalendarID(ctx context.Context, calendarID uuid.UUID) ([]entity.Event, error)
	ListEvents(ctx context.Context, calendarID uuid.UUID, params params.QueryParams, date *time.Time) ([]entity.Event, int, error)
	UpdateEvent(ctx context.Context, event *entity.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// Rules
	CreateRule(ctx context.Context, rule *entity.Rule) (*entity.Rule, error)
	GetRuleByID(ctx context.Context, id uuid.UUID) (*entity.Rule, error)
	ListRules(ctx context.Context) ([]entity.Rule, error)

	// Relations
	CreateRelation(ctx context.Context, relation *entity.EventRelation) (*entity.EventRelation, error)
	GetRelationsByDistinction(ctx context.Context, eventID uuid.UUID, distinction string) ([]entity.EventRelation, error)
}

// EventRepository handles event database operations
type EventRepository struct {
	DB database.IDatabase
}

// NewEventRepository creates a new repository instance
func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

const eventColumns = `id, calendar_id, creator_id, title, description, start_time, end_time,
	       rule_id, end_recurring_period, created_at, updated_at`

// ===================== Event CRUD =====================

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (calendar_id, creator_id, title, description, start_time, end_time, rule_id, end_recurring_period)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.CalendarID, event.CreatorID, event.Title, event.Description,
		event.Start, event.End, event.RuleID, event.EndRecurringPeriod)
	if err != nil {
		logger.Error("EventRepository:CreateEvent", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID", err)
		return nil, err
	}

	return &event, nil
}

// GetEventsByCalendarID returns all of a calendar's events in insertion
// order, which is also the tie-break order for period merges.
func (r *EventRepository) GetEventsByCalendarID(ctx context.Context, calendarID uuid.UUID) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE calendar_id = $1 ORDER BY created_at, id`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, calendarID)
	if err != nil {
		logger.Error("EventRepository:GetEventsByCalendarID", err)
		return nil, err
	}

	return events, nil
}

// ListEvents returns a page of a calendar's events; when date is given,
// only events whose [start, end] span contains that instant are returned.
func (r *EventRepository) ListEvents(ctx context.Context, calendarID uuid.UUID, qp params.QueryParams, date *time.Time) ([]entity.Event, int, error) {
	where := `WHERE calendar_id = $1`
	args := []any{calendarID}
	if date != nil {
		where += ` AND start_time <= $2 AND end_time >= $2`
		args = append(args, *date)
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM events `+where, args...); err != nil {
		logger.Error("EventRepository:ListEvents:Count", err)
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM events %s ORDER BY start_time, id LIMIT $%d OFFSET $%d`,
		eventColumns, where, len(args)+1, len(args)+2)
	args = append(args, qp.PageSize, qp.Offset())

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, args...)
	if err != nil {
		logger.Error("EventRepository:ListEvents", err)
		return nil, 0, err
	}

	return events, total, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, start_time = $4, end_time = $5,
		    rule_id = $6, end_recurring_period = $7, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Start, event.End,
		event.RuleID, event.EndRecurringPeriod)
	if err != nil {
		logger.Error("EventRepository:UpdateEvent", err)
		return err
	}

	return nil
}

// DeleteEvent removes an event; its occurrences and relations cascade.
func (r *EventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EventRepository:DeleteEvent", err)
		return err
	}
	return nil
}

// ===================== Rules =====================

const ruleColumns = `id, name, description, frequency, interval_count, occurrence_count, until, created_at, updated_at`

func (r *EventRepository) CreateRule(ctx context.Context, rule *entity.Rule) (*entity.Rule, error) {
	query := `
		INSERT INTO rules (name, description, frequency, interval_count, occurrence_count, until)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + ruleColumns

	var created entity.Rule
	err := r.DB.GetContext(ctx, &created, query,
		rule.Name, rule.Description, rule.Frequency, rule.Interval, rule.Count, rule.Until)
	if err != nil {
		logger.Error("EventRepository:CreateRule", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetRuleByID(ctx context.Context, id uuid.UUID) (*entity.Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM rules WHERE id = $1`

	var rule entity.Rule
	err := r.DB.GetContext(ctx, &rule, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetRuleByID", err)
		return nil, err
	}

	return &rule, nil
}

func (r *EventRepository) ListRules(ctx context.Context) ([]entity.Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM rules ORDER BY name`

	var rules []entity.Rule
	err := r.DB.SelectContext(ctx, &rules, query)
	if err != nil {
		logger.Error("EventRepository:ListRules", err)
		return nil, err
	}

	return rules, nil
}

// ===================== Relations =====================

func (r *EventRepository) CreateRelation(ctx context.Context, relation *entity.EventRelation) (*entity.EventRelation, error) {
	query := `
		INSERT INTO event_relations (event_id, user_id, distinction)
		VALUES ($1, $2, $3)
		RETURNING id, event_id, user_id, distinction, created_at
	`

	var created entity.EventRelation
	err := r.DB.GetContext(ctx, &created, query,
		relation.EventID, relation.UserID, relation.Distinction)
	if err != nil {
		logger.Error("EventRepository:CreateRelation", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetRelationsByDistinction(ctx context.Context, eventID uuid.UUID, distinction string) ([]entity.EventRelation, error) {
	query := `
		SELECT id, event_id, user_id, distinction, created_at
		FROM event_relations
		WHERE event_id = $1 AND distinction = $2
		ORDER BY created_at
	`

	var relations []entity.EventRelation
	err := r.DB.SelectContext(ctx, &relations, query, eventID, distinction)
	if err != nil {
		logger.Error("EventRepository:GetRelationsByDistinction", err)
		return nil, err
	}

	return relations, nil
}
