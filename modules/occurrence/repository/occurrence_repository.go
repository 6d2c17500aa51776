package repository

import (
	"context"
	"database/sql"
	"time"

	"appointments-api/core/database"
	"appointments-api/core/logger"
	"appointments-api/modules/occurrence/entity"

	"github.com/google/uuid"
)

// OccurrenceRepositoryInterface defines the repository contract
type OccurrenceRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Occurrence, error)
	GetByEventAndOriginalStart(ctx context.Context, eventID uuid.UUID, originalStart time.Time) (*entity.Occurrence, error)
	ListByEventBetween(ctx context.Context, eventID uuid.UUID, rangeStart, rangeEnd time.Time) ([]entity.Occurrence, error)
	GetOrCreate(ctx context.Context, occ *entity.Occurrence) (*entity.Occurrence, bool, error)
	Update(ctx context.Context, occ *entity.Occurrence) error
}

// OccurrenceRepository handles occurrence database operations
type OccurrenceRepository struct {
	DB database.IDatabase
}

// NewOccurrenceRepository creates a new repository instance
func NewOccurrenceRepository(db database.IDatabase) *OccurrenceRepository {
	return &OccurrenceRepository{DB: db}
}

const occurrenceColumns = `id, event_id, title, description, start_time, end_time,
	       original_start, original_end, cancelled, created_at, updated_at`

func (r *OccurrenceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Occurrence, error) {
	query := `SELECT ` + occurrenceColumns + ` FROM occurrences WHERE id = $1`

	var occ entity.Occurrence
	err := r.DB.GetContext(ctx, &occ, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("OccurrenceRepository:GetByID", err)
		return nil, err
	}

	return &occ, nil
}

func (r *OccurrenceRepository) GetByEventAndOriginalStart(ctx context.Context, eventID uuid.UUID, originalStart time.Time) (*entity.Occurrence, error) {
	query := `SELECT ` + occurrenceColumns + ` FROM occurrences WHERE event_id = $1 AND original_start = $2`

	var occ entity.Occurrence
	err := r.DB.GetContext(ctx, &occ, query, eventID, originalStart)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("OccurrenceRepository:GetByEventAndOriginalStart", err)
		return nil, err
	}

	return &occ, nil
}

// ListByEventBetween returns the persisted overrides whose original start
// falls in [rangeStart, rangeEnd).
func (r *OccurrenceRepository) ListByEventBetween(ctx context.Context, eventID uuid.UUID, rangeStart, rangeEnd time.Time) ([]entity.Occurrence, error) {
	query := `
		SELECT ` + occurrenceColumns + `
		FROM occurrences
		WHERE event_id = $1 AND original_start >= $2 AND original_start < $3
		ORDER BY original_start
	`

	var occurrences []entity.Occurrence
	err := r.DB.SelectContext(ctx, &occurrences, query, eventID, rangeStart, rangeEnd)
	if err != nil {
		logger.Error("OccurrenceRepository:ListByEventBetween", err)
		return nil, err
	}

	return occurrences, nil
}

// GetOrCreate materializes a virtual occurrence. The unique constraint on
// (event_id, original_start) is the correctness mechanism: a concurrent
// insert of the same slot makes ON CONFLICT DO NOTHING return no row, and
// the loser refetches the winner instead of erroring. The second return
// reports whether this call inserted the row.
func (r *OccurrenceRepository) GetOrCreate(ctx context.Context, occ *entity.Occurrence) (*entity.Occurrence, bool, error) {
	existing, err := r.GetByEventAndOriginalStart(ctx, occ.EventID, occ.OriginalStart)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	query := `
		INSERT INTO occurrences (event_id, title, description, start_time, end_time, original_start, original_end, cancelled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_id, original_start) DO NOTHING
		RETURNING ` + occurrenceColumns

	var created entity.Occurrence
	err = r.DB.GetContext(ctx, &created, query,
		occ.EventID, occ.Title, occ.Description, occ.Start, occ.End,
		occ.OriginalStart, occ.OriginalEnd, occ.Cancelled)
	if err == sql.ErrNoRows {
		// Lost the race; the row exists now.
		winner, ferr := r.GetByEventAndOriginalStart(ctx, occ.EventID, occ.OriginalStart)
		if ferr != nil {
			return nil, false, ferr
		}
		return winner, false, nil
	}
	if err != nil {
		logger.Error("OccurrenceRepository:GetOrCreate", err)
		return nil, false, err
	}

	return &created, true, nil
}

func (r *OccurrenceRepository) Update(ctx context.Context, occ *entity.Occurrence) error {
	query := `
		UPDATE occurrences
		SET title = $2, description = $3, start_time = $4, end_time = $5, cancelled = $6, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		occ.ID, occ.Title, occ.Description, occ.Start, occ.End, occ.Cancelled)
	if err != nil {
		logger.Error("OccurrenceRepository:Update", err)
		return err
	}

	return nil
}
