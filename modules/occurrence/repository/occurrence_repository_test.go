package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"appointments-api/core/database"
	"appointments-api/modules/occurrence/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var occurrenceCols = []string{
	"id", "event_id", "title", "description", "start_time", "end_time",
	"original_start", "original_end", "cancelled", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*OccurrenceRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := database.NewDatabase(sqlx.NewDb(db, "sqlmock"))
	return NewOccurrenceRepository(&wrapped), mock
}

func occurrenceRow(occ *entity.Occurrence) *sqlmock.Rows {
	return sqlmock.NewRows(occurrenceCols).AddRow(
		occ.ID, occ.EventID, occ.Title, occ.Description, occ.Start, occ.End,
		occ.OriginalStart, occ.OriginalEnd, occ.Cancelled, occ.CreatedAt, occ.UpdatedAt,
	)
}

func TestGetOrCreate_InsertsWhenMissing(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	eventID := uuid.New()
	slot := time.Date(2024, 5, 6, 14, 0, 0, 0, time.UTC)
	occ := entity.Virtual(eventID, slot, time.Hour)

	inserted := occ
	inserted.ID = uuid.New()
	inserted.CreatedAt = time.Now()
	inserted.UpdatedAt = inserted.CreatedAt

	mock.ExpectQuery("SELECT (.+) FROM occurrences WHERE event_id").
		WithArgs(eventID, slot).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO occurrences").
		WillReturnRows(occurrenceRow(&inserted))

	got, created, err := repo.GetOrCreate(context.Background(), &occ)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, inserted.ID, got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreate_ReturnsExistingRow(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	eventID := uuid.New()
	slot := time.Date(2024, 5, 6, 14, 0, 0, 0, time.UTC)
	occ := entity.Virtual(eventID, slot, time.Hour)

	existing := occ
	existing.ID = uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM occurrences WHERE event_id").
		WithArgs(eventID, slot).
		WillReturnRows(occurrenceRow(&existing))

	got, created, err := repo.GetOrCreate(context.Background(), &occ)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreate_LostRaceRefetchesWinner(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	eventID := uuid.New()
	slot := time.Date(2024, 5, 6, 14, 0, 0, 0, time.UTC)
	occ := entity.Virtual(eventID, slot, time.Hour)

	winner := occ
	winner.ID = uuid.New()

	// Not there yet, then the insert hits the conflict and returns no
	// row, then the refetch sees the winner.
	mock.ExpectQuery("SELECT (.+) FROM occurrences WHERE event_id").
		WithArgs(eventID, slot).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO occurrences").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT (.+) FROM occurrences WHERE event_id").
		WithArgs(eventID, slot).
		WillReturnRows(occurrenceRow(&winner))

	got, created, err := repo.GetOrCreate(context.Background(), &occ)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	occ := entity.Virtual(uuid.New(), time.Date(2024, 5, 6, 14, 0, 0, 0, time.UTC), time.Hour)
	occ.ID = uuid.New()
	occ.Cancelled = true

	mock.ExpectExec("UPDATE occurrences").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &occ)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
