package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultSlotRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestDefaultSlotRepositoryList(t *testing.T) {
	db, mock, cleanup := newDefaultSlotRepoMock(t)
	defer cleanup()
	repo := NewDefaultSlotRepository(db)

	rows := sqlmock.NewRows([]string{"slot_number", "start_time", "end_time"}).
		AddRow(1, "08:00", "08:45").
		AddRow(2, "08:55", "09:40")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT slot_number, start_time, end_time FROM time_slot_defaults ORDER BY slot_number ASC")).
		WillReturnRows(rows)

	slots, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "08:00", slots[0].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDefaultSlotRepositoryFindBySlotNumber(t *testing.T) {
	db, mock, cleanup := newDefaultSlotRepoMock(t)
	defer cleanup()
	repo := NewDefaultSlotRepository(db)

	rows := sqlmock.NewRows([]string{"slot_number", "start_time", "end_time"}).
		AddRow(2, "08:55", "09:40")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT slot_number, start_time, end_time FROM time_slot_defaults WHERE slot_number = $1")).
		WithArgs(2).
		WillReturnRows(rows)

	slot, err := repo.FindBySlotNumber(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "08:55", slot.StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDefaultSlotRepositoryFindBySlotNumberMissing(t *testing.T) {
	db, mock, cleanup := newDefaultSlotRepoMock(t)
	defer cleanup()
	repo := NewDefaultSlotRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT slot_number, start_time, end_time FROM time_slot_defaults WHERE slot_number = $1")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindBySlotNumber(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
