package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ediary-dev/ediary-api/internal/models"
)

func newScheduleEntryRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestScheduleEntryRepositoryListByClassAndRange(t *testing.T) {
	db, mock, cleanup := newScheduleEntryRepoMock(t)
	defer cleanup()
	repo := NewScheduleEntryRepository(db)

	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 9, 8, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "class_id", "subject_id", "teacher_id", "schedule_date", "slot_number", "room", "subgroup_id"}).
		AddRow("e1", "class-7", "math", "t1", monday, 1, "204", nil).
		AddRow("e2", "class-7", "eng", "t2", monday, 2, "101", "sub-a")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE class_id = $1 AND schedule_date >= $2 AND schedule_date <= $3")).
		WithArgs("class-7", monday, sunday).
		WillReturnRows(rows)

	entries, err := repo.ListByClassAndRange(context.Background(), "class-7", models.DateRange{From: monday, To: sunday})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Nil(t, entries[0].SubgroupID)
	require.NotNil(t, entries[1].SubgroupID)
	assert.Equal(t, "sub-a", *entries[1].SubgroupID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleEntryRepositoryEmptyRange(t *testing.T) {
	db, mock, cleanup := newScheduleEntryRepoMock(t)
	defer cleanup()
	repo := NewScheduleEntryRepository(db)

	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE class_id = $1 AND schedule_date >= $2 AND schedule_date <= $3")).
		WithArgs("class-7", monday, monday).
		WillReturnRows(sqlmock.NewRows([]string{"id", "class_id", "subject_id", "teacher_id", "schedule_date", "slot_number", "room", "subgroup_id"}))

	entries, err := repo.ListByClassAndRange(context.Background(), "class-7", models.DateRange{From: monday, To: monday})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
