package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ediary-dev/ediary-api/internal/models"
)

// ScheduleEntryRepository reads lesson records for the schedule pipeline.
type ScheduleEntryRepository struct {
	db *sqlx.DB
}

// NewScheduleEntryRepository creates a new schedule entry repository.
func NewScheduleEntryRepository(db *sqlx.DB) *ScheduleEntryRepository {
	return &ScheduleEntryRepository{db: db}
}

// ListByClassAndRange returns entries for a class within the inclusive date
// range, ordered by (schedule_date, slot_number).
func (r *ScheduleEntryRepository) ListByClassAndRange(ctx context.Context, classID string, dateRange models.DateRange) ([]models.ScheduleEntry, error) {
	const query = `SELECT id, class_id, subject_id, teacher_id, schedule_date, slot_number, room, subgroup_id
FROM schedule_entries
WHERE class_id = $1 AND schedule_date >= $2 AND schedule_date <= $3
ORDER BY schedule_date ASC, slot_number ASC`
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, classID, dateRange.From, dateRange.To); err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}
	return entries, nil
}
