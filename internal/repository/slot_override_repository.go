package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ediary-dev/ediary-api/internal/models"
)

// SlotOverrideRepository manages per-class lesson time overrides.
type SlotOverrideRepository struct {
	db *sqlx.DB
}

// NewSlotOverrideRepository creates a new override repository.
func NewSlotOverrideRepository(db *sqlx.DB) *SlotOverrideRepository {
	return &SlotOverrideRepository{db: db}
}

// ListByClass returns all overrides for a class ordered by slot number.
func (r *SlotOverrideRepository) ListByClass(ctx context.Context, classID string) ([]models.ClassTimeSlotOverride, error) {
	const query = `SELECT id, class_id, slot_number, start_time, end_time, created_at, updated_at
FROM class_time_slot_overrides WHERE class_id = $1 ORDER BY slot_number ASC`
	var overrides []models.ClassTimeSlotOverride
	if err := r.db.SelectContext(ctx, &overrides, query, classID); err != nil {
		return nil, fmt.Errorf("list slot overrides: %w", err)
	}
	return overrides, nil
}

// Find loads the override for a (class, slot number) pair. sql.ErrNoRows when
// no override exists.
func (r *SlotOverrideRepository) Find(ctx context.Context, classID string, slotNumber int) (*models.ClassTimeSlotOverride, error) {
	const query = `SELECT id, class_id, slot_number, start_time, end_time, created_at, updated_at
FROM class_time_slot_overrides WHERE class_id = $1 AND slot_number = $2`
	var override models.ClassTimeSlotOverride
	if err := r.db.GetContext(ctx, &override, query, classID, slotNumber); err != nil {
		return nil, err
	}
	return &override, nil
}

// Upsert inserts or updates the override keyed on (class_id, slot_number).
func (r *SlotOverrideRepository) Upsert(ctx context.Context, override *models.ClassTimeSlotOverride) error {
	if override.ID == "" {
		override.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if override.CreatedAt.IsZero() {
		override.CreatedAt = now
	}
	override.UpdatedAt = now

	const query = `
INSERT INTO class_time_slot_overrides (id, class_id, slot_number, start_time, end_time, created_at, updated_at)
VALUES (:id, :class_id, :slot_number, :start_time, :end_time, :created_at, :updated_at)
ON CONFLICT (class_id, slot_number) DO UPDATE
SET start_time = EXCLUDED.start_time,
    end_time = EXCLUDED.end_time,
    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, override); err != nil {
		return fmt.Errorf("upsert slot override: %w", err)
	}
	return nil
}

// Delete removes the override for a (class, slot number) pair. Removing a
// non-existent override is a no-op.
func (r *SlotOverrideRepository) Delete(ctx context.Context, classID string, slotNumber int) error {
	const query = `DELETE FROM class_time_slot_overrides WHERE class_id = $1 AND slot_number = $2`
	if _, err := r.db.ExecContext(ctx, query, classID, slotNumber); err != nil {
		return fmt.Errorf("delete slot override: %w", err)
	}
	return nil
}

// DeleteAllByClass removes every override for a class in one statement, so
// the reset is all-or-nothing.
func (r *SlotOverrideRepository) DeleteAllByClass(ctx context.Context, classID string) error {
	const query = `DELETE FROM class_time_slot_overrides WHERE class_id = $1`
	if _, err := r.db.ExecContext(ctx, query, classID); err != nil {
		return fmt.Errorf("reset slot overrides: %w", err)
	}
	return nil
}
