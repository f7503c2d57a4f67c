package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ediary-dev/ediary-api/internal/models"
)

// DefaultSlotRepository reads the school-wide lesson time grid.
type DefaultSlotRepository struct {
	db *sqlx.DB
}

// NewDefaultSlotRepository creates a new default slot repository.
func NewDefaultSlotRepository(db *sqlx.DB) *DefaultSlotRepository {
	return &DefaultSlotRepository{db: db}
}

// List returns every default slot ordered by slot number.
func (r *DefaultSlotRepository) List(ctx context.Context) ([]models.TimeSlotDefault, error) {
	const query = `SELECT slot_number, start_time, end_time FROM time_slot_defaults ORDER BY slot_number ASC`
	var slots []models.TimeSlotDefault
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list default slots: %w", err)
	}
	return slots, nil
}

// FindBySlotNumber loads one default slot. sql.ErrNoRows when undefined.
func (r *DefaultSlotRepository) FindBySlotNumber(ctx context.Context, slotNumber int) (*models.TimeSlotDefault, error) {
	const query = `SELECT slot_number, start_time, end_time FROM time_slot_defaults WHERE slot_number = $1`
	var slot models.TimeSlotDefault
	if err := r.db.GetContext(ctx, &slot, query, slotNumber); err != nil {
		return nil, err
	}
	return &slot, nil
}
