package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ediary-dev/ediary-api/internal/models"
)

// SubgroupRepository reads subgroup rosters and family links.
type SubgroupRepository struct {
	db *sqlx.DB
}

// NewSubgroupRepository creates a new subgroup repository.
func NewSubgroupRepository(db *sqlx.DB) *SubgroupRepository {
	return &SubgroupRepository{db: db}
}

// ListByClass returns the subgroups defined for a class.
func (r *SubgroupRepository) ListByClass(ctx context.Context, classID string) ([]models.Subgroup, error) {
	const query = `SELECT id, class_id, name FROM subgroups WHERE class_id = $1 ORDER BY name ASC`
	var subgroups []models.Subgroup
	if err := r.db.SelectContext(ctx, &subgroups, query, classID); err != nil {
		return nil, fmt.Errorf("list subgroups: %w", err)
	}
	return subgroups, nil
}

// ListMemberships returns the subgroup ids a student belongs to, scoped to
// subgroups of the student's own class.
func (r *SubgroupRepository) ListMemberships(ctx context.Context, studentID string) ([]string, error) {
	const query = `SELECT m.subgroup_id
FROM subgroup_memberships m
JOIN subgroups s ON s.id = m.subgroup_id
JOIN students st ON st.id = m.student_id AND st.class_id = s.class_id
WHERE m.student_id = $1`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, studentID); err != nil {
		return nil, fmt.Errorf("list subgroup memberships: %w", err)
	}
	return ids, nil
}

// ListChildIDs returns the student ids linked to a parent account.
func (r *SubgroupRepository) ListChildIDs(ctx context.Context, parentID string) ([]string, error) {
	const query = `SELECT student_id FROM parent_links WHERE parent_id = $1`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, parentID); err != nil {
		return nil, fmt.Errorf("list linked children: %w", err)
	}
	return ids, nil
}
