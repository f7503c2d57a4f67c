package service

import (
	"context"

	"github.com/ediary-dev/ediary-api/internal/models"
	appErrors "github.com/ediary-dev/ediary-api/pkg/errors"
)

type membershipReader interface {
	ListMemberships(ctx context.Context, studentID string) ([]string, error)
	ListChildIDs(ctx context.Context, parentID string) ([]string, error)
}

// ViewerScope is a viewer resolved against the roster: the role, the acting
// user and the set of subgroup ids the viewer may see lessons for. For a
// parent the set is the union over all linked children.
type ViewerScope struct {
	Role      models.UserRole
	UserID    string
	Subgroups map[string]struct{}
}

// FilterVisible returns the subset of entries the viewer may see, preserving
// input order. First matching rule wins per entry; the function is pure,
// never mutates entries and is idempotent under re-application. Unrecognized
// roles fail closed.
func FilterVisible(entries []models.ScheduleEntry, scope ViewerScope) []models.ScheduleEntry {
	switch {
	case scope.Role.IsAdminFamily():
		return entries
	case scope.Role == models.RoleTeacher:
		visible := make([]models.ScheduleEntry, 0, len(entries))
		for _, entry := range entries {
			if entry.TeacherID == scope.UserID {
				visible = append(visible, entry)
			}
		}
		return visible
	case scope.Role == models.RoleStudent, scope.Role == models.RoleParent:
		visible := make([]models.ScheduleEntry, 0, len(entries))
		for _, entry := range entries {
			if entry.SubgroupID == nil {
				visible = append(visible, entry)
				continue
			}
			if _, ok := scope.Subgroups[*entry.SubgroupID]; ok {
				visible = append(visible, entry)
			}
		}
		return visible
	default:
		return nil
	}
}

// resolveViewerScope builds the subgroup membership set for a viewer. Scope
// construction is the only part of visibility that touches collaborators, so
// FilterVisible itself stays pure.
func resolveViewerScope(ctx context.Context, viewer models.Viewer, memberships membershipReader) (ViewerScope, error) {
	scope := ViewerScope{Role: viewer.Role, UserID: viewer.UserID}

	switch viewer.Role {
	case models.RoleStudent:
		ids, err := memberships.ListMemberships(ctx, viewer.UserID)
		if err != nil {
			return ViewerScope{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subgroup memberships")
		}
		scope.Subgroups = toSet(ids)
	case models.RoleParent:
		children, err := memberships.ListChildIDs(ctx, viewer.UserID)
		if err != nil {
			return ViewerScope{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load linked children")
		}
		scope.Subgroups = make(map[string]struct{})
		for _, childID := range children {
			ids, err := memberships.ListMemberships(ctx, childID)
			if err != nil {
				return ViewerScope{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subgroup memberships")
			}
			for _, id := range ids {
				scope.Subgroups[id] = struct{}{}
			}
		}
	}

	return scope, nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
