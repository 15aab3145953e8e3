package repository

import (
	"errors"
	"time"

	"vita/entities"
)

// ErrDuplicateVersion reports that another writer already claimed the
// (userId, version) pair. Callers are expected to re-read and retry.
var ErrDuplicateVersion = errors.New("plan version already exists for user")

type PlanVersionRepository interface {
	// LatestByUser returns the highest-version row for the user, projecting
	// only id, user_id, version, plan and check_in_snapshot. Returns
	// (nil, nil) when the user has no versions yet.
	LatestByUser(userID string) (*entities.PlanVersion, error)
	// Create inserts the row, surfacing ErrDuplicateVersion on a
	// (user_id, version) uniqueness violation.
	Create(pv *entities.PlanVersion) error
	// ListByUser returns up to limit rows ordered version DESC, optionally
	// restricted to versions strictly below beforeVersion.
	ListByUser(userID string, beforeVersion *int, limit int) ([]entities.PlanVersion, error)
	CountSince(userID string, since time.Time) (int64, error)
}
