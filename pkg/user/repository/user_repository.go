package repository

import (
	"vita/entities"

	"gorm.io/datatypes"
)

type UserRepository interface {
	// FindOrCreate loads the user, creating an empty profile on first sight
	// of a uid (dev-login mints uids client-side).
	FindOrCreate(userID string) (*entities.User, error)
	Update(u *entities.User) error
	// SetCurrentPlan moves the user's current-plan pointer. Called only by
	// the assign attempt that won the version race.
	SetCurrentPlan(userID string, plan datatypes.JSON, versionID uint) error
}
