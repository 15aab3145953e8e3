package repository

import "vita/entities"

type CheckInRepository interface {
	Create(ci *entities.CheckIn) error
	// ListByUser returns check-ins newest first.
	ListByUser(userID string) ([]entities.CheckIn, error)
}
