package service

import (
	"vita/entities"
	"vita/pkg/plan/types"
)

type PlanService interface {
	// Generate builds a fresh plan for the user and persists it as the next
	// version. Source is "checkin" when a check-in accompanies the request,
	// otherwise "initial".
	Generate(user *entities.User, checkIn *types.CheckInSnapshot) (*entities.PlanVersion, map[string]any, error)
	// RegenerateAfterProfileUpdate rebuilds the plan with source
	// "profile_update" once a plan-relevant profile field changed.
	RegenerateAfterProfileUpdate(user *entities.User) (*entities.PlanVersion, error)
	History(userID string, limit int, beforeVersion *int) (types.HistoryPage, error)
}
