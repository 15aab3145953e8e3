package entities

import (
	"time"

	"gorm.io/datatypes"
)

// CycleDetails is derived input for cycle computations. It lives on the user
// profile and is never persisted on its own.
type CycleDetails struct {
	LastPeriodDate *time.Time `json:"lastPeriodDate"`
	AvgCycleLength *int       `json:"avgCycleLength"`
}

type User struct {
	UserID       string    `gorm:"primaryKey" json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Height       *float64  `json:"height"`
	Weight       *float64  `json:"weight"`
	Goals        []string  `gorm:"serializer:json" json:"goals"`
	DietaryNeeds []string  `gorm:"serializer:json" json:"dietary_needs"`
	Equipment    string    `json:"equipment"` // Gym|Home|None

	CycleTracking bool          `json:"cycle_tracking"`
	CycleDetails  *CycleDetails `gorm:"serializer:json" json:"cycle_details"`

	// CurrentPlan mirrors the plan of the newest PlanVersion. Written only by
	// the assign attempt that won the version race.
	CurrentPlan          datatypes.JSON `json:"current_plan,omitempty"`
	CurrentPlanVersionID *uint          `json:"current_plan_version_id,omitempty"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
