package entities

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SourceInitial       = "initial"
	SourceCheckin       = "checkin"
	SourceProfileUpdate = "profile_update"
)

// PlanVersion is one immutable numbered snapshot of a generated plan.
// The composite unique index on (user_id, version) is the sole arbiter of
// version assignment under concurrent writers.
type PlanVersion struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  string `gorm:"index;uniqueIndex:uidx_user_version" json:"user_id"`
	Version int    `gorm:"uniqueIndex:uidx_user_version" json:"version"`
	Source  string `json:"source"` // initial|checkin|profile_update

	Plan             datatypes.JSON `json:"plan"`
	CheckInSnapshot  datatypes.JSON `json:"check_in_snapshot,omitempty"`
	ProfileSnapshot  datatypes.JSON `json:"profile_snapshot,omitempty"`
	DiffFromPrevious datatypes.JSON `json:"diff_from_previous,omitempty"`
	WhyChanged       string         `json:"why_changed"`

	CreatedAt time.Time `json:"created_at"`
}
