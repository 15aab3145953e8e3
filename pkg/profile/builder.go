package profile

import (
	"fmt"

	"vita/entities"
	"vita/pkg/cycle"
)

// Snapshot is the immutable profile shape attached to every PlanVersion and
// handed to the plan generator.
type Snapshot struct {
	Height        *float64               `json:"height"`
	Weight        *float64               `json:"weight"`
	Goals         []string               `json:"goals"`
	DietaryNeeds  []string               `json:"dietaryNeeds"`
	Equipment     string                 `json:"equipment"`
	CycleTracking bool                   `json:"cycleTracking"`
	CycleDetails  *entities.CycleDetails `json:"cycleDetails"`
	CycleDay      *int                   `json:"cycleDay"`
	CyclePhase    string                 `json:"cyclePhase,omitempty"`
	BioContext    string                 `json:"bioContext"`
}

func Build(user *entities.User) Snapshot {
	s := Snapshot{
		Height:        user.Height,
		Weight:        user.Weight,
		Goals:         user.Goals,
		DietaryNeeds:  user.DietaryNeeds,
		Equipment:     user.Equipment,
		CycleTracking: user.CycleTracking,
		CycleDetails:  user.CycleDetails,
	}
	if s.Goals == nil {
		s.Goals = []string{}
	}
	if s.DietaryNeeds == nil {
		s.DietaryNeeds = []string{}
	}
	if s.Equipment == "" {
		s.Equipment = "None"
	}

	if user.CycleTracking {
		if day, ok := cycle.Day(user.CycleDetails); ok {
			s.CycleDay = &day
		}
		if phase, ok := cycle.CyclePhase(user.CycleDetails); ok {
			s.CyclePhase = string(phase)
		}
	}

	s.BioContext = bioContext(s)
	return s
}

func bioContext(s Snapshot) string {
	if !s.CycleTracking {
		return "General Focus"
	}
	length := 0
	if s.CycleDetails != nil && s.CycleDetails.AvgCycleLength != nil {
		length = *s.CycleDetails.AvgCycleLength
	}
	if s.CycleDay == nil || s.CyclePhase == "" || length <= 0 {
		return "Cycle tracking enabled, but phase data is incomplete"
	}
	return fmt.Sprintf("%s phase (Day %d of %d-day cycle)", s.CyclePhase, *s.CycleDay, length)
}
