package profile

import (
	"strings"
	"testing"
	"time"

	"vita/entities"
)

func TestBuildTrackingOff(t *testing.T) {
	s := Build(&entities.User{UserID: "u1"})

	if s.BioContext != "General Focus" {
		t.Fatalf("bioContext = %q", s.BioContext)
	}
	if s.CycleDay != nil || s.CyclePhase != "" {
		t.Fatalf("cycle fields must stay empty when tracking is off: %+v", s)
	}
	if s.Goals == nil || s.DietaryNeeds == nil {
		t.Fatalf("slices must be non-nil for snapshot JSON")
	}
	if s.Equipment != "None" {
		t.Fatalf("equipment default = %q", s.Equipment)
	}
}

func TestBuildTrackingOnIncomplete(t *testing.T) {
	s := Build(&entities.User{UserID: "u1", CycleTracking: true})

	if !strings.Contains(s.BioContext, "incomplete") {
		t.Fatalf("bioContext = %q", s.BioContext)
	}
}

func TestBuildTrackingOnComplete(t *testing.T) {
	length := 28
	start := time.Now().AddDate(0, 0, -2) // cycle day 3
	s := Build(&entities.User{
		UserID:        "u1",
		CycleTracking: true,
		CycleDetails:  &entities.CycleDetails{LastPeriodDate: &start, AvgCycleLength: &length},
	})

	if s.CycleDay == nil || *s.CycleDay != 3 {
		t.Fatalf("cycleDay = %v", s.CycleDay)
	}
	if s.CyclePhase != "Menstrual" {
		t.Fatalf("cyclePhase = %q", s.CyclePhase)
	}
	if s.BioContext != "Menstrual phase (Day 3 of 28-day cycle)" {
		t.Fatalf("bioContext = %q", s.BioContext)
	}
}
