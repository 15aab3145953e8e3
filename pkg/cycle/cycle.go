package cycle

import (
	"time"

	"vita/entities"
)

type Phase string

const (
	Menstrual  Phase = "Menstrual"
	Follicular Phase = "Follicular"
	Ovulatory  Phase = "Ovulatory"
	Luteal     Phase = "Luteal"
)

// Day computes the current 1-indexed day within the cycle, wrapping every
// AvgCycleLength days. ok is false when the details are incomplete, the
// length is non-positive, or the reference date is in the future.
func Day(d *entities.CycleDetails) (int, bool) {
	return DayAt(d, time.Now())
}

func DayAt(d *entities.CycleDetails, now time.Time) (int, bool) {
	if d == nil || d.LastPeriodDate == nil || d.AvgCycleLength == nil {
		return 0, false
	}
	length := *d.AvgCycleLength
	if length <= 0 {
		return 0, false
	}
	elapsed := now.Sub(*d.LastPeriodDate)
	if elapsed < 0 {
		return 0, false
	}
	day := int(elapsed/(24*time.Hour)) + 1
	return ((day-1)%length + 1), true
}

// CyclePhase estimates the phase from the cycle day. The ovulation window is
// centered one day around length-14 and never overlaps the menstrual window.
func CyclePhase(d *entities.CycleDetails) (Phase, bool) {
	return PhaseAt(d, time.Now())
}

func PhaseAt(d *entities.CycleDetails, now time.Time) (Phase, bool) {
	day, ok := DayAt(d, now)
	if !ok {
		return "", false
	}
	length := *d.AvgCycleLength

	menstrualEnd := min(5, length)
	ovulationDay := max(1, min(length, length-14))
	ovulationStart := max(menstrualEnd+1, ovulationDay-1)
	ovulationEnd := min(length, ovulationDay+1)

	switch {
	case day <= menstrualEnd:
		return Menstrual, true
	case day < ovulationStart:
		return Follicular, true
	case day <= ovulationEnd:
		return Ovulatory, true
	default:
		return Luteal, true
	}
}
