package checkin

import "vita/pkg/plan/types"

// Input is the raw check-in payload before validation. Energy and mood arrive
// as floats so out-of-range and fractional values can be rejected explicitly.
type Input struct {
	Energy   *float64 `json:"energy"`
	Mood     *float64 `json:"mood"`
	Symptoms []string `json:"symptoms"`
}

const maxSymptoms = 10

// Sanitize validates a check-in and produces the snapshot stored on the plan
// version. Absent energy/mood stay nil; symptoms are capped at 10 entries.
func Sanitize(in Input) (types.CheckInSnapshot, []string) {
	var errs []string
	out := types.CheckInSnapshot{Symptoms: []string{}}

	if in.Energy != nil {
		if v, ok := scaleValue(*in.Energy); ok {
			out.Energy = &v
		} else {
			errs = append(errs, "energy must be an integer between 1 and 5")
		}
	}
	if in.Mood != nil {
		if v, ok := scaleValue(*in.Mood); ok {
			out.Mood = &v
		} else {
			errs = append(errs, "mood must be an integer between 1 and 5")
		}
	}

	symptoms := in.Symptoms
	if len(symptoms) > maxSymptoms {
		symptoms = symptoms[:maxSymptoms]
	}
	out.Symptoms = append(out.Symptoms, symptoms...)

	return out, errs
}

func scaleValue(v float64) (int, bool) {
	n := int(v)
	if float64(n) != v || n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}
