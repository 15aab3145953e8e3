package serviceImp

import (
	"strings"
	"testing"

	"vita/entities"
	"vita/pkg/plan/types"
)

func intPtr(v int) *int { return &v }

func TestBuildWhyChangedInitial(t *testing.T) {
	msg := BuildWhyChanged(entities.SourceInitial, nil, nil, nil)
	if !strings.Contains(msg, "Initial generated plan") {
		t.Fatalf("message = %q", msg)
	}
	// an initial plan without a diff must not claim there was no change
	if strings.Contains(msg, "stayed close") {
		t.Fatalf("initial message must not mention the previous version: %q", msg)
	}
}

func TestBuildWhyChangedCheckInScenario(t *testing.T) {
	diff := &types.Diff{ChangedFields: []string{"workout.title", "nutrition.focus"}}
	previous := &types.CheckInSnapshot{Energy: intPtr(2), Mood: intPtr(2), Symptoms: []string{}}
	current := &types.CheckInSnapshot{Energy: intPtr(4), Mood: intPtr(3), Symptoms: []string{"cramps"}}

	msg := BuildWhyChanged(entities.SourceCheckin, diff, previous, current)

	for _, want := range []string{
		"daily check-in",
		"Energy increased (2 to 4).",
		"Mood improved (2 to 3).",
		"New symptoms reported: cramps.",
		"workout recommendations",
		"meal recommendations",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestBuildWhyChangedDirectionalWording(t *testing.T) {
	previous := &types.CheckInSnapshot{Energy: intPtr(5), Mood: intPtr(4)}
	current := &types.CheckInSnapshot{Energy: intPtr(1), Mood: intPtr(2)}

	msg := BuildWhyChanged(entities.SourceCheckin, nil, previous, current)
	if !strings.Contains(msg, "Energy decreased (5 to 1).") {
		t.Errorf("message = %q", msg)
	}
	if !strings.Contains(msg, "Mood dropped (4 to 2).") {
		t.Errorf("message = %q", msg)
	}
}

func TestBuildWhyChangedFirstCheckIn(t *testing.T) {
	current := &types.CheckInSnapshot{Energy: intPtr(3)}
	msg := BuildWhyChanged(entities.SourceCheckin, nil, nil, current)
	if !strings.Contains(msg, "reflects your latest check-in") {
		t.Fatalf("message = %q", msg)
	}
}

func TestBuildWhyChangedNoStructuralChange(t *testing.T) {
	msg := BuildWhyChanged(entities.SourceProfileUpdate, &types.Diff{}, nil, nil)
	if !strings.Contains(msg, "stayed close to the previous version") {
		t.Fatalf("message = %q", msg)
	}
	if !strings.Contains(msg, "profile updates") {
		t.Fatalf("message = %q", msg)
	}
}

func TestBuildWhyChangedSymptomListCap(t *testing.T) {
	previous := &types.CheckInSnapshot{}
	current := &types.CheckInSnapshot{Symptoms: []string{"a", "b", "c", "d"}}

	msg := BuildWhyChanged(entities.SourceCheckin, nil, previous, current)
	if !strings.Contains(msg, "New symptoms reported: a, b, c.") {
		t.Fatalf("message = %q", msg)
	}
	if strings.Contains(msg, ", d") {
		t.Fatalf("more than three symptoms listed: %q", msg)
	}
}

func TestBuildWhyChangedAreaEnumeration(t *testing.T) {
	cases := []struct {
		name   string
		fields []string
		want   string
	}{
		{"one area", []string{"workout.title"}, "We updated your workout recommendations."},
		{"two areas", []string{"workout.title", "nutrition.focus"},
			"We updated your workout recommendations and meal recommendations."},
		{"three areas", []string{"workout.title", "nutrition.focus", "insight"},
			"We updated your workout recommendations, meal recommendations, and daily insight."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := BuildWhyChanged(entities.SourceCheckin, &types.Diff{ChangedFields: tc.fields}, nil, nil)
			if !strings.Contains(msg, tc.want) {
				t.Fatalf("message %q missing %q", msg, tc.want)
			}
		})
	}
}

func TestBuildWhyChangedDeterministic(t *testing.T) {
	diff := &types.Diff{ChangedFields: []string{"workout.title", "insight"}}
	current := &types.CheckInSnapshot{Energy: intPtr(4), Symptoms: []string{"headache"}}
	previous := &types.CheckInSnapshot{Energy: intPtr(2)}

	first := BuildWhyChanged(entities.SourceCheckin, diff, previous, current)
	for i := 0; i < 10; i++ {
		if got := BuildWhyChanged(entities.SourceCheckin, diff, previous, current); got != first {
			t.Fatalf("output varied: %q vs %q", got, first)
		}
	}
}
