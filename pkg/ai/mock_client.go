package ai

import (
	"vita/pkg/plan/types"
	"vita/pkg/profile"
)

type mockClient struct{}

// NewMock returns a deterministic generator used when no LLM endpoint is
// configured. Identical inputs always produce the same document.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) GeneratePlan(snapshot profile.Snapshot, checkIn *types.CheckInSnapshot, kbCtx string) (map[string]any, error) {
	workoutTitle := "Full-body strength"
	whyToday := "A balanced session fits a general training focus."
	exercises := []any{"Squats", "Push-ups", "Plank"}
	focus := "Balanced macros"
	insight := "Consistency beats intensity."

	switch snapshot.CyclePhase {
	case "Menstrual":
		workoutTitle = "Gentle mobility"
		whyToday = "Low-impact movement supports recovery during the menstrual phase."
		exercises = []any{"Walk", "Stretch", "Breathing"}
		focus = "Iron-rich comfort meals"
		insight = "Rest is productive this week."
	case "Follicular":
		workoutTitle = "Progressive strength"
		whyToday = "Rising energy in the follicular phase suits heavier lifts."
		exercises = []any{"Deadlifts", "Lunges", "Rows"}
		focus = "Lean protein and complex carbs"
		insight = "Good window to push for progress."
	case "Ovulatory":
		workoutTitle = "High-intensity intervals"
		whyToday = "Peak energy around ovulation handles intensity well."
		exercises = []any{"Sprints", "Burpees", "Kettlebell swings"}
		focus = "Light, hydrating meals"
		insight = "Mind your warm-up at high intensity."
	case "Luteal":
		workoutTitle = "Steady-state endurance"
		whyToday = "Moderate effort matches the luteal phase."
		exercises = []any{"Cycling", "Yoga", "Core circuit"}
		focus = "Magnesium and steady energy"
		insight = "Cravings are normal; plan snacks ahead."
	}

	if checkIn != nil && checkIn.Energy != nil && *checkIn.Energy <= 2 {
		workoutTitle = "Easy day"
		whyToday = "Low reported energy calls for a lighter session."
		exercises = []any{"Walk", "Stretch"}
	}

	return map[string]any{
		"workout": map[string]any{
			"title":     workoutTitle,
			"whyToday":  whyToday,
			"exercises": exercises,
		},
		"nutrition": map[string]any{
			"focus": focus,
			"meals": map[string]any{
				"breakfast": "Oats with berries",
				"lunch":     "Grain bowl with greens",
				"dinner":    "Salmon and vegetables",
			},
		},
		"insight": insight,
	}, nil
}
