package serviceImp

import (
	"reflect"
	"testing"

	"vita/pkg/plan/types"
)

func previousScenarioPlan() map[string]any {
	return map[string]any{
		"workout": map[string]any{
			"title":     "Easy day",
			"exercises": []any{"Walk", "Stretch"},
		},
		"nutrition": map[string]any{
			"focus": "Balanced",
			"meals": map[string]any{"breakfast": "Oats", "lunch": "Salad", "dinner": "Fish"},
		},
		"insight": "Stay consistent.",
	}
}

func currentScenarioPlan() map[string]any {
	return map[string]any{
		"workout": map[string]any{
			"title":     "Strength day",
			"exercises": []any{"Squats", "Stretch"},
		},
		"nutrition": map[string]any{
			"focus": "High protein",
			"meals": map[string]any{"breakfast": "Eggs", "lunch": "Chicken bowl", "dinner": "Fish"},
		},
		"insight": "Recovery supports performance.",
	}
}

func TestBuildPlanDiffScenario(t *testing.T) {
	d := BuildPlanDiff(previousScenarioPlan(), currentScenarioPlan())

	want := []string{
		"workout.title",
		"nutrition.focus",
		"insight",
		"workout.exercises",
		"nutrition.meals.breakfast",
		"nutrition.meals.lunch",
	}
	if !reflect.DeepEqual(d.ChangedFields, want) {
		t.Fatalf("changedFields = %v, want %v", d.ChangedFields, want)
	}

	ex, ok := d.Changes["workout.exercises"]
	if !ok {
		t.Fatalf("missing workout.exercises change")
	}
	if !reflect.DeepEqual(ex.Added, []string{"Squats"}) || !reflect.DeepEqual(ex.Removed, []string{"Walk"}) {
		t.Fatalf("exercises change = %+v", ex)
	}

	title := d.Changes["workout.title"]
	if title.From != "Easy day" || title.To != "Strength day" {
		t.Fatalf("title change = %+v", title)
	}

	if _, ok := d.Changes["nutrition.meals.dinner"]; ok {
		t.Fatalf("dinner did not change but was reported")
	}
}

func TestBuildPlanDiffIdempotent(t *testing.T) {
	cases := []struct {
		name string
		plan map[string]any
	}{
		{"full plan", previousScenarioPlan()},
		{"nil plan", nil},
		{"empty plan", map[string]any{}},
		{"malformed plan", map[string]any{"workout": "not a map", "insight": 42}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := BuildPlanDiff(tc.plan, tc.plan)
			if len(d.ChangedFields) != 0 || len(d.Changes) != 0 {
				t.Fatalf("diff(X, X) = %+v, want empty", d)
			}
		})
	}
}

func TestBuildPlanDiffFixedFieldOrder(t *testing.T) {
	// change insight and the title; order must stay title-then-insight no
	// matter which side changed
	previous := map[string]any{"insight": "a", "workout": map[string]any{"title": "x"}}
	current := map[string]any{"insight": "b", "workout": map[string]any{"title": "y"}}

	d := BuildPlanDiff(previous, current)
	want := []string{"workout.title", "insight"}
	if !reflect.DeepEqual(d.ChangedFields, want) {
		t.Fatalf("changedFields = %v, want %v", d.ChangedFields, want)
	}
}

func TestBuildPlanDiffUnwrapsNestedPlanKey(t *testing.T) {
	wrapped := map[string]any{"plan": previousScenarioPlan()}

	d := BuildPlanDiff(wrapped, previousScenarioPlan())
	if len(d.ChangedFields) != 0 {
		t.Fatalf("wrapped vs bare identical plans must not differ: %v", d.ChangedFields)
	}
}

func TestBuildPlanDiffCoercesMissingToEmpty(t *testing.T) {
	previous := map[string]any{"workout": map[string]any{"title": "Easy day"}}

	d := BuildPlanDiff(previous, map[string]any{})
	ch, ok := d.Changes["workout.title"]
	if !ok {
		t.Fatalf("expected a title change")
	}
	if ch.From != "Easy day" || ch.To != "" {
		t.Fatalf("title change = %+v", ch)
	}
}

func TestBuildPlanDiffDropsNonStringExercises(t *testing.T) {
	previous := map[string]any{"workout": map[string]any{"exercises": []any{"Walk", 7}}}
	current := map[string]any{"workout": map[string]any{"exercises": []any{"Walk"}}}

	d := BuildPlanDiff(previous, current)
	if len(d.ChangedFields) != 0 {
		t.Fatalf("non-string entries must be ignored: %v", d.ChangedFields)
	}
}

func TestNormalizePlanDocument(t *testing.T) {
	inner := map[string]any{"insight": "x"}
	if got := types.NormalizePlanDocument(map[string]any{"plan": inner}); !reflect.DeepEqual(got, inner) {
		t.Fatalf("wrapped doc = %v", got)
	}
	// a scalar under the plan key is not a wrapper
	doc := map[string]any{"plan": "free text"}
	if got := types.NormalizePlanDocument(doc); !reflect.DeepEqual(got, doc) {
		t.Fatalf("non-map plan key must not unwrap: %v", got)
	}
	if got := types.NormalizePlanDocument(nil); len(got) != 0 {
		t.Fatalf("nil doc = %v", got)
	}
}
