package serviceImp

import "vita/pkg/plan/types"

// Tracked scalar paths, in the order they are reported.
var scalarPaths = []struct {
	path string
	keys []string
}{
	{"workout.title", []string{"workout", "title"}},
	{"workout.whyToday", []string{"workout", "whyToday"}},
	{"nutrition.focus", []string{"nutrition", "focus"}},
	{"insight", []string{"insight"}},
}

var mealKeys = []string{"breakfast", "lunch", "dinner"}

// BuildPlanDiff compares two plan documents over the tracked field set.
// It is total: missing or malformed fields coerce to neutral values, and
// identical documents always produce an empty diff.
func BuildPlanDiff(previousRaw, currentRaw map[string]any) types.Diff {
	previous := types.NormalizePlanDocument(previousRaw)
	current := types.NormalizePlanDocument(currentRaw)

	d := types.Diff{ChangedFields: []string{}, Changes: map[string]types.Change{}}

	diffScalar := func(path string, keys []string) {
		from := stringAt(previous, keys)
		to := stringAt(current, keys)
		if from == to {
			return
		}
		d.Changes[path] = types.Change{From: from, To: to}
		d.ChangedFields = append(d.ChangedFields, path)
	}

	for _, sp := range scalarPaths {
		diffScalar(sp.path, sp.keys)
	}

	prevExercises := stringListAt(previous, []string{"workout", "exercises"})
	currExercises := stringListAt(current, []string{"workout", "exercises"})
	added := missingFrom(currExercises, prevExercises)
	removed := missingFrom(prevExercises, currExercises)
	if len(added) > 0 || len(removed) > 0 {
		d.Changes["workout.exercises"] = types.Change{Added: added, Removed: removed}
		d.ChangedFields = append(d.ChangedFields, "workout.exercises")
	}

	for _, meal := range mealKeys {
		diffScalar("nutrition.meals."+meal, []string{"nutrition", "meals", meal})
	}

	return d
}

// stringAt walks nested maps and coerces the leaf to a string, returning ""
// for anything missing or non-string.
func stringAt(doc map[string]any, keys []string) string {
	cur := any(doc)
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[k]
	}
	s, _ := cur.(string)
	return s
}

// stringListAt coerces the leaf to a list of strings, dropping non-string
// entries.
func stringListAt(doc map[string]any, keys []string) []string {
	cur := any(doc)
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[k]
	}
	raw, ok := cur.([]any)
	if !ok {
		if typed, ok := cur.([]string); ok {
			return typed
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// missingFrom returns items of a absent from b, by membership.
func missingFrom(a, b []string) []string {
	if len(a) == 0 {
		return nil
	}
	have := make(map[string]struct{}, len(b))
	for _, v := range b {
		have[v] = struct{}{}
	}
	var out []string
	for _, v := range a {
		if _, ok := have[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
