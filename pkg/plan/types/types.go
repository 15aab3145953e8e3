package types

import "time"

// CheckInSnapshot is the sanitized copy of check-in inputs stored on a plan
// version. Nil energy/mood mean the field was not reported.
type CheckInSnapshot struct {
	Energy   *int     `json:"energy"`
	Mood     *int     `json:"mood"`
	Symptoms []string `json:"symptoms"`
}

// Change describes one tracked field change. Scalar fields carry from/to;
// the exercises list carries added/removed.
type Change struct {
	From    string   `json:"from,omitempty"`
	To      string   `json:"to,omitempty"`
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// Diff is the structural comparison between two plan documents, restricted
// to the tracked field set. ChangedFields keeps the fixed enumeration order.
type Diff struct {
	ChangedFields []string          `json:"changedFields"`
	Changes       map[string]Change `json:"changes"`
}

// HistoryItem is the list projection of one plan version.
type HistoryItem struct {
	ID            uint      `json:"id"`
	Version       int       `json:"version"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"createdAt"`
	WhyChanged    string    `json:"whyChanged"`
	ChangedFields []string  `json:"changedFields"`
	Preview       Preview   `json:"preview"`
}

type Preview struct {
	WorkoutTitle   string `json:"workoutTitle"`
	NutritionFocus string `json:"nutritionFocus"`
	Insight        string `json:"insight"`
}

type HistoryPage struct {
	Items    []HistoryItem `json:"items"`
	PageInfo PageInfo      `json:"pageInfo"`
}

type PageInfo struct {
	HasMore    bool   `json:"hasMore"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// NormalizePlanDocument collapses the two shapes generated plans arrive in:
// the document itself, or the document wrapped one level under a "plan" key.
// A nil document normalizes to an empty map.
func NormalizePlanDocument(doc map[string]any) map[string]any {
	if doc == nil {
		return map[string]any{}
	}
	if inner, ok := doc["plan"].(map[string]any); ok {
		return inner
	}
	return doc
}
