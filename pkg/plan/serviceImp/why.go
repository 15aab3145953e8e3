package serviceImp

import (
	"fmt"
	"strings"

	"vita/entities"
	"vita/pkg/plan/types"
)

// BuildWhyChanged composes the deterministic explanation attached to a plan
// version. The changed-areas wording is the canonical variant: fragments name
// the updated areas rather than counting changed fields.
func BuildWhyChanged(source string, diff *types.Diff, previous, current *types.CheckInSnapshot) string {
	var parts []string

	switch source {
	case entities.SourceInitial:
		parts = append(parts, "Initial generated plan from baseline profile data.")
	case entities.SourceProfileUpdate:
		parts = append(parts, "Your plan was refreshed after profile updates.")
	case entities.SourceCheckin:
		parts = append(parts, "Your plan was refreshed from your daily check-in.")
	}

	if reason := describeCheckInChanges(previous, current); reason != "" {
		parts = append(parts, reason)
	}

	if msg := describeChangedAreas(diff); msg != "" {
		parts = append(parts, msg)
	} else if source != entities.SourceInitial {
		parts = append(parts, "Your plan stayed close to the previous version.")
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

func describeChangedAreas(diff *types.Diff) string {
	var changed []string
	if diff != nil {
		changed = diff.ChangedFields
	}

	var areas []string
	if anyHasPrefix(changed, "workout") {
		areas = append(areas, "workout recommendations")
	}
	if anyHasPrefix(changed, "nutrition") {
		areas = append(areas, "meal recommendations")
	}
	for _, f := range changed {
		if f == "insight" {
			areas = append(areas, "daily insight")
			break
		}
	}

	if len(areas) == 0 {
		return ""
	}
	return fmt.Sprintf("We updated your %s.", joinEnglish(areas))
}

func describeCheckInChanges(previous, current *types.CheckInSnapshot) string {
	if current == nil {
		return ""
	}
	if previous == nil {
		return "This version reflects your latest check-in inputs."
	}

	var reasons []string

	if previous.Energy != nil && current.Energy != nil && *previous.Energy != *current.Energy {
		direction := "decreased"
		if *current.Energy > *previous.Energy {
			direction = "increased"
		}
		reasons = append(reasons, fmt.Sprintf("Energy %s (%d to %d).", direction, *previous.Energy, *current.Energy))
	}

	if previous.Mood != nil && current.Mood != nil && *previous.Mood != *current.Mood {
		direction := "dropped"
		if *current.Mood > *previous.Mood {
			direction = "improved"
		}
		reasons = append(reasons, fmt.Sprintf("Mood %s (%d to %d).", direction, *previous.Mood, *current.Mood))
	}

	if added := missingFrom(current.Symptoms, previous.Symptoms); len(added) > 0 {
		if len(added) > 3 {
			added = added[:3]
		}
		reasons = append(reasons, fmt.Sprintf("New symptoms reported: %s.", strings.Join(added, ", ")))
	}

	return strings.Join(reasons, " ")
}

func anyHasPrefix(fields []string, prefix string) bool {
	for _, f := range fields {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

// joinEnglish renders a list as English prose: "a", "a and b",
// "a, b, and c".
func joinEnglish(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
