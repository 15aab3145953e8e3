package ai

import (
	"encoding/json"
	"fmt"

	"vita/pkg/plan/types"
	"vita/pkg/profile"
)

func renderPlanPrompt(snapshot profile.Snapshot, checkIn *types.CheckInSnapshot, kbCtx string) string {
	profileJSON, _ := json.MarshalIndent(snapshot, "", "  ")
	dailyPulse := "Baseline"
	if checkIn != nil {
		if b, err := json.MarshalIndent(checkIn, "", "  "); err == nil {
			dailyPulse = string(b)
		}
	}

	prompt := fmt.Sprintf(`You are a cycle-aware fitness and nutrition coach. Create safe, practical guidance.

Return VALID JSON ONLY in this shape:
{
  "workout": { "title": string, "whyToday": string, "exercises": [string] },
  "nutrition": { "focus": string, "meals": { "breakfast": string, "lunch": string, "dinner": string } },
  "insight": string
}

User profile:
%s

Daily pulse:
%s

Rules:
- Be cycle-phase aware (follicular/ovulation/luteal/menstrual).
- Include hydration + iron/protein notes if relevant.
- Avoid medical claims; if severe symptoms mentioned, advise consulting a clinician in the insight.
`, profileJSON, dailyPulse)

	if kbCtx != "" {
		prompt += "\nCoaching reference material:\n" + kbCtx + "\n"
	}
	return prompt
}
