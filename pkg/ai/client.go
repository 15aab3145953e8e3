package ai

import (
	"vita/pkg/plan/types"
	"vita/pkg/profile"
)

// Client produces a raw plan document from a profile snapshot and optional
// check-in. The document is treated opaquely downstream: no schema validation
// is performed, and malformed model output degrades to a raw-wrapped document
// rather than an error.
type Client interface {
	GeneratePlan(snapshot profile.Snapshot, checkIn *types.CheckInSnapshot, kbCtx string) (map[string]any, error)
}
