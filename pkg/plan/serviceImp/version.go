package serviceImp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/datatypes"

	"vita/entities"
	"vita/pkg/plan/repository"
	"vita/pkg/plan/types"
	"vita/pkg/profile"
	userrepo "vita/pkg/user/repository"
)

const maxAssignAttempts = 3

// ErrExhaustedRetries is returned when every assign attempt lost the version
// race. No row is left committed in that case.
var ErrExhaustedRetries = errors.New("failed to create a unique plan version")

// VersionAssigner persists new plan versions under optimistic concurrency:
// read the latest version, compute diff and explanation, attempt an insert
// that the (user_id, version) unique index arbitrates, retry on collision.
type VersionAssigner struct {
	versions repository.PlanVersionRepository
	users    userrepo.UserRepository
}

func NewVersionAssigner(versions repository.PlanVersionRepository, users userrepo.UserRepository) *VersionAssigner {
	return &VersionAssigner{versions: versions, users: users}
}

func (a *VersionAssigner) Assign(user *entities.User, plan map[string]any, source string, checkIn *types.CheckInSnapshot) (*entities.PlanVersion, error) {
	if user == nil || user.UserID == "" {
		return nil, errors.New("assign requires a user with an id")
	}
	if plan == nil {
		return nil, errors.New("assign requires a plan document")
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}
	snapshotJSON, err := json.Marshal(profile.Build(user))
	if err != nil {
		return nil, fmt.Errorf("marshal profile snapshot: %w", err)
	}
	var checkInJSON datatypes.JSON
	if checkIn != nil {
		if checkInJSON, err = json.Marshal(checkIn); err != nil {
			return nil, fmt.Errorf("marshal check-in snapshot: %w", err)
		}
	}

	for attempt := 1; attempt <= maxAssignAttempts; attempt++ {
		latest, err := a.versions.LatestByUser(user.UserID)
		if err != nil {
			return nil, fmt.Errorf("read latest version: %w", err)
		}

		next := 1
		var diff *types.Diff
		var prevCheck *types.CheckInSnapshot
		if latest != nil {
			next = latest.Version + 1

			var prevPlan map[string]any
			if len(latest.Plan) > 0 {
				// tolerate malformed stored documents; diff treats them as empty
				_ = json.Unmarshal(latest.Plan, &prevPlan)
			}
			d := BuildPlanDiff(prevPlan, plan)
			diff = &d

			if len(latest.CheckInSnapshot) > 0 {
				var cs types.CheckInSnapshot
				if err := json.Unmarshal(latest.CheckInSnapshot, &cs); err == nil {
					prevCheck = &cs
				}
			}
		}

		var diffJSON datatypes.JSON
		if diff != nil {
			if diffJSON, err = json.Marshal(diff); err != nil {
				return nil, fmt.Errorf("marshal diff: %w", err)
			}
		}

		pv := &entities.PlanVersion{
			UserID:           user.UserID,
			Version:          next,
			Source:           source,
			Plan:             planJSON,
			CheckInSnapshot:  checkInJSON,
			ProfileSnapshot:  snapshotJSON,
			DiffFromPrevious: diffJSON,
			WhyChanged:       BuildWhyChanged(source, diff, prevCheck, checkIn),
		}

		err = a.versions.Create(pv)
		if errors.Is(err, repository.ErrDuplicateVersion) {
			// another writer claimed this version; re-read and retry
			log.Printf("[plan] version collision user=%s version=%d attempt=%d", user.UserID, next, attempt)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("insert version %d: %w", next, err)
		}

		if err := a.users.SetCurrentPlan(user.UserID, pv.Plan, pv.ID); err != nil {
			return nil, fmt.Errorf("update current plan pointer: %w", err)
		}
		user.CurrentPlan = pv.Plan
		user.CurrentPlanVersionID = &pv.ID
		return pv, nil
	}

	return nil, ErrExhaustedRetries
}
