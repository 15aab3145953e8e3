package serviceImp

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/datatypes"

	"vita/entities"
	"vita/pkg/plan/repository"
	"vita/pkg/plan/types"
)

// fakeVersionRepo enforces (userID, version) uniqueness under a mutex, the
// same contract the sqlite unique index provides.
type fakeVersionRepo struct {
	mu             sync.Mutex
	rows           []entities.PlanVersion
	nextID         uint
	createCalls    int
	forceDuplicate bool
}

func (f *fakeVersionRepo) LatestByUser(userID string) (*entities.PlanVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *entities.PlanVersion
	for i := range f.rows {
		pv := f.rows[i]
		if pv.UserID != userID {
			continue
		}
		if latest == nil || pv.Version > latest.Version {
			latest = &pv
		}
	}
	if latest == nil {
		return nil, nil
	}
	// projection used in production: id, user_id, version, plan, check_in_snapshot
	return &entities.PlanVersion{
		ID:              latest.ID,
		UserID:          latest.UserID,
		Version:         latest.Version,
		Plan:            latest.Plan,
		CheckInSnapshot: latest.CheckInSnapshot,
	}, nil
}

func (f *fakeVersionRepo) Create(pv *entities.PlanVersion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.forceDuplicate {
		return repository.ErrDuplicateVersion
	}
	for _, existing := range f.rows {
		if existing.UserID == pv.UserID && existing.Version == pv.Version {
			return repository.ErrDuplicateVersion
		}
	}
	f.nextID++
	pv.ID = f.nextID
	pv.CreatedAt = time.Now()
	f.rows = append(f.rows, *pv)
	return nil
}

func (f *fakeVersionRepo) ListByUser(userID string, beforeVersion *int, limit int) ([]entities.PlanVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.PlanVersion
	for _, pv := range f.rows {
		if pv.UserID != userID {
			continue
		}
		if beforeVersion != nil && pv.Version >= *beforeVersion {
			continue
		}
		out = append(out, pv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeVersionRepo) CountSince(userID string, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, pv := range f.rows {
		if pv.UserID == userID && !pv.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	mu            sync.Mutex
	setPlanCalls  int
	lastVersionID uint
}

func (f *fakeUserRepo) FindOrCreate(userID string) (*entities.User, error) {
	return &entities.User{UserID: userID}, nil
}

func (f *fakeUserRepo) Update(u *entities.User) error { return nil }

func (f *fakeUserRepo) SetCurrentPlan(userID string, plan datatypes.JSON, versionID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setPlanCalls++
	f.lastVersionID = versionID
	return nil
}

func testUser() *entities.User { return &entities.User{UserID: "user-1"} }

func TestAssignFirstVersion(t *testing.T) {
	repo := &fakeVersionRepo{}
	users := &fakeUserRepo{}
	assigner := NewVersionAssigner(repo, users)

	pv, err := assigner.Assign(testUser(), currentScenarioPlan(), entities.SourceInitial, nil)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if pv.Version != 1 {
		t.Fatalf("version = %d, want 1", pv.Version)
	}
	if len(pv.DiffFromPrevious) != 0 {
		t.Fatalf("first version must have no diff: %s", pv.DiffFromPrevious)
	}
	if !strings.Contains(pv.WhyChanged, "Initial generated plan") {
		t.Fatalf("whyChanged = %q", pv.WhyChanged)
	}
	if len(pv.ProfileSnapshot) == 0 {
		t.Fatalf("profile snapshot not attached")
	}
	if users.setPlanCalls != 1 || users.lastVersionID != pv.ID {
		t.Fatalf("current plan pointer not moved to %d: %+v", pv.ID, users)
	}
}

func TestAssignSecondVersionDiffsAgainstLatest(t *testing.T) {
	repo := &fakeVersionRepo{}
	users := &fakeUserRepo{}
	assigner := NewVersionAssigner(repo, users)

	user := testUser()
	if _, err := assigner.Assign(user, previousScenarioPlan(), entities.SourceInitial, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	checkIn := &types.CheckInSnapshot{Energy: intPtr(4), Symptoms: []string{"cramps"}}
	pv, err := assigner.Assign(user, currentScenarioPlan(), entities.SourceCheckin, checkIn)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if pv.Version != 2 {
		t.Fatalf("version = %d, want 2", pv.Version)
	}

	var d types.Diff
	if err := json.Unmarshal(pv.DiffFromPrevious, &d); err != nil {
		t.Fatalf("unmarshal diff: %v", err)
	}
	if len(d.ChangedFields) == 0 || d.ChangedFields[0] != "workout.title" {
		t.Fatalf("diff = %+v", d)
	}
	if !strings.Contains(pv.WhyChanged, "daily check-in") {
		t.Fatalf("whyChanged = %q", pv.WhyChanged)
	}
}

func TestAssignPreviousCheckInComesFromLatestVersion(t *testing.T) {
	repo := &fakeVersionRepo{}
	users := &fakeUserRepo{}
	assigner := NewVersionAssigner(repo, users)

	user := testUser()
	first := &types.CheckInSnapshot{Energy: intPtr(2), Mood: intPtr(2), Symptoms: []string{}}
	if _, err := assigner.Assign(user, previousScenarioPlan(), entities.SourceCheckin, first); err != nil {
		t.Fatalf("seed: %v", err)
	}

	second := &types.CheckInSnapshot{Energy: intPtr(4), Mood: intPtr(3), Symptoms: []string{"cramps"}}
	pv, err := assigner.Assign(user, currentScenarioPlan(), entities.SourceCheckin, second)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if !strings.Contains(pv.WhyChanged, "Energy increased (2 to 4).") {
		t.Fatalf("whyChanged = %q", pv.WhyChanged)
	}
}

func TestAssignRetriesOnCollision(t *testing.T) {
	repo := &fakeVersionRepo{}
	users := &fakeUserRepo{}

	// a competing writer lands version 1 between our read and our insert
	raced := false
	wrapped := &createHookRepo{inner: repo, beforeCreate: func() {
		if raced {
			return
		}
		raced = true
		if err := repo.Create(&entities.PlanVersion{UserID: "user-1", Version: 1, Plan: mustJSON(previousScenarioPlan())}); err != nil {
			t.Fatalf("competing insert: %v", err)
		}
	}}

	pv, err := NewVersionAssigner(wrapped, users).Assign(testUser(), currentScenarioPlan(), entities.SourceCheckin, nil)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if pv.Version != 2 {
		t.Fatalf("version = %d, want 2 after retry", pv.Version)
	}
	if users.setPlanCalls != 1 || users.lastVersionID != pv.ID {
		t.Fatalf("pointer must follow the winning attempt only: %+v", users)
	}
	// diff was recomputed against the row that won the race
	var d types.Diff
	if err := json.Unmarshal(pv.DiffFromPrevious, &d); err != nil {
		t.Fatalf("unmarshal diff: %v", err)
	}
	if len(d.ChangedFields) == 0 {
		t.Fatalf("expected a diff against the competing version")
	}
}

// createHookRepo runs a hook before delegating Create, simulating a competing
// writer landing between read and write.
type createHookRepo struct {
	inner        *fakeVersionRepo
	beforeCreate func()
}

func (r *createHookRepo) LatestByUser(userID string) (*entities.PlanVersion, error) {
	return r.inner.LatestByUser(userID)
}
func (r *createHookRepo) Create(pv *entities.PlanVersion) error {
	r.beforeCreate()
	return r.inner.Create(pv)
}
func (r *createHookRepo) ListByUser(userID string, beforeVersion *int, limit int) ([]entities.PlanVersion, error) {
	return r.inner.ListByUser(userID, beforeVersion, limit)
}
func (r *createHookRepo) CountSince(userID string, since time.Time) (int64, error) {
	return r.inner.CountSince(userID, since)
}

func mustJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func TestAssignExhaustedRetries(t *testing.T) {
	repo := &fakeVersionRepo{forceDuplicate: true}
	users := &fakeUserRepo{}
	assigner := NewVersionAssigner(repo, users)

	_, err := assigner.Assign(testUser(), currentScenarioPlan(), entities.SourceCheckin, nil)
	if !errors.Is(err, ErrExhaustedRetries) {
		t.Fatalf("err = %v, want ErrExhaustedRetries", err)
	}
	if repo.createCalls != maxAssignAttempts {
		t.Fatalf("create attempts = %d, want %d", repo.createCalls, maxAssignAttempts)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("no row must be committed, got %d", len(repo.rows))
	}
	if users.setPlanCalls != 0 {
		t.Fatalf("losing attempts must not move the current plan pointer")
	}
}

func TestAssignConcurrentWritersGetDistinctContiguousVersions(t *testing.T) {
	repo := &fakeVersionRepo{}
	users := &fakeUserRepo{}
	assigner := NewVersionAssigner(repo, users)

	// with as many writers as retry attempts, every writer can lose at most
	// writers-1 races, so all must succeed
	const writers = maxAssignAttempts
	var wg sync.WaitGroup
	versions := make([]int, writers)
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pv, err := assigner.Assign(testUser(), currentScenarioPlan(), entities.SourceCheckin, nil)
			errs[i] = err
			if err == nil {
				versions[i] = pv.Version
			}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("writer %d: %v", i, err)
		}
	}
	sort.Ints(versions)
	for i, v := range versions {
		if v != i+1 {
			t.Fatalf("versions = %v, want contiguous run starting at 1", versions)
		}
	}
	if len(repo.rows) != writers {
		t.Fatalf("rows = %d, want %d", len(repo.rows), writers)
	}
}

func TestAssignRejectsMissingInputs(t *testing.T) {
	assigner := NewVersionAssigner(&fakeVersionRepo{}, &fakeUserRepo{})

	if _, err := assigner.Assign(nil, currentScenarioPlan(), entities.SourceInitial, nil); err == nil {
		t.Fatalf("expected error for nil user")
	}
	if _, err := assigner.Assign(testUser(), nil, entities.SourceInitial, nil); err == nil {
		t.Fatalf("expected error for nil plan")
	}
}
