package serviceImp

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"vita/entities"
	"vita/pkg/ai"
	"vita/pkg/plan/repository"
	"vita/pkg/plan/service"
	"vita/pkg/plan/types"
	"vita/pkg/profile"
)

// kbContexter supplies reference-material context for the generation prompt.
type kbContexter interface {
	Context(query string) string
}

type PlanSvc struct {
	llm      ai.Client
	versions repository.PlanVersionRepository
	assigner *VersionAssigner
	kb       kbContexter
}

func NewPlanService(llm ai.Client, versions repository.PlanVersionRepository, assigner *VersionAssigner, kb kbContexter) service.PlanService {
	return &PlanSvc{llm: llm, versions: versions, assigner: assigner, kb: kb}
}

func (s *PlanSvc) Generate(user *entities.User, checkIn *types.CheckInSnapshot) (*entities.PlanVersion, map[string]any, error) {
	snapshot := profile.Build(user)

	var kbCtx string
	if s.kb != nil {
		kbCtx = s.kb.Context(kbQuery(snapshot))
	}

	plan, err := s.llm.GeneratePlan(snapshot, checkIn, kbCtx)
	if err != nil {
		return nil, nil, fmt.Errorf("generate plan: %w", err)
	}

	source := entities.SourceInitial
	if checkIn != nil {
		source = entities.SourceCheckin
	}
	pv, err := s.assigner.Assign(user, plan, source, checkIn)
	if err != nil {
		return nil, nil, err
	}
	return pv, plan, nil
}

func (s *PlanSvc) RegenerateAfterProfileUpdate(user *entities.User) (*entities.PlanVersion, error) {
	snapshot := profile.Build(user)

	var kbCtx string
	if s.kb != nil {
		kbCtx = s.kb.Context(kbQuery(snapshot))
	}

	plan, err := s.llm.GeneratePlan(snapshot, nil, kbCtx)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	return s.assigner.Assign(user, plan, entities.SourceProfileUpdate, nil)
}

func (s *PlanSvc) History(userID string, limit int, beforeVersion *int) (types.HistoryPage, error) {
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	// fetch one extra row to detect a further page
	rows, err := s.versions.ListByUser(userID, beforeVersion, limit+1)
	if err != nil {
		return types.HistoryPage{}, fmt.Errorf("list versions: %w", err)
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	items := make([]types.HistoryItem, 0, len(rows))
	for _, pv := range rows {
		items = append(items, historyItem(pv))
	}

	page := types.HistoryPage{Items: items, PageInfo: types.PageInfo{HasMore: hasMore}}
	if hasMore && len(rows) > 0 {
		page.PageInfo.NextCursor = strconv.Itoa(rows[len(rows)-1].Version)
	}
	return page, nil
}

func historyItem(pv entities.PlanVersion) types.HistoryItem {
	item := types.HistoryItem{
		ID:            pv.ID,
		Version:       pv.Version,
		Source:        pv.Source,
		CreatedAt:     pv.CreatedAt,
		WhyChanged:    pv.WhyChanged,
		ChangedFields: []string{},
	}

	if len(pv.DiffFromPrevious) > 0 {
		var d types.Diff
		if err := json.Unmarshal(pv.DiffFromPrevious, &d); err == nil && d.ChangedFields != nil {
			item.ChangedFields = d.ChangedFields
		}
	}

	var doc map[string]any
	if len(pv.Plan) > 0 {
		_ = json.Unmarshal(pv.Plan, &doc)
	}
	payload := types.NormalizePlanDocument(doc)
	item.Preview = types.Preview{
		WorkoutTitle:   stringAt(payload, []string{"workout", "title"}),
		NutritionFocus: stringAt(payload, []string{"nutrition", "focus"}),
		Insight:        stringAt(payload, []string{"insight"}),
	}
	return item
}

func kbQuery(snapshot profile.Snapshot) string {
	terms := append([]string{}, snapshot.Goals...)
	if snapshot.CyclePhase != "" {
		terms = append(terms, snapshot.CyclePhase+" phase")
	}
	terms = append(terms, snapshot.Equipment+" training nutrition")
	return strings.Join(terms, " ")
}
