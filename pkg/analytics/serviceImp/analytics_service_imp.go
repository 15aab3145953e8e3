package serviceImp

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"vita/entities"
	checkinrepo "vita/pkg/checkin/repository"
	planrepo "vita/pkg/plan/repository"
)

var rangeDays = map[string]int{"7d": 7, "30d": 30, "90d": 90}

const defaultRangeDays = 30

type Summary struct {
	Range              RangeInfo      `json:"range"`
	TotalCheckIns      int            `json:"totalCheckIns"`
	CheckInsInRange    int            `json:"checkInsInRange"`
	CurrentStreakDays  int            `json:"currentStreakDays"`
	PlanUpdatesInRange int64          `json:"planUpdatesInRange"`
	AvgEnergyInRange   *float64       `json:"avgEnergyInRange"`
	AvgMoodInRange     *float64       `json:"avgMoodInRange"`
	AvgEnergyLast7d    *float64       `json:"avgEnergyLast7d"`
	AvgMoodLast7d      *float64       `json:"avgMoodLast7d"`
	TopSymptoms        []SymptomCount `json:"topSymptomsInRange"`
	GeneratedAt        time.Time      `json:"generatedAt"`
}

type RangeInfo struct {
	Label    string    `json:"label"`
	Days     int       `json:"days"`
	StartsAt time.Time `json:"startsAt"`
}

type SymptomCount struct {
	Symptom string `json:"symptom"`
	Count   int    `json:"count"`
}

type AnalyticsSvc struct {
	checkIns checkinrepo.CheckInRepository
	versions planrepo.PlanVersionRepository
}

func New(checkIns checkinrepo.CheckInRepository, versions planrepo.PlanVersionRepository) *AnalyticsSvc {
	return &AnalyticsSvc{checkIns: checkIns, versions: versions}
}

// ParseRangeDays accepts the named ranges (7d/30d/90d) or a bare day count
// clamped to 1..365; anything else falls back to 30 days.
func ParseRangeDays(value string) int {
	if d, ok := rangeDays[value]; ok {
		return d
	}
	if n, err := strconv.Atoi(value); err == nil {
		return min(max(n, 1), 365)
	}
	return defaultRangeDays
}

func (s *AnalyticsSvc) Summary(userID, rangeLabel string) (*Summary, error) {
	days := ParseRangeDays(rangeLabel)
	if rangeLabel == "" {
		rangeLabel = fmt.Sprintf("%dd", days)
	}
	now := time.Now().UTC()
	rangeStart := dayStart(now).AddDate(0, 0, -(days - 1))
	sevenDayStart := dayStart(now).AddDate(0, 0, -6)

	all, err := s.checkIns.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}

	inRange := filterSince(all, rangeStart)
	last7 := filterSince(all, sevenDayStart)

	planUpdates, err := s.versions.CountSince(userID, rangeStart)
	if err != nil {
		return nil, fmt.Errorf("count plan versions: %w", err)
	}

	return &Summary{
		Range:              RangeInfo{Label: rangeLabel, Days: days, StartsAt: rangeStart},
		TotalCheckIns:      len(all),
		CheckInsInRange:    len(inRange),
		CurrentStreakDays:  currentStreakDays(all),
		PlanUpdatesInRange: planUpdates,
		AvgEnergyInRange:   average(inRange, func(ci entities.CheckIn) *int { return ci.Energy }),
		AvgMoodInRange:     average(inRange, func(ci entities.CheckIn) *int { return ci.Mood }),
		AvgEnergyLast7d:    average(last7, func(ci entities.CheckIn) *int { return ci.Energy }),
		AvgMoodLast7d:      average(last7, func(ci entities.CheckIn) *int { return ci.Mood }),
		TopSymptoms:        topSymptoms(inRange, 5),
		GeneratedAt:        now,
	}, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func filterSince(items []entities.CheckIn, since time.Time) []entities.CheckIn {
	var out []entities.CheckIn
	for _, ci := range items {
		if !ci.Date.Before(since) {
			out = append(out, ci)
		}
	}
	return out
}

func average(items []entities.CheckIn, field func(entities.CheckIn) *int) *float64 {
	var sum, n int
	for _, ci := range items {
		if v := field(ci); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := math.Round(float64(sum)/float64(n)*100) / 100
	return &avg
}

// currentStreakDays counts consecutive distinct check-in days ending at the
// most recent one.
func currentStreakDays(items []entities.CheckIn) int {
	seen := map[string]struct{}{}
	var keys []string
	for _, ci := range items {
		k := ci.Date.UTC().Format("2006-01-02")
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	streak := 1
	prev, _ := time.Parse("2006-01-02", keys[0])
	for _, k := range keys[1:] {
		curr, _ := time.Parse("2006-01-02", k)
		if int(prev.Sub(curr).Hours()/24) != 1 {
			break
		}
		streak++
		prev = curr
	}
	return streak
}

func topSymptoms(items []entities.CheckIn, limit int) []SymptomCount {
	counts := map[string]int{}
	for _, ci := range items {
		for _, raw := range ci.Symptoms {
			s := strings.ToLower(strings.TrimSpace(raw))
			if s == "" {
				continue
			}
			counts[s]++
		}
	}

	out := make([]SymptomCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, SymptomCount{Symptom: s, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Symptom < out[j].Symptom
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
