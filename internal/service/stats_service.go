package service

import (
	"context"
	"dsa_tracker_backend/internal/model"
	"dsa_tracker_backend/internal/util"
	"math"
	"sort"
	"time"
	_ "time/tzdata" // embedded zoneinfo
)

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats 仪表盘统计
// swagger:model Stats
type Stats struct {
	TotalProblems          int        `json:"totalProblems"`
	TotalSolved            int        `json:"totalSolved"`
	SuccessRate            int        `json:"successRate"`
	TotalAttempts          int        `json:"totalAttempts"`
	AvgTime                int        `json:"avgTime"`
	DifficultyDistribution []Bucket   `json:"difficultyDistribution"`
	PlatformDistribution   []Bucket   `json:"platformDistribution"`
	Activity               []DayCount `json:"activity"`
}

// Aggregate derives dashboard metrics from a list of attempts. Calendar days
// are taken in loc and the activity window ends on now's day.
func Aggregate(attempts []model.Attempt, now time.Time, loc *time.Location) Stats {
	if loc == nil {
		loc = time.UTC
	}

	problems := make(map[uint]*model.Problem)
	order := make([]uint, 0)
	solved := make(map[uint]bool)
	timeSum, timed := 0, 0

	for i := range attempts {
		a := &attempts[i]
		p, seen := problems[a.ProblemID]
		if !seen {
			order = append(order, a.ProblemID)
		}
		if p == nil {
			problems[a.ProblemID] = a.Problem
		}
		if a.Solved {
			solved[a.ProblemID] = true
			if a.TimeTaken != nil && *a.TimeTaken > 0 {
				timeSum += *a.TimeTaken
				timed++
			}
		}
	}

	stats := Stats{
		TotalProblems: len(order),
		TotalSolved:   len(solved),
		TotalAttempts: len(attempts),
	}
	if stats.TotalProblems > 0 {
		stats.SuccessRate = int(math.Round(float64(stats.TotalSolved) / float64(stats.TotalProblems) * 100))
	}
	if timed > 0 {
		stats.AvgTime = int(math.Round(float64(timeSum) / float64(timed)))
	}

	stats.DifficultyDistribution = difficultyDistribution(order, problems)
	stats.PlatformDistribution = platformDistribution(order, problems)
	stats.Activity = activitySeries(attempts, now, loc)
	return stats
}

func difficultyDistribution(order []uint, problems map[uint]*model.Problem) []Bucket {
	counts := make(map[string]int)
	for _, id := range order {
		if p := problems[id]; p != nil {
			counts[string(p.Difficulty)]++
		}
	}

	buckets := make([]Bucket, 0, len(model.Difficulties))
	for _, d := range model.Difficulties {
		buckets = append(buckets, Bucket{Label: string(d), Count: counts[string(d)]})
		delete(counts, string(d))
	}
	// legacy rows may carry other labels
	extra := make([]string, 0, len(counts))
	for label := range counts {
		extra = append(extra, label)
	}
	sort.Strings(extra)
	for _, label := range extra {
		buckets = append(buckets, Bucket{Label: label, Count: counts[label]})
	}
	return buckets
}

func platformDistribution(order []uint, problems map[uint]*model.Problem) []Bucket {
	counts := make(map[string]int)
	for _, id := range order {
		if p := problems[id]; p != nil {
			counts[p.PlatformLabel()]++
		}
	}

	buckets := make([]Bucket, 0, len(counts))
	for label, n := range counts {
		buckets = append(buckets, Bucket{Label: label, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}

func activitySeries(attempts []model.Attempt, now time.Time, loc *time.Location) []DayCount {
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	series := make([]DayCount, util.ActivityWindowDays)
	index := make(map[string]int, util.ActivityWindowDays)
	for i := 0; i < util.ActivityWindowDays; i++ {
		day := today.AddDate(0, 0, i-(util.ActivityWindowDays-1)).Format(util.DateFormat)
		series[i] = DayCount{Date: day}
		index[day] = i
	}

	for i := range attempts {
		if idx, ok := index[attempts[i].SolvedAt.In(loc).Format(util.DateFormat)]; ok {
			series[idx].Count++
		}
	}
	return series
}

type StatsService struct {
	Attempts *AttemptService
	now      func() time.Time
}

func NewStatsService(attempts *AttemptService) *StatsService {
	return &StatsService{Attempts: attempts, now: time.Now}
}

// Summary computes the viewer's dashboard from its full attempt list.
func (s *StatsService) Summary(ctx context.Context, viewer Viewer, loc *time.Location) (Stats, error) {
	attempts, err := s.Attempts.List(ctx, viewer, nil)
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(attempts, s.now(), loc), nil
}

// LoadLocation parses an IANA zone name; empty means UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, util.Validationf("unknown time zone %q", name)
	}
	return loc, nil
}
