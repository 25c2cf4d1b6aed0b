package application

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
)

// RecentLimit is the number of newest records included in a Summary.
const RecentLimit = 5

// StatusCount is the number of records carrying Status.
type StatusCount struct {
	Status model.Status
	Count  int
}

// MatchCount is the number of records rated Rating.
type MatchCount struct {
	Rating int
	Count  int
}

// Summary is the statistics bundle for the whole collection. All figures
// are derived from one snapshot of the store.
type Summary struct {
	Total        int
	StatusCounts []StatusCount // Known statuses in vocabulary order, zero counts omitted.
	MatchCounts  []MatchCount  // Ratings 1-5 ascending, zero counts omitted.
	Recent       []model.Application
}

// StatusCountMap returns StatusCounts keyed by status.
func (s Summary) StatusCountMap() map[model.Status]int {
	m := make(map[model.Status]int, len(s.StatusCounts))
	for _, sc := range s.StatusCounts {
		m[sc.Status] = sc.Count
	}
	return m
}

// MatchCountMap returns MatchCounts keyed by rating.
func (s Summary) MatchCountMap() map[int]int {
	m := make(map[int]int, len(s.MatchCounts))
	for _, mc := range s.MatchCounts {
		m[mc.Rating] = mc.Count
	}
	return m
}

// StatsService aggregates the application collection.
type StatsService struct {
	store driven.ApplicationStore
}

// NewStatsService creates a StatsService reading from store.
func NewStatsService(store driven.ApplicationStore) *StatsService {
	return &StatsService{store: store}
}

// Summarize computes the statistics bundle from a single List call.
func (s *StatsService) Summarize(ctx context.Context) (Summary, error) {
	apps, err := s.store.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list applications for stats: %w", err)
	}
	return Summarize(apps), nil
}

// Summarize computes the statistics bundle for apps, which must be ordered
// newest first. Statuses outside the known vocabulary and ratings outside
// 1-5 count toward Total only.
func Summarize(apps []model.Application) Summary {
	byStatus := make(map[model.Status]int)
	byRating := make(map[int]int)
	for _, app := range apps {
		byStatus[app.Status]++
		if app.HasMatchInRange() {
			byRating[*app.JobMatch]++
		}
	}

	summary := Summary{Total: len(apps)}

	for _, status := range model.KnownStatuses {
		if n := byStatus[status]; n > 0 {
			summary.StatusCounts = append(summary.StatusCounts, StatusCount{Status: status, Count: n})
		}
	}

	for rating := model.MinJobMatch; rating <= model.MaxJobMatch; rating++ {
		if n := byRating[rating]; n > 0 {
			summary.MatchCounts = append(summary.MatchCounts, MatchCount{Rating: rating, Count: n})
		}
	}

	recent := apps
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	summary.Recent = recent

	return summary
}
