package service

import (
	"math"
	"sort"

	"github.com/melhem/content-hub/internal/domain"
	"github.com/melhem/content-hub/internal/store"
)

// DashboardStats carries the dashboard counters: doctors see their own
// activity, marketing sees the whole hospital.
type DashboardStats struct {
	Total      int
	Published  int
	Pending    int
	InProgress int
	Ready      int
	Conversion int
	Categories []CategoryCount
}

// CategoryCount is one slice of the category breakdown.
type CategoryCount struct {
	Name  string
	Count int
}

// StatsService derives dashboard metrics from the case store.
type StatsService struct {
	store *store.Store
}

// NewStatsService constructs the service.
func NewStatsService(s *store.Store) *StatsService {
	return &StatsService{store: s}
}

// Dashboard computes counters over the cases relevant to the viewer.
func (s *StatsService) Dashboard(viewer domain.User) DashboardStats {
	var relevant []domain.ClinicalCase
	if viewer.Role == domain.RoleMarketing {
		relevant = s.store.Cases()
	} else {
		relevant = s.store.CasesForDoctor(viewer.ID)
	}

	stats := DashboardStats{Total: len(relevant)}
	counts := map[string]int{}
	for _, c := range relevant {
		switch c.Status {
		case domain.CaseStatusPublished:
			stats.Published++
		case domain.CaseStatusNew:
			stats.Pending++
		case domain.CaseStatusReviewed, domain.CaseStatusInProgress:
			stats.InProgress++
		case domain.CaseStatusReady:
			stats.Ready++
		}
		if c.Category != "" {
			counts[c.Category]++
		}
	}
	if stats.Total > 0 {
		stats.Conversion = int(math.Round(float64(stats.Published) / float64(stats.Total) * 100))
	}

	stats.Categories = topCategories(counts, 5)
	return stats
}

func topCategories(counts map[string]int, limit int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, CategoryCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
