package dto

import "github.com/melhem/content-hub/internal/service"

// DashboardStatsResponse is the wire shape of the dashboard counters.
type DashboardStatsResponse struct {
	Total      int                     `json:"total"`
	Published  int                     `json:"published"`
	Pending    int                     `json:"pending"`
	InProgress int                     `json:"in_progress"`
	Ready      int                     `json:"ready"`
	Conversion int                     `json:"conversion"`
	Categories []CategoryCountResponse `json:"categories"`
}

// CategoryCountResponse is one category breakdown entry.
type CategoryCountResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FromDashboardStats maps dashboard stats onto the wire shape.
func FromDashboardStats(stats service.DashboardStats) DashboardStatsResponse {
	categories := make([]CategoryCountResponse, 0, len(stats.Categories))
	for _, c := range stats.Categories {
		categories = append(categories, CategoryCountResponse{Name: c.Name, Count: c.Count})
	}
	return DashboardStatsResponse{
		Total:      stats.Total,
		Published:  stats.Published,
		Pending:    stats.Pending,
		InProgress: stats.InProgress,
		Ready:      stats.Ready,
		Conversion: stats.Conversion,
		Categories: categories,
	}
}
