package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/melhem/content-hub/internal/domain"
	"github.com/melhem/content-hub/internal/store"
)

func statsFixture(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(store.Options{})
	s.Restore([]domain.ClinicalCase{
		{ID: "1", DoctorID: "doc1", Category: "Gynecology", Status: domain.CaseStatusNew},
		{ID: "2", DoctorID: "doc1", Category: "Gynecology", Status: domain.CaseStatusPublished},
		{ID: "3", DoctorID: "doc2", Category: "Dentistry", Status: domain.CaseStatusReviewed},
		{ID: "4", DoctorID: "doc2", Category: "Dentistry", Status: domain.CaseStatusInProgress},
		{ID: "5", DoctorID: "doc2", Category: "Cardiology", Status: domain.CaseStatusReady},
		{ID: "6", DoctorID: "doc1", Category: "Gynecology", Status: domain.CaseStatusPublished},
	}, nil, nil)
	return s
}

func TestDashboardMarketingCountsAllCases(t *testing.T) {
	svc := NewStatsService(statsFixture(t))

	stats := svc.Dashboard(domain.User{ID: "mkt1", Role: domain.RoleMarketing})

	require.Equal(t, 6, stats.Total)
	require.Equal(t, 2, stats.Published)
	require.Equal(t, 1, stats.Pending)
	require.Equal(t, 2, stats.InProgress)
	require.Equal(t, 1, stats.Ready)
	// 2 of 6 published, rounded
	require.Equal(t, 33, stats.Conversion)

	require.Len(t, stats.Categories, 3)
	require.Equal(t, "Gynecology", stats.Categories[0].Name)
	require.Equal(t, 3, stats.Categories[0].Count)
	require.Equal(t, "Dentistry", stats.Categories[1].Name)
}

func TestDashboardDoctorScopedToOwnCases(t *testing.T) {
	svc := NewStatsService(statsFixture(t))

	stats := svc.Dashboard(domain.User{ID: "doc1", Role: domain.RoleDoctor})

	require.Equal(t, 3, stats.Total)
	require.Equal(t, 2, stats.Published)
	require.Equal(t, 1, stats.Pending)
	require.Equal(t, 67, stats.Conversion)
	require.Len(t, stats.Categories, 1)
}

func TestDashboardEmptyStore(t *testing.T) {
	svc := NewStatsService(store.New(store.Options{}))

	stats := svc.Dashboard(domain.User{ID: "mkt1", Role: domain.RoleMarketing})

	require.Zero(t, stats.Total)
	require.Zero(t, stats.Conversion)
	require.Empty(t, stats.Categories)
}

func TestTopCategoriesOrderAndLimit(t *testing.T) {
	counts := map[string]int{
		"A": 1, "B": 3, "C": 3, "D": 2, "E": 5, "F": 1,
	}

	top := topCategories(counts, 5)

	require.Len(t, top, 5)
	require.Equal(t, CategoryCount{Name: "E", Count: 5}, top[0])
	// equal counts break ties alphabetically
	require.Equal(t, "B", top[1].Name)
	require.Equal(t, "C", top[2].Name)
	require.Equal(t, "D", top[3].Name)
}
