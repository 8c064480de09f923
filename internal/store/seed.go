package store

import (
	"time"

	"github.com/melhem/content-hub/internal/domain"
)

// SeedUsers returns the built-in demo profiles used when no persisted
// snapshot exists.
func SeedUsers() []domain.User {
	return []domain.User{
		{
			ID:         "doc1",
			Name:       "Dr. Leyla Aliyeva",
			Role:       domain.RoleDoctor,
			Specialty:  "Gynecologic surgery",
			CasesCount: 1,
		},
		{
			ID:         "doc2",
			Name:       "Dr. Emil Gasimov",
			Role:       domain.RoleDoctor,
			Specialty:  "Pediatric dentistry",
			CasesCount: 1,
		},
		{
			ID:   "mkt1",
			Name: "Aysel Mammadova",
			Role: domain.RoleMarketing,
		},
	}
}

// SeedCases returns the built-in demo cases.
func SeedCases(now time.Time) []domain.ClinicalCase {
	return []domain.ClinicalCase{
		{
			ID:                   "1",
			DoctorID:             "doc1",
			DoctorName:           "Dr. Leyla Aliyeva",
			Title:                "Successful laparoscopic surgery",
			Category:             "Gynecology",
			ShortDescription:     "Cyst removal in a 30-year-old patient.",
			PatientProblem:       "The patient presented with acute pain.",
			TreatmentProcess:     "The cyst was removed laparoscopically through a minimal incision.",
			Result:               "The patient was discharged 24 hours later.",
			Tone:                 domain.ToneEducational,
			IsAnonymous:          true,
			IsSuitableForSharing: true,
			Status:               domain.CaseStatusNew,
			CreatedAt:            now,
			Media: []domain.CaseMedia{
				{URL: "https://picsum.photos/seed/surgery/800/600", Type: domain.MediaImage},
			},
		},
		{
			ID:                   "2",
			DoctorID:             "doc2",
			DoctorName:           "Dr. Emil Gasimov",
			Title:                "New approach in pediatric dental care",
			Category:             "Dentistry",
			ShortDescription:     "Pain-free dental treatment for children.",
			PatientProblem:       "A child with dental anxiety and decayed teeth.",
			TreatmentProcess:     "Full restoration under sedation, entirely pain-free.",
			Result:               "The child was treated without any trauma.",
			Tone:                 domain.ToneMotivational,
			IsAnonymous:          false,
			IsSuitableForSharing: true,
			Status:               domain.CaseStatusPublished,
			CreatedAt:            now.Add(-24 * time.Hour),
			Media: []domain.CaseMedia{
				{URL: "https://picsum.photos/seed/dentist/800/600", Type: domain.MediaImage},
			},
			PublishedResult: &domain.PublishedResult{
				Type:    domain.ResultLink,
				Content: "https://instagram.com/melhem_hospital",
				Caption: "This case is already trending on our official Instagram page.",
			},
		},
	}
}
