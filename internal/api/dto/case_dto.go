package dto

import (
	"time"

	"github.com/melhem/content-hub/internal/domain"
)

// CreateCaseRequest payload.
type CreateCaseRequest struct {
	Title                string             `json:"title"`
	Category             string             `json:"category"`
	ShortDescription     string             `json:"short_description"`
	PatientProblem       string             `json:"patient_problem"`
	TreatmentProcess     string             `json:"treatment_process"`
	Result               string             `json:"result"`
	Tone                 domain.ContentTone `json:"tone"`
	IsAnonymous          bool               `json:"is_anonymous"`
	IsSuitableForSharing bool               `json:"is_suitable_for_sharing"`
	Media                []CaseMediaPayload `json:"media"`
}

// CaseMediaPayload describes one media reference on the wire.
type CaseMediaPayload struct {
	URL  string           `json:"url"`
	Type domain.MediaType `json:"type"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.CaseStatus `json:"status"`
}

// PublishCaseRequest payload.
type PublishCaseRequest struct {
	Type    domain.PublishedResultType `json:"type"`
	Content string                     `json:"content"`
	Caption string                     `json:"caption"`
}

// PublishedResultResponse mirrors the stored published outcome.
type PublishedResultResponse struct {
	Type    domain.PublishedResultType `json:"type"`
	Content string                     `json:"content"`
	Caption string                     `json:"caption,omitempty"`
}

// CaseResponse is the full wire representation of a case.
type CaseResponse struct {
	ID                   string                   `json:"id"`
	DoctorID             string                   `json:"doctor_id"`
	DoctorName           string                   `json:"doctor_name"`
	Title                string                   `json:"title"`
	Category             string                   `json:"category"`
	ShortDescription     string                   `json:"short_description"`
	PatientProblem       string                   `json:"patient_problem"`
	TreatmentProcess     string                   `json:"treatment_process"`
	Result               string                   `json:"result"`
	Tone                 domain.ContentTone       `json:"tone"`
	IsAnonymous          bool                     `json:"is_anonymous"`
	IsSuitableForSharing bool                     `json:"is_suitable_for_sharing"`
	Status               domain.CaseStatus        `json:"status"`
	CreatedAt            time.Time                `json:"created_at"`
	Media                []CaseMediaPayload       `json:"media"`
	PublishedResult      *PublishedResultResponse `json:"published_result,omitempty"`
}

// SocialContentResponse carries the generated content variants.
type SocialContentResponse struct {
	InstagramPost string `json:"instagram_post"`
	ReelsScript   string `json:"reels_script"`
	StoryText     string `json:"story_text"`
}

// FromCase maps a domain case onto its wire shape.
func FromCase(c domain.ClinicalCase) CaseResponse {
	media := make([]CaseMediaPayload, 0, len(c.Media))
	for _, m := range c.Media {
		media = append(media, CaseMediaPayload{URL: m.URL, Type: m.Type})
	}
	resp := CaseResponse{
		ID:                   c.ID,
		DoctorID:             c.DoctorID,
		DoctorName:           c.DoctorName,
		Title:                c.Title,
		Category:             c.Category,
		ShortDescription:     c.ShortDescription,
		PatientProblem:       c.PatientProblem,
		TreatmentProcess:     c.TreatmentProcess,
		Result:               c.Result,
		Tone:                 c.Tone,
		IsAnonymous:          c.IsAnonymous,
		IsSuitableForSharing: c.IsSuitableForSharing,
		Status:               c.Status,
		CreatedAt:            c.CreatedAt,
		Media:                media,
	}
	if c.PublishedResult != nil {
		resp.PublishedResult = &PublishedResultResponse{
			Type:    c.PublishedResult.Type,
			Content: c.PublishedResult.Content,
			Caption: c.PublishedResult.Caption,
		}
	}
	return resp
}

// FromCases maps a slice of cases.
func FromCases(cases []domain.ClinicalCase) []CaseResponse {
	out := make([]CaseResponse, 0, len(cases))
	for _, c := range cases {
		out = append(out, FromCase(c))
	}
	return out
}

// ToMedia maps wire media onto domain media.
func ToMedia(payloads []CaseMediaPayload) []domain.CaseMedia {
	out := make([]domain.CaseMedia, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, domain.CaseMedia{URL: p.URL, Type: p.Type})
	}
	return out
}

// FromSocialContent maps generated content onto the wire shape.
func FromSocialContent(c domain.SocialContent) SocialContentResponse {
	return SocialContentResponse{
		InstagramPost: c.InstagramPost,
		ReelsScript:   c.ReelsScript,
		StoryText:     c.StoryText,
	}
}
