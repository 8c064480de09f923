package domain

import "time"

// CaseStatus enumerates the review-to-publish workflow positions.
type CaseStatus string

const (
	CaseStatusNew        CaseStatus = "NEW"
	CaseStatusReviewed   CaseStatus = "REVIEWED"
	CaseStatusInProgress CaseStatus = "IN_PROGRESS"
	CaseStatusReady      CaseStatus = "READY"
	CaseStatusPublished  CaseStatus = "PUBLISHED"
)

// ContentTone is the editorial style tag attached to a case.
type ContentTone string

const (
	ToneEducational  ContentTone = "EDUCATIONAL"
	ToneMotivational ContentTone = "MOTIVATIONAL"
	TonePremium      ContentTone = "PREMIUM"
)

// MediaType differentiates case media entries.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// CaseMedia is one attached media reference. Media files themselves live
// elsewhere; only the URL is carried.
type CaseMedia struct {
	URL  string
	Type MediaType
}

// PublishedResultType enumerates the forms a published outcome can take.
type PublishedResultType string

const (
	ResultLink  PublishedResultType = "link"
	ResultImage PublishedResultType = "image"
	ResultVideo PublishedResultType = "video"
	ResultText  PublishedResultType = "text"
)

// PublishedResult records where and how a case was published.
type PublishedResult struct {
	Type    PublishedResultType
	Content string
	Caption string
}

// ClinicalCase is a doctor-submitted clinical story awaiting marketing
// review and publication.
type ClinicalCase struct {
	ID                   string
	DoctorID             string
	DoctorName           string
	Title                string
	Category             string
	ShortDescription     string
	PatientProblem       string
	TreatmentProcess     string
	Result               string
	Tone                 ContentTone
	IsAnonymous          bool
	IsSuitableForSharing bool
	Status               CaseStatus
	CreatedAt            time.Time
	Media                []CaseMedia
	PublishedResult      *PublishedResult
}
