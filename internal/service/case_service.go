package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/melhem/content-hub/internal/domain"
	"github.com/melhem/content-hub/internal/events"
	"github.com/melhem/content-hub/internal/store"
	apperrors "github.com/melhem/content-hub/pkg/util"
)

// CaseService coordinates the case workflow on top of the store: doctors
// submit, marketing reviews and publishes. Every mutation publishes a domain
// event so the notification stubs and the snapshot autosaver can react.
type CaseService struct {
	store      *store.Store
	dispatcher events.Dispatcher
}

// CaseDependencies bundles requirements for the case service.
type CaseDependencies struct {
	Store      *store.Store
	Dispatcher events.Dispatcher
}

// CaseSubmitInput describes a doctor's submission payload.
type CaseSubmitInput struct {
	Title                string
	Category             string
	ShortDescription     string
	PatientProblem       string
	TreatmentProcess     string
	Result               string
	Tone                 domain.ContentTone
	IsAnonymous          bool
	IsSuitableForSharing bool
	Media                []domain.CaseMedia
}

// NewCaseService constructs the service.
func NewCaseService(deps CaseDependencies) *CaseService {
	return &CaseService{store: deps.Store, dispatcher: deps.Dispatcher}
}

// SubmitCase creates a new case for a doctor with status NEW. Media is
// backfilled with a placeholder when the submission carries none.
func (s *CaseService) SubmitCase(ctx context.Context, doctor domain.User, input CaseSubmitInput) (*domain.ClinicalCase, error) {
	if doctor.Role != domain.RoleDoctor {
		return nil, apperrors.NewForbidden("only doctors can submit cases")
	}

	newCase := domain.ClinicalCase{
		ID:                   uuid.NewString(),
		DoctorID:             doctor.ID,
		DoctorName:           doctor.Name,
		Title:                strings.TrimSpace(input.Title),
		Category:             strings.TrimSpace(input.Category),
		ShortDescription:     strings.TrimSpace(input.ShortDescription),
		PatientProblem:       input.PatientProblem,
		TreatmentProcess:     input.TreatmentProcess,
		Result:               input.Result,
		Tone:                 input.Tone,
		IsAnonymous:          input.IsAnonymous,
		IsSuitableForSharing: input.IsSuitableForSharing,
		Status:               domain.CaseStatusNew,
		CreatedAt:            time.Now(),
		Media:                input.Media,
	}
	if newCase.Tone == "" {
		newCase.Tone = domain.ToneEducational
	}
	if len(newCase.Media) == 0 {
		newCase.Media = []domain.CaseMedia{{
			URL:  fmt.Sprintf("https://picsum.photos/seed/%s/800/600", newCase.ID),
			Type: domain.MediaImage,
		}}
	}

	if err := s.store.AddCase(newCase); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:   events.EventCaseSubmitted,
		CaseID: newCase.ID,
		Actor:  actorFor(doctor),
		Payload: events.CaseSubmittedPayload{
			DoctorID:   newCase.DoctorID,
			DoctorName: newCase.DoctorName,
			Title:      newCase.Title,
			Category:   newCase.Category,
			Tone:       newCase.Tone,
		},
	})
	return &newCase, nil
}

// ChangeStatus advances a case through the workflow. Marketing only; the
// store rejects backward moves.
func (s *CaseService) ChangeStatus(ctx context.Context, actor domain.User, caseID string, next domain.CaseStatus) (*domain.ClinicalCase, error) {
	if actor.Role != domain.RoleMarketing {
		return nil, apperrors.NewForbidden("only marketing can change case status")
	}
	current, err := s.store.CaseByID(caseID)
	if err != nil {
		return nil, err
	}
	oldStatus := current.Status
	updated := current
	updated.Status = next
	if err := s.store.UpdateCase(updated); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:   events.EventCaseStatusChanged,
		CaseID: updated.ID,
		Actor:  actorFor(actor),
		Payload: events.CaseStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: next,
		},
	})
	return &updated, nil
}

// Publish records the published outcome for a case. Setting a published
// result forces the status to PUBLISHED.
func (s *CaseService) Publish(ctx context.Context, actor domain.User, caseID string, result domain.PublishedResult) (*domain.ClinicalCase, error) {
	if actor.Role != domain.RoleMarketing {
		return nil, apperrors.NewForbidden("only marketing can publish cases")
	}
	current, err := s.store.CaseByID(caseID)
	if err != nil {
		return nil, err
	}
	updated := current
	updated.PublishedResult = &result
	updated.Status = domain.CaseStatusPublished
	if err := s.store.UpdateCase(updated); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:   events.EventCasePublished,
		CaseID: updated.ID,
		Actor:  actorFor(actor),
		Payload: events.CasePublishedPayload{
			ResultType: result.Type,
			Content:    result.Content,
		},
	})
	return &updated, nil
}

// ListForViewer returns filtered cases scoped to the viewer: marketing sees
// the whole collection, doctors see their own submissions.
func (s *CaseService) ListForViewer(viewer domain.User, filter store.CaseFilter) []domain.ClinicalCase {
	if viewer.Role == domain.RoleMarketing {
		return store.FilterCases(s.store.Cases(), filter)
	}
	return store.FilterCases(s.store.CasesForDoctor(viewer.ID), filter)
}

// GetForViewer fetches a case ensuring the viewer may see it.
func (s *CaseService) GetForViewer(viewer domain.User, caseID string) (domain.ClinicalCase, error) {
	c, err := s.store.CaseByID(caseID)
	if err != nil {
		return domain.ClinicalCase{}, err
	}
	if viewer.Role != domain.RoleMarketing && c.DoctorID != viewer.ID {
		return domain.ClinicalCase{}, apperrors.NewForbidden("case belongs to another doctor")
	}
	return c, nil
}

// NotificationsFor returns the viewer's notifications, newest first.
func (s *CaseService) NotificationsFor(viewer domain.User) []domain.Notification {
	return s.store.VisibleNotifications(viewer)
}

// UnreadCount returns the viewer's unread notification count.
func (s *CaseService) UnreadCount(viewer domain.User) int {
	return s.store.UnreadCount(viewer)
}

// MarkNotificationRead marks one of the viewer's notifications as read.
// Idempotent; ids addressed to other recipients are a no-op.
func (s *CaseService) MarkNotificationRead(ctx context.Context, viewer domain.User, notificationID string) {
	s.store.MarkOneAsRead(viewer, notificationID)
	s.publishEvent(ctx, events.Event{
		Type:    events.EventNotificationsRead,
		Actor:   actorFor(viewer),
		Payload: events.NotificationsReadPayload{NotificationID: notificationID},
	})
}

// MarkAllNotificationsRead marks every notification visible to the viewer.
func (s *CaseService) MarkAllNotificationsRead(ctx context.Context, viewer domain.User) {
	s.store.MarkAllAsRead(viewer)
	s.publishEvent(ctx, events.Event{
		Type:    events.EventNotificationsRead,
		Actor:   actorFor(viewer),
		Payload: events.NotificationsReadPayload{All: true},
	})
}

func (s *CaseService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFor(user domain.User) events.Actor {
	return events.Actor{UserID: user.ID, Role: user.Role}
}
