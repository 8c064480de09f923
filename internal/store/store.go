package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/melhem/content-hub/internal/domain"
	apperrors "github.com/melhem/content-hub/pkg/util"
)

// Store owns the in-session case, notification and user profile collections.
// Cases and notifications are kept most-recent-first; insertion order is the
// display order. The store performs no I/O; persistence reads snapshots and
// writes them back through Restore.
type Store struct {
	mu            sync.RWMutex
	cases         []domain.ClinicalCase
	notifications []domain.Notification
	users         []domain.User

	now   func() time.Time
	newID func() string
}

// Options allows tests to pin the clock and id generation.
type Options struct {
	Now   func() time.Time
	NewID func() string
}

// New constructs an empty store.
func New(opts Options) *Store {
	s := &Store{now: opts.Now, newID: opts.NewID}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// UpsertUser inserts or replaces a user profile by id.
func (s *Store) UpsertUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == user.ID {
			user.CasesCount = s.users[i].CasesCount
			s.users[i] = user
			return
		}
	}
	s.users = append(s.users, user)
}

// UserByID looks up a profile.
func (s *Store) UserByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			return s.users[i], true
		}
	}
	return domain.User{}, false
}

// Users returns a snapshot of all profiles.
func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// AddCase prepends a new case and emits exactly one notification addressed to
// the marketing team. The id must be unique and the submitting doctor must be
// a known DOCTOR profile. Validation happens before any mutation so an error
// never leaves the collections half-updated.
func (s *Store) AddCase(newCase domain.ClinicalCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newCase.ID == "" {
		return apperrors.NewValidationError("case id required", nil)
	}
	if newCase.Title == "" {
		return apperrors.NewValidationError("case title required", nil)
	}
	for i := range s.cases {
		if s.cases[i].ID == newCase.ID {
			return apperrors.NewDuplicateID("case", newCase.ID)
		}
	}
	doctorIdx := -1
	for i := range s.users {
		if s.users[i].ID == newCase.DoctorID {
			doctorIdx = i
			break
		}
	}
	if doctorIdx < 0 || s.users[doctorIdx].Role != domain.RoleDoctor {
		return apperrors.NewValidationError("doctorId must reference a doctor", map[string]any{
			"doctor_id": newCase.DoctorID,
		})
	}

	s.cases = append([]domain.ClinicalCase{newCase}, s.cases...)
	s.users[doctorIdx].CasesCount++

	s.prependNotification(domain.Notification{
		ID:          s.newID(),
		RecipientID: domain.MarketingTeamRecipient,
		Title:       "New case submitted",
		Message:     fmt.Sprintf("%s submitted a new clinical case: %q", newCase.DoctorName, newCase.Title),
		CreatedAt:   s.now(),
		IsRead:      false,
		CaseID:      newCase.ID,
		Type:        domain.NotificationNewSubmission,
	})
	return nil
}

// UpdateCase replaces the stored case with the given record, keeping its
// position. When and only when the status differs from the stored one, a
// single STATUS_CHANGE notification is emitted to the case's doctor; changes
// to any other field, including publishedResult, emit nothing.
func (s *Store) UpdateCase(updated domain.ClinicalCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.cases {
		if s.cases[i].ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.NewNotFound("case", map[string]any{"id": updated.ID})
	}

	old := s.cases[idx]
	if old.Status != updated.Status {
		if !validTransition(old.Status, updated.Status) {
			return apperrors.NewValidationError("invalid status transition", map[string]any{
				"from": string(old.Status),
				"to":   string(updated.Status),
			})
		}
	}
	if updated.Status == domain.CaseStatusPublished && updated.PublishedResult == nil {
		return apperrors.NewValidationError("published case requires a published result", nil)
	}

	s.cases[idx] = updated

	if old.Status != updated.Status {
		s.prependNotification(domain.Notification{
			ID:          s.newID(),
			RecipientID: updated.DoctorID,
			Title:       "Case status updated",
			Message:     fmt.Sprintf("Status of case %q changed to %s.", updated.Title, updated.Status),
			CreatedAt:   s.now(),
			IsRead:      false,
			CaseID:      updated.ID,
			Type:        domain.NotificationStatusChange,
		})
	}
	return nil
}

// CaseByID returns a copy of the case with the given id.
func (s *Store) CaseByID(id string) (domain.ClinicalCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.cases {
		if s.cases[i].ID == id {
			return s.cases[i], nil
		}
	}
	return domain.ClinicalCase{}, apperrors.NewNotFound("case", map[string]any{"id": id})
}

// Cases returns a snapshot of all cases in storage order.
func (s *Store) Cases() []domain.ClinicalCase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ClinicalCase, len(s.cases))
	copy(out, s.cases)
	return out
}

// CasesForDoctor returns the doctor's cases, preserving storage order.
func (s *Store) CasesForDoctor(doctorID string) []domain.ClinicalCase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ClinicalCase, 0)
	for i := range s.cases {
		if s.cases[i].DoctorID == doctorID {
			out = append(out, s.cases[i])
		}
	}
	return out
}

// VisibleNotifications returns the notifications addressed to the viewer:
// marketing members see everything sent to the MARKETING_TEAM sentinel,
// doctors see notifications addressed to their own id. Pure read.
func (s *Store) VisibleNotifications(viewer domain.User) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visibleLocked(viewer)
}

func (s *Store) visibleLocked(viewer domain.User) []domain.Notification {
	out := make([]domain.Notification, 0)
	for i := range s.notifications {
		if notificationVisible(s.notifications[i], viewer) {
			out = append(out, s.notifications[i])
		}
	}
	return out
}

func notificationVisible(n domain.Notification, viewer domain.User) bool {
	if viewer.Role == domain.RoleMarketing {
		return n.RecipientID == domain.MarketingTeamRecipient
	}
	return n.RecipientID == viewer.ID
}

// UnreadCount counts the viewer's unread notifications.
func (s *Store) UnreadCount(viewer domain.User) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for i := range s.notifications {
		if !s.notifications[i].IsRead && notificationVisible(s.notifications[i], viewer) {
			count++
		}
	}
	return count
}

// MarkAllAsRead marks every notification visible to the viewer as read.
// Other recipients' notifications are untouched.
func (s *Store) MarkAllAsRead(viewer domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if notificationVisible(s.notifications[i], viewer) {
			s.notifications[i].IsRead = true
		}
	}
}

// MarkOneAsRead marks a single notification as read, provided it is visible
// to the viewer. Already-read, unknown or foreign ids are a no-op; isRead
// never reverts.
func (s *Store) MarkOneAsRead(viewer domain.User, notificationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == notificationID {
			if notificationVisible(s.notifications[i], viewer) {
				s.notifications[i].IsRead = true
			}
			return
		}
	}
}

// Notifications returns a snapshot of every notification in storage order.
func (s *Store) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Restore replaces all three collections wholesale, used when loading a
// persisted snapshot at startup.
func (s *Store) Restore(cases []domain.ClinicalCase, notifications []domain.Notification, users []domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases = append([]domain.ClinicalCase(nil), cases...)
	s.notifications = append([]domain.Notification(nil), notifications...)
	s.users = append([]domain.User(nil), users...)
}

func (s *Store) prependNotification(n domain.Notification) {
	s.notifications = append([]domain.Notification{n}, s.notifications...)
}

var statusRank = map[domain.CaseStatus]int{
	domain.CaseStatusNew:        0,
	domain.CaseStatusReviewed:   1,
	domain.CaseStatusInProgress: 2,
	domain.CaseStatusReady:      3,
	domain.CaseStatusPublished:  4,
}

// validTransition allows forward moves of any distance through the workflow
// and rejects backward moves and unknown statuses.
func validTransition(current, next domain.CaseStatus) bool {
	from, ok := statusRank[current]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to >= from
}
