package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/melhem/content-hub/internal/events"
	"github.com/melhem/content-hub/internal/persistence"
	"github.com/melhem/content-hub/internal/service"
	"github.com/melhem/content-hub/internal/store"
)

// StartNotificationWorker registers the outbound notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartSnapshotAutosaver persists the full store snapshot after every
// mutation event. Saves are synchronous with the mutation; last writer wins.
func StartSnapshotAutosaver(dispatcher events.Dispatcher, snapshots *persistence.SnapshotStore, caseStore *store.Store, logger *zap.Logger) {
	if dispatcher == nil || snapshots == nil {
		return
	}
	save := func(ctx context.Context, event events.Event) error {
		if err := snapshots.Save(caseStore); err != nil {
			logger.Error("snapshot save failed", zap.String("event_type", string(event.Type)), zap.Error(err))
			return err
		}
		return nil
	}
	for _, eventType := range []events.EventType{
		events.EventCaseSubmitted,
		events.EventCaseStatusChanged,
		events.EventCasePublished,
		events.EventNotificationsRead,
	} {
		dispatcher.Subscribe(eventType, save)
	}
}
