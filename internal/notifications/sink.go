package notifications

import (
	"context"
	"encoding/json"
	"log/slog"

	"bookclub/internal/featureflags"
	"bookclub/internal/models"
	"bookclub/internal/observability"
	"bookclub/internal/repository"
)

// liveDeliveryFlag gates Redis pub/sub delivery per recipient. Persisted
// records are written regardless so the inbox stays complete.
const liveDeliveryFlag = "live_notifications"

// Sink accepts outbound notification events produced by mutating operations.
// It persists each record and publishes it to the recipient's channel. Both
// steps are best-effort: failures are logged and never propagate back into
// the triggering operation's transaction.
type Sink struct {
	repo     repository.NotificationRepository
	notifier *Notifier
	flags    *featureflags.Manager
	logger   *slog.Logger
}

// NewSink returns a Sink writing through the given repository and notifier.
// Either dependency may be nil; the sink degrades accordingly.
func NewSink(repo repository.NotificationRepository, notifier *Notifier, flags *featureflags.Manager, logger *slog.Logger) *Sink {
	return &Sink{repo: repo, notifier: notifier, flags: flags, logger: logger}
}

// Emit accepts one event record per recipient. It never returns an error:
// the caller's mutation has already committed and must not be rolled back by
// a delivery failure.
func (s *Sink) Emit(ctx context.Context, events []models.Notification) {
	if s == nil || len(events) == 0 {
		return
	}

	for i := range events {
		event := &events[i]

		if s.repo != nil {
			if err := s.repo.Create(ctx, event); err != nil {
				observability.NotificationFailures.WithLabelValues("persist").Inc()
				s.log(ctx, "failed to persist notification", event, err)
			}
		}

		if !s.flags.Enabled(liveDeliveryFlag, event.RecipientID) {
			continue
		}

		payload, err := json.Marshal(event)
		if err != nil {
			observability.NotificationFailures.WithLabelValues("encode").Inc()
			s.log(ctx, "failed to encode notification", event, err)
			continue
		}
		if err := s.notifier.PublishUser(ctx, event.RecipientID, string(payload)); err != nil {
			observability.NotificationFailures.WithLabelValues("publish").Inc()
			s.log(ctx, "failed to publish notification", event, err)
			continue
		}
		observability.NotificationsPublished.WithLabelValues(string(event.Verb)).Inc()
	}
}

func (s *Sink) log(ctx context.Context, msg string, event *models.Notification, err error) {
	if s.logger == nil {
		return
	}
	s.logger.WarnContext(ctx, msg,
		slog.String("verb", string(event.Verb)),
		slog.Uint64("recipient_id", uint64(event.RecipientID)),
		slog.Uint64("subject_id", uint64(event.SubjectID)),
		slog.String("error", err.Error()),
	)
}
