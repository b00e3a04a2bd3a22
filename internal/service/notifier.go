package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/clubeativo/hub-api/internal/domain"
)

// Notifier receives user-visible events produced by ledger transitions.
// The presentation layer decides how to surface them; the services only
// report that something notification-worthy happened.
type Notifier interface {
	BadgeAwarded(ctx context.Context, userID uint, badge domain.Badge)
	EnrollmentConfirmed(ctx context.Context, userID, eventID uint)
}

// LogNotifier is the default sink; it just records the events.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) BadgeAwarded(_ context.Context, userID uint, badge domain.Badge) {
	zap.L().Info("badge awarded",
		zap.Uint("user_id", userID),
		zap.String("badge", badge.Name),
	)
}

func (n *LogNotifier) EnrollmentConfirmed(_ context.Context, userID, eventID uint) {
	zap.L().Info("enrollment confirmed",
		zap.Uint("user_id", userID),
		zap.Uint("event_id", eventID),
	)
}
