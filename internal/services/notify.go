package services

import (
	"context"

	"github.com/yukikurage/community-service-hub/internal/notification"
	"go.uber.org/zap"
)

// notify delivers msg on a best-effort basis.
func notify(ctx context.Context, notifier notification.Notifier, log *zap.Logger, msg notification.Message) {
	if msg.ToEmail == "" {
		return
	}
	if err := notifier.Send(ctx, msg); err != nil {
		log.Warn("failed to send notification",
			zap.String("to", msg.ToEmail),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
	}
}
