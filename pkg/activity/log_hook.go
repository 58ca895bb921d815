package activity

import (
	"context"

	"go.uber.org/zap"
)

// LogHook writes every activity event to logger at info level.
func LogHook(logger *zap.Logger) Hook {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("activity")
	return HookFunc(func(_ context.Context, evt Event) error {
		logger.Info(evt.Verb,
			zap.String("object_type", evt.ObjectType),
			zap.String("object_id", evt.ObjectID),
			zap.String("actor_id", evt.ActorID),
			zap.String("channel", evt.Channel),
			zap.Time("occurred_at", evt.OccurredAt),
			zap.Any("metadata", evt.Metadata),
		)
		return nil
	})
}
