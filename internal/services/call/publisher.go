package call

import (
	"context"

	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/demandify-media/caller-voice-service/pkg/redis"
	"go.uber.org/zap"
)

// StartStatusPublisher mirrors status snapshots onto a Redis channel so
// replicas and ops tooling can watch the call slot without holding a
// websocket to this instance. Blocks until ctx is done.
func (s *CallerService) StartStatusPublisher(ctx context.Context, redisSvc redis.RedisServiceInterface, instanceID string) {
	if redisSvc == nil {
		return
	}
	channel := redisSvc.GenerateKey(redis.CALL_STATUS, instanceID)

	snapshots, cancel := s.Subscribe()
	defer cancel()

	logger.Base().Info("Status publisher started", zap.String("channel", channel))
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			if err := redisSvc.Publish(ctx, channel, snapshot); err != nil {
				logger.Base().Warn("Failed to publish status snapshot", zap.String("channel", channel), zap.Error(err))
			}
		}
	}
}
