package job

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/pkg/consts"
	"Tieba/internal/pkg/logger"
	"Tieba/internal/pkg/minio"
	"Tieba/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// mediaTempTTL 上传后超过该时长仍未被帖子或评论引用的图片视为过期
const mediaTempTTL = 24 * time.Hour

type MediaCleanupJob struct{}

func NewMediaCleanupJob() *MediaCleanupJob {
	return &MediaCleanupJob{}
}

func (s *MediaCleanupJob) Run() {
	traceID := "job-media-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	ok, err := redis.TryLock(ctx, consts.MediaCleanupJobLock, traceID, 5*time.Minute, 1)
	if err != nil || !ok {
		return
	}
	defer redis.UnLock(ctx, consts.MediaCleanupJobLock, traceID)

	log.InfoContext(ctx, "start media cleanup job")
	allMedia, err := redis.HGetAll(ctx, consts.MediaTempKey)
	if err != nil {
		log.ErrorContext(ctx, "failed to get media temp hash", "err", err)
		return
	}

	deadline := time.Now().Add(-mediaTempTTL).Unix()
	count := 0
	for fileKey, val := range allMedia {
		var meta dto.MediaTempMetadata
		if err := json.Unmarshal([]byte(val), &meta); err != nil {
			log.WarnContext(ctx, "invalid media meta format", "fileKey", fileKey)
			continue
		}
		if meta.CreatedAt > deadline {
			continue
		}

		if err = minio.DeleteFile(ctx, fileKey); err != nil {
			log.ErrorContext(ctx, "failed to delete expired file from minio", "fileKey", fileKey, "err", err)
			continue
		}
		if err = redis.HDel(ctx, consts.MediaTempKey, fileKey); err != nil {
			log.ErrorContext(ctx, "failed to remove media token from redis", "fileKey", fileKey, "err", err)
		}
		count++
		log.InfoContext(ctx, "cleanup expired media resource", "fileKey", fileKey, "mime", meta.MimeType)
	}

	if count > 0 {
		log.InfoContext(ctx, "media cleanup job finished", "cleaned_count", count)
	}
}
