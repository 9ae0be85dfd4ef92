package job

import (
	"Palisade/internal/pkg/logger"
	"Palisade/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

type SoftDeleteCleanupJob struct {
	moderationService service.ModerationService
}

func NewSoftDeleteCleanupJob(moderationService service.ModerationService) *SoftDeleteCleanupJob {
	return &SoftDeleteCleanupJob{
		moderationService: moderationService,
	}
}

// Run 清理保留窗口已过的软删除墓碑，重复执行安全
func (s *SoftDeleteCleanupJob) Run() {
	traceID := "job-sdclean-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	purged, err := s.moderationService.CleanupExpiredSoftDeletes(ctx)
	if err != nil {
		log.ErrorContext(ctx, "soft-delete cleanup failed", "err", err)
		return
	}
	log.InfoContext(ctx, "SoftDeleteCleanupJob finished", "purged_count", purged)
}
