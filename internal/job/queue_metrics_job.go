package job

import (
	"Palisade/internal/pkg/consts"
	"Palisade/internal/pkg/logger"
	"Palisade/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

type QueueMetricsJob struct {
	queueService service.QueueService
}

func NewQueueMetricsJob(queueService service.QueueService) *QueueMetricsJob {
	return &QueueMetricsJob{
		queueService: queueService,
	}
}

// Run 汇总各内容类型的队列状态分布并写入 Redis，供运营看板读取
func (s *QueueMetricsJob) Run() {
	traceID := "job-qmetrics-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	contentTypes := []string{
		consts.ContentTypePost,
		consts.ContentTypeComment,
		consts.ContentTypeMedia,
		consts.ContentTypeWikiRevision,
	}

	for _, contentType := range contentTypes {
		counts, err := s.queueService.Counts(ctx, contentType)
		if err != nil {
			log.ErrorContext(ctx, "count queue items error", "content_type", contentType, "err", err)
			continue
		}
		if err := service.CacheCounts(ctx, contentType, counts); err != nil {
			log.ErrorContext(ctx, "cache queue counts error", "content_type", contentType, "err", err)
		}
	}

	log.InfoContext(ctx, "QueueMetricsJob finished")
}
