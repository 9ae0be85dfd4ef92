package kafka

import (
	"Palisade/internal/api/dto"
	"Palisade/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ReportHandler 消费站内举报事件入队
type ReportHandler struct {
	queueService service.QueueService
}

func NewReportHandler(queueService service.QueueService) *ReportHandler {
	return &ReportHandler{
		queueService: queueService,
	}
}

func (s *ReportHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("report consumer setup")
	return nil
}

func (s *ReportHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("report consumer cleanup")
	return nil
}

func (s *ReportHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.handleMessage)
}

func (s *ReportHandler) handleMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var report ReportMessage
	if err := json.Unmarshal(msg.Value, &report); err != nil {
		log.ErrorContext(ctx, "unmarshal report message error", "err", err)
		return nil
	}
	if report.ReporterID == "" {
		log.WarnContext(ctx, "report without reporter dropped",
			"content_type", report.ContentType, "content_id", report.ContentID)
		return nil
	}

	_, err := s.queueService.Ingest(ctx, report.ReporterID, &dto.ReportDTO{
		ContentType: report.ContentType,
		ContentID:   report.ContentID,
	})
	if errors.Is(err, service.ErrContentNotFound) {
		log.WarnContext(ctx, "report for unknown content dropped",
			"content_type", report.ContentType, "content_id", report.ContentID)
		return nil
	}
	return errors.Wrap(err, "ingest report")
}
