package kafka

import (
	"Palisade/internal/api/dto"
	"Palisade/internal/pkg/consts"
	"Palisade/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// AIFlagHandler 消费内容安全模型的标记事件，以系统身份入队
type AIFlagHandler struct {
	queueService service.QueueService
}

func NewAIFlagHandler(queueService service.QueueService) *AIFlagHandler {
	return &AIFlagHandler{
		queueService: queueService,
	}
}

func (s *AIFlagHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("ai flag consumer setup")
	return nil
}

func (s *AIFlagHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("ai flag consumer cleanup")
	return nil
}

func (s *AIFlagHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.handleMessage)
}

func (s *AIFlagHandler) handleMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var flag AIFlagMessage
	if err := json.Unmarshal(msg.Value, &flag); err != nil {
		log.ErrorContext(ctx, "unmarshal ai flag message error", "err", err)
		return nil // 畸形消息无法通过重试恢复，跳过
	}

	score := flag.Score
	_, err := s.queueService.Ingest(ctx, consts.AIReporterID, &dto.ReportDTO{
		ContentType: flag.ContentType,
		ContentID:   flag.ContentID,
		AIScore:     &score,
		AutoFlagged: true,
		AutoReason:  flag.Reason,
	})
	if errors.Is(err, service.ErrContentNotFound) {
		log.WarnContext(ctx, "ai flag for unknown content dropped",
			"content_type", flag.ContentType, "content_id", flag.ContentID)
		return nil
	}
	return errors.Wrap(err, "ingest ai flag")
}
