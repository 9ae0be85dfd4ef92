package service

import (
	"Palisade/internal/api/config"
	"Palisade/internal/api/dto"
	"Palisade/internal/model"
	"Palisade/internal/pkg/consts"
	"Palisade/internal/pkg/redis"
	"Palisade/internal/pkg/util"
	"Palisade/internal/repository"
	"context"
	"time"

	log "log/slog"

	"github.com/jinzhu/copier"
)

type QueueService interface {
	Ingest(ctx context.Context, reporterID string, reportDTO *dto.ReportDTO) (*dto.QueueItemDTO, error)
	Query(ctx context.Context, queryDTO *dto.QueueQueryDTO) (*dto.QueueListDTO, error)
	GetItem(ctx context.Context, itemID string) (*dto.QueueItemDTO, error)
	Assign(ctx context.Context, itemID, moderatorID string) (*dto.QueueItemDTO, error)
	Escalate(ctx context.Context, itemID, priority string) (*dto.QueueItemDTO, error)
	Counts(ctx context.Context, contentType string) (*dto.QueueCountsDTO, error)
}

type QueueServiceImpl struct {
	queueRepo   repository.QueueRepo
	contentRepo repository.ContentRepo
	locker      Locker
	cfg         config.ModerationConfig
}

func NewQueueService(queueRepo repository.QueueRepo, contentRepo repository.ContentRepo, locker Locker, cfg config.ModerationConfig) QueueService {
	return &QueueServiceImpl{
		queueRepo:   queueRepo,
		contentRepo: contentRepo,
		locker:      locker,
		cfg:         cfg,
	}
}

var priorityRank = map[string]int{
	consts.PriorityLow:    0,
	consts.PriorityMedium: 1,
	consts.PriorityHigh:   2,
	consts.PriorityUrgent: 3,
}

// Ingest 举报或 AI 标记入队
// 按 (content_type, content_id) 去重：存活条目只合并举报人并重算优先级，从不新建
func (s *QueueServiceImpl) Ingest(ctx context.Context, reporterID string, reportDTO *dto.ReportDTO) (*dto.QueueItemDTO, error) {
	content, err := s.contentRepo.GetByID(ctx, reportDTO.ContentType, reportDTO.ContentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrContentNotFound
	}

	// 同一 key 的并发入队串行化，避免出现两条存活条目或丢失举报人
	lockKey := consts.QueueIngestLockKey + reportDTO.ContentType + ":" + reportDTO.ContentID
	unlock, ok, err := s.locker.TryLock(ctx, lockKey, 5*time.Second)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}
	defer unlock()

	item, err := s.queueRepo.GetLiveByContent(ctx, reportDTO.ContentType, reportDTO.ContentID)
	if err != nil {
		return nil, err
	}

	if item == nil {
		item = &model.ModerationQueueItem{
			ID:          util.GenerateID("mq"),
			ContentType: reportDTO.ContentType,
			ContentID:   reportDTO.ContentID,
			ReportedBy:  []string{reporterID},
			ReportCount: 1,
			AIScore:     reportDTO.AIScore,
			AutoFlagged: reportDTO.AutoFlagged,
			AutoReason:  reportDTO.AutoReason,
			Status:      consts.QueueStatusPending,
		}
		item.Priority = s.computePriority(item)
		if err := s.queueRepo.Create(ctx, item); err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "queue item created",
			"item_id", item.ID, "content_type", item.ContentType, "content_id", item.ContentID, "priority", item.Priority)
		return toQueueItemDTO(item), nil
	}

	// 同一举报人重复举报不增加计数
	if !item.HasReporter(reporterID) {
		item.ReportedBy = append(item.ReportedBy, reporterID)
		item.ReportCount = len(item.ReportedBy)
	}
	if reportDTO.AIScore != nil {
		item.AIScore = reportDTO.AIScore
	}
	if reportDTO.AutoFlagged {
		item.AutoFlagged = true
		item.AutoReason = reportDTO.AutoReason
	}

	// 优先级只升不降，人工改动不被后续举报覆盖回去
	if computed := s.computePriority(item); priorityRank[computed] > priorityRank[item.Priority] {
		item.Priority = computed
	}

	if err := s.queueRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toQueueItemDTO(item), nil
}

// computePriority aiScore 达阈值直接 high，否则按独立举报人数分档
// urgent 不在此计算，只能人工升级
func (s *QueueServiceImpl) computePriority(item *model.ModerationQueueItem) string {
	if item.AIScore != nil && *item.AIScore >= s.cfg.AIScoreHighThreshold {
		return consts.PriorityHigh
	}
	if item.ReportCount >= s.cfg.ReportCountHigh {
		return consts.PriorityHigh
	}
	if item.ReportCount >= s.cfg.ReportCountMedium {
		return consts.PriorityMedium
	}
	return consts.PriorityLow
}

func (s *QueueServiceImpl) Query(ctx context.Context, queryDTO *dto.QueueQueryDTO) (*dto.QueueListDTO, error) {
	q := repository.QueueQuery{
		ContentType: queryDTO.ContentType,
		Status:      queryDTO.Status,
		SortBy:      queryDTO.SortBy,
		SortOrder:   queryDTO.SortOrder,
		Page:        queryDTO.Page,
		PageSize:    queryDTO.PageSize,
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}

	items, total, err := s.queueRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	list := &dto.QueueListDTO{
		Items:    make([]*dto.QueueItemDTO, 0, len(items)),
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	for _, item := range items {
		list.Items = append(list.Items, toQueueItemDTO(item))
	}
	list.TotalPages = int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return list, nil
}

func (s *QueueServiceImpl) GetItem(ctx context.Context, itemID string) (*dto.QueueItemDTO, error) {
	item, err := s.queueRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrQueueItemNotFound
	}
	return toQueueItemDTO(item), nil
}

// Assign 指派审核人并进入 in_review
func (s *QueueServiceImpl) Assign(ctx context.Context, itemID, moderatorID string) (*dto.QueueItemDTO, error) {
	item, err := s.queueRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrQueueItemNotFound
	}
	if item.Status == consts.QueueStatusResolved {
		return nil, ErrQueueItemResolved
	}

	item.AssignedTo = moderatorID
	item.Status = consts.QueueStatusInReview
	if err := s.queueRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toQueueItemDTO(item), nil
}

// Escalate 人工调整优先级，urgent 只能经由这里设置
func (s *QueueServiceImpl) Escalate(ctx context.Context, itemID, priority string) (*dto.QueueItemDTO, error) {
	item, err := s.queueRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrQueueItemNotFound
	}
	if item.Status == consts.QueueStatusResolved {
		return nil, ErrQueueItemResolved
	}

	item.Priority = priority
	if err := s.queueRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "queue item escalated", "item_id", item.ID, "priority", priority)
	return toQueueItemDTO(item), nil
}

func (s *QueueServiceImpl) Counts(ctx context.Context, contentType string) (*dto.QueueCountsDTO, error) {
	counts, err := s.queueRepo.CountByStatus(ctx, contentType)
	if err != nil {
		return nil, err
	}
	return &dto.QueueCountsDTO{
		ContentType: contentType,
		Pending:     counts[consts.QueueStatusPending],
		InReview:    counts[consts.QueueStatusInReview],
		Resolved:    counts[consts.QueueStatusResolved],
	}, nil
}

// CacheCounts 将各状态条目数写入 Redis，供运营侧看板读取
func CacheCounts(ctx context.Context, contentType string, counts *dto.QueueCountsDTO) error {
	key := consts.QueueCountsCacheKey + contentType
	err := redis.HSet(ctx, key, map[string]interface{}{
		"pending":   counts.Pending,
		"in_review": counts.InReview,
		"resolved":  counts.Resolved,
	})
	if err != nil {
		return err
	}
	return redis.Expire(ctx, key, 48*time.Hour)
}

func toQueueItemDTO(item *model.ModerationQueueItem) *dto.QueueItemDTO {
	itemDTO := &dto.QueueItemDTO{}
	_ = copier.Copy(itemDTO, item)
	itemDTO.CreatedAt = formatTime(item.CreatedAt)
	itemDTO.UpdatedAt = formatTime(item.UpdatedAt)
	return itemDTO
}
