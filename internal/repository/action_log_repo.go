package repository

import (
	"Palisade/internal/model"
	"context"

	"gorm.io/gorm"
)

type ActionLogRepo interface {
	Create(ctx context.Context, logRow *model.ModerationActionLog) error
	ListByQueueItem(ctx context.Context, queueItemID string) ([]*model.ModerationActionLog, error)
	CountByQueueItem(ctx context.Context, queueItemID string) (int64, error)
}

type ActionLogRepoImpl struct {
	db *gorm.DB
}

func NewActionLogRepository(db *gorm.DB) ActionLogRepo {
	return &ActionLogRepoImpl{
		db: db,
	}
}

func (s ActionLogRepoImpl) Create(ctx context.Context, logRow *model.ModerationActionLog) error {
	return s.db.WithContext(ctx).Create(logRow).Error
}

func (s ActionLogRepoImpl) ListByQueueItem(ctx context.Context, queueItemID string) ([]*model.ModerationActionLog, error) {
	var logs []*model.ModerationActionLog
	err := s.db.WithContext(ctx).
		Where("queue_item_id = ?", queueItemID).
		Order("created_at").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (s ActionLogRepoImpl) CountByQueueItem(ctx context.Context, queueItemID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ModerationActionLog{}).
		Where("queue_item_id = ?", queueItemID).
		Count(&count).Error
	return count, err
}
