package repository

import (
	"Palisade/internal/model"
	"Palisade/internal/pkg/consts"
	"context"
	"errors"

	"gorm.io/gorm"
)

// QueueQuery 队列分页查询参数
type QueueQuery struct {
	ContentType string
	Status      string
	SortBy      string // priority, aiScore, createdAt
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}

type QueueRepo interface {
	Create(ctx context.Context, item *model.ModerationQueueItem) error
	GetByID(ctx context.Context, id string) (*model.ModerationQueueItem, error)
	GetLiveByContent(ctx context.Context, contentType, contentID string) (*model.ModerationQueueItem, error)
	Update(ctx context.Context, item *model.ModerationQueueItem) error
	List(ctx context.Context, q QueueQuery) ([]*model.ModerationQueueItem, int64, error)
	CountByStatus(ctx context.Context, contentType string) (map[string]int64, error)
	ResolveWithLog(ctx context.Context, itemID, justification string, logRow *model.ModerationActionLog, sd *model.SoftDeleteRecord) (bool, error)
}

type QueueRepoImpl struct {
	db *gorm.DB
}

func NewQueueRepository(db *gorm.DB) QueueRepo {
	return &QueueRepoImpl{
		db: db,
	}
}

func (s QueueRepoImpl) Create(ctx context.Context, item *model.ModerationQueueItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s QueueRepoImpl) GetByID(ctx context.Context, id string) (*model.ModerationQueueItem, error) {
	var item model.ModerationQueueItem
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s QueueRepoImpl) GetLiveByContent(ctx context.Context, contentType, contentID string) (*model.ModerationQueueItem, error) {
	var item model.ModerationQueueItem
	err := s.db.WithContext(ctx).
		Where("content_type = ? AND content_id = ? AND status <> ?", contentType, contentID, consts.QueueStatusResolved).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s QueueRepoImpl) Update(ctx context.Context, item *model.ModerationQueueItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

// List 统计和取页在同一事务内完成，保证单次调用看到一致的快照
func (s QueueRepoImpl) List(ctx context.Context, q QueueQuery) ([]*model.ModerationQueueItem, int64, error) {
	var items []*model.ModerationQueueItem
	var total int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		base := tx.Model(&model.ModerationQueueItem{})
		if q.ContentType != "" {
			base = base.Where("content_type = ?", q.ContentType)
		}
		if q.Status != "" {
			base = base.Where("status = ?", q.Status)
		}

		if err := base.Count(&total).Error; err != nil {
			return err
		}

		dir := "DESC"
		if q.SortOrder == "asc" {
			dir = "ASC"
		}

		switch q.SortBy {
		case "priority":
			base = base.Order("FIELD(priority, 'low', 'medium', 'high', 'urgent') " + dir).
				Order("created_at DESC")
		case "aiScore":
			base = base.Order("ai_score " + dir).Order("created_at DESC")
		case "createdAt":
			base = base.Order("created_at " + dir)
		default:
			base = base.Order("created_at DESC")
		}
		// ID 兜底排序，保证翻页不重不漏
		base = base.Order("id")

		offset := (q.Page - 1) * q.PageSize
		return base.Offset(offset).Limit(q.PageSize).Find(&items).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s QueueRepoImpl) CountByStatus(ctx context.Context, contentType string) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount

	tx := s.db.WithContext(ctx).Model(&model.ModerationQueueItem{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if contentType != "" {
		tx = tx.Where("content_type = ?", contentType)
	}
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// ResolveWithLog 条件更新 + 日志写入在同一事务内
// 返回 false 表示条目已处于 resolved，未产生任何副作用
func (s QueueRepoImpl) ResolveWithLog(ctx context.Context, itemID, justification string, logRow *model.ModerationActionLog, sd *model.SoftDeleteRecord) (bool, error) {
	resolved := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ModerationQueueItem{}).
			Where("id = ? AND status <> ?", itemID, consts.QueueStatusResolved).
			Updates(map[string]interface{}{
				"status":        consts.QueueStatusResolved,
				"justification": justification,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Create(logRow).Error; err != nil {
			return err
		}
		if sd != nil {
			if err := tx.Create(sd).Error; err != nil {
				return err
			}
		}
		resolved = true
		return nil
	})
	return resolved, err
}
