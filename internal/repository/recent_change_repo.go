package repository

import (
	"Palisade/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// RecentChangeQuery 最近变更查询参数，Since 为零值时不做时间过滤
type RecentChangeQuery struct {
	ChangeType  string
	ContentType string
	ChangedBy   string
	Status      string
	Since       time.Time
	Limit       int
	Offset      int
}

type RecentChangeRepo interface {
	Create(ctx context.Context, change *model.RecentChange) error
	UpdateStatusByRef(ctx context.Context, refID, status string) error
	List(ctx context.Context, q RecentChangeQuery) ([]*model.RecentChange, int64, error)
}

type RecentChangeRepoImpl struct {
	db *gorm.DB
}

func NewRecentChangeRepository(db *gorm.DB) RecentChangeRepo {
	return &RecentChangeRepoImpl{
		db: db,
	}
}

func (s RecentChangeRepoImpl) Create(ctx context.Context, change *model.RecentChange) error {
	return s.db.WithContext(ctx).Create(change).Error
}

// UpdateStatusByRef 源记录（如编辑请求）审批后同步流水状态
func (s RecentChangeRepoImpl) UpdateStatusByRef(ctx context.Context, refID, status string) error {
	return s.db.WithContext(ctx).
		Model(&model.RecentChange{}).
		Where("ref_id = ?", refID).
		Update("status", status).Error
}

// List 统计和取页在同一事务内完成，保证单次调用看到一致的快照
func (s RecentChangeRepoImpl) List(ctx context.Context, q RecentChangeQuery) ([]*model.RecentChange, int64, error) {
	var changes []*model.RecentChange
	var total int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		base := tx.Model(&model.RecentChange{})
		if q.ChangeType != "" {
			base = base.Where("change_type = ?", q.ChangeType)
		}
		if q.ContentType != "" {
			base = base.Where("content_type = ?", q.ContentType)
		}
		if q.ChangedBy != "" {
			base = base.Where("changed_by = ?", q.ChangedBy)
		}
		if q.Status != "" {
			base = base.Where("status = ?", q.Status)
		}
		if !q.Since.IsZero() {
			base = base.Where("created_at >= ?", q.Since)
		}

		if err := base.Count(&total).Error; err != nil {
			return err
		}
		return base.
			Order("created_at DESC, id DESC").
			Limit(q.Limit).
			Offset(q.Offset).
			Find(&changes).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return changes, total, nil
}
