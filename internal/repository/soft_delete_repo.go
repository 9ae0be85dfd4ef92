package repository

import (
	"Palisade/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SoftDeleteRepo interface {
	Create(ctx context.Context, record *model.SoftDeleteRecord) error
	GetByContent(ctx context.Context, contentType, contentID string) (*model.SoftDeleteRecord, error)
	List(ctx context.Context) ([]*model.SoftDeleteRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type SoftDeleteRepoImpl struct {
	db *gorm.DB
}

func NewSoftDeleteRepository(db *gorm.DB) SoftDeleteRepo {
	return &SoftDeleteRepoImpl{
		db: db,
	}
}

func (s SoftDeleteRepoImpl) Create(ctx context.Context, record *model.SoftDeleteRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s SoftDeleteRepoImpl) GetByContent(ctx context.Context, contentType, contentID string) (*model.SoftDeleteRecord, error) {
	var record model.SoftDeleteRecord
	err := s.db.WithContext(ctx).
		Where("content_type = ? AND content_id = ?", contentType, contentID).
		Order("deleted_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s SoftDeleteRepoImpl) List(ctx context.Context) ([]*model.SoftDeleteRecord, error) {
	var records []*model.SoftDeleteRecord
	err := s.db.WithContext(ctx).Order("deleted_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s SoftDeleteRepoImpl) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&model.SoftDeleteRecord{}, "id = ?", id).Error
}

// DeleteExpired 条件删除天然幂等，可安全重复或并发执行
func (s SoftDeleteRepoImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.SoftDeleteRecord{})
	return res.RowsAffected, res.Error
}
