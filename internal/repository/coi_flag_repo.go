package repository

import (
	"Palisade/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type COIFlagRepo interface {
	Create(ctx context.Context, flag *model.COIFlag) error
	GetByID(ctx context.Context, id string) (*model.COIFlag, error)
	Update(ctx context.Context, flag *model.COIFlag) error
	ListActive(ctx context.Context) ([]*model.COIFlag, error)
	ListBySeverity(ctx context.Context, severity string) ([]*model.COIFlag, error)
	ListByContent(ctx context.Context, contentType, contentID string) ([]*model.COIFlag, error)
}

type COIFlagRepoImpl struct {
	db *gorm.DB
}

func NewCOIFlagRepository(db *gorm.DB) COIFlagRepo {
	return &COIFlagRepoImpl{
		db: db,
	}
}

// Create 权威表和内容记录上的冗余副本在同一事务内写入
// 读方不会看到只更新了一边的状态
func (s COIFlagRepoImpl) Create(ctx context.Context, flag *model.COIFlag) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(flag).Error; err != nil {
			return err
		}
		return syncContentCOIFlags(tx, flag.ContentType, flag.ContentID)
	})
}

func (s COIFlagRepoImpl) GetByID(ctx context.Context, id string) (*model.COIFlag, error) {
	var flag model.COIFlag
	err := s.db.WithContext(ctx).First(&flag, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flag, nil
}

func (s COIFlagRepoImpl) Update(ctx context.Context, flag *model.COIFlag) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(flag).Error; err != nil {
			return err
		}
		return syncContentCOIFlags(tx, flag.ContentType, flag.ContentID)
	})
}

func (s COIFlagRepoImpl) ListActive(ctx context.Context) ([]*model.COIFlag, error) {
	var flags []*model.COIFlag
	err := s.db.WithContext(ctx).
		Where("status = ?", "active").
		Order("created_at DESC").
		Find(&flags).Error
	if err != nil {
		return nil, err
	}
	return flags, nil
}

func (s COIFlagRepoImpl) ListBySeverity(ctx context.Context, severity string) ([]*model.COIFlag, error) {
	var flags []*model.COIFlag
	err := s.db.WithContext(ctx).
		Where("status = ? AND severity = ?", "active", severity).
		Order("created_at DESC").
		Find(&flags).Error
	if err != nil {
		return nil, err
	}
	return flags, nil
}

func (s COIFlagRepoImpl) ListByContent(ctx context.Context, contentType, contentID string) ([]*model.COIFlag, error) {
	var flags []*model.COIFlag
	err := s.db.WithContext(ctx).
		Where("content_type = ? AND content_id = ?", contentType, contentID).
		Order("created_at DESC").
		Find(&flags).Error
	if err != nil {
		return nil, err
	}
	return flags, nil
}

// syncContentCOIFlags 以权威表为准重建内容记录上的冗余副本
func syncContentCOIFlags(tx *gorm.DB, contentType, contentID string) error {
	var flags []model.COIFlag
	err := tx.Where("content_type = ? AND content_id = ?", contentType, contentID).
		Order("created_at").
		Find(&flags).Error
	if err != nil {
		return err
	}

	return tx.Model(&model.Content{}).
		Where("id = ? AND content_type = ?", contentID, contentType).
		Update("coi_flags", flags).Error
}
