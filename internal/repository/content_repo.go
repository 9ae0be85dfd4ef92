package repository

import (
	"Palisade/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ContentRepo 内容登记表，审核流水线只做存在性校验和 COI 副本读取
type ContentRepo interface {
	Create(ctx context.Context, content *model.Content) error
	GetByID(ctx context.Context, contentType, contentID string) (*model.Content, error)
}

type ContentRepoImpl struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepo {
	return &ContentRepoImpl{
		db: db,
	}
}

func (s ContentRepoImpl) Create(ctx context.Context, content *model.Content) error {
	return s.db.WithContext(ctx).Create(content).Error
}

func (s ContentRepoImpl) GetByID(ctx context.Context, contentType, contentID string) (*model.Content, error) {
	var content model.Content
	err := s.db.WithContext(ctx).
		Where("id = ? AND content_type = ?", contentID, contentType).
		First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}
