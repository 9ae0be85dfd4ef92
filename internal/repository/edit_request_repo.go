package repository

import (
	"Palisade/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type EditRequestRepo interface {
	Create(ctx context.Context, request *model.EditRequest) error
	GetByID(ctx context.Context, id string) (*model.EditRequest, error)
	Update(ctx context.Context, request *model.EditRequest) error
	CountByAuthorSince(ctx context.Context, authorID string, since time.Time) (int64, error)
	ListByStatus(ctx context.Context, status string) ([]*model.EditRequest, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*model.EditRequest, error)
}

type EditRequestRepoImpl struct {
	db *gorm.DB
}

func NewEditRequestRepository(db *gorm.DB) EditRequestRepo {
	return &EditRequestRepoImpl{
		db: db,
	}
}

func (s EditRequestRepoImpl) Create(ctx context.Context, request *model.EditRequest) error {
	return s.db.WithContext(ctx).Create(request).Error
}

func (s EditRequestRepoImpl) GetByID(ctx context.Context, id string) (*model.EditRequest, error) {
	var request model.EditRequest
	err := s.db.WithContext(ctx).First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (s EditRequestRepoImpl) Update(ctx context.Context, request *model.EditRequest) error {
	return s.db.WithContext(ctx).Save(request).Error
}

// CountByAuthorSince 滑动窗口计数，窗口起点由调用方给定
func (s EditRequestRepoImpl) CountByAuthorSince(ctx context.Context, authorID string, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.EditRequest{}).
		Where("author_id = ? AND created_at > ?", authorID, since).
		Count(&count).Error
	return count, err
}

func (s EditRequestRepoImpl) ListByStatus(ctx context.Context, status string) ([]*model.EditRequest, error) {
	var requests []*model.EditRequest
	tx := s.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if err := tx.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (s EditRequestRepoImpl) ListByAuthor(ctx context.Context, authorID string) ([]*model.EditRequest, error) {
	var requests []*model.EditRequest
	err := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
