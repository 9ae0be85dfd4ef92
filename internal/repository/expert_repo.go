package repository

import (
	"Palisade/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ExpertRepo interface {
	Create(ctx context.Context, profile *model.ExpertProfile) error
	GetByUserID(ctx context.Context, userID string) (*model.ExpertProfile, error)
	Update(ctx context.Context, profile *model.ExpertProfile) error
	ListByStatus(ctx context.Context, status string) ([]*model.ExpertProfile, error)
}

type ExpertRepoImpl struct {
	db *gorm.DB
}

func NewExpertRepository(db *gorm.DB) ExpertRepo {
	return &ExpertRepoImpl{
		db: db,
	}
}

func (s ExpertRepoImpl) Create(ctx context.Context, profile *model.ExpertProfile) error {
	return s.db.WithContext(ctx).Create(profile).Error
}

func (s ExpertRepoImpl) GetByUserID(ctx context.Context, userID string) (*model.ExpertProfile, error) {
	var profile model.ExpertProfile
	err := s.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s ExpertRepoImpl) Update(ctx context.Context, profile *model.ExpertProfile) error {
	return s.db.WithContext(ctx).Save(profile).Error
}

func (s ExpertRepoImpl) ListByStatus(ctx context.Context, status string) ([]*model.ExpertProfile, error) {
	var profiles []*model.ExpertProfile
	tx := s.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if err := tx.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
