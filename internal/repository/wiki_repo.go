package repository

import (
	"Palisade/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WikiRepo interface {
	CreateArticle(ctx context.Context, article *model.WikiArticle) error
	GetArticle(ctx context.Context, id string) (*model.WikiArticle, error)
	GetRevision(ctx context.Context, id string) (*model.WikiRevision, error)
	ListRevisions(ctx context.Context, articleID string) ([]*model.WikiRevision, error)
	CreateRevision(ctx context.Context, revision *model.WikiRevision) error
	CreateRevisionWithHistory(ctx context.Context, revision *model.WikiRevision, entry *model.RollbackHistoryEntry) error
	MarkStable(ctx context.Context, articleID, revisionID, approvedBy string, approvedAt time.Time) error
	ListRollbackHistory(ctx context.Context, contentID string) ([]*model.RollbackHistoryEntry, error)
}

type WikiRepoImpl struct {
	db *gorm.DB
}

func NewWikiRepository(db *gorm.DB) WikiRepo {
	return &WikiRepoImpl{
		db: db,
	}
}

func (s WikiRepoImpl) CreateArticle(ctx context.Context, article *model.WikiArticle) error {
	return s.db.WithContext(ctx).Create(article).Error
}

func (s WikiRepoImpl) GetArticle(ctx context.Context, id string) (*model.WikiArticle, error) {
	var article model.WikiArticle
	err := s.db.WithContext(ctx).First(&article, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

func (s WikiRepoImpl) GetRevision(ctx context.Context, id string) (*model.WikiRevision, error) {
	var revision model.WikiRevision
	err := s.db.WithContext(ctx).First(&revision, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &revision, nil
}

func (s WikiRepoImpl) ListRevisions(ctx context.Context, articleID string) ([]*model.WikiRevision, error) {
	var revisions []*model.WikiRevision
	err := s.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("rev").
		Find(&revisions).Error
	if err != nil {
		return nil, err
	}
	return revisions, nil
}

// CreateRevision 行锁内取 MAX(rev)+1，保证同一文章的修订号单调递增
func (s WikiRepoImpl) CreateRevision(ctx context.Context, revision *model.WikiRevision) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.createRevisionTx(tx, revision)
	})
}

// CreateRevisionWithHistory 回滚时新修订和回滚账本同事务落库
func (s WikiRepoImpl) CreateRevisionWithHistory(ctx context.Context, revision *model.WikiRevision, entry *model.RollbackHistoryEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.createRevisionTx(tx, revision); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (s WikiRepoImpl) createRevisionTx(tx *gorm.DB, revision *model.WikiRevision) error {
	var maxRev int
	err := tx.Model(&model.WikiRevision{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("article_id = ?", revision.ArticleID).
		Select("COALESCE(MAX(rev), 0)").
		Scan(&maxRev).Error
	if err != nil {
		return err
	}

	revision.Rev = maxRev + 1
	if err = tx.Create(revision).Error; err != nil {
		return err
	}

	return tx.Model(&model.WikiArticle{}).
		Where("id = ?", revision.ArticleID).
		Update("current_revision_id", revision.ID).Error
}

func (s WikiRepoImpl) MarkStable(ctx context.Context, articleID, revisionID, approvedBy string, approvedAt time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.WikiRevision{}).
			Where("id = ?", revisionID).
			Updates(map[string]interface{}{
				"status":      "stable",
				"approved_by": approvedBy,
				"approved_at": approvedAt,
			}).Error
		if err != nil {
			return err
		}

		return tx.Model(&model.WikiArticle{}).
			Where("id = ?", articleID).
			Update("stable_revision_id", revisionID).Error
	})
}

func (s WikiRepoImpl) ListRollbackHistory(ctx context.Context, contentID string) ([]*model.RollbackHistoryEntry, error) {
	var entries []*model.RollbackHistoryEntry
	err := s.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
