package service

import (
	"Palisade/internal/api/dto"
	"Palisade/internal/model"
	"Palisade/internal/pkg/consts"
	"Palisade/internal/pkg/util"
	"Palisade/internal/repository"
	"context"
	"time"

	log "log/slog"

	"github.com/jinzhu/copier"
)

type WikiService interface {
	CreateArticle(ctx context.Context, authorID string, articleDTO *dto.CreateArticleDTO) (*dto.ArticleDTO, error)
	GetArticle(ctx context.Context, articleID string) (*dto.ArticleDTO, error)
	CreateDraftRevision(ctx context.Context, articleID, authorID string, revisionDTO *dto.CreateRevisionDTO) (*dto.RevisionDTO, error)
	ListRevisions(ctx context.Context, articleID string) ([]*dto.RevisionDTO, error)
	MarkStable(ctx context.Context, articleID, revisionID, approverID string) (*dto.RevisionDTO, error)
	Rollback(ctx context.Context, articleID, performerID string, rollbackDTO *dto.RollbackDTO) (*dto.RevisionDTO, error)
	ListRollbackHistory(ctx context.Context, articleID string) ([]*dto.RollbackEntryDTO, error)
}

type WikiServiceImpl struct {
	wikiRepo         repository.WikiRepo
	recentChangeRepo repository.RecentChangeRepo
	expertService    ExpertService
	now              func() time.Time
}

func NewWikiService(wikiRepo repository.WikiRepo, recentChangeRepo repository.RecentChangeRepo, expertService ExpertService) WikiService {
	return &WikiServiceImpl{
		wikiRepo:         wikiRepo,
		recentChangeRepo: recentChangeRepo,
		expertService:    expertService,
		now:              time.Now,
	}
}

// recordChange 最近变更流水只是动态流，写失败不阻断主操作
func (s *WikiServiceImpl) recordChange(ctx context.Context, change *model.RecentChange) {
	change.ID = util.GenerateID("rc")
	change.CreatedAt = s.now()
	if err := s.recentChangeRepo.Create(ctx, change); err != nil {
		log.WarnContext(ctx, "record recent change error", "err", err, "change_type", change.ChangeType)
	}
}

func (s *WikiServiceImpl) CreateArticle(ctx context.Context, authorID string, articleDTO *dto.CreateArticleDTO) (*dto.ArticleDTO, error) {
	article := &model.WikiArticle{
		ID:       util.GenerateID("wa"),
		Title:    articleDTO.Title,
		Slug:     util.Slugify(articleDTO.Title),
		Category: articleDTO.Category,
		AuthorID: authorID,
	}
	if err := s.wikiRepo.CreateArticle(ctx, article); err != nil {
		return nil, err
	}
	return toArticleDTO(article), nil
}

func (s *WikiServiceImpl) GetArticle(ctx context.Context, articleID string) (*dto.ArticleDTO, error) {
	article, err := s.wikiRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return toArticleDTO(article), nil
}

// CreateDraftRevision 新修订总是 draft，修订号由存储层在行锁内分配
func (s *WikiServiceImpl) CreateDraftRevision(ctx context.Context, articleID, authorID string, revisionDTO *dto.CreateRevisionDTO) (*dto.RevisionDTO, error) {
	article, err := s.wikiRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	revision := &model.WikiRevision{
		ID:        util.GenerateID("wr"),
		ArticleID: articleID,
		AuthorID:  authorID,
		Content:   revisionDTO.Content,
		Infobox:   revisionDTO.Infobox,
		Status:    consts.RevisionStatusDraft,
	}
	if err := s.wikiRepo.CreateRevision(ctx, revision); err != nil {
		return nil, err
	}

	s.recordChange(ctx, &model.RecentChange{
		ChangeType:  consts.ChangeTypeRevisionCreated,
		ContentType: consts.ContentTypeWikiRevision,
		ContentID:   revision.ID,
		RefID:       articleID,
		ChangedBy:   authorID,
		Status:      consts.ChangeStatusApplied,
		Summary:     article.Title,
	})
	return toRevisionDTO(revision), nil
}

func (s *WikiServiceImpl) ListRevisions(ctx context.Context, articleID string) ([]*dto.RevisionDTO, error) {
	article, err := s.wikiRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	revisions, err := s.wikiRepo.ListRevisions(ctx, articleID)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.RevisionDTO, 0, len(revisions))
	for _, revision := range revisions {
		result = append(result, toRevisionDTO(revision))
	}
	return result, nil
}

// MarkStable 草稿转稳定，health 分类要求审批人持有未过期的专家认证
func (s *WikiServiceImpl) MarkStable(ctx context.Context, articleID, revisionID, approverID string) (*dto.RevisionDTO, error) {
	article, err := s.wikiRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	revision, err := s.wikiRepo.GetRevision(ctx, revisionID)
	if err != nil {
		return nil, err
	}
	if revision == nil {
		return nil, ErrRevisionNotFound
	}
	if revision.ArticleID != articleID {
		return nil, ErrRevisionNotInArticle
	}

	if article.Category == consts.ArticleCategoryHealth {
		verified, err := s.expertService.IsEffectivelyVerified(ctx, approverID)
		if err != nil {
			return nil, err
		}
		if !verified {
			return nil, ErrNotVerifiedExpert
		}
	}

	now := s.now()
	if err := s.wikiRepo.MarkStable(ctx, articleID, revisionID, approverID, now); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "revision marked stable",
		"article_id", articleID, "revision_id", revisionID, "approver", approverID)

	s.recordChange(ctx, &model.RecentChange{
		ChangeType:  consts.ChangeTypeRevisionStabilized,
		ContentType: consts.ContentTypeWikiRevision,
		ContentID:   revisionID,
		RefID:       articleID,
		ChangedBy:   approverID,
		Status:      consts.ChangeStatusApplied,
		Summary:     article.Title,
	})

	revision.Status = consts.RevisionStatusStable
	revision.ApprovedBy = approverID
	revision.ApprovedAt = &now
	return toRevisionDTO(revision), nil
}

// Rollback 复制目标修订的内容产生一条新 draft 修订，历史从不改写
// 新修订与回滚账本条目同事务写入
func (s *WikiServiceImpl) Rollback(ctx context.Context, articleID, performerID string, rollbackDTO *dto.RollbackDTO) (*dto.RevisionDTO, error) {
	article, err := s.wikiRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	target, err := s.wikiRepo.GetRevision(ctx, rollbackDTO.TargetRevisionID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrRevisionNotFound
	}
	if target.ArticleID != articleID {
		return nil, ErrRevisionNotInArticle
	}

	revision := &model.WikiRevision{
		ID:        util.GenerateID("wr"),
		ArticleID: articleID,
		AuthorID:  performerID,
		Content:   target.Content,
		Infobox:   target.Infobox,
		Status:    consts.RevisionStatusDraft,
	}
	entry := &model.RollbackHistoryEntry{
		ID:             util.GenerateID("rb"),
		ContentID:      articleID,
		ContentType:    consts.ContentTypeWikiArticle,
		RolledBackFrom: article.CurrentRevisionID,
		RolledBackTo:   target.ID,
		PerformedBy:    performerID,
		Reason:         rollbackDTO.Reason,
		Metadata: map[string]string{
			"new_revision_id": revision.ID,
		},
	}
	if err := s.wikiRepo.CreateRevisionWithHistory(ctx, revision, entry); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "article rolled back",
		"article_id", articleID, "target_revision", target.ID, "new_revision", revision.ID, "performer", performerID)

	s.recordChange(ctx, &model.RecentChange{
		ChangeType:  consts.ChangeTypeRollback,
		ContentType: consts.ContentTypeWikiArticle,
		ContentID:   articleID,
		RefID:       entry.ID,
		ChangedBy:   performerID,
		Status:      consts.ChangeStatusApplied,
		Summary:     rollbackDTO.Reason,
	})
	return toRevisionDTO(revision), nil
}

func (s *WikiServiceImpl) ListRollbackHistory(ctx context.Context, articleID string) ([]*dto.RollbackEntryDTO, error) {
	entries, err := s.wikiRepo.ListRollbackHistory(ctx, articleID)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.RollbackEntryDTO, 0, len(entries))
	for _, entry := range entries {
		entryDTO := &dto.RollbackEntryDTO{}
		_ = copier.Copy(entryDTO, entry)
		entryDTO.CreatedAt = formatTime(entry.CreatedAt)
		result = append(result, entryDTO)
	}
	return result, nil
}

func toArticleDTO(article *model.WikiArticle) *dto.ArticleDTO {
	articleDTO := &dto.ArticleDTO{}
	_ = copier.Copy(articleDTO, article)
	articleDTO.CreatedAt = formatTime(article.CreatedAt)
	return articleDTO
}

func toRevisionDTO(revision *model.WikiRevision) *dto.RevisionDTO {
	revisionDTO := &dto.RevisionDTO{}
	_ = copier.Copy(revisionDTO, revision)
	revisionDTO.ApprovedAt = formatTimePtr(revision.ApprovedAt)
	revisionDTO.CreatedAt = formatTime(revision.CreatedAt)
	return revisionDTO
}
