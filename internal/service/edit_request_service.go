package service

import (
	"Palisade/internal/api/config"
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

type EditRequestService interface {
	CheckRateLimit(ctx context.Context, authorID string) (*dto.RateLimitDTO, error)
	Create(ctx context.Context, authorID string, createDTO *dto.CreateEditRequestDTO) (*dto.EditRequestDTO, error)
	GetByID(ctx context.Context, id string) (*dto.EditRequestDTO, error)
	Approve(ctx context.Context, id, reviewerID, reason string) (*dto.EditRequestDTO, error)
	Reject(ctx context.Context, id, reviewerID, reason string) (*dto.EditRequestDTO, error)
	ListByStatus(ctx context.Context, status string) ([]*dto.EditRequestDTO, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*dto.EditRequestDTO, error)
}

type EditRequestServiceImpl struct {
	editRequestRepo  repository.EditRequestRepo
	contentRepo      repository.ContentRepo
	recentChangeRepo repository.RecentChangeRepo
	cfg              config.ModerationConfig
	now              func() time.Time
}

func NewEditRequestService(editRequestRepo repository.EditRequestRepo, contentRepo repository.ContentRepo, recentChangeRepo repository.RecentChangeRepo, cfg config.ModerationConfig) EditRequestService {
	return &EditRequestServiceImpl{
		editRequestRepo:  editRequestRepo,
		contentRepo:      contentRepo,
		recentChangeRepo: recentChangeRepo,
		cfg:              cfg,
		now:              time.Now,
	}
}

// evaluateRateLimit 小时窗与天窗都检查，双双超限时报天窗，天是更外层的硬上限
// 两个窗口都是滑动窗口而非固定桶
func (s *EditRequestServiceImpl) evaluateRateLimit(ctx context.Context, authorID string) (*RateLimitedError, error) {
	now := s.now()

	hourCount, err := s.editRequestRepo.CountByAuthorSince(ctx, authorID, now.Add(-time.Hour))
	if err != nil {
		return nil, err
	}
	dayCount, err := s.editRequestRepo.CountByAuthorSince(ctx, authorID, now.Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}

	if dayCount >= int64(s.cfg.EditRequestsPerDay) {
		return &RateLimitedError{Window: "day", Limit: s.cfg.EditRequestsPerDay}, nil
	}
	if hourCount >= int64(s.cfg.EditRequestsPerHour) {
		return &RateLimitedError{Window: "hour", Limit: s.cfg.EditRequestsPerHour}, nil
	}
	return nil, nil
}

func (s *EditRequestServiceImpl) CheckRateLimit(ctx context.Context, authorID string) (*dto.RateLimitDTO, error) {
	limited, err := s.evaluateRateLimit(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if limited != nil {
		return &dto.RateLimitDTO{Allowed: false, Reason: limited.Error()}, nil
	}
	return &dto.RateLimitDTO{Allowed: true}, nil
}

// Create 限流通过才落库，被限流时返回带窗口信息的错误
func (s *EditRequestServiceImpl) Create(ctx context.Context, authorID string, createDTO *dto.CreateEditRequestDTO) (*dto.EditRequestDTO, error) {
	content, err := s.contentRepo.GetByID(ctx, createDTO.ContentType, createDTO.ContentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrContentNotFound
	}

	limited, err := s.evaluateRateLimit(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if limited != nil {
		log.InfoContext(ctx, "edit request rate limited", "author_id", authorID, "window", limited.Window)
		return nil, limited
	}

	request := &model.EditRequest{
		ID:           util.GenerateID("er"),
		AuthorID:     authorID,
		ContentType:  createDTO.ContentType,
		ContentID:    createDTO.ContentID,
		OriginalData: createDTO.OriginalData,
		EditedData:   createDTO.EditedData,
		Status:       consts.EditRequestPending,
		Priority:     createDTO.Priority,
	}
	if err := s.editRequestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	// 流水写失败不阻断提交，动态流允许少一条
	change := &model.RecentChange{
		ID:          util.GenerateID("rc"),
		ChangeType:  consts.ChangeTypeEditRequested,
		ContentType: request.ContentType,
		ContentID:   request.ContentID,
		RefID:       request.ID,
		ChangedBy:   authorID,
		Status:      consts.ChangeStatusPending,
		CreatedAt:   s.now(),
	}
	if err := s.recentChangeRepo.Create(ctx, change); err != nil {
		log.WarnContext(ctx, "record recent change error", "err", err, "request_id", request.ID)
	}
	return toEditRequestDTO(request), nil
}

func (s *EditRequestServiceImpl) GetByID(ctx context.Context, id string) (*dto.EditRequestDTO, error) {
	request, err := s.editRequestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrEditRequestNotFound
	}
	return toEditRequestDTO(request), nil
}

func (s *EditRequestServiceImpl) Approve(ctx context.Context, id, reviewerID, reason string) (*dto.EditRequestDTO, error) {
	return s.review(ctx, id, reviewerID, reason, consts.EditRequestApproved)
}

func (s *EditRequestServiceImpl) Reject(ctx context.Context, id, reviewerID, reason string) (*dto.EditRequestDTO, error) {
	return s.review(ctx, id, reviewerID, reason, consts.EditRequestRejected)
}

// review 只有 pending 状态可以被审，重复审返回冲突
func (s *EditRequestServiceImpl) review(ctx context.Context, id, reviewerID, reason, status string) (*dto.EditRequestDTO, error) {
	request, err := s.editRequestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrEditRequestNotFound
	}
	if request.Status != consts.EditRequestPending {
		return nil, ErrEditRequestProcessed
	}

	now := s.now()
	request.Status = status
	request.ReviewedBy = reviewerID
	request.ReviewedAt = &now
	request.Reason = reason
	if err := s.editRequestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "edit request reviewed", "request_id", id, "status", status, "reviewer", reviewerID)

	// 审批结果同步到最近变更流水
	if err := s.recentChangeRepo.UpdateStatusByRef(ctx, id, status); err != nil {
		log.WarnContext(ctx, "sync recent change status error", "err", err, "request_id", id)
	}
	return toEditRequestDTO(request), nil
}

func (s *EditRequestServiceImpl) ListByStatus(ctx context.Context, status string) ([]*dto.EditRequestDTO, error) {
	requests, err := s.editRequestRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return toEditRequestDTOs(requests), nil
}

func (s *EditRequestServiceImpl) ListByAuthor(ctx context.Context, authorID string) ([]*dto.EditRequestDTO, error) {
	requests, err := s.editRequestRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return toEditRequestDTOs(requests), nil
}

func toEditRequestDTO(request *model.EditRequest) *dto.EditRequestDTO {
	requestDTO := &dto.EditRequestDTO{}
	_ = copier.Copy(requestDTO, request)
	requestDTO.ReviewedAt = formatTimePtr(request.ReviewedAt)
	requestDTO.CreatedAt = formatTime(request.CreatedAt)
	return requestDTO
}

func toEditRequestDTOs(requests []*model.EditRequest) []*dto.EditRequestDTO {
	result := make([]*dto.EditRequestDTO, 0, len(requests))
	for _, request := range requests {
		result = append(result, toEditRequestDTO(request))
	}
	return result
}
