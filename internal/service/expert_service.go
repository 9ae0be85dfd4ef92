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

type ExpertService interface {
	Apply(ctx context.Context, userID string, applyDTO *dto.ExpertApplyDTO) (*dto.ExpertProfileDTO, error)
	GetProfile(ctx context.Context, userID string) (*dto.ExpertProfileDTO, error)
	Verify(ctx context.Context, userID, reviewerID string) (*dto.ExpertProfileDTO, error)
	Revoke(ctx context.Context, userID, reviewerID string) (*dto.ExpertProfileDTO, error)
	Extend(ctx context.Context, userID string, months int) (*dto.ExpertProfileDTO, error)
	IsEffectivelyVerified(ctx context.Context, userID string) (bool, error)
	ListByStatus(ctx context.Context, status string) ([]*dto.ExpertProfileDTO, error)
}

type ExpertServiceImpl struct {
	expertRepo repository.ExpertRepo
	userRepo   repository.UserRepo
	cfg        config.ModerationConfig
	now        func() time.Time
}

func NewExpertService(expertRepo repository.ExpertRepo, userRepo repository.UserRepo, cfg config.ModerationConfig) ExpertService {
	return &ExpertServiceImpl{
		expertRepo: expertRepo,
		userRepo:   userRepo,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Apply 提交认证申请，已被吊销的档案允许重新申请
func (s *ExpertServiceImpl) Apply(ctx context.Context, userID string, applyDTO *dto.ExpertApplyDTO) (*dto.ExpertProfileDTO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsBanned {
		return nil, ErrPermissionDenied
	}

	existing, err := s.expertRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.Status != consts.ExpertStatusRevoked {
			return nil, ErrExpertAlreadyApplied
		}
		existing.Credential = applyDTO.Credential
		existing.LicenseNo = applyDTO.LicenseNo
		existing.Region = applyDTO.Region
		existing.Status = consts.ExpertStatusPending
		existing.VerifiedAt = nil
		existing.ExpiresAt = nil
		existing.RevokedAt = nil
		existing.ReviewedBy = ""
		if err := s.expertRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return s.toProfileDTO(existing), nil
	}

	profile := &model.ExpertProfile{
		ID:         util.GenerateID("exp"),
		UserID:     userID,
		Credential: applyDTO.Credential,
		LicenseNo:  applyDTO.LicenseNo,
		Region:     applyDTO.Region,
		Status:     consts.ExpertStatusPending,
	}
	if err := s.expertRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return s.toProfileDTO(profile), nil
}

func (s *ExpertServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.ExpertProfileDTO, error) {
	profile, err := s.expertRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrExpertNotFound
	}
	return s.toProfileDTO(profile), nil
}

// Verify 审批通过，认证自通过时刻起按配置有效期生效
// 只接受 pending 档案：revoked 是终态，必须重新 Apply 才能进入新一轮审批
func (s *ExpertServiceImpl) Verify(ctx context.Context, userID, reviewerID string) (*dto.ExpertProfileDTO, error) {
	profile, err := s.expertRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrExpertNotFound
	}
	if profile.Status != consts.ExpertStatusPending {
		return nil, ErrExpertNotPending
	}

	now := s.now()
	expiresAt := now.AddDate(0, s.cfg.ExpertValidityMonths, 0)
	profile.Status = consts.ExpertStatusVerified
	profile.VerifiedAt = &now
	profile.ExpiresAt = &expiresAt
	profile.RevokedAt = nil
	profile.ReviewedBy = reviewerID
	if err := s.expertRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "expert verified", "user_id", userID, "reviewer", reviewerID, "expires_at", expiresAt)
	return s.toProfileDTO(profile), nil
}

func (s *ExpertServiceImpl) Revoke(ctx context.Context, userID, reviewerID string) (*dto.ExpertProfileDTO, error) {
	profile, err := s.expertRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrExpertNotFound
	}

	now := s.now()
	profile.Status = consts.ExpertStatusRevoked
	profile.RevokedAt = &now
	profile.ReviewedBy = reviewerID
	if err := s.expertRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "expert revoked", "user_id", userID, "reviewer", reviewerID)
	return s.toProfileDTO(profile), nil
}

// Extend 延长有效期，基准取当前时间与原到期时间中较晚者
// 已过期的认证从现在起重新计算
func (s *ExpertServiceImpl) Extend(ctx context.Context, userID string, months int) (*dto.ExpertProfileDTO, error) {
	profile, err := s.expertRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrExpertNotFound
	}
	if profile.Status != consts.ExpertStatusVerified {
		return nil, ErrPermissionDenied
	}

	base := s.now()
	if profile.ExpiresAt != nil && profile.ExpiresAt.After(base) {
		base = *profile.ExpiresAt
	}
	expiresAt := base.AddDate(0, months, 0)
	profile.ExpiresAt = &expiresAt
	if err := s.expertRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return s.toProfileDTO(profile), nil
}

// IsEffectivelyVerified verified 且未过期才算有效专家
func (s *ExpertServiceImpl) IsEffectivelyVerified(ctx context.Context, userID string) (bool, error) {
	profile, err := s.expertRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	if profile == nil {
		return false, nil
	}
	return s.effectiveStatus(profile) == consts.ExpertStatusVerified, nil
}

// ListByStatus 按派生状态过滤：expired 返回 verified 且已过期的档案
func (s *ExpertServiceImpl) ListByStatus(ctx context.Context, status string) ([]*dto.ExpertProfileDTO, error) {
	queryStatus := status
	if status == consts.ExpertStatusExpired {
		queryStatus = consts.ExpertStatusVerified
	}
	profiles, err := s.expertRepo.ListByStatus(ctx, queryStatus)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ExpertProfileDTO, 0, len(profiles))
	for _, profile := range profiles {
		if s.effectiveStatus(profile) != status {
			continue
		}
		result = append(result, s.toProfileDTO(profile))
	}
	return result, nil
}

// effectiveStatus expired 不落库，由 expires_at 派生
func (s *ExpertServiceImpl) effectiveStatus(profile *model.ExpertProfile) string {
	if profile.Status == consts.ExpertStatusVerified &&
		profile.ExpiresAt != nil && !s.now().Before(*profile.ExpiresAt) {
		return consts.ExpertStatusExpired
	}
	return profile.Status
}

func (s *ExpertServiceImpl) toProfileDTO(profile *model.ExpertProfile) *dto.ExpertProfileDTO {
	profileDTO := &dto.ExpertProfileDTO{}
	_ = copier.Copy(profileDTO, profile)
	profileDTO.EffectiveStatus = s.effectiveStatus(profile)
	profileDTO.VerifiedAt = formatTimePtr(profile.VerifiedAt)
	profileDTO.ExpiresAt = formatTimePtr(profile.ExpiresAt)
	profileDTO.RevokedAt = formatTimePtr(profile.RevokedAt)
	profileDTO.CreatedAt = formatTime(profile.CreatedAt)
	return profileDTO
}
