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

type COIService interface {
	AddFlag(ctx context.Context, flaggerID string, addDTO *dto.AddFlagDTO) (*dto.COIFlagDTO, error)
	UpdateFlag(ctx context.Context, flagID, actorID string, updateDTO *dto.UpdateFlagDTO) (*dto.COIFlagDTO, error)
	GetActiveFlags(ctx context.Context) ([]*dto.COIFlagDTO, error)
	GetFlagsBySeverity(ctx context.Context, severity string) ([]*dto.COIFlagDTO, error)
	ListByContent(ctx context.Context, contentType, contentID string) ([]*dto.COIFlagDTO, error)
}

type COIServiceImpl struct {
	coiFlagRepo repository.COIFlagRepo
	contentRepo repository.ContentRepo
	now         func() time.Time
}

func NewCOIService(coiFlagRepo repository.COIFlagRepo, contentRepo repository.ContentRepo) COIService {
	return &COIServiceImpl{
		coiFlagRepo: coiFlagRepo,
		contentRepo: contentRepo,
		now:         time.Now,
	}
}

// AddFlag 权威表与内容上的冗余副本由存储层同事务写入
func (s *COIServiceImpl) AddFlag(ctx context.Context, flaggerID string, addDTO *dto.AddFlagDTO) (*dto.COIFlagDTO, error) {
	content, err := s.contentRepo.GetByID(ctx, addDTO.ContentType, addDTO.ContentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrContentNotFound
	}

	severity := addDTO.Severity
	if severity == "" {
		severity = consts.COISeverityLow
	}

	flag := &model.COIFlag{
		ID:          util.GenerateID("coi"),
		ContentType: addDTO.ContentType,
		ContentID:   addDTO.ContentID,
		FlaggedBy:   flaggerID,
		Reason:      addDTO.Reason,
		Details:     addDTO.Details,
		Severity:    severity,
		Status:      consts.COIStatusActive,
	}
	if err := s.coiFlagRepo.Create(ctx, flag); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "coi flag added",
		"flag_id", flag.ID, "content_type", flag.ContentType, "content_id", flag.ContentID, "severity", severity)
	return toCOIFlagDTO(flag), nil
}

// UpdateFlag 已解决的标记不可再改，解决时记录处理人与结论
func (s *COIServiceImpl) UpdateFlag(ctx context.Context, flagID, actorID string, updateDTO *dto.UpdateFlagDTO) (*dto.COIFlagDTO, error) {
	flag, err := s.coiFlagRepo.GetByID(ctx, flagID)
	if err != nil {
		return nil, err
	}
	if flag == nil {
		return nil, ErrFlagNotFound
	}
	if flag.Status == consts.COIStatusResolved {
		return nil, ErrFlagResolved
	}

	if updateDTO.Severity != "" {
		flag.Severity = updateDTO.Severity
	}
	if updateDTO.Details != "" {
		flag.Details = updateDTO.Details
	}
	if updateDTO.Status == consts.COIStatusResolved {
		now := s.now()
		flag.Status = consts.COIStatusResolved
		flag.ResolvedBy = actorID
		flag.ResolvedAt = &now
		flag.Resolution = updateDTO.Resolution
	}

	if err := s.coiFlagRepo.Update(ctx, flag); err != nil {
		return nil, err
	}
	return toCOIFlagDTO(flag), nil
}

func (s *COIServiceImpl) GetActiveFlags(ctx context.Context) ([]*dto.COIFlagDTO, error) {
	flags, err := s.coiFlagRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return toCOIFlagDTOs(flags), nil
}

func (s *COIServiceImpl) GetFlagsBySeverity(ctx context.Context, severity string) ([]*dto.COIFlagDTO, error) {
	flags, err := s.coiFlagRepo.ListBySeverity(ctx, severity)
	if err != nil {
		return nil, err
	}
	return toCOIFlagDTOs(flags), nil
}

func (s *COIServiceImpl) ListByContent(ctx context.Context, contentType, contentID string) ([]*dto.COIFlagDTO, error) {
	flags, err := s.coiFlagRepo.ListByContent(ctx, contentType, contentID)
	if err != nil {
		return nil, err
	}
	return toCOIFlagDTOs(flags), nil
}

func toCOIFlagDTO(flag *model.COIFlag) *dto.COIFlagDTO {
	flagDTO := &dto.COIFlagDTO{}
	_ = copier.Copy(flagDTO, flag)
	flagDTO.ResolvedAt = formatTimePtr(flag.ResolvedAt)
	flagDTO.CreatedAt = formatTime(flag.CreatedAt)
	return flagDTO
}

func toCOIFlagDTOs(flags []*model.COIFlag) []*dto.COIFlagDTO {
	result := make([]*dto.COIFlagDTO, 0, len(flags))
	for _, flag := range flags {
		result = append(result, toCOIFlagDTO(flag))
	}
	return result
}
