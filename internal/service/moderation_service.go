package service

import (
	"Palisade/internal/api/config"
	"Palisade/internal/api/dto"
	"Palisade/internal/model"
	"Palisade/internal/pkg/consts"
	"Palisade/internal/pkg/util"
	"Palisade/internal/repository"
	"context"
	"strings"
	"time"

	log "log/slog"

	"github.com/jinzhu/copier"
)

type ModerationService interface {
	Process(ctx context.Context, itemID, moderatorID string, actionDTO *dto.ProcessActionDTO) (*dto.QueueItemDTO, error)
	BulkProcess(ctx context.Context, moderatorID string, bulkDTO *dto.BulkProcessDTO) (*dto.BulkProcessResultDTO, error)
	ListActionLogs(ctx context.Context, itemID string) ([]*dto.ActionLogDTO, error)
	ListTrash(ctx context.Context) ([]*dto.SoftDeleteRecordDTO, error)
	Restore(ctx context.Context, restoreDTO *dto.RestoreDTO) error
	CleanupExpiredSoftDeletes(ctx context.Context) (int64, error)
	ListRecentChanges(ctx context.Context, queryDTO *dto.RecentChangesQueryDTO) (*dto.RecentChangeListDTO, error)
}

type ModerationServiceImpl struct {
	queueRepo        repository.QueueRepo
	actionLogRepo    repository.ActionLogRepo
	softDeleteRepo   repository.SoftDeleteRepo
	recentChangeRepo repository.RecentChangeRepo
	cfg              config.ModerationConfig
	now              func() time.Time
}

func NewModerationService(queueRepo repository.QueueRepo, actionLogRepo repository.ActionLogRepo, softDeleteRepo repository.SoftDeleteRepo, recentChangeRepo repository.RecentChangeRepo, cfg config.ModerationConfig) ModerationService {
	return &ModerationServiceImpl{
		queueRepo:        queueRepo,
		actionLogRepo:    actionLogRepo,
		softDeleteRepo:   softDeleteRepo,
		recentChangeRepo: recentChangeRepo,
		cfg:              cfg,
		now:              time.Now,
	}
}

func isValidAction(action string) bool {
	switch action {
	case consts.ActionApprove, consts.ActionReject, consts.ActionRedact, consts.ActionDelete:
		return true
	}
	return false
}

// Process 处理队列条目：校验、落审计日志、resolved，delete 动作额外写软删除墓碑
// 已 resolved 的条目重复处理返回冲突且不新增日志
func (s *ModerationServiceImpl) Process(ctx context.Context, itemID, moderatorID string, actionDTO *dto.ProcessActionDTO) (*dto.QueueItemDTO, error) {
	if strings.TrimSpace(actionDTO.Justification) == "" {
		return nil, ErrJustificationRequired
	}
	if !isValidAction(actionDTO.Action) {
		return nil, ErrInvalidAction
	}

	item, err := s.queueRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrQueueItemNotFound
	}
	if item.Status == consts.QueueStatusResolved {
		return nil, ErrQueueItemResolved
	}

	now := s.now()
	logRow := &model.ModerationActionLog{
		ID:            util.GenerateID("mal"),
		QueueItemID:   item.ID,
		Action:        actionDTO.Action,
		PerformedBy:   moderatorID,
		Justification: actionDTO.Justification,
		ContentType:   item.ContentType,
		ContentID:     item.ContentID,
		AIScore:       item.AIScore,
	}

	var sd *model.SoftDeleteRecord
	if actionDTO.Action == consts.ActionDelete {
		sd = &model.SoftDeleteRecord{
			ID:          util.GenerateID("sdr"),
			ContentType: item.ContentType,
			ContentID:   item.ContentID,
			QueueItemID: item.ID,
			DeletedBy:   moderatorID,
			Reason:      actionDTO.Justification,
			DeletedAt:   now,
			ExpiresAt:   now.AddDate(0, 0, s.cfg.SoftDeleteRetainDays),
		}
	}

	// resolved 检查与写入在同一原子单元内，竞态下只有一个调用方胜出
	resolved, err := s.queueRepo.ResolveWithLog(ctx, item.ID, actionDTO.Justification, logRow, sd)
	if err != nil {
		return nil, err
	}
	if !resolved {
		return nil, ErrQueueItemResolved
	}

	log.InfoContext(ctx, "queue item processed",
		"item_id", item.ID, "action", actionDTO.Action, "moderator", moderatorID)

	item.Status = consts.QueueStatusResolved
	item.Justification = actionDTO.Justification
	return toQueueItemDTO(item), nil
}

// BulkProcess 逐项处理，单项失败记入结果，不中断其余项
func (s *ModerationServiceImpl) BulkProcess(ctx context.Context, moderatorID string, bulkDTO *dto.BulkProcessDTO) (*dto.BulkProcessResultDTO, error) {
	result := &dto.BulkProcessResultDTO{
		Errors: make([]dto.BulkErrorDTO, 0),
	}
	for _, entry := range bulkDTO.Items {
		_, err := s.Process(ctx, entry.QueueItemID, moderatorID, &dto.ProcessActionDTO{
			Action:        entry.Action,
			Justification: entry.Justification,
		})
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.BulkErrorDTO{
				QueueItemID: entry.QueueItemID,
				Error:       err.Error(),
			})
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

func (s *ModerationServiceImpl) ListActionLogs(ctx context.Context, itemID string) ([]*dto.ActionLogDTO, error) {
	rows, err := s.actionLogRepo.ListByQueueItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	logs := make([]*dto.ActionLogDTO, 0, len(rows))
	for _, row := range rows {
		logDTO := &dto.ActionLogDTO{}
		_ = copier.Copy(logDTO, row)
		logDTO.CreatedAt = formatTime(row.CreatedAt)
		logs = append(logs, logDTO)
	}
	return logs, nil
}

func (s *ModerationServiceImpl) ListTrash(ctx context.Context) ([]*dto.SoftDeleteRecordDTO, error) {
	rows, err := s.softDeleteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]*dto.SoftDeleteRecordDTO, 0, len(rows))
	for _, row := range rows {
		records = append(records, toSoftDeleteRecordDTO(row))
	}
	return records, nil
}

// Restore 在保留窗口内撤销软删除，窗口已过视为冲突
func (s *ModerationServiceImpl) Restore(ctx context.Context, restoreDTO *dto.RestoreDTO) error {
	record, err := s.softDeleteRepo.GetByContent(ctx, restoreDTO.ContentType, restoreDTO.ContentID)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrRecordNotFound
	}
	if s.now().After(record.ExpiresAt) {
		return ErrRecordExpired
	}
	return s.softDeleteRepo.Delete(ctx, record.ID)
}

// CleanupExpiredSoftDeletes 清理过期墓碑，由定时任务周期调用，可安全重复执行
func (s *ModerationServiceImpl) CleanupExpiredSoftDeletes(ctx context.Context) (int64, error) {
	purged, err := s.softDeleteRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		log.InfoContext(ctx, "expired soft-delete records purged", "count", purged)
	}
	return purged, nil
}

// ListRecentChanges wiki 修订与编辑请求的统一动态流，默认只回看最近 30 天
func (s *ModerationServiceImpl) ListRecentChanges(ctx context.Context, queryDTO *dto.RecentChangesQueryDTO) (*dto.RecentChangeListDTO, error) {
	page := queryDTO.Page
	if page < 1 {
		page = 1
	}
	pageSize := queryDTO.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	ageDays := queryDTO.AgeDays
	if ageDays == 0 {
		ageDays = consts.RecentChangesDefaultDays
	}

	q := repository.RecentChangeQuery{
		ChangeType:  queryDTO.ChangeType,
		ContentType: queryDTO.ContentType,
		ChangedBy:   queryDTO.ChangedBy,
		Status:      queryDTO.Status,
		Since:       s.now().AddDate(0, 0, -ageDays),
		Limit:       pageSize,
		Offset:      (page - 1) * pageSize,
	}
	changes, total, err := s.recentChangeRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	list := &dto.RecentChangeListDTO{
		Items:    make([]*dto.RecentChangeDTO, 0, len(changes)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for _, change := range changes {
		changeDTO := &dto.RecentChangeDTO{}
		_ = copier.Copy(changeDTO, change)
		changeDTO.CreatedAt = formatTime(change.CreatedAt)
		list.Items = append(list.Items, changeDTO)
	}
	list.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	return list, nil
}

func toSoftDeleteRecordDTO(record *model.SoftDeleteRecord) *dto.SoftDeleteRecordDTO {
	recordDTO := &dto.SoftDeleteRecordDTO{}
	_ = copier.Copy(recordDTO, record)
	recordDTO.DeletedAt = formatTime(record.DeletedAt)
	recordDTO.ExpiresAt = formatTime(record.ExpiresAt)
	return recordDTO
}
