package dto

// ProcessActionDTO 处理单个队列条目
type ProcessActionDTO struct {
	Action        string `json:"action" binding:"required" validate:"oneof=approve reject redact delete"`
	Justification string `json:"justification"`
}

// BulkProcessItemDTO 批量处理中的一项
type BulkProcessItemDTO struct {
	QueueItemID   string `json:"queue_item_id" binding:"required"`
	Action        string `json:"action" binding:"required" validate:"oneof=approve reject redact delete"`
	Justification string `json:"justification"`
}

// BulkProcessDTO 批量处理请求
type BulkProcessDTO struct {
	Items []BulkProcessItemDTO `json:"items" binding:"required" validate:"min=1,max=100"`
}

// BulkErrorDTO 批量处理中单项失败
type BulkErrorDTO struct {
	QueueItemID string `json:"queue_item_id"`
	Error       string `json:"error"`
}

// BulkProcessResultDTO 批量处理结果，单项失败不影响其余项
type BulkProcessResultDTO struct {
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Errors    []BulkErrorDTO `json:"errors"`
}

// SoftDeleteRecordDTO 软删除墓碑
type SoftDeleteRecordDTO struct {
	ID          string `json:"id"`
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
	QueueItemID string `json:"queue_item_id,omitempty"`
	DeletedBy   string `json:"deleted_by"`
	Reason      string `json:"reason"`
	DeletedAt   string `json:"deleted_at"`
	ExpiresAt   string `json:"expires_at"`
}

// RestoreDTO 在保留窗口内恢复软删除内容
type RestoreDTO struct {
	ContentType string `json:"content_type" binding:"required"`
	ContentID   string `json:"content_id" binding:"required"`
}

// RecentChangesQueryDTO 最近变更查询参数，AgeDays 控制回看窗口
type RecentChangesQueryDTO struct {
	ChangeType  string `form:"change_type" validate:"omitempty,oneof=revision_created revision_stabilized rollback edit_requested"`
	ContentType string `form:"content_type" validate:"omitempty,oneof=post comment media wiki_revision wiki_article"`
	ChangedBy   string `form:"changed_by"`
	Status      string `form:"status" validate:"omitempty,oneof=pending approved rejected applied"`
	AgeDays     int    `form:"age_days,default=0" validate:"min=0,max=365"`
	Page        int    `form:"page,default=1" validate:"min=1"`
	PageSize    int    `form:"page_size,default=20" validate:"min=1,max=100"`
}

// RecentChangeDTO 最近变更流水条目
type RecentChangeDTO struct {
	ID          string `json:"id"`
	ChangeType  string `json:"change_type"`
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
	RefID       string `json:"ref_id,omitempty"`
	ChangedBy   string `json:"changed_by"`
	Status      string `json:"status"`
	Summary     string `json:"summary,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// RecentChangeListDTO 最近变更分页
type RecentChangeListDTO struct {
	Items      []*RecentChangeDTO `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// ActionLogDTO 审核操作日志
type ActionLogDTO struct {
	ID            string `json:"id"`
	QueueItemID   string `json:"queue_item_id"`
	Action        string `json:"action"`
	PerformedBy   string `json:"performed_by"`
	Justification string `json:"justification"`
	CreatedAt     string `json:"created_at"`
}
