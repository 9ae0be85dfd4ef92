package dto

// ReportDTO 举报内容
// AI 字段只允许系统身份（kafka 标记流）填充，对公开举报接口不可绑定，
// 否则普通举报人可以伪造 ai_score 直接拉高优先级
type ReportDTO struct {
	ContentType string `json:"content_type" binding:"required" validate:"oneof=post comment media wiki_revision"`
	ContentID   string `json:"content_id" binding:"required" validate:"min=1,max=64"`
	AIScore     *int   `json:"-" validate:"omitempty,min=0,max=100"`
	AutoFlagged bool   `json:"-"`
	AutoReason  string `json:"-" validate:"max=255"`
}

// QueueItemDTO 队列条目
type QueueItemDTO struct {
	ID            string   `json:"id"`
	ContentType   string   `json:"content_type"`
	ContentID     string   `json:"content_id"`
	ReportedBy    []string `json:"reported_by"`
	ReportCount   int      `json:"report_count"`
	AIScore       *int     `json:"ai_score,omitempty"`
	AutoFlagged   bool     `json:"auto_flagged"`
	AutoReason    string   `json:"auto_reason,omitempty"`
	Priority      string   `json:"priority"`
	Status        string   `json:"status"`
	AssignedTo    string   `json:"assigned_to,omitempty"`
	Justification string   `json:"justification,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// QueueListDTO 队列分页
type QueueListDTO struct {
	Items      []*QueueItemDTO `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// QueueQueryDTO 队列查询参数
type QueueQueryDTO struct {
	ContentType string `form:"content_type" binding:"required"`
	Status      string `form:"status" validate:"omitempty,oneof=pending in_review resolved"`
	SortBy      string `form:"sort_by" validate:"omitempty,oneof=priority aiScore createdAt"`
	SortOrder   string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
	Page        int    `form:"page,default=1" validate:"min=1"`
	PageSize    int    `form:"page_size,default=20" validate:"min=1,max=100"`
}

// AssignDTO 指派审核人
type AssignDTO struct {
	ModeratorID string `json:"moderator_id" binding:"required"`
}

// EscalateDTO 手动调整优先级
type EscalateDTO struct {
	Priority string `json:"priority" binding:"required" validate:"oneof=low medium high urgent"`
}

// QueueCountsDTO 各状态条目数
type QueueCountsDTO struct {
	ContentType string `json:"content_type,omitempty"`
	Pending     int64  `json:"pending"`
	InReview    int64  `json:"in_review"`
	Resolved    int64  `json:"resolved"`
}
