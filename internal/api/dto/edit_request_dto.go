package dto

// CreateEditRequestDTO 提交编辑请求
type CreateEditRequestDTO struct {
	ContentID    string `json:"content_id" binding:"required"`
	ContentType  string `json:"content_type" binding:"required" validate:"oneof=post comment media wiki_revision"`
	OriginalData string `json:"original_data"`
	EditedData   string `json:"edited_data" binding:"required"`
	Priority     string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

// EditRequestDTO 编辑请求
type EditRequestDTO struct {
	ID           string `json:"id"`
	AuthorID     string `json:"author_id"`
	ContentID    string `json:"content_id"`
	ContentType  string `json:"content_type"`
	OriginalData string `json:"original_data,omitempty"`
	EditedData   string `json:"edited_data"`
	Status       string `json:"status"`
	Priority     string `json:"priority,omitempty"`
	ReviewedBy   string `json:"reviewed_by,omitempty"`
	ReviewedAt   string `json:"reviewed_at,omitempty"`
	Reason       string `json:"reason,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// ReviewDTO 审批或驳回编辑请求
type ReviewDTO struct {
	Reason string `json:"reason" validate:"max=1024"`
}

// RateLimitDTO 限流检查结果
type RateLimitDTO struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}
