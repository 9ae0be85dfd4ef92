package dto

// AddFlagDTO 添加利益冲突标记
type AddFlagDTO struct {
	ContentID   string `json:"content_id" binding:"required"`
	ContentType string `json:"content_type" binding:"required" validate:"oneof=post comment media wiki_revision"`
	Reason      string `json:"reason" binding:"required" validate:"min=1,max=512"`
	Details     string `json:"details" validate:"max=2048"`
	Severity    string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
}

// UpdateFlagDTO 更新或解决标记
type UpdateFlagDTO struct {
	Severity   string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Details    string `json:"details" validate:"max=2048"`
	Status     string `json:"status" validate:"omitempty,oneof=active resolved"`
	Resolution string `json:"resolution" validate:"max=1024"`
}

// COIFlagDTO 利益冲突标记
type COIFlagDTO struct {
	ID          string `json:"id"`
	ContentID   string `json:"content_id"`
	ContentType string `json:"content_type"`
	FlaggedBy   string `json:"flagged_by"`
	Reason      string `json:"reason"`
	Details     string `json:"details,omitempty"`
	Severity    string `json:"severity"`
	Status      string `json:"status"`
	ResolvedBy  string `json:"resolved_by,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
	ResolvedAt  string `json:"resolved_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}
