package model

import (
	"time"
)

// EditRequest 编辑请求，受作者维度滑动窗口限流
type EditRequest struct {
	ID           string     `gorm:"primaryKey;size:64" json:"id"`
	AuthorID     string     `gorm:"type:varchar(64);not null;index:idx_author_created,priority:1" json:"author_id"`
	ContentType  string     `gorm:"type:varchar(32);not null" json:"content_type"`
	ContentID    string     `gorm:"type:varchar(64);not null" json:"content_id"`
	OriginalData string     `gorm:"type:mediumtext" json:"original_data"`
	EditedData   string     `gorm:"type:mediumtext" json:"edited_data"`
	Status       string     `gorm:"type:varchar(16);not null;default:pending;index" json:"status"` // pending, approved, rejected
	Priority     string     `gorm:"type:varchar(16)" json:"priority,omitempty"`
	ReviewedBy   string     `gorm:"type:varchar(64)" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	Reason       string     `gorm:"type:varchar(1024)" json:"reason,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_author_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EditRequest) TableName() string {
	return "edit_requests"
}
