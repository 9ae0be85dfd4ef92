package model

import (
	"time"
)

// RecentChange 最近变更流水，wiki 修订与编辑请求的统一动态流
// wiki 事件写入即为 applied；edit_requested 条目在审批后由 RefID 更新状态
type RecentChange struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	ChangeType  string    `gorm:"type:varchar(32);not null;index" json:"change_type"`
	ContentType string    `gorm:"type:varchar(32);not null;index" json:"content_type"`
	ContentID   string    `gorm:"type:varchar(64);not null" json:"content_id"`
	RefID       string    `gorm:"type:varchar(64);index" json:"ref_id,omitempty"`
	ChangedBy   string    `gorm:"type:varchar(64);not null;index" json:"changed_by"`
	Status      string    `gorm:"type:varchar(16);not null" json:"status"`
	Summary     string    `gorm:"type:varchar(512)" json:"summary,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (RecentChange) TableName() string {
	return "moderation_recent_changes"
}
