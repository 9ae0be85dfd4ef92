package model

import (
	"time"
)

// ModerationActionLog 审核操作日志，只追加，写入后永不修改或删除
type ModerationActionLog struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	QueueItemID   string    `gorm:"type:varchar(64);not null;index" json:"queue_item_id"`
	Action        string    `gorm:"type:varchar(16);not null" json:"action"` // approve, reject, redact, delete
	PerformedBy   string    `gorm:"type:varchar(64);not null" json:"performed_by"`
	Justification string    `gorm:"type:varchar(1024);not null" json:"justification"`
	ContentType   string    `gorm:"type:varchar(32)" json:"content_type"`
	ContentID     string    `gorm:"type:varchar(64)" json:"content_id"`
	AIScore       *int      `gorm:"type:int" json:"ai_score,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ModerationActionLog) TableName() string {
	return "moderation_action_logs"
}
