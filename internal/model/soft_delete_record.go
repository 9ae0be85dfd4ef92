package model

import (
	"time"
)

// SoftDeleteRecord 软删除墓碑，过期后由定时任务清理
type SoftDeleteRecord struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	ContentType string    `gorm:"type:varchar(32);not null;index:idx_sd_content,priority:1" json:"content_type"`
	ContentID   string    `gorm:"type:varchar(64);not null;index:idx_sd_content,priority:2" json:"content_id"`
	QueueItemID string    `gorm:"type:varchar(64)" json:"queue_item_id,omitempty"`
	DeletedBy   string    `gorm:"type:varchar(64);not null" json:"deleted_by"`
	Reason      string    `gorm:"type:varchar(1024)" json:"reason"`
	DeletedAt   time.Time `gorm:"not null" json:"deleted_at"`
	ExpiresAt   time.Time `gorm:"not null;index" json:"expires_at"`
}

func (SoftDeleteRecord) TableName() string {
	return "soft_delete_records"
}
