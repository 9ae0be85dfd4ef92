package model

import (
	"time"
)

// RollbackHistoryEntry 回滚账本，只追加
// 回滚本身是复制旧修订内容产生新修订，从不改写历史
type RollbackHistoryEntry struct {
	ID             string            `gorm:"primaryKey;size:64" json:"id"`
	ContentID      string            `gorm:"type:varchar(64);not null;index" json:"content_id"`
	ContentType    string            `gorm:"type:varchar(32);not null" json:"content_type"`
	RolledBackFrom string            `gorm:"type:varchar(64);not null" json:"rolled_back_from"`
	RolledBackTo   string            `gorm:"type:varchar(64);not null" json:"rolled_back_to"`
	PerformedBy    string            `gorm:"type:varchar(64);not null" json:"performed_by"`
	Reason         string            `gorm:"type:varchar(1024)" json:"reason"`
	Metadata       map[string]string `gorm:"type:json;serializer:json" json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

func (RollbackHistoryEntry) TableName() string {
	return "rollback_history"
}
