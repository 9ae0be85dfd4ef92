package model

import (
	"time"
)

// COIFlag 利益冲突标记
// 全局列表为权威数据，内容记录上另存一份反范式副本，二者同事务更新
type COIFlag struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	ContentType string     `gorm:"type:varchar(32);not null;index:idx_coi_content,priority:1" json:"content_type"`
	ContentID   string     `gorm:"type:varchar(64);not null;index:idx_coi_content,priority:2" json:"content_id"`
	FlaggedBy   string     `gorm:"type:varchar(64);not null" json:"flagged_by"`
	Reason      string     `gorm:"type:varchar(512);not null" json:"reason"`
	Details     string     `gorm:"type:varchar(2048)" json:"details,omitempty"`
	Severity    string     `gorm:"type:varchar(16);not null;default:low;index" json:"severity"` // low, medium, high, critical
	Status      string     `gorm:"type:varchar(16);not null;default:active;index" json:"status"` // active, resolved
	ResolvedBy  string     `gorm:"type:varchar(64)" json:"resolved_by,omitempty"`
	Resolution  string     `gorm:"type:varchar(1024)" json:"resolution,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (COIFlag) TableName() string {
	return "coi_flags"
}
