package model

import (
	"time"
)

// ModerationQueueItem 审核队列条目
// 同一 (content_type, content_id) 在未 resolved 期间只允许一条存活记录
type ModerationQueueItem struct {
	ID          string   `gorm:"primaryKey;size:64" json:"id"`
	ContentType string   `gorm:"type:varchar(32);not null;index:idx_content,priority:1" json:"content_type"` // post, comment, media, wiki_revision
	ContentID   string   `gorm:"type:varchar(64);not null;index:idx_content,priority:2" json:"content_id"`
	ReportedBy  []string `gorm:"type:json;serializer:json" json:"reported_by"`
	ReportCount int      `gorm:"not null;default:1" json:"report_count"`
	AIScore     *int     `gorm:"type:int" json:"ai_score,omitempty"` // 0-100，自动评估严重度
	AutoFlagged bool     `gorm:"type:tinyint(1);not null;default:0" json:"auto_flagged"`
	AutoReason  string   `gorm:"type:varchar(255)" json:"auto_reason,omitempty"`
	Priority    string   `gorm:"type:varchar(16);not null;default:low;index" json:"priority"` // low, medium, high, urgent
	Status      string   `gorm:"type:varchar(16);not null;default:pending;index" json:"status"` // pending, in_review, resolved
	AssignedTo  string   `gorm:"type:varchar(64)" json:"assigned_to,omitempty"`
	Justification string `gorm:"type:varchar(1024)" json:"justification,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ModerationQueueItem) TableName() string {
	return "moderation_queue_items"
}

// HasReporter 判断举报人是否已在集合中
func (s *ModerationQueueItem) HasReporter(reporterID string) bool {
	for _, r := range s.ReportedBy {
		if r == reporterID {
			return true
		}
	}
	return false
}
