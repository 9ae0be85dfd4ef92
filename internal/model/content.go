package model

import (
	"time"
)

// Content 平台内容的本地登记表
// 审核流水线只关心存在性和冗余的 COI 副本，内容主体由外部系统维护
type Content struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	ContentType string    `gorm:"type:varchar(32);not null;index" json:"content_type"`
	Title       string    `gorm:"type:varchar(255)" json:"title"`
	AuthorID    string    `gorm:"type:varchar(64)" json:"author_id"`
	COIFlags    []COIFlag `gorm:"type:json;serializer:json" json:"coi_flags,omitempty"` // 反范式副本，权威数据见 coi_flags 表
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Content) TableName() string {
	return "contents"
}
