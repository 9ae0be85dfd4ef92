package model

import (
	"time"
)

// WikiRevision 文章修订，rev 在文章内单调递增，写入后内容不可变
// 仅审批元数据（status / approved_by / approved_at）允许更新
type WikiRevision struct {
	ID         string     `gorm:"primaryKey;size:64" json:"id"`
	ArticleID  string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_article_rev,priority:1" json:"article_id"`
	Rev        int        `gorm:"not null;uniqueIndex:idx_article_rev,priority:2" json:"rev"`
	AuthorID   string     `gorm:"type:varchar(64);not null" json:"author_id"`
	Content    string     `gorm:"type:mediumtext" json:"content"`
	Infobox    string     `gorm:"type:json" json:"infobox,omitempty"`
	Status     string     `gorm:"type:varchar(16);not null;default:draft" json:"status"` // draft, stable
	ApprovedBy string     `gorm:"type:varchar(64)" json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (WikiRevision) TableName() string {
	return "wiki_revisions"
}
