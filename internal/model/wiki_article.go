package model

import (
	"time"
)

// WikiArticle Wiki 文章，拥有有序的修订序列
type WikiArticle struct {
	ID               string `gorm:"primaryKey;size:64" json:"id"`
	Title            string `gorm:"type:varchar(255);not null" json:"title"`
	Slug             string `gorm:"type:varchar(255);uniqueIndex" json:"slug"`
	Category         string `gorm:"type:varchar(32);not null;index" json:"category"` // health 分类的稳定发布受专家认证门禁
	AuthorID         string `gorm:"type:varchar(64);not null" json:"author_id"`
	StableRevisionID string `gorm:"type:varchar(64)" json:"stable_revision_id,omitempty"`
	CurrentRevisionID string `gorm:"type:varchar(64)" json:"current_revision_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WikiArticle) TableName() string {
	return "wiki_articles"
}
