package dto

// CreateArticleDTO 创建 Wiki 文章
type CreateArticleDTO struct {
	Title    string `json:"title" binding:"required" validate:"min=1,max=255"`
	Category string `json:"category" binding:"required" validate:"min=1,max=32"`
}

// CreateRevisionDTO 创建草稿修订
type CreateRevisionDTO struct {
	Content string `json:"content" binding:"required"`
	Infobox string `json:"infobox"`
}

// RevisionDTO Wiki 修订
type RevisionDTO struct {
	ID         string `json:"id"`
	ArticleID  string `json:"article_id"`
	Rev        int    `json:"rev"`
	AuthorID   string `json:"author_id"`
	Content    string `json:"content"`
	Infobox    string `json:"infobox,omitempty"`
	Status     string `json:"status"`
	ApprovedBy string `json:"approved_by,omitempty"`
	ApprovedAt string `json:"approved_at,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// ArticleDTO Wiki 文章
type ArticleDTO struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Slug              string `json:"slug"`
	Category          string `json:"category"`
	AuthorID          string `json:"author_id"`
	StableRevisionID  string `json:"stable_revision_id,omitempty"`
	CurrentRevisionID string `json:"current_revision_id,omitempty"`
	CreatedAt         string `json:"created_at"`
}

// RollbackDTO 回滚到指定修订
type RollbackDTO struct {
	TargetRevisionID string `json:"target_revision_id" binding:"required"`
	Reason           string `json:"reason" validate:"max=1024"`
}

// RollbackEntryDTO 回滚账本条目
type RollbackEntryDTO struct {
	ID             string            `json:"id"`
	ContentID      string            `json:"content_id"`
	ContentType    string            `json:"content_type"`
	RolledBackFrom string            `json:"rolled_back_from"`
	RolledBackTo   string            `json:"rolled_back_to"`
	PerformedBy    string            `json:"performed_by"`
	Reason         string            `json:"reason,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      string            `json:"created_at"`
}
