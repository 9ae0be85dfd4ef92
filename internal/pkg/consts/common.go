package consts

// 内容类型
const (
	ContentTypePost         = "post"
	ContentTypeComment      = "comment"
	ContentTypeMedia        = "media"
	ContentTypeWikiRevision = "wiki_revision"
)

// ContentTypeWikiArticle 仅用于回滚账本，不进入审核队列
const ContentTypeWikiArticle = "wiki_article"

// 队列优先级
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// 队列状态
const (
	QueueStatusPending  = "pending"
	QueueStatusInReview = "in_review"
	QueueStatusResolved = "resolved"
)

// 处理动作
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionRedact  = "redact"
	ActionDelete  = "delete"
)

// 专家认证状态，expired 是派生状态不落库
const (
	ExpertStatusPending  = "pending"
	ExpertStatusVerified = "verified"
	ExpertStatusExpired  = "expired"
	ExpertStatusRevoked  = "revoked"
)

// Wiki 修订状态
const (
	RevisionStatusDraft  = "draft"
	RevisionStatusStable = "stable"
)

// Wiki 文章分类，health 的稳定发布需要认证专家
const (
	ArticleCategoryHealth = "health"
)

// COI 标记
const (
	COIStatusActive   = "active"
	COIStatusResolved = "resolved"

	COISeverityLow      = "low"
	COISeverityMedium   = "medium"
	COISeverityHigh     = "high"
	COISeverityCritical = "critical"
)

// 编辑请求状态
const (
	EditRequestPending  = "pending"
	EditRequestApproved = "approved"
	EditRequestRejected = "rejected"
)

// 最近变更类型
const (
	ChangeTypeRevisionCreated    = "revision_created"
	ChangeTypeRevisionStabilized = "revision_stabilized"
	ChangeTypeRollback           = "rollback"
	ChangeTypeEditRequested      = "edit_requested"
)

// 最近变更状态，edit_requested 条目跟随编辑请求的审批结果流转
const (
	ChangeStatusPending  = "pending"
	ChangeStatusApproved = "approved"
	ChangeStatusRejected = "rejected"
	ChangeStatusApplied  = "applied"
)

// RecentChangesDefaultDays 最近变更列表默认回看窗口
const RecentChangesDefaultDays = 30

// AIReporterID AI 标记事件入队时使用的系统举报人
const AIReporterID = "system-ai"
