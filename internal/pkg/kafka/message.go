package kafka

// AIFlagMessage 内容安全模型产出的自动标记事件
type AIFlagMessage struct {
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
	Score       int    `json:"score"` // 0-100
	Reason      string `json:"reason"`
}

// ReportMessage 站内举报事件
type ReportMessage struct {
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
	ReporterID  string `json:"reporter_id"`
}
