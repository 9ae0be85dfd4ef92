package handler

import (
	"Palisade/internal/api/dto"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQueueService struct {
	lastReporter string
	lastReport   *dto.ReportDTO
}

func (s *stubQueueService) Ingest(_ context.Context, reporterID string, reportDTO *dto.ReportDTO) (*dto.QueueItemDTO, error) {
	s.lastReporter = reporterID
	s.lastReport = reportDTO
	return &dto.QueueItemDTO{ID: "mq_1", Priority: "low"}, nil
}

func (s *stubQueueService) Query(context.Context, *dto.QueueQueryDTO) (*dto.QueueListDTO, error) {
	return &dto.QueueListDTO{}, nil
}

func (s *stubQueueService) GetItem(context.Context, string) (*dto.QueueItemDTO, error) {
	return nil, nil
}

func (s *stubQueueService) Assign(context.Context, string, string) (*dto.QueueItemDTO, error) {
	return nil, nil
}

func (s *stubQueueService) Escalate(context.Context, string, string) (*dto.QueueItemDTO, error) {
	return nil, nil
}

func (s *stubQueueService) Counts(context.Context, string) (*dto.QueueCountsDTO, error) {
	return nil, nil
}

// 普通举报人不能通过请求体伪造 AI 字段拉高优先级
func TestReportIgnoresAIFieldsFromBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubQueueService{}
	h := NewQueueHandler(svc)

	body := `{"content_type":"post","content_id":"post-1","ai_score":100,"auto_flagged":true,"auto_reason":"forged"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/moderation/reports", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", "user-1")

	h.Report(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastReport)
	assert.Equal(t, "user-1", svc.lastReporter)
	assert.Equal(t, "post", svc.lastReport.ContentType)
	assert.Equal(t, "post-1", svc.lastReport.ContentID)
	assert.Nil(t, svc.lastReport.AIScore)
	assert.False(t, svc.lastReport.AutoFlagged)
	assert.Empty(t, svc.lastReport.AutoReason)
}
