package handler

import (
	"Palisade/internal/api/dto"
	"Palisade/internal/pkg/response"
	"Palisade/internal/pkg/util"
	"Palisade/internal/service"

	"github.com/gin-gonic/gin"
)

type QueueHandler struct {
	queueSvc service.QueueService
}

func NewQueueHandler(queueSvc service.QueueService) *QueueHandler {
	return &QueueHandler{
		queueSvc: queueSvc,
	}
}

// Report 举报内容，去重入队
func (s *QueueHandler) Report(c *gin.Context) {
	var reportDTO dto.ReportDTO
	if err := c.ShouldBind(&reportDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&reportDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	reporterID := c.GetString("user_id")
	item, err := s.queueSvc.Ingest(c.Request.Context(), reporterID, &reportDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

func (s *QueueHandler) Query(c *gin.Context) {
	var queryDTO dto.QueueQueryDTO
	if err := c.ShouldBindQuery(&queryDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&queryDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	list, err := s.queueSvc.Query(c.Request.Context(), &queryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *QueueHandler) GetItem(c *gin.Context) {
	item, err := s.queueSvc.GetItem(c.Request.Context(), c.Param("item_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

func (s *QueueHandler) Assign(c *gin.Context) {
	var assignDTO dto.AssignDTO
	if err := c.ShouldBind(&assignDTO); err != nil {
		response.Error(c, err)
		return
	}

	item, err := s.queueSvc.Assign(c.Request.Context(), c.Param("item_id"), assignDTO.ModeratorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

func (s *QueueHandler) Escalate(c *gin.Context) {
	var escalateDTO dto.EscalateDTO
	if err := c.ShouldBind(&escalateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&escalateDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	item, err := s.queueSvc.Escalate(c.Request.Context(), c.Param("item_id"), escalateDTO.Priority)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

func (s *QueueHandler) Counts(c *gin.Context) {
	contentType := c.Query("content_type")
	counts, err := s.queueSvc.Counts(c.Request.Context(), contentType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, counts)
}
