package handler

import (
	"Palisade/internal/api/dto"
	"Palisade/internal/pkg/response"
	"Palisade/internal/pkg/util"
	"Palisade/internal/service"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationSvc service.ModerationService
}

func NewModerationHandler(moderationSvc service.ModerationService) *ModerationHandler {
	return &ModerationHandler{
		moderationSvc: moderationSvc,
	}
}

// Process 对单个队列条目执行审核动作
func (s *ModerationHandler) Process(c *gin.Context) {
	var actionDTO dto.ProcessActionDTO
	if err := c.ShouldBind(&actionDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&actionDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	moderatorID := c.GetString("user_id")
	item, err := s.moderationSvc.Process(c.Request.Context(), c.Param("item_id"), moderatorID, &actionDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

func (s *ModerationHandler) BulkProcess(c *gin.Context) {
	var bulkDTO dto.BulkProcessDTO
	if err := c.ShouldBind(&bulkDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&bulkDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	moderatorID := c.GetString("user_id")
	result, err := s.moderationSvc.BulkProcess(c.Request.Context(), moderatorID, &bulkDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *ModerationHandler) ListActionLogs(c *gin.Context) {
	logs, err := s.moderationSvc.ListActionLogs(c.Request.Context(), c.Param("item_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, logs)
}

// RecentChanges 最近变更动态流，默认回看 30 天
func (s *ModerationHandler) RecentChanges(c *gin.Context) {
	var queryDTO dto.RecentChangesQueryDTO
	if err := c.ShouldBindQuery(&queryDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&queryDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	list, err := s.moderationSvc.ListRecentChanges(c.Request.Context(), &queryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *ModerationHandler) ListTrash(c *gin.Context) {
	records, err := s.moderationSvc.ListTrash(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, records)
}

// Restore 在保留窗口内恢复被软删除的内容
func (s *ModerationHandler) Restore(c *gin.Context) {
	var restoreDTO dto.RestoreDTO
	if err := c.ShouldBind(&restoreDTO); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.moderationSvc.Restore(c.Request.Context(), &restoreDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
