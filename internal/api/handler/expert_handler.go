package handler

import (
	"Palisade/internal/api/dto"
	"Palisade/internal/pkg/response"
	"Palisade/internal/pkg/util"
	"Palisade/internal/service"

	"github.com/gin-gonic/gin"
)

type ExpertHandler struct {
	expertSvc service.ExpertService
}

func NewExpertHandler(expertSvc service.ExpertService) *ExpertHandler {
	return &ExpertHandler{
		expertSvc: expertSvc,
	}
}

// Apply 当前用户提交专家认证申请
func (s *ExpertHandler) Apply(c *gin.Context) {
	var applyDTO dto.ExpertApplyDTO
	if err := c.ShouldBind(&applyDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&applyDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	userID := c.GetString("user_id")
	profile, err := s.expertSvc.Apply(c.Request.Context(), userID, &applyDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *ExpertHandler) GetMyProfile(c *gin.Context) {
	profile, err := s.expertSvc.GetProfile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *ExpertHandler) GetProfile(c *gin.Context) {
	profile, err := s.expertSvc.GetProfile(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *ExpertHandler) ListByStatus(c *gin.Context) {
	profiles, err := s.expertSvc.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profiles)
}

func (s *ExpertHandler) Verify(c *gin.Context) {
	reviewerID := c.GetString("user_id")
	profile, err := s.expertSvc.Verify(c.Request.Context(), c.Param("user_id"), reviewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *ExpertHandler) Revoke(c *gin.Context) {
	reviewerID := c.GetString("user_id")
	profile, err := s.expertSvc.Revoke(c.Request.Context(), c.Param("user_id"), reviewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *ExpertHandler) Extend(c *gin.Context) {
	var extendDTO dto.ExtendDTO
	if err := c.ShouldBind(&extendDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&extendDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	profile, err := s.expertSvc.Extend(c.Request.Context(), c.Param("user_id"), extendDTO.Months)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}
