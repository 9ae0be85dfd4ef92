package handler

import (
	"Palisade/internal/api/dto"
	"Palisade/internal/pkg/response"
	"Palisade/internal/pkg/util"
	"Palisade/internal/service"

	"github.com/gin-gonic/gin"
)

type COIHandler struct {
	coiSvc service.COIService
}

func NewCOIHandler(coiSvc service.COIService) *COIHandler {
	return &COIHandler{
		coiSvc: coiSvc,
	}
}

func (s *COIHandler) AddFlag(c *gin.Context) {
	var addDTO dto.AddFlagDTO
	if err := c.ShouldBind(&addDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&addDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	flag, err := s.coiSvc.AddFlag(c.Request.Context(), c.GetString("user_id"), &addDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, flag)
}

func (s *COIHandler) UpdateFlag(c *gin.Context) {
	var updateDTO dto.UpdateFlagDTO
	if err := c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&updateDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	flag, err := s.coiSvc.UpdateFlag(c.Request.Context(), c.Param("flag_id"), c.GetString("user_id"), &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, flag)
}

func (s *COIHandler) ListActive(c *gin.Context) {
	flags, err := s.coiSvc.GetActiveFlags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, flags)
}

func (s *COIHandler) ListBySeverity(c *gin.Context) {
	flags, err := s.coiSvc.GetFlagsBySeverity(c.Request.Context(), c.Param("severity"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, flags)
}

func (s *COIHandler) ListByContent(c *gin.Context) {
	flags, err := s.coiSvc.ListByContent(c.Request.Context(), c.Param("content_type"), c.Param("content_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, flags)
}
