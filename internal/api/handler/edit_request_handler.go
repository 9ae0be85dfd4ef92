package handler

import (
	"Palisade/internal/api/dto"
	"Palisade/internal/pkg/response"
	"Palisade/internal/pkg/util"
	"Palisade/internal/service"

	"github.com/gin-gonic/gin"
)

type EditRequestHandler struct {
	editRequestSvc service.EditRequestService
}

func NewEditRequestHandler(editRequestSvc service.EditRequestService) *EditRequestHandler {
	return &EditRequestHandler{
		editRequestSvc: editRequestSvc,
	}
}

// CheckRateLimit 查询当前用户是否还能提交编辑请求
func (s *EditRequestHandler) CheckRateLimit(c *gin.Context) {
	result, err := s.editRequestSvc.CheckRateLimit(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *EditRequestHandler) Create(c *gin.Context) {
	var createDTO dto.CreateEditRequestDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	request, err := s.editRequestSvc.Create(c.Request.Context(), c.GetString("user_id"), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, request)
}

func (s *EditRequestHandler) GetByID(c *gin.Context) {
	request, err := s.editRequestSvc.GetByID(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, request)
}

func (s *EditRequestHandler) Approve(c *gin.Context) {
	var reviewDTO dto.ReviewDTO
	if err := c.ShouldBind(&reviewDTO); err != nil {
		response.Error(c, err)
		return
	}

	request, err := s.editRequestSvc.Approve(c.Request.Context(), c.Param("request_id"), c.GetString("user_id"), reviewDTO.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, request)
}

func (s *EditRequestHandler) Reject(c *gin.Context) {
	var reviewDTO dto.ReviewDTO
	if err := c.ShouldBind(&reviewDTO); err != nil {
		response.Error(c, err)
		return
	}

	request, err := s.editRequestSvc.Reject(c.Request.Context(), c.Param("request_id"), c.GetString("user_id"), reviewDTO.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, request)
}

func (s *EditRequestHandler) ListByStatus(c *gin.Context) {
	requests, err := s.editRequestSvc.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, requests)
}

func (s *EditRequestHandler) ListMine(c *gin.Context) {
	requests, err := s.editRequestSvc.ListByAuthor(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, requests)
}
