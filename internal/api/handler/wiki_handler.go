package handler

import (
	"Palisade/internal/api/dto"
	"Palisade/internal/pkg/response"
	"Palisade/internal/pkg/util"
	"Palisade/internal/service"

	"github.com/gin-gonic/gin"
)

type WikiHandler struct {
	wikiSvc service.WikiService
}

func NewWikiHandler(wikiSvc service.WikiService) *WikiHandler {
	return &WikiHandler{
		wikiSvc: wikiSvc,
	}
}

func (s *WikiHandler) CreateArticle(c *gin.Context) {
	var articleDTO dto.CreateArticleDTO
	if err := c.ShouldBind(&articleDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&articleDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	article, err := s.wikiSvc.CreateArticle(c.Request.Context(), c.GetString("user_id"), &articleDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, article)
}

func (s *WikiHandler) GetArticle(c *gin.Context) {
	article, err := s.wikiSvc.GetArticle(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, article)
}

func (s *WikiHandler) CreateRevision(c *gin.Context) {
	var revisionDTO dto.CreateRevisionDTO
	if err := c.ShouldBind(&revisionDTO); err != nil {
		response.Error(c, err)
		return
	}

	revision, err := s.wikiSvc.CreateDraftRevision(c.Request.Context(), c.Param("article_id"), c.GetString("user_id"), &revisionDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, revision)
}

func (s *WikiHandler) ListRevisions(c *gin.Context) {
	revisions, err := s.wikiSvc.ListRevisions(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, revisions)
}

// MarkStable draft 转 stable，health 分类受专家认证门禁
func (s *WikiHandler) MarkStable(c *gin.Context) {
	revision, err := s.wikiSvc.MarkStable(c.Request.Context(), c.Param("article_id"), c.Param("revision_id"), c.GetString("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, revision)
}

func (s *WikiHandler) Rollback(c *gin.Context) {
	var rollbackDTO dto.RollbackDTO
	if err := c.ShouldBind(&rollbackDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&rollbackDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	revision, err := s.wikiSvc.Rollback(c.Request.Context(), c.Param("article_id"), c.GetString("user_id"), &rollbackDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, revision)
}

func (s *WikiHandler) ListRollbackHistory(c *gin.Context) {
	entries, err := s.wikiSvc.ListRollbackHistory(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}
