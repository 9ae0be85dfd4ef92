package api

import (
	"Palisade/internal/api/middleware"
	"Palisade/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		moderationGroup := apiGroup.Group("/moderation")
		moderationGroup.Use(middleware.AuthMiddleware())
		{
			// 任何登录用户可举报
			moderationGroup.POST("/reports", group.QueueHandler.Report)

			// 队列读写需要审核角色
			queueGroup := moderationGroup.Group("/queue")
			queueGroup.Use(middleware.CheckRoles("MODERATOR", "ADMIN"))
			{
				queueGroup.GET("", group.QueueHandler.Query)
				queueGroup.GET("/counts", group.QueueHandler.Counts)
				queueGroup.GET("/:item_id", group.QueueHandler.GetItem)
				queueGroup.PUT("/:item_id/assign", group.QueueHandler.Assign)
				queueGroup.PUT("/:item_id/escalate", group.QueueHandler.Escalate)

				queueGroup.POST("/:item_id/process", group.ModerationHandler.Process)
				queueGroup.POST("/bulk", group.ModerationHandler.BulkProcess)
				queueGroup.GET("/:item_id/logs", group.ModerationHandler.ListActionLogs)
			}

			moderationGroup.GET("/recent-changes",
				middleware.CheckRoles("MODERATOR", "ADMIN"), group.ModerationHandler.RecentChanges)

			trashGroup := moderationGroup.Group("/trash")
			trashGroup.Use(middleware.CheckRoles("MODERATOR", "ADMIN"))
			{
				trashGroup.GET("", group.ModerationHandler.ListTrash)
				trashGroup.POST("/restore", group.ModerationHandler.Restore)
			}
		}

		expertGroup := apiGroup.Group("/experts")
		expertGroup.Use(middleware.AuthMiddleware())
		{
			expertGroup.POST("/apply", group.ExpertHandler.Apply)
			expertGroup.GET("/me", group.ExpertHandler.GetMyProfile)
			expertGroup.GET("/:user_id", group.ExpertHandler.GetProfile)

			adminGroup := expertGroup.Group("")
			adminGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				adminGroup.GET("", group.ExpertHandler.ListByStatus)
				adminGroup.PUT("/:user_id/verify", group.ExpertHandler.Verify)
				adminGroup.PUT("/:user_id/revoke", group.ExpertHandler.Revoke)
				adminGroup.PUT("/:user_id/extend", group.ExpertHandler.Extend)
			}
		}

		wikiGroup := apiGroup.Group("/wiki")
		{
			wikiGroup.GET("/articles/:article_id", group.WikiHandler.GetArticle)
			wikiGroup.GET("/articles/:article_id/revisions", group.WikiHandler.ListRevisions)

			authGroup := wikiGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/articles", group.WikiHandler.CreateArticle)
				authGroup.POST("/articles/:article_id/revisions", group.WikiHandler.CreateRevision)
				authGroup.PUT("/articles/:article_id/revisions/:revision_id/stable", group.WikiHandler.MarkStable)
			}

			modGroup := authGroup.Group("")
			modGroup.Use(middleware.CheckRoles("MODERATOR", "ADMIN"))
			{
				modGroup.POST("/articles/:article_id/rollback", group.WikiHandler.Rollback)
				modGroup.GET("/articles/:article_id/rollbacks", group.WikiHandler.ListRollbackHistory)
			}
		}

		editGroup := apiGroup.Group("/edit-requests")
		editGroup.Use(middleware.AuthMiddleware())
		{
			editGroup.GET("/rate-limit", group.EditRequestHandler.CheckRateLimit)
			editGroup.POST("", group.EditRequestHandler.Create)
			editGroup.GET("/mine", group.EditRequestHandler.ListMine)
			editGroup.GET("/:request_id", group.EditRequestHandler.GetByID)

			modGroup := editGroup.Group("")
			modGroup.Use(middleware.CheckRoles("MODERATOR", "ADMIN"))
			{
				modGroup.GET("", group.EditRequestHandler.ListByStatus)
				modGroup.PUT("/:request_id/approve", group.EditRequestHandler.Approve)
				modGroup.PUT("/:request_id/reject", group.EditRequestHandler.Reject)
			}
		}

		coiGroup := apiGroup.Group("/coi-flags")
		coiGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles("MODERATOR", "ADMIN"))
		{
			coiGroup.POST("", group.COIHandler.AddFlag)
			coiGroup.PUT("/:flag_id", group.COIHandler.UpdateFlag)
			coiGroup.GET("/active", group.COIHandler.ListActive)
			coiGroup.GET("/severity/:severity", group.COIHandler.ListBySeverity)
			coiGroup.GET("/content/:content_type/:content_id", group.COIHandler.ListByContent)
		}
	}

	return r
}
