package wire

import (
	"Palisade/internal/api"
	"Palisade/internal/api/config"
	"Palisade/internal/api/handler"
	"Palisade/internal/job"
	"Palisade/internal/pkg/cron"
	"Palisade/internal/pkg/kafka"
	"Palisade/internal/repository"
	"Palisade/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	queueRepo := repository.NewQueueRepository(db)
	actionLogRepo := repository.NewActionLogRepository(db)
	softDeleteRepo := repository.NewSoftDeleteRepository(db)
	expertRepo := repository.NewExpertRepository(db)
	wikiRepo := repository.NewWikiRepository(db)
	coiFlagRepo := repository.NewCOIFlagRepository(db)
	contentRepo := repository.NewContentRepository(db)
	editRequestRepo := repository.NewEditRequestRepository(db)
	userRepo := repository.NewUserRepository(db)
	recentChangeRepo := repository.NewRecentChangeRepository(db)

	locker := service.NewRedisLocker()

	queueService := service.NewQueueService(queueRepo, contentRepo, locker, cfg.Moderation)
	moderationService := service.NewModerationService(queueRepo, actionLogRepo, softDeleteRepo, recentChangeRepo, cfg.Moderation)
	expertService := service.NewExpertService(expertRepo, userRepo, cfg.Moderation)
	wikiService := service.NewWikiService(wikiRepo, recentChangeRepo, expertService)
	editRequestService := service.NewEditRequestService(editRequestRepo, contentRepo, recentChangeRepo, cfg.Moderation)
	coiService := service.NewCOIService(coiFlagRepo, contentRepo)

	handlers := &api.HandlersGroup{
		QueueHandler:       handler.NewQueueHandler(queueService),
		ModerationHandler:  handler.NewModerationHandler(moderationService),
		ExpertHandler:      handler.NewExpertHandler(expertService),
		WikiHandler:        handler.NewWikiHandler(wikiService),
		EditRequestHandler: handler.NewEditRequestHandler(editRequestService),
		COIHandler:         handler.NewCOIHandler(coiService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, queueService)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewSoftDeleteCleanupJob(moderationService),
		job.NewQueueMetricsJob(queueService),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
