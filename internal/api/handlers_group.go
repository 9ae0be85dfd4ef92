package api

import "Palisade/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	QueueHandler       *handler.QueueHandler
	ModerationHandler  *handler.ModerationHandler
	ExpertHandler      *handler.ExpertHandler
	WikiHandler        *handler.WikiHandler
	EditRequestHandler *handler.EditRequestHandler
	COIHandler         *handler.COIHandler
}
