package cron

import (
	"Palisade/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine               *cron.Cron
	softDeleteCleanupJob *job.SoftDeleteCleanupJob
	queueMetricsJob      *job.QueueMetricsJob
}

func NewCronManager(softDeleteCleanupJob *job.SoftDeleteCleanupJob, queueMetricsJob *job.QueueMetricsJob) *Manager {
	return &Manager{
		engine:               cron.New(cron.WithSeconds()),
		softDeleteCleanupJob: softDeleteCleanupJob,
		queueMetricsJob:      queueMetricsJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@hourly", s.softDeleteCleanupJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.queueMetricsJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("cron engine stopped")
	s.engine.Stop()
}
