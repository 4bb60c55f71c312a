package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aurora-share/server/internal/service"
	"github.com/aurora-share/server/pkg/logger"
)

// CronManager 定时任务管理器
type CronManager struct {
	cron     *cron.Cron
	cleanup  *service.CleanupService
	schedule string
	log      logger.Logger
}

// NewCronManager 创建定时任务管理器
// schedule 为标准五段 cron 表达式（分 时 日 月 周）
func NewCronManager(cleanup *service.CleanupService, schedule string, log logger.Logger) *CronManager {
	return &CronManager{
		cron:     cron.New(cron.WithLocation(time.Local)),
		cleanup:  cleanup,
		schedule: schedule,
		log:      log,
	}
}

// Start 启动定时清理任务
func (m *CronManager) Start() error {
	_, err := m.cron.AddFunc(m.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if _, err := m.cleanup.CleanExpiredResetCodes(ctx); err != nil {
			m.log.Error("scheduled cleanup failed", logger.Error(err))
		}
	})
	if err != nil {
		return err
	}

	m.cron.Start()
	m.log.Info("cron manager started", logger.String("schedule", m.schedule))
	return nil
}

// Stop 停止定时任务并等待进行中的任务结束
func (m *CronManager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("cron manager stopped")
}

// RunCleanupNow 立即执行一次清理（手动触发）
func (m *CronManager) RunCleanupNow(ctx context.Context) (int64, error) {
	return m.cleanup.CleanExpiredResetCodes(ctx)
}
