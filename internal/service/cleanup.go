package service

import (
	"context"
	"time"

	"github.com/aurora-share/server/internal/repository"
	"github.com/aurora-share/server/pkg/logger"
)

// CleanupService 清理服务：清除早已过期的密码重置码
type CleanupService struct {
	listeners repository.ListenerRepository
	log       logger.Logger
}

// NewCleanupService 创建清理服务
func NewCleanupService(listeners repository.ListenerRepository, log logger.Logger) *CleanupService {
	return &CleanupService{
		listeners: listeners,
		log:       log,
	}
}

// CleanExpiredResetCodes 清除在当前时刻之前过期的重置码，返回清除数量
func (s *CleanupService) CleanExpiredResetCodes(ctx context.Context) (int64, error) {
	start := time.Now()

	n, err := s.listeners.DeleteExpiredResetCodes(ctx, start)
	if err != nil {
		s.log.Error("reset code cleanup failed", logger.Error(err))
		return 0, err
	}

	s.log.Info("reset code cleanup completed",
		logger.Int64("cleared", n),
		logger.Duration("elapsed", time.Since(start)))
	return n, nil
}
