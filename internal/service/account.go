package service

import (
	"context"
	"time"

	"github.com/aurora-share/server/internal/repository"
	apperrors "github.com/aurora-share/server/pkg/errors"
	"github.com/aurora-share/server/pkg/logger"
)

// AccountService 账户服务：密码重置流程
type AccountService struct {
	listeners repository.ListenerRepository
	resetTTL  time.Duration
	log       logger.Logger
}

// NewAccountService 创建账户服务
// resetTTL 来自 cleanup.reset_code_ttl 配置项
func NewAccountService(listeners repository.ListenerRepository, resetTTL time.Duration, log logger.Logger) *AccountService {
	return &AccountService{
		listeners: listeners,
		resetTTL:  resetTTL,
		log:       log,
	}
}

// RequestPasswordReset 为用户签发带过期时间的密码重置码
func (s *AccountService) RequestPasswordReset(ctx context.Context, username string) (string, error) {
	l, err := s.listeners.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	code, err := s.listeners.IssueResetCode(ctx, l.UserID, s.resetTTL)
	if err != nil {
		return "", err
	}

	s.log.Info("password reset code issued",
		logger.Int("user_id", l.UserID),
		logger.Duration("ttl", s.resetTTL))
	return code, nil
}

// ResetPassword 校验重置码并设置新密码，重置码用后即废
// 过期或不匹配的重置码一律按校验失败处理
func (s *AccountService) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	l, err := s.listeners.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if !l.HasValidResetCode(time.Now()) || *l.ResetCode != code {
		return apperrors.Validation("reset code is invalid or expired")
	}

	if err := s.listeners.SetPassword(ctx, l.UserID, newPassword); err != nil {
		return err
	}
	if err := s.listeners.ClearResetCode(ctx, l.UserID); err != nil {
		return err
	}

	s.log.Info("password reset completed", logger.Int("user_id", l.UserID))
	return nil
}
