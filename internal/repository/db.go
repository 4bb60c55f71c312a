package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurora-share/server/internal/persistence"
	"github.com/aurora-share/server/pkg/config"
)

// DB 仓储层需要的连接池能力
// *pgxpool.Pool 满足该接口；每条语句独立从池中取连接，语句结束即归还，
// 重叠调用绝不共享已打开的连接
type DB interface {
	persistence.Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// NewPool 创建优化的数据库连接池
func NewPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// ClosePool 关闭连接池
func ClosePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

// Transaction 事务执行器接口
type Transaction interface {
	ExecTx(ctx context.Context, fn func(pgx.Tx) error) error
}

// txExecutor 事务执行器实现
type txExecutor struct {
	db DB
}

// NewTransaction 创建事务执行器
func NewTransaction(db DB) Transaction {
	return &txExecutor{db: db}
}

// ExecTx 在单个事务中执行函数，出错时回滚
func (e *txExecutor) ExecTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := e.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
