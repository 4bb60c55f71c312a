package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// HealthChecker performs health checks on a database connection.
type HealthChecker struct {
	db *sql.DB
}

// NewHealthChecker creates a new health checker.
func NewHealthChecker(db *sql.DB) *HealthChecker {
	return &HealthChecker{db: db}
}

// HealthStatus represents the health status of the database.
type HealthStatus struct {
	Healthy      bool            `json:"healthy"`
	ResponseTime time.Duration   `json:"response_time_ms"`
	Stats        ConnectionStats `json:"stats"`
	Error        string          `json:"error,omitempty"`
}

// Check pings the database and runs a trivial query.
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	startTime := time.Now()

	status := HealthStatus{Healthy: true}

	if err := h.db.PingContext(ctx); err != nil {
		status.Healthy = false
		status.Error = fmt.Sprintf("ping failed: %v", err)
		status.ResponseTime = time.Since(startTime)
		return status
	}

	var result int
	if err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		status.Healthy = false
		status.Error = fmt.Sprintf("query failed: %v", err)
		status.ResponseTime = time.Since(startTime)
		return status
	}

	if result != 1 {
		status.Healthy = false
		status.Error = "unexpected query result"
	}

	status.ResponseTime = time.Since(startTime)
	status.Stats = Stats(h.db)
	return status
}
