// Package storage 提供数据存储功能
package storage

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultCacheTTL 向量缓存的默认保留时长
const DefaultCacheTTL = 30 * 24 * time.Hour

// Janitor 定期清理过期缓存记录
type Janitor struct {
	repo   *EmbeddingRepository
	ttl    time.Duration
	logger *slog.Logger
	cron   *cron.Cron
}

// NewJanitor 创建清理任务
func NewJanitor(repo *EmbeddingRepository, ttl time.Duration, logger *slog.Logger) *Janitor {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Janitor{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start 启动定时清理
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc("@hourly", j.purge); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("embedding cache janitor started", "ttl", j.ttl.String())
	return nil
}

// Stop 停止定时清理
func (j *Janitor) Stop() {
	j.cron.Stop()
}

// purge 执行一次清理
func (j *Janitor) purge() {
	removed, err := j.repo.PurgeOlderThan(j.ttl)
	if err != nil {
		j.logger.Error("embedding cache purge failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.Info("embedding cache purged", "removed", removed)
	}
}
