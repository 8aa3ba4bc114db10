// Package llm 提供生成服务适配层接口和实现
package llm

import (
	"context"

	"github.com/KodaTao/PersonaCore/pkg/observability"
)

// EmbeddingStore 向量缓存存储接口
type EmbeddingStore interface {
	Get(text string) ([]float64, bool, error)
	Put(text string, vector []float64) error
}

// CachedProvider 带向量缓存的 Provider 装饰器
// 只拦截 Embed，Generate 和 Name 透传给底层实现。
// 缓存故障按未命中处理，不影响请求本身
type CachedProvider struct {
	Provider
	store EmbeddingStore
}

// NewCachedProvider 创建带缓存的 Provider
func NewCachedProvider(p Provider, store EmbeddingStore) *CachedProvider {
	return &CachedProvider{Provider: p, store: store}
}

// Embed 获取文本向量，优先命中缓存
func (c *CachedProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if vector, ok, err := c.store.Get(text); err == nil && ok {
		return vector, nil
	} else if err != nil {
		observability.Warn("embedding cache read failed", "error", err)
	}

	vector, err := c.Provider.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.store.Put(text, vector); err != nil {
		observability.Warn("embedding cache write failed", "error", err)
	}
	return vector, nil
}
