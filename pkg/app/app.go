// Package app 提供 PersonaCore 应用的装配和生命周期
package app

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/KodaTao/PersonaCore/pkg/generate"
	"github.com/KodaTao/PersonaCore/pkg/llm"
	"github.com/KodaTao/PersonaCore/pkg/llm/openai"
	"github.com/KodaTao/PersonaCore/pkg/observability"
	"github.com/KodaTao/PersonaCore/pkg/schedule"
	"github.com/KodaTao/PersonaCore/pkg/schema"
	"github.com/KodaTao/PersonaCore/pkg/storage"
)

// App PersonaCore 应用实例
// 连接对象和配置由这里显式构造并传入各组件，核心包不持有隐式全局状态
type App struct {
	config       *Config
	provider     llm.Provider
	orchestrator *generate.Orchestrator
	db           *gorm.DB
	janitor      *storage.Janitor
}

// New 创建新的 App 实例
func New(opts ...Option) *App {
	// 应用默认配置
	config := DefaultConfig()

	// 应用选项
	for _, opt := range opts {
		opt(config)
	}

	return &App{config: config}
}

// NewWithProvider 以现成的 Provider 装配应用
// 跳过日志、数据库和 Provider 的构造，供嵌入式使用和测试
func NewWithProvider(p llm.Provider, opts ...Option) *App {
	a := New(opts...)
	a.provider = p
	a.orchestrator = generate.New(p,
		generate.WithPause(time.Duration(a.config.Generation.PauseMs)*time.Millisecond),
	)
	return a
}

// Initialize 初始化应用
// 包括：日志、数据库、LLM Provider、生成编排器
func (a *App) Initialize() error {
	// 1. 初始化日志
	if err := observability.InitLogger(observability.LogConfig{
		Level:    a.config.Log.Level,
		Format:   a.config.Log.Format,
		Output:   a.config.Log.Output,
		FilePath: a.config.Log.FilePath,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	observability.Info("Initializing PersonaCore",
		"server_port", a.config.Server.Port,
		"llm_provider", a.config.LLM.Provider,
		"llm_model", a.config.LLM.Model,
		"functions", schema.Default().Count(),
	)

	// 2. 初始化 LLM Provider
	// 解析 API Key（支持环境变量引用）
	apiKey := llm.ResolveAPIKey(a.config.LLM.APIKey)
	if apiKey == "" {
		return fmt.Errorf("LLM API key is required")
	}

	llmConfig := a.config.LLM
	llmConfig.APIKey = apiKey

	switch a.config.LLM.Provider {
	case "openai", "azure", "custom":
		a.provider = openai.NewProviderFromLLMConfig(llmConfig)
	default:
		return fmt.Errorf("unsupported LLM provider: %s", a.config.LLM.Provider)
	}

	observability.Info("LLM Provider initialized",
		"provider", a.provider.Name(),
		"model", a.config.LLM.Model,
		"api_key", llm.MaskAPIKey(apiKey),
	)

	// 3. 初始化向量缓存（可选）
	if a.config.Cache.Enabled {
		db, err := storage.Open(storage.Config{Path: a.config.Database.Path})
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		a.db = db

		repo := storage.NewEmbeddingRepository(db)
		if err := repo.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate embedding cache: %w", err)
		}

		a.provider = llm.NewCachedProvider(a.provider, repo)

		a.janitor = storage.NewJanitor(repo, a.config.Cache.TTL, slog.Default())
		if err := a.janitor.Start(); err != nil {
			return fmt.Errorf("failed to start cache janitor: %w", err)
		}

		observability.Info("Embedding cache enabled", "ttl", a.config.Cache.TTL.String())
	}

	// 4. 初始化生成编排器
	a.orchestrator = generate.New(a.provider,
		generate.WithPause(time.Duration(a.config.Generation.PauseMs)*time.Millisecond),
	)

	observability.Info("PersonaCore initialized")
	return nil
}

// Shutdown 优雅关闭
func (a *App) Shutdown() {
	observability.Info("Shutting down PersonaCore")

	if a.janitor != nil {
		a.janitor.Stop()
	}
	if a.db != nil {
		if err := storage.Close(a.db); err != nil {
			observability.Error("failed to close database", "error", err)
		}
	}
}

// Config 返回应用配置
func (a *App) Config() *Config {
	return a.config
}

// Provider 返回 LLM Provider
func (a *App) Provider() llm.Provider {
	return a.provider
}

// Orchestrator 返回生成编排器
func (a *App) Orchestrator() *generate.Orchestrator {
	return a.orchestrator
}

// RetryBudget 返回默认重试预算
func (a *App) RetryBudget() int {
	if a.config.Generation.RetryBudget > 0 {
		return a.config.Generation.RetryBudget
	}
	return generate.DefaultRetryBudget
}

// TailMergeWidth 返回日程归一化的尾部覆写宽度
func (a *App) TailMergeWidth() int {
	if a.config.Generation.TailMergeWidth > 0 {
		return a.config.Generation.TailMergeWidth
	}
	return schedule.DefaultTailMergeWidth
}
