// Package app 提供 PersonaCore 应用的装配和生命周期
package app

import (
	"time"

	"github.com/KodaTao/PersonaCore/pkg/llm"
)

// Config 应用配置
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	LLM        llm.Config       `mapstructure:"llm"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	Generation GenerationConfig `mapstructure:"generation"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// Host 监听地址
	Host string `mapstructure:"host"`

	// Port 监听端口
	Port int `mapstructure:"port"`

	// Mode 运行模式：debug, release, test
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Path 数据库文件路径
	Path string `mapstructure:"path"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别：debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format 日志格式：text, json
	Format string `mapstructure:"format"`

	// Output 输出目标：stdout, file
	Output string `mapstructure:"output"`

	// FilePath 日志文件路径（当 Output 为 file 时生效）
	FilePath string `mapstructure:"file_path"`
}

// GenerationConfig 生成编排配置
type GenerationConfig struct {
	// RetryBudget 默认重试预算
	RetryBudget int `mapstructure:"retry_budget"`

	// PauseMs 每次请求前的固定暂停（毫秒），0 表示不暂停
	PauseMs int `mapstructure:"pause_ms"`

	// TailMergeWidth 日程归一化超长截断时的尾部覆写宽度（分钟）
	TailMergeWidth int `mapstructure:"tail_merge_width"`
}

// CacheConfig 向量缓存配置
type CacheConfig struct {
	// Enabled 是否启用向量缓存
	Enabled bool `mapstructure:"enabled"`

	// TTL 缓存保留时长
	TTL time.Duration `mapstructure:"ttl"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "debug",
		},
		LLM: llm.Config{
			Provider:       "openai",
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-5-nano-2025-08-07",
			EmbeddingModel: "text-embedding-ada-002",
			Timeout:        60,
		},
		Database: DatabaseConfig{
			Path: "~/.personacore/data.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
		Generation: GenerationConfig{
			RetryBudget:    5,
			PauseMs:        100,
			TailMergeWidth: 5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * 24 * time.Hour,
		},
	}
}

// Option 配置选项函数
type Option func(*Config)

// WithServerPort 设置服务器端口
func WithServerPort(port int) Option {
	return func(c *Config) {
		c.Server.Port = port
	}
}

// WithServerMode 设置运行模式
func WithServerMode(mode string) Option {
	return func(c *Config) {
		c.Server.Mode = mode
	}
}

// WithLLMConfig 设置 LLM 配置
func WithLLMConfig(cfg llm.Config) Option {
	return func(c *Config) {
		c.LLM = cfg
	}
}

// WithLogLevel 设置日志级别
func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.Log.Level = level
	}
}

// WithDatabasePath 设置数据库路径
func WithDatabasePath(path string) Option {
	return func(c *Config) {
		c.Database.Path = path
	}
}

// WithGeneration 设置生成编排配置
func WithGeneration(g GenerationConfig) Option {
	return func(c *Config) {
		c.Generation = g
	}
}

// WithCache 设置向量缓存配置
func WithCache(cache CacheConfig) Option {
	return func(c *Config) {
		c.Cache = cache
	}
}
