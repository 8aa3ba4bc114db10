// Package llm 提供生成服务适配层接口和实现
package llm

import (
	"os"
	"strings"
)

// Config LLM 通用配置
type Config struct {
	// Provider 提供商类型：openai, azure, custom
	Provider string `mapstructure:"provider"`

	// APIKey API 密钥
	APIKey string `mapstructure:"api_key"`

	// BaseURL API 基础 URL（用于自定义 endpoint）
	BaseURL string `mapstructure:"base_url"`

	// Model 生成模型名称
	Model string `mapstructure:"model"`

	// EmbeddingModel 向量模型名称
	EmbeddingModel string `mapstructure:"embedding_model"`

	// Timeout 请求超时时间（秒）
	Timeout int `mapstructure:"timeout"`

	// MaxOutputTokens 默认最大输出 token 数，0 表示不限制
	MaxOutputTokens int `mapstructure:"max_output_tokens"`
}

// LoadConfigFromEnv 从环境变量加载配置
func LoadConfigFromEnv() Config {
	cfg := Config{
		Provider:        getEnv("PC_LLM_PROVIDER", "openai"),
		APIKey:          getEnv("PC_LLM_API_KEY", os.Getenv("OPENAI_API_KEY")),
		BaseURL:         getEnv("PC_LLM_BASE_URL", "https://api.openai.com/v1"),
		Model:           getEnv("PC_LLM_MODEL", "gpt-5-nano-2025-08-07"),
		EmbeddingModel:  getEnv("PC_LLM_EMBEDDING_MODEL", "text-embedding-ada-002"),
		Timeout:         getEnvInt("PC_LLM_TIMEOUT", 60),
		MaxOutputTokens: getEnvInt("PC_LLM_MAX_OUTPUT_TOKENS", 0),
	}
	return cfg
}

// ResolveAPIKey 解析 API Key（支持环境变量引用）
// 如果值以 ${} 包裹，则从环境变量读取
func ResolveAPIKey(key string) string {
	if strings.HasPrefix(key, "${") && strings.HasSuffix(key, "}") {
		envName := key[2 : len(key)-1]
		return os.Getenv(envName)
	}
	return key
}

// MaskAPIKey 脱敏 API Key，用于日志输出
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// getEnv 获取环境变量，支持默认值
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt 获取整数环境变量
func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	// 简单解析
	var result int
	for _, c := range val {
		if c >= '0' && c <= '9' {
			result = result*10 + int(c-'0')
		}
	}
	if result == 0 {
		return defaultVal
	}
	return result
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Model == "" {
		return ErrMissingModel
	}
	return nil
}

// 配置相关错误
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

var (
	ErrMissingAPIKey = &ConfigError{Message: "API key is required"}
	ErrMissingModel  = &ConfigError{Message: "model is required"}
)
