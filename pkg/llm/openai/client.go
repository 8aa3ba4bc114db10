// Package openai 提供 OpenAI Responses API 客户端实现
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KodaTao/PersonaCore/pkg/llm"
	"github.com/KodaTao/PersonaCore/pkg/observability"
	"github.com/KodaTao/PersonaCore/pkg/schema"
)

// Provider OpenAI 提供商实现
type Provider struct {
	config     *Config
	httpClient *http.Client
}

// Config OpenAI 配置
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	EmbeddingModel  string
	Timeout         time.Duration
	MaxOutputTokens int
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://api.openai.com/v1",
		Model:          "gpt-5-nano-2025-08-07",
		EmbeddingModel: "text-embedding-ada-002",
		Timeout:        60 * time.Second,
	}
}

// NewProvider 创建 OpenAI Provider
func NewProvider(cfg *Config) *Provider {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-5-nano-2025-08-07"
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "text-embedding-ada-002"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Provider{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// NewProviderFromLLMConfig 从通用 LLM 配置创建 Provider
func NewProviderFromLLMConfig(cfg llm.Config) *Provider {
	return NewProvider(&Config{
		APIKey:          cfg.APIKey,
		BaseURL:         cfg.BaseURL,
		Model:           cfg.Model,
		EmbeddingModel:  cfg.EmbeddingModel,
		Timeout:         time.Duration(cfg.Timeout) * time.Second,
		MaxOutputTokens: cfg.MaxOutputTokens,
	})
}

// Name 返回提供商名称
func (p *Provider) Name() string {
	return "openai"
}

// Generate 发送单次生成请求
func (p *Provider) Generate(ctx context.Context, prompt string, opts *llm.Options) (string, error) {
	start := time.Now()
	opts = opts.Normalize()
	observability.LLMRequestLog(ctx, p.Name(), p.config.Model, opts.ResponseSchema != nil)

	// 构建请求
	reqBody := responsesRequest{
		Model:     p.config.Model,
		Input:     prompt,
		Reasoning: &reasoningConfig{Effort: string(opts.Effort)},
		Text:      &textConfig{Verbosity: string(opts.Verbosity)},
	}

	// 结构化输出：提交前收紧 Schema，所有层级禁止额外字段
	if opts.ResponseSchema != nil {
		reqBody.Text.Format = &formatConfig{
			Type:   "json_schema",
			Name:   opts.SchemaName,
			Schema: opts.ResponseSchema.Strict(),
			Strict: true,
		}
	}

	// token 上限：请求级优先，其次配置级；下限由 Normalize 钳制，
	// 配置级的值在这里钳制
	maxTokens := opts.MaxOutputTokens
	if maxTokens == 0 && p.config.MaxOutputTokens > 0 {
		maxTokens = p.config.MaxOutputTokens
		if maxTokens < llm.MinOutputTokens {
			maxTokens = llm.MinOutputTokens
		}
	}
	if maxTokens > 0 {
		reqBody.MaxOutputTokens = maxTokens
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	// 创建 HTTP 请求
	req, err := http.NewRequestWithContext(ctx, "POST", p.config.BaseURL+"/responses", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	// 发送请求
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// 读取响应
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	// 检查状态码
	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		json.Unmarshal(respBody, &errResp)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, errResp.Error.Message)
	}

	// 解析响应
	output, err := extractOutputText(respBody)
	if err != nil {
		return "", err
	}

	observability.LLMResponseLog(ctx, p.Name(), time.Since(start).Milliseconds(), len(output))
	return output, nil
}

// extractOutputText 从 Responses API 信封中提取文本
// 优先使用便捷字段 output_text，
// 否则拼接 output[i].content[j].text 中的文本片段
func extractOutputText(raw []byte) (string, error) {
	var env responsesEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if s := strings.TrimSpace(env.OutputText); s != "" {
		return s, nil
	}

	var b strings.Builder
	for _, o := range env.Output {
		for _, c := range o.Content {
			if strings.TrimSpace(c.Text) == "" {
				continue
			}
			// 实践中 output_text 和 text 两种类型都会出现
			if c.Type == "output_text" || c.Type == "text" || c.Type == "" {
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(c.Text)
			}
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no output text in response")
	}
	return b.String(), nil
}

// API 请求/响应结构

type responsesRequest struct {
	Model           string           `json:"model"`
	Input           string           `json:"input"`
	Reasoning       *reasoningConfig `json:"reasoning,omitempty"`
	Text            *textConfig      `json:"text,omitempty"`
	MaxOutputTokens int              `json:"max_output_tokens,omitempty"`
}

type reasoningConfig struct {
	Effort string `json:"effort"`
}

type textConfig struct {
	Verbosity string        `json:"verbosity"`
	Format    *formatConfig `json:"format,omitempty"`
}

type formatConfig struct {
	Type   string        `json:"type"`
	Name   string        `json:"name"`
	Schema schema.Schema `json:"schema"`
	Strict bool          `json:"strict"`
}

type responsesEnvelope struct {
	Status     string `json:"status"`
	OutputText string `json:"output_text"`
	Output     []struct {
		Role    string `json:"role,omitempty"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}
