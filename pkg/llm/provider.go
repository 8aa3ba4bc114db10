// Package llm 提供生成服务适配层接口和实现
package llm

import (
	"context"

	"github.com/KodaTao/PersonaCore/pkg/schema"
)

// Provider 生成服务提供商接口
// 所有实现（OpenAI 等）只负责单次请求，不感知重试和校验
type Provider interface {
	// Generate 发送单次生成请求
	// prompt 是完整的提示词，opts 控制推理强度、输出长度和结构化格式
	// 返回原始文本；任何传输或服务端失败都以 error 返回，不会 panic
	Generate(ctx context.Context, prompt string, opts *Options) (string, error)

	// Embed 获取文本的向量表示
	// 返回固定维度的浮点向量
	Embed(ctx context.Context, text string) ([]float64, error)

	// Name 返回提供商名称
	Name() string
}

// Effort 推理强度，控制延迟/成本权衡
type Effort string

const (
	EffortMinimal Effort = "minimal"
	EffortLow     Effort = "low"
	EffortMedium  Effort = "medium"
	EffortHigh    Effort = "high"
)

// Verbosity 回复详细程度，控制输出长度
type Verbosity string

const (
	VerbosityLow    Verbosity = "low"
	VerbosityMedium Verbosity = "medium"
	VerbosityHigh   Verbosity = "high"
)

// MinOutputTokens 服务端强制的输出 token 下限
// 低于该值的请求会被钳制到下限，而不是拒绝
const MinOutputTokens = 16

// Options 单次生成请求的配置
type Options struct {
	// Effort 推理强度，默认 minimal
	Effort Effort

	// Verbosity 输出详细程度，默认 low
	Verbosity Verbosity

	// MaxOutputTokens 最大输出 token 数
	// 0 表示不限制；小于 MinOutputTokens 的正值会被钳制到下限
	MaxOutputTokens int

	// ResponseSchema 结构化输出的 JSON Schema
	// 非空时服务端只允许输出符合该 Schema 的 JSON
	// 提交前会递归关闭所有嵌套对象的 additionalProperties
	ResponseSchema schema.Schema

	// SchemaName 结构化输出的名称标识
	SchemaName string
}

// DefaultOptions 返回默认请求配置
func DefaultOptions() *Options {
	return &Options{
		Effort:    EffortMinimal,
		Verbosity: VerbosityLow,
	}
}

// Normalize 返回填充默认值后的配置副本
// 供 Provider 实现在构造请求前调用
func (o *Options) Normalize() *Options {
	if o == nil {
		return DefaultOptions()
	}
	out := *o
	if out.Effort == "" {
		out.Effort = EffortMinimal
	}
	if out.Verbosity == "" {
		out.Verbosity = VerbosityLow
	}
	if out.MaxOutputTokens > 0 && out.MaxOutputTokens < MinOutputTokens {
		out.MaxOutputTokens = MinOutputTokens
	}
	if out.ResponseSchema != nil && out.SchemaName == "" {
		out.SchemaName = "response_output"
	}
	return &out
}
