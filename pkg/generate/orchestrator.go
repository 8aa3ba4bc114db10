// Package generate 提供带校验、重试和兜底的生成编排
//
// 编排器把不可靠的"按提示词生成文本"原语
// 变成类型化、已校验、有限重试、兜底有界的操作。
// 重试循环是严格串行的：用延迟换简单性，也避免重复计费的并发请求
package generate

import (
	"context"
	"time"

	"github.com/KodaTao/PersonaCore/pkg/llm"
	"github.com/KodaTao/PersonaCore/pkg/observability"
	"github.com/KodaTao/PersonaCore/pkg/schema"
)

// DefaultRetryBudget 默认重试预算
const DefaultRetryBudget = 5

// DefaultPause 请求前的固定短暂停，粗粒度限流
const DefaultPause = 100 * time.Millisecond

// Predicate 调用方提供的接受谓词
// 返回 false 表示值结构合法但领域上不可接受，消耗一次预算后重试
type Predicate func(value any, prompt string) bool

// Transform 调用方提供的清理转换
// 只在值被接受后应用一次，其返回值就是编排结果
type Transform func(value any, prompt string) any

// Orchestrator 生成编排器
type Orchestrator struct {
	provider llm.Provider
	pause    time.Duration
}

// Option 编排器配置选项
type Option func(*Orchestrator)

// WithPause 设置请求前的固定暂停，0 表示不暂停
func WithPause(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.pause = d
	}
}

// New 创建编排器
// provider 由进程入口构造后传入，核心内部不持有任何隐式全局连接
func New(provider llm.Provider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		pause:    DefaultPause,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// callOptions 单次调用的配置
type callOptions struct {
	predicate Predicate
	transform Transform
	llmOpts   *llm.Options
}

// CallOption 单次调用的配置选项
type CallOption func(*callOptions)

// WithPredicate 设置接受谓词
func WithPredicate(p Predicate) CallOption {
	return func(c *callOptions) {
		c.predicate = p
	}
}

// WithTransform 设置清理转换
func WithTransform(t Transform) CallOption {
	return func(c *callOptions) {
		c.transform = t
	}
}

// WithLLMOptions 覆盖本次调用的生成参数（推理强度、输出长度等）
// ResponseSchema 字段会被注册表条目的 Schema 覆盖
func WithLLMOptions(opts *llm.Options) CallOption {
	return func(c *callOptions) {
		c.llmOpts = opts
	}
}

// GenerateValidated 富 Schema 形态的生成调用
//
// 每次尝试有三种结局：成功 / 可重试失败 / 谓词拒绝（同样可重试）。
// 适配器错误、解析失败、约束失败和谓词拒绝对预算计数器一视同仁，
// 预算耗尽不是异常，而是正常的终止路径：原样返回 failSafe，绝不抛错。
// 调用方（认知函数）不会因为一次生成失败而中断整个仿真步
func (o *Orchestrator) GenerateValidated(
	ctx context.Context,
	prompt string,
	entry *schema.Entry,
	budget int,
	failSafe any,
	opts ...CallOption,
) any {
	if entry == nil {
		return failSafe
	}

	c := &callOptions{}
	for _, opt := range opts {
		opt(c)
	}

	llmOpts := c.llmOpts.Normalize()
	llmOpts.ResponseSchema = entry.Schema
	llmOpts.SchemaName = string(entry.ID)

	fn := string(entry.ID)

	for attempt := 1; attempt <= budget; attempt++ {
		if !o.sleepBeforeRequest(ctx) {
			break
		}

		raw, err := o.provider.Generate(ctx, prompt, llmOpts)
		if err != nil {
			// 适配器错误等同于空输出，不提前中止
			observability.GenerateAttemptLog(ctx, fn, attempt, string(schema.ErrKindAdapter), err.Error())
			continue
		}

		value, verr := schema.Validate(raw, entry)
		if verr != nil {
			observability.GenerateAttemptLog(ctx, fn, attempt, string(verr.Kind), verr.Reason)
			continue
		}

		if c.predicate != nil && !c.predicate(value, prompt) {
			observability.GenerateAttemptLog(ctx, fn, attempt, string(schema.ErrKindRejected), "predicate returned false")
			continue
		}

		if c.transform != nil {
			return c.transform(value, prompt)
		}
		return value
	}

	observability.FailSafeLog(ctx, fn, budget)
	return failSafe
}

// GenerateText 简单字符串形态的生成调用
//
// 自由文本在边界处被包进单字段的 output Schema，
// 之后走与富 Schema 形态完全相同的重试循环。
// 谓词和转换收到的值是解包后的字符串
func (o *Orchestrator) GenerateText(
	ctx context.Context,
	prompt string,
	budget int,
	failSafe string,
	opts ...CallOption,
) string {
	entry, ok := schema.Lookup(schema.FuncTextOutput)
	if !ok {
		return failSafe
	}

	c := &callOptions{}
	for _, opt := range opts {
		opt(c)
	}

	inner := make([]CallOption, 0, 3)
	if c.llmOpts != nil {
		inner = append(inner, WithLLMOptions(c.llmOpts))
	}
	if c.predicate != nil {
		inner = append(inner, WithPredicate(func(value any, prompt string) bool {
			return c.predicate(unwrapText(value), prompt)
		}))
	}
	inner = append(inner, WithTransform(func(value any, prompt string) any {
		out := unwrapText(value)
		if c.transform != nil {
			return c.transform(out, prompt)
		}
		return out
	}))

	result := o.GenerateValidated(ctx, prompt, entry, budget, failSafe, inner...)
	if s, ok := result.(string); ok {
		return s
	}
	return failSafe
}

// Provider 返回底层提供商，供嵌入等旁路操作使用
func (o *Orchestrator) Provider() llm.Provider {
	return o.provider
}

// unwrapText 从包装类型取出自由文本
func unwrapText(value any) string {
	if t, ok := value.(*schema.TextOutput); ok {
		return t.Output
	}
	return ""
}

// sleepBeforeRequest 请求前的固定暂停
// 返回 false 表示上下文已取消，不再发起下一次尝试
func (o *Orchestrator) sleepBeforeRequest(ctx context.Context) bool {
	if o.pause <= 0 {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	}

	timer := time.NewTimer(o.pause)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
