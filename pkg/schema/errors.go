// Package schema 提供结构化输出的类型描述、注册表和校验功能
package schema

import "fmt"

// ErrKind 校验失败的类别
type ErrKind string

const (
	// ErrKindAdapter 传输或服务端失败
	ErrKindAdapter ErrKind = "adapter"

	// ErrKindParse 原始文本不是合法的 JSON
	ErrKindParse ErrKind = "parse"

	// ErrKindConstraint JSON 合法但违反了声明的字段约束
	ErrKindConstraint ErrKind = "constraint"

	// ErrKindRejected 结构合法但被调用方谓词拒绝
	ErrKindRejected ErrKind = "rejected"
)

// ValidationError 校验失败
// 四种类别在重试循环内都按可重试处理，不会向外抛出
type ValidationError struct {
	Kind   ErrKind
	Field  string // 违反约束的字段路径（仅 constraint）
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q: %s", e.Kind, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// NewParseFailure 创建解析失败错误
func NewParseFailure(reason string) *ValidationError {
	return &ValidationError{Kind: ErrKindParse, Reason: reason}
}

// NewConstraintFailure 创建约束失败错误
func NewConstraintFailure(field, reason string) *ValidationError {
	return &ValidationError{Kind: ErrKindConstraint, Field: field, Reason: reason}
}

// NewAdapterFailure 创建适配器失败错误
func NewAdapterFailure(reason string) *ValidationError {
	return &ValidationError{Kind: ErrKindAdapter, Reason: reason}
}

// NewRejection 创建谓词拒绝错误
func NewRejection(reason string) *ValidationError {
	return &ValidationError{Kind: ErrKindRejected, Reason: reason}
}
