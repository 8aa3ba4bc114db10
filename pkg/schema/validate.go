// Package schema 提供结构化输出的类型描述、注册表和校验功能
package schema

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate 进程级校验器实例
// 字段错误按 json 名称报告，与 Schema 的属性名保持一致
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := fieldName(field)
		if name == "" {
			return "-"
		}
		return name
	})
	return v
}

// Validate 解析并校验原始文本，产出类型化的值
// 校验是全有或全无的：任何一个字段违反约束，整个值都不成立
//
// 失败分两类：
//   - 文本不是合法 JSON，或包含 Schema 之外的键 -> parse / constraint
//   - JSON 合法但字段违反声明的约束（范围、枚举、最小长度、必填缺失）-> constraint
func Validate(raw string, entry *Entry) (any, *ValidationError) {
	if entry == nil {
		return nil, NewParseFailure("nil registry entry")
	}

	value := entry.New()

	// 严格解码：多余的键视为约束违反，而不是静默丢弃
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return nil, NewConstraintFailure("", err.Error())
		}
		return nil, NewParseFailure(err.Error())
	}

	if err := validate.Struct(value); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return nil, NewConstraintFailure(fieldPath(fe), constraintReason(fe))
		}
		return nil, NewConstraintFailure("", err.Error())
	}

	return value, nil
}

// fieldPath 返回去掉根类型名的字段路径
// "TaskDecomposition.subtasks[0].duration_minutes" -> "subtasks[0].duration_minutes"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

// constraintReason 生成人类可读的约束失败原因
func constraintReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field is missing or empty"
	case "gte":
		return "value below minimum " + fe.Param()
	case "lte":
		return "value above maximum " + fe.Param()
	case "min":
		return "fewer elements than minimum " + fe.Param()
	case "max":
		return "more elements than maximum " + fe.Param()
	case "oneof":
		return "value not in enum [" + fe.Param() + "]"
	default:
		return "failed constraint " + fe.Tag()
	}
}
