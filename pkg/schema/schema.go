// Package schema 提供结构化输出的类型描述、注册表和校验功能
package schema

import (
	"encoding/json"
)

// Schema JSON Schema 形式的结构类型描述
type Schema map[string]any

// String 返回 Schema 的 JSON 文本表示
func (s Schema) String() string {
	bytes, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(bytes)
}

// Strict 返回关闭了额外字段的 Schema 副本
// 递归地给每个 object 节点加上 additionalProperties: false
// 服务端的结构化输出要求所有层级都显式关闭额外字段，
// 否则语法合法但掺杂多余键的输出会通过宽松校验
func (s Schema) Strict() Schema {
	out, ok := strictify(map[string]any(s)).(map[string]any)
	if !ok {
		return s
	}
	return Schema(out)
}

// strictify 深拷贝并递归处理任意 Schema 节点
func strictify(node any) any {
	switch n := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(n)+1)
		for k, v := range n {
			out[k] = strictify(v)
		}
		if t, ok := out["type"].(string); ok && t == "object" {
			out["additionalProperties"] = false
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			out[i] = strictify(v)
		}
		return out
	default:
		return node
	}
}
