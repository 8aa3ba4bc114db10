// Package schema 提供结构化输出的类型描述、注册表和校验功能
package schema

import (
	"reflect"
	"strconv"
	"strings"
)

// SchemaOf 通过反射从响应类型生成 JSON Schema
// 读取结构体字段的 json tag 和 validate tag，
// 生成的 Schema 与 validate 层声明的约束保持同源
func SchemaOf(prototype any) Schema {
	t := reflect.TypeOf(prototype)
	if t == nil {
		return nil
	}

	// 如果是指针，获取元素类型
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	// 只处理结构体类型
	if t.Kind() != reflect.Struct {
		return nil
	}

	return Schema(schemaOfStruct(t))
}

// schemaOfStruct 从结构体类型生成 object 节点
// required 覆盖全部字段：服务端的 strict 模式要求
// 每个 properties 键都出现在 required 中
func schemaOfStruct(t reflect.Type) map[string]any {
	properties := make(map[string]any)
	required := make([]any, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// 跳过非导出字段
		if field.PkgPath != "" {
			continue
		}

		// 嵌入字段展开到当前层级
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded := schemaOfStruct(field.Type)
			if props, ok := embedded["properties"].(map[string]any); ok {
				for k, v := range props {
					properties[k] = v
					required = append(required, k)
				}
			}
			continue
		}

		name := fieldName(field)
		if name == "" {
			continue
		}

		properties[name] = schemaOfField(field.Type, field.Tag.Get("validate"))
		required = append(required, name)
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// schemaOfField 从字段类型和 validate tag 生成类型节点
func schemaOfField(t reflect.Type, validateTag string) map[string]any {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	node := make(map[string]any)
	rules := parseRules(validateTag)

	switch t.Kind() {
	case reflect.String:
		node["type"] = "string"
		if enum, ok := rules["oneof"]; ok {
			values := make([]any, 0)
			for _, v := range strings.Fields(enum) {
				values = append(values, v)
			}
			node["enum"] = values
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		node["type"] = "integer"
		if v, ok := ruleInt(rules, "gte"); ok {
			node["minimum"] = v
		}
		if v, ok := ruleInt(rules, "lte"); ok {
			node["maximum"] = v
		}
	case reflect.Float32, reflect.Float64:
		node["type"] = "number"
	case reflect.Bool:
		node["type"] = "boolean"
	case reflect.Slice, reflect.Array:
		node["type"] = "array"
		node["items"] = schemaOfField(t.Elem(), "")
		if v, ok := ruleInt(rules, "min"); ok {
			node["minItems"] = v
		}
		if v, ok := ruleInt(rules, "max"); ok {
			node["maxItems"] = v
		}
	case reflect.Struct:
		return schemaOfStruct(t)
	default:
		node["type"] = "string"
	}

	return node
}

// fieldName 获取字段的序列化名称
// 优先使用 json tag，否则使用字段名转下划线
func fieldName(field reflect.StructField) string {
	jsonTag := field.Tag.Get("json")
	if jsonTag != "" {
		parts := strings.Split(jsonTag, ",")
		if parts[0] == "-" {
			return ""
		}
		if parts[0] != "" {
			return parts[0]
		}
	}
	return toSnakeCase(field.Name)
}

// parseRules 解析 validate tag 为规则表
// "gte=0,lte=23" -> {gte: "0", lte: "23"}
func parseRules(tag string) map[string]string {
	rules := make(map[string]string)
	if tag == "" {
		return rules
	}
	for _, part := range strings.Split(tag, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			rules[kv[0]] = kv[1]
		} else {
			rules[kv[0]] = ""
		}
	}
	return rules
}

// ruleInt 读取整数规则值
func ruleInt(rules map[string]string, key string) (int, bool) {
	raw, ok := rules[key]
	if !ok || raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// toSnakeCase 将驼峰命名转换为下划线命名
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteByte('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteByte(byte(r + 32)) // 转小写
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
