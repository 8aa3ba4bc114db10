// Package generate 提供带校验、重试和兜底的生成编排
package generate

import (
	"github.com/KodaTao/PersonaCore/pkg/schema"
)

// BuildTextPrompt 构造简单字符串形态的提示词信封
// 原始提示词被三引号包裹，附带示例输出和补充说明，
// 引导服务端输出单字段 output 的 JSON
func BuildTextPrompt(prompt, exampleOutput, specialInstruction string) string {
	full := "\"\"\"\n" + prompt + "\n\"\"\"\n"
	full += "Output the response to the prompt above in json. " + specialInstruction + "\n"
	full += "Example output json:\n"
	full += `{"output": "` + exampleOutput + `"}`
	return full
}

// FailSafe 返回认知函数的规范兜底值（朴素形态）
// 兜底值是"退化但合法"的默认行为：起床八点、保持空闲、评分居中。
// 未收录的函数返回 nil 和 false，由调用方自备兜底值
func FailSafe(fn schema.FuncID) (any, bool) {
	switch fn {
	case schema.FuncWakeUpHour:
		return 8, true
	case schema.FuncPoignancy:
		return 4, true
	case schema.FuncExtractKeywords:
		return []string{"word"}, true
	case schema.FuncDecideToTalk, schema.FuncDecideToReact:
		return "yes", true
	case schema.FuncEventTriple:
		return []string{"subject", "is", "idle"}, true
	default:
		return nil, false
	}
}
