// Package prompt 提供提示词模板加载和占位符替换
//
// 模板是纯文本文件：!<INPUT n>! 占位符按序号替换为输入，
// <commentblockmarker>###</commentblockmarker> 之前的内容是模板注释，
// 渲染时只保留标记之后的部分
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// BlockMarker 模板注释与正文的分隔标记
const BlockMarker = "<commentblockmarker>###</commentblockmarker>"

// Render 读取模板文件并替换占位符
// inputs 按序号对应 !<INPUT 0>!、!<INPUT 1>! ...
func Render(templatePath string, inputs ...string) (string, error) {
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return RenderString(string(raw), inputs...), nil
}

// RenderString 对模板文本替换占位符
func RenderString(tmpl string, inputs ...string) string {
	for i, input := range inputs {
		placeholder := fmt.Sprintf("!<INPUT %d>!", i)
		tmpl = strings.ReplaceAll(tmpl, placeholder, input)
	}

	if strings.Contains(tmpl, BlockMarker) {
		parts := strings.SplitN(tmpl, BlockMarker, 2)
		tmpl = parts[1]
	}

	return strings.TrimSpace(tmpl)
}

// RenderTemplate 使用 Go 模板语法渲染自定义模板
func RenderTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("custom").Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
