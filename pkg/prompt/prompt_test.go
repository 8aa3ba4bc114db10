package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderString_Placeholders(t *testing.T) {
	tmpl := "Name: !<INPUT 0>!\nTask: !<INPUT 1>!"

	got := RenderString(tmpl, "Klaus", "read a book")

	want := "Name: Klaus\nTask: read a book"
	if got != want {
		t.Errorf("RenderString() = %q, want %q", got, want)
	}
}

func TestRenderString_RepeatedPlaceholder(t *testing.T) {
	// 同一序号的占位符全部替换
	tmpl := "!<INPUT 0>! says hello to !<INPUT 0>!'s neighbor"

	got := RenderString(tmpl, "Maria")

	want := "Maria says hello to Maria's neighbor"
	if got != want {
		t.Errorf("RenderString() = %q, want %q", got, want)
	}
}

func TestRenderString_BlockMarker(t *testing.T) {
	// 标记之前的内容是模板注释，渲染时丢弃
	tmpl := "variables:\n!<INPUT 0>! -- persona name\n" +
		BlockMarker + "\nHello !<INPUT 0>!"

	got := RenderString(tmpl, "Klaus")

	want := "Hello Klaus"
	if got != want {
		t.Errorf("RenderString() = %q, want %q", got, want)
	}
}

func TestRenderString_NoMarker(t *testing.T) {
	got := RenderString("  plain body  ")
	if got != "plain body" {
		t.Errorf("RenderString() = %q, want trimmed body", got)
	}
}

func TestRender_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wake_up.txt")

	content := "wake_up_hour_v1.txt\n" + BlockMarker + "\n" +
		"When does !<INPUT 0>! wake up?"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	got, err := Render(path, "Klaus")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "When does Klaus wake up?" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRender_MissingFile(t *testing.T) {
	_, err := Render("/nonexistent/template.txt")
	if err == nil {
		t.Error("Render() should fail for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read template") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRenderTemplate(t *testing.T) {
	got, err := RenderTemplate("Hello {{.Name}}, it is {{.Hour}} o'clock", map[string]any{
		"Name": "Klaus",
		"Hour": 8,
	})
	if err != nil {
		t.Fatalf("RenderTemplate() error = %v", err)
	}
	if got != "Hello Klaus, it is 8 o'clock" {
		t.Errorf("RenderTemplate() = %q", got)
	}
}

func TestRenderTemplate_ParseError(t *testing.T) {
	_, err := RenderTemplate("{{.Broken", nil)
	if err == nil {
		t.Error("RenderTemplate() should fail for malformed template")
	}
}
