package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KodaTao/PersonaCore/pkg/app"
	"github.com/KodaTao/PersonaCore/pkg/llm"
)

// MockProvider 测试用的 Mock 提供商
type MockProvider struct {
	response string
	err      error
	embedErr error
}

func (m *MockProvider) Generate(ctx context.Context, prompt string, opts *llm.Options) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *MockProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return []float64{0.1, 0.2, 0.3}, nil
}

func (m *MockProvider) Name() string { return "mock" }

// setupTestServer 创建挂着 Mock 提供商的测试服务器
func setupTestServer(provider *MockProvider) *Server {
	a := app.NewWithProvider(provider,
		app.WithServerMode("test"),
		app.WithGeneration(app.GenerationConfig{
			RetryBudget: 2,
			PauseMs:     0,
		}),
	)
	return NewServer(a, &Config{Host: "127.0.0.1", Port: 0, Mode: "test"})
}

// doRequest 发送请求并解析 JSON 响应
func doRequest(t *testing.T, s *Server, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.GetEngine().ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON response: %v: %s", err, w.Body.String())
		}
	}
	return w.Code, resp
}

func TestHealthCheck(t *testing.T) {
	s := setupTestServer(&MockProvider{})

	code, resp := doRequest(t, s, "GET", "/health", "")
	if code != http.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status field = %v", resp["status"])
	}
}

func TestGenerateValidated_Success(t *testing.T) {
	s := setupTestServer(&MockProvider{response: `{"wake_up_hour": 7}`})

	code, resp := doRequest(t, s, "POST", "/api/v1/generate/wake_up_hour",
		`{"prompt": "when does Klaus wake up?"}`)

	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if resp["function"] != "wake_up_hour" {
		t.Errorf("function = %v", resp["function"])
	}
	// 投影后的朴素形态：裸数字
	if resp["result"] != float64(7) {
		t.Errorf("result = %v, want 7", resp["result"])
	}
}

func TestGenerateValidated_FailSafeFromCatalog(t *testing.T) {
	// 提供商持续报错：返回规范目录的兜底值
	s := setupTestServer(&MockProvider{err: errors.New("service down")})

	code, resp := doRequest(t, s, "POST", "/api/v1/generate/wake_up_hour",
		`{"prompt": "when?"}`)

	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if resp["result"] != float64(8) {
		t.Errorf("result = %v, want catalog fail-safe 8", resp["result"])
	}
}

func TestGenerateValidated_FailSafeFromRequest(t *testing.T) {
	s := setupTestServer(&MockProvider{err: errors.New("service down")})

	code, resp := doRequest(t, s, "POST", "/api/v1/generate/daily_plan",
		`{"prompt": "plan", "fail_safe": ["sleep all day"]}`)

	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	result, ok := resp["result"].([]any)
	if !ok || len(result) != 1 || result[0] != "sleep all day" {
		t.Errorf("result = %v, want request fail-safe", resp["result"])
	}
}

func TestGenerateValidated_FailSafeRequired(t *testing.T) {
	// 目录外的函数必须自带兜底值
	s := setupTestServer(&MockProvider{})

	code, _ := doRequest(t, s, "POST", "/api/v1/generate/daily_plan",
		`{"prompt": "plan"}`)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestGenerateValidated_UnknownFunction(t *testing.T) {
	s := setupTestServer(&MockProvider{})

	code, _ := doRequest(t, s, "POST", "/api/v1/generate/no_such_function",
		`{"prompt": "hi"}`)
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestGenerateValidated_MissingPrompt(t *testing.T) {
	s := setupTestServer(&MockProvider{})

	code, _ := doRequest(t, s, "POST", "/api/v1/generate/wake_up_hour", `{}`)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestGenerateText(t *testing.T) {
	s := setupTestServer(&MockProvider{response: `{"output": "a walk in the park"}`})

	code, resp := doRequest(t, s, "POST", "/api/v1/generate/text",
		`{"prompt": "describe", "fail_safe": "idle"}`)

	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if resp["result"] != "a walk in the park" {
		t.Errorf("result = %v", resp["result"])
	}
}

func TestListFunctions(t *testing.T) {
	s := setupTestServer(&MockProvider{})

	code, resp := doRequest(t, s, "GET", "/api/v1/functions", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if resp["count"] != float64(31) {
		t.Errorf("count = %v, want 31", resp["count"])
	}
}

func TestGetFunction(t *testing.T) {
	s := setupTestServer(&MockProvider{})

	code, resp := doRequest(t, s, "GET", "/api/v1/functions/poignancy", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if resp["function"] != "poignancy" {
		t.Errorf("function = %v", resp["function"])
	}
	if _, ok := resp["schema"].(map[string]any); !ok {
		t.Error("response should carry the schema")
	}

	code, _ = doRequest(t, s, "GET", "/api/v1/functions/no_such_function", "")
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestEmbed(t *testing.T) {
	s := setupTestServer(&MockProvider{})

	code, resp := doRequest(t, s, "POST", "/api/v1/embed", `{"text": "hello"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if resp["dimensions"] != float64(3) {
		t.Errorf("dimensions = %v", resp["dimensions"])
	}
}

func TestEmbed_UpstreamFailure(t *testing.T) {
	s := setupTestServer(&MockProvider{embedErr: errors.New("service down")})

	code, _ := doRequest(t, s, "POST", "/api/v1/embed", `{"text": "hello"}`)
	if code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", code)
	}
}

func TestNormalizeSchedule(t *testing.T) {
	s := setupTestServer(&MockProvider{})

	code, resp := doRequest(t, s, "POST", "/api/v1/schedule/normalize",
		`{"subtasks": [{"description": "wake up", "duration_minutes": 7},
		               {"description": "shower", "duration_minutes": 8}],
		  "target_minutes": 15,
		  "fallback_task": "morning routine"}`)

	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if resp["total_minutes"] != float64(15) {
		t.Errorf("total_minutes = %v, want 15", resp["total_minutes"])
	}

	sched, ok := resp["schedule"].([]any)
	if !ok || len(sched) != 2 {
		t.Fatalf("schedule = %v", resp["schedule"])
	}
	first := sched[0].(map[string]any)
	if first["description"] != "wake up" || first["duration_minutes"] != float64(5) {
		t.Errorf("first entry = %v", first)
	}
}

func TestNormalizeSchedule_MissingFallback(t *testing.T) {
	s := setupTestServer(&MockProvider{})

	code, _ := doRequest(t, s, "POST", "/api/v1/schedule/normalize",
		`{"subtasks": [], "target_minutes": 30}`)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}
