// Package server 提供 HTTP Server 功能
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KodaTao/PersonaCore/pkg/generate"
	"github.com/KodaTao/PersonaCore/pkg/legacy"
	"github.com/KodaTao/PersonaCore/pkg/llm"
	"github.com/KodaTao/PersonaCore/pkg/schedule"
	"github.com/KodaTao/PersonaCore/pkg/schema"
)

// GenerateRequest 富 Schema 形态的生成请求
type GenerateRequest struct {
	Prompt          string `json:"prompt" binding:"required"`
	RetryBudget     int    `json:"retry_budget"`
	FailSafe        any    `json:"fail_safe"`
	Effort          string `json:"effort"`
	Verbosity       string `json:"verbosity"`
	MaxOutputTokens int    `json:"max_output_tokens"`
}

// GenerateTextRequest 简单字符串形态的生成请求
type GenerateTextRequest struct {
	Prompt             string `json:"prompt" binding:"required"`
	ExampleOutput      string `json:"example_output"`
	SpecialInstruction string `json:"special_instruction"`
	RetryBudget        int    `json:"retry_budget"`
	FailSafe           string `json:"fail_safe"`
}

// EmbedRequest 向量请求
type EmbedRequest struct {
	Text string `json:"text"`
}

// NormalizeRequest 日程归一化请求
type NormalizeRequest struct {
	Subtasks      []schedule.Subtask `json:"subtasks"`
	TargetMinutes int                `json:"target_minutes" binding:"gte=0"`
	FallbackTask  string             `json:"fallback_task" binding:"required"`
}

// 富 Schema 形态的生成
func (s *Server) generateValidated(c *gin.Context) {
	fn := schema.FuncID(c.Param("function"))

	entry, ok := schema.Lookup(fn)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "unknown function: " + string(fn),
		})
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	// 兜底值：请求优先，其次规范目录
	// 两者都没有时拒绝请求，空兜底不是受支持的状态
	failSafe := req.FailSafe
	if failSafe == nil {
		catalog, ok := generate.FailSafe(fn)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "fail_safe is required for function: " + string(fn),
			})
			return
		}
		failSafe = catalog
	}

	budget := req.RetryBudget
	if budget <= 0 {
		budget = s.app.RetryBudget()
	}

	opts := []generate.CallOption{
		generate.WithLLMOptions(&llm.Options{
			Effort:          llm.Effort(req.Effort),
			Verbosity:       llm.Verbosity(req.Verbosity),
			MaxOutputTokens: req.MaxOutputTokens,
		}),
		// 投影为调用方期望的朴素形态
		generate.WithTransform(func(value any, _ string) any {
			return legacy.ToDomainShape(value, fn)
		}),
	}

	result := s.app.Orchestrator().GenerateValidated(
		c.Request.Context(), req.Prompt, entry, budget, failSafe, opts...)

	c.JSON(http.StatusOK, gin.H{
		"function": fn,
		"result":   result,
	})
}

// 简单字符串形态的生成
func (s *Server) generateText(c *gin.Context) {
	var req GenerateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	prompt := req.Prompt
	if req.ExampleOutput != "" || req.SpecialInstruction != "" {
		prompt = generate.BuildTextPrompt(req.Prompt, req.ExampleOutput, req.SpecialInstruction)
	}

	budget := req.RetryBudget
	if budget <= 0 {
		budget = s.app.RetryBudget()
	}

	result := s.app.Orchestrator().GenerateText(
		c.Request.Context(), prompt, budget, req.FailSafe)

	c.JSON(http.StatusOK, gin.H{
		"result": result,
	})
}

// 列出所有认知函数
func (s *Server) listFunctions(c *gin.Context) {
	ids := schema.Default().List()
	c.JSON(http.StatusOK, gin.H{
		"functions": ids,
		"count":     len(ids),
	})
}

// 获取单个认知函数的 Schema
func (s *Server) getFunction(c *gin.Context) {
	fn := schema.FuncID(c.Param("function"))

	entry, ok := schema.Lookup(fn)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "unknown function: " + string(fn),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"function": entry.ID,
		"schema":   entry.Schema,
	})
}

// 获取向量
func (s *Server) embed(c *gin.Context) {
	var req EmbedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	vector, err := s.app.Provider().Embed(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Embedding failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dimensions": len(vector),
		"embedding":  vector,
	})
}

// 日程归一化
func (s *Server) normalizeSchedule(c *gin.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result := schedule.NormalizeWithTailWidth(
		req.Subtasks, req.TargetMinutes, req.FallbackTask, s.app.TailMergeWidth())

	total := 0
	for _, st := range result {
		total += st.Minutes
	}

	c.JSON(http.StatusOK, gin.H{
		"schedule":      result,
		"total_minutes": total,
	})
}
