// Package schema 提供结构化输出的类型描述、注册表和校验功能
package schema

import (
	"fmt"
	"sync"

	"github.com/KodaTao/PersonaCore/pkg/observability"
)

// FuncID 认知函数的稳定标识符
// 标识符集合在进程启动时固定，之后只读
type FuncID string

// 认知函数标识符
const (
	// 规划
	FuncWakeUpHour        FuncID = "wake_up_hour"
	FuncDailyPlan         FuncID = "daily_plan"
	FuncHourlySchedule    FuncID = "hourly_schedule"
	FuncTaskDecomp        FuncID = "task_decomp"
	FuncNewDecompSchedule FuncID = "new_decomp_schedule"

	// 感知
	FuncActionLocation FuncID = "action_location"
	FuncPronunciatio   FuncID = "pronunciatio"
	FuncEventTriple    FuncID = "event_triple"
	FuncActObjDesc     FuncID = "act_obj_desc"

	// 检索
	FuncExtractKeywords   FuncID = "extract_keywords"
	FuncKeywordToThoughts FuncID = "keyword_to_thoughts"
	FuncConvoToThoughts   FuncID = "convo_to_thoughts"

	// 反思
	FuncPoignancy          FuncID = "poignancy"
	FuncFocalPoint         FuncID = "focal_pt"
	FuncInsightAndGuidance FuncID = "insight_and_guidance"

	// 会话
	FuncDecideToTalk          FuncID = "decide_to_talk"
	FuncDecideToReact         FuncID = "decide_to_react"
	FuncCreateConversation    FuncID = "create_conversation"
	FuncSummarizeConversation FuncID = "summarize_conversation"
	FuncAgentChatSummarizeIdeas        FuncID = "agent_chat_summarize_ideas"
	FuncAgentChatSummarizeRelationship FuncID = "agent_chat_summarize_relationship"
	FuncAgentChat             FuncID = "agent_chat"
	FuncGenerateNextConvoLine FuncID = "generate_next_convo_line"
	FuncWhisperInnerThought   FuncID = "whisper_inner_thought"
	FuncPlanningThoughtOnConvo FuncID = "planning_thought_on_convo"
	FuncMemoOnConvo           FuncID = "memo_on_convo"

	// 执行
	FuncActionSector     FuncID = "action_sector"
	FuncActionArena      FuncID = "action_arena"
	FuncActionGameObject FuncID = "action_game_object"

	// 工具
	FuncSummarizeIdeas FuncID = "summarize_ideas"
	FuncTextOutput     FuncID = "text_output"
)

// Entry 注册表条目
// Schema 在构造时已递归关闭额外字段，之后不再修改
type Entry struct {
	ID     FuncID
	Schema Schema

	// New 返回指向零值响应结构的指针，供校验器解码使用
	New func() any
}

// NewEntry 创建注册表条目
// Schema 由响应类型反射生成并立即收紧
func NewEntry(id FuncID, factory func() any) *Entry {
	return &Entry{
		ID:     id,
		Schema: SchemaOf(factory()).Strict(),
		New:    factory,
	}
}

// Registry 类型描述注册表
// 启动时填充，之后只读；并发读取无需额外约定
type Registry struct {
	mu      sync.RWMutex
	entries map[FuncID]*Entry
}

// NewRegistry 创建新的注册表
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[FuncID]*Entry),
	}
}

// Register 注册一个条目
// 同名条目会被覆盖
func (r *Registry) Register(e *Entry) error {
	if e == nil {
		return ErrNilEntry
	}
	if e.ID == "" {
		return ErrEmptyFuncID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[e.ID] = e
	return nil
}

// RegisterAll 批量注册条目
func (r *Registry) RegisterAll(es ...*Entry) error {
	for _, e := range es {
		if err := r.Register(e); err != nil {
			return err
		}
	}
	return nil
}

// Get 获取指定标识符的条目
func (r *Registry) Get(id FuncID) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	return e, ok
}

// Has 检查是否存在指定标识符的条目
func (r *Registry) Has(id FuncID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[id]
	return ok
}

// List 列出所有已注册的标识符
func (r *Registry) List() []FuncID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]FuncID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}

// Count 返回已注册的条目数量
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// 错误定义
var (
	ErrNilEntry    = fmt.Errorf("entry cannot be nil")
	ErrEmptyFuncID = fmt.Errorf("function id cannot be empty")
)

// defaultRegistry 进程级注册表，init 时填充完毕
var defaultRegistry = buildDefault()

// Default 返回进程级注册表
func Default() *Registry {
	return defaultRegistry
}

// Lookup 从进程级注册表获取条目
func Lookup(id FuncID) (*Entry, bool) {
	return defaultRegistry.Get(id)
}

// buildDefault 构建全部认知函数的封闭注册表
func buildDefault() *Registry {
	r := NewRegistry()

	err := r.RegisterAll(
		// 规划
		NewEntry(FuncWakeUpHour, func() any { return &WakeUpHourResponse{} }),
		NewEntry(FuncDailyPlan, func() any { return &DailyPlanResponse{} }),
		NewEntry(FuncHourlySchedule, func() any { return &HourlyScheduleResponse{} }),
		NewEntry(FuncTaskDecomp, func() any { return &TaskDecomposition{} }),
		NewEntry(FuncNewDecompSchedule, func() any { return &NewDecompScheduleResponse{} }),

		// 感知
		NewEntry(FuncActionLocation, func() any { return &ActionLocation{} }),
		NewEntry(FuncPronunciatio, func() any { return &Pronunciatio{} }),
		NewEntry(FuncEventTriple, func() any { return &EventTriple{} }),
		NewEntry(FuncActObjDesc, func() any { return &ActionObjectDescription{} }),

		// 检索
		NewEntry(FuncExtractKeywords, func() any { return &KeywordExtractionResponse{} }),
		NewEntry(FuncKeywordToThoughts, func() any { return &ThoughtResponse{} }),
		NewEntry(FuncConvoToThoughts, func() any { return &ThoughtResponse{} }),

		// 反思
		NewEntry(FuncPoignancy, func() any { return &PoignancyRating{} }),
		NewEntry(FuncFocalPoint, func() any { return &FocalPointsResponse{} }),
		NewEntry(FuncInsightAndGuidance, func() any { return &InsightsResponse{} }),

		// 会话
		NewEntry(FuncDecideToTalk, func() any { return &DecisionResponse{} }),
		NewEntry(FuncDecideToReact, func() any { return &DecisionResponse{} }),
		NewEntry(FuncCreateConversation, func() any { return &ConversationResponse{} }),
		NewEntry(FuncSummarizeConversation, func() any { return &ConversationSummary{} }),
		NewEntry(FuncAgentChatSummarizeIdeas, func() any { return &AgentChatSummaryIdeas{} }),
		NewEntry(FuncAgentChatSummarizeRelationship, func() any { return &RelationshipSummary{} }),
		NewEntry(FuncAgentChat, func() any { return &AgentChatResponse{} }),
		NewEntry(FuncGenerateNextConvoLine, func() any { return &NextConversationLine{} }),
		NewEntry(FuncWhisperInnerThought, func() any { return &InnerThought{} }),
		NewEntry(FuncPlanningThoughtOnConvo, func() any { return &PlanningThought{} }),
		NewEntry(FuncMemoOnConvo, func() any { return &ConversationMemo{} }),

		// 执行
		NewEntry(FuncActionSector, func() any { return &SectorResponse{} }),
		NewEntry(FuncActionArena, func() any { return &ArenaResponse{} }),
		NewEntry(FuncActionGameObject, func() any { return &GameObjectResponse{} }),

		// 工具
		NewEntry(FuncSummarizeIdeas, func() any { return &SummarizeIdeasResponse{} }),
		NewEntry(FuncTextOutput, func() any { return &TextOutput{} }),
	)
	if err != nil {
		// 条目全部由常量构造，注册失败属于编程错误
		panic(err)
	}

	observability.Debug("schema registry built", "count", r.Count())
	return r
}
